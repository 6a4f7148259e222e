package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kvernberg/planboard/app"
	"github.com/kvernberg/planboard/pkg/export"
	"github.com/kvernberg/planboard/stats"
)

var statsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print fleet utilization for the configured day range",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", "table", "output format: table, json or csv")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	summary := stats.FleetUtilization(svc.Engine.Snapshot(), svc.Engine.Range())
	switch statsFormat {
	case "json":
		return export.WriteJSON(os.Stdout, summary)
	case "csv":
		return export.WriteCSV(os.Stdout, summary)
	case "table":
	default:
		return fmt.Errorf("unknown format %q", statsFormat)
	}
	for _, v := range summary.Vehicles {
		name := v.Name
		if name == "" {
			name = v.VehicleID
		}
		fmt.Printf("%-20s %4d segments  %5.1f%%\n", name, v.BusySegments, v.Utilization*100)
	}
	fmt.Printf("fleet: mean %.1f%%  stddev %.1f%%  max %.1f%%\n",
		summary.Mean*100, summary.StdDev*100, summary.Max*100)
	return nil
}
