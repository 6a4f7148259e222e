// Package export writes fleet utilization reports in the formats the
// dispatch office imports elsewhere.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kvernberg/planboard/stats"
)

// WriteJSON writes the fleet summary to w in JSON format.
func WriteJSON(w io.Writer, sum stats.FleetSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sum)
}

// WriteCSV writes the per-vehicle utilization to w as CSV.
func WriteCSV(w io.Writer, sum stats.FleetSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"vehicle_id", "name", "busy_segments", "utilization"}); err != nil {
		return err
	}
	for _, v := range sum.Vehicles {
		rec := []string{
			v.VehicleID,
			v.Name,
			strconv.Itoa(v.BusySegments),
			strconv.FormatFloat(v.Utilization, 'f', 4, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
