// Package stats aggregates fleet utilization over the displayed day
// range for the statistics tab and the stats CLI command.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kvernberg/planboard/core/grid"
	"github.com/kvernberg/planboard/core/schedule"
	"github.com/kvernberg/planboard/core/store"
)

// VehicleUtilization is the share of visible grid columns occupied by
// one vehicle's bookings.
type VehicleUtilization struct {
	VehicleID    string  `json:"vehicle_id"`
	Name         string  `json:"name"`
	BusySegments int     `json:"busy_segments"`
	Utilization  float64 `json:"utilization"`
}

// FleetSummary aggregates utilization across the fleet.
type FleetSummary struct {
	Vehicles []VehicleUtilization `json:"vehicles"`
	Mean     float64              `json:"mean"`
	StdDev   float64              `json:"std_dev"`
	Max      float64              `json:"max"`
}

// FleetUtilization computes per-vehicle busy columns within the window.
// Cluster bounds are unions of overlapping spans, so summing them counts
// each column at most once per vehicle.
func FleetUtilization(snap store.Snapshot, rng grid.DayRange) FleetSummary {
	days := rng.Days()
	total := float64(rng.Columns())
	var summary FleetSummary
	for _, v := range snap.Vehicles {
		if !v.Active {
			continue
		}
		busy := 0
		placed := schedule.Place(schedule.ForVehicle(snap.Bookings, v.ID), days)
		for _, c := range schedule.Clusters(placed) {
			busy += c.ColEnd - c.ColStart
		}
		summary.Vehicles = append(summary.Vehicles, VehicleUtilization{
			VehicleID:    v.ID,
			Name:         v.Name,
			BusySegments: busy,
			Utilization:  float64(busy) / total,
		})
	}
	sort.Slice(summary.Vehicles, func(i, j int) bool {
		return summary.Vehicles[i].VehicleID < summary.Vehicles[j].VehicleID
	})
	if len(summary.Vehicles) == 0 {
		return summary
	}
	utils := make([]float64, len(summary.Vehicles))
	for i, u := range summary.Vehicles {
		utils[i] = u.Utilization
	}
	summary.Mean = stat.Mean(utils, nil)
	if len(utils) > 1 {
		summary.StdDev = stat.StdDev(utils, nil)
	}
	summary.Max = floats.Max(utils)
	return summary
}
