package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvernberg/planboard/core/grid"
	"github.com/kvernberg/planboard/core/model"
	"github.com/kvernberg/planboard/core/store"
)

func vehicleBooking(id, vehicleID, start, end string) model.Booking {
	return model.Booking{
		ID:         id,
		Assignment: model.ResourceAssignment{VehicleID: vehicleID},
		Window: model.TimeWindow{
			StartDate: "2026-03-02", StartTime: start,
			EndDate: "2026-03-02", EndTime: end,
		},
		Status: model.StatusPlanned,
	}
}

func TestFleetUtilizationCountsOverlapOnce(t *testing.T) {
	snap := store.Snapshot{
		Vehicles: []model.Vehicle{
			{ID: "v1", Name: "Truck 1", Active: true},
			{ID: "v2", Name: "Truck 2", Active: true},
			{ID: "v3", Name: "Parked", Active: false},
		},
		Bookings: []model.Booking{
			// overlapping pair: union is 08:00-10:00, four segments
			vehicleBooking("a", "v1", "08:00", "09:00"),
			vehicleBooking("b", "v1", "08:30", "10:00"),
			vehicleBooking("c", "v2", "12:00", "13:00"),
		},
	}

	sum := FleetUtilization(snap, grid.DayRange{Focus: "2026-03-02"})
	require.Len(t, sum.Vehicles, 2, "inactive vehicles are excluded")

	assert.Equal(t, "v1", sum.Vehicles[0].VehicleID)
	assert.Equal(t, 4, sum.Vehicles[0].BusySegments)
	assert.InDelta(t, 4.0/24.0, sum.Vehicles[0].Utilization, 1e-9)

	assert.Equal(t, "v2", sum.Vehicles[1].VehicleID)
	assert.Equal(t, 2, sum.Vehicles[1].BusySegments)

	assert.InDelta(t, (4.0/24.0+2.0/24.0)/2, sum.Mean, 1e-9)
	assert.InDelta(t, 4.0/24.0, sum.Max, 1e-9)
	assert.False(t, math.IsNaN(sum.StdDev))
}

func TestFleetUtilizationSingleVehicle(t *testing.T) {
	snap := store.Snapshot{
		Vehicles: []model.Vehicle{{ID: "v1", Name: "Truck 1", Active: true}},
	}
	sum := FleetUtilization(snap, grid.DayRange{Focus: "2026-03-02"})
	require.Len(t, sum.Vehicles, 1)
	assert.Zero(t, sum.Vehicles[0].BusySegments)
	assert.Zero(t, sum.StdDev, "one sample has no spread")
}

func TestFleetUtilizationEmptyFleet(t *testing.T) {
	sum := FleetUtilization(store.Snapshot{}, grid.DayRange{Focus: "2026-03-02"})
	assert.Empty(t, sum.Vehicles)
	assert.Zero(t, sum.Mean)
}
