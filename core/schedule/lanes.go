package schedule

import "github.com/kvernberg/planboard/core/model"

// ForVehicle returns the non-cancelled bookings assigned to the vehicle.
func ForVehicle(bookings []model.Booking, vehicleID string) []model.Booking {
	return filter(bookings, func(b model.Booking) bool {
		return b.Assignment.VehicleID == vehicleID
	})
}

// ForDriver returns the non-cancelled bookings assigned to the driver.
func ForDriver(bookings []model.Booking, driverID string) []model.Booking {
	return filter(bookings, func(b model.Booking) bool {
		return b.Assignment.DriverID == driverID
	})
}

// Unassigned returns the non-cancelled bookings sitting in the tray.
func Unassigned(bookings []model.Booking) []model.Booking {
	return filter(bookings, func(b model.Booking) bool {
		return b.Assignment.Unassigned()
	})
}

func filter(bookings []model.Booking, keep func(model.Booking) bool) []model.Booking {
	var out []model.Booking
	for _, b := range bookings {
		if b.Status == model.StatusCancelled {
			continue
		}
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

// Lane is one fully derived resource track of the board: its packed
// render items and the number of rows they occupy.
type Lane struct {
	Items []Item
	Rows  int
}

// BuildLane runs the full pipeline for one resource's bookings:
// place -> cluster -> expand -> pack.
func BuildLane(bookings []model.Booking, blocks map[string]model.Block, days []string) Lane {
	var items []Item
	for _, c := range Clusters(Place(bookings, days)) {
		items = append(items, Expand(c, blocks)...)
	}
	packed, rows := PackLanes(items)
	if rows == 0 {
		rows = 1
	}
	return Lane{Items: packed, Rows: rows}
}

// BlockIndex maps block ids to blocks for expansion lookups.
func BlockIndex(blocks []model.Block) map[string]model.Block {
	idx := make(map[string]model.Block, len(blocks))
	for _, b := range blocks {
		idx[b.ID] = b
	}
	return idx
}
