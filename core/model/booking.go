package model

import "strings"

// Status enumerates the lifecycle states of a booking.
type Status int

const (
	StatusBooked Status = iota
	StatusPlanned
	StatusCompleted
	StatusPriced
	StatusInvoiced
	StatusCancelled
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusBooked:
		return "booked"
	case StatusPlanned:
		return "planned"
	case StatusCompleted:
		return "completed"
	case StatusPriced:
		return "priced"
	case StatusInvoiced:
		return "invoiced"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// TimeWindow is the canonical pickup/delivery window of a booking.
// Dates are ISO "2006-01-02" strings, times are 24h "HH:MM" strings.
// Legacy field aliases are resolved at the store boundary; the engine
// only ever sees this shape.
type TimeWindow struct {
	StartDate string `json:"start_date"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date"`
	EndTime   string `json:"end_time"`
}

// Normalized fills the delivery side defaults: a missing end date falls
// back to the start date and a missing end time to the start time.
func (w TimeWindow) Normalized() TimeWindow {
	if w.EndDate == "" {
		w.EndDate = w.StartDate
	}
	if w.EndTime == "" {
		w.EndTime = w.StartTime
	}
	return w
}

// ResourceAssignment links a booking to a vehicle and/or driver lane.
type ResourceAssignment struct {
	VehicleID string `json:"vehicle_id"`
	DriverID  string `json:"driver_id"`
}

// Unassigned reports whether the booking sits in the unassigned tray.
func (a ResourceAssignment) Unassigned() bool {
	return a.VehicleID == "" && a.DriverID == ""
}

// Booking represents a single transport order as seen by the schedule
// engine. The full record (addresses, cargo, pricing) lives in the
// booking store; the engine reads and patches only these fields.
type Booking struct {
	ID         string             `json:"id"`
	Customer   string             `json:"customer"`
	Assignment ResourceAssignment `json:"assignment"`
	Window     TimeWindow         `json:"window"`
	BlockID    string             `json:"block_id"`
	Status     Status             `json:"status"`
}

// Label returns the text shown on the booking's grid bar.
func (b Booking) Label() string {
	if c := strings.TrimSpace(b.Customer); c != "" {
		return c
	}
	return b.ID
}
