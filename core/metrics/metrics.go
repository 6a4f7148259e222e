// Package metrics defines the sink interface used to record schedule
// board activity. Sinks like PromSink and InfluxSink live in
// infra/metrics and can be combined with NewMultiSink.
package metrics

import "time"

// Move records one applied drag-and-drop reassignment.
type Move struct {
	BookingID  string
	Target     string // unassigned, vehicle or driver
	ResourceID string
	Overlap    bool // whether the drop opened a resolution dialog
	Duration   time.Duration
}

// Resolution records the terminal outcome of one overlap dialog.
type Resolution struct {
	BookingID string
	Outcome   string
	BlockID   string
}

// MetricsSink records board activity. Implementations must be safe for
// concurrent use.
type MetricsSink interface {
	RecordMove(Move) error
	RecordResolution(Resolution) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordMove(Move) error             { return nil }
func (NopSink) RecordResolution(Resolution) error { return nil }
