package metrics

import coremetrics "github.com/kvernberg/planboard/core/metrics"

// MultiSink fans board records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordMove forwards the record to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordMove(mv coremetrics.Move) error {
	for _, s := range m.Sinks {
		if err := s.RecordMove(mv); err != nil {
			return err
		}
	}
	return nil
}

// RecordResolution forwards the record to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordResolution(r coremetrics.Resolution) error {
	for _, s := range m.Sinks {
		if err := s.RecordResolution(r); err != nil {
			return err
		}
	}
	return nil
}
