package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kvernberg/planboard/core/metrics"
)

// PromSink records board activity in Prometheus metrics.
type PromSink struct {
	moves       *prometheus.CounterVec
	resolutions *prometheus.CounterVec
	moveSeconds *prometheus.HistogramVec
}

// NewPromSink registers board metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	moves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planboard_moves_total",
		Help: "Total number of applied drag-and-drop reassignments",
	}, []string{"target", "overlap"})
	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planboard_resolutions_total",
		Help: "Total number of settled overlap dialogs by outcome",
	}, []string{"outcome"})
	moveSeconds := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planboard_move_seconds",
		Help:    "Time spent applying a reassignment including re-clustering",
		Buckets: prometheus.DefBuckets,
	}, []string{"target"})

	if err := reg.Register(moves); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			moves = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(resolutions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			resolutions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(moveSeconds); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			moveSeconds = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	return &PromSink{moves: moves, resolutions: resolutions, moveSeconds: moveSeconds}, nil
}

// RecordMove increments the move counter and latency histogram.
func (s *PromSink) RecordMove(m coremetrics.Move) error {
	s.moves.WithLabelValues(m.Target, strconv.FormatBool(m.Overlap)).Inc()
	s.moveSeconds.WithLabelValues(m.Target).Observe(m.Duration.Seconds())
	return nil
}

// RecordResolution increments the resolution outcome counter.
func (s *PromSink) RecordResolution(r coremetrics.Resolution) error {
	s.resolutions.WithLabelValues(r.Outcome).Inc()
	return nil
}
