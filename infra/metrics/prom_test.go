package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kvernberg/planboard/core/metrics"
)

func TestPromSinkRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordMove(coremetrics.Move{
		BookingID: "b1", Target: "vehicle", ResourceID: "v1",
		Overlap: true, Duration: 5 * time.Millisecond,
	}))
	require.NoError(t, sink.RecordResolution(coremetrics.Resolution{
		BookingID: "b1", Outcome: "new_block", BlockID: "blk",
	}))

	if got := testutil.ToFloat64(sink.moves.WithLabelValues("vehicle", "true")); got != 1 {
		t.Fatalf("expected 1 move, got %v", got)
	}
	if got := testutil.ToFloat64(sink.resolutions.WithLabelValues("new_block")); got != 1 {
		t.Fatalf("expected 1 resolution, got %v", got)
	}
}

func TestPromSinkReregister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPromSink(reg)
	require.NoError(t, err)
	_, err = NewPromSink(reg)
	require.NoError(t, err)
}
