package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvernberg/planboard/stats"
)

var sample = stats.FleetSummary{
	Vehicles: []stats.VehicleUtilization{
		{VehicleID: "v1", Name: "Truck 1", BusySegments: 4, Utilization: 4.0 / 24.0},
		{VehicleID: "v2", Name: "Truck 2", BusySegments: 2, Utilization: 2.0 / 24.0},
	},
	Mean: 0.125, StdDev: 0.0589, Max: 4.0 / 24.0,
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sample))

	var got stats.FleetSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample, got)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "vehicle_id,name,busy_segments,utilization", lines[0])
	assert.Equal(t, "v1,Truck 1,4,0.1667", lines[1])
}
