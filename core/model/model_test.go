package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeWindowNormalized(t *testing.T) {
	w := TimeWindow{StartDate: "2026-03-02", StartTime: "09:00"}.Normalized()
	assert.Equal(t, "2026-03-02", w.EndDate)

	// explicit end survives
	w = TimeWindow{StartDate: "2026-03-02", StartTime: "09:00", EndDate: "2026-03-03", EndTime: "10:00"}.Normalized()
	assert.Equal(t, "2026-03-03", w.EndDate)
	assert.Equal(t, "10:00", w.EndTime)
}

func TestResourceAssignmentUnassigned(t *testing.T) {
	assert.True(t, ResourceAssignment{}.Unassigned())
	assert.False(t, ResourceAssignment{VehicleID: "v1"}.Unassigned())
	assert.False(t, ResourceAssignment{DriverID: "d1"}.Unassigned())
}

func TestVehicleSoleDriver(t *testing.T) {
	assert.Equal(t, "d1", Vehicle{AuthorizedDrivers: []string{"d1"}}.SoleDriver())
	assert.Empty(t, Vehicle{AuthorizedDrivers: []string{"d1", "d2"}}.SoleDriver())
	assert.Empty(t, Vehicle{}.SoleDriver())
}

func TestBlockWithout(t *testing.T) {
	blk := Block{BookingIDs: []string{"a", "b", "c"}}
	assert.Equal(t, []string{"a", "c"}, blk.Without("b"))
	assert.Equal(t, []string{"a", "b", "c"}, blk.BookingIDs, "receiver is not mutated")
	assert.True(t, blk.Contains("a"))
	assert.False(t, blk.Contains("z"))
}

func TestNormalizeBlockName(t *testing.T) {
	assert.Equal(t, "Morning run", NormalizeBlockName("  Morning run  "))
	assert.Equal(t, DefaultBlockName, NormalizeBlockName("   "))
	assert.Equal(t, DefaultBlockName, NormalizeBlockName(""))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "booked", StatusBooked.String())
	assert.Equal(t, "planned", StatusPlanned.String())
	assert.Equal(t, "cancelled", StatusCancelled.String())
}
