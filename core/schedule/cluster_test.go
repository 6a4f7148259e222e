package schedule

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvernberg/planboard/core/model"
)

var testDays = []string{"2026-03-02"}

func booking(id, start, end string) model.Booking {
	return model.Booking{
		ID: id,
		Window: model.TimeWindow{
			StartDate: "2026-03-02", StartTime: start,
			EndDate: "2026-03-02", EndTime: end,
		},
	}
}

func clusterIDs(c Cluster) []string {
	ids := make([]string, 0, c.Size())
	for _, p := range c.Bookings {
		ids = append(ids, p.Booking.ID)
	}
	sort.Strings(ids)
	return ids
}

func TestClustersTransitive(t *testing.T) {
	// A overlaps B, B overlaps C, A and C do not touch.
	a := booking("a", "08:00", "09:00")
	b := booking("b", "08:30", "10:00")
	c := booking("c", "09:30", "11:00")
	clusters := Clusters(Place([]model.Booking{a, b, c}, testDays))
	require.Len(t, clusters, 1)
	assert.Equal(t, []string{"a", "b", "c"}, clusterIDs(clusters[0]))
	assert.Equal(t, 4, clusters[0].ColStart)
	assert.Equal(t, 10, clusters[0].ColEnd)
}

func TestClustersDisjoint(t *testing.T) {
	clusters := Clusters(Place([]model.Booking{
		booking("a", "06:00", "07:00"),
		booking("b", "09:00", "10:00"),
		booking("c", "14:00", "15:00"),
	}, testDays))
	require.Len(t, clusters, 3)
	for _, c := range clusters {
		assert.Equal(t, 1, c.Size())
	}
}

func TestClustersPermutationInvariant(t *testing.T) {
	bookings := []model.Booking{
		booking("a", "08:00", "09:00"),
		booking("b", "08:30", "10:00"),
		booking("c", "09:30", "11:00"),
		booking("d", "13:00", "14:00"),
		booking("e", "13:30", "15:00"),
		booking("f", "16:00", "17:00"),
	}
	reference := Clusters(Place(bookings, testDays))

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := make([]model.Booking, len(bookings))
		copy(shuffled, bookings)
		rng.Shuffle(len(shuffled), func(x, y int) { shuffled[x], shuffled[y] = shuffled[y], shuffled[x] })
		got := Clusters(Place(shuffled, testDays))
		require.Len(t, got, len(reference))
		for j := range got {
			assert.Equal(t, clusterIDs(reference[j]), clusterIDs(got[j]))
			assert.Equal(t, reference[j].ColStart, got[j].ColStart)
			assert.Equal(t, reference[j].ColEnd, got[j].ColEnd)
		}
	}
}

func TestPlaceSkipsBookingsOutsideWindow(t *testing.T) {
	inside := booking("in", "08:00", "09:00")
	outside := booking("out", "08:00", "09:00")
	outside.Window.StartDate = "2026-04-01"
	outside.Window.EndDate = "2026-04-01"
	placed := Place([]model.Booking{inside, outside}, testDays)
	require.Len(t, placed, 1)
	assert.Equal(t, "in", placed[0].Booking.ID)
}

func TestExpandGroupsByBlock(t *testing.T) {
	a := booking("a", "08:00", "09:00")
	b := booking("b", "08:30", "10:00")
	c := booking("c", "09:30", "11:00")
	a.BlockID, b.BlockID = "blk", "blk"
	blocks := map[string]model.Block{
		"blk": {ID: "blk", Name: "Morning run", BookingIDs: []string{"a", "b"}},
	}
	clusters := Clusters(Place([]model.Booking{a, b, c}, testDays))
	require.Len(t, clusters, 1)
	items := Expand(clusters[0], blocks)
	require.Len(t, items, 2)

	var blockItem, soloItem Item
	for _, it := range items {
		if it.IsBlock() {
			blockItem = it
		} else {
			soloItem = it
		}
	}
	assert.Equal(t, "blk", blockItem.BlockID)
	assert.Equal(t, "Morning run (2)", blockItem.Label)
	assert.Equal(t, 4, blockItem.ColStart)
	assert.Equal(t, 4, blockItem.ColSpan) // union of a [4,6) and b [5,8)
	assert.Equal(t, "c", soloItem.Bookings[0].ID)
}

func TestExpandUnknownBlockDegradesToStandalone(t *testing.T) {
	a := booking("a", "08:00", "09:00")
	a.BlockID = "missing"
	clusters := Clusters(Place([]model.Booking{a}, testDays))
	items := Expand(clusters[0], map[string]model.Block{})
	require.Len(t, items, 1)
	assert.False(t, items[0].IsBlock())
}

func TestPackLanesNoRowOverlap(t *testing.T) {
	items := []Item{
		{ColStart: 0, ColSpan: 4, startKey: "06:00"},
		{ColStart: 2, ColSpan: 4, startKey: "07:00"},
		{ColStart: 4, ColSpan: 2, startKey: "08:00"},
		{ColStart: 6, ColSpan: 6, startKey: "09:00"},
		{ColStart: 8, ColSpan: 2, startKey: "10:00"},
	}
	packed, rows := PackLanes(items)
	require.NotZero(t, rows)
	for i := 0; i < len(packed); i++ {
		for j := i + 1; j < len(packed); j++ {
			if packed[i].Row != packed[j].Row {
				continue
			}
			overlap := packed[i].ColStart < packed[j].ColStart+packed[j].ColSpan &&
				packed[j].ColStart < packed[i].ColStart+packed[i].ColSpan
			if overlap {
				t.Fatalf("items %d and %d share row %d but overlap", i, j, packed[i].Row)
			}
		}
	}
}

func TestPackLanesReusesFreedRows(t *testing.T) {
	items := []Item{
		{ColStart: 0, ColSpan: 2, startKey: "06:00"},
		{ColStart: 1, ColSpan: 2, startKey: "06:30"},
		{ColStart: 3, ColSpan: 2, startKey: "07:30"},
	}
	packed, rows := PackLanes(items)
	assert.Equal(t, 2, rows)
	// third item starts after the first ends, so it reuses row 0
	assert.Equal(t, 0, packed[2].Row)
}

func TestFiltersExcludeCancelled(t *testing.T) {
	b1 := booking("a", "08:00", "09:00")
	b1.Assignment.VehicleID = "v1"
	b2 := booking("b", "09:00", "10:00")
	b2.Assignment.VehicleID = "v1"
	b2.Status = model.StatusCancelled

	assert.Len(t, ForVehicle([]model.Booking{b1, b2}, "v1"), 1)
	b2.Assignment = model.ResourceAssignment{}
	assert.Empty(t, Unassigned([]model.Booking{b2}))
}

func TestBuildLane(t *testing.T) {
	a := booking("a", "08:00", "09:00")
	a.Assignment.VehicleID = "v1"
	b := booking("b", "08:30", "09:30")
	b.Assignment.VehicleID = "v1"
	lane := BuildLane(ForVehicle([]model.Booking{a, b}, "v1"), nil, testDays)
	assert.Equal(t, 2, lane.Rows)
	assert.Len(t, lane.Items, 2)
}
