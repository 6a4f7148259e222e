package schedule

import (
	"fmt"
	"sort"

	"github.com/kvernberg/planboard/core/model"
)

// Item is one renderable bar on a lane: a standalone booking or a block
// group spanning the union of its members' columns.
type Item struct {
	ColStart int
	ColSpan  int
	Row      int
	Bookings []model.Booking
	BlockID  string // set when the bar represents a block group
	Label    string
	// startKey is the tie-break used by row packing.
	startKey string
}

// IsBlock reports whether the item renders as a block bar.
func (it Item) IsBlock() bool { return it.BlockID != "" }

// Expand turns a cluster into render items: members sharing a blockID
// collapse into one block bar, everything else stays a single booking
// bar. Bookings whose blockID points at a missing block degrade to
// standalone bars instead of disappearing.
func Expand(c Cluster, blocks map[string]model.Block) []Item {
	var items []Item
	groups := make(map[string]int) // blockID -> index into items
	for _, p := range c.Bookings {
		blk, known := blocks[p.Booking.BlockID]
		if p.Booking.BlockID == "" || !known {
			items = append(items, Item{
				ColStart: p.Span.ColStart,
				ColSpan:  p.Span.ColSpan,
				Bookings: []model.Booking{p.Booking},
				Label:    p.Booking.Label(),
				startKey: p.Booking.Window.StartTime,
			})
			continue
		}
		idx, ok := groups[blk.ID]
		if !ok {
			groups[blk.ID] = len(items)
			items = append(items, Item{
				ColStart: p.Span.ColStart,
				ColSpan:  p.Span.ColSpan,
				Bookings: []model.Booking{p.Booking},
				BlockID:  blk.ID,
				startKey: p.Booking.Window.StartTime,
			})
			continue
		}
		it := &items[idx]
		it.Bookings = append(it.Bookings, p.Booking)
		end := it.ColStart + it.ColSpan
		if p.Span.End() > end {
			end = p.Span.End()
		}
		if p.Span.ColStart < it.ColStart {
			it.ColStart = p.Span.ColStart
			it.startKey = p.Booking.Window.StartTime
		}
		it.ColSpan = end - it.ColStart
	}
	for i := range items {
		if items[i].BlockID == "" {
			continue
		}
		blk := blocks[items[i].BlockID]
		items[i].Label = fmt.Sprintf("%s (%d)", blk.Name, len(items[i].Bookings))
	}
	return items
}

// PackLanes assigns each item a row so that no two items sharing a row
// overlap in columns. Greedy first-fit over items sorted by column start
// (time string tie-break); deterministic for a fixed item set.
func PackLanes(items []Item) ([]Item, int) {
	packed := make([]Item, len(items))
	copy(packed, items)
	sort.SliceStable(packed, func(i, j int) bool {
		if packed[i].ColStart != packed[j].ColStart {
			return packed[i].ColStart < packed[j].ColStart
		}
		return packed[i].startKey < packed[j].startKey
	})
	var rowEnds []int
	for i := range packed {
		it := &packed[i]
		row := -1
		for r, end := range rowEnds {
			if end <= it.ColStart {
				row = r
				break
			}
		}
		if row == -1 {
			row = len(rowEnds)
			rowEnds = append(rowEnds, 0)
		}
		it.Row = row
		rowEnds[row] = it.ColStart + it.ColSpan
	}
	return packed, len(rowEnds)
}
