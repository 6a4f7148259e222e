// Package schedule derives the rendered schedule grid from the booking
// snapshot: per-resource overlap clusters, block grouping within a
// cluster, and greedy row packing so bars never collide visually.
package schedule

import (
	"sort"

	"github.com/kvernberg/planboard/core/grid"
	"github.com/kvernberg/planboard/core/model"
)

// Placed pairs a booking with its column span for the current window.
type Placed struct {
	Booking model.Booking
	Span    grid.Span
}

// Place computes spans for every booking visible in the window.
func Place(bookings []model.Booking, days []string) []Placed {
	placed := make([]Placed, 0, len(bookings))
	for _, b := range bookings {
		if !grid.InWindow(b.Window, days) {
			continue
		}
		placed = append(placed, Placed{Booking: b, Span: grid.SpanOf(b.Window, days)})
	}
	return placed
}

// Cluster is a maximal set of transitively column-overlapping bookings on
// one resource lane. Recomputed on every render, never persisted.
type Cluster struct {
	Bookings []Placed
	ColStart int
	ColEnd   int
}

// Size returns the number of member bookings.
func (c Cluster) Size() int { return len(c.Bookings) }

// Contains reports whether the cluster holds the given booking id.
func (c Cluster) Contains(bookingID string) bool {
	for _, p := range c.Bookings {
		if p.Booking.ID == bookingID {
			return true
		}
	}
	return false
}

// Clusters partitions the placed bookings into transitive-overlap
// clusters. The input is sorted by column start (start time string as
// tie-break) before merging, which makes the partition independent of
// the arrival order of the bookings.
func Clusters(placed []Placed) []Cluster {
	items := make([]Placed, len(placed))
	copy(items, placed)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Span.ColStart != items[j].Span.ColStart {
			return items[i].Span.ColStart < items[j].Span.ColStart
		}
		return items[i].Booking.Window.StartTime < items[j].Booking.Window.StartTime
	})

	var clusters []Cluster
	for _, it := range items {
		start, end := it.Span.ColStart, it.Span.End()
		merged := Cluster{Bookings: []Placed{it}, ColStart: start, ColEnd: end}
		rest := clusters[:0]
		for _, c := range clusters {
			if start < c.ColEnd && c.ColStart < end {
				merged.Bookings = append(c.Bookings, merged.Bookings...)
				if c.ColStart < merged.ColStart {
					merged.ColStart = c.ColStart
				}
				if c.ColEnd > merged.ColEnd {
					merged.ColEnd = c.ColEnd
				}
				start, end = merged.ColStart, merged.ColEnd
			} else {
				rest = append(rest, c)
			}
		}
		clusters = append(rest, merged)
	}
	// Stable presentation order regardless of merge history.
	sort.SliceStable(clusters, func(i, j int) bool { return clusters[i].ColStart < clusters[j].ColStart })
	for i := range clusters {
		sortPlaced(clusters[i].Bookings)
	}
	return clusters
}

func sortPlaced(items []Placed) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Span.ColStart != items[j].Span.ColStart {
			return items[i].Span.ColStart < items[j].Span.ColStart
		}
		if items[i].Booking.Window.StartTime != items[j].Booking.Window.StartTime {
			return items[i].Booking.Window.StartTime < items[j].Booking.Window.StartTime
		}
		return items[i].Booking.ID < items[j].Booking.ID
	})
}
