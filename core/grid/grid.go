// Package grid maps booking time windows onto the integer column grid of
// the schedule board. The visible window runs 06:00-18:00 in 30-minute
// segments; everything outside it clamps to the nearest edge so a booking
// is never dropped from rendering because of its times.
package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kvernberg/planboard/core/model"
)

const (
	// SegmentsPerDay is the number of 30-minute columns per displayed day.
	SegmentsPerDay = 24
	// DayStartHour is the first visible hour of a day column group.
	DayStartHour = 6
	// SegmentMinutes is the grid resolution.
	SegmentMinutes = 30
)

// TimeToSegment converts a "HH:MM" time of day to a segment index in
// [0, SegmentsPerDay). Unparseable or empty input degrades to segment 0.
func TimeToSegment(t string) int {
	hh, mm, ok := strings.Cut(t, ":")
	if !ok {
		return 0
	}
	hour, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil {
		return 0
	}
	minute, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil {
		return 0
	}
	seg := (hour*60 + minute - DayStartHour*60) / SegmentMinutes
	if seg < 0 {
		return 0
	}
	if seg >= SegmentsPerDay {
		return SegmentsPerDay - 1
	}
	return seg
}

// SegmentLabel returns the wall-clock label of a segment's left edge.
func SegmentLabel(seg int) string {
	minutes := DayStartHour*60 + seg*SegmentMinutes
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Span is a booking's half-open [ColStart, ColStart+ColSpan) range on the
// grid for one display window.
type Span struct {
	ColStart int
	ColSpan  int
}

// End returns the exclusive end column.
func (s Span) End() int { return s.ColStart + s.ColSpan }

// Overlaps reports whether two half-open spans intersect.
func (s Span) Overlaps(o Span) bool {
	return s.ColStart < o.End() && o.ColStart < s.End()
}

// dayIndex resolves an ISO date to its index within the displayed days,
// clamping dates outside the window to the first or last day. ISO dates
// compare correctly as strings.
func dayIndex(date string, days []string) int {
	for i, d := range days {
		if d == date {
			return i
		}
	}
	if date < days[0] {
		return 0
	}
	return len(days) - 1
}

// SpanOf computes the booking window's column span within the displayed
// days. Spans that exceed the window clamp to its edges rather than
// disappearing, and the result always satisfies ColStart >= 0 and
// End() <= len(days)*SegmentsPerDay with ColSpan >= 1.
func SpanOf(w model.TimeWindow, days []string) Span {
	w = w.Normalized()
	startCol := dayIndex(w.StartDate, days)*SegmentsPerDay + TimeToSegment(w.StartTime)
	endCol := dayIndex(w.EndDate, days)*SegmentsPerDay + TimeToSegment(w.EndTime)
	span := endCol - startCol
	if span < 1 {
		span = 1
	}
	total := len(days) * SegmentsPerDay
	if startCol+span > total {
		span = total - startCol
	}
	return Span{ColStart: startCol, ColSpan: span}
}

// InWindow reports whether the booking window's date range intersects the
// displayed days. A booking with no start date at all still renders
// (clamped to the first day) rather than vanishing from the board.
func InWindow(w model.TimeWindow, days []string) bool {
	w = w.Normalized()
	if w.StartDate == "" {
		return true
	}
	return w.StartDate <= days[len(days)-1] && w.EndDate >= days[0]
}
