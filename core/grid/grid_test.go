package grid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kvernberg/planboard/core/model"
)

func TestTimeToSegmentBounds(t *testing.T) {
	cases := map[string]int{
		"06:00": 0,
		"06:29": 0,
		"06:30": 1,
		"10:00": 8,
		"17:30": 23,
		"17:45": 23, // clamped, not out of range
		"23:00": 23,
		"05:00": 0,
		"00:00": 0,
	}
	for in, want := range cases {
		if got := TimeToSegment(in); got != want {
			t.Fatalf("TimeToSegment(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestTimeToSegmentMonotonic(t *testing.T) {
	prev := -1
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m += 5 {
			seg := TimeToSegment(fmt.Sprintf("%02d:%02d", h, m))
			if seg < 0 || seg >= SegmentsPerDay {
				t.Fatalf("segment %d out of range for %02d:%02d", seg, h, m)
			}
			if seg < prev {
				t.Fatalf("segment decreased at %02d:%02d: %d < %d", h, m, seg, prev)
			}
			prev = seg
		}
	}
}

func TestTimeToSegmentMalformed(t *testing.T) {
	for _, in := range []string{"", "noon", "12", "ab:cd", "12:xx"} {
		if got := TimeToSegment(in); got != 0 {
			t.Fatalf("TimeToSegment(%q) = %d, want 0", in, got)
		}
	}
}

func TestSegmentLabel(t *testing.T) {
	assert.Equal(t, "06:00", SegmentLabel(0))
	assert.Equal(t, "10:30", SegmentLabel(9))
	assert.Equal(t, "17:30", SegmentLabel(23))
}

func TestSpanOfSingleDay(t *testing.T) {
	days := []string{"2026-03-02"}
	w := model.TimeWindow{StartDate: "2026-03-02", StartTime: "10:00", EndTime: "11:00"}
	s := SpanOf(w, days)
	assert.Equal(t, 8, s.ColStart)
	assert.Equal(t, 2, s.ColSpan)
}

func TestSpanOfMissingEndCollapsesToOneSegment(t *testing.T) {
	days := []string{"2026-03-02"}
	w := model.TimeWindow{StartDate: "2026-03-02", StartTime: "17:45"}
	s := SpanOf(w, days)
	assert.Equal(t, 23, s.ColStart)
	assert.Equal(t, 1, s.ColSpan)
	assert.LessOrEqual(t, s.End(), SegmentsPerDay)
}

func TestSpanOfClampsToWindow(t *testing.T) {
	days := []string{"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06"}
	total := len(days) * SegmentsPerDay
	windows := []model.TimeWindow{
		{StartDate: "2026-02-27", StartTime: "08:00", EndDate: "2026-03-03", EndTime: "12:00"},
		{StartDate: "2026-03-05", StartTime: "08:00", EndDate: "2026-03-10", EndTime: "23:59"},
		{StartDate: "2026-03-02", StartTime: "", EndDate: "", EndTime: ""},
		{},
	}
	for _, w := range windows {
		s := SpanOf(w, days)
		if s.ColStart < 0 || s.End() > total || s.ColSpan < 1 {
			t.Fatalf("span %+v out of bounds for window %+v", s, w)
		}
	}
}

func TestInWindow(t *testing.T) {
	days := []string{"2026-03-02", "2026-03-03"}
	assert.True(t, InWindow(model.TimeWindow{StartDate: "2026-03-03", StartTime: "08:00"}, days))
	assert.True(t, InWindow(model.TimeWindow{StartDate: "2026-03-01", EndDate: "2026-03-05"}, days))
	assert.False(t, InWindow(model.TimeWindow{StartDate: "2026-03-04"}, days))
	assert.False(t, InWindow(model.TimeWindow{StartDate: "2026-02-20"}, days))
	// no dates at all: still rendered, clamped to the first day
	assert.True(t, InWindow(model.TimeWindow{}, days))
}

func TestDayRangeNavigation(t *testing.T) {
	r := DayRange{Focus: "2026-03-04"} // a Wednesday
	assert.Equal(t, []string{"2026-03-04"}, r.Days())
	assert.Equal(t, "2026-03-05", r.Next().Focus)
	assert.Equal(t, "2026-03-03", r.Prev().Focus)

	week := r.Toggle()
	assert.True(t, week.Week)
	assert.Equal(t, "2026-03-04", week.Focus) // focus preserved
	assert.Equal(t, []string{"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06"}, week.Days())
	assert.Equal(t, "2026-03-11", week.Next().Focus)

	back := week.Toggle()
	assert.False(t, back.Week)
	assert.Equal(t, "2026-03-04", back.Focus)
}

func TestDayRangeSundayFocus(t *testing.T) {
	r := DayRange{Focus: "2026-03-08", Week: true} // a Sunday
	days := r.Days()
	assert.Equal(t, "2026-03-02", days[0])
	assert.Len(t, days, WeekDays)
}
