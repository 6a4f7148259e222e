package grid

import "time"

// DateFormat is the ISO day format used across the board.
const DateFormat = "2006-01-02"

// WeekDays is the number of days shown in week view (Monday-Friday).
const WeekDays = 5

// DayRange is the currently displayed slice of the calendar: either a
// single focused day or the Monday-Friday work week containing it.
type DayRange struct {
	Focus string // ISO date the user is looking at
	Week  bool
}

// Days returns the displayed ISO dates in order.
func (r DayRange) Days() []string {
	f := r.focusTime()
	if !r.Week {
		return []string{f.Format(DateFormat)}
	}
	monday := f.AddDate(0, 0, -mondayOffset(f))
	days := make([]string, WeekDays)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i).Format(DateFormat)
	}
	return days
}

// Columns returns the total column count of the displayed range.
func (r DayRange) Columns() int {
	if r.Week {
		return WeekDays * SegmentsPerDay
	}
	return SegmentsPerDay
}

// Next moves forward one day in day view or one week in week view.
func (r DayRange) Next() DayRange { return r.shift(1) }

// Prev moves backward one day in day view or one week in week view.
func (r DayRange) Prev() DayRange { return r.shift(-1) }

// Toggle switches between day and week view. The focused date is kept so
// the user lands on the same day they were looking at.
func (r DayRange) Toggle() DayRange {
	r.Week = !r.Week
	return r
}

func (r DayRange) shift(dir int) DayRange {
	step := 1
	if r.Week {
		step = 7
	}
	r.Focus = r.focusTime().AddDate(0, 0, dir*step).Format(DateFormat)
	return r
}

func (r DayRange) focusTime() time.Time {
	t, err := time.Parse(DateFormat, r.Focus)
	if err != nil {
		return time.Now()
	}
	return t
}

func mondayOffset(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 { // Sunday
		return 6
	}
	return wd - 1
}
