package util

import "time"

// DateLayout is the calendar date format used by requests and upstream APIs.
const DateLayout = "2006-01-02"

// CalendarDate truncates t to its calendar date in loc, returned as UTC midnight so
// date arithmetic is free of DST shifts.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b (negative when b is earlier).
func DaysBetween(a, b time.Time) int {
	a = CalendarDate(a, nil)
	b = CalendarDate(b, nil)
	return int(b.Sub(a).Hours() / 24)
}
