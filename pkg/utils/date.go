package utils

import (
	"fmt"
	"time"

	"stock-event-calendar/pkg/common"
)

// ParseDate parses a yyyy-MM-dd calendar date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(common.DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-MM-dd", s)
	}
	return t, nil
}

// ParseMonth parses a yyyy-MM month and returns its first day in loc.
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(common.MonthLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected yyyy-MM", s)
	}
	return t, nil
}

// DateKey renders t as its calendar date in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(common.DateLayout)
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// MonthGridDays returns every day shown on a Sunday-first month grid: from the
// start of the week containing the 1st to the end of the week containing the last day.
func MonthGridDays(month time.Time, loc *time.Location) []time.Time {
	y, m, _ := month.In(loc).Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// ToPointer returns a pointer to v.
func ToPointer[T any](v T) *T {
	return &v
}
