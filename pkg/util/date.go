package util

import "time"

// DayLayout is the calendar-day format used by the snapshot archive.
const DayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD date. Returns (t, true) if it parsed.
func ParseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DayString formats a time as the archive's calendar-day key.
func DayString(t time.Time) string {
	return t.Format(DayLayout)
}
