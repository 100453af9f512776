package sqlite

import (
	"time"
)

// DayLayout is the calendar-day key used for per-day grouping
const DayLayout = "2006-01-02"

// FormatTimeForDB formats a time.Time value as RFC3339 string for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// FormatDayForDB returns the local calendar day of t
func FormatDayForDB(t time.Time) string {
	return t.Local().Format(DayLayout)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
