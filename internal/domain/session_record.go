package domain

import (
	"strings"
	"time"
)

// TimestampLayout is how completion times are written to the session log:
// local wall time with microseconds and no zone, e.g. 2025-07-21T17:12:34.123456.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// SessionRecord is one completed work interval.
// This is a pure domain model without storage-specific concerns.
type SessionRecord struct {
	Title       string
	Minutes     int
	CompletedAt time.Time
}

// NewSessionRecord creates a record for a work interval that just finished.
func NewSessionRecord(title string, minutes int, completedAt time.Time) SessionRecord {
	return SessionRecord{
		Title:       title,
		Minutes:     minutes,
		CompletedAt: completedAt,
	}
}

// IsValid checks if the record has valid data.
func (r SessionRecord) IsValid() bool {
	if strings.TrimSpace(r.Title) == "" {
		return false
	}
	if r.Minutes <= 0 {
		return false
	}
	return !r.CompletedAt.IsZero()
}

// Timestamp returns the completion time in log format, in local time.
func (r SessionRecord) Timestamp() string {
	return r.CompletedAt.Local().Format(TimestampLayout)
}

// Duration returns the planned length of the session given the length of one minute.
func (r SessionRecord) Duration(unit time.Duration) time.Duration {
	return time.Duration(r.Minutes) * unit
}

// ParseTimestamp parses a log timestamp. Fractional seconds are optional and
// RFC 3339 values with a zone are accepted too.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local)
	if err == nil {
		return t, nil
	}
	if t, rfcErr := time.Parse(time.RFC3339Nano, s); rfcErr == nil {
		return t, nil
	}
	return time.Time{}, err
}
