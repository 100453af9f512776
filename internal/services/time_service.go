package services

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"pomo/internal/errors"
)

var timeShorthand = regexp.MustCompile(`^(\d+)(mo|m|h|d|w|y)$`)

// timeServiceImpl implements the TimeService interface
type timeServiceImpl struct {
	now func() time.Time
}

// NewTimeService creates a new TimeService instance
func NewTimeService() TimeService {
	return NewTimeServiceWithClock(time.Now)
}

// NewTimeServiceWithClock creates a TimeService that reads the current time from now
func NewTimeServiceWithClock(now func() time.Time) TimeService {
	return &timeServiceImpl{now: now}
}

// ParseTimeRange converts time shorthand ("30m", "2h", "1d", "2w", "3mo", "1y")
// to the range ending now
func (t *timeServiceImpl) ParseTimeRange(timeStr string) (*TimeRange, error) {
	if timeStr == "" {
		return nil, errors.NewValidationError("time range cannot be empty", nil)
	}

	matches := timeShorthand.FindStringSubmatch(timeStr)
	if matches == nil {
		return nil, errors.NewInvalidInputError("time_range", timeStr, "expected a number followed by m, h, d, w, mo or y")
	}
	n, err := strconv.Atoi(matches[1])
	if err != nil || n <= 0 {
		return nil, errors.NewInvalidInputError("time_range", timeStr, "amount must be a positive integer")
	}

	now := t.now()
	var start time.Time
	switch matches[2] {
	case "m":
		start = now.Add(-time.Duration(n) * time.Minute)
	case "h":
		start = now.Add(-time.Duration(n) * time.Hour)
	case "d":
		start = now.AddDate(0, 0, -n)
	case "w":
		start = now.AddDate(0, 0, -7*n)
	case "mo":
		start = now.AddDate(0, -n, 0)
	case "y":
		start = now.AddDate(-n, 0, 0)
	}

	return &TimeRange{Start: start, End: now}, nil
}

// FormatMinutes formats a minute count as "45m" or "2h 5m"
func (t *timeServiceImpl) FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	hours := minutes / 60
	minutes %= 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// IsToday checks if a given time is within today's date range
func (t *timeServiceImpl) IsToday(timeValue time.Time) bool {
	now := t.now()
	y1, m1, d1 := timeValue.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// GetTodayRange returns the time range for today (start of day to now)
func (t *timeServiceImpl) GetTodayRange() *TimeRange {
	now := t.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return &TimeRange{Start: startOfDay, End: now}
}
