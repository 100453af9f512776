package services

import (
	"context"
	"time"

	"pomo/internal/domain"
)

// TimeRange represents a time period with start and end times
type TimeRange struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// SearchCriteria filters sessions for history and statistics
type SearchCriteria struct {
	TimeRange  *TimeRange `json:"time_range,omitempty"`
	TextFilter string     `json:"text_filter,omitempty"`
	Limit      int        `json:"limit,omitempty"`
}

// SessionEntry is one completed session prepared for display
type SessionEntry struct {
	Title       string    `json:"title" yaml:"title"`
	Minutes     int       `json:"minutes" yaml:"minutes"`
	CompletedAt time.Time `json:"completed_at" yaml:"completed_at"`
	Duration    string    `json:"duration" yaml:"duration"`
}

// TitleStatistics totals the sessions that share a title
type TitleStatistics struct {
	Title        string    `json:"title" yaml:"title"`
	SessionCount int       `json:"session_count" yaml:"session_count"`
	TotalMinutes int       `json:"total_minutes" yaml:"total_minutes"`
	TotalTime    string    `json:"total_time" yaml:"total_time"`
	LastSession  time.Time `json:"last_session" yaml:"last_session"`
}

// DayStatistics totals the sessions completed on one calendar day
type DayStatistics struct {
	Day          time.Time `json:"day" yaml:"day"`
	SessionCount int       `json:"session_count" yaml:"session_count"`
	TotalMinutes int       `json:"total_minutes" yaml:"total_minutes"`
	TotalTime    string    `json:"total_time" yaml:"total_time"`
}

// Summary is the result of the stats command
type Summary struct {
	SessionCount  int                `json:"session_count" yaml:"session_count"`
	TotalMinutes  int                `json:"total_minutes" yaml:"total_minutes"`
	TotalTime     string             `json:"total_time" yaml:"total_time"`
	ByTitle       []*TitleStatistics `json:"by_title" yaml:"by_title"`
	ByDay         []*DayStatistics   `json:"by_day" yaml:"by_day"`
	CurrentStreak int                `json:"current_streak" yaml:"current_streak"`
	LongestStreak int                `json:"longest_streak" yaml:"longest_streak"`
}

// Source supplies the records the report index is built from
type Source interface {
	ReadAll(ctx context.Context) ([]domain.SessionRecord, error)
}

// TimeService handles time-related parsing and formatting
type TimeService interface {
	ParseTimeRange(timeStr string) (*TimeRange, error)
	FormatMinutes(minutes int) string
	IsToday(t time.Time) bool
	GetTodayRange() *TimeRange
}

// HistoryService lists completed sessions
type HistoryService interface {
	Recent(ctx context.Context, criteria SearchCriteria) ([]*SessionEntry, error)
}

// ReportingService aggregates completed sessions
type ReportingService interface {
	Summary(ctx context.Context, criteria SearchCriteria) (*Summary, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TimeService      TimeService
	HistoryService   HistoryService
	ReportingService ReportingService
}
