package sqlite

import "time"

// SessionRow is one session as stored in the report index
type SessionRow struct {
	ID          int64
	Title       string
	Minutes     int
	CompletedAt time.Time
}

// TitleTotal aggregates sessions sharing a title
type TitleTotal struct {
	Title        string
	SessionCount int
	TotalMinutes int
	LastSession  time.Time
}

// DayTotal aggregates sessions completed on one local calendar day
type DayTotal struct {
	Day          string // YYYY-MM-DD
	SessionCount int
	TotalMinutes int
}
