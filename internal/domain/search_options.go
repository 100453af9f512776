package domain

import "time"

// SearchOptions represents search criteria for session records.
// This is a domain model that mirrors the database search options
// but belongs to the domain layer for proper separation of concerns.
type SearchOptions struct {
	Since *time.Time
	Until *time.Time
	Title *string
	Limit int
}
