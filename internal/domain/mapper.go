package domain

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "pomo/internal/errors"
	"pomo/internal/repository/sqlite"
)

// LogHeader is the first row of every session log.
var LogHeader = []string{"title", "minutes", "datetime"}

// SessionRecordMapper handles conversion between domain records, log rows and
// database rows.
type SessionRecordMapper struct{}

// NewSessionRecordMapper creates a new SessionRecordMapper instance.
func NewSessionRecordMapper() *SessionRecordMapper {
	return &SessionRecordMapper{}
}

// ToRow converts a record to its log columns.
func (m *SessionRecordMapper) ToRow(r SessionRecord) []string {
	return []string{r.Title, strconv.Itoa(r.Minutes), r.Timestamp()}
}

// FromRow converts log columns to a record. Rows written by older versions carry a
// fourth "type" column; only work rows are sessions.
func (m *SessionRecordMapper) FromRow(row []string) (SessionRecord, error) {
	if len(row) < len(LogHeader) {
		return SessionRecord{}, apperrors.NewValidationError(
			fmt.Sprintf("log row has %d columns, want %d", len(row), len(LogHeader)), nil)
	}
	if len(row) > len(LogHeader) && row[3] != "" && row[3] != string(PhaseWork) {
		return SessionRecord{}, apperrors.NewValidationError("log row is not a work session", nil).
			WithContext("type", row[3])
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil || minutes <= 0 {
		return SessionRecord{}, apperrors.NewValidationError("minutes must be a positive integer", err).
			WithContext("value", row[1])
	}

	completedAt, err := ParseTimestamp(row[2])
	if err != nil {
		return SessionRecord{}, apperrors.NewValidationError("invalid datetime", err).
			WithContext("value", row[2])
	}

	return SessionRecord{Title: row[0], Minutes: minutes, CompletedAt: completedAt}, nil
}

// IsHeader reports whether row is the log header.
func (m *SessionRecordMapper) IsHeader(row []string) bool {
	return len(row) >= len(LogHeader) &&
		row[0] == LogHeader[0] && row[1] == LogHeader[1] && row[2] == LogHeader[2]
}

// ToDatabase converts a domain record to a database row.
func (m *SessionRecordMapper) ToDatabase(r SessionRecord) sqlite.SessionRow {
	return sqlite.SessionRow{
		Title:       r.Title,
		Minutes:     r.Minutes,
		CompletedAt: r.CompletedAt,
	}
}

// FromDatabase converts a database row to a domain record.
func (m *SessionRecordMapper) FromDatabase(row sqlite.SessionRow) SessionRecord {
	return SessionRecord{
		Title:       row.Title,
		Minutes:     row.Minutes,
		CompletedAt: row.CompletedAt,
	}
}

// ToDatabaseSlice converts a slice of domain records to database rows.
func (m *SessionRecordMapper) ToDatabaseSlice(records []SessionRecord) []*sqlite.SessionRow {
	rows := make([]*sqlite.SessionRow, len(records))
	for i, r := range records {
		row := m.ToDatabase(r)
		rows[i] = &row
	}
	return rows
}

// FromDatabaseSlice converts a slice of database rows to domain records.
func (m *SessionRecordMapper) FromDatabaseSlice(rows []*sqlite.SessionRow) []SessionRecord {
	records := make([]SessionRecord, len(rows))
	for i, row := range rows {
		records[i] = m.FromDatabase(*row)
	}
	return records
}

// SearchOptionsToDatabase converts domain search options to database search options.
func (m *SessionRecordMapper) SearchOptionsToDatabase(opts SearchOptions) sqlite.SearchOptions {
	return sqlite.SearchOptions{
		Since: opts.Since,
		Until: opts.Until,
		Title: opts.Title,
		Limit: opts.Limit,
	}
}

// Mapper provides access to all domain mappers.
type Mapper struct {
	SessionRecord *SessionRecordMapper
}

// NewMapper creates a new Mapper with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		SessionRecord: NewSessionRecordMapper(),
	}
}
