package sqlite

import (
	"time"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanSessionRow scans a single session from a database row
func ScanSessionRow(scanner Scanner) (*SessionRow, error) {
	row := &SessionRow{}
	var completedAt string

	if err := scanner.Scan(&row.ID, &row.Title, &row.Minutes, &completedAt); err != nil {
		return nil, err
	}

	t, err := ParseTimeFromDB(completedAt)
	if err != nil {
		return nil, err
	}
	row.CompletedAt = t

	return row, nil
}

// ScanSessionRows scans multiple sessions from database rows
func ScanSessionRows(rows Rows) ([]*SessionRow, error) {
	return scanAll(rows, ScanSessionRow)
}

// ScanTitleTotal scans one per-title aggregate
func ScanTitleTotal(scanner Scanner) (*TitleTotal, error) {
	total := &TitleTotal{}
	var lastUnix int64

	if err := scanner.Scan(&total.Title, &total.SessionCount, &total.TotalMinutes, &lastUnix); err != nil {
		return nil, err
	}
	total.LastSession = time.Unix(0, lastUnix)

	return total, nil
}

// ScanTitleTotals scans multiple per-title aggregates
func ScanTitleTotals(rows Rows) ([]*TitleTotal, error) {
	return scanAll(rows, ScanTitleTotal)
}

// ScanDayTotal scans one per-day aggregate
func ScanDayTotal(scanner Scanner) (*DayTotal, error) {
	total := &DayTotal{}
	if err := scanner.Scan(&total.Day, &total.SessionCount, &total.TotalMinutes); err != nil {
		return nil, err
	}
	return total, nil
}

// ScanDayTotals scans multiple per-day aggregates
func ScanDayTotals(rows Rows) ([]*DayTotal, error) {
	return scanAll(rows, ScanDayTotal)
}

func scanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
