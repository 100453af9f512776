package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pomo/internal/errors"
	"pomo/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// SearchOptions contains all possible search parameters
type SearchOptions struct {
	Since *time.Time
	Until *time.Time
	Title *string
	Limit int
}

// Repository defines the interface for the session report index
type Repository interface {
	InsertSessions(ctx context.Context, rows []*SessionRow) error
	SearchSessions(ctx context.Context, opts SearchOptions) ([]*SessionRow, error)
	SummarizeByTitle(ctx context.Context, opts SearchOptions) ([]*TitleTotal, error)
	SummarizeByDay(ctx context.Context, opts SearchOptions) ([]*DayTotal, error)
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// NewMemory creates a repository backed by a private in-memory database.
// The CSV session log stays the source of truth; the index lives only for the
// duration of a report command.
func NewMemory(ctx context.Context) (*SQLiteRepository, error) {
	return open(ctx, ":memory:")
}

func open(ctx context.Context, dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// InsertSessions adds rows to the index in a single transaction and assigns their IDs
func (r *SQLiteRepository) InsertSessions(ctx context.Context, rows []*SessionRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO sessions (title, minutes, completed_at, completed_unix, day)
	VALUES (?, ?, ?, ?, ?)`

	for _, row := range rows {
		id, err := ExecuteWithLastInsertID(ctx, tx, query,
			row.Title, row.Minutes, FormatTimeForDB(row.CompletedAt), row.CompletedAt.UnixNano(), FormatDayForDB(row.CompletedAt))
		if err != nil {
			return err
		}
		row.ID = id
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit sessions", err)
	}
	return nil
}

// SearchSessions returns matching sessions, newest first
func (r *SQLiteRepository) SearchSessions(ctx context.Context, opts SearchOptions) ([]*SessionRow, error) {
	where, args := buildConditions(opts)

	query := `
	SELECT id, title, minutes, completed_at
	FROM sessions` + where + `
	ORDER BY completed_unix DESC, id DESC`
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	return QueryMultiple(ctx, r.db, query, ScanSessionRows, "sessions", args...)
}

// SummarizeByTitle totals matching sessions per title, largest total first
func (r *SQLiteRepository) SummarizeByTitle(ctx context.Context, opts SearchOptions) ([]*TitleTotal, error) {
	where, args := buildConditions(opts)

	query := `
	SELECT title, COUNT(*), SUM(minutes), MAX(completed_unix)
	FROM sessions` + where + `
	GROUP BY title
	ORDER BY SUM(minutes) DESC, title ASC`

	return QueryMultiple(ctx, r.db, query, ScanTitleTotals, "title totals", args...)
}

// SummarizeByDay totals matching sessions per local calendar day, oldest first
func (r *SQLiteRepository) SummarizeByDay(ctx context.Context, opts SearchOptions) ([]*DayTotal, error) {
	where, args := buildConditions(opts)

	query := `
	SELECT day, COUNT(*), SUM(minutes)
	FROM sessions` + where + `
	GROUP BY day
	ORDER BY day ASC`

	return QueryMultiple(ctx, r.db, query, ScanDayTotals, "day totals", args...)
}

func buildConditions(opts SearchOptions) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if opts.Since != nil {
		conditions = append(conditions, "completed_unix >= ?")
		args = append(args, opts.Since.UnixNano())
	}
	if opts.Until != nil {
		conditions = append(conditions, "completed_unix <= ?")
		args = append(args, opts.Until.UnixNano())
	}
	if opts.Title != nil && *opts.Title != "" {
		conditions = append(conditions, `title LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(*opts.Title)+"%")
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "\n\tWHERE " + strings.Join(conditions, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
