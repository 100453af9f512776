// Package sessionlog persists completed work sessions to an append-only CSV file.
package sessionlog

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"pomo/internal/domain"
	apperrors "pomo/internal/errors"
	"pomo/internal/logging"
)

// Store appends session records to a CSV file. Each record is written with a
// single write call, so an interrupted append never damages earlier rows.
type Store struct {
	path     string
	dirPerm  os.FileMode
	filePerm os.FileMode
	mapper   *domain.SessionRecordMapper
	mu       sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithDirPermissions sets the mode used when creating the log directory.
func WithDirPermissions(perm os.FileMode) Option {
	return func(s *Store) { s.dirPerm = perm }
}

// WithFilePermissions sets the mode used when creating the log file.
func WithFilePermissions(perm os.FileMode) Option {
	return func(s *Store) { s.filePerm = perm }
}

// New returns a store for the file at path. Nothing is created until the first Append.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:     path,
		dirPerm:  0755,
		filePerm: 0644,
		mapper:   domain.NewSessionRecordMapper(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the log file location.
func (s *Store) Path() string {
	return s.path
}

// Append writes rec as one row, writing the header first if the file is empty.
func (s *Store) Append(ctx context.Context, rec domain.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewInterruptedError("log append", err)
	}
	if !rec.IsValid() {
		return apperrors.NewValidationError("invalid session record", nil).
			WithContext("title", rec.Title).
			WithContext("minutes", rec.Minutes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), s.dirPerm); err != nil {
		return s.storageError("create log directory", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, s.filePerm)
	if err != nil {
		return s.storageError("open log", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return s.storageError("stat log", err)
	}

	var buf bytes.Buffer
	if info.Size() > 0 {
		terminated, err := endsWithNewline(s.path, info.Size())
		if err != nil {
			return s.storageError("read log tail", err)
		}
		if !terminated {
			logging.Debugf("sessionlog: repairing unterminated last row in %s\n", s.path)
			buf.WriteByte('\n')
		}
	}

	w := csv.NewWriter(&buf)
	if info.Size() == 0 {
		w.Write(domain.LogHeader)
	}
	w.Write(s.mapper.ToRow(rec))
	w.Flush()
	if err := w.Error(); err != nil {
		return s.storageError("encode record", err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		return s.storageError("write record", err)
	}
	if err := f.Sync(); err != nil {
		return s.storageError("sync log", err)
	}
	if err := f.Close(); err != nil {
		return s.storageError("close log", err)
	}

	logging.Debugf("sessionlog: appended %q (%d min) to %s\n", rec.Title, rec.Minutes, s.path)
	return nil
}

// ReadAll returns every valid record in file order. A missing file yields no records.
// Malformed rows are skipped.
func (s *Store) ReadAll(ctx context.Context) ([]domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewInterruptedError("log read", err)
	}

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, s.storageError("open log", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var records []domain.SessionRecord
	for line := 1; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				logging.Debugf("sessionlog: skipping unparsable line %d: %v\n", line, err)
				continue
			}
			return nil, s.storageError("read log", err)
		}
		if s.mapper.IsHeader(row) {
			continue
		}

		rec, err := s.mapper.FromRow(row)
		if err != nil {
			logging.Debugf("sessionlog: skipping line %d: %v\n", line, err)
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// Last returns the most recent record, or nil when the log has none.
func (s *Store) Last(ctx context.Context) (*domain.SessionRecord, error) {
	records, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	last := records[len(records)-1]
	return &last, nil
}

// Count returns the number of valid records.
func (s *Store) Count(ctx context.Context) (int, error) {
	records, err := s.ReadAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *Store) storageError(op string, err error) error {
	if errors.Is(err, os.ErrPermission) {
		permErr := apperrors.NewPermissionError(op, s.path)
		permErr.Cause = err
		return permErr
	}
	return apperrors.NewStorageError(op, err).WithContext("path", s.path)
}

func endsWithNewline(path string, size int64) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	last := make([]byte, 1)
	if _, err := f.ReadAt(last, size-1); err != nil {
		return false, err
	}
	return last[0] == '\n', nil
}
