package sessionlog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"pomo/internal/domain"
	apperrors "pomo/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var completed = time.Date(2025, 7, 21, 17, 12, 34, 123456000, time.Local)

func newStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "nested", "pomo_log.csv"))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestAppend_CreatesFileWithHeader(t *testing.T) {
	store := newStore(t)

	err := store.Append(context.Background(), domain.NewSessionRecord("Writing project notes", 20, completed))
	require.NoError(t, err)

	assert.Equal(t,
		"title,minutes,datetime\nWriting project notes,20,2025-07-21T17:12:34.123456\n",
		readFile(t, store.Path()))
}

func TestAppend_GrowsByOneRowWithoutRewriting(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, domain.NewSessionRecord("a", 25, completed)))
	before := readFile(t, store.Path())

	require.NoError(t, store.Append(ctx, domain.NewSessionRecord("b", 25, completed.Add(time.Hour))))
	after := readFile(t, store.Path())

	assert.True(t, strings.HasPrefix(after, before), "earlier bytes must be untouched")
	assert.Equal(t, 3, strings.Count(after, "\n"))
}

func TestAppend_QuotesSeparators(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	title := `Review "design", part 2`
	require.NoError(t, store.Append(ctx, domain.NewSessionRecord(title, 25, completed)))
	assert.Contains(t, readFile(t, store.Path()), `"Review ""design"", part 2",25,`)

	records, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, title, records[0].Title)
}

func TestAppend_RepairsUnterminatedLastRow(t *testing.T) {
	store := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("title,minutes,datetime\nold,25,2025-07-20T10:00:00.000000"), 0644))

	require.NoError(t, store.Append(context.Background(), domain.NewSessionRecord("new", 25, completed)))

	records, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "old", records[0].Title)
	assert.Equal(t, "new", records[1].Title)
}

func TestAppend_RejectsInvalidRecord(t *testing.T) {
	store := newStore(t)

	err := store.Append(context.Background(), domain.NewSessionRecord("", 25, completed))
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))

	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestAppend_CancelledContextWritesNothing(t *testing.T) {
	store := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Append(ctx, domain.NewSessionRecord("x", 25, completed))
	require.Error(t, err)
	assert.True(t, apperrors.IsInterrupted(err))

	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestAppend_StorageErrorWhenPathIsDirectory(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	err := store.Append(context.Background(), domain.NewSessionRecord("x", 25, completed))
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeStorage))
}

func TestAppend_ConcurrentWritersDoNotInterleave(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Append(ctx, domain.NewSessionRecord("parallel", 25, completed)))
		}()
	}
	wg.Wait()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, count)
	assert.Equal(t, 1, strings.Count(readFile(t, store.Path()), "title,minutes,datetime"))
}

func TestReadAll_MissingFile(t *testing.T) {
	store := newStore(t)

	records, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)

	last, err := store.Last(context.Background())
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestReadAll_ToleratesLegacyAndMalformedRows(t *testing.T) {
	store := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0755))
	content := strings.Join([]string{
		"title,minutes,datetime,type",
		"Deep work,25,2024-01-02T09:25:00.000001,work",
		"Deep work,5,2024-01-02T09:30:00.000001,short_break",
		"broken row",
		"Bad minutes,abc,2024-01-02T10:00:00.000000",
		"Plain,25,2024-01-02T11:00:00.000000",
		"",
	}, "\n")
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0644))

	records, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Deep work", records[0].Title)
	assert.Equal(t, "Plain", records[1].Title)

	last, err := store.Last(context.Background())
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "Plain", last.Title)
}

func TestWithPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pomo_log.csv")
	store := New(path, WithDirPermissions(0700), WithFilePermissions(0600))

	require.NoError(t, store.Append(context.Background(), domain.NewSessionRecord("x", 1, completed)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm()&0600)
}
