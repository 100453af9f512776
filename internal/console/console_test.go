package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"pomo/internal/countdown"
	"pomo/internal/domain"
	apperrors "pomo/internal/errors"
	"pomo/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is safe to read while the console writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func newPipeConsole(t *testing.T, opts Options) (*Console, *io.PipeWriter, *syncBuffer) {
	t.Helper()
	r, w := io.Pipe()
	t.Cleanup(func() { w.Close() })
	out := &syncBuffer{}
	return New(r, out, opts), w, out
}

func TestPromptTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"eof keeps title", "", "Writing"},
		{"non-empty line replaces", "Reading\n", "Reading"},
		{"enter then title replaces", "\n  Reading  \n", "Reading"},
		{"enter then blank keeps", "\n\n", "Writing"},
		{"enter then eof keeps", "\n", "Writing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := New(strings.NewReader(tt.input), &out, Options{PromptTimeout: time.Minute})

			got, err := c.PromptTitle(context.Background(), "Writing")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Previous session title: 'Writing'")
		})
	}
}

func TestPromptTitle_DeadlineKeepsTitle(t *testing.T) {
	c, _, out := newPipeConsole(t, Options{PromptTimeout: 30 * time.Millisecond})

	start := time.Now()
	got, err := c.PromptTitle(context.Background(), "Writing")
	require.NoError(t, err)
	assert.Equal(t, "Writing", got)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Contains(t, out.String(), "Session title: Writing")
}

func TestPromptTitle_NoPreviousTitle(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out, Options{})

	got, err := c.PromptTitle(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Contains(t, out.String(), "No previous session title found.")
}

func TestPromptTitle_Cancelled(t *testing.T) {
	c, _, _ := newPipeConsole(t, Options{PromptTimeout: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	_, err := c.PromptTitle(ctx, "Writing")
	require.Error(t, err)
	assert.True(t, apperrors.IsInterrupted(err))
}

func TestRun_CountsDownToZero(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out, Options{TickInterval: 2 * time.Millisecond})

	start := time.Now()
	err := c.Run(context.Background(), session.Interval{Phase: domain.PhaseWork, Label: "Work: x", Duration: 20 * time.Millisecond})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Contains(t, out.String(), "\r⏳ 00:01 - Work: x ")
	assert.Contains(t, out.String(), "✅ Finished: Work: x")
}

func TestRun_PauseExtendsWallClock(t *testing.T) {
	c, w, out := newPipeConsole(t, Options{TickInterval: 2 * time.Millisecond})

	const pause = 60 * time.Millisecond
	go func() {
		time.Sleep(10 * time.Millisecond)
		w.Write([]byte("p\n"))
		time.Sleep(pause)
		w.Write([]byte("p\n"))
	}()

	var pauses []bool
	start := time.Now()
	err := c.Run(context.Background(), session.Interval{
		Phase:    domain.PhaseWork,
		Label:    "Work",
		Duration: 50 * time.Millisecond,
		OnPause:  func(p bool) { pauses = append(pauses, p) },
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond+pause-10*time.Millisecond)
	assert.Equal(t, []bool{true, false}, pauses)
	assert.Contains(t, out.String(), "⏸ Paused - Work")
}

func TestRun_PausedTimeDoesNotCount(t *testing.T) {
	clock := countdown.NewManualClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	c, w, out := newPipeConsole(t, Options{TickInterval: time.Millisecond, Clock: clock.Now})

	paused := make(chan bool, 2)
	done := make(chan error, 1)
	go func() {
		done <- c.Run(context.Background(), session.Interval{
			Phase:    domain.PhaseWork,
			Label:    "Work",
			Duration: time.Minute,
			OnPause:  func(p bool) { paused <- p },
		})
	}()

	require.Eventually(t, func() bool { return strings.Contains(out.String(), "⏳ 01:00") },
		time.Second, time.Millisecond, "countdown never started")

	clock.Advance(30 * time.Second)
	w.Write([]byte("p\n"))
	require.True(t, <-paused)

	clock.Advance(time.Hour)
	select {
	case <-done:
		t.Fatal("countdown finished while paused")
	case <-time.After(20 * time.Millisecond):
	}

	w.Write([]byte("p\n"))
	require.False(t, <-paused)

	clock.Advance(29 * time.Second)
	select {
	case <-done:
		t.Fatal("countdown finished early")
	case <-time.After(20 * time.Millisecond):
	}

	clock.Advance(time.Second)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("countdown did not finish")
	}
}

func TestRun_QuitLine(t *testing.T) {
	c, w, _ := newPipeConsole(t, Options{TickInterval: time.Millisecond})
	go w.Write([]byte("q\n"))

	err := c.Run(context.Background(), session.Interval{Phase: domain.PhaseShortBreak, Label: "Short Break", Duration: time.Hour})
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInterrupted))
}

func TestRun_Cancelled(t *testing.T) {
	c, _, _ := newPipeConsole(t, Options{TickInterval: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	err := c.Run(ctx, session.Interval{Phase: domain.PhaseWork, Label: "Work", Duration: time.Hour})
	require.Error(t, err)
	assert.True(t, apperrors.IsInterrupted(err))
}

func TestConsole_SingleReaderAcrossCalls(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("First\nSecond\n"), &out, Options{PromptTimeout: time.Minute})

	first, err := c.PromptTitle(context.Background(), "x")
	require.NoError(t, err)
	second, err := c.PromptTitle(context.Background(), first)
	require.NoError(t, err)

	assert.Equal(t, "First", first)
	assert.Equal(t, "Second", second)
}

type titleRecorder struct {
	titles []string
}

func (r *titleRecorder) Append(_ context.Context, rec domain.SessionRecord) error {
	r.titles = append(r.titles, rec.Title)
	return nil
}

func TestLoop_RejectsTypedTitles(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"longer than the limit", strings.Repeat("x", 31) + "\n", "at most 30 characters"},
		{"escape sequence", "\x1b[31mred\n", "control characters"},
		{"enter then bell", "\nring\a\n", "control characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, warnings bytes.Buffer
			c := New(strings.NewReader(tt.input), &out, Options{PromptTimeout: time.Minute, TickInterval: time.Millisecond})
			recorder := &titleRecorder{}
			cfg := session.Config{
				Work:           5 * time.Millisecond,
				Break:          5 * time.Millisecond,
				LongBreak:      5 * time.Millisecond,
				WorkMinutes:    25,
				TitleMaxLength: 30,
			}
			loop := session.NewLoop(cfg, c, c, nil, recorder, session.WithOutput(&warnings))

			st, err := loop.Iterate(context.Background(), session.State{Title: "Writing"})
			require.NoError(t, err)

			assert.Equal(t, "Writing", st.Title)
			assert.Equal(t, []string{"Writing"}, recorder.titles)
			assert.Contains(t, warnings.String(), tt.message)
		})
	}
}
