package tui

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"pomo/internal/domain"
	apperrors "pomo/internal/errors"
	"pomo/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPipeFrontend returns a frontend whose input stays open for the whole test.
func newPipeFrontend(t *testing.T, opts Options) (*Frontend, *io.PipeWriter) {
	t.Helper()
	r, w := io.Pipe()
	t.Cleanup(func() { w.Close() })
	opts.Input = r
	opts.Output = &bytes.Buffer{}
	return New(opts), w
}

func TestFrontend_PromptDeadline(t *testing.T) {
	f, _ := newPipeFrontend(t, Options{PromptTimeout: 50 * time.Millisecond})

	start := time.Now()
	title, err := f.PromptTitle(context.Background(), "Writing")
	require.NoError(t, err)
	assert.Equal(t, "Writing", title)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestFrontend_PromptAnyKeyStarts(t *testing.T) {
	f, w := newPipeFrontend(t, Options{PromptTimeout: time.Minute})

	go func() {
		time.Sleep(20 * time.Millisecond)
		w.Write([]byte("x"))
	}()

	title, err := f.PromptTitle(context.Background(), "Writing")
	require.NoError(t, err)
	assert.Equal(t, "Writing", title)
}

func TestFrontend_TimerRunsToZero(t *testing.T) {
	f, _ := newPipeFrontend(t, Options{TickInterval: 5 * time.Millisecond})

	start := time.Now()
	err := f.Run(context.Background(), session.Interval{Phase: domain.PhaseWork, Label: "Work", Duration: 40 * time.Millisecond})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestFrontend_CancelledContextInterrupts(t *testing.T) {
	f, _ := newPipeFrontend(t, Options{TickInterval: 5 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	err := f.Run(ctx, session.Interval{Phase: domain.PhaseWork, Label: "Work", Duration: time.Hour})
	require.Error(t, err)
	assert.True(t, apperrors.IsInterrupted(err))
}

func TestFrontend_QuitKeyInterrupts(t *testing.T) {
	f, w := newPipeFrontend(t, Options{TickInterval: 5 * time.Millisecond})
	go func() {
		time.Sleep(20 * time.Millisecond)
		w.Write([]byte("q"))
	}()

	err := f.Run(context.Background(), session.Interval{Phase: domain.PhaseShortBreak, Label: "Short Break", Duration: time.Hour})
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInterrupted))
}
