// Package tui is the interactive terminal frontend: a title prompt with a
// deadline and a countdown view with pause support.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"pomo/internal/countdown"
	apperrors "pomo/internal/errors"
	"pomo/internal/logging"
	"pomo/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

// Options configures a Frontend.
type Options struct {
	PromptTimeout  time.Duration
	TickInterval   time.Duration
	TitleMaxLength int
	Clock          countdown.Clock

	// Input and Output default to the process terminal when nil.
	Input  io.Reader
	Output io.Writer
}

// Frontend runs one bubbletea program per prompt or countdown.
type Frontend struct {
	opts Options
	keys KeyMap
}

// New returns a Frontend. Zero durations fall back to a 5s prompt and 1s ticks.
func New(opts Options) *Frontend {
	if opts.PromptTimeout <= 0 {
		opts.PromptTimeout = 5 * time.Second
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Frontend{opts: opts, keys: DefaultKeyMap()}
}

// PromptTitle implements session.Prompter.
func (f *Frontend) PromptTitle(ctx context.Context, current string) (string, error) {
	tick := min(time.Second, f.opts.PromptTimeout)
	m := newPromptModel(f.keys, current, f.opts.PromptTimeout, tick, f.opts.TitleMaxLength)

	final, err := f.run(ctx, m, "prompt")
	if err != nil {
		return "", err
	}

	pm, ok := final.(promptModel)
	if !ok {
		return "", fmt.Errorf("unexpected prompt model %T", final)
	}
	if pm.interrupted {
		return "", apperrors.NewInterruptedError("prompt", nil)
	}
	return pm.result, nil
}

// Run implements session.Timer.
func (f *Frontend) Run(ctx context.Context, iv session.Interval) error {
	m := newTimerModel(f.keys, iv, f.opts.Clock, f.opts.TickInterval)

	final, err := f.run(ctx, m, iv.Label)
	if err != nil {
		return err
	}

	tm, ok := final.(timerModel)
	if !ok {
		return fmt.Errorf("unexpected countdown model %T", final)
	}
	if tm.interrupted {
		return apperrors.NewInterruptedError(iv.Label, nil)
	}
	return nil
}

func (f *Frontend) run(ctx context.Context, m tea.Model, stage string) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if f.opts.Input != nil {
		opts = append(opts, tea.WithInput(f.opts.Input))
	}
	if f.opts.Output != nil {
		opts = append(opts, tea.WithOutput(f.opts.Output))
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) {
			logging.Debugf("tui: %s stopped: %v\n", stage, err)
			return nil, apperrors.NewInterruptedError(stage, ctx.Err())
		}
		return nil, fmt.Errorf("run %s view: %w", stage, err)
	}
	return final, nil
}
