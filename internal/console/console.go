// Package console is the line-oriented frontend used when stdin or stdout is
// not a terminal, or when plain output is requested.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"pomo/internal/countdown"
	apperrors "pomo/internal/errors"
	"pomo/internal/logging"
	"pomo/internal/session"
)

// Options configures a Console.
type Options struct {
	PromptTimeout time.Duration
	TickInterval  time.Duration
	Clock         countdown.Clock
}

// Console reads commands line by line and redraws the countdown in place.
type Console struct {
	in   io.Reader
	out  io.Writer
	opts Options

	once  sync.Once
	lines chan string
}

// New returns a console over in and out. Zero durations fall back to a 5s
// prompt and 1s redraws.
func New(in io.Reader, out io.Writer, opts Options) *Console {
	if opts.PromptTimeout <= 0 {
		opts.PromptTimeout = 5 * time.Second
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Console{in: in, out: out, opts: opts}
}

// input starts the single reader goroutine on first use. The returned channel
// is closed at EOF.
func (c *Console) input() <-chan string {
	c.once.Do(func() {
		c.lines = make(chan string)
		go func() {
			defer close(c.lines)
			scanner := bufio.NewScanner(c.in)
			for scanner.Scan() {
				c.lines <- scanner.Text()
			}
			if err := scanner.Err(); err != nil {
				logging.Debugf("console: input closed: %v\n", err)
			}
		}()
	})
	return c.lines
}

// PromptTitle implements session.Prompter. An empty line asks for a new title;
// a non-empty line is taken as the new title. EOF or the deadline keeps current.
func (c *Console) PromptTitle(ctx context.Context, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(c.out, "Previous session title: '%s'\n", current)
	} else {
		fmt.Fprintln(c.out, "No previous session title found.")
	}
	fmt.Fprintf(c.out, "Press Enter to change it. You have %s…\n", c.opts.PromptTimeout)

	lines := c.input()
	deadline := time.NewTimer(c.opts.PromptTimeout)
	defer deadline.Stop()

	title := current
	select {
	case <-ctx.Done():
		return "", apperrors.NewInterruptedError("prompt", ctx.Err())
	case <-deadline.C:
		logging.Debugln("console: prompt deadline passed")
	case line, ok := <-lines:
		if !ok {
			break
		}
		if line = strings.TrimSpace(line); line != "" {
			title = line
			break
		}

		fmt.Fprint(c.out, "Enter new session title: ")
		select {
		case <-ctx.Done():
			return "", apperrors.NewInterruptedError("prompt", ctx.Err())
		case line, ok := <-lines:
			if ok && strings.TrimSpace(line) != "" {
				title = strings.TrimSpace(line)
			}
		}
		fmt.Fprintln(c.out)
	}

	fmt.Fprintf(c.out, "Session title: %s\n", title)
	return title, nil
}

// Run implements session.Timer. A "p" line toggles pause and a "q" line quits.
func (c *Console) Run(ctx context.Context, iv session.Interval) error {
	fmt.Fprintf(c.out, "⏱️ %s - Press 'p' then Enter to pause/resume, 'q' to quit. Ctrl+C to exit.\n", iv.Label)

	cd := countdown.New(iv.Duration, c.opts.Clock)
	if iv.OnPause != nil {
		cd.OnPauseChange(iv.OnPause)
	}
	cd.Start()

	ticker := time.NewTicker(c.opts.TickInterval)
	defer ticker.Stop()

	lines := c.input()
	c.render(cd, iv.Label)
	for !cd.Done() {
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return apperrors.NewInterruptedError(iv.Label, ctx.Err())
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "p":
				cd.Toggle()
				c.render(cd, iv.Label)
			case "q":
				fmt.Fprintln(c.out)
				return apperrors.NewInterruptedError(iv.Label, nil)
			}
		case <-ticker.C:
			if !cd.Paused() {
				c.render(cd, iv.Label)
			}
		}
	}

	fmt.Fprintf(c.out, "\n✅ Finished: %s\n", iv.Label)
	return nil
}

func (c *Console) render(cd *countdown.Countdown, label string) {
	if cd.Paused() {
		fmt.Fprintf(c.out, "\r⏸ Paused - %s         ", label)
		return
	}
	fmt.Fprintf(c.out, "\r⏳ %s - %s ", countdown.Format(cd.Remaining()), label)
}
