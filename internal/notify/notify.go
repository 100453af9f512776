// Package notify delivers best-effort completion alerts.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	apperrors "pomo/internal/errors"
	"pomo/internal/logging"
)

// Notifier shows an alert for a finished interval.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// Runner executes an external command.
type Runner func(ctx context.Context, name string, args ...string) error

// LookPath reports the location of an executable.
type LookPath func(file string) (string, error)

// ExecRunner runs the command and waits for it.
func ExecRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Options controls which notifier Select builds.
type Options struct {
	Enabled  bool
	Sound    bool
	GOOS     string
	Output   io.Writer
	LookPath LookPath
	Runner   Runner
}

// Select inspects the platform once and returns the best available notifier.
// Whatever it returns falls back to a terminal message when the native
// mechanism fails.
func Select(opts Options) Notifier {
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner
	}

	terminal := NewTerminal(opts.Output, opts.Sound)
	if !opts.Enabled {
		logging.Debugln("notify: native notifications disabled")
		return terminal
	}

	var native *Command
	switch opts.GOOS {
	case "darwin":
		native = darwin(opts)
	case "linux":
		native = linux(opts)
	}
	if native == nil {
		logging.Debugf("notify: no native notifier on %s, using terminal\n", opts.GOOS)
		return terminal
	}

	logging.Debugf("notify: using %s\n", native.Backend)
	return WithFallback(native, terminal)
}

func darwin(opts Options) *Command {
	if _, err := opts.LookPath("osascript"); err != nil {
		return nil
	}
	cmd := &Command{
		Backend: "osascript",
		Alert: func(title, message string) []string {
			script := fmt.Sprintf("display notification %s with title %s", appleString(message), appleString(title))
			return []string{"osascript", "-e", script}
		},
		run: opts.Runner,
	}
	if opts.Sound {
		if _, err := opts.LookPath("afplay"); err == nil {
			cmd.Sound = []string{"afplay", "/System/Library/Sounds/Glass.aiff"}
		}
	}
	return cmd
}

func linux(opts Options) *Command {
	if _, err := opts.LookPath("notify-send"); err != nil {
		return nil
	}
	cmd := &Command{
		Backend: "notify-send",
		Alert: func(title, message string) []string {
			return []string{"notify-send", title, message}
		},
		run: opts.Runner,
	}
	if opts.Sound {
		if _, err := opts.LookPath("paplay"); err == nil {
			cmd.Sound = []string{"paplay", "/usr/share/sounds/freedesktop/stereo/complete.oga"}
		} else if _, err := opts.LookPath("canberra-gtk-play"); err == nil {
			cmd.Sound = []string{"canberra-gtk-play", "-i", "complete"}
		}
	}
	return cmd
}

func appleString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// Command notifies through platform executables.
type Command struct {
	Backend string
	Alert   func(title, message string) []string
	Sound   []string
	run     Runner
}

// Notify runs the alert command, then the sound command. A failing sound is
// logged and otherwise ignored.
func (c *Command) Notify(ctx context.Context, title, message string) error {
	run := c.run
	if run == nil {
		run = ExecRunner
	}

	argv := c.Alert(title, message)
	if err := run(ctx, argv[0], argv[1:]...); err != nil {
		return apperrors.NewNotificationError(c.Backend, err)
	}

	if len(c.Sound) > 0 {
		if err := run(ctx, c.Sound[0], c.Sound[1:]...); err != nil {
			logging.Debugf("notify: sound via %s failed: %v\n", c.Sound[0], err)
		}
	}
	return nil
}

// Terminal prints the alert, optionally ringing the terminal bell.
type Terminal struct {
	mu   sync.Mutex
	out  io.Writer
	bell bool
}

// NewTerminal returns a notifier writing to out.
func NewTerminal(out io.Writer, bell bool) *Terminal {
	return &Terminal{out: out, bell: bell}
}

// Notify writes "[title] message".
func (t *Terminal) Notify(_ context.Context, title, message string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	line := fmt.Sprintf("[%s] %s\n", title, message)
	if t.bell {
		line = "\a" + line
	}
	if _, err := io.WriteString(t.out, line); err != nil {
		return apperrors.NewNotificationError("terminal", err)
	}
	return nil
}

type fallback struct {
	primary  Notifier
	fallback Notifier
}

// WithFallback returns a notifier that uses fallback whenever primary fails.
func WithFallback(primary, secondary Notifier) Notifier {
	return &fallback{primary: primary, fallback: secondary}
}

func (f *fallback) Notify(ctx context.Context, title, message string) error {
	err := f.primary.Notify(ctx, title, message)
	if err == nil {
		return nil
	}
	logging.Debugf("notify: primary notifier failed, falling back: %v\n", err)
	return f.fallback.Notify(ctx, title, message)
}

// Func adapts a function to the Notifier interface.
type Func func(ctx context.Context, title, message string) error

// Notify calls f.
func (f Func) Notify(ctx context.Context, title, message string) error {
	return f(ctx, title, message)
}
