package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"pomo/internal/api"
	"pomo/internal/config"
	"pomo/internal/console"
	"pomo/internal/countdown"
	"pomo/internal/domain"
	"pomo/internal/logging"
	"pomo/internal/notify"
	"pomo/internal/session"
	"pomo/internal/sessionlog"
	"pomo/internal/tui"

	"github.com/mattn/go-isatty"
)

// Frontend prompts for titles and displays countdowns
type Frontend interface {
	session.Prompter
	session.Timer
}

// App represents the main CLI application
type App struct {
	config *config.Config
	store  *sessionlog.Store
	api    api.API

	in     io.Reader
	out    io.Writer
	errOut io.Writer
	stdio  bool

	isTerminal func() bool
	notifier   notify.Notifier
	clock      countdown.Clock
	observer   session.Observer
}

// AppOption configures an App
type AppOption func(*App)

// WithIO replaces the process standard streams
func WithIO(in io.Reader, out, errOut io.Writer) AppOption {
	return func(a *App) {
		a.in, a.out, a.errOut = in, out, errOut
		a.stdio = false
	}
}

// WithTerminalCheck replaces the check that decides between the TUI and the
// line-based console
func WithTerminalCheck(fn func() bool) AppOption {
	return func(a *App) { a.isTerminal = fn }
}

// WithNotifier skips platform detection and alerts through n
func WithNotifier(n notify.Notifier) AppOption {
	return func(a *App) { a.notifier = n }
}

// WithClock sets the clock used by countdowns and completion timestamps
func WithClock(clock countdown.Clock) AppOption {
	return func(a *App) { a.clock = clock }
}

// WithObserver registers an extra session loop transition hook
func WithObserver(fn session.Observer) AppOption {
	return func(a *App) { a.observer = fn }
}

// NewApp creates a new CLI application instance from a loaded configuration
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	store := config.CreateStore(cfg)
	app := &App{
		config:     cfg,
		store:      store,
		api:        api.New(store, cfg.Prompt.TitleMaxLength),
		in:         os.Stdin,
		out:        os.Stdout,
		errOut:     os.Stderr,
		stdio:      true,
		isTerminal: stdioIsTerminal,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Config returns the configuration the app was built with
func (a *App) Config() *config.Config {
	return a.config
}

// Frontend picks the bubbletea frontend on a terminal and the line-based console
// otherwise. The returned func must be called once the frontend is done.
func (a *App) Frontend() (Frontend, func(), error) {
	if a.config.Display.Plain || !a.isTerminal() {
		logging.Debugln("cli: using console frontend")
		return console.New(a.in, a.out, console.Options{
			PromptTimeout: a.config.Prompt.Timeout,
			TickInterval:  a.config.Timer.TickInterval,
			Clock:         a.clock,
		}), func() {}, nil
	}

	// The TUI owns the screen, so debug output goes next to the log instead.
	if err := os.MkdirAll(a.config.Log.Dir, os.FileMode(a.config.Log.DirPermissions)); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	closeDebug, err := logging.OpenDebugFile(a.config.GetDebugLogPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
	}

	opts := tui.Options{
		PromptTimeout:  a.config.Prompt.Timeout,
		TickInterval:   a.config.Timer.TickInterval,
		TitleMaxLength: a.config.Prompt.TitleMaxLength,
		Clock:          a.clock,
	}
	if !a.stdio {
		opts.Input, opts.Output = a.in, a.out
	}
	return tui.New(opts), func() { _ = closeDebug() }, nil
}

// Notifier returns the completion alert mechanism for this platform
func (a *App) Notifier() notify.Notifier {
	if a.notifier != nil {
		return a.notifier
	}
	return notify.Select(notify.Options{
		Enabled: a.config.Notify.Enabled,
		Sound:   a.config.Notify.Sound,
		Output:  a.out,
	})
}

// SessionConfig converts the timer configuration into loop durations
func (a *App) SessionConfig() session.Config {
	cfg := a.config
	return session.Config{
		Work:           cfg.WorkDuration(),
		Break:          cfg.BreakDuration(),
		LongBreak:      cfg.LongBreakDuration(),
		WorkMinutes:    cfg.Timer.WorkMinutes,
		LongBreakEvery: cfg.Timer.LongBreakEvery,
		AppName:        cfg.Notify.AppName,
		TitleMaxLength: cfg.Prompt.TitleMaxLength,
	}
}

// observe logs every loop transition and forwards it to the registered observer
func (a *App) observe(from, to domain.State, st session.State) {
	logging.Debugf("session: %s -> %s (title %q, completed %d)\n", from, to, st.Title, st.Completed)
	if a.observer != nil {
		a.observer(from, to, st)
	}
}

func stdioIsTerminal() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
