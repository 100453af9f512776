// Package session runs the prompt, work, alert, log and break cycle.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"pomo/internal/domain"
	apperrors "pomo/internal/errors"
	"pomo/internal/logging"
	"pomo/internal/notify"
	"pomo/internal/validation"
)

// Config holds the durations of one cycle. They are fixed for the life of a Loop.
type Config struct {
	Work      time.Duration
	Break     time.Duration
	LongBreak time.Duration

	// WorkMinutes is the value written to the log for each completed session.
	WorkMinutes int

	// LongBreakEvery replaces every Nth break with a long break. Zero disables long breaks.
	LongBreakEvery int

	// AppName titles completion alerts.
	AppName string

	// TitleMaxLength bounds titles entered at the prompt. Zero uses the validator default.
	TitleMaxLength int
}

// Prompter asks the user whether to change the session title.
type Prompter interface {
	// PromptTitle returns the title for the next session. Returning current, or an
	// empty string, keeps the title unchanged.
	PromptTitle(ctx context.Context, current string) (string, error)
}

// Interval is one countdown handed to a Timer.
type Interval struct {
	Phase    domain.Phase
	Label    string
	Duration time.Duration

	// OnPause is called from the goroutine running Timer.Run whenever the user
	// pauses or resumes.
	OnPause func(paused bool)
}

// Timer displays a countdown and returns when it reaches zero.
type Timer interface {
	Run(ctx context.Context, iv Interval) error
}

// Recorder persists completed work sessions.
type Recorder interface {
	Append(ctx context.Context, rec domain.SessionRecord) error
}

// State is carried from one iteration to the next.
type State struct {
	Title       string
	Completed   int
	LogFailures int
	Current     domain.State
}

// Observer is told about every state change.
type Observer func(from, to domain.State, st State)

// Loop drives the session cycle.
type Loop struct {
	cfg      Config
	prompter Prompter
	timer    Timer
	notifier notify.Notifier
	recorder Recorder
	titles   *validation.TitleValidator
	observer Observer
	out      io.Writer
	now      func() time.Time
}

// Option configures a Loop.
type Option func(*Loop)

// WithObserver registers a transition hook.
func WithObserver(fn Observer) Option {
	return func(l *Loop) { l.observer = fn }
}

// WithOutput sets where storage warnings are written. Defaults to stderr.
func WithOutput(w io.Writer) Option {
	return func(l *Loop) { l.out = w }
}

// WithClock sets the source of completion timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) { l.now = now }
}

// NewLoop wires a loop from its collaborators.
func NewLoop(cfg Config, p Prompter, t Timer, n notify.Notifier, r Recorder, opts ...Option) *Loop {
	if cfg.AppName == "" {
		cfg.AppName = "pomo"
	}
	l := &Loop{
		cfg:      cfg,
		prompter: p,
		timer:    t,
		notifier: n,
		recorder: r,
		titles:   validation.NewTitleValidator(cfg.TitleMaxLength),
		out:      os.Stderr,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run iterates until the context is cancelled or the user quits. The returned
// error is an interrupted AppError in both of those cases.
func (l *Loop) Run(ctx context.Context, st State) (State, error) {
	for {
		var err error
		st, err = l.Iterate(ctx, st)
		if err != nil {
			return st, err
		}
	}
}

// Iterate runs one full cycle starting and ending in PROMPTING.
func (l *Loop) Iterate(ctx context.Context, st State) (State, error) {
	if st.Current != domain.StatePrompting {
		return st, apperrors.NewValidationError(
			fmt.Sprintf("iteration must start in %s, not %s", domain.StatePrompting, st.Current), nil)
	}
	if err := ctx.Err(); err != nil {
		return st, apperrors.NewInterruptedError("prompt", err)
	}

	title, err := l.prompter.PromptTitle(ctx, st.Title)
	if err != nil {
		return st, interrupted("prompt", err)
	}
	l.retitle(&st, title)

	if err := l.runPhase(ctx, &st, domain.PhaseWork); err != nil {
		return st, err
	}
	if err := l.runPhase(ctx, &st, l.breakPhase(st.Completed)); err != nil {
		return st, err
	}
	return st, nil
}

// retitle adopts a new title from the prompt. A title that fails validation is
// reported and the current one kept.
func (l *Loop) retitle(st *State, title string) {
	title = strings.TrimSpace(title)
	if title == "" || title == st.Title {
		return
	}
	clean, err := l.titles.CleanTitle(title)
	if err != nil {
		fmt.Fprintf(l.out, "warning: %s; keeping %q\n", titleProblem(err), st.Title)
		return
	}
	logging.Debugf("session: title changed from %q to %q\n", st.Title, clean)
	st.Title = clean
}

// runPhase counts down one interval and alerts. Logged phases then append a
// record; the rest return the loop to PROMPTING.
func (l *Loop) runPhase(ctx context.Context, st *State, phase domain.Phase) error {
	if err := l.countdown(ctx, st, phase); err != nil {
		return err
	}

	if phase.Logged() {
		if err := l.transition(st, domain.StateAlerting); err != nil {
			return err
		}
	}
	l.alert(ctx, fmt.Sprintf("%s complete!", l.label(phase, st.Title)))

	if !phase.Logged() {
		return l.transition(st, domain.StatePrompting)
	}
	if err := l.transition(st, domain.StateLogging); err != nil {
		return err
	}
	return l.record(ctx, st)
}

func (l *Loop) countdown(ctx context.Context, st *State, phase domain.Phase) error {
	if err := l.transition(st, phase.RunningState()); err != nil {
		return err
	}

	var pauseErr error
	iv := Interval{
		Phase:    phase,
		Label:    l.label(phase, st.Title),
		Duration: l.duration(phase),
		OnPause: func(paused bool) {
			next := phase.RunningState()
			if paused {
				next = phase.PausedState()
			}
			if next == st.Current || pauseErr != nil {
				return
			}
			pauseErr = l.transition(st, next)
		},
	}

	logging.Debugf("session: starting %s for %s\n", phase, iv.Duration)
	err := l.timer.Run(ctx, iv)
	if err != nil {
		return interrupted(strings.ToLower(phase.String()), err)
	}
	if pauseErr != nil {
		return pauseErr
	}
	// A frontend may finish while showing the paused view.
	if st.Current.IsPaused() {
		return l.transition(st, phase.RunningState())
	}
	return nil
}

func (l *Loop) record(ctx context.Context, st *State) error {
	rec := domain.NewSessionRecord(st.Title, l.cfg.WorkMinutes, l.now())
	err := l.recorder.Append(ctx, rec)
	if err == nil {
		st.Completed++
		return nil
	}
	if apperrors.IsInterrupted(err) {
		return interrupted("log append", err)
	}

	st.Completed++
	st.LogFailures++
	if apperrors.ShouldLogError(err) {
		logging.Debugf("session: log append failed: %v\n", err)
	}
	fmt.Fprintf(l.out, "\nwarning: %s\n", apperrors.GetUserMessage(err))
	return nil
}

func (l *Loop) alert(ctx context.Context, message string) {
	if l.notifier == nil {
		return
	}
	if err := l.notifier.Notify(ctx, l.cfg.AppName, message); err != nil {
		logging.Debugf("session: alert failed: %v\n", err)
	}
}

func (l *Loop) transition(st *State, to domain.State) error {
	from := st.Current
	if !domain.CanTransition(from, to) {
		return apperrors.NewValidationError(fmt.Sprintf("illegal transition %s -> %s", from, to), nil).
			WithContext("from", from.String()).
			WithContext("to", to.String())
	}
	st.Current = to
	logging.Debugf("session: %s -> %s\n", from, to)
	if l.observer != nil {
		l.observer(from, to, *st)
	}
	return nil
}

func (l *Loop) breakPhase(completed int) domain.Phase {
	if l.cfg.LongBreakEvery > 0 && completed > 0 && completed%l.cfg.LongBreakEvery == 0 {
		return domain.PhaseLongBreak
	}
	return domain.PhaseShortBreak
}

func (l *Loop) duration(phase domain.Phase) time.Duration {
	switch phase {
	case domain.PhaseWork:
		return l.cfg.Work
	case domain.PhaseLongBreak:
		return l.cfg.LongBreak
	default:
		return l.cfg.Break
	}
}

func (l *Loop) label(phase domain.Phase, title string) string {
	if phase == domain.PhaseWork {
		return fmt.Sprintf("%s: %s", phase, title)
	}
	return phase.String()
}

func titleProblem(err error) string {
	var ve *validation.ValidationError
	if errors.As(err, &ve) {
		return strings.ReplaceAll(ve.GetUserFriendlyMessage(), "\n", " ")
	}
	return err.Error()
}

func interrupted(stage string, err error) error {
	if apperrors.IsErrorType(err, apperrors.ErrorTypeInterrupted) {
		return err
	}
	if apperrors.IsInterrupted(err) {
		return apperrors.NewInterruptedError(stage, err)
	}
	return err
}
