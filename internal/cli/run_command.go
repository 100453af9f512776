package cli

import (
	"context"
	"fmt"
	"strings"

	"pomo/internal/errors"
	"pomo/internal/logging"
	"pomo/internal/session"
	"pomo/internal/validation"
)

// RunCommand handles the pomodoro loop
type RunCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewRunCommand creates a new run command handler
func NewRunCommand(app *App) *RunCommand {
	return &RunCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs work and break intervals until the user interrupts. An interrupt
// is a normal exit.
func (c *RunCommand) Execute(ctx context.Context, args []string) error {
	title, err := c.initialTitle(ctx, args)
	if err != nil {
		if c.errorHandler.IsInterrupted(err) {
			return nil
		}
		return c.errorHandler.Handle("start session", err)
	}

	frontend, done, err := c.app.Frontend()
	if err != nil {
		return err
	}
	defer done()

	if c.app.config.Application.Verbose {
		fmt.Fprintf(c.app.out, "Logging sessions to %s\n", c.app.store.Path())
	}

	loop := session.NewLoop(c.app.SessionConfig(), frontend, frontend, c.app.Notifier(), c.app.store,
		session.WithObserver(c.app.observe),
		session.WithOutput(c.app.errOut),
		session.WithClock(c.app.clock),
	)

	final, err := loop.Run(ctx, session.State{Title: title})
	if err != nil && !c.errorHandler.IsInterrupted(err) {
		return c.errorHandler.Handle("run session", err)
	}

	fmt.Fprintf(c.app.out, "\nStopped. %d session(s) completed.\n", final.Completed)
	if final.LogFailures > 0 {
		fmt.Fprintf(c.app.errOut, "%d session(s) could not be written to %s\n", final.LogFailures, c.app.store.Path())
	}
	return nil
}

// initialTitle prefers the command line, then the newest log record, then the
// configured default. An unreadable log only costs the previous title.
func (c *RunCommand) initialTitle(ctx context.Context, args []string) (string, error) {
	if len(args) > 0 {
		return validation.NewTitleValidator(c.app.config.Prompt.TitleMaxLength).CleanTitle(strings.Join(args, " "))
	}

	title, err := c.app.api.LastTitle(ctx)
	if err != nil {
		if !c.errorHandler.IsStorageError(err) {
			return "", err
		}
		logging.Debugf("cli: could not read last title: %v\n", err)
		fmt.Fprintf(c.app.errOut, "warning: %s\n", errors.GetUserMessage(err))
	}
	if title == "" {
		title = c.app.config.Prompt.DefaultTitle
	}
	return title, nil
}
