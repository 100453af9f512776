package cli

import (
	"context"
	"fmt"
	"strings"

	"pomo/internal/validation"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	app          *App
	limit        int
	errorHandler *ErrorHandler
}

// NewHistoryCommand creates a new history command handler
func NewHistoryCommand(app *App, limit int) *HistoryCommand {
	return &HistoryCommand{app: app, limit: limit, errorHandler: NewErrorHandler()}
}

// Execute lists completed sessions, newest first. Each line reads
// "completed (duration): title".
func (c *HistoryCommand) Execute(ctx context.Context, args []string) error {
	timeRange, text := parseFilterArgs(args)

	entries, err := c.app.api.History(ctx, timeRange, text, c.limit)
	if err != nil {
		return c.errorHandler.Handle("list sessions", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(c.app.out, "No sessions found")
		return nil
	}

	format := c.app.config.Display.TimeFormat
	for _, e := range entries {
		fmt.Fprintf(c.app.out, "%s (%s): %s\n", e.CompletedAt.Format(format), e.Duration, e.Title)
	}
	return nil
}

// parseFilterArgs splits command arguments into an optional leading time
// shorthand and free search text
func parseFilterArgs(args []string) (timeRange, text string) {
	if len(args) == 0 {
		return "", ""
	}
	if validation.NewValidator().IsValidTimeShorthand(args[0]) {
		return args[0], strings.Join(args[1:], " ")
	}
	return "", strings.Join(args, " ")
}
