package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"pomo/internal/repository/sqlite"
	"pomo/internal/services"

	"github.com/charmbracelet/lipgloss"
)

const maxTitleColumn = 40

// StatsCommand handles the stats command
type StatsCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute prints totals, per-title and per-day breakdowns and the day streak
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	timeRange, text := parseFilterArgs(args)

	summary, err := c.app.api.Stats(ctx, timeRange, text)
	if err != nil {
		return c.errorHandler.Handle("summarize sessions", err)
	}

	if summary.SessionCount == 0 {
		fmt.Fprintln(c.app.out, "No sessions found")
		return nil
	}

	fmt.Fprint(c.app.out, renderSummary(c.app.out, summary))
	return nil
}

type statsStyles struct {
	heading lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
}

// newStatsStyles binds the styles to w so colour is dropped when w is not a terminal
func newStatsStyles(w io.Writer) statsStyles {
	r := lipgloss.NewRenderer(w)
	return statsStyles{
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#E06C75")),
		label:   r.NewStyle().Foreground(lipgloss.Color("#61AFEF")),
		value:   r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#636B78")),
	}
}

func renderSummary(w io.Writer, s *services.Summary) string {
	st := newStatsStyles(w)
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s   %s %s\n",
		st.label.Render("Sessions:"), st.value.Render(fmt.Sprint(s.SessionCount)),
		st.label.Render("Total:"), st.value.Render(s.TotalTime))
	fmt.Fprintf(&b, "%s %s %s\n",
		st.label.Render("Streak:"), st.value.Render(pluralDays(s.CurrentStreak)),
		st.muted.Render(fmt.Sprintf("(longest %s)", pluralDays(s.LongestStreak))))

	width := 0
	for _, t := range s.ByTitle {
		width = max(width, lipgloss.Width(t.Title))
	}
	width = min(width, maxTitleColumn)
	column := st.label.Width(width + 2)

	b.WriteString("\n" + st.heading.Render("By title") + "\n")
	for _, t := range s.ByTitle {
		fmt.Fprintf(&b, "  %s%4d  %s\n", column.Render(truncate(t.Title, width)), t.SessionCount, t.TotalTime)
	}

	b.WriteString("\n" + st.heading.Render("By day") + "\n")
	day := st.label.Width(len(sqlite.DayLayout) + 2)
	for _, d := range s.ByDay {
		fmt.Fprintf(&b, "  %s%4d  %s\n", day.Render(d.Day.Format(sqlite.DayLayout)), d.SessionCount, d.TotalTime)
	}

	return b.String()
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
