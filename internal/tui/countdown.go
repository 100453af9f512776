package tui

import (
	"fmt"
	"strings"
	"time"

	"pomo/internal/countdown"
	"pomo/internal/session"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const maxBarWidth = 60

type timerTickMsg time.Time

// timerModel renders one interval. Time is read from the countdown's clock;
// ticks only trigger a redraw and a completion check.
type timerModel struct {
	keys KeyMap
	help help.Model
	bar  progress.Model

	iv   session.Interval
	cd   *countdown.Countdown
	tick time.Duration

	done        bool
	interrupted bool
}

func newTimerModel(keys KeyMap, iv session.Interval, clock countdown.Clock, tick time.Duration) timerModel {
	cd := countdown.New(iv.Duration, clock)
	if iv.OnPause != nil {
		cd.OnPauseChange(iv.OnPause)
	}

	fill := progress.WithDefaultGradient()
	if iv.Phase.IsBreak() {
		fill = progress.WithSolidFill(string(ColorGreen))
	}
	bar := progress.New(fill, progress.WithoutPercentage())
	bar.Width = 40

	return timerModel{
		keys: keys,
		help: help.New(),
		bar:  bar,
		iv:   iv,
		cd:   cd,
		tick: tick,
	}
}

func (m timerModel) Init() tea.Cmd {
	m.cd.Start()
	return m.scheduleTick()
}

func (m timerModel) scheduleTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-4, maxBarWidth)
		m.help.Width = msg.Width
		return m, nil

	case timerTickMsg:
		if m.cd.Done() {
			m.done = true
			return m, tea.Quit
		}
		return m, m.scheduleTick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Pause):
			m.cd.Toggle()
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Interrupt):
			m.done = true
			m.interrupted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m timerModel) View() string {
	header := HeaderStyle
	if m.iv.Phase.IsBreak() {
		header = BreakHeaderStyle
	}

	if m.interrupted {
		return ""
	}
	if m.done {
		return DoneStyle.Render(fmt.Sprintf("✅ Finished: %s", m.iv.Label)) + "\n"
	}

	var b strings.Builder
	b.WriteString(header.Render("⏱  " + m.iv.Label))
	b.WriteString("\n\n")

	b.WriteString(ClockStyle.Render(countdown.Format(m.cd.Remaining())))
	if m.cd.Paused() {
		b.WriteString(" ")
		b.WriteString(PausedBadgeStyle.Render("PAUSED"))
	}
	b.WriteString("\n\n  ")
	b.WriteString(m.bar.ViewAs(m.cd.Progress()))
	b.WriteString("\n\n")
	b.WriteString(HelpStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")
	return b.String()
}
