package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// promptTickMsg counts down the prompt deadline. seq ties a tick to the model
// that scheduled it; step is the time it waited.
type promptTickMsg struct {
	seq  int
	step time.Duration
}

// promptModel asks whether to change the session title. Without input it
// resolves to the current title when the deadline passes.
type promptModel struct {
	keys  KeyMap
	help  help.Model
	input textinput.Model

	current   string
	remaining time.Duration
	tick      time.Duration
	seq       int

	editing     bool
	done        bool
	interrupted bool
	result      string
}

func newPromptModel(keys KeyMap, current string, timeout, tick time.Duration, maxLen int) promptModel {
	ti := textinput.New()
	ti.Prompt = "New title: "
	ti.Placeholder = current
	if maxLen > 0 {
		ti.CharLimit = maxLen
	}

	return promptModel{
		keys:      keys,
		help:      help.New(),
		input:     ti,
		current:   current,
		remaining: timeout,
		tick:      tick,
		seq:       1,
	}
}

func (m promptModel) Init() tea.Cmd {
	return m.scheduleTick()
}

// nextStep is one tick, shortened so the last tick lands on the deadline.
func (m promptModel) nextStep() time.Duration {
	return min(m.tick, m.remaining)
}

func (m promptModel) scheduleTick() tea.Cmd {
	seq, step := m.seq, m.nextStep()
	return tea.Tick(step, func(time.Time) tea.Msg {
		return promptTickMsg{seq: seq, step: step}
	})
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	switch msg := msg.(type) {
	case promptTickMsg:
		if m.editing || msg.seq != m.seq {
			return m, nil
		}
		m.remaining -= msg.step
		if m.remaining <= 0 {
			return m.finish(m.current)
		}
		return m, m.scheduleTick()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Interrupt) {
			m.done = true
			m.interrupted = true
			return m, tea.Quit
		}
		if m.editing {
			return m.updateEditing(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Change):
			m.editing = true
			m.seq++
			return m, m.input.Focus()
		default:
			// Any other key skips the wait.
			return m.finish(m.current)
		}
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m promptModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			title = m.current
		}
		return m.finish(title)
	case key.Matches(msg, m.keys.Keep):
		return m.finish(m.current)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) finish(title string) (tea.Model, tea.Cmd) {
	m.done = true
	m.result = title
	m.input.Blur()
	return m, tea.Quit
}

func (m promptModel) View() string {
	if m.interrupted {
		return ""
	}
	if m.done {
		return fmt.Sprintf("Session title: %s\n", TitleValueStyle.Render(m.result))
	}

	var b strings.Builder
	if m.current != "" {
		fmt.Fprintf(&b, "Previous session title: %s\n", TitleValueStyle.Render(m.current))
	} else {
		b.WriteString("No previous session title found.\n")
	}

	if m.editing {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	} else {
		secs := int((m.remaining + time.Second - 1) / time.Second)
		b.WriteString(DimStyle.Render(fmt.Sprintf("Press Enter to change it. Starting in %ds…", secs)))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render(m.help.View(promptHelp{keys: m.keys, editing: m.editing})))
	b.WriteString("\n")
	return b.String()
}
