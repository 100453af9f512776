package tui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	ColorTomato = lipgloss.Color("#E06C75")
	ColorGreen  = lipgloss.Color("#98C379")
	ColorYellow = lipgloss.Color("#E5C07B")
	ColorBlue   = lipgloss.Color("#61AFEF")
	ColorFg     = lipgloss.Color("#ABB2BF")
	ColorMuted  = lipgloss.Color("#636B78")
)

// Component styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTomato).
			Bold(true)

	BreakHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	ClockStyle = lipgloss.NewStyle().
			Foreground(ColorFg).
			Bold(true).
			PaddingLeft(2)

	PausedBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#282C34")).
				Background(ColorYellow).
				Bold(true).
				Padding(0, 1)

	TitleValueStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	DoneStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	HelpStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)
