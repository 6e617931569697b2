package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, legible on dark and light terminals
var (
	Primary = lipgloss.Color("#8B5CF6") // Vivid Purple
	Accent  = lipgloss.Color("#F97316") // Orange
	Success = lipgloss.Color("#22C55E") // Green
	Error   = lipgloss.Color("#F43F5E") // Rose
	Warn    = lipgloss.Color("#EAB308") // Amber
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate
	Fill    = lipgloss.Color("#14B8A6") // Teal
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Locked = lipgloss.NewStyle().
		Foreground(TextDim)

	InProgress = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	Complete = lipgloss.NewStyle().
			Foreground(Success)

	Checked = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Unchecked = lipgloss.NewStyle().
			Foreground(TextDim)

	Rejected = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Notice = lipgloss.NewStyle().
		Foreground(Warn)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Foreground(Fill)

	ProgressEmpty = lipgloss.NewStyle().
			Foreground(Border)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)
