package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#89b4fa")
	colorSuccess = lipgloss.Color("#a6e3a1")
	colorError   = lipgloss.Color("#f38ba8")
	colorWarning = lipgloss.Color("#f9e2af")
	colorMuted   = lipgloss.Color("#7f849c")

	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorAccent)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 1)

	incomeStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	expenseStyle = lipgloss.NewStyle().Foreground(colorError)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errStyle     = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	helpStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	cursorStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	barStyle = lipgloss.NewStyle().Foreground(colorAccent)
)
