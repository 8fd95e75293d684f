package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pomodoro/internal/session"
)

var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorSecondary = lipgloss.Color("#2EC4B6")
	colorFocus     = lipgloss.Color("#FF6B6B")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorRest      = lipgloss.Color("#7AA2F7")
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	// Big remaining-time readout; the foreground is set per phase.
	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Align(lipgloss.Center)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	successStyle   = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle   = lipgloss.NewStyle().Foreground(colorWarning)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	highlightStyle = lipgloss.NewStyle().Foreground(colorRest)
	secondaryStyle = lipgloss.NewStyle().Foreground(colorSecondary)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)
)

// phaseColors tints the readout, phase name and session dots.
var phaseColors = map[session.Kind]lipgloss.Color{
	session.Focus:      colorFocus,
	session.ShortBreak: colorSuccess,
	session.LongBreak:  colorRest,
}

func phaseStyle(k session.Kind) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(phaseColors[k])
}
