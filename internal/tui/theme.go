package tui

import (
	"github.com/charmbracelet/lipgloss"

	"dolist-cli/internal/model"
)

// The TUI must stay readable on both light and dark terminal backgrounds,
// so everything uses lipgloss.AdaptiveColor.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted    = ac("240", "245")
	colorAccent   = ac("27", "62") // blue
	colorSelected = ac("#e9e9e9", "#262626")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedText   = lipgloss.NewStyle().Foreground(colorMuted)
	selectedRow = lipgloss.NewStyle().Background(colorSelected)
	doneText    = lipgloss.NewStyle().Strikethrough(true).Foreground(ac("246", "241"))
	helpText    = lipgloss.NewStyle().Foreground(colorMuted)

	priorityText = map[model.Priority]lipgloss.Style{
		model.PriorityLow:    lipgloss.NewStyle().Foreground(ac("28", "78")),
		model.PriorityMedium: lipgloss.NewStyle().Foreground(ac("136", "179")),
		model.PriorityHigh:   lipgloss.NewStyle().Foreground(ac("166", "214")),
		model.PriorityUrgent: lipgloss.NewStyle().Foreground(ac("160", "203")).Bold(true),
	}

	noteText = map[model.NotificationKind]lipgloss.Style{
		model.NotifySuccess: lipgloss.NewStyle().Foreground(ac("28", "78")),
		model.NotifyError:   lipgloss.NewStyle().Foreground(ac("160", "203")).Bold(true),
		model.NotifyWarning: lipgloss.NewStyle().Foreground(ac("166", "214")),
		model.NotifyInfo:    lipgloss.NewStyle().Foreground(colorMuted),
	}
)
