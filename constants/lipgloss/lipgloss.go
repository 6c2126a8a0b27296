// Package lipgloss defines the shared terminal style palette.
package lipgloss

import "github.com/charmbracelet/lipgloss"

var (
	Red     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	Green   = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	Yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F1FA8C"))
	BlueSky = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	Cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD"))
	Gray    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	Info    = lipgloss.NewStyle().Foreground(lipgloss.Color("#BD93F9")).Bold(true)

	// Bold and InlineCode style inline spans inside rendered documents.
	Bold       = lipgloss.NewStyle().Bold(true)
	InlineCode = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")).Background(lipgloss.Color("#282A36"))

	// Heading styles indexed by level-1.
	Heading1 = lipgloss.NewStyle().Foreground(lipgloss.Color("#BD93F9")).Bold(true).Underline(true)
	Heading2 = lipgloss.NewStyle().Foreground(lipgloss.Color("#BD93F9")).Bold(true)
	Heading3 = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF79C6")).Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6272A4")).
			Padding(0, 1)
)
