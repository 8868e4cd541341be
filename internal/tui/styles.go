package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")).MarginTop(1)
	summaryStyle = lipgloss.NewStyle().MarginTop(1)

	statusStyles = map[string]lipgloss.Style{
		"succeeded": lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
		"running":   lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
		"failed":    lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		"skipped":   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}

	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func styleFor(status string) lipgloss.Style {
	if style, ok := statusStyles[status]; ok {
		return style
	}
	return pendingStyle
}
