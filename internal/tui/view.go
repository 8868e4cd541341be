package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/macstrap/macstrap/internal/model"
	"github.com/macstrap/macstrap/internal/tui/components"
)

// View renders the current state of the model.
func (m Model) View() string {
	var sections []string

	title := titleStyle.Render(fmt.Sprintf("macstrap • %s", m.heading()))
	sections = append(sections, title)

	progress := components.NewProgress(m.total).View(m.completed)
	sections = append(sections, sectionStyle.Render("Progress"), progress)

	listComp := components.NewActionList(m.order, m.actions)
	entries := listComp.Entries()
	if len(entries) > 0 {
		sections = append(sections, sectionStyle.Render("Actions"))
		sections = append(sections, renderActionEntries(entries))
	}

	summary := components.NewSummary(components.SummaryData{
		Total:     m.total,
		Succeeded: m.succeeded,
		Skipped:   m.skipped,
		Failed:    m.failed,
		Finished:  m.finished,
		Cancelled: m.cancelled,
	}).View()
	if strings.TrimSpace(summary) != "" {
		sections = append(sections, sectionStyle.Render("Summary"), summaryStyle.Render(summary))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderActionEntries(entries []components.ActionEntry) string {
	var lines []string
	for _, entry := range entries {
		res := entry.Result
		icon := StatusIcon(res.Status)
		line := fmt.Sprintf(" %s %s", icon, entry.ID)
		if strings.TrimSpace(res.Reason) != "" {
			line = fmt.Sprintf("%s (%s)", line, res.Reason)
		}
		if res.Duration > 0 {
			line = fmt.Sprintf("%s [%s]", line, res.Duration.Truncate(10*time.Millisecond))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) heading() string {
	if strings.TrimSpace(m.title) != "" {
		return m.title
	}
	return "Provisioning"
}

// StatusIcon returns the glyph representing an action status.
func StatusIcon(status string) string {
	glyph := "…"
	switch status {
	case model.StatusSucceeded:
		glyph = "✓"
	case model.StatusRunning:
		glyph = "⏳"
	case model.StatusFailed:
		glyph = "✗"
	case model.StatusSkipped:
		glyph = "⊘"
	}
	return styleFor(status).Render(glyph)
}
