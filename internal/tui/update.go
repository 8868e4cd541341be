package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/macstrap/macstrap/internal/model"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, nil
	case ActionStartMsg:
		m.ensureAction(msg.ID)
		action := m.actions[msg.ID]
		action.Status = model.StatusRunning
		m.actions[msg.ID] = action
		return m, nil
	case ActionCompleteMsg:
		id := msg.Result.ActionID
		if id == "" {
			return m, nil
		}
		m.ensureAction(id)
		existing := m.actions[id]
		previouslyCompleted := completedStatus(existing.Status)
		m.actions[id] = msg.Result
		if !previouslyCompleted && completedStatus(msg.Result.Status) {
			m.completed++
			switch msg.Result.Status {
			case model.StatusSucceeded:
				m.succeeded++
			case model.StatusSkipped:
				m.skipped++
			case model.StatusFailed:
				m.failed++
			}
			m.markFinishedIfComplete()
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			m.finished = true
			return m, tea.Quit
		}
	case tea.QuitMsg:
		m.finished = true
		return m, nil
	}

	return m, nil
}
