package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macstrap/macstrap/internal/engine"
	"github.com/macstrap/macstrap/internal/model"
)

// ActionStartMsg indicates an action has started executing.
type ActionStartMsg struct {
	ID   string
	Time time.Time
}

// ActionCompleteMsg reports that an action has finished.
type ActionCompleteMsg struct {
	Result model.ActionResult
}

type tickMsg struct{}

// Model contains the Bubbletea state for the provisioning run TUI.
type Model struct {
	title          string
	actions        map[string]model.ActionResult
	order          []string
	total          int
	completed      int
	succeeded      int
	skipped        int
	failed         int
	finished       bool
	cancelled      bool
	nonInteractive bool
}

// NewModel constructs a TUI model seeded from the plan.
func NewModel(title string, plan *engine.Plan, nonInteractive bool) Model {
	m := Model{
		title:          title,
		actions:        make(map[string]model.ActionResult),
		order:          make([]string, 0),
		nonInteractive: nonInteractive,
	}

	if plan != nil {
		for i := range plan.Actions {
			action := &plan.Actions[i]
			if _, exists := m.actions[action.ID]; !exists {
				m.actions[action.ID] = model.ActionResult{
					ActionID: action.ID,
					Kind:     action.Kind,
					Target:   action.Target,
					Status:   model.StatusPending,
				}
				m.order = append(m.order, action.ID)
				m.total++
			}
		}
	}

	return m
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

// TotalActions returns the total number of actions tracked by the model.
func (m Model) TotalActions() int {
	return m.total
}

// CompletedActions returns the number of finished actions.
func (m Model) CompletedActions() int {
	return m.completed
}

// IsFinished reports whether the run has completed.
func (m Model) IsFinished() bool {
	return m.finished
}

// IsCancelled reports whether the user interrupted the run.
func (m Model) IsCancelled() bool {
	return m.cancelled
}

func (m *Model) ensureAction(id string) {
	if id == "" {
		return
	}
	if _, exists := m.actions[id]; !exists {
		m.actions[id] = model.ActionResult{ActionID: id, Status: model.StatusPending}
		m.order = append(m.order, id)
		m.total++
	}
}

func (m *Model) markFinishedIfComplete() {
	if m.total > 0 && m.completed >= m.total {
		m.finished = true
	}
}

func completedStatus(status string) bool {
	switch status {
	case model.StatusSucceeded, model.StatusSkipped, model.StatusFailed:
		return true
	default:
		return false
	}
}
