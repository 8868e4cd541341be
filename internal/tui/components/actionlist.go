package components

import (
	"github.com/macstrap/macstrap/internal/model"
)

// ActionEntry represents a single planned action for rendering.
type ActionEntry struct {
	ID     string
	Result model.ActionResult
}

// ActionList renders the planned actions with their current status.
type ActionList struct {
	entries []ActionEntry
}

// NewActionList constructs an action list component.
func NewActionList(order []string, actions map[string]model.ActionResult) ActionList {
	entries := make([]ActionEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, ActionEntry{ID: id, Result: actions[id]})
	}
	return ActionList{entries: entries}
}

// Entries returns the ordered action entries.
func (a ActionList) Entries() []ActionEntry {
	clone := make([]ActionEntry, len(a.entries))
	copy(clone, a.entries)
	return clone
}
