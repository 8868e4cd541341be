package components

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/macstrap/macstrap/internal/model"
)

func TestActionListPreservesOrder(t *testing.T) {
	t.Parallel()

	actions := map[string]model.ActionResult{
		"formula:git":  {ActionID: "formula:git", Status: model.StatusSucceeded},
		"cask:firefox": {ActionID: "cask:firefox", Status: model.StatusPending},
	}
	list := NewActionList([]string{"formula:git", "cask:firefox"}, actions)

	entries := list.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "formula:git", entries[0].ID)
	require.Equal(t, "cask:firefox", entries[1].ID)
}

func TestActionListEntriesReturnsCopy(t *testing.T) {
	t.Parallel()

	list := NewActionList([]string{"formula:git"}, map[string]model.ActionResult{
		"formula:git": {ActionID: "formula:git"},
	})

	entries := list.Entries()
	entries[0].ID = "mutated"
	require.Equal(t, "formula:git", list.Entries()[0].ID)
}
