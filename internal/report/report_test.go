package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/macstrap/macstrap/internal/model"
)

func TestReportSummarizeCounts(t *testing.T) {
	t.Parallel()

	r := New()
	r.Add(model.ActionResult{ActionID: "formula:git", Status: model.StatusSucceeded})
	r.Add(model.ActionResult{ActionID: "formula:curl", Status: model.StatusFailed, Reason: model.ReasonProviderError, Error: errors.New("boom")})
	r.Add(model.ActionResult{ActionID: "cask:iterm2", Status: model.StatusSkipped, Reason: model.ReasonAlreadySatisfied})

	s := r.Summarize()
	require.Equal(t, 3, s.Total)
	require.Equal(t, 1, s.Succeeded)
	require.Equal(t, 1, s.Skipped)
	require.Equal(t, 1, s.Failed)
}

func TestReportFailedActionsPreserveOrderAndReasons(t *testing.T) {
	t.Parallel()

	r := New()
	r.Add(model.ActionResult{ActionID: "formula:a", Status: model.StatusFailed, Reason: model.ReasonProviderError})
	r.Add(model.ActionResult{ActionID: "formula:b", Status: model.StatusSucceeded})
	r.Add(model.ActionResult{ActionID: "setting:x", Status: model.StatusFailed, Reason: model.ReasonPrivilegeUnavailable})

	failed := r.FailedActions()
	require.Len(t, failed, 2)
	require.Equal(t, "formula:a", failed[0].ActionID)
	require.Equal(t, "setting:x", failed[1].ActionID)
	require.Equal(t, model.ReasonPrivilegeUnavailable, failed[1].Reason)
}

func TestReportExitCode(t *testing.T) {
	t.Parallel()

	clean := New()
	clean.Add(model.ActionResult{Status: model.StatusSucceeded})
	clean.Add(model.ActionResult{Status: model.StatusSkipped})
	require.Equal(t, 0, clean.ExitCode())

	dirty := New()
	dirty.Add(model.ActionResult{Status: model.StatusSucceeded})
	dirty.Add(model.ActionResult{Status: model.StatusFailed})
	require.Equal(t, 1, dirty.ExitCode())
}

func TestReportResultsReturnsCopy(t *testing.T) {
	t.Parallel()

	r := New()
	r.Add(model.ActionResult{ActionID: "formula:git", Status: model.StatusSucceeded})

	results := r.Results()
	results[0].Status = model.StatusFailed
	require.Equal(t, 0, r.ExitCode())
}
