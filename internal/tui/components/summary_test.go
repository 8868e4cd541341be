package components

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummaryViewCounts(t *testing.T) {
	t.Parallel()

	view := NewSummary(SummaryData{Total: 5, Succeeded: 3, Skipped: 1, Failed: 1}).View()
	require.Contains(t, view, "3 succeeded")
	require.Contains(t, view, "1 skipped")
	require.Contains(t, view, "1 failed")
}

func TestSummaryViewFinishedStates(t *testing.T) {
	t.Parallel()

	clean := NewSummary(SummaryData{Total: 2, Succeeded: 2, Finished: true}).View()
	require.Contains(t, clean, "finished successfully")

	dirty := NewSummary(SummaryData{Total: 2, Succeeded: 1, Failed: 1, Finished: true}).View()
	require.Contains(t, dirty, "finished with failures")

	cancelled := NewSummary(SummaryData{Total: 2, Cancelled: true}).View()
	require.Contains(t, cancelled, "cancelled")
}

func TestSummaryViewEmptyWhenNothingPlanned(t *testing.T) {
	t.Parallel()

	view := NewSummary(SummaryData{}).View()
	require.Empty(t, view)
}
