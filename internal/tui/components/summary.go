package components

import (
	"fmt"
	"strings"
)

// SummaryData aggregates counts for rendering the run summary.
type SummaryData struct {
	Total     int
	Succeeded int
	Skipped   int
	Failed    int
	Finished  bool
	Cancelled bool
}

// Summary renders a textual run summary.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// View renders the summary.
func (s Summary) View() string {
	var lines []string
	if s.data.Total > 0 {
		lines = append(lines, fmt.Sprintf("Actions: %d succeeded, %d skipped, %d failed (%d total)",
			s.data.Succeeded, s.data.Skipped, s.data.Failed, s.data.Total))
	}

	if s.data.Cancelled {
		lines = append(lines, "Run cancelled")
	} else if s.data.Finished && s.data.Total > 0 {
		if s.data.Failed == 0 {
			lines = append(lines, "Run finished successfully")
		} else {
			lines = append(lines, "Run finished with failures")
		}
	}

	return strings.Join(lines, "\n")
}
