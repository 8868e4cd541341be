// Package report aggregates per-action outcomes into the run summary.
package report

import (
	"github.com/macstrap/macstrap/internal/model"
)

// Report accumulates action results in plan order. It is pure
// aggregation; rendering is the caller's concern.
type Report struct {
	results []model.ActionResult
}

// New creates an empty report.
func New() *Report {
	return &Report{}
}

// Add records one action outcome. Outcomes are append-only and never
// overwritten.
func (r *Report) Add(result model.ActionResult) {
	r.results = append(r.results, result)
}

// Results returns all recorded outcomes in plan order.
func (r *Report) Results() []model.ActionResult {
	out := make([]model.ActionResult, len(r.results))
	copy(out, r.results)
	return out
}

// Summary holds the aggregate counts per outcome kind.
type Summary struct {
	Total     int
	Succeeded int
	Skipped   int
	Failed    int
}

// Summarize computes the aggregate counts.
func (r *Report) Summarize() Summary {
	s := Summary{Total: len(r.results)}
	for _, res := range r.results {
		switch res.Status {
		case model.StatusSucceeded:
			s.Succeeded++
		case model.StatusSkipped:
			s.Skipped++
		case model.StatusFailed:
			s.Failed++
		}
	}
	return s
}

// FailedActions returns the failed outcomes, in plan order, with their
// reasons intact.
func (r *Report) FailedActions() []model.ActionResult {
	var failed []model.ActionResult
	for _, res := range r.results {
		if res.Status == model.StatusFailed {
			failed = append(failed, res)
		}
	}
	return failed
}

// ExitCode maps the report to a process exit status: zero only for a
// run with no failed actions, so calling automation can detect partial
// failure without parsing output.
func (r *Report) ExitCode() int {
	for _, res := range r.results {
		if res.Status == model.StatusFailed {
			return 1
		}
	}
	return 0
}
