package engine

import (
	"fmt"
	"strings"

	"github.com/macstrap/macstrap/internal/config"
	"github.com/macstrap/macstrap/internal/model"
)

// Action is one planned unit of work. Exactly one payload field is set,
// matching the action's kind. The planner fixes Status to pending or
// skipped; the executor never mutates the plan, it only records
// outcomes in the report.
type Action struct {
	ID     string
	Kind   model.ActionKind
	Target string
	Status string
	Reason string
	Detail string

	Package   *model.PackageSpec
	AppStore  *config.AppStoreApp
	Extension string
	Setting   *config.Setting
	Dock      *model.DockAction
	Identity  *config.Identity
}

// Pending reports whether the executor should attempt this action.
func (a *Action) Pending() bool {
	return a.Status == model.StatusPending
}

// Privileged reports whether this action needs the privilege session.
func (a *Action) Privileged() bool {
	return a.Kind.Privileged()
}

// Plan is the ordered, annotated list of actions derived from the
// manifest minus already-satisfied state. Built once, consumed once.
type Plan struct {
	Actions []Action
}

// PendingCount returns the number of actions awaiting execution.
func (p *Plan) PendingCount() int {
	count := 0
	for i := range p.Actions {
		if p.Actions[i].Pending() {
			count++
		}
	}
	return count
}

// NeedsPrivilege reports whether any pending action requires the
// privilege session, so the credential is requested once upfront and
// only when actually needed.
func (p *Plan) NeedsPrivilege() bool {
	for i := range p.Actions {
		if p.Actions[i].Pending() && p.Actions[i].Privileged() {
			return true
		}
	}
	return false
}

// String renders a human readable summary of the plan.
func (p *Plan) String() string {
	if p == nil {
		return ""
	}

	var b strings.Builder
	for _, action := range p.Actions {
		switch action.Status {
		case model.StatusSkipped:
			fmt.Fprintf(&b, "skip    %-50s %s\n", action.ID, action.Reason)
		default:
			fmt.Fprintf(&b, "pending %s\n", action.ID)
		}
	}
	return b.String()
}
