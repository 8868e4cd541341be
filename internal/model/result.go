package model

import (
	"time"
)

const (
	// StatusPending indicates an action awaits execution.
	StatusPending = "pending"
	// StatusRunning indicates an action is actively executing.
	StatusRunning = "running"
	// StatusSucceeded marks a successful provider call.
	StatusSucceeded = "succeeded"
	// StatusSkipped indicates the planner or executor skipped the action.
	StatusSkipped = "skipped"
	// StatusFailed marks a failure during action execution.
	StatusFailed = "failed"
)

const (
	// ReasonAlreadySatisfied marks actions whose desired state the
	// system already exhibits.
	ReasonAlreadySatisfied = "already-satisfied"
	// ReasonCapabilityMissing marks actions whose external tool is not
	// available on this system.
	ReasonCapabilityMissing = "capability-missing"
	// ReasonPrivilegeUnavailable marks privileged actions attempted
	// without an active privilege session.
	ReasonPrivilegeUnavailable = "privilege-unavailable"
	// ReasonProviderError marks actions whose provider call failed.
	ReasonProviderError = "provider-error"
)

// ActionResult captures the outcome of executing a single planned action.
// Results accumulate in the report in plan order and are never rewritten.
type ActionResult struct {
	ActionID  string
	Kind      ActionKind
	Target    string
	Status    string
	Reason    string
	Message   string
	Error     error
	Duration  time.Duration
	Timestamp time.Time
}
