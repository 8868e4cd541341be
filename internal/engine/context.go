package engine

import (
	"context"

	"github.com/macstrap/macstrap/internal/logger"
	"github.com/macstrap/macstrap/internal/model"
	"github.com/macstrap/macstrap/internal/privilege"
	"github.com/macstrap/macstrap/internal/providers"
	"github.com/macstrap/macstrap/internal/report"
)

// ExecutionContext carries the collaborators the executor needs for one
// run. The privilege session is referenced, not owned; the run tears it
// down.
type ExecutionContext struct {
	Context   context.Context
	Providers providers.Set
	Session   *privilege.Session
	Report    *report.Report
	Logger    *logger.Logger

	// EventSink, when set, receives each action result as it is
	// produced, for live progress rendering.
	EventSink func(model.ActionResult)
}
