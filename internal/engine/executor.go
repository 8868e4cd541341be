package engine

import (
	"fmt"
	"time"

	"github.com/macstrap/macstrap/internal/model"
	macstraperrors "github.com/macstrap/macstrap/pkg/errors"
)

// Execute consumes the plan in order, recording one outcome per action
// in the report. A failed provider call is terminal for that single
// action only; execution always proceeds to the next action. The only
// way out early is context cancellation, which still leaves a partial
// report behind.
func Execute(execCtx *ExecutionContext, plan *Plan) ([]model.ActionResult, error) {
	if execCtx == nil {
		return nil, fmt.Errorf("execution context is nil")
	}
	if plan == nil {
		return nil, fmt.Errorf("execution plan is nil")
	}

	ctx := execCtx.Context
	var results []model.ActionResult
	restartPending := false

	for i := range plan.Actions {
		action := &plan.Actions[i]

		if err := ctx.Err(); err != nil {
			return results, err
		}

		// Settings are contiguous in plan order; once past them, give
		// the UI-owning processes their restart signal.
		if restartPending && action.Kind != model.KindSetting {
			restartUI(execCtx)
			restartPending = false
		}

		res := executeAction(execCtx, action)
		if action.Kind == model.KindSetting && res.Status == model.StatusSucceeded {
			restartPending = true
		}

		execCtx.Report.Add(res)
		if execCtx.EventSink != nil {
			execCtx.EventSink(res)
		}
		results = append(results, res)
	}

	if restartPending {
		restartUI(execCtx)
	}

	return results, nil
}

func executeAction(execCtx *ExecutionContext, action *Action) model.ActionResult {
	res := model.ActionResult{
		ActionID:  action.ID,
		Kind:      action.Kind,
		Target:    action.Target,
		Timestamp: time.Now(),
	}

	// Skip entries were decided at plan time and are never re-checked.
	if !action.Pending() {
		res.Status = model.StatusSkipped
		res.Reason = action.Reason
		res.Message = action.Detail
		if res.Message == "" {
			res.Message = action.Reason
		}
		return res
	}

	log := execCtx.Logger.WithAction(action.Kind, action.Target)

	if action.Privileged() && (execCtx.Session == nil || !execCtx.Session.Active()) {
		res.Status = model.StatusFailed
		res.Reason = model.ReasonPrivilegeUnavailable
		res.Message = "privilege session not active"
		log.Warn("skipping provider call, privilege session not active")
		return res
	}

	start := time.Now()
	err := invokeProvider(execCtx, action)
	res.Duration = time.Since(start)

	if err != nil {
		res.Status = model.StatusFailed
		res.Reason = model.ReasonProviderError
		res.Message = err.Error()
		res.Error = err
		log.Error(err, "action failed")
		return res
	}

	res.Status = model.StatusSucceeded
	log.WithFields(map[string]any{"duration": res.Duration.String()}).Info("action completed")
	return res
}

func invokeProvider(execCtx *ExecutionContext, action *Action) error {
	ctx := execCtx.Context
	provs := execCtx.Providers

	switch action.Kind {
	case model.KindFormula, model.KindCask, model.KindPrivilegedCask:
		if provs.Packages == nil {
			return macstraperrors.NewProviderError("packages", action.Target, fmt.Errorf("provider unavailable"))
		}
		return provs.Packages.Install(ctx, *action.Package)
	case model.KindAppStore:
		if provs.AppStore == nil {
			return macstraperrors.NewProviderError("appstore", action.Target, fmt.Errorf("provider unavailable"))
		}
		return provs.AppStore.Install(ctx, action.AppStore.ID)
	case model.KindExtension:
		if provs.Extensions == nil {
			return macstraperrors.NewProviderError("extensions", action.Target, fmt.Errorf("provider unavailable"))
		}
		return provs.Extensions.Install(ctx, action.Extension)
	case model.KindIdentity:
		if provs.Identity == nil {
			return macstraperrors.NewProviderError("identity", action.Target, fmt.Errorf("provider unavailable"))
		}
		return provs.Identity.Set(ctx, action.Identity.Name, action.Identity.Email)
	case model.KindSetting:
		if provs.Settings == nil {
			return macstraperrors.NewProviderError("settings", action.Target, fmt.Errorf("provider unavailable"))
		}
		return provs.Settings.Apply(ctx, *action.Setting)
	case model.KindDock:
		if provs.Dock == nil {
			return macstraperrors.NewProviderError("dock", action.Target, fmt.Errorf("provider unavailable"))
		}
		return provs.Dock.Apply(ctx, *action.Dock)
	default:
		return fmt.Errorf("unknown action kind %q", action.Kind)
	}
}

// restartUI asks the settings provider to bounce the UI-owning
// processes. Failure here is logged and never fails the run.
func restartUI(execCtx *ExecutionContext) {
	if execCtx.Providers.Settings == nil {
		return
	}
	if err := execCtx.Providers.Settings.RestartUI(execCtx.Context); err != nil {
		execCtx.Logger.Warn(fmt.Sprintf("UI restart signal failed: %v", err))
	} else {
		execCtx.Logger.Debug("restarted UI processes to pick up settings")
	}
}
