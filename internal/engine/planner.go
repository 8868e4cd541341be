package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/macstrap/macstrap/internal/capability"
	"github.com/macstrap/macstrap/internal/config"
	"github.com/macstrap/macstrap/internal/logger"
	"github.com/macstrap/macstrap/internal/model"
	"github.com/macstrap/macstrap/internal/providers"
	macstraperrors "github.com/macstrap/macstrap/pkg/errors"
)

// Planner diffs desired state against observed state to produce the
// minimal ordered action list. Provider satisfied-checks are read-only.
type Planner struct {
	caps  capability.Capabilities
	provs providers.Set
	log   *logger.Logger
}

// NewPlanner creates a planner over the probed capabilities and the
// provider set assembled for them.
func NewPlanner(caps capability.Capabilities, provs providers.Set, log *logger.Logger) *Planner {
	return &Planner{caps: caps, provs: provs, log: log}
}

// BuildPlan emits exactly one action per manifest request, ordered by
// kind rank with stable input order within a kind. Requests whose tool
// is absent become skip(capability-missing) rather than disappearing,
// so the report can surface why nothing happened.
func (p *Planner) BuildPlan(ctx context.Context, manifest *config.Manifest) (*Plan, error) {
	if manifest == nil {
		return nil, fmt.Errorf("manifest cannot be nil")
	}

	plan := &Plan{Actions: make([]Action, 0, manifest.RequestCount())}

	p.planPackages(ctx, plan, manifest.Formulae, model.KindFormula)
	p.planPackages(ctx, plan, manifest.Casks, model.KindCask)
	p.planPackages(ctx, plan, manifest.PrivilegedCasks, model.KindPrivilegedCask)
	p.planAppStore(ctx, plan, manifest.AppStoreApps)
	p.planExtensions(ctx, plan, manifest.EditorExtensions)
	p.planIdentity(ctx, plan, manifest.Identity)
	p.planSettings(ctx, plan, manifest.Settings)
	if err := p.planDock(ctx, plan, manifest); err != nil {
		return nil, err
	}

	return plan, nil
}

func (p *Planner) planPackages(ctx context.Context, plan *Plan, names []string, kind model.ActionKind) {
	for _, name := range names {
		spec := model.PackageSpec{Name: name, Kind: kind}
		action := Action{
			ID:      fmt.Sprintf("%s:%s", kind, name),
			Kind:    kind,
			Target:  name,
			Package: &spec,
		}

		if !p.caps.Has(capability.ToolPackageManager) || p.provs.Packages == nil {
			markCapabilityMissing(&action, capability.ToolPackageManager, "package manager not found")
		} else if installed := p.satisfied(ctx, action.ID, func() (bool, error) {
			return p.provs.Packages.IsInstalled(ctx, spec)
		}); installed {
			markSatisfied(&action)
		} else {
			action.Status = model.StatusPending
		}

		plan.Actions = append(plan.Actions, action)
	}
}

func (p *Planner) planAppStore(ctx context.Context, plan *Plan, apps []config.AppStoreApp) {
	for i := range apps {
		app := apps[i]
		action := Action{
			ID:       fmt.Sprintf("%s:%s", model.KindAppStore, app.ID),
			Kind:     model.KindAppStore,
			Target:   app.Name,
			AppStore: &app,
		}

		switch {
		case !p.caps.Has(capability.ToolAppStore) || p.provs.AppStore == nil:
			markCapabilityMissing(&action, capability.ToolAppStore, "app store CLI not found")
		case !p.caps.AppStoreSignedIn():
			markCapabilityMissing(&action, capability.ToolAppStore, "app store account not signed in")
		case p.satisfied(ctx, action.ID, func() (bool, error) {
			return p.provs.AppStore.IsInstalled(ctx, app.ID)
		}):
			markSatisfied(&action)
		default:
			action.Status = model.StatusPending
		}

		plan.Actions = append(plan.Actions, action)
	}
}

func (p *Planner) planExtensions(ctx context.Context, plan *Plan, ids []string) {
	for _, id := range ids {
		action := Action{
			ID:        fmt.Sprintf("%s:%s", model.KindExtension, id),
			Kind:      model.KindExtension,
			Target:    id,
			Extension: id,
		}

		if !p.caps.Has(capability.ToolEditor) || p.provs.Extensions == nil {
			markCapabilityMissing(&action, capability.ToolEditor, "editor CLI not found")
		} else if installed := p.satisfied(ctx, action.ID, func() (bool, error) {
			return p.provs.Extensions.IsInstalled(ctx, id)
		}); installed {
			markSatisfied(&action)
		} else {
			action.Status = model.StatusPending
		}

		plan.Actions = append(plan.Actions, action)
	}
}

func (p *Planner) planIdentity(ctx context.Context, plan *Plan, identity *config.Identity) {
	if identity == nil {
		return
	}

	action := Action{
		ID:       string(model.KindIdentity),
		Kind:     model.KindIdentity,
		Target:   identity.Email,
		Identity: identity,
	}

	if p.provs.Identity == nil {
		markCapabilityMissing(&action, "git", "identity provider unavailable")
	} else if satisfied := p.satisfied(ctx, action.ID, func() (bool, error) {
		name, email, err := p.provs.Identity.Current(ctx)
		if err != nil {
			return false, err
		}
		return name == identity.Name && email == identity.Email, nil
	}); satisfied {
		markSatisfied(&action)
	} else {
		action.Status = model.StatusPending
	}

	plan.Actions = append(plan.Actions, action)
}

func (p *Planner) planSettings(ctx context.Context, plan *Plan, settings []config.Setting) {
	for i := range settings {
		setting := settings[i]
		action := Action{
			ID:      fmt.Sprintf("%s:%s", model.KindSetting, setting.SettingKey()),
			Kind:    model.KindSetting,
			Target:  setting.SettingKey(),
			Setting: &setting,
		}

		if !p.caps.Has(capability.ToolDefaults) || p.provs.Settings == nil {
			markCapabilityMissing(&action, capability.ToolDefaults, "defaults tool not found")
		} else if satisfied := p.satisfied(ctx, action.ID, func() (bool, error) {
			current, present, err := p.provs.Settings.CurrentValue(ctx, setting)
			if err != nil {
				return false, err
			}
			return present && setting.ValueEquals(current), nil
		}); satisfied {
			markSatisfied(&action)
		} else {
			action.Status = model.StatusPending
		}

		plan.Actions = append(plan.Actions, action)
	}
}

func (p *Planner) planDock(ctx context.Context, plan *Plan, manifest *config.Manifest) error {
	dockActions := make([]model.DockAction, 0, len(manifest.DockAdd)+len(manifest.DockRemove)+len(manifest.DockReplace))
	for _, path := range manifest.DockAdd {
		dockActions = append(dockActions, model.DockAction{Op: model.DockAdd, Target: path})
	}
	for _, name := range manifest.DockRemove {
		dockActions = append(dockActions, model.DockAction{Op: model.DockRemove, Target: name})
	}
	for _, rep := range manifest.DockReplace {
		dockActions = append(dockActions, model.DockAction{Op: model.DockReplace, Target: rep.Add, Replace: rep.Replace})
	}

	if len(dockActions) == 0 {
		return nil
	}

	addedLabels := make(map[string]struct{}, len(manifest.DockAdd))
	for _, path := range manifest.DockAdd {
		addedLabels[dockLabel(path)] = struct{}{}
	}

	dockAvailable := p.caps.Has(capability.ToolDock) && p.provs.Dock != nil

	var entries map[string]struct{}
	if dockAvailable {
		current, err := p.provs.Dock.CurrentEntries(ctx)
		if err != nil {
			p.log.Error(err, "could not read current dock entries")
		} else {
			entries = make(map[string]struct{}, len(current))
			for _, label := range current {
				entries[label] = struct{}{}
			}
		}
	}

	for i := range dockActions {
		dockAction := dockActions[i]
		action := Action{
			ID:     fmt.Sprintf("%s:%s:%s", model.KindDock, dockAction.Op, dockTargetLabel(dockAction)),
			Kind:   model.KindDock,
			Target: dockTargetLabel(dockAction),
			Dock:   &dockAction,
		}

		if !dockAvailable {
			markCapabilityMissing(&action, capability.ToolDock, "dock utility not found")
		} else if entries != nil && dockSatisfied(dockAction, entries) {
			markSatisfied(&action)
		} else {
			// A replace must reference an entry that is in the dock now
			// or added earlier in this run.
			if dockAction.Op == model.DockReplace && entries != nil {
				_, inDock := entries[dockAction.Replace]
				_, added := addedLabels[dockAction.Replace]
				if !inDock && !added {
					return macstraperrors.NewValidationError("dockReplace",
						fmt.Sprintf("entry %q is not in the dock and is not added by this manifest", dockAction.Replace), nil)
				}
			}
			action.Status = model.StatusPending
		}

		plan.Actions = append(plan.Actions, action)
	}

	return nil
}

// dockSatisfied checks a dock change against the current entry labels.
// A replace is satisfied once the replaced entry is gone and the new
// application is present.
func dockSatisfied(action model.DockAction, entries map[string]struct{}) bool {
	switch action.Op {
	case model.DockAdd:
		_, present := entries[dockLabel(action.Target)]
		return present
	case model.DockRemove:
		_, present := entries[action.Target]
		return !present
	case model.DockReplace:
		_, replacedPresent := entries[action.Replace]
		_, addedPresent := entries[dockLabel(action.Target)]
		return !replacedPresent && addedPresent
	default:
		return false
	}
}

// dockLabel derives the dock entry label from an application path.
func dockLabel(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".app")
}

func dockTargetLabel(action model.DockAction) string {
	if action.Op == model.DockRemove {
		return action.Target
	}
	return dockLabel(action.Target)
}

// satisfied runs a provider's read-only check, treating a check failure
// as "not satisfied" so the install attempt surfaces the real error.
func (p *Planner) satisfied(ctx context.Context, actionID string, check func() (bool, error)) bool {
	ok, err := check()
	if err != nil {
		p.log.WithFields(map[string]any{"action": actionID}).Warn(
			fmt.Sprintf("satisfied-check failed, treating as pending: %v", err))
		return false
	}
	return ok
}

func markSatisfied(action *Action) {
	action.Status = model.StatusSkipped
	action.Reason = model.ReasonAlreadySatisfied
}

func markCapabilityMissing(action *Action, tool, detail string) {
	action.Status = model.StatusSkipped
	action.Reason = model.ReasonCapabilityMissing
	action.Detail = fmt.Sprintf("%s: %s", tool, detail)
}
