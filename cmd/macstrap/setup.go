package main

import (
	"context"

	"github.com/macstrap/macstrap/internal/capability"
	"github.com/macstrap/macstrap/internal/config"
	"github.com/macstrap/macstrap/internal/engine"
	"github.com/macstrap/macstrap/internal/logger"
	"github.com/macstrap/macstrap/internal/providers"
	"github.com/macstrap/macstrap/internal/providers/appstore"
	"github.com/macstrap/macstrap/internal/providers/brew"
	"github.com/macstrap/macstrap/internal/providers/dock"
	"github.com/macstrap/macstrap/internal/providers/identity"
	"github.com/macstrap/macstrap/internal/providers/macdefaults"
	"github.com/macstrap/macstrap/internal/providers/vscode"
)

// buildProviders assembles one adapter per tool found on the machine.
// Absent tools leave their slot nil; the planner turns requests for
// them into capability-missing skips.
func buildProviders(caps capability.Capabilities) providers.Set {
	set := providers.Set{Identity: identity.New()}

	if path, ok := caps.Path(capability.ToolPackageManager); ok {
		set.Packages = brew.New(path)
	}
	if path, ok := caps.Path(capability.ToolAppStore); ok {
		set.AppStore = appstore.New(path)
	}
	if path, ok := caps.Path(capability.ToolEditor); ok {
		set.Extensions = vscode.New(path)
	}
	if path, ok := caps.Path(capability.ToolDefaults); ok {
		set.Settings = macdefaults.New(path)
	}
	if path, ok := caps.Path(capability.ToolDock); ok {
		set.Dock = dock.New(path)
	}

	return set
}

// preparePlan loads the manifest, probes the machine and diffs the two
// into an execution plan.
func preparePlan(ctx context.Context, manifestPath string, log *logger.Logger) (*config.Manifest, *engine.Plan, providers.Set, error) {
	manifest, err := config.ParseManifest(manifestPath)
	if err != nil {
		return nil, nil, providers.Set{}, err
	}

	caps := capability.NewProber(log).Probe(ctx)
	provs := buildProviders(caps)

	plan, err := engine.NewPlanner(caps, provs, log).BuildPlan(ctx, manifest)
	if err != nil {
		return nil, nil, providers.Set{}, err
	}

	return manifest, plan, provs, nil
}
