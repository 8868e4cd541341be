// Package providers defines the thin external-collaborator contracts the
// orchestrator core depends on. Each interface is implemented by an
// adapter around one external tool; the planner uses the read-only
// queries and the executor uses the mutating calls.
package providers

import (
	"context"

	"github.com/macstrap/macstrap/internal/config"
	"github.com/macstrap/macstrap/internal/model"
)

// PackageProvider installs command-line and GUI packages.
type PackageProvider interface {
	IsInstalled(ctx context.Context, spec model.PackageSpec) (bool, error)
	Install(ctx context.Context, spec model.PackageSpec) error
}

// AppStoreProvider installs Mac App Store applications. Callers must
// confirm a signed-in account before planning installs.
type AppStoreProvider interface {
	IsInstalled(ctx context.Context, id string) (bool, error)
	Install(ctx context.Context, id string) error
}

// ExtensionProvider installs editor extensions.
type ExtensionProvider interface {
	IsInstalled(ctx context.Context, id string) (bool, error)
	Install(ctx context.Context, id string) error
}

// SettingsProvider reads and writes system preference defaults, and
// restarts the UI-owning processes so applied settings take effect.
type SettingsProvider interface {
	// CurrentValue returns the present value for the setting's key and
	// whether the key exists at all.
	CurrentValue(ctx context.Context, setting config.Setting) (string, bool, error)
	Apply(ctx context.Context, setting config.Setting) error
	RestartUI(ctx context.Context) error
}

// DockProvider inspects and manipulates dock entries.
type DockProvider interface {
	CurrentEntries(ctx context.Context) ([]string, error)
	Apply(ctx context.Context, action model.DockAction) error
}

// IdentityProvider configures the version-control identity.
type IdentityProvider interface {
	Current(ctx context.Context) (name, email string, err error)
	Set(ctx context.Context, name, email string) error
}

// Set bundles one provider per concern for the planner and executor.
// Nil members are treated as absent collaborators; the planner skips
// their actions as capability-missing.
type Set struct {
	Packages   PackageProvider
	AppStore   AppStoreProvider
	Extensions ExtensionProvider
	Settings   SettingsProvider
	Dock       DockProvider
	Identity   IdentityProvider
}
