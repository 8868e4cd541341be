package capability

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/macstrap/macstrap/internal/logger"
)

// Known external tools probed before planning.
const (
	ToolPackageManager = "brew"
	ToolAppStore       = "mas"
	ToolEditor         = "code"
	ToolDock           = "dockutil"
	ToolDefaults       = "defaults"
)

var knownTools = []string{
	ToolPackageManager,
	ToolAppStore,
	ToolEditor,
	ToolDock,
	ToolDefaults,
}

// Capabilities records which external tools were found on the system.
// It is immutable once probed for the run.
type Capabilities struct {
	paths            map[string]string
	appStoreSignedIn bool
}

// NewCapabilities constructs a capability set from resolved tool paths.
// Used by tests and by the prober itself.
func NewCapabilities(paths map[string]string, appStoreSignedIn bool) Capabilities {
	copied := make(map[string]string, len(paths))
	for tool, path := range paths {
		copied[tool] = path
	}
	return Capabilities{paths: copied, appStoreSignedIn: appStoreSignedIn}
}

// Has reports whether the named tool was found.
func (c Capabilities) Has(tool string) bool {
	_, ok := c.paths[tool]
	return ok
}

// Path returns the resolved absolute path of the named tool.
func (c Capabilities) Path(tool string) (string, bool) {
	path, ok := c.paths[tool]
	return path, ok
}

// AppStoreSignedIn reports whether the app-store CLI was found with a
// signed-in account. App-store installs are skipped otherwise.
func (c Capabilities) AppStoreSignedIn() bool {
	return c.appStoreSignedIn
}

// Prober resolves the known external tools. Lookup functions are fields
// so tests can substitute fakes.
type Prober struct {
	LookPath     func(file string) (string, error)
	CheckAccount func(ctx context.Context, masPath string) error
	Logger       *logger.Logger
}

// NewProber creates a prober backed by the real PATH lookup and the
// app-store CLI account query.
func NewProber(log *logger.Logger) *Prober {
	return &Prober{
		LookPath: exec.LookPath,
		CheckAccount: func(ctx context.Context, masPath string) error {
			return exec.CommandContext(ctx, masPath, "account").Run()
		},
		Logger: log,
	}
}

// Probe performs a lightweight presence check for each known tool.
// Absence is a normal, recorded outcome; Probe never fails.
func (p *Prober) Probe(ctx context.Context) Capabilities {
	paths := make(map[string]string, len(knownTools))

	for _, tool := range knownTools {
		path, err := p.LookPath(tool)
		if err != nil {
			p.Logger.WithFields(map[string]any{"tool": tool}).Debug("tool not found")
			continue
		}
		paths[tool] = path
		p.Logger.WithFields(map[string]any{"tool": tool, "path": path}).Debug("tool found")
	}

	signedIn := false
	if masPath, ok := paths[ToolAppStore]; ok {
		if err := p.CheckAccount(ctx, masPath); err != nil {
			p.Logger.Warn(fmt.Sprintf("app store CLI present but not signed in: %v", err))
		} else {
			signedIn = true
		}
	}

	return NewCapabilities(paths, signedIn)
}
