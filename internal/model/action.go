package model

// ActionKind identifies the category of work a planned action performs.
// Kinds also determine execution order and whether the action needs the
// elevated-privilege session.
type ActionKind string

const (
	// KindFormula installs a command-line package.
	KindFormula ActionKind = "formula"
	// KindCask installs a GUI-application package.
	KindCask ActionKind = "cask"
	// KindPrivilegedCask installs a cask that requires elevation.
	KindPrivilegedCask ActionKind = "privileged_cask"
	// KindAppStore installs a Mac App Store application.
	KindAppStore ActionKind = "app_store"
	// KindExtension installs an editor extension.
	KindExtension ActionKind = "extension"
	// KindIdentity configures the version-control identity.
	KindIdentity ActionKind = "identity"
	// KindSetting writes a system preference default.
	KindSetting ActionKind = "setting"
	// KindDock manipulates a dock entry.
	KindDock ActionKind = "dock"
)

// kindRank fixes the execution ordering policy: privileged installs are
// grouped after regular installs so the privilege session is requested
// once upfront, and settings and dock changes run last.
var kindRank = map[ActionKind]int{
	KindFormula:        0,
	KindCask:           1,
	KindPrivilegedCask: 2,
	KindAppStore:       3,
	KindExtension:      4,
	KindIdentity:       5,
	KindSetting:        6,
	KindDock:           7,
}

// Rank returns the kind's position in the execution ordering policy.
func (k ActionKind) Rank() int {
	return kindRank[k]
}

// Privileged reports whether actions of this kind require an active
// privilege session before their provider call may be attempted.
func (k ActionKind) Privileged() bool {
	switch k {
	case KindPrivilegedCask, KindSetting, KindDock:
		return true
	default:
		return false
	}
}

// PackageSpec identifies a single package request from the manifest.
type PackageSpec struct {
	Name string
	Kind ActionKind
}

// DockOp enumerates dock manipulation operations.
type DockOp string

const (
	// DockAdd appends an application to the dock.
	DockAdd DockOp = "add"
	// DockRemove removes a named entry from the dock.
	DockRemove DockOp = "remove"
	// DockReplace swaps a named entry with a new application.
	DockReplace DockOp = "replace"
)

// DockAction describes a single dock change. Target is an application
// path for add/replace and an entry name for remove. Replace names the
// entry being swapped out and is set only for replace operations.
type DockAction struct {
	Op      DockOp
	Target  string
	Replace string
}
