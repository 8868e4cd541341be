package config

import (
	"strconv"
	"strings"
)

// Manifest represents the full declarative description of desired
// workstation state. Absent sections decode to empty values and are
// treated as "nothing requested", not as errors.
type Manifest struct {
	Name             string        `yaml:"name,omitempty" validate:"omitempty,max=100"`
	Description      string        `yaml:"description,omitempty"`
	Formulae         []string      `yaml:"formulae,omitempty" validate:"omitempty,dive,min=1,max=100"`
	Casks            []string      `yaml:"casks,omitempty" validate:"omitempty,dive,min=1,max=100"`
	PrivilegedCasks  []string      `yaml:"privilegedCasks,omitempty" validate:"omitempty,dive,min=1,max=100"`
	AppStoreApps     []AppStoreApp `yaml:"appStoreApps,omitempty" validate:"omitempty,dive"`
	EditorExtensions []string      `yaml:"editorExtensions,omitempty" validate:"omitempty,dive,min=1"`
	Settings         []Setting     `yaml:"settings,omitempty" validate:"omitempty,dive"`
	DockAdd          []string      `yaml:"dockAdd,omitempty" validate:"omitempty,dive,min=1"`
	DockRemove       []string      `yaml:"dockRemove,omitempty" validate:"omitempty,dive,min=1"`
	DockReplace      []DockReplace `yaml:"dockReplace,omitempty" validate:"omitempty,dive"`
	Identity         *Identity     `yaml:"identity,omitempty"`
}

// AppStoreApp identifies a Mac App Store application by its numeric
// store ID. The name is informational, used for display and logs.
type AppStoreApp struct {
	ID   string `yaml:"id" validate:"required,numeric"`
	Name string `yaml:"name" validate:"required,min=1"`
}

// Setting describes one system preference default.
type Setting struct {
	Domain string `yaml:"domain" validate:"required,min=1"`
	Key    string `yaml:"key" validate:"required,min=1"`
	Value  string `yaml:"value" validate:"required"`
	Type   string `yaml:"type" validate:"required,oneof=bool int float string"`
}

// SettingKey returns the "domain:key" identifier used to address a
// setting across the planner, providers, and report.
func (s Setting) SettingKey() string {
	return s.Domain + ":" + s.Key
}

// ValueEquals reports whether a value read back from the settings
// provider already equals the desired value, normalizing the provider's
// representation per value type (booleans read back as 1/0, floats may
// gain or lose trailing zeros).
func (s Setting) ValueEquals(current string) bool {
	current = strings.TrimSpace(current)

	switch s.Type {
	case "bool":
		desired, err := strconv.ParseBool(s.Value)
		if err != nil {
			return false
		}
		got, err := strconv.ParseBool(current)
		if err != nil {
			return false
		}
		return desired == got
	case "int":
		desired, err := strconv.ParseInt(s.Value, 10, 64)
		if err != nil {
			return false
		}
		got, err := strconv.ParseInt(current, 10, 64)
		if err != nil {
			return false
		}
		return desired == got
	case "float":
		desired, err := strconv.ParseFloat(s.Value, 64)
		if err != nil {
			return false
		}
		got, err := strconv.ParseFloat(current, 64)
		if err != nil {
			return false
		}
		return desired == got
	default:
		return s.Value == current
	}
}

// DockReplace swaps an existing dock entry for a new application.
// Both sides are required; a half-specified pair is a validation error.
type DockReplace struct {
	Add     string `yaml:"add" validate:"required,min=1"`
	Replace string `yaml:"replace" validate:"required,min=1"`
}

// Identity carries the version-control identity to configure.
type Identity struct {
	Name  string `yaml:"name" validate:"required,min=1"`
	Email string `yaml:"email" validate:"required,email"`
}

// RequestCount returns the total number of requested items across all
// sections. Every request yields exactly one plan action.
func (m *Manifest) RequestCount() int {
	if m == nil {
		return 0
	}
	count := len(m.Formulae) + len(m.Casks) + len(m.PrivilegedCasks) +
		len(m.AppStoreApps) + len(m.EditorExtensions) + len(m.Settings) +
		len(m.DockAdd) + len(m.DockRemove) + len(m.DockReplace)
	if m.Identity != nil {
		count++
	}
	return count
}
