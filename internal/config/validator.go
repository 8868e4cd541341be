package config

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	macstraperrors "github.com/macstrap/macstrap/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})

	return validateInst
}

// ValidateManifest performs schema and cross-field validation on the
// manifest. Malformed entries are rejected outright rather than dropped.
func ValidateManifest(m *Manifest) error {
	if m == nil {
		return macstraperrors.NewValidationError("manifest", "manifest is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(m); err != nil {
		return convertValidationError(err)
	}

	for _, section := range []struct {
		name  string
		items []string
	}{
		{"formulae", m.Formulae},
		{"casks", m.Casks},
		{"privilegedCasks", m.PrivilegedCasks},
		{"editorExtensions", m.EditorExtensions},
	} {
		if idx, dup := findDuplicate(section.items); dup != "" {
			return macstraperrors.NewValidationError(
				fmt.Sprintf("%s[%d]", section.name, idx),
				fmt.Sprintf("duplicate package name %q", dup), nil)
		}
	}

	seenApps := make(map[string]struct{}, len(m.AppStoreApps))
	for i, app := range m.AppStoreApps {
		if _, exists := seenApps[app.ID]; exists {
			return macstraperrors.NewValidationError(
				fmt.Sprintf("appStoreApps[%d].id", i),
				fmt.Sprintf("duplicate app store id %q", app.ID), nil)
		}
		seenApps[app.ID] = struct{}{}
	}

	seenSettings := make(map[string]struct{}, len(m.Settings))
	for i, setting := range m.Settings {
		key := setting.SettingKey()
		if _, exists := seenSettings[key]; exists {
			return macstraperrors.NewValidationError(
				fmt.Sprintf("settings[%d]", i),
				fmt.Sprintf("duplicate setting %q", key), nil)
		}
		seenSettings[key] = struct{}{}

		if err := validateSettingValue(setting, i); err != nil {
			return err
		}
	}

	if err := validateDockSections(m); err != nil {
		return err
	}

	return nil
}

func validateSettingValue(setting Setting, index int) error {
	field := fmt.Sprintf("settings[%d].value", index)

	switch setting.Type {
	case "bool":
		if _, err := strconv.ParseBool(setting.Value); err != nil {
			return macstraperrors.NewValidationError(field,
				fmt.Sprintf("%q is not a valid bool", setting.Value), err)
		}
	case "int":
		if _, err := strconv.ParseInt(setting.Value, 10, 64); err != nil {
			return macstraperrors.NewValidationError(field,
				fmt.Sprintf("%q is not a valid int", setting.Value), err)
		}
	case "float":
		if _, err := strconv.ParseFloat(setting.Value, 64); err != nil {
			return macstraperrors.NewValidationError(field,
				fmt.Sprintf("%q is not a valid float", setting.Value), err)
		}
	}

	return nil
}

func validateDockSections(m *Manifest) error {
	if idx, dup := findDuplicate(m.DockAdd); dup != "" {
		return macstraperrors.NewValidationError(
			fmt.Sprintf("dockAdd[%d]", idx),
			fmt.Sprintf("duplicate dock entry %q", dup), nil)
	}
	if idx, dup := findDuplicate(m.DockRemove); dup != "" {
		return macstraperrors.NewValidationError(
			fmt.Sprintf("dockRemove[%d]", idx),
			fmt.Sprintf("duplicate dock entry %q", dup), nil)
	}

	removed := make(map[string]struct{}, len(m.DockRemove))
	for _, name := range m.DockRemove {
		removed[name] = struct{}{}
	}

	seenReplaced := make(map[string]struct{}, len(m.DockReplace))
	for i, rep := range m.DockReplace {
		if _, exists := seenReplaced[rep.Replace]; exists {
			return macstraperrors.NewValidationError(
				fmt.Sprintf("dockReplace[%d].replace", i),
				fmt.Sprintf("entry %q replaced more than once", rep.Replace), nil)
		}
		seenReplaced[rep.Replace] = struct{}{}

		// A replaced entry that is also removed can never be satisfied.
		if _, alsoRemoved := removed[rep.Replace]; alsoRemoved {
			return macstraperrors.NewValidationError(
				fmt.Sprintf("dockReplace[%d].replace", i),
				fmt.Sprintf("entry %q is also listed in dockRemove", rep.Replace), nil)
		}
	}

	return nil
}

func findDuplicate(items []string) (int, string) {
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if _, exists := seen[item]; exists {
			return i, item
		}
		seen[item] = struct{}{}
	}
	return 0, ""
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return macstraperrors.NewValidationError(field, msg, err)
	}

	return macstraperrors.NewValidationError("manifest", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	var lowered []string
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}
