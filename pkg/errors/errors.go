package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures manifest validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PrivilegeError indicates the elevated-privilege session could not be
// acquired. Acquisition failures abort the run before any privileged
// action executes.
type PrivilegeError struct {
	Message string
	Err     error
}

// NewPrivilegeError constructs a PrivilegeError.
func NewPrivilegeError(message string, err error) error {
	return &PrivilegeError{Message: message, Err: err}
}

func (e *PrivilegeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("privilege error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("privilege error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *PrivilegeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ProviderError represents a runtime failure reported by an external
// provider while executing a single action. It is recorded against that
// action and never aborts the run.
type ProviderError struct {
	Provider string
	Target   string
	Err      error
}

// NewProviderError constructs a ProviderError for the given provider and target.
func NewProviderError(provider, target string, err error) error {
	return &ProviderError{Provider: provider, Target: target, Err: err}
}

func (e *ProviderError) Error() string {
	if e == nil {
		return ""
	}
	if e.Target != "" {
		return fmt.Sprintf("provider error [%s] %s: %v", e.Provider, e.Target, e.Err)
	}
	return fmt.Sprintf("provider error [%s]: %v", e.Provider, e.Err)
}

// Unwrap exposes the root error.
func (e *ProviderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CapabilityError marks an action whose external tool is not present on
// the system. Actions carrying it are skipped, not failed.
type CapabilityError struct {
	Tool    string
	Message string
}

// NewCapabilityError constructs a CapabilityError for the named tool.
func NewCapabilityError(tool, message string) error {
	return &CapabilityError{Tool: tool, Message: message}
}

func (e *CapabilityError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return fmt.Sprintf("capability missing [%s]: %s", e.Tool, e.Message)
	}
	return fmt.Sprintf("capability missing [%s]", e.Tool)
}
