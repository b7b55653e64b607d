package logsafe

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrInvalidTag indicates a struct tag has an invalid format or value.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrInvalidPolicy indicates a type policy names an unknown mode or format.
	ErrInvalidPolicy = errors.New("invalid policy")

	// ErrInvalidConfig indicates a policy file could not be parsed.
	ErrInvalidConfig = errors.New("invalid policy config")

	// ErrRender indicates the renderer failed to produce text.
	ErrRender = errors.New("render failed")

	// ErrPanic indicates a panic was recovered while serializing.
	ErrPanic = errors.New("serialize panicked")
)

// ConfigError represents a policy declaration error.
// It wraps a sentinel error with context about the type, field, and tag.
type ConfigError struct {
	Err   error  // Underlying sentinel error (ErrInvalidTag, ErrInvalidPolicy)
	Type  string // Type that declared the policy
	Field string // Field name that triggered the error
	Tag   string // Tag key that held the invalid value
}

func (e *ConfigError) Error() string {
	switch {
	case e.Field != "" && e.Tag != "":
		return fmt.Sprintf("%s: %s (field %s.%s)", e.Err.Error(), e.Tag, e.Type, e.Field)
	case e.Field != "":
		return fmt.Sprintf("%s (field %s.%s)", e.Err.Error(), e.Type, e.Field)
	case e.Type != "":
		return fmt.Sprintf("%s (type %s)", e.Err.Error(), e.Type)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// RenderError represents a failure absorbed by Serialize.
// It is never returned to callers; it is carried on SignalSerializeFailed.
type RenderError struct {
	Err   error  // Underlying sentinel error (ErrRender, ErrPanic)
	Type  string // Type of the value being serialized
	Cause error  // Original error, if any
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s for %s: %v", e.Err.Error(), e.Type, e.Cause)
	}
	return fmt.Sprintf("%s for %s", e.Err.Error(), e.Type)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// newConfigError creates a ConfigError for an invalid declaration.
func newConfigError(sentinel error, typeName, field, tag string) error {
	return &ConfigError{
		Err:   sentinel,
		Type:  typeName,
		Field: field,
		Tag:   tag,
	}
}

// newRenderError creates a RenderError for an absorbed failure.
func newRenderError(sentinel error, typeName string, cause error) error {
	return &RenderError{
		Err:   sentinel,
		Type:  typeName,
		Cause: cause,
	}
}
