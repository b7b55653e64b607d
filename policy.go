package logsafe

import "fmt"

// Unlimited disables a depth or length bound.
const Unlimited = -1

// Mode selects which fields of an eligible type are traversed.
type Mode string

const (
	// ModeAll traverses every readable field.
	ModeAll Mode = "all"

	// ModeIncludeListed traverses only fields tagged `log.include:"true"`.
	ModeIncludeListed Mode = "include"

	// ModeExcludeListed traverses every field except those tagged `log.exclude:"true"`.
	ModeExcludeListed Mode = "exclude"
)

// Format selects the renderer used for an eligible type.
type Format string

const (
	// FormatFlat renders comma-joined key=value pairs.
	FormatFlat Format = "flat"

	// FormatStructured renders a nested object through the serializer's Codec.
	FormatStructured Format = "structured"
)

// validModes contains all valid traversal modes for policy validation.
var validModes = map[Mode]bool{
	ModeAll:           true,
	ModeIncludeListed: true,
	ModeExcludeListed: true,
}

// validFormats contains all valid output formats for policy validation.
var validFormats = map[Format]bool{
	FormatFlat:       true,
	FormatStructured: true,
}

// IsValidMode returns true if the mode is a known traversal mode.
func IsValidMode(m Mode) bool {
	return validModes[m]
}

// IsValidFormat returns true if the format is a known output format.
func IsValidFormat(f Format) bool {
	return validFormats[f]
}

// TypePolicy is the type-level serialization policy.
type TypePolicy struct {
	Mode     Mode
	Format   Format
	MaxDepth int // Unlimited (-1) or the deepest owner depth that is still expanded
}

// DefaultPolicy returns the policy applied when a type declares nothing more specific:
// every field, flat output, no depth bound.
func DefaultPolicy() TypePolicy {
	return TypePolicy{
		Mode:     ModeAll,
		Format:   FormatFlat,
		MaxDepth: Unlimited,
	}
}

// Validate reports whether the policy names known modes and formats.
func (p TypePolicy) Validate() error {
	if !IsValidMode(p.Mode) {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidPolicy, p.Mode)
	}
	if !IsValidFormat(p.Format) {
		return fmt.Errorf("%w: unknown format %q", ErrInvalidPolicy, p.Format)
	}
	if p.MaxDepth < Unlimited {
		return fmt.Errorf("%w: max depth %d", ErrInvalidPolicy, p.MaxDepth)
	}
	return nil
}

// normalize fills zero-valued fields with defaults.
func (p TypePolicy) normalize() TypePolicy {
	if p.Mode == "" {
		p.Mode = ModeAll
	}
	if p.Format == "" {
		p.Format = FormatFlat
	}
	return p
}

// PolicyOption configures a TypePolicy at registration.
type PolicyOption func(*TypePolicy)

// WithMode sets the traversal mode.
func WithMode(m Mode) PolicyOption {
	return func(p *TypePolicy) { p.Mode = m }
}

// WithFormat sets the output format.
func WithFormat(f Format) PolicyOption {
	return func(p *TypePolicy) { p.Format = f }
}

// WithMaxDepth bounds traversal depth. Use Unlimited to remove the bound.
func WithMaxDepth(depth int) PolicyOption {
	return func(p *TypePolicy) { p.MaxDepth = depth }
}

// Structured is shorthand for WithFormat(FormatStructured).
func Structured() PolicyOption {
	return WithFormat(FormatStructured)
}
