package mergefile

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Style selects how conflicts are written.
type Style string

const (
	StyleDiff  Style = "diff"  // ours and theirs only
	StyleDiff3 Style = "diff3" // ours, base and theirs
)

// Default option values.
const (
	DefaultOurLabel   = "ours"
	DefaultBaseLabel  = "base"
	DefaultTheirLabel = "theirs"
	DefaultMarkerSize = 7
)

// Options control how conflict regions are labeled and written. The zero value is usable: every zero field means its default.
type Options struct {
	OurLabel   string // Label after the "<<<<<<<" marker. Default "ours".
	BaseLabel  string // Label after the "|||||||" marker. Default "base".
	TheirLabel string // Label after the ">>>>>>>" marker. Default "theirs".

	Style      Style `validate:"omitempty,oneof=diff diff3"` // Default StyleDiff.
	MarkerSize int   `validate:"gte=0"`                      // Width of each marker. Default 7.
}

// DefaultOptions returns Options with every field set to its default.
func DefaultOptions() Options {
	return Options{
		OurLabel:   DefaultOurLabel,
		BaseLabel:  DefaultBaseLabel,
		TheirLabel: DefaultTheirLabel,
		Style:      StyleDiff,
		MarkerSize: DefaultMarkerSize,
	}
}

// Validate reports an unknown Style or a negative MarkerSize. Merge never fails on such options (it falls back to defaults); Validate exists for callers that
// take options from users.
func (o Options) Validate() error {
	if err := validator.New().Struct(o); err != nil {
		return fmt.Errorf("invalid merge options: %w", err)
	}
	return nil
}

// withDefaults fills zero or out-of-range fields with defaults.
func (o Options) withDefaults() Options {
	if o.OurLabel == "" {
		o.OurLabel = DefaultOurLabel
	}
	if o.BaseLabel == "" {
		o.BaseLabel = DefaultBaseLabel
	}
	if o.TheirLabel == "" {
		o.TheirLabel = DefaultTheirLabel
	}
	if o.Style != StyleDiff3 {
		o.Style = StyleDiff
	}
	if o.MarkerSize <= 0 {
		o.MarkerSize = DefaultMarkerSize
	}
	return o
}
