package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gobwas/glob"

	"github.com/blockmerge/blockmerge/internal/mergefile"
)

func newValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("mergestyle", func(fl validator.FieldLevel) bool {
		switch mergefile.Style(strings.ToLower(fl.Field().String())) {
		case mergefile.StyleDiff, mergefile.StyleDiff3:
			return true
		default:
			return false
		}
	})

	_ = v.RegisterValidation("globs", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.Slice {
			return false
		}
		patterns, ok := fl.Field().Interface().([]string)
		if !ok {
			return false
		}
		for _, p := range patterns {
			if strings.TrimSpace(p) == "" {
				return false
			}
			if _, err := glob.Compile(p, '/'); err != nil {
				return false
			}
		}
		return true
	})

	// Report the config key (marker_size) rather than the Go field name (MarkerSize).
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// ValidationError lists the configuration keys that failed validation.
type ValidationError struct {
	// Keys are the failing config keys, such as "marker_size" or "labels.ours".
	Keys []string

	// Flags names the command-line flags, among those passed to Load, that set a failing key. Empty when every bad value came from a file,
	// the environment or a default.
	Flags []string

	msgs []string
}

func (e *ValidationError) Error() string {
	return "configuration validation failed:\n  " + strings.Join(e.msgs, "\n  ")
}

func validate(cfg *Config) error {
	err := newValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	verr := &ValidationError{}
	for _, e := range errs {
		key := strings.TrimPrefix(e.Namespace(), "Config.")
		verr.Keys = append(verr.Keys, key)
		msg := fmt.Sprintf("invalid %s: rule '%s'", key, e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		msg += fmt.Sprintf(", actual: '%v'", e.Value())
		verr.msgs = append(verr.msgs, msg)
	}
	return verr
}
