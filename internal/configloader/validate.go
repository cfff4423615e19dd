package configloader

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/yaklabco/inclex/pkg/config"
	"github.com/yaklabco/inclex/pkg/lang"
)

// ValidationError is one configuration problem.
type ValidationError struct {
	// Field is the path of the offending field, such as "languages.tpl".
	Field    string
	Value    any
	Message  string
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult collects errors and warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks cfg. Language names are resolved through registry, so an
// unknown name carries its suggestions in the message.
func Validate(cfg *config.Config, registry *lang.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.LogLevel != "" && !knownLogLevels[cfg.LogLevel] {
		result.fail("log_level", cfg.LogLevel, "invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel)
	}
	if cfg.MaxFlySequence < 1 {
		result.fail("max_fly_sequence", cfg.MaxFlySequence, "max_fly_sequence must be >= 1")
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, tokens", cfg.Format)
	}
	switch cfg.Color {
	case "", config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		result.fail("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}
	if cfg.Requires != "" {
		if _, err := semver.NewConstraint(cfg.Requires); err != nil {
			result.fail("requires", cfg.Requires, "invalid version constraint: %v", err)
		}
	}

	validateLanguages(cfg, registry, result)

	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
	return result
}

func validateLanguages(cfg *config.Config, registry *lang.Registry, result *ValidationResult) {
	if registry == nil {
		return
	}
	if cfg.DefaultLanguage != "" {
		if _, err := registry.Lookup(cfg.DefaultLanguage); err != nil {
			result.fail("default_language", cfg.DefaultLanguage, "%v", err)
		}
	}

	exts := make([]string, 0, len(cfg.Languages))
	for ext := range cfg.Languages {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		name := cfg.Languages[ext]
		if _, err := registry.Lookup(name); err != nil {
			result.fail("languages."+ext, name, "%v", err)
		}
		if strings.ContainsAny(ext, "/\\*") {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "languages." + ext,
				Value:   ext,
				Message: "extension keys match file suffixes only; path characters are never matched",
			})
		}
	}
}
