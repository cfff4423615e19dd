// Package config defines the inclex configuration. The types are plain data;
// layering and validation live in internal/configloader.
package config

// OutputFormat selects the lex report format.
type OutputFormat string

const (
	FormatText   OutputFormat = "text"
	FormatJSON   OutputFormat = "json"
	FormatTokens OutputFormat = "tokens"
)

// IsValid reports whether f is a known format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatTokens:
		return true
	default:
		return false
	}
}

// ColorMode controls styled output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// DefaultMaxFlySequence bounds runs of consecutive flyweight tokens.
const DefaultMaxFlySequence = 8

// Config is the root configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// DefaultLanguage is used for files detection does not map to markup.
	DefaultLanguage string `yaml:"default_language"`

	// Languages maps file extensions to language names, overriding detection.
	Languages map[string]string `yaml:"languages"`

	// Ignore holds glob patterns of files to skip.
	Ignore []string `yaml:"ignore"`

	// MaxFlySequence bounds runs of consecutive flyweight tokens.
	MaxFlySequence int `yaml:"max_fly_sequence"`

	// Verify makes replay compare every incremental result with a full lex.
	Verify bool `yaml:"verify"`

	// Requires is a semver constraint the running binary must satisfy.
	Requires string `yaml:"requires,omitempty"`

	// CLI-only options.

	Jobs   int          `yaml:"-"`
	Format OutputFormat `yaml:"-"`
	Color  ColorMode    `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		LogLevel:        "warn",
		DefaultLanguage: "expr",
		Languages:       make(map[string]string),
		MaxFlySequence:  DefaultMaxFlySequence,
		Format:          FormatText,
		Color:           ColorAuto,
	}
}
