package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/inclex/pkg/config"
)

const envVarPrefix = "INCLEX_"

// envVar describes one INCLEX_* variable.
type envVar struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"LOG_LEVEL": {
		description: "Log level: debug, info, warn or error",
		apply:       func(cfg *config.Config, v string) error { cfg.LogLevel = v; return nil },
	},
	"DEFAULT_LANGUAGE": {
		description: "Language for files not detected as markup",
		apply:       func(cfg *config.Config, v string) error { cfg.DefaultLanguage = v; return nil },
	},
	"IGNORE": {
		description: "Comma-separated ignore patterns",
		apply:       func(cfg *config.Config, v string) error { cfg.Ignore = parseSliceValue(v); return nil },
	},
	"MAX_FLY_SEQUENCE": {
		description: "Longest run of shared flyweight tokens",
		apply: func(cfg *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid integer: %q", v)
			}
			cfg.MaxFlySequence = n
			return nil
		},
	},
	"VERIFY": {
		description: "Verify replayed edits against a full lex: true or false",
		apply: func(cfg *config.Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid boolean: %q (expected true/false/1/0)", v)
			}
			cfg.Verify = b
			return nil
		},
	},
	"JOBS": {
		description: "Number of parallel workers (0 = auto)",
		apply: func(cfg *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid integer: %q", v)
			}
			cfg.Jobs = n
			return nil
		},
	},
	"FORMAT": {
		description: "Output format: text, json or tokens",
		apply:       func(cfg *config.Config, v string) error { cfg.Format = config.OutputFormat(v); return nil },
	},
}

// LoadFromEnv applies INCLEX_* variables to cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for suffix, ev := range envVars {
		value := os.Getenv(envVarPrefix + suffix)
		if value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return fmt.Errorf("%s%s: %w", envVarPrefix, suffix, err)
		}
	}
	return nil
}

// ListEnvVars returns the supported variables and their descriptions,
// sorted by name.
func ListEnvVars() [][2]string {
	names := make([]string, 0, len(envVars))
	for suffix := range envVars {
		names = append(names, suffix)
	}
	sort.Strings(names)

	out := make([][2]string, 0, len(names))
	for _, suffix := range names {
		out = append(out, [2]string{envVarPrefix + suffix, envVars[suffix].description})
	}
	return out
}

func parseSliceValue(value string) []string {
	var result []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
