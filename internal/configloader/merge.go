package configloader

import (
	"maps"

	"github.com/yaklabco/inclex/pkg/config"
)

// merge overlays override on base. Non-zero scalars replace, the languages
// map merges per key, a non-nil ignore list replaces. Verify can only be
// switched on by a later layer.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.DefaultLanguage != "" {
		result.DefaultLanguage = override.DefaultLanguage
	}
	if override.MaxFlySequence != 0 {
		result.MaxFlySequence = override.MaxFlySequence
	}
	if override.Requires != "" {
		result.Requires = override.Requires
	}
	if override.Verify {
		result.Verify = true
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}

	if len(override.Languages) > 0 {
		if result.Languages == nil {
			result.Languages = make(map[string]string, len(override.Languages))
		}
		maps.Copy(result.Languages, override.Languages)
	}
	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}
	return result
}

// MergeAll merges configs in order; later ones win.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, c := range configs {
		result = merge(result, c)
	}
	return result
}
