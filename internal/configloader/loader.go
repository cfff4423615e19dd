// Package configloader resolves the effective configuration from defaults,
// system, user and project files, an explicit --config file, INCLEX_*
// environment variables and CLI flags, then validates it.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/inclex/pkg/config"
	"github.com/yaklabco/inclex/pkg/lang"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Empty means the
	// current directory.
	WorkingDir string

	// ExplicitPath is the --config file; it is merged after the project
	// config.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds flag values; it has the highest precedence.
	CLIConfig *config.Config

	// Languages validates language names. Nil uses lang.Default().
	Languages *lang.Registry

	// Version is checked against the requires constraint when set.
	Version string
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string
	Warnings   []string
}

// Load resolves the configuration. Precedence, lowest first: defaults,
// system, user, project (.inclex.yml upward search), explicit file,
// environment, CLI flags.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		if workDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	stack := []*config.Config{config.NewConfig()}

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{name: "system", path: paths.System, skip: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, skip: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skip: opts.IgnoreProjectConfig},
		{name: "explicit", path: paths.Explicit},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		fileCfg, err := loadConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		stack = append(stack, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}
	cfg := MergeAll(stack...)

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	registry := opts.Languages
	if registry == nil {
		registry = lang.Default()
	}
	validation := Validate(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	if opts.Version != "" {
		if err := config.CheckRequires(cfg.Requires, opts.Version); err != nil {
			return nil, err
		}
	}

	result.Config = cfg
	return result, nil
}

func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path) //nolint:gosec // config paths come from discovery or --config
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
