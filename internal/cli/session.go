package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/inclex/internal/configloader"
	"github.com/yaklabco/inclex/internal/logging"
	"github.com/yaklabco/inclex/pkg/config"
	"github.com/yaklabco/inclex/pkg/lang"
	"github.com/yaklabco/inclex/pkg/langdetect"
	"github.com/yaklabco/inclex/pkg/lexer"
)

// session is the resolved environment of one command invocation.
type session struct {
	ctx      context.Context //nolint:containedctx // scoped to one command run
	cfg      *config.Config
	registry *lang.Registry
	logger   *log.Logger
	workDir  string
}

// newSession loads the configuration with cli as the flag layer and sets up
// logging from it. --debug wins over the configured log level.
func newSession(cmd *cobra.Command, cli *config.Config, info BuildInfo) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	if cmd.Flags().Changed("color") {
		color, _ := cmd.Flags().GetString("color")
		cli.Color = config.ColorMode(color)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	registry := lang.Default()
	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
		Languages:    registry,
		Version:      releaseVersion(info.Version),
	})
	if err != nil {
		return nil, withExit(ExitConfigError, errors.Join(errors.New("failed to load configuration"), err))
	}
	cfg := loadResult.Config

	level := cfg.LogLevel
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = "debug"
	}
	logger := logging.New(level)
	logging.SetDefault(logger)

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	return &session{
		ctx:      logging.WithLogger(ctx, logger),
		cfg:      cfg,
		registry: registry,
		logger:   logger,
		workDir:  workDir,
	}, nil
}

// language resolves the language for one file: the forced name when given,
// otherwise detection with the configured overrides.
func (s *session) language(forced, path string, content []byte) (lexer.Language, error) {
	name := forced
	if name == "" {
		name = langdetect.New(s.cfg.Languages, s.cfg.DefaultLanguage).Detect(path, content)
	}
	language, err := s.registry.Lookup(name)
	if err != nil {
		return nil, withExit(ExitInvalidUsage, err)
	}
	return language, nil
}

// releaseVersion drops development builds from requires checks.
func releaseVersion(version string) string {
	if version == "" || version == "dev" {
		return ""
	}
	return version
}
