package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/inclex/internal/logging"
	"github.com/yaklabco/inclex/pkg/analysis"
	"github.com/yaklabco/inclex/pkg/config"
	"github.com/yaklabco/inclex/pkg/reporter"
	"github.com/yaklabco/inclex/pkg/runner"
)

type lexFlags struct {
	format   string
	lang     string
	ignore   []string
	include  []string
	ext      []string
	embedded bool
	follow   bool
	compact  bool
	sortBy   string
}

func newLexCommand(info BuildInfo) *cobra.Command {
	cfg := &config.Config{}
	flags := &lexFlags{}

	cmd := &cobra.Command{
		Use:   "lex [paths...]",
		Short: "Lex files and report token counts",
		Long:  lexLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLex(cmd, args, cfg, flags, info)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, tokens")
	cmd.Flags().StringVar(&flags.lang, "lang", "", "force a language instead of detecting it")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only lex files matching these globs")
	cmd.Flags().StringSliceVar(&flags.ext, "ext", nil, "extra file extensions to lex in directories")
	cmd.Flags().BoolVar(&flags.embedded, "embedded", false, "descend into embedded token lists")
	cmd.Flags().BoolVar(&flags.follow, "follow-symlinks", false, "follow symbolic links")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().StringVar(&flags.sortBy, "sort", "alpha", "order files and languages: alpha, count")

	return cmd
}

const lexLongDescription = `Lex files into token hierarchies and report what was produced.

By default, lexes markup and expression files in the current directory and
its subdirectories. Binary and vendored files are skipped. The language of
each file is detected from its name and content unless --lang is given.

Examples:
  inclex lex                        # Lex current directory
  inclex lex site/ --embedded       # Count embedded expression tokens too
  inclex lex page.html --format tokens --embedded
  inclex lex --format json          # Output as JSON for CI
  inclex lex calc.txt --lang expr   # Force a language`

func runLex(cmd *cobra.Command, args []string, cli *config.Config, flags *lexFlags, info BuildInfo) error {
	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return withExit(ExitInvalidUsage, fmt.Errorf("invalid format: %w", err))
	}
	sortBy := analysis.SortField(flags.sortBy)
	if !sortBy.IsValid() {
		return withExit(ExitInvalidUsage, fmt.Errorf("invalid sort %q: must be alpha or count", flags.sortBy))
	}
	cli.Format = config.OutputFormat(format)
	if cmd.Flags().Changed("ignore") {
		cli.Ignore = flags.ignore
	}

	sess, err := newSession(cmd, cli, info)
	if err != nil {
		return err
	}
	if flags.lang != "" {
		if _, err := sess.registry.Lookup(flags.lang); err != nil {
			return withExit(ExitInvalidUsage, err)
		}
	}

	opts := runner.Options{
		Paths:          args,
		WorkingDir:     sess.workDir,
		IncludeGlobs:   flags.include,
		ExcludeGlobs:   sess.cfg.Ignore,
		FollowSymlinks: flags.follow,
		Jobs:           sess.cfg.Jobs,
		Language:       flags.lang,
		Dump:           format == reporter.FormatTokens,
		Embedded:       flags.embedded,
		Config:         sess.cfg,
	}
	if len(flags.ext) > 0 {
		opts.Extensions = runner.DefaultExtensions()
		for _, ext := range flags.ext {
			opts.Extensions = append(opts.Extensions, "."+strings.TrimPrefix(strings.ToLower(ext), "."))
		}
	}

	sess.logger.Debug("starting lex run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.New(sess.registry, sess.logger).Run(sess.ctx, opts)
	if err != nil {
		return withExit(ExitIOError, fmt.Errorf("lex run failed: %w", err))
	}

	sess.logger.Debug("lex run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:        cmd.OutOrStdout(),
		ErrorWriter:   cmd.ErrOrStderr(),
		Format:        format,
		Color:         string(sess.cfg.Color),
		ShowSummary:   true,
		ShowLanguages: true,
		Compact:       flags.compact,
		SortBy:        sortBy,
		WorkingDir:    sess.workDir,
	})
	if err != nil {
		return withExit(ExitInternalError, fmt.Errorf("create reporter: %w", err))
	}

	failed, err := rep.Report(sess.ctx, result)
	if err != nil {
		return withExit(ExitIOError, fmt.Errorf("report results: %w", err))
	}
	if failed > 0 {
		return ErrLexFailures
	}
	return nil
}
