// Package cli provides the Cobra command structure for inclex.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/inclex/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root inclex command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "inclex",
		Short: "An incremental lexer for nested languages",
		Long: `inclex lexes documents into token hierarchies and keeps them up to date
as the text is edited, relexing only the tokens an edit can affect.

Markup documents embed expression sections in attributes and script
elements; the embedded sections are lexed as one joined stream. Use
"replay" to feed an edit script through the incremental lexer and check
every step against a full lex, or "watch" to follow a file as it changes.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withExit(ExitInvalidUsage, err)
	})

	rootCmd.AddCommand(newLexCommand(info))
	rootCmd.AddCommand(newReplayCommand(info))
	rootCmd.AddCommand(newWatchCommand(info))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	installHelp(rootCmd)

	return rootCmd
}

// exactArgs is cobra.ExactArgs reporting a usage exit code.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return withExit(ExitInvalidUsage, cobra.ExactArgs(n)(cmd, args))
	}
}
