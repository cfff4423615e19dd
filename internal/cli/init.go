package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/inclex/internal/logging"
	"github.com/yaklabco/inclex/pkg/config"
	"github.com/yaklabco/inclex/pkg/fsutil"
	"github.com/yaklabco/inclex/pkg/lang"
)

// defaultConfigName is the file written by init.
const defaultConfigName = ".inclex.yml"

// errOverwriteDeclined is returned when the user answers no to the prompt.
var errOverwriteDeclined = errors.New("overwrite declined")

// initFlags holds the flags for the init command.
type initFlags struct {
	force    bool
	output   string
	requires string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new inclex configuration file",
		Long: `Create a new .inclex.yml configuration file in the current directory
with the defaults written out and documented.

When the file exists, init asks before overwriting it on an interactive
terminal and refuses otherwise; --force overwrites without asking.

Examples:
  inclex init                         Create .inclex.yml
  inclex init --requires ">= 1.2"     Pin the inclex version range
  inclex init --output custom.yml     Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigName, "Output file path")
	cmd.Flags().StringVar(&flags.requires, "requires", "", "semver constraint the inclex version must satisfy")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.requires != "" {
		if err := config.CheckRequires(flags.requires, ""); err != nil {
			return withExit(ExitInvalidUsage, err)
		}
	}

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		if !isInteractive(cmd.InOrStdin()) {
			return withExit(ExitInvalidUsage,
				fmt.Errorf("file %q already exists; use --force to overwrite", flags.output))
		}
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("%s exists. Overwrite?", flags.output))
		if err != nil {
			return fmt.Errorf("read answer: %w", err)
		}
		if !ok {
			return errOverwriteDeclined
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	content := config.GenerateTemplate(config.TemplateOptions{
		Languages: lang.Default().Names(),
		Requires:  flags.requires,
	})
	if err := fsutil.WriteAtomic(cmd.Context(), absPath, content, fsutil.DefaultFileMode); err != nil {
		return withExit(ExitIOError, fmt.Errorf("write file: %w", err))
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("customize your configuration by editing the file")
	return nil
}

// isInteractive reports whether in is a terminal a prompt can be shown on.
func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

// confirm asks a yes/no question; anything but y or yes is no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
