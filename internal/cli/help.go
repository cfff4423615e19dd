package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/inclex/internal/configloader"
	"github.com/yaklabco/inclex/internal/ui/pretty"
)

// exitCodeHelp lists the exit codes in the root command help.
//
//nolint:gochecknoglobals // Read-only lookup table.
var exitCodeHelp = []struct {
	code int
	desc string
}{
	{ExitSuccess, "success"},
	{ExitFailures, "a file failed to lex or a replay step differed from a full lex"},
	{ExitInvalidUsage, "invalid flags or arguments"},
	{ExitConfigError, "invalid configuration or edit script"},
	{ExitInternalError, "internal error"},
	{ExitIOError, "a file could not be read or written"},
}

// installHelp replaces cobra's help and usage output on root and every
// subcommand with styled renderings. Colors follow the --color flag of the
// invocation.
func installHelp(root *cobra.Command) {
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprint(out, newHelpRenderer(cmd, out).help(cmd))
	})
	root.SetUsageFunc(func(cmd *cobra.Command) error {
		out := cmd.OutOrStderr()
		_, err := fmt.Fprint(out, newHelpRenderer(cmd, out).usage(cmd))
		return err
	})
}

type helpRenderer struct {
	styles *pretty.Styles
}

func newHelpRenderer(cmd *cobra.Command, w io.Writer) *helpRenderer {
	mode := "auto"
	if f := cmd.Flag("color"); f != nil {
		mode = f.Value.String()
	}
	return &helpRenderer{styles: pretty.NewStyles(pretty.IsColorEnabled(mode, w))}
}

func (r *helpRenderer) help(cmd *cobra.Command) string {
	var b strings.Builder
	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	if desc != "" {
		b.WriteString(trimTrailingSpace(desc))
		b.WriteString("\n\n")
	}
	b.WriteString(r.usage(cmd))
	return b.String()
}

func (r *helpRenderer) usage(cmd *cobra.Command) string {
	var b strings.Builder

	r.heading(&b, "Usage:")
	if cmd.Runnable() {
		fmt.Fprintf(&b, "  %s\n", r.styles.Bold.Render(cmd.UseLine()))
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&b, "  %s [command]\n", r.styles.Bold.Render(cmd.CommandPath()))
	}

	if len(cmd.Aliases) > 0 {
		r.heading(&b, "\nAliases:")
		fmt.Fprintf(&b, "  %s\n", r.styles.Dim.Render(strings.Join(cmd.Aliases, ", ")))
	}

	if cmd.HasExample() {
		r.heading(&b, "\nExamples:")
		fmt.Fprintln(&b, r.styles.Dim.Render(cmd.Example))
	}

	if cmd.HasAvailableSubCommands() {
		r.heading(&b, "\nCommands:")
		for _, sub := range cmd.Commands() {
			if !sub.IsAvailableCommand() && sub.Name() != "help" {
				continue
			}
			name := sub.Name() + strings.Repeat(" ", max(0, sub.NamePadding()-len(sub.Name())))
			fmt.Fprintf(&b, "  %s %s\n", r.styles.Language.Render(name), sub.Short)
		}
	}

	if cmd.HasAvailableLocalFlags() {
		r.heading(&b, "\nFlags:")
		r.flags(&b, cmd.LocalFlags().FlagUsages())
	}
	if cmd.HasAvailableInheritedFlags() {
		r.heading(&b, "\nGlobal Flags:")
		r.flags(&b, cmd.InheritedFlags().FlagUsages())
	}

	if !cmd.HasParent() {
		r.heading(&b, "\nEnvironment:")
		for _, v := range configloader.ListEnvVars() {
			fmt.Fprintf(&b, "  %s  %s\n", r.styles.Token.Render(v[0]), r.styles.Dim.Render(v[1]))
		}

		r.heading(&b, "\nExit codes:")
		for _, e := range exitCodeHelp {
			fmt.Fprintf(&b, "  %s %s\n", r.styles.Token.Render(fmt.Sprintf("%-3d", e.code)), e.desc)
		}
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&b, "\nUse \"%s [command] --help\" for more information about a command.\n",
			cmd.CommandPath())
	}
	return b.String()
}

func (r *helpRenderer) heading(b *strings.Builder, title string) {
	lead := strings.TrimLeft(title, "\n")
	b.WriteString(title[:len(title)-len(lead)])
	b.WriteString(r.styles.SummaryTitle.Render(lead))
	b.WriteByte('\n')
}

// flags styles pflag usage lines of the form
// "  -s, --script string   description". The padding pflag puts before the
// description is kept so descriptions stay in one column.
func (r *helpRenderer) flags(b *strings.Builder, usages string) {
	for line := range strings.Lines(usages) {
		line = strings.TrimRight(line, "\n")
		trimmed := strings.TrimLeft(line, " ")
		gap := strings.Index(trimmed, "  ")
		if gap < 0 {
			b.WriteString(line)
			b.WriteByte('\n')
			continue
		}

		names := make([]string, 0, 3)
		for _, field := range strings.Fields(trimmed[:gap]) {
			if strings.HasPrefix(field, "-") {
				names = append(names, r.styles.Token.Render(field))
			} else {
				names = append(names, r.styles.Dim.Render(field))
			}
		}
		indent := line[:len(line)-len(trimmed)]
		desc := strings.TrimLeft(trimmed[gap:], " ")
		padding := trimmed[gap : len(trimmed)-len(desc)]
		fmt.Fprintf(b, "%s%s%s%s\n", indent, strings.Join(names, " "), padding, desc)
	}
}

func trimTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
