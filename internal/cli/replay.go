package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/inclex/internal/logging"
	"github.com/yaklabco/inclex/internal/ui/pretty"
	"github.com/yaklabco/inclex/pkg/config"
	"github.com/yaklabco/inclex/pkg/fsutil"
	"github.com/yaklabco/inclex/pkg/lexer"
	"github.com/yaklabco/inclex/pkg/lexer/inc"
	"github.com/yaklabco/inclex/pkg/textbuf"
	"github.com/yaklabco/inclex/pkg/textedit"
)

type replayFlags struct {
	script string
	lang   string
	output string
	quiet  bool
}

func newReplayCommand(info BuildInfo) *cobra.Command {
	cfg := &config.Config{}
	flags := &replayFlags{}

	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Replay an edit script through the incremental lexer",
		Long: `Apply the edits of a YAML script to FILE one at a time, updating the token
hierarchy incrementally after each edit, and print the token changes.

With --verify every step is compared with a full lex of the edited text;
any difference is printed as a diff and makes the command fail.

Script format:
  edits:
    - offset: 2
      insert: "*"
    - offset: 0
      remove: 1
      note: drop the first character

Examples:
  inclex replay calc.expr --script edits.yml
  inclex replay page.html --script edits.yml --verify
  inclex replay page.html --script edits.yml --output edited.html`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, args[0], cfg, flags, info)
		},
	}

	cmd.Flags().StringVarP(&flags.script, "script", "s", "", "YAML edit script (required)")
	cmd.Flags().StringVar(&flags.lang, "lang", "", "force a language instead of detecting it")
	cmd.Flags().BoolVar(&cfg.Verify, "verify", false, "compare every step with a full lex")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the edited text to this file")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "print only mismatches and the summary")
	_ = cmd.MarkFlagRequired("script")

	return cmd
}

// replayStats summarizes a replay.
type replayStats struct {
	edits      int
	rebuilds   int
	mismatches int
}

func runReplay(cmd *cobra.Command, path string, cli *config.Config, flags *replayFlags, info BuildInfo) error {
	sess, err := newSession(cmd, cli, info)
	if err != nil {
		return err
	}

	script, err := textedit.LoadScript(flags.script)
	if err != nil {
		return withExit(ExitConfigError, err)
	}
	content, _, err := fsutil.ReadFile(sess.ctx, path)
	if err != nil {
		return err
	}
	expected, err := script.Run(content)
	if err != nil {
		return withExit(ExitConfigError, fmt.Errorf("%s: %w", flags.script, err))
	}
	language, err := sess.language(flags.lang, path, content)
	if err != nil {
		return err
	}

	buf := textbuf.New(content)
	doc := inc.NewDocumentInput(buf, language, inc.Options{
		Logger:               sess.logger,
		MaxFlySequenceLength: sess.cfg.MaxFlySequence,
	})
	defer doc.Close()

	if err := doc.Read(func(h *inc.TokenHierarchy) error {
		_, err := h.TokenList()
		return err
	}); err != nil {
		return withExit(ExitInternalError, fmt.Errorf("lex %s: %w", path, err))
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(string(sess.cfg.Color), out))
	r := &replayer{
		doc:      doc,
		language: language,
		maxFly:   sess.cfg.MaxFlySequence,
		verify:   sess.cfg.Verify,
		quiet:    flags.quiet,
		styles:   styles,
		out:      out,
	}

	for i, step := range script.Edits {
		if err := sess.ctx.Err(); err != nil {
			return fmt.Errorf("replay interrupted: %w", err)
		}
		if err := r.step(i+1, step); err != nil {
			return err
		}
		sess.logger.Debug("replayed edit",
			logging.FieldEdit, i+1,
			logging.FieldOffset, step.Offset,
			logging.FieldRemoved, step.Remove,
			logging.FieldInserted, len(step.Insert),
			logging.FieldOutcome, doc.LastResult().Outcome,
		)
	}

	if flags.output != "" {
		written, err := fsutil.WriteIfChanged(sess.ctx, flags.output, []byte(buf.String()), fsutil.DefaultFileMode)
		if err != nil {
			return withExit(ExitIOError, err)
		}
		if written {
			sess.logger.Info("wrote edited text", logging.FieldPath, flags.output)
		}
	}

	if final := buf.String(); final != string(expected) {
		return withExit(ExitInternalError, errors.New("buffer content differs from the script result"))
	}

	fmt.Fprintln(out, r.summary())
	if r.stats.mismatches > 0 {
		return ErrVerifyMismatch
	}
	return nil
}

type replayer struct {
	doc      *inc.DocumentInput
	language lexer.Language
	maxFly   int
	verify   bool
	quiet    bool
	styles   *pretty.Styles
	out      io.Writer
	stats    replayStats
}

func (r *replayer) step(n int, step textedit.ScriptEdit) error {
	res, err := r.doc.Replace(step.Offset, step.Remove, step.Insert)
	if err != nil {
		return withExit(ExitConfigError, fmt.Errorf("edit %d: %w", n, err))
	}
	r.stats.edits++
	if res.RebuildRequired() {
		r.stats.rebuilds++
	}

	text := r.doc.Buffer().Snapshot()
	if !r.quiet {
		title := fmt.Sprintf("#%d", n)
		if step.Note != "" {
			title += " " + step.Note
		}
		fmt.Fprintln(r.out, r.styles.SummaryTitle.Render(title))
		if res.Event != nil {
			fmt.Fprint(r.out, r.styles.FormatEvent(res.Event, text))
		}
	}

	if r.verify {
		return r.check(n, text)
	}
	return nil
}

// check compares the incremental hierarchy with a full lex of text.
func (r *replayer) check(n int, text lexer.Text) error {
	var incremental []string
	if err := r.doc.Read(func(h *inc.TokenHierarchy) error {
		root, err := h.TokenList()
		if err != nil {
			return err
		}
		incremental = inc.DumpLines(root, text)
		return nil
	}); err != nil {
		return withExit(ExitInternalError, fmt.Errorf("edit %d: relex: %w", n, err))
	}

	full, err := inc.FullDump(text, r.language, r.maxFly)
	if err != nil {
		return withExit(ExitInternalError, fmt.Errorf("edit %d: full lex: %w", n, err))
	}

	diff := textedit.LineDiff("incremental", "full", incremental, full)
	if !diff.HasChanges() {
		return nil
	}
	r.stats.mismatches++
	fmt.Fprintln(r.out, r.styles.Failure.Render(fmt.Sprintf("edit %d: incremental tokens differ from full lex", n)))
	fmt.Fprint(r.out, r.styles.FormatDiff(diff))
	return nil
}

func (r *replayer) summary() string {
	line := fmt.Sprintf("%d edits replayed, %d rebuilds", r.stats.edits, r.stats.rebuilds)
	if r.verify {
		line += fmt.Sprintf(", %d mismatches", r.stats.mismatches)
		if r.stats.mismatches > 0 {
			return r.styles.Failure.Render(line)
		}
	}
	return r.styles.Success.Render(line)
}
