package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/inclex/internal/ui/pretty"
	"github.com/yaklabco/inclex/pkg/runner"
)

// TokensReporter writes the token dump of every file. It reads the dump
// lines straight from the run result, which the analysis report drops.
type TokensReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewTokensReporter creates a token dump reporter.
func NewTokensReporter(opts Options) *TokensReporter {
	return &TokensReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// Report implements Reporter.
func (r *TokensReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	failed := 0
	for i, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return failed, fmt.Errorf("report tokens: %w", err)
		}
		if i > 0 {
			fmt.Fprintln(bw)
		}

		header := "== " + r.styles.FilePath.Render(r.displayPath(file.Path))
		switch {
		case file.Error != nil:
			failed++
			fmt.Fprintf(bw, "%s %s\n", header, r.styles.Error.Render("error: "+file.Error.Error()))
			continue
		case file.Skipped:
			fmt.Fprintf(bw, "%s %s\n", header, r.styles.Dim.Render("(skipped)"))
			continue
		}

		fmt.Fprintf(bw, "%s %s\n", header, r.styles.Language.Render("("+file.Language+")"))
		for _, line := range file.Lines {
			fmt.Fprintln(bw, line)
		}
	}
	return failed, nil
}

func (r *TokensReporter) displayPath(path string) string {
	if r.opts.WorkingDir == "" {
		return path
	}
	rel, err := filepath.Rel(r.opts.WorkingDir, path)
	if err != nil {
		return path
	}
	return rel
}
