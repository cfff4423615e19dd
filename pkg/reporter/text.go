package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/inclex/internal/ui/pretty"
	"github.com/yaklabco/inclex/pkg/analysis"
)

// TextRenderer writes one styled line per file, then the language table and
// the totals.
type TextRenderer struct {
	opts   Options
	styles *pretty.Styles
}

// NewTextRenderer creates a text renderer.
func NewTextRenderer(opts Options) *TextRenderer {
	return &TextRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// Render implements Renderer.
func (r *TextRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	for _, file := range report.Files {
		fmt.Fprintln(bw, r.fileLine(file))
	}

	if r.opts.ShowLanguages && report.Totals.Processed > 0 {
		fmt.Fprintln(bw)
		fmt.Fprint(bw, r.styles.FormatLanguageTable(report.ByLanguage))
	}
	if r.opts.ShowSummary {
		if len(report.Files) > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprint(bw, r.styles.FormatSummaryOneLine(report.Totals))
	}
	return nil
}

func (r *TextRenderer) fileLine(file analysis.FileAnalysis) string {
	path := r.styles.FilePath.Render(file.Path)
	switch {
	case file.Error != "":
		return fmt.Sprintf("%s: %s", path, r.styles.Error.Render("error: "+file.Error))
	case file.Skipped:
		return fmt.Sprintf("%s: %s", path, r.styles.Dim.Render("skipped"))
	}

	parts := []string{
		r.styles.Language.Render(file.Language),
		fmt.Sprintf("%d tokens", file.Tokens),
	}
	if file.EmbeddedLists > 0 {
		parts = append(parts, fmt.Sprintf("%d embedded", file.EmbeddedLists))
	}
	return fmt.Sprintf("%s: %s", path, strings.Join(parts, ", "))
}
