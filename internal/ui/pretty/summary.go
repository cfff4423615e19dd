package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/inclex/pkg/analysis"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run totals as one line, for example
// "3 files lexed, 42 tokens, 1 skipped, 1 failed".
func (s *Styles) FormatSummaryOneLine(totals analysis.Totals) string {
	if totals.Files == 0 {
		return s.Dim.Render("No files to lex.") + "\n"
	}

	parts := []string{fmt.Sprintf("%d %s lexed, %d %s",
		totals.Processed, plural(totals.Processed, "file", "files"),
		totals.Tokens, plural(totals.Tokens, "token", "tokens"))}
	if totals.Skipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", totals.Skipped)))
	}
	if totals.Errored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", totals.Errored)))
	}

	line := strings.Join(parts, ", ")
	if totals.Errored == 0 {
		line = s.Success.Render(line)
	}
	return line + "\n"
}
