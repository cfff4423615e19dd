// Package pretty renders CLI output with lipgloss styles.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds the renderers for CLI output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style

	FilePath lipgloss.Style
	Language lipgloss.Style
	Token    lipgloss.Style
	Offset   lipgloss.Style
	Text     lipgloss.Style

	// Change trees.
	Added   lipgloss.Style
	Removed lipgloss.Style
	Bounds  lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader lipgloss.Style
	TableBorder lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func newColorStyles() *Styles {
	return &Styles{
		Error:   fg("9").Bold(true),
		Warning: fg("11").Bold(true),

		FilePath: lipgloss.NewStyle().Bold(true),
		Language: fg("13"),
		Token:    fg("12"),
		Offset:   fg("8"),
		Text:     fg("7"),

		Added:   fg("10"),
		Removed: fg("9"),
		Bounds:  fg("14").Italic(true),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    fg("14"),
		DiffAdd:     fg("10"),
		DiffRemove:  fg("9"),
		DiffContext: fg("8"),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		Success:      fg("10").Bold(true),
		Failure:      fg("9").Bold(true),

		TableHeader: fg("7").Bold(true),
		TableBorder: fg("8"),

		Dim:  fg("8"),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error: plain, Warning: plain,
		FilePath: plain, Language: plain, Token: plain, Offset: plain, Text: plain,
		Added: plain, Removed: plain, Bounds: plain,
		DiffHeader: plain, DiffHunk: plain, DiffAdd: plain, DiffRemove: plain, DiffContext: plain,
		SummaryTitle: plain, Success: plain, Failure: plain,
		TableHeader: plain, TableBorder: plain,
		Dim: plain, Bold: plain,
	}
}

// IsColorEnabled resolves a color mode ("auto", "always", "never") for a
// writer. Auto enables color for terminals unless NO_COLOR is set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
