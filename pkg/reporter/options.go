package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/inclex/pkg/analysis"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary displays the one-line totals after results.
	ShowSummary bool

	// ShowLanguages adds the per-language token table to text output.
	ShowLanguages bool

	// Compact uses minified JSON.
	Compact bool

	// SortBy orders files and languages.
	SortBy analysis.SortField

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:        os.Stdout,
		ErrorWriter:   os.Stderr,
		Format:        FormatText,
		Color:         "auto",
		ShowSummary:   true,
		ShowLanguages: true,
		SortBy:        analysis.SortByAlpha,
	}
}
