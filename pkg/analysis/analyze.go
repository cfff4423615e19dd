// Package analysis turns runner results into the sorted views used by the
// reporters.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/inclex/pkg/runner"
)

// ReportVersion is the report format version.
const ReportVersion = "1.0.0"

// Analyze builds a Report from result.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:    ReportVersion,
		Timestamp:  time.Now().UTC(),
		Files:      []FileAnalysis{},
		ByLanguage: []LanguageAnalysis{},
	}
	if result == nil {
		return report
	}

	report.Totals = Totals{
		Files:     result.Stats.FilesDiscovered,
		Processed: result.Stats.FilesProcessed,
		Skipped:   result.Stats.FilesSkipped,
		Errored:   result.Stats.FilesErrored,
		Bytes:     result.Stats.Bytes,
		Tokens:    result.Stats.Tokens,
	}

	for _, f := range result.Files {
		fa := FileAnalysis{
			Path:             relativePath(f.Path, opts.WorkingDir),
			Language:         f.Language,
			Bytes:            f.Bytes,
			Hash:             f.Hash,
			Tokens:           f.Tokens,
			TokensByLanguage: f.TokensByLanguage,
			EmbeddedLists:    f.EmbeddedLists,
			Skipped:          f.Skipped,
		}
		if f.Error != nil {
			fa.Error = f.Error.Error()
		}
		report.Files = append(report.Files, fa)
	}

	report.ByLanguage = byLanguage(result.Files)

	sortFiles(report.Files, opts)
	sortLanguages(report.ByLanguage, opts)
	return report
}

// byLanguage counts, per language, the files it contributed tokens to.
func byLanguage(files []runner.FileOutcome) []LanguageAnalysis {
	index := make(map[string]*LanguageAnalysis)
	for _, f := range files {
		for name, n := range f.TokensByLanguage {
			la, ok := index[name]
			if !ok {
				la = &LanguageAnalysis{Language: name}
				index[name] = la
			}
			la.Files++
			la.Tokens += n
		}
	}
	out := make([]LanguageAnalysis, 0, len(index))
	for _, la := range index {
		out = append(out, *la)
	}
	return out
}

func sortFiles(files []FileAnalysis, opts Options) {
	slices.SortStableFunc(files, func(a, b FileAnalysis) int {
		c := cmp.Compare(a.Path, b.Path)
		if opts.SortBy == SortByCount {
			c = cmp.Or(cmp.Compare(a.Tokens, b.Tokens), c)
		}
		if opts.SortDesc {
			return -c
		}
		return c
	})
}

// sortLanguages puts the largest language first unless alphabetical order
// was asked for.
func sortLanguages(langs []LanguageAnalysis, opts Options) {
	slices.SortFunc(langs, func(a, b LanguageAnalysis) int {
		if opts.SortBy == SortByAlpha {
			return cmp.Compare(a.Language, b.Language)
		}
		return cmp.Or(cmp.Compare(b.Tokens, a.Tokens), cmp.Compare(a.Language, b.Language))
	})
}

func relativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	rel, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return rel
}
