package analysis

import "time"

// Report holds the views renderers draw from, computed once per run.
type Report struct {
	Version    string             `json:"version"`
	Timestamp  time.Time          `json:"timestamp"`
	Files      []FileAnalysis     `json:"files"`
	ByLanguage []LanguageAnalysis `json:"byLanguage"`
	Totals     Totals             `json:"summary"`
}

// FileAnalysis describes one lexed file.
type FileAnalysis struct {
	Path             string         `json:"path"`
	Language         string         `json:"language,omitempty"`
	Bytes            int            `json:"bytes"`
	Hash             string         `json:"hash,omitempty"`
	Tokens           int            `json:"tokens"`
	TokensByLanguage map[string]int `json:"tokensByLanguage,omitempty"`
	EmbeddedLists    int            `json:"embeddedLists,omitempty"`
	Skipped          bool           `json:"skipped,omitempty"`
	Error            string         `json:"error,omitempty"`
}

// LanguageAnalysis aggregates tokens produced by one language, whether it
// lexed whole files or embedded sections.
type LanguageAnalysis struct {
	Language string `json:"language"`
	Files    int    `json:"files"`
	Tokens   int    `json:"tokens"`
}

// Totals aggregates the run.
type Totals struct {
	Files     int `json:"filesDiscovered"`
	Processed int `json:"filesProcessed"`
	Skipped   int `json:"filesSkipped"`
	Errored   int `json:"filesErrored"`
	Bytes     int `json:"bytes"`
	Tokens    int `json:"tokens"`
}

// HasErrors reports whether any file failed.
func (t Totals) HasErrors() bool { return t.Errored > 0 }
