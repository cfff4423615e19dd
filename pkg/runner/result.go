package runner

// FileOutcome is the result of lexing one file.
type FileOutcome struct {
	Path     string
	Language string
	Bytes    int

	// Hash is the hex SHA-256 prefix of the content.
	Hash string

	// Tokens counts root tokens, plus embedded ones when Options.Embedded.
	Tokens int

	// TokensByLanguage splits Tokens by the language of the owning list.
	TokensByLanguage map[string]int

	// EmbeddedLists counts the embedded token lists that were visited.
	EmbeddedLists int

	// Lines is the token dump when Options.Dump is set.
	Lines []string

	// Skipped marks binary or vendored files.
	Skipped bool

	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int
	FilesErrored    int

	Bytes            int
	Tokens           int
	TokensByLanguage map[string]int
	FilesByLanguage  map[string]int
}

// Result is the outcome of a run, with files in path order.
type Result struct {
	Files  []FileOutcome
	Stats  Stats
	Errors []error
}

// HasFailures reports whether any file could not be lexed.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{
		TokensByLanguage: make(map[string]int),
		FilesByLanguage:  make(map[string]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
	case outcome.Skipped:
		r.Stats.FilesSkipped++
	default:
		r.Stats.FilesProcessed++
		r.Stats.Bytes += outcome.Bytes
		r.Stats.Tokens += outcome.Tokens
		r.Stats.FilesByLanguage[outcome.Language]++
		for name, n := range outcome.TokensByLanguage {
			r.Stats.TokensByLanguage[name] += n
		}
	}
}
