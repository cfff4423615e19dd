package analysis

// SortField orders the per-file and per-language views.
type SortField string

const (
	// SortByCount orders by token count.
	SortByCount SortField = "count"
	// SortByAlpha orders by path or language name.
	SortByAlpha SortField = "alpha"
)

// IsValid reports whether s is a known sort field.
func (s SortField) IsValid() bool {
	return s == SortByCount || s == SortByAlpha
}

// Options configures Analyze.
type Options struct {
	SortBy   SortField
	SortDesc bool

	// WorkingDir makes reported paths relative; empty keeps them as given.
	WorkingDir string
}

// DefaultOptions returns path order for files, largest language first.
func DefaultOptions() Options {
	return Options{SortBy: SortByAlpha}
}
