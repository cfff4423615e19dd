package inc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidModification reports a negative offset or length, or an edit
	// reaching past the current text.
	ErrInvalidModification = errors.New("invalid modification")

	// ErrRemovedTextRequired reports an attempt to reconstruct the original
	// text of an edit whose removed text was not supplied.
	ErrRemovedTextRequired = errors.New("removed text required to build original text")

	// ErrRemovedTokenList reports text access or mutation of a removed token list.
	ErrRemovedTokenList = errors.New("removed token list is read-only and holds no text")

	// ErrImmutableTokenList reports mutation of a frozen token list view.
	ErrImmutableTokenList = errors.New("token list is immutable")

	// ErrRelexInconsistent reports an internal invariant broken while
	// splicing old and new tokens.
	ErrRelexInconsistent = errors.New("relex inconsistency")
)

// RelexError wraps a failure during an incremental update. The hierarchy
// that produced it has been dropped and rebuilds from scratch on next access.
type RelexError struct {
	Language  string
	ModOffset int
	Cause     error
}

// Error implements error.
func (e *RelexError) Error() string {
	return fmt.Sprintf("incremental relex of %s at offset %d failed, full rebuild required: %v",
		e.Language, e.ModOffset, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *RelexError) Unwrap() error {
	return e.Cause
}

func inconsistent(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrRelexInconsistent}, args...)...)
}

// recovered turns a recovered panic value into an error.
func recovered(v any) error {
	if err, ok := v.(error); ok {
		return fmt.Errorf("%w: panic: %w", ErrRelexInconsistent, err)
	}
	return fmt.Errorf("%w: panic: %v", ErrRelexInconsistent, v)
}
