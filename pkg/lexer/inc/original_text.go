// Package inc keeps token hierarchies in sync with text edits by relexing
// only the region an edit affects.
//
// A single edit is described by a TokenHierarchyEventInfo. Each token list
// touched by the edit records a TokenListChange while it is relexed and
// freezes it into a TokenChangeInfo that listeners may retain. Tokens taken
// out of a list are kept in a RemovedTokenList so readers of a pre-edit view
// keep working.
//
// Mutable structures in this package are single-threaded. Callers serialize
// updates through the read/write discipline of the text buffer they lex.
package inc

import "github.com/yaklabco/inclex/pkg/lexer"

// OriginalText is a read-only view of the text as it was before an edit,
// reconstructed from the current text and the edit delta.
type OriginalText struct {
	current        lexer.Text
	offset         int
	removed        string
	insertedLength int
}

var _ lexer.Text = (*OriginalText)(nil)

// NewOriginalText creates the pre-edit view of current, where the edit at
// offset replaced removed with insertedLength bytes.
func NewOriginalText(current lexer.Text, offset int, removed string, insertedLength int) *OriginalText {
	return &OriginalText{
		current:        current,
		offset:         offset,
		removed:        removed,
		insertedLength: insertedLength,
	}
}

// Len returns the pre-edit length.
func (t *OriginalText) Len() int {
	return t.current.Len() - t.insertedLength + len(t.removed)
}

// At returns the pre-edit byte at index i.
func (t *OriginalText) At(i int) byte {
	if i < t.offset {
		return t.current.At(i)
	}
	i -= t.offset
	if i < len(t.removed) {
		return t.removed[i]
	}
	return t.current.At(t.offset + (i - len(t.removed)) + t.insertedLength)
}

// Bytes returns the pre-edit bytes in [start, end).
func (t *OriginalText) Bytes(start, end int) []byte {
	out := make([]byte, 0, end-start)

	// Untouched prefix.
	i := start
	for ; i < t.offset && i < end; i++ {
		out = append(out, t.current.At(i))
	}

	// Removed run.
	removedEnd := t.offset + len(t.removed)
	for ; i < removedEnd && i < end; i++ {
		out = append(out, t.removed[i-t.offset])
	}

	// Suffix, shifted past the inserted run of the current text.
	shift := t.insertedLength - len(t.removed)
	for ; i < end; i++ {
		out = append(out, t.current.At(i+shift))
	}
	return out
}

// String returns the whole pre-edit text.
func (t *OriginalText) String() string {
	return string(t.Bytes(0, t.Len()))
}
