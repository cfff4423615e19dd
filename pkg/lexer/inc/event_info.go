package inc

import (
	"fmt"

	"github.com/yaklabco/inclex/pkg/lexer"
)

// TokenHierarchyEventInfo describes one text modification for the whole
// hierarchy. Every per-list change of the same edit refers to it.
type TokenHierarchyEventInfo struct {
	input          lexer.Text
	modOffset      int
	removedLength  int
	removedText    *string
	insertedLength int

	affectedStart int
	affectedEnd   int

	originalText *OriginalText
}

// NewTokenHierarchyEventInfo describes an edit at modOffset that removed
// removedLength bytes and inserted insertedLength bytes; input is the text
// after the edit. removedText may be nil, which disables OriginalText when
// something was removed.
func NewTokenHierarchyEventInfo(
	input lexer.Text,
	modOffset, removedLength int,
	removedText *string,
	insertedLength int,
) (*TokenHierarchyEventInfo, error) {
	switch {
	case modOffset < 0:
		return nil, fmt.Errorf("%w: modification offset %d < 0", ErrInvalidModification, modOffset)
	case removedLength < 0:
		return nil, fmt.Errorf("%w: removed length %d < 0", ErrInvalidModification, removedLength)
	case insertedLength < 0:
		return nil, fmt.Errorf("%w: inserted length %d < 0", ErrInvalidModification, insertedLength)
	case input == nil:
		return nil, fmt.Errorf("%w: nil input text", ErrInvalidModification)
	case modOffset+insertedLength > input.Len():
		return nil, fmt.Errorf("%w: inserted run [%d, %d) exceeds text length %d",
			ErrInvalidModification, modOffset, modOffset+insertedLength, input.Len())
	case removedText != nil && len(*removedText) != removedLength:
		return nil, fmt.Errorf("%w: removed text length %d != removed length %d",
			ErrInvalidModification, len(*removedText), removedLength)
	}

	return &TokenHierarchyEventInfo{
		input:          input,
		modOffset:      modOffset,
		removedLength:  removedLength,
		removedText:    removedText,
		insertedLength: insertedLength,
		affectedStart:  modOffset,
		affectedEnd:    modOffset + insertedLength,
	}, nil
}

// Input returns the text after the edit.
func (e *TokenHierarchyEventInfo) Input() lexer.Text { return e.input }

// ModOffset returns the offset of the edit.
func (e *TokenHierarchyEventInfo) ModOffset() int { return e.modOffset }

// RemovedLength returns the number of removed bytes.
func (e *TokenHierarchyEventInfo) RemovedLength() int { return e.removedLength }

// RemovedText returns the removed text and whether it was supplied.
func (e *TokenHierarchyEventInfo) RemovedText() (string, bool) {
	if e.removedText == nil {
		return "", false
	}
	return *e.removedText, true
}

// InsertedLength returns the number of inserted bytes.
func (e *TokenHierarchyEventInfo) InsertedLength() int { return e.insertedLength }

// DiffLength returns insertedLength - removedLength.
func (e *TokenHierarchyEventInfo) DiffLength() int { return e.insertedLength - e.removedLength }

// DiffLengthOrZero returns DiffLength clamped at zero.
func (e *TokenHierarchyEventInfo) DiffLengthOrZero() int { return max(0, e.DiffLength()) }

// InsertedText returns the inserted run of the current text.
func (e *TokenHierarchyEventInfo) InsertedText() string {
	return lexer.TextString(e.input, e.modOffset, e.modOffset+e.insertedLength)
}

// AffectedStartOffset returns the start of the region whose tokens changed.
func (e *TokenHierarchyEventInfo) AffectedStartOffset() int { return e.affectedStart }

// AffectedEndOffset returns the end of the region whose tokens changed, in
// post-edit coordinates.
func (e *TokenHierarchyEventInfo) AffectedEndOffset() int { return e.affectedEnd }

// SetMinAffectedStartOffset widens the affected region start to offset if it
// lies before the current start.
func (e *TokenHierarchyEventInfo) SetMinAffectedStartOffset(offset int) {
	if offset < e.affectedStart {
		e.affectedStart = offset
	}
}

// SetMaxAffectedEndOffset widens the affected region end to offset if it lies
// after the current end.
func (e *TokenHierarchyEventInfo) SetMaxAffectedEndOffset(offset int) {
	if offset > e.affectedEnd {
		e.affectedEnd = offset
	}
}

// OriginalText returns the pre-edit text. It fails with
// ErrRemovedTextRequired when bytes were removed but their text was not
// supplied.
func (e *TokenHierarchyEventInfo) OriginalText() (*OriginalText, error) {
	if e.originalText != nil {
		return e.originalText, nil
	}

	removed := ""
	if e.removedText != nil {
		removed = *e.removedText
	} else if e.removedLength != 0 {
		return nil, fmt.Errorf("%w: %d bytes removed at offset %d",
			ErrRemovedTextRequired, e.removedLength, e.modOffset)
	}

	e.originalText = NewOriginalText(e.input, e.modOffset, removed, e.insertedLength)
	return e.originalText, nil
}

// String returns a debug summary.
func (e *TokenHierarchyEventInfo) String() string {
	return fmt.Sprintf("modOffset=%d removed=%d inserted=%d affected=[%d,%d]",
		e.modOffset, e.removedLength, e.insertedLength, e.affectedStart, e.affectedEnd)
}
