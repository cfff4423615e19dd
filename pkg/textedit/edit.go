// Package textedit provides text edit types, validation and application,
// edit scripts for replaying a sequence of edits, and line diffs.
package textedit

// TextEdit represents a single text replacement.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Replace returns the edit replacing length bytes at offset with text.
func Replace(offset, length int, text string) TextEdit {
	return TextEdit{StartOffset: offset, EndOffset: offset + length, NewText: text}
}

// RemovedLength returns the number of replaced bytes.
func (e TextEdit) RemovedLength() int { return e.EndOffset - e.StartOffset }

// InsertedLength returns the number of inserted bytes.
func (e TextEdit) InsertedLength() int { return len(e.NewText) }

// IsNoop reports an edit that neither removes nor inserts anything.
func (e TextEdit) IsNoop() bool { return e.StartOffset == e.EndOffset && e.NewText == "" }
