package inc

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/inclex/pkg/lexer"
	"github.com/yaklabco/inclex/pkg/textbuf"
)

// DocumentInput keeps a TokenHierarchy in sync with a text buffer. Every
// buffer edit is turned into a TokenHierarchyEventInfo carrying the removed
// text and fed to the hierarchy synchronously, while the buffer is still
// write locked.
type DocumentInput struct {
	buffer    *textbuf.Buffer
	hierarchy *TokenHierarchy
	logger    *log.Logger
	last      UpdateResult
	remove    func()
}

// NewDocumentInput attaches a hierarchy of language to buf.
func NewDocumentInput(buf *textbuf.Buffer, language lexer.Language, opts Options) *DocumentInput {
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}
	d := &DocumentInput{
		buffer:    buf,
		hierarchy: NewTokenHierarchy(buf.Snapshot(), language, opts),
		logger:    logger,
	}
	d.remove = buf.AddEditListener(d.textModified)
	return d
}

// Buffer returns the attached buffer.
func (d *DocumentInput) Buffer() *textbuf.Buffer { return d.buffer }

// TokenHierarchy returns the hierarchy. Query it under Read.
func (d *DocumentInput) TokenHierarchy() *TokenHierarchy { return d.hierarchy }

// IsReadLocked reports whether the buffer is held for reading or writing.
func (d *DocumentInput) IsReadLocked() bool { return d.buffer.IsReadLocked() }

// IsWriteLocked reports whether the buffer is being modified.
func (d *DocumentInput) IsWriteLocked() bool { return d.buffer.IsWriteLocked() }

// Read runs fn with the buffer read locked.
func (d *DocumentInput) Read(fn func(h *TokenHierarchy) error) error {
	var err error
	d.buffer.Read(func(lexer.Text) {
		err = fn(d.hierarchy)
	})
	return err
}

// Replace edits the buffer and returns the resulting hierarchy update.
// A non-nil error means the edit itself was rejected.
func (d *DocumentInput) Replace(offset, length int, text string) (UpdateResult, error) {
	d.last = UpdateResult{}
	if err := d.buffer.Replace(offset, length, text); err != nil {
		return UpdateResult{}, err
	}
	return d.last, d.last.contractErr()
}

// Insert inserts text and returns the resulting hierarchy update.
func (d *DocumentInput) Insert(offset int, text string) (UpdateResult, error) {
	return d.Replace(offset, 0, text)
}

// Remove removes bytes and returns the resulting hierarchy update.
func (d *DocumentInput) Remove(offset, length int) (UpdateResult, error) {
	return d.Replace(offset, length, "")
}

// LastResult returns the result of the most recent buffer edit.
func (d *DocumentInput) LastResult() UpdateResult { return d.last }

// Close detaches from the buffer.
func (d *DocumentInput) Close() {
	if d.remove != nil {
		d.remove()
		d.remove = nil
	}
}

func (d *DocumentInput) textModified(buf *textbuf.Buffer, e textbuf.Edit) {
	if !buf.IsWriteLocked() {
		d.last = UpdateResult{Err: fmt.Errorf("%w: edit notified without write lock", ErrInvalidModification)}
		return
	}

	removed := e.RemovedText
	info, err := NewTokenHierarchyEventInfo(buf.Text(), e.Offset, len(removed), &removed, e.InsertedLength)
	if err != nil {
		d.last = UpdateResult{Err: err}
		return
	}
	d.last = d.hierarchy.Update(info, d.logger)
}

// contractErr returns Err when it reports a rejected edit rather than a
// relex failure; relex failures are reported through Outcome.
func (r UpdateResult) contractErr() error {
	if r.Outcome == OutcomeRebuildRequired {
		return nil
	}
	return r.Err
}
