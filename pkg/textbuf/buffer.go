// Package textbuf provides a mutable text buffer with read/write lock
// discipline and synchronous edit notification.
package textbuf

import (
	"sync"
	"sync/atomic"

	"github.com/yaklabco/inclex/pkg/lexer"
	"github.com/yaklabco/inclex/pkg/textedit"
)

// Edit describes one applied modification. RemovedText is the exact text
// that was replaced.
type Edit struct {
	Offset         int
	RemovedText    string
	InsertedLength int
}

// EditListener is notified after every edit while the buffer is still write
// locked. Listeners must not call Read or mutate the buffer.
type EditListener func(buf *Buffer, e Edit)

type listenerEntry struct {
	id int
	fn EditListener
}

// Buffer holds document bytes. Every edit replaces the content slice, so a
// Text obtained before an edit keeps showing the old content.
type Buffer struct {
	mu        sync.RWMutex
	content   []byte
	version   int
	readers   atomic.Int32
	writing   atomic.Bool
	listeners []listenerEntry
	nextID    int
}

// New creates a buffer holding a copy of content.
func New(content []byte) *Buffer {
	return &Buffer{content: append([]byte(nil), content...)}
}

// NewString creates a buffer holding s.
func NewString(s string) *Buffer {
	return &Buffer{content: []byte(s)}
}

// Insert inserts text at offset.
func (b *Buffer) Insert(offset int, text string) error {
	return b.Replace(offset, 0, text)
}

// Remove removes length bytes at offset.
func (b *Buffer) Remove(offset, length int) error {
	return b.Replace(offset, length, "")
}

// Replace replaces length bytes at offset with text and notifies listeners.
// Edits that neither remove nor insert anything still notify.
func (b *Buffer) Replace(offset, length int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.replaceLocked(textedit.Replace(offset, length, text))
}

func (b *Buffer) replaceLocked(edit textedit.TextEdit) error {
	if err := textedit.ValidateEdit(edit, len(b.content)); err != nil {
		return err
	}

	removed := string(b.content[edit.StartOffset:edit.EndOffset])
	b.content = textedit.Apply(b.content, edit)
	b.version++

	b.writing.Store(true)
	defer b.writing.Store(false)

	e := Edit{Offset: edit.StartOffset, RemovedText: removed, InsertedLength: edit.InsertedLength()}
	for _, l := range b.listeners {
		l.fn(b, e)
	}
	return nil
}

// SetContent replaces the whole content, notifying listeners with one edit
// covering the changed region only.
func (b *Buffer) SetContent(content []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	edit, ok := textedit.ComputeEdit(b.content, content)
	if !ok {
		return nil
	}
	return b.replaceLocked(edit)
}

// Read runs fn with the read lock held.
func (b *Buffer) Read(fn func(text lexer.Text)) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	b.readers.Add(1)
	defer b.readers.Add(-1)

	fn(lexer.BytesText(b.content))
}

// Text returns the current content. Call it under Read or from an edit
// listener; use Snapshot elsewhere.
func (b *Buffer) Text() lexer.Text {
	return lexer.BytesText(b.content)
}

// Snapshot returns the current content, taking the read lock.
func (b *Buffer) Snapshot() lexer.Text {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return lexer.BytesText(b.content)
}

// String returns a copy of the current content.
func (b *Buffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.content)
}

// Len returns the current content length.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.content)
}

// Version returns the number of applied edits.
func (b *Buffer) Version() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// IsReadLocked reports whether a reader or the writer currently holds the
// buffer. It is a guard for assertions, not a locking primitive.
func (b *Buffer) IsReadLocked() bool {
	return b.readers.Load() > 0 || b.writing.Load()
}

// IsWriteLocked reports whether an edit is being notified.
func (b *Buffer) IsWriteLocked() bool {
	return b.writing.Load()
}

// AddEditListener registers fn and returns a function that unregisters it.
func (b *Buffer) AddEditListener(fn EditListener) (remove func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, listenerEntry{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}
