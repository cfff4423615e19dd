package lexer

import (
	"fmt"
	"sync"
)

// TokenID identifies a token kind within one language.
// Names are resolved through Language.TokenName.
type TokenID uint16

// State is a resumable lexer automaton state. Lexers must return equal
// states for equivalent positions so the relexer can detect convergence.
type State int

// InitialState is the state a lexer starts in at the beginning of a token list.
const InitialState State = 0

// NoOffset is reported by Token.Offset for flyweight tokens.
const NoOffset = -1

// TokenOwner resolves the raw offset stored in a positioned token
// into an absolute offset. Token lists implement it.
type TokenOwner interface {
	RawToOffset(raw int) int
}

// Token is a classified span of text.
//
// A flyweight token is a shared immutable instance reused for identical
// lexemes. It has no offset of its own; a token list derives it by scanning
// backward to the nearest positioned token.
//
// A positioned token carries a raw offset that its owning list translates
// into an absolute offset. Once removed from a list the token is detached:
// its raw offset is frozen to the offset it had in that list.
type Token struct {
	id        TokenID
	length    int
	flyText   string
	flyweight bool
	rawOffset int
	owner     TokenOwner
}

// NewToken creates a positioned token that is not yet owned by a list.
func NewToken(id TokenID, length int) *Token {
	return &Token{id: id, length: length, rawOffset: NoOffset}
}

// NewFlyweight creates a shared offset-less token for the given lexeme.
func NewFlyweight(id TokenID, text string) *Token {
	return &Token{id: id, length: len(text), flyText: text, flyweight: true, rawOffset: NoOffset}
}

// ID returns the token kind.
func (t *Token) ID() TokenID { return t.id }

// Length returns the token length in bytes.
func (t *Token) Length() int { return t.length }

// IsFlyweight reports whether the token is a shared offset-less instance.
func (t *Token) IsFlyweight() bool { return t.flyweight }

// Offset returns the absolute offset of a live positioned token, the frozen
// offset of a detached token, or NoOffset for a flyweight token.
func (t *Token) Offset() int {
	if t.flyweight {
		return NoOffset
	}
	if t.owner != nil {
		return t.owner.RawToOffset(t.rawOffset)
	}
	return t.rawOffset
}

// Text returns the token text. Flyweight tokens carry their own text;
// positioned tokens read it from doc at their current offset.
func (t *Token) Text(doc Text) string {
	if t.flyweight {
		return t.flyText
	}
	off := t.Offset()
	if off < 0 || doc == nil || off+t.length > doc.Len() {
		return ""
	}
	return TextString(doc, off, off+t.length)
}

// RawOffset returns the stored raw offset. Only token lists interpret it.
func (t *Token) RawOffset() int { return t.rawOffset }

// SetRawOffset stores a raw offset. Only token lists call it.
func (t *Token) SetRawOffset(raw int) { t.rawOffset = raw }

// Owner returns the list resolving the raw offset, or nil when detached.
func (t *Token) Owner() TokenOwner { return t.owner }

// Attach makes owner responsible for resolving raw.
func (t *Token) Attach(owner TokenOwner, raw int) {
	if t.flyweight {
		return
	}
	t.owner = owner
	t.rawOffset = raw
}

// Detach freezes the token at offset and drops its owner.
func (t *Token) Detach(offset int) {
	if t.flyweight {
		return
	}
	t.owner = nil
	t.rawOffset = offset
}

// Token implements TokenOrEmbedding.
func (t *Token) Token() *Token { return t }

// EmbeddedTokenList implements TokenOrEmbedding. Plain tokens have none.
func (t *Token) EmbeddedTokenList() TokenList { return nil }

// String returns a debug representation.
func (t *Token) String() string {
	if t.flyweight {
		return fmt.Sprintf("%d:F%q", t.id, t.flyText)
	}
	return fmt.Sprintf("%d@%d+%d", t.id, t.Offset(), t.length)
}

// SameLexeme reports whether two tokens have the same kind and length.
func SameLexeme(a, b *Token) bool {
	return a.id == b.id && a.length == b.length
}

type flyKey struct {
	id   TokenID
	text string
}

// FlyweightCache shares flyweight token instances of one language.
// It is safe for concurrent use because lexers of different documents
// share one language instance.
type FlyweightCache struct {
	mu     sync.Mutex
	tokens map[flyKey]*Token
}

// NewFlyweightCache creates an empty cache.
func NewFlyweightCache() *FlyweightCache {
	return &FlyweightCache{tokens: make(map[flyKey]*Token)}
}

// Get returns the shared flyweight token for id and text, creating it once.
func (c *FlyweightCache) Get(id TokenID, text string) *Token {
	key := flyKey{id: id, text: text}

	c.mu.Lock()
	defer c.mu.Unlock()

	if tok, ok := c.tokens[key]; ok {
		return tok
	}
	tok := NewFlyweight(id, text)
	c.tokens[key] = tok
	return tok
}

// Len returns the number of cached flyweight tokens.
func (c *FlyweightCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tokens)
}
