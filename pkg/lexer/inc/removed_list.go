package inc

import "github.com/yaklabco/inclex/pkg/lexer"

// RemovedTokenList is the frozen run of slots excised from a token list by
// one update. Offsets are in the coordinate space of the list the tokens were
// removed from, as it was before the edit.
//
// The list holds no text: CharAt and SetTokenOrEmbedding panic with
// ErrRemovedTokenList. Use TokenHierarchyEventInfo.OriginalText for the
// removed characters.
type RemovedTokenList struct {
	languagePath lexer.LanguagePath
	root         lexer.TokenList
	slots        []lexer.TokenOrEmbedding
	lookaheads   []int
	states       []lexer.State
	startOffset  int
}

var _ lexer.TokenList = (*RemovedTokenList)(nil)

// NewRemovedTokenList freezes slots removed at startOffset. lookaheads and
// states may be nil.
func NewRemovedTokenList(
	root lexer.TokenList,
	path lexer.LanguagePath,
	slots []lexer.TokenOrEmbedding,
	lookaheads []int,
	states []lexer.State,
	startOffset int,
) *RemovedTokenList {
	return &RemovedTokenList{
		languagePath: path,
		root:         root,
		slots:        slots,
		lookaheads:   lookaheads,
		states:       states,
		startOffset:  startOffset,
	}
}

// LanguagePath implements lexer.TokenList.
func (l *RemovedTokenList) LanguagePath() lexer.LanguagePath { return l.languagePath }

// TokenCount implements lexer.TokenList.
func (l *RemovedTokenList) TokenCount() int { return len(l.slots) }

// TokenOrEmbedding implements lexer.TokenList.
func (l *RemovedTokenList) TokenOrEmbedding(index int) lexer.TokenOrEmbedding {
	return l.slots[index]
}

// TokenOffset returns the frozen offset of the token at index. Flyweight
// tokens sum the lengths of the preceding flyweight run back to the nearest
// positioned token, or to the start of the removed run.
func (l *RemovedTokenList) TokenOffset(index int) int {
	tok := l.slots[index].Token()
	if !tok.IsFlyweight() {
		return tok.Offset()
	}

	offset := 0
	for i := index - 1; i >= 0; i-- {
		prev := l.slots[i].Token()
		offset += prev.Length()
		if !prev.IsFlyweight() {
			return prev.Offset() + offset
		}
	}
	return l.startOffset + offset
}

// Lookahead implements lexer.TokenList.
func (l *RemovedTokenList) Lookahead(index int) int {
	if l.lookaheads == nil {
		return 0
	}
	return l.lookaheads[index]
}

// State implements lexer.TokenList.
func (l *RemovedTokenList) State(index int) lexer.State {
	if l.states == nil {
		return lexer.InitialState
	}
	return l.states[index]
}

// StartOffset returns the offset of the first removed token, or 0 when empty.
func (l *RemovedTokenList) StartOffset() int {
	if len(l.slots) == 0 {
		return 0
	}
	return l.TokenOffset(0)
}

// EndOffset returns the end of the last removed token, or 0 when empty.
func (l *RemovedTokenList) EndOffset() int {
	n := len(l.slots)
	if n == 0 {
		return 0
	}
	return l.TokenOffset(n-1) + l.slots[n-1].Token().Length()
}

// ModCount implements lexer.TokenList.
func (l *RemovedTokenList) ModCount() int { return lexer.ModCountImmutable }

// RootTokenList implements lexer.TokenList.
func (l *RemovedTokenList) RootTokenList() lexer.TokenList { return l.root }

// CharAt panics: removed lists hold no text.
func (l *RemovedTokenList) CharAt(int) byte {
	panic(ErrRemovedTokenList)
}

// SetTokenOrEmbedding panics: removed lists are read-only.
func (l *RemovedTokenList) SetTokenOrEmbedding(int, lexer.TokenOrEmbedding) {
	panic(ErrRemovedTokenList)
}

// RemovedTokensStartOffset returns the offset the removed run started at.
func (l *RemovedTokenList) RemovedTokensStartOffset() int { return l.startOffset }

// Slots returns the removed slots. The slice must not be modified.
func (l *RemovedTokenList) Slots() []lexer.TokenOrEmbedding { return l.slots }
