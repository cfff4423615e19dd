package inc

import (
	"sort"

	"github.com/yaklabco/inclex/pkg/lexer"
)

// TokenListList holds the embedded lists of one language path whose
// sections join into one logical token stream, in document order. Lexer
// state flows from the end of one section into the start of the next.
//
// It also implements lexer.TokenList as the concatenation of its sections.
type TokenListList struct {
	hierarchy *TokenHierarchy
	path      lexer.LanguagePath
	lists     []*EmbeddedTokenList
	modCount  int
}

var _ lexer.TokenList = (*TokenListList)(nil)

func newTokenListList(h *TokenHierarchy, path lexer.LanguagePath) *TokenListList {
	return &TokenListList{hierarchy: h, path: path}
}

// TokenListCount returns the number of sections.
func (l *TokenListList) TokenListCount() int { return len(l.lists) }

// TokenList returns section i.
func (l *TokenListList) TokenList(i int) *EmbeddedTokenList { return l.lists[i] }

func (l *TokenListList) indexOf(etl *EmbeddedTokenList) int {
	for i, list := range l.lists {
		if list == etl {
			return i
		}
	}
	return -1
}

// insertionIndex returns the number of sections starting before offset.
func (l *TokenListList) insertionIndex(offset int) int {
	return sort.Search(len(l.lists), func(i int) bool {
		return l.lists[i].StartOffset() >= offset
	})
}

// locate maps a joined token index to a section and a section-local index.
func (l *TokenListList) locate(index int) (*EmbeddedTokenList, int) {
	for _, list := range l.lists {
		if index < list.TokenCount() {
			return list, index
		}
		index -= list.TokenCount()
	}
	panic("inc: joined token index out of range")
}

// LanguagePath implements lexer.TokenList.
func (l *TokenListList) LanguagePath() lexer.LanguagePath { return l.path }

// TokenCount implements lexer.TokenList.
func (l *TokenListList) TokenCount() int {
	n := 0
	for _, list := range l.lists {
		n += list.TokenCount()
	}
	return n
}

// TokenOrEmbedding implements lexer.TokenList.
func (l *TokenListList) TokenOrEmbedding(index int) lexer.TokenOrEmbedding {
	list, i := l.locate(index)
	return list.TokenOrEmbedding(i)
}

// TokenOffset implements lexer.TokenList.
func (l *TokenListList) TokenOffset(index int) int {
	list, i := l.locate(index)
	return list.TokenOffset(i)
}

// Lookahead implements lexer.TokenList.
func (l *TokenListList) Lookahead(index int) int {
	list, i := l.locate(index)
	return list.Lookahead(i)
}

// State implements lexer.TokenList.
func (l *TokenListList) State(index int) lexer.State {
	list, i := l.locate(index)
	return list.State(i)
}

// StartOffset implements lexer.TokenList.
func (l *TokenListList) StartOffset() int {
	if len(l.lists) == 0 {
		return 0
	}
	return l.lists[0].StartOffset()
}

// EndOffset implements lexer.TokenList.
func (l *TokenListList) EndOffset() int {
	if len(l.lists) == 0 {
		return 0
	}
	return l.lists[len(l.lists)-1].EndOffset()
}

// ModCount changes whenever a section is added, removed or relexed.
func (l *TokenListList) ModCount() int {
	n := l.modCount
	for _, list := range l.lists {
		n += list.ModCount()
	}
	return n
}

// RootTokenList implements lexer.TokenList.
func (l *TokenListList) RootTokenList() lexer.TokenList { return l.hierarchy.root }

// CharAt implements lexer.TokenList.
func (l *TokenListList) CharAt(offset int) byte { return l.hierarchy.text.At(offset) }

// SetTokenOrEmbedding implements lexer.TokenList.
func (l *TokenListList) SetTokenOrEmbedding(index int, toe lexer.TokenOrEmbedding) {
	list, i := l.locate(index)
	list.SetTokenOrEmbedding(i, toe)
}

// TokenListListUpdate describes how the sections of a TokenListList change
// during one relex: RemovedCount sections at ModIndex are replaced by Added.
// Until Apply is called the list itself is untouched; TokenList and
// TokenListCount answer for the state after the update.
type TokenListListUpdate struct {
	TokenListList *TokenListList
	ModIndex      int
	RemovedCount  int
	Added         []*EmbeddedTokenList
}

// NewTokenListListUpdate starts an empty update at modIndex.
func NewTokenListListUpdate(tll *TokenListList, modIndex int) *TokenListListUpdate {
	return &TokenListListUpdate{TokenListList: tll, ModIndex: modIndex}
}

// TokenListCount returns the section count after the update.
func (u *TokenListListUpdate) TokenListCount() int {
	return u.TokenListList.TokenListCount() - u.RemovedCount + len(u.Added)
}

// TokenList returns section i as it will be after the update.
func (u *TokenListListUpdate) TokenList(i int) *EmbeddedTokenList {
	switch {
	case i < u.ModIndex:
		return u.TokenListList.TokenList(i)
	case i < u.ModIndex+len(u.Added):
		return u.Added[i-u.ModIndex]
	default:
		return u.TokenListList.TokenList(i - len(u.Added) + u.RemovedCount)
	}
}

// IsEmpty reports an update that neither removes nor adds sections.
func (u *TokenListListUpdate) IsEmpty() bool {
	return u.RemovedCount == 0 && len(u.Added) == 0
}

// Apply splices the update into the list.
func (u *TokenListListUpdate) Apply() {
	tll := u.TokenListList
	end := u.ModIndex + u.RemovedCount
	for _, removed := range tll.lists[u.ModIndex:end] {
		removed.joinList = nil
	}

	lists := make([]*EmbeddedTokenList, 0, u.TokenListCount())
	lists = append(lists, tll.lists[:u.ModIndex]...)
	lists = append(lists, u.Added...)
	lists = append(lists, tll.lists[end:]...)
	tll.lists = lists

	for _, added := range u.Added {
		added.joinList = tll
	}
	tll.modCount++
}

// sectionSource yields the sections a join operation walks.
type sectionSource interface {
	TokenList(i int) *EmbeddedTokenList
	TokenListCount() int
}

// JoinLexerInputOperation lexes consecutive joined sections as one stream,
// carrying the lexer state from the end of one section into the next.
type JoinLexerInputOperation struct {
	sections sectionSource
	maxFly   int
	index    int
	state    lexer.State
}

// NewJoinLexerInputOperation positions an operation at section start, with
// the state left by the preceding section.
func NewJoinLexerInputOperation(tll *TokenListList, start, maxFlySequence int) *JoinLexerInputOperation {
	return newJoinLexerInputOperation(tll, start, maxFlySequence)
}

func newJoinLexerInputOperation(sections sectionSource, start, maxFly int) *JoinLexerInputOperation {
	state := lexer.InitialState
	if start > 0 {
		state = sections.TokenList(start - 1).EndState()
	}
	return &JoinLexerInputOperation{sections: sections, maxFly: maxFly, index: start, state: state}
}

// TokenList returns section i.
func (op *JoinLexerInputOperation) TokenList(i int) *EmbeddedTokenList {
	return op.sections.TokenList(i)
}

// TokenListCount returns the number of sections.
func (op *JoinLexerInputOperation) TokenListCount() int { return op.sections.TokenListCount() }

// TokenListIndex returns the section the next LexSection call lexes.
func (op *JoinLexerInputOperation) TokenListIndex() int { return op.index }

// State returns the state the next section starts from.
func (op *JoinLexerInputOperation) State() lexer.State { return op.state }

// Done reports whether all sections were visited.
func (op *JoinLexerInputOperation) Done() bool { return op.index >= op.sections.TokenListCount() }

// Converged reports whether the next section was already lexed from the
// carried state, so its tokens stay valid.
func (op *JoinLexerInputOperation) Converged() bool {
	return !op.Done() && op.TokenList(op.index).StartState() == op.state
}

// LexSection lexes the whole current section from the carried state and
// advances to the next one. The returned change replaces every old token of
// the section and is not applied yet.
func (op *JoinLexerInputOperation) LexSection() (*EmbeddedTokenList, *TokenListChange, error) {
	etl := op.TokenList(op.index)
	change, err := lexWhole(etl, op.state, op.maxFly)
	if err != nil {
		return nil, nil, err
	}
	etl.start = op.state
	if n := change.AddedTokenOrEmbeddingsCount(); n > 0 {
		op.state = change.AddedState(n - 1)
	}
	op.index++
	return etl, change, nil
}

// MutableJoinLexerInputOperation is a join operation over sections that are
// changing in the current relex. It walks the post-update view of a
// TokenListListUpdate so lexing sees the sections as they will be, before
// the update is applied.
type MutableJoinLexerInputOperation struct {
	*JoinLexerInputOperation

	update *TokenListListUpdate
}

// NewMutableJoinLexerInputOperation starts at the first section the update
// touches.
func NewMutableJoinLexerInputOperation(update *TokenListListUpdate, maxFlySequence int) *MutableJoinLexerInputOperation {
	return &MutableJoinLexerInputOperation{
		JoinLexerInputOperation: newJoinLexerInputOperation(update, update.ModIndex, maxFlySequence),
		update:                  update,
	}
}

// Update returns the pending section update.
func (op *MutableJoinLexerInputOperation) Update() *TokenListListUpdate { return op.update }

// IsAdded reports whether the next section is new in this update.
func (op *MutableJoinLexerInputOperation) IsAdded() bool {
	i := op.index - op.update.ModIndex
	return i >= 0 && i < len(op.update.Added)
}

// Converged reports whether the next section is an existing one whose start
// state equals the carried state. Added sections never converge.
func (op *MutableJoinLexerInputOperation) Converged() bool {
	return !op.IsAdded() && op.JoinLexerInputOperation.Converged()
}
