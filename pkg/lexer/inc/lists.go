package inc

import "github.com/yaklabco/inclex/pkg/lexer"

// mutableTokenList is a live list the updater can relex and splice.
type mutableTokenList interface {
	lexer.TokenList
	lexer.TokenOwner

	store() *tokenStore
	language() lexer.Language
	// text returns the list content after the edit; index 0 is list offset 0.
	text() lexer.Text
	// base returns the absolute offset of list offset 0.
	base() int
	startState() lexer.State
	isRoot() bool
}

// IncTokenList is the root token list of a hierarchy. Its offsets are
// absolute document offsets.
type IncTokenList struct {
	tokenStore

	hierarchy *TokenHierarchy
	path      lexer.LanguagePath
}

var (
	_ lexer.TokenList  = (*IncTokenList)(nil)
	_ mutableTokenList = (*IncTokenList)(nil)
)

func newIncTokenList(h *TokenHierarchy) *IncTokenList {
	return &IncTokenList{
		tokenStore: newTokenStore(),
		hierarchy:  h,
		path:       lexer.NewLanguagePath(h.language),
	}
}

// LanguagePath implements lexer.TokenList.
func (l *IncTokenList) LanguagePath() lexer.LanguagePath { return l.path }

// TokenCount implements lexer.TokenList.
func (l *IncTokenList) TokenCount() int { return len(l.slots) }

// TokenOrEmbedding implements lexer.TokenList.
func (l *IncTokenList) TokenOrEmbedding(index int) lexer.TokenOrEmbedding { return l.slots[index] }

// TokenOffset implements lexer.TokenList.
func (l *IncTokenList) TokenOffset(index int) int { return l.localOffset(index) }

// Lookahead implements lexer.TokenList.
func (l *IncTokenList) Lookahead(index int) int { return l.lookaheads[index] }

// State implements lexer.TokenList.
func (l *IncTokenList) State(index int) lexer.State { return l.states[index] }

// StartOffset implements lexer.TokenList.
func (l *IncTokenList) StartOffset() int { return 0 }

// EndOffset implements lexer.TokenList.
func (l *IncTokenList) EndOffset() int { return l.localOffset(len(l.slots)) }

// ModCount implements lexer.TokenList.
func (l *IncTokenList) ModCount() int { return l.modCount }

// RootTokenList implements lexer.TokenList.
func (l *IncTokenList) RootTokenList() lexer.TokenList { return l }

// CharAt implements lexer.TokenList.
func (l *IncTokenList) CharAt(offset int) byte { return l.hierarchy.text.At(offset) }

// SetTokenOrEmbedding implements lexer.TokenList.
func (l *IncTokenList) SetTokenOrEmbedding(index int, toe lexer.TokenOrEmbedding) {
	l.setSlot(index, toe)
}

// RawToOffset implements lexer.TokenOwner.
func (l *IncTokenList) RawToOffset(raw int) int { return l.rawToLocal(raw) }

func (l *IncTokenList) language() lexer.Language { return l.hierarchy.language }

func (l *IncTokenList) text() lexer.Text { return l.hierarchy.text }

func (l *IncTokenList) base() int { return 0 }

func (l *IncTokenList) startState() lexer.State { return lexer.InitialState }

func (l *IncTokenList) isRoot() bool { return true }

// EmbeddedTokenList is the token list of an embedded language inside a
// branch token. It occupies the branch token's slot in its parent list.
// Offsets are stored relative to the start of the embedded content and
// reported as absolute offsets.
type EmbeddedTokenList struct {
	tokenStore

	hierarchy *TokenHierarchy
	parent    lexer.TokenList
	branch    *lexer.Token
	path      lexer.LanguagePath
	spec      *lexer.EmbeddingSpec

	start    lexer.State
	joinList *TokenListList
}

var (
	_ lexer.TokenList        = (*EmbeddedTokenList)(nil)
	_ lexer.TokenOrEmbedding = (*EmbeddedTokenList)(nil)
	_ mutableTokenList       = (*EmbeddedTokenList)(nil)
)

func newEmbeddedTokenList(h *TokenHierarchy, parent lexer.TokenList, branch *lexer.Token,
	spec *lexer.EmbeddingSpec,
) *EmbeddedTokenList {
	return &EmbeddedTokenList{
		tokenStore: newTokenStore(),
		hierarchy:  h,
		parent:     parent,
		branch:     branch,
		path:       parent.LanguagePath().Embedded(spec.Language),
		spec:       spec,
	}
}

// Token returns the branch token hosting the list.
func (l *EmbeddedTokenList) Token() *lexer.Token { return l.branch }

// EmbeddedTokenList returns the list itself.
func (l *EmbeddedTokenList) EmbeddedTokenList() lexer.TokenList { return l }

// Parent returns the list holding the branch token.
func (l *EmbeddedTokenList) Parent() lexer.TokenList { return l.parent }

// Spec returns the embedding description.
func (l *EmbeddedTokenList) Spec() *lexer.EmbeddingSpec { return l.spec }

// StartState returns the lexer state the list was lexed from. It is the
// initial state unless the list is a joined section.
func (l *EmbeddedTokenList) StartState() lexer.State { return l.start }

// EndState returns the lexer state after the last token.
func (l *EmbeddedTokenList) EndState() lexer.State { return l.endState(l.start) }

// IsJoined reports whether the list is a section of a joined stream.
func (l *EmbeddedTokenList) IsJoined() bool { return l.spec.JoinSections }

// LanguagePath implements lexer.TokenList.
func (l *EmbeddedTokenList) LanguagePath() lexer.LanguagePath { return l.path }

// TokenCount implements lexer.TokenList.
func (l *EmbeddedTokenList) TokenCount() int { return len(l.slots) }

// TokenOrEmbedding implements lexer.TokenList.
func (l *EmbeddedTokenList) TokenOrEmbedding(index int) lexer.TokenOrEmbedding { return l.slots[index] }

// TokenOffset implements lexer.TokenList.
func (l *EmbeddedTokenList) TokenOffset(index int) int { return l.base() + l.localOffset(index) }

// Lookahead implements lexer.TokenList.
func (l *EmbeddedTokenList) Lookahead(index int) int { return l.lookaheads[index] }

// State implements lexer.TokenList.
func (l *EmbeddedTokenList) State(index int) lexer.State { return l.states[index] }

// StartOffset implements lexer.TokenList.
func (l *EmbeddedTokenList) StartOffset() int { return l.base() }

// EndOffset implements lexer.TokenList.
func (l *EmbeddedTokenList) EndOffset() int { return l.base() + l.contentLength() }

// ModCount implements lexer.TokenList.
func (l *EmbeddedTokenList) ModCount() int { return l.modCount }

// RootTokenList implements lexer.TokenList.
func (l *EmbeddedTokenList) RootTokenList() lexer.TokenList { return l.parent.RootTokenList() }

// CharAt implements lexer.TokenList.
func (l *EmbeddedTokenList) CharAt(offset int) byte { return l.hierarchy.text.At(offset) }

// SetTokenOrEmbedding implements lexer.TokenList.
func (l *EmbeddedTokenList) SetTokenOrEmbedding(index int, toe lexer.TokenOrEmbedding) {
	l.setSlot(index, toe)
}

// RawToOffset implements lexer.TokenOwner.
func (l *EmbeddedTokenList) RawToOffset(raw int) int { return l.base() + l.rawToLocal(raw) }

func (l *EmbeddedTokenList) language() lexer.Language { return l.spec.Language }

func (l *EmbeddedTokenList) text() lexer.Text {
	start := l.base()
	return lexer.SubText(l.hierarchy.text, start, start+l.contentLength())
}

func (l *EmbeddedTokenList) base() int { return l.branch.Offset() + l.spec.StartSkipLength }

func (l *EmbeddedTokenList) startState() lexer.State { return l.start }

func (l *EmbeddedTokenList) isRoot() bool { return false }

func (l *EmbeddedTokenList) contentLength() int {
	return max(0, l.branch.Length()-l.spec.StartSkipLength-l.spec.EndSkipLength)
}
