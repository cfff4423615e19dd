package inc

import "github.com/yaklabco/inclex/pkg/lexer"

// SnapshotTokenList is an immutable copy of a token list taken at one point
// in time. It stays valid while the hierarchy keeps changing and may be read
// from other goroutines.
//
// Offsets are relative to the start of the list content. Embedded lists of a
// snapshot are exposed through FilterSnapshotTokenList in absolute offsets,
// so every list reachable from the root snapshot reports absolute offsets.
//
// Token instances are shared with the live hierarchy; use TokenOffset rather
// than Token.Offset to position them.
type SnapshotTokenList struct {
	path       lexer.LanguagePath
	root       *SnapshotTokenList
	text       lexer.Text
	base       int
	slots      []lexer.TokenOrEmbedding
	offsets    []int
	lookaheads []int
	states     []lexer.State
	start      int
	end        int
}

var _ lexer.TokenList = (*SnapshotTokenList)(nil)

// snapshotEmbedding is a slot of a snapshot hosting an embedded snapshot.
type snapshotEmbedding struct {
	token *lexer.Token
	list  lexer.TokenList
}

func (s snapshotEmbedding) Token() *lexer.Token { return s.token }

func (s snapshotEmbedding) EmbeddedTokenList() lexer.TokenList { return s.list }

// Snapshot returns an immutable copy of the whole hierarchy, building it
// first when needed.
func (h *TokenHierarchy) Snapshot() (*SnapshotTokenList, error) {
	root, err := h.TokenList()
	if err != nil {
		return nil, err
	}
	return newSnapshot(root, h.text, 0, nil), nil
}

func newSnapshot(list lexer.TokenList, text lexer.Text, base int, root *SnapshotTokenList) *SnapshotTokenList {
	n := list.TokenCount()
	snap := &SnapshotTokenList{
		path:       list.LanguagePath(),
		root:       root,
		text:       text,
		base:       base,
		slots:      make([]lexer.TokenOrEmbedding, n),
		offsets:    make([]int, n),
		lookaheads: make([]int, n),
		states:     make([]lexer.State, n),
		start:      list.StartOffset() - base,
		end:        list.EndOffset() - base,
	}
	if root == nil {
		snap.root = snap
	}

	for i := range n {
		toe := list.TokenOrEmbedding(i)
		snap.offsets[i] = list.TokenOffset(i) - base
		snap.lookaheads[i] = list.Lookahead(i)
		snap.states[i] = list.State(i)

		embedded := toe.EmbeddedTokenList()
		if embedded == nil {
			snap.slots[i] = toe.Token()
			continue
		}
		childBase := embedded.StartOffset()
		child := newSnapshot(embedded, text, childBase, snap.root)
		snap.slots[i] = snapshotEmbedding{
			token: toe.Token(),
			list:  NewFilterSnapshotTokenList(child, childBase),
		}
	}
	return snap
}

// Text returns the document text the snapshot was taken from.
func (s *SnapshotTokenList) Text() lexer.Text { return s.text }

// LanguagePath implements lexer.TokenList.
func (s *SnapshotTokenList) LanguagePath() lexer.LanguagePath { return s.path }

// TokenCount implements lexer.TokenList.
func (s *SnapshotTokenList) TokenCount() int { return len(s.slots) }

// TokenOrEmbedding implements lexer.TokenList.
func (s *SnapshotTokenList) TokenOrEmbedding(index int) lexer.TokenOrEmbedding { return s.slots[index] }

// TokenOffset implements lexer.TokenList.
func (s *SnapshotTokenList) TokenOffset(index int) int { return s.offsets[index] }

// Lookahead implements lexer.TokenList.
func (s *SnapshotTokenList) Lookahead(index int) int { return s.lookaheads[index] }

// State implements lexer.TokenList.
func (s *SnapshotTokenList) State(index int) lexer.State { return s.states[index] }

// StartOffset implements lexer.TokenList.
func (s *SnapshotTokenList) StartOffset() int { return s.start }

// EndOffset implements lexer.TokenList.
func (s *SnapshotTokenList) EndOffset() int { return s.end }

// ModCount implements lexer.TokenList.
func (s *SnapshotTokenList) ModCount() int { return lexer.ModCountImmutable }

// RootTokenList implements lexer.TokenList.
func (s *SnapshotTokenList) RootTokenList() lexer.TokenList { return s.root }

// CharAt implements lexer.TokenList.
func (s *SnapshotTokenList) CharAt(offset int) byte { return s.text.At(s.base + offset) }

// SetTokenOrEmbedding panics: snapshots are immutable.
func (s *SnapshotTokenList) SetTokenOrEmbedding(int, lexer.TokenOrEmbedding) {
	panic(ErrImmutableTokenList)
}
