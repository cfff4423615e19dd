package inc

import (
	"fmt"

	"github.com/yaklabco/inclex/pkg/lexer"
)

// TokenChangeInfo is the frozen description of how one token list changed
// during one edit. Listeners may retain it.
type TokenChangeInfo struct {
	current        lexer.TokenList
	languagePath   lexer.LanguagePath
	index          int
	offset         int
	addedCount     int
	addedEndOffset int
	removed        lexer.TokenList
	embedded       []*TokenChangeInfo
	boundsChange   bool
}

// Index returns the index of the first changed slot.
func (c *TokenChangeInfo) Index() int { return c.index }

// Offset returns the absolute offset where the change begins.
func (c *TokenChangeInfo) Offset() int { return c.offset }

// RemovedTokenList returns the removed run in absolute pre-edit offsets.
// It is never nil.
func (c *TokenChangeInfo) RemovedTokenList() lexer.TokenList { return c.removed }

// RemovedTokenCount returns the number of removed slots.
func (c *TokenChangeInfo) RemovedTokenCount() int { return c.removed.TokenCount() }

// AddedTokenCount returns the number of slots added at Index.
func (c *TokenChangeInfo) AddedTokenCount() int { return c.addedCount }

// AddedEndOffset returns the absolute end offset of the added run.
func (c *TokenChangeInfo) AddedEndOffset() int { return c.addedEndOffset }

// EmbeddedChanges returns the changes of embedded lists nested in this one.
func (c *TokenChangeInfo) EmbeddedChanges() []*TokenChangeInfo { return c.embedded }

// IsBoundsChange reports a change that only moved the list bounds.
func (c *TokenChangeInfo) IsBoundsChange() bool { return c.boundsChange }

// CurrentTokenList returns the live list the change was applied to.
func (c *TokenChangeInfo) CurrentTokenList() lexer.TokenList { return c.current }

// LanguagePath returns the language path of the changed list.
func (c *TokenChangeInfo) LanguagePath() lexer.LanguagePath { return c.languagePath }

// String returns a debug summary.
func (c *TokenChangeInfo) String() string {
	return fmt.Sprintf("%s: index=%d offset=%d removed=%d added=%d bounds=%t embedded=%d",
		c.languagePath, c.index, c.offset, c.removed.TokenCount(), c.addedCount,
		c.boundsChange, len(c.embedded))
}

// TokenListChange accumulates the change of one token list while it is
// relexed. Offsets are in the list's own coordinate space.
//
// The match cursor walks the old list: MatchIndex is the first old slot not
// yet consumed and MatchOffset its old offset. Slots in [Index, MatchIndex)
// are removed and replaced by the added run.
type TokenListChange struct {
	list lexer.TokenList

	index       int
	offset      int
	matchIndex  int
	matchOffset int

	added           []lexer.TokenOrEmbedding
	addedLookaheads []int
	addedStates     []lexer.State
	addedEndOffset  int

	removed      *RemovedTokenList
	boundsChange bool
	embedded     []*TokenChangeInfo

	// base maps list offsets to absolute offsets after the edit, removedBase
	// to absolute offsets before it.
	base        int
	removedBase int
	nested      bool

	info *TokenChangeInfo
}

// NewTokenListChange starts a change of list.
func NewTokenListChange(list lexer.TokenList) *TokenListChange {
	return &TokenListChange{list: list}
}

// TokenList returns the list being changed.
func (c *TokenListChange) TokenList() lexer.TokenList { return c.list }

// SetIndex positions the change at the old slot index starting at offset.
// The match cursor starts there as well.
func (c *TokenListChange) SetIndex(index, offset int) {
	c.index = index
	c.offset = offset
	c.matchIndex = index
	c.matchOffset = offset
	c.addedEndOffset = offset
}

// Index returns the index of the first changed slot.
func (c *TokenListChange) Index() int { return c.index }

// Offset returns the offset of the first changed slot.
func (c *TokenListChange) Offset() int { return c.offset }

// MatchIndex returns the index of the first old slot not consumed yet.
func (c *TokenListChange) MatchIndex() int { return c.matchIndex }

// MatchOffset returns the old offset of MatchIndex.
func (c *TokenListChange) MatchOffset() int { return c.matchOffset }

// IncreaseMatchIndex consumes the old slot at MatchIndex.
func (c *TokenListChange) IncreaseMatchIndex() {
	c.matchOffset += c.list.TokenOrEmbedding(c.matchIndex).Token().Length()
	c.matchIndex++
}

// SkipUnchanged moves the start of the change past an old slot that the
// relexer reproduced identically before anything was added.
func (c *TokenListChange) SkipUnchanged() {
	if len(c.added) != 0 || c.matchIndex != c.index {
		panic(fmt.Sprintf("inc: skip after %d added tokens", len(c.added)))
	}
	c.IncreaseMatchIndex()
	c.index = c.matchIndex
	c.offset = c.matchOffset
	c.addedEndOffset = c.matchOffset
}

// AddToken appends a newly lexed slot with the lookahead and state the lexer
// reported for it.
func (c *TokenListChange) AddToken(toe lexer.TokenOrEmbedding, lookahead int, state lexer.State) {
	c.added = append(c.added, toe)
	c.addedLookaheads = append(c.addedLookaheads, lookahead)
	c.addedStates = append(c.addedStates, state)
	c.addedEndOffset += toe.Token().Length()
}

// RemoveLastAddedToken undoes the last AddToken together with the last
// consumed old slot, so that old slot is retained instead.
func (c *TokenListChange) RemoveLastAddedToken() lexer.TokenOrEmbedding {
	last := len(c.added) - 1
	toe := c.added[last]
	c.added = c.added[:last]
	c.addedLookaheads = c.addedLookaheads[:last]
	c.addedStates = c.addedStates[:last]
	c.addedEndOffset -= toe.Token().Length()

	c.matchIndex--
	c.matchOffset -= c.list.TokenOrEmbedding(c.matchIndex).Token().Length()
	return toe
}

// RemovedTokenCount returns MatchIndex - Index.
func (c *TokenListChange) RemovedTokenCount() int { return c.matchIndex - c.index }

// AddedTokenOrEmbeddingsCount returns the number of added slots.
func (c *TokenListChange) AddedTokenOrEmbeddingsCount() int { return len(c.added) }

// AddedTokenOrEmbedding returns the added slot at i.
func (c *TokenListChange) AddedTokenOrEmbedding(i int) lexer.TokenOrEmbedding { return c.added[i] }

// AddedLookahead returns the lookahead recorded for added slot i.
func (c *TokenListChange) AddedLookahead(i int) int { return c.addedLookaheads[i] }

// AddedState returns the state recorded for added slot i.
func (c *TokenListChange) AddedState(i int) lexer.State { return c.addedStates[i] }

// AddedEndOffset returns the end offset of the added run.
func (c *TokenListChange) AddedEndOffset() int { return c.addedEndOffset }

// SetRemovedTokens freezes the removed run.
func (c *TokenListChange) SetRemovedTokens(slots []lexer.TokenOrEmbedding, lookaheads []int, states []lexer.State) {
	c.removed = NewRemovedTokenList(c.list.RootTokenList(), c.list.LanguagePath(),
		slots, lookaheads, states, c.offset)
}

// SetRemovedTokensEmpty freezes an empty removed run.
func (c *TokenListChange) SetRemovedTokensEmpty() {
	c.SetRemovedTokens([]lexer.TokenOrEmbedding{}, nil, nil)
}

// RemovedTokenList returns the frozen removed run, or nil before it is set.
func (c *TokenListChange) RemovedTokenList() *RemovedTokenList { return c.removed }

// MarkBoundsChange flags the change as a bounds-only change.
func (c *TokenListChange) MarkBoundsChange() { c.boundsChange = true }

// IsBoundsChange reports whether MarkBoundsChange was called.
func (c *TokenListChange) IsBoundsChange() bool { return c.boundsChange }

// AddEmbeddedChange nests the change of an embedded list.
func (c *TokenListChange) AddEmbeddedChange(info *TokenChangeInfo) {
	c.embedded = append(c.embedded, info)
}

// IsEmpty reports a change that neither removed nor added anything and is
// not a bounds change.
func (c *TokenListChange) IsEmpty() bool {
	return c.RemovedTokenCount() == 0 && len(c.added) == 0 && !c.boundsChange
}

// setCoordinates records how list offsets map to absolute offsets after and
// before the edit. nested marks a change of an embedded list.
func (c *TokenListChange) setCoordinates(base, removedBase int, nested bool) {
	c.base = base
	c.removedBase = removedBase
	c.nested = nested
}

// ChangeInfo freezes the change. Later calls return the same value.
func (c *TokenListChange) ChangeInfo() *TokenChangeInfo {
	if c.info != nil {
		return c.info
	}
	if c.removed == nil {
		c.SetRemovedTokensEmpty()
	}

	var removed lexer.TokenList = c.removed
	if c.nested {
		removed = NewFilterSnapshotTokenList(c.removed, c.removedBase)
	}

	c.info = &TokenChangeInfo{
		current:        c.list,
		languagePath:   c.list.LanguagePath(),
		index:          c.index,
		offset:         c.base + c.offset,
		addedCount:     len(c.added),
		addedEndOffset: c.base + c.addedEndOffset,
		removed:        removed,
		embedded:       c.embedded,
		boundsChange:   c.boundsChange,
	}
	return c.info
}

// String returns a debug summary.
func (c *TokenListChange) String() string {
	return fmt.Sprintf("index=%d offset=%d match=%d@%d added=%d end=%d",
		c.index, c.offset, c.matchIndex, c.matchOffset, len(c.added), c.addedEndOffset)
}
