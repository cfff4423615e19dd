package inc

import (
	"github.com/yaklabco/inclex/pkg/lexer"
)

// initialGapLength is the raw offset distance of the gap in a fresh list.
// Raw offsets past the gap are real offsets plus the gap length.
const initialGapLength = 1 << 30

// tokenStore holds the slots of a mutable token list with their lookaheads
// and states, plus an offset gap.
//
// Positioned tokens store raw offsets in list-local coordinates. Tokens
// before gapIndex store their real offset; tokens at or after it store the
// real offset plus gapLength. Splicing then shifts every following token by
// adjusting the gap alone.
type tokenStore struct {
	slots      []lexer.TokenOrEmbedding
	lookaheads []int
	states     []lexer.State

	gapStart  int
	gapLength int
	gapIndex  int

	modCount int
}

func newTokenStore() tokenStore {
	return tokenStore{gapLength: initialGapLength}
}

func (s *tokenStore) store() *tokenStore { return s }

func (s *tokenStore) rawToLocal(raw int) int {
	if raw < s.gapStart {
		return raw
	}
	return raw - s.gapLength
}

// localOffset returns the list-local offset of slot i; i == len(slots)
// yields the end offset.
func (s *tokenStore) localOffset(i int) int {
	n := len(s.slots)
	if i >= n {
		if n == 0 {
			return 0
		}
		return s.localOffset(n-1) + s.slots[n-1].Token().Length()
	}

	tok := s.slots[i].Token()
	if !tok.IsFlyweight() {
		return s.rawToLocal(tok.RawOffset())
	}

	offset := 0
	for j := i - 1; j >= 0; j-- {
		prev := s.slots[j].Token()
		offset += prev.Length()
		if !prev.IsFlyweight() {
			return s.rawToLocal(prev.RawOffset()) + offset
		}
	}
	return offset
}

// findIndex returns the slot containing the local offset, or len(slots)
// when offset is at or past the end.
func (s *tokenStore) findIndex(offset int) int {
	lo, hi := 0, len(s.slots)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if s.localOffset(mid) <= offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return 0
	}
	idx := lo - 1
	if offset >= s.localOffset(idx)+s.slots[idx].Token().Length() {
		return len(s.slots)
	}
	return idx
}

func (s *tokenStore) stateBefore(index int, start lexer.State) lexer.State {
	if index == 0 {
		return start
	}
	return s.states[index-1]
}

// sameToken reports whether the old slot at index matches a freshly lexed
// token in kind, length, lookahead and state.
func (s *tokenStore) sameToken(index int, tok *lexer.Token, lookahead int, state lexer.State) bool {
	old := s.slots[index].Token()
	return lexer.SameLexeme(old, tok) && old.IsFlyweight() == tok.IsFlyweight() &&
		s.lookaheads[index] == lookahead && s.states[index] == state
}

// flyRunFrom counts the flyweight slots starting at index.
func (s *tokenStore) flyRunFrom(index int) int {
	n := 0
	for i := index; i < len(s.slots) && s.slots[i].Token().IsFlyweight(); i++ {
		n++
	}
	return n
}

// flyRunBefore counts the flyweight slots directly preceding index.
func (s *tokenStore) flyRunBefore(index int) int {
	n := 0
	for i := index - 1; i >= 0 && s.slots[i].Token().IsFlyweight(); i-- {
		n++
	}
	return n
}

// moveGap moves the gap in front of slot index.
func (s *tokenStore) moveGap(index int) {
	if index == s.gapIndex {
		return
	}
	start := s.localOffset(index)
	if index > s.gapIndex {
		for i := s.gapIndex; i < index; i++ {
			if tok := s.slots[i].Token(); !tok.IsFlyweight() {
				tok.SetRawOffset(tok.RawOffset() - s.gapLength)
			}
		}
	} else {
		for i := index; i < s.gapIndex; i++ {
			if tok := s.slots[i].Token(); !tok.IsFlyweight() {
				tok.SetRawOffset(tok.RawOffset() + s.gapLength)
			}
		}
	}
	s.gapStart = start
	s.gapIndex = index
}

// replace splices the change into the store. Removed positioned tokens are
// detached with their final local offsets; added positioned tokens are
// attached to owner. diff is the length difference of the list text.
func (s *tokenStore) replace(change *TokenListChange, diff int, owner lexer.TokenOwner) (
	[]lexer.TokenOrEmbedding, []int, []lexer.State,
) {
	index := change.Index()
	matchIndex := change.MatchIndex()
	s.moveGap(matchIndex)

	removedCount := matchIndex - index
	removed := make([]lexer.TokenOrEmbedding, removedCount)
	removedLookaheads := make([]int, removedCount)
	removedStates := make([]lexer.State, removedCount)
	copy(removedLookaheads, s.lookaheads[index:matchIndex])
	copy(removedStates, s.states[index:matchIndex])
	for i := index; i < matchIndex; i++ {
		toe := s.slots[i]
		if tok := toe.Token(); !tok.IsFlyweight() {
			tok.Detach(s.rawToLocal(tok.RawOffset()))
		}
		removed[i-index] = toe
	}

	addedCount := change.AddedTokenOrEmbeddingsCount()
	slots := make([]lexer.TokenOrEmbedding, 0, len(s.slots)-removedCount+addedCount)
	lookaheads := make([]int, 0, cap(slots))
	states := make([]lexer.State, 0, cap(slots))

	slots = append(slots, s.slots[:index]...)
	lookaheads = append(lookaheads, s.lookaheads[:index]...)
	states = append(states, s.states[:index]...)

	offset := change.Offset()
	for i := range addedCount {
		toe := change.AddedTokenOrEmbedding(i)
		tok := toe.Token()
		tok.Attach(owner, offset)
		offset += tok.Length()

		slots = append(slots, toe)
		lookaheads = append(lookaheads, change.AddedLookahead(i))
		states = append(states, change.AddedState(i))
	}

	slots = append(slots, s.slots[matchIndex:]...)
	lookaheads = append(lookaheads, s.lookaheads[matchIndex:]...)
	states = append(states, s.states[matchIndex:]...)

	s.slots = slots
	s.lookaheads = lookaheads
	s.states = states

	s.gapIndex = index + addedCount
	s.gapStart += diff
	s.gapLength -= diff
	s.modCount++

	return removed, removedLookaheads, removedStates
}

// resizeBranch replaces the branch token of the embedding at index with tok,
// whose length differs by diff, and shifts the following slots.
func (s *tokenStore) resizeBranch(index int, tok *lexer.Token, lookahead int, state lexer.State, diff int,
	owner lexer.TokenOwner,
) {
	s.moveGap(index + 1)
	tok.Attach(owner, s.localOffset(index))
	s.lookaheads[index] = lookahead
	s.states[index] = state
	s.gapStart += diff
	s.gapLength -= diff
	s.modCount++
}

func (s *tokenStore) setSlot(index int, toe lexer.TokenOrEmbedding) {
	s.slots[index] = toe
	s.modCount++
}

// endState returns the state after the last slot, or start when empty.
func (s *tokenStore) endState(start lexer.State) lexer.State {
	return s.stateBefore(len(s.slots), start)
}
