package inc

import (
	"sort"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/inclex/pkg/lexer"
)

// modification is an edit in the coordinates of one token list.
type modification struct {
	offset   int
	removed  int
	inserted int
}

func (m modification) diff() int { return m.inserted - m.removed }

// joinWork collects the section changes of one joined language path.
type joinWork struct {
	tll         *TokenListList
	update      *TokenListListUpdate
	modIndexSet bool
	// continueFrom is the first existing section whose start state may be
	// stale after an in-place relex of the section before it, or -1.
	continueFrom int
}

// updater performs one hierarchy update or build.
type updater struct {
	h      *TokenHierarchy
	info   *TokenHierarchyEventInfo
	logger *log.Logger
	maxFly int

	joins map[string]*joinWork
	top   *TokenListChange
	err   error
}

func newUpdater(h *TokenHierarchy, info *TokenHierarchyEventInfo, logger *log.Logger) *updater {
	return &updater{
		h:      h,
		info:   info,
		logger: logger,
		maxFly: h.maxFlySequence,
		joins:  make(map[string]*joinWork),
	}
}

// run relexes the root list for the edit and every list nested under it.
func (u *updater) run() (*TokenListChange, error) {
	mod := modification{
		offset:   u.info.ModOffset(),
		removed:  u.info.RemovedLength(),
		inserted: u.info.InsertedLength(),
	}

	change, err := u.updateList(u.h.root, mod)
	if err != nil {
		return nil, err
	}
	u.top = change

	if err := u.finishJoins(); err != nil {
		return nil, err
	}
	return change, nil
}

// build lexes the whole root list from scratch.
func (u *updater) build() error {
	root := u.h.root
	change, err := lexWhole(root, lexer.InitialState, u.maxFly)
	if err != nil {
		return err
	}
	u.top = change
	u.apply(root, change, root.text().Len())
	if u.err != nil {
		return u.err
	}
	return u.finishJoins()
}

// updateList relexes list for an edit lying inside it.
func (u *updater) updateList(list mutableTokenList, mod modification) (*TokenListChange, error) {
	s := list.store()
	base := list.base()

	if mod.removed == 0 && mod.inserted == 0 {
		index := s.findIndex(mod.offset)
		change := NewTokenListChange(list)
		change.SetIndex(index, s.localOffset(index))
		change.SetRemovedTokensEmpty()
		change.setCoordinates(base, base, !list.isRoot())
		return change, nil
	}

	change, err := relex(list, mod, u.maxFly)
	if err != nil {
		return nil, err
	}

	if etl := boundsCandidate(list, change, mod); etl != nil {
		return u.updateBounds(list, change, etl, mod)
	}

	change.setCoordinates(base, base, !list.isRoot())
	u.apply(list, change, mod.diff())
	if u.err != nil {
		return nil, u.err
	}

	u.logger.Debug("relexed token list",
		"path", list.LanguagePath().String(),
		"index", change.Index(),
		"offset", base+change.Offset(),
		"removed", change.RemovedTokenCount(),
		"added", change.AddedTokenOrEmbeddingsCount())
	return change, nil
}

// relex computes the change of list for mod without applying it.
func relex(list mutableTokenList, mod modification, maxFly int) (*TokenListChange, error) {
	s := list.store()
	n := len(s.slots)
	diff := mod.diff()
	modEnd := mod.offset + mod.inserted
	removedEnd := mod.offset + mod.removed

	// Restart at the token covering the edit, or earlier when a preceding
	// token looked ahead into the edit.
	index := s.findIndex(mod.offset)
	for index > 0 {
		prev := index - 1
		prevEnd := s.localOffset(prev) + s.slots[prev].Token().Length()
		if prevEnd+s.lookaheads[prev] <= mod.offset {
			break
		}
		index--
	}

	change := NewTokenListChange(list)
	change.SetIndex(index, s.localOffset(index))

	text := list.text()
	textLen := text.Len()
	lang := list.language()
	lx := lang.NewLexer(s.stateBefore(index, list.startState()))
	in := lexer.NewInput(text, change.Offset(), textLen, lang.Flyweights(), maxFly)
	in.SetFlySequence(s.flyRunBefore(index))
	pos := change.Offset()

	for {
		tok := lx.NextToken(in)
		if tok == nil {
			if pos != textLen {
				return nil, inconsistent("%s lexer stopped at %d before end %d",
					lang.Name(), pos, textLen)
			}
			for change.MatchIndex() < n {
				change.IncreaseMatchIndex()
			}
			if change.MatchOffset()+diff != textLen {
				return nil, inconsistent("old list end %d does not map to new end %d",
					change.MatchOffset(), textLen)
			}
			backOutTrailing(s, change, diff, modEnd, removedEnd)
			return change, nil
		}

		lookahead, state := in.Lookahead(), lx.State()
		end := pos + tok.Length()

		if change.AddedTokenOrEmbeddingsCount() == 0 && change.MatchIndex() < n &&
			end <= mod.offset && s.sameToken(change.MatchIndex(), tok, lookahead, state) {
			change.SkipUnchanged()
			pos = end
			continue
		}

		change.AddToken(tok, lookahead, state)
		pos = end

		// Consume old tokens starting before the lexer position, mapped back
		// to old coordinates.
		target := pos
		if pos > mod.offset {
			if pos >= modEnd {
				target = pos - diff
			} else {
				target = removedEnd
			}
		}
		for change.MatchIndex() < n && change.MatchOffset() < target {
			change.IncreaseMatchIndex()
		}

		if change.MatchIndex() < n && pos >= modEnd &&
			change.MatchOffset() == pos-diff && change.MatchOffset() > removedEnd &&
			state == s.states[change.MatchIndex()-1] &&
			keepsFlyRun(s, change.MatchIndex(), in.FlySequence(), maxFly) {
			return change, nil
		}
	}
}

// keepsFlyRun reports whether the old tokens from index on get the same
// flyweight choices when the lexer arrives there after run flyweights. The
// kept run must stay within maxFly, and a run that ended at the bound may
// have forced its successor to be positioned, so it only matches an equal
// run.
func keepsFlyRun(s *tokenStore, index, run, maxFly int) bool {
	oldRun := s.flyRunBefore(index)
	if run == oldRun {
		return true
	}
	kept := s.flyRunFrom(index)
	return oldRun+kept < maxFly && run+kept <= maxFly
}

// backOutTrailing keeps old tokens at the end of the list that the relexer
// reproduced identically after the edit.
func backOutTrailing(s *tokenStore, change *TokenListChange, diff, modEnd, removedEnd int) {
	for change.AddedTokenOrEmbeddingsCount() > 0 && change.RemovedTokenCount() > 0 {
		last := change.AddedTokenOrEmbeddingsCount() - 1
		tok := change.AddedTokenOrEmbedding(last).Token()
		old := change.MatchIndex() - 1
		oldTok := s.slots[old].Token()

		newStart := change.AddedEndOffset() - tok.Length()
		oldStart := change.MatchOffset() - oldTok.Length()
		if newStart < modEnd || oldStart < removedEnd || newStart-diff != oldStart ||
			!s.sameToken(old, tok, change.AddedLookahead(last), change.AddedState(last)) {
			return
		}
		change.RemoveLastAddedToken()
	}
}

// lexWhole lexes the entire content of list from state into a change that
// replaces every old slot.
func lexWhole(list mutableTokenList, state lexer.State, maxFly int) (*TokenListChange, error) {
	s := list.store()
	change := NewTokenListChange(list)
	change.SetIndex(0, 0)

	text := list.text()
	lang := list.language()
	lx := lang.NewLexer(state)
	in := lexer.NewInput(text, 0, text.Len(), lang.Flyweights(), maxFly)
	pos := 0
	for {
		tok := lx.NextToken(in)
		if tok == nil {
			break
		}
		change.AddToken(tok, in.Lookahead(), lx.State())
		pos += tok.Length()
	}
	if pos != text.Len() {
		return nil, inconsistent("%s lexer stopped at %d before end %d", lang.Name(), pos, text.Len())
	}
	for change.MatchIndex() < len(s.slots) {
		change.IncreaseMatchIndex()
	}
	return change, nil
}

// boundsCandidate returns the embedded list whose branch token the change
// merely resizes, when the edit lies inside that list's content.
func boundsCandidate(list mutableTokenList, change *TokenListChange, mod modification) *EmbeddedTokenList {
	if change.RemovedTokenCount() != 1 || change.AddedTokenOrEmbeddingsCount() != 1 {
		return nil
	}
	etl, ok := list.store().slots[change.Index()].(*EmbeddedTokenList)
	if !ok {
		return nil
	}

	newTok := change.AddedTokenOrEmbedding(0).Token()
	oldTok := etl.branch
	if newTok.IsFlyweight() || newTok.ID() != oldTok.ID() || newTok.Length() != oldTok.Length()+mod.diff() {
		return nil
	}

	contentStart := change.Offset() + etl.spec.StartSkipLength
	contentEnd := change.Offset() + oldTok.Length() - etl.spec.EndSkipLength
	if mod.offset < contentStart || mod.offset+mod.removed > contentEnd {
		return nil
	}

	text := lexer.SubText(list.text(), change.Offset(), change.Offset()+newTok.Length())
	if !list.language().Embedding(newTok, text).Equal(etl.spec) {
		return nil
	}
	return etl
}

// updateBounds resizes the branch token of etl in place and relexes the
// embedded list for the edit.
func (u *updater) updateBounds(list mutableTokenList, change *TokenListChange, etl *EmbeddedTokenList,
	mod modification,
) (*TokenListChange, error) {
	index := change.Index()
	contentStart := change.Offset() + etl.spec.StartSkipLength
	newTok := change.AddedTokenOrEmbedding(0).Token()

	list.store().resizeBranch(index, newTok, change.AddedLookahead(0), change.AddedState(0), mod.diff(), list)
	etl.branch = newTok

	nested, err := u.updateList(etl, modification{
		offset:   mod.offset - contentStart,
		removed:  mod.removed,
		inserted: mod.inserted,
	})
	if err != nil {
		return nil, err
	}

	bounds := NewTokenListChange(list)
	bounds.SetIndex(index, change.Offset())
	bounds.SetRemovedTokensEmpty()
	bounds.MarkBoundsChange()
	bounds.setCoordinates(list.base(), list.base(), !list.isRoot())
	bounds.AddEmbeddedChange(nested.ChangeInfo())

	if etl.joinList != nil {
		u.continueJoin(etl)
	}

	u.logger.Debug("resized embedding bounds",
		"path", etl.LanguagePath().String(),
		"offset", etl.StartOffset(),
		"diff", mod.diff())
	return bounds, nil
}

// apply splices change into list and creates embeddings for added tokens.
func (u *updater) apply(list mutableTokenList, change *TokenListChange, diff int) {
	s := list.store()
	for i := change.Index(); i < change.MatchIndex(); i++ {
		u.collectRemoved(s.slots[i])
	}

	slots, lookaheads, states := s.replace(change, diff, list)
	change.SetRemovedTokens(slots, lookaheads, states)

	u.embed(list, change.Index(), change.Index()+change.AddedTokenOrEmbeddingsCount())
	u.widen(change)
}

// embed attaches embedded lists to branch tokens in slots [from, to).
// Non-joined lists are lexed right away; joined ones are lexed when the
// section update of their path is processed.
func (u *updater) embed(list mutableTokenList, from, to int) {
	s := list.store()
	lang := list.language()
	for i := from; i < to; i++ {
		tok := s.slots[i].Token()
		off := s.localOffset(i)
		spec := lang.Embedding(tok, lexer.SubText(list.text(), off, off+tok.Length()))
		if spec == nil {
			continue
		}

		etl := newEmbeddedTokenList(u.h, list, tok, spec)
		s.slots[i] = etl
		if spec.JoinSections {
			u.collectAdded(etl)
			continue
		}

		change, err := lexWhole(etl, lexer.InitialState, u.maxFly)
		if err != nil {
			u.fail(err)
			return
		}
		change.setCoordinates(etl.base(), etl.base(), true)
		u.apply(etl, change, etl.text().Len())
	}
}

func (u *updater) widen(change *TokenListChange) {
	if u.info == nil || change.IsEmpty() {
		return
	}
	u.info.SetMinAffectedStartOffset(change.base + change.Offset())
	u.info.SetMaxAffectedEndOffset(change.base + change.AddedEndOffset())
}

func (u *updater) fail(err error) {
	if u.err == nil {
		u.err = err
	}
}

func (u *updater) work(path lexer.LanguagePath) *joinWork {
	key := path.String()
	if w, ok := u.joins[key]; ok {
		return w
	}
	tll := u.h.joins[key]
	if tll == nil {
		tll = newTokenListList(u.h, path)
		u.h.joins[key] = tll
	}
	w := &joinWork{tll: tll, update: NewTokenListListUpdate(tll, 0), continueFrom: -1}
	u.joins[key] = w
	return w
}

// collectRemoved records joined sections nested in a removed slot.
func (u *updater) collectRemoved(toe lexer.TokenOrEmbedding) {
	etl, ok := toe.(*EmbeddedTokenList)
	if !ok {
		return
	}
	if etl.joinList != nil {
		w := u.work(etl.path)
		idx := w.tll.indexOf(etl)
		switch {
		case idx < 0:
			u.fail(inconsistent("removed section of %s not found", etl.path))
		case !w.modIndexSet:
			w.update.ModIndex = idx
			w.update.RemovedCount = 1
			w.modIndexSet = true
		case idx == w.update.ModIndex+w.update.RemovedCount:
			w.update.RemovedCount++
		default:
			u.fail(inconsistent("removed sections of %s are not contiguous", etl.path))
		}
	}
	for _, inner := range etl.slots {
		u.collectRemoved(inner)
	}
}

// collectAdded records a new joined section.
func (u *updater) collectAdded(etl *EmbeddedTokenList) {
	w := u.work(etl.path)
	w.update.Added = append(w.update.Added, etl)
}

// continueJoin records that the section after etl may need relexing because
// etl was relexed in place.
func (u *updater) continueJoin(etl *EmbeddedTokenList) {
	w := u.work(etl.path)
	w.continueFrom = w.tll.indexOf(etl) + 1
}

// finishJoins relexes joined sections for every path touched by the update.
func (u *updater) finishJoins() error {
	if u.err != nil {
		return u.err
	}

	keys := make([]string, 0, len(u.joins))
	for key := range u.joins {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := u.finishJoin(u.joins[key]); err != nil {
			return err
		}
	}
	return u.err
}

func (u *updater) finishJoin(w *joinWork) error {
	update := w.update
	if !w.modIndexSet {
		switch {
		case len(update.Added) > 0:
			update.ModIndex = w.tll.insertionIndex(update.Added[0].StartOffset())
		case w.continueFrom >= 0:
			update.ModIndex = w.continueFrom
		default:
			return nil
		}
	}
	if w.continueFrom >= 0 && !update.IsEmpty() && w.continueFrom != update.ModIndex {
		return inconsistent("conflicting section updates for %s", w.tll.path)
	}

	op := NewMutableJoinLexerInputOperation(update, u.maxFly)
	for !op.Done() && !op.Converged() {
		added := op.IsAdded()
		etl, change, err := op.LexSection()
		if err != nil {
			return err
		}

		base := etl.base()
		removedBase := base
		if u.info != nil && !added {
			removedBase = base - u.info.DiffLength()
		}
		change.setCoordinates(base, removedBase, true)
		u.apply(etl, change, etl.text().Len()-etl.localOffset(len(etl.slots)))
		if u.err != nil {
			return u.err
		}

		if !added && u.top != nil {
			u.top.AddEmbeddedChange(change.ChangeInfo())
		}
	}

	update.Apply()
	u.logger.Debug("relexed joined sections",
		"path", w.tll.path.String(),
		"modIndex", update.ModIndex,
		"removed", update.RemovedCount,
		"added", len(update.Added),
		"stoppedAt", op.TokenListIndex())
	return nil
}
