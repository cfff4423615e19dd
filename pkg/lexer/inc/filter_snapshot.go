package inc

import "github.com/yaklabco/inclex/pkg/lexer"

// FilterSnapshotTokenList exposes a frozen token list in another coordinate
// space by adding a constant to every offset it reports.
type FilterSnapshotTokenList struct {
	delegate        lexer.TokenList
	tokenOffsetDiff int
}

var _ lexer.TokenList = (*FilterSnapshotTokenList)(nil)

// NewFilterSnapshotTokenList wraps delegate, shifting its offsets by diff.
func NewFilterSnapshotTokenList(delegate lexer.TokenList, diff int) *FilterSnapshotTokenList {
	return &FilterSnapshotTokenList{delegate: delegate, tokenOffsetDiff: diff}
}

// Delegate returns the wrapped list.
func (l *FilterSnapshotTokenList) Delegate() lexer.TokenList { return l.delegate }

// TokenOffsetDiff returns the offset shift.
func (l *FilterSnapshotTokenList) TokenOffsetDiff() int { return l.tokenOffsetDiff }

// LanguagePath implements lexer.TokenList.
func (l *FilterSnapshotTokenList) LanguagePath() lexer.LanguagePath {
	return l.delegate.LanguagePath()
}

// TokenCount implements lexer.TokenList.
func (l *FilterSnapshotTokenList) TokenCount() int { return l.delegate.TokenCount() }

// TokenOrEmbedding implements lexer.TokenList.
func (l *FilterSnapshotTokenList) TokenOrEmbedding(index int) lexer.TokenOrEmbedding {
	return l.delegate.TokenOrEmbedding(index)
}

// TokenOffset implements lexer.TokenList.
func (l *FilterSnapshotTokenList) TokenOffset(index int) int {
	return l.tokenOffsetDiff + l.delegate.TokenOffset(index)
}

// Lookahead implements lexer.TokenList.
func (l *FilterSnapshotTokenList) Lookahead(index int) int { return l.delegate.Lookahead(index) }

// State implements lexer.TokenList.
func (l *FilterSnapshotTokenList) State(index int) lexer.State { return l.delegate.State(index) }

// StartOffset implements lexer.TokenList.
func (l *FilterSnapshotTokenList) StartOffset() int {
	return l.tokenOffsetDiff + l.delegate.StartOffset()
}

// EndOffset implements lexer.TokenList.
func (l *FilterSnapshotTokenList) EndOffset() int {
	return l.tokenOffsetDiff + l.delegate.EndOffset()
}

// ModCount always reports ModCountImmutable; the delegate is never mutated.
func (l *FilterSnapshotTokenList) ModCount() int { return lexer.ModCountImmutable }

// RootTokenList implements lexer.TokenList.
func (l *FilterSnapshotTokenList) RootTokenList() lexer.TokenList {
	return l.delegate.RootTokenList()
}

// CharAt implements lexer.TokenList.
func (l *FilterSnapshotTokenList) CharAt(offset int) byte {
	return l.delegate.CharAt(offset - l.tokenOffsetDiff)
}

// SetTokenOrEmbedding implements lexer.TokenList.
func (l *FilterSnapshotTokenList) SetTokenOrEmbedding(index int, toe lexer.TokenOrEmbedding) {
	l.delegate.SetTokenOrEmbedding(index, toe)
}
