package lexer

// ModCountImmutable is the modification count reported by frozen lists.
// Consumers skip up-to-date checks for such lists.
const ModCountImmutable = -1

// TokenOrEmbedding is one slot of a token list: a plain token or a branch
// token with its embedded token list.
type TokenOrEmbedding interface {
	// Token returns the token occupying the slot.
	Token() *Token

	// EmbeddedTokenList returns the embedded list, or nil for a plain token.
	EmbeddedTokenList() TokenList
}

// TokenList is an ordered sequence of tokens of one language layer.
// Offsets returned by a list are in that list's coordinate space; live root
// and embedded lists report absolute document offsets.
type TokenList interface {
	LanguagePath() LanguagePath
	TokenCount() int
	TokenOrEmbedding(index int) TokenOrEmbedding
	TokenOffset(index int) int

	// Lookahead and State return the values recorded for the token at index.
	Lookahead(index int) int
	State(index int) State

	StartOffset() int
	EndOffset() int

	// ModCount changes whenever the list is mutated; ModCountImmutable for
	// frozen lists.
	ModCount() int

	// RootTokenList returns the outermost list of the hierarchy.
	RootTokenList() TokenList

	// CharAt returns the document byte at an absolute offset.
	CharAt(offset int) byte

	// SetTokenOrEmbedding replaces a slot, used when an embedding is attached
	// to an existing token.
	SetTokenOrEmbedding(index int, toe TokenOrEmbedding)
}

// TokenIndex returns the index of the token containing offset, or TokenCount
// when offset is at or past the end of the list.
func TokenIndex(list TokenList, offset int) int {
	lo, hi := 0, list.TokenCount()
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if list.TokenOffset(mid) <= offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return 0
	}
	idx := lo - 1
	if offset >= list.TokenOffset(idx)+list.TokenOrEmbedding(idx).Token().Length() {
		return list.TokenCount()
	}
	return idx
}
