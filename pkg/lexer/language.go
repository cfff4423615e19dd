package lexer

import "strings"

// Language describes one lexical language: its token kinds, a factory for
// restartable lexers, and which tokens host an embedded language.
type Language interface {
	// Name returns the registry name, e.g. "markup".
	Name() string

	// TokenName returns a human-readable name of a token kind.
	TokenName(id TokenID) string

	// NewLexer returns a lexer that resumes in the given state.
	NewLexer(state State) Lexer

	// Embedding returns the embedded language hosted by tok, or nil when tok
	// is not a branch token. text is the token's own text.
	Embedding(tok *Token, text Text) *EmbeddingSpec

	// Flyweights returns the language-wide flyweight token cache.
	Flyweights() *FlyweightCache
}

// Lexer produces tokens one at a time from an Input.
//
// Lexers must be deterministic: restarted at the same offset in the same
// state over the same text, they produce the same tokens.
type Lexer interface {
	// NextToken returns the next token, or nil at end of input.
	NextToken(in *Input) *Token

	// State returns the automaton state after the last returned token.
	State() State
}

// EmbeddingSpec describes the language embedded inside a branch token.
type EmbeddingSpec struct {
	Language Language

	// StartSkipLength and EndSkipLength trim the branch token text down to
	// the embedded content, e.g. the quotes around an attribute value.
	StartSkipLength int
	EndSkipLength   int

	// JoinSections makes all embedded lists of this language path lex as one
	// logical stream, so lexer state flows from one section into the next.
	JoinSections bool
}

// Equal reports whether two specs describe the same embedding.
func (s *EmbeddingSpec) Equal(other *EmbeddingSpec) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Language == other.Language &&
		s.StartSkipLength == other.StartSkipLength &&
		s.EndSkipLength == other.EndSkipLength &&
		s.JoinSections == other.JoinSections
}

// LanguagePath is the chain of languages from the root list down to a list,
// e.g. markup then expr for a script body.
type LanguagePath []Language

// NewLanguagePath returns a path holding only the root language.
func NewLanguagePath(root Language) LanguagePath {
	return LanguagePath{root}
}

// Embedded returns a new path with inner appended.
func (p LanguagePath) Embedded(inner Language) LanguagePath {
	out := make(LanguagePath, len(p)+1)
	copy(out, p)
	out[len(p)] = inner
	return out
}

// Inner returns the innermost language, or nil for an empty path.
func (p LanguagePath) Inner() Language {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// String joins language names with "/".
func (p LanguagePath) String() string {
	names := make([]string, len(p))
	for i, l := range p {
		names[i] = l.Name()
	}
	return strings.Join(names, "/")
}

// Equal reports whether both paths hold the same languages.
func (p LanguagePath) Equal(other LanguagePath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
