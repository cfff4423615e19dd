// Package expr implements a small expression language: identifiers,
// numbers, single-character operators and block comments.
package expr

import (
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/inclex/pkg/lexer"
)

// Token kinds.
const (
	Identifier lexer.TokenID = iota
	Number
	Whitespace
	Operator
	Comment
	Error
)

var tokenNames = [...]string{
	Identifier: "IDENTIFIER",
	Number:     "NUMBER",
	Whitespace: "WHITESPACE",
	Operator:   "OPERATOR",
	Comment:    "COMMENT",
	Error:      "ERROR",
}

// Lexer states.
const (
	StateDefault lexer.State = iota

	// StateInComment is the state after an unterminated block comment.
	StateInComment

	// StateInCommentStar is StateInComment where the last byte was '*'.
	StateInCommentStar
)

// Name is the registry name of the language.
const Name = "expr"

const operators = "+-*=;(),%<>!&|^~?:.[]{}"

// Language is the expr language. Use New to create one.
type Language struct {
	flyweights *lexer.FlyweightCache
}

var _ lexer.Language = (*Language)(nil)

// New creates the expr language.
func New() *Language {
	return &Language{flyweights: lexer.NewFlyweightCache()}
}

func (l *Language) Name() string { return Name }

func (l *Language) TokenName(id lexer.TokenID) string {
	if int(id) < len(tokenNames) {
		return tokenNames[id]
	}
	return "UNKNOWN"
}

func (l *Language) NewLexer(state lexer.State) lexer.Lexer { return &exprLexer{state: state} }

// Embedding returns nil; expr hosts no embedded languages.
func (l *Language) Embedding(*lexer.Token, lexer.Text) *lexer.EmbeddingSpec { return nil }

func (l *Language) Flyweights() *lexer.FlyweightCache { return l.flyweights }

type exprLexer struct {
	state lexer.State
}

func (x *exprLexer) State() lexer.State { return x.state }

func (x *exprLexer) NextToken(in *lexer.Input) *lexer.Token {
	c := in.Read()
	if c == lexer.EOF {
		in.Backup(1)
		return nil
	}

	switch x.state {
	case StateInComment, StateInCommentStar:
		prev := 0
		if x.state == StateInCommentStar {
			prev = '*'
		}
		in.Backup(1)
		return x.comment(in, prev)
	}

	b := byte(c)
	switch {
	case c == '/':
		if in.Read() == '*' {
			return x.comment(in, 0)
		}
		in.Backup(1)
		return in.FlyweightToken(Operator, "/")

	case isIdentStart(b):
		for {
			next := in.Read()
			if next == lexer.EOF || !isIdentPart(byte(next)) {
				break
			}
		}
		in.Backup(1)
		return in.Token(Identifier)

	case util.IsNumeric(b):
		for {
			next := in.Read()
			if next == lexer.EOF || !util.IsNumeric(byte(next)) {
				break
			}
		}
		in.Backup(1)
		return in.Token(Number)

	case util.IsSpace(b):
		n := 1
		for {
			next := in.Read()
			if next == lexer.EOF || !util.IsSpace(byte(next)) {
				break
			}
			n++
		}
		in.Backup(1)
		if n == 1 {
			return in.FlyweightToken(Whitespace, string(b))
		}
		return in.Token(Whitespace)

	case strings.IndexByte(operators, b) >= 0:
		return in.FlyweightToken(Operator, string(b))
	}

	return in.Token(Error)
}

// comment reads the rest of a block comment. prev is the byte preceding the
// cursor inside the comment, used to detect a closing "*/".
func (x *exprLexer) comment(in *lexer.Input, prev int) *lexer.Token {
	for {
		c := in.Read()
		switch {
		case c == lexer.EOF:
			in.Backup(1)
			x.state = StateInComment
			if prev == '*' {
				x.state = StateInCommentStar
			}
			return in.Token(Comment)
		case c == '/' && prev == '*':
			x.state = StateDefault
			return in.Token(Comment)
		}
		prev = c
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (util.IsAlphaNumeric(b) && !util.IsNumeric(b))
}

func isIdentPart(b byte) bool {
	return b == '_' || util.IsAlphaNumeric(b)
}
