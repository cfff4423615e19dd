// Package markup implements a small HTML-like markup language. Quoted
// attribute values and script bodies host an embedded language; all script
// bodies of a document lex as one joined stream.
package markup

import (
	"strings"

	"github.com/yaklabco/inclex/pkg/lexer"
)

// Token kinds.
const (
	Text lexer.TokenID = iota
	TagOpen
	TagClose
	AttrName
	Equals
	Value
	Whitespace
	Script
	Error
)

var tokenNames = [...]string{
	Text:       "TEXT",
	TagOpen:    "TAG_OPEN",
	TagClose:   "TAG_CLOSE",
	AttrName:   "ATTR_NAME",
	Equals:     "EQUALS",
	Value:      "VALUE",
	Whitespace: "WHITESPACE",
	Script:     "SCRIPT",
	Error:      "ERROR",
}

// Lexer states.
const (
	StateText lexer.State = iota
	StateInTag
	StateInScriptTag
	StateScriptBody
)

// Name is the registry name of the language.
const Name = "markup"

// Language is the markup language. Use New to create one.
type Language struct {
	flyweights *lexer.FlyweightCache
	valueSpec  *lexer.EmbeddingSpec
	openSpec   *lexer.EmbeddingSpec
	scriptSpec *lexer.EmbeddingSpec
}

var _ lexer.Language = (*Language)(nil)

// New creates the markup language embedding script in attribute values and
// script bodies. A nil script language disables embedding.
func New(script lexer.Language) *Language {
	l := &Language{flyweights: lexer.NewFlyweightCache()}
	if script != nil {
		l.valueSpec = &lexer.EmbeddingSpec{Language: script, StartSkipLength: 1, EndSkipLength: 1}
		l.openSpec = &lexer.EmbeddingSpec{Language: script, StartSkipLength: 1}
		l.scriptSpec = &lexer.EmbeddingSpec{Language: script, JoinSections: true}
	}
	return l
}

func (l *Language) Name() string { return Name }

func (l *Language) TokenName(id lexer.TokenID) string {
	if int(id) < len(tokenNames) {
		return tokenNames[id]
	}
	return "UNKNOWN"
}

func (l *Language) NewLexer(state lexer.State) lexer.Lexer { return &markupLexer{state: state} }

// Embedding returns the script embedding of a value or script token. An
// unterminated value skips only its opening quote.
func (l *Language) Embedding(tok *lexer.Token, text lexer.Text) *lexer.EmbeddingSpec {
	switch tok.ID() {
	case Script:
		return l.scriptSpec
	case Value:
		n := text.Len()
		if n >= 2 && text.At(n-1) == text.At(0) {
			return l.valueSpec
		}
		return l.openSpec
	}
	return nil
}

func (l *Language) Flyweights() *lexer.FlyweightCache { return l.flyweights }

type markupLexer struct {
	state lexer.State
}

func (m *markupLexer) State() lexer.State { return m.state }

func (m *markupLexer) NextToken(in *lexer.Input) *lexer.Token {
	c := in.Read()
	if c == lexer.EOF {
		in.Backup(1)
		return nil
	}

	switch m.state {
	case StateInTag, StateInScriptTag:
		return m.inTag(in, c)
	case StateScriptBody:
		return m.scriptBody(in)
	}

	if c == '<' {
		return m.tag(in)
	}
	for {
		next := in.Read()
		if next == lexer.EOF || next == '<' {
			break
		}
	}
	in.Backup(1)
	return in.Token(Text)
}

// tag lexes "<name" or "</name" after the '<' was read.
func (m *markupLexer) tag(in *lexer.Input) *lexer.Token {
	closing := in.Read() == '/'
	if !closing {
		in.Backup(1)
	}
	for {
		next := in.Read()
		if next == lexer.EOF || !isNameByte(next) {
			break
		}
	}
	in.Backup(1)

	name := strings.TrimLeft(in.ReadText(), "</")
	m.state = StateInTag
	if !closing && strings.EqualFold(name, "script") {
		m.state = StateInScriptTag
	}
	return in.Token(TagOpen)
}

func (m *markupLexer) inTag(in *lexer.Input, c int) *lexer.Token {
	switch {
	case c == '>':
		m.closeTag()
		return in.FlyweightToken(TagClose, ">")

	case c == '/':
		if in.Read() == '>' {
			m.state = StateText
			return in.FlyweightToken(TagClose, "/>")
		}
		in.Backup(1)
		return in.Token(Error)

	case c == '=':
		return in.FlyweightToken(Equals, "=")

	case c == '"' || c == '\'':
		for {
			next := in.Read()
			if next == c {
				return in.Token(Value)
			}
			if next == lexer.EOF || next == '>' || next == '<' {
				in.Backup(1)
				return in.Token(Value)
			}
		}

	case c == '<':
		return m.tag(in)

	case isSpace(c):
		n := 1
		for isSpace(in.Read()) {
			n++
		}
		in.Backup(1)
		if n == 1 {
			return in.FlyweightToken(Whitespace, string(byte(c)))
		}
		return in.Token(Whitespace)

	case isNameByte(c):
		for isNameByte(in.Read()) {
		}
		in.Backup(1)
		return in.Token(AttrName)
	}

	return in.Token(Error)
}

func (m *markupLexer) closeTag() {
	if m.state == StateInScriptTag {
		m.state = StateScriptBody
		return
	}
	m.state = StateText
}

// scriptBody lexes raw script up to the next "</" after its first byte was
// read.
func (m *markupLexer) scriptBody(in *lexer.Input) *lexer.Token {
	in.Backup(1)
	for {
		c := in.Read()
		if c == lexer.EOF {
			in.Backup(1)
			break
		}
		if c == '<' {
			if in.Read() == '/' {
				in.Backup(2)
				break
			}
			in.Backup(1)
		}
	}

	m.state = StateText
	if in.ReadLength() == 0 {
		// Empty body: the closing tag starts right here.
		in.Read()
		return m.tag(in)
	}
	return in.Token(Script)
}

func isNameByte(c int) bool {
	return c == '-' || c == '_' || c == ':' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isSpace(c int) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
