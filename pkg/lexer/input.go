package lexer

import "fmt"

// EOF is returned by Input.Read past the end of the input window.
const EOF = -1

// DefaultMaxFlySequenceLength bounds consecutive flyweight tokens so that
// recovering a flyweight offset never scans far.
const DefaultMaxFlySequenceLength = 8

// Input is the character cursor a lexer reads from. It covers a window of a
// Text and remembers the furthest position read, which gives every produced
// token its lookahead. Reading EOF counts as reading one character.
type Input struct {
	text       Text
	end        int
	tokenStart int
	pos        int
	maxRead    int

	flyweights    *FlyweightCache
	maxFlySeq     int
	flySeq        int
	lastLookahead int
}

// NewInput creates a cursor over text[start:end].
// A nil cache disables flyweight tokens.
func NewInput(text Text, start, end int, flyweights *FlyweightCache, maxFlySequence int) *Input {
	if maxFlySequence <= 0 {
		maxFlySequence = DefaultMaxFlySequenceLength
	}
	return &Input{
		text:       text,
		end:        end,
		tokenStart: start,
		pos:        start,
		maxRead:    start,
		flyweights: flyweights,
		maxFlySeq:  maxFlySequence,
	}
}

// Read returns the next byte, or EOF when the window is exhausted.
func (in *Input) Read() int {
	c := EOF
	if in.pos < in.end {
		c = int(in.text.At(in.pos))
	}
	in.pos++
	if in.pos > in.maxRead {
		in.maxRead = in.pos
	}
	return c
}

// Backup moves the cursor back by n bytes within the current token.
func (in *Input) Backup(n int) {
	if n < 0 || n > in.pos-in.tokenStart {
		panic(fmt.Sprintf("lexer: backup(%d) exceeds read length %d", n, in.pos-in.tokenStart))
	}
	in.pos -= n
}

// ReadLength returns the number of bytes read for the current token.
func (in *Input) ReadLength() int { return in.pos - in.tokenStart }

// TokenStart returns the offset where the current token starts.
func (in *Input) TokenStart() int { return in.tokenStart }

// ReadText returns the bytes read so far for the current token.
func (in *Input) ReadText() string {
	end := in.pos
	if end > in.end {
		end = in.end
	}
	return TextString(in.text, in.tokenStart, end)
}

// Token finishes the current token as a positioned token of kind id.
func (in *Input) Token(id TokenID) *Token {
	tok := NewToken(id, in.finishLength())
	in.finish()
	in.flySeq = 0
	return tok
}

// FlyweightToken finishes the current token as the shared flyweight for text.
// A positioned token is produced instead once too many flyweight tokens
// followed each other, or when no cache is configured.
func (in *Input) FlyweightToken(id TokenID, text string) *Token {
	if in.flyweights == nil || in.flySeq >= in.maxFlySeq {
		return in.Token(id)
	}
	if in.ReadLength() != len(text) {
		panic(fmt.Sprintf("lexer: flyweight %q does not match read length %d", text, in.ReadLength()))
	}
	tok := in.flyweights.Get(id, text)
	in.finish()
	in.flySeq++
	return tok
}

// SetFlySequence sets how many flyweight tokens directly precede the cursor
// start. A lexer restarted in the middle of a list continues the bounded run
// of the tokens before it.
func (in *Input) SetFlySequence(n int) { in.flySeq = n }

// FlySequence returns how many flyweight tokens were produced since the last
// positioned token, including a run set with SetFlySequence.
func (in *Input) FlySequence() int { return in.flySeq }

// Lookahead returns how many bytes past the end of the last produced token
// the lexer examined before producing it.
func (in *Input) Lookahead() int { return in.lastLookahead }

// Offset returns the position where the next token starts.
func (in *Input) Offset() int { return in.tokenStart }

func (in *Input) finishLength() int {
	length := in.ReadLength()
	if length <= 0 {
		panic(fmt.Sprintf("lexer: zero-length token at offset %d", in.tokenStart))
	}
	if in.pos > in.end {
		panic(fmt.Sprintf("lexer: token at offset %d includes EOF", in.tokenStart))
	}
	return length
}

func (in *Input) finish() {
	in.lastLookahead = in.maxRead - in.pos
	in.tokenStart = in.pos
}
