// Package lexer defines the token model shared by every language and token list:
// read-only text views, tokens (flyweight and positioned), languages with
// restartable lexers, and the lexer input cursor that tracks lookahead.
package lexer

// Text is a read-only byte view of document content.
// Offsets are byte offsets.
type Text interface {
	// Len returns the number of bytes in the text.
	Len() int

	// At returns the byte at index i. Callers must keep i in [0, Len()).
	At(i int) byte
}

// StringText adapts a string to Text.
type StringText string

// Len implements Text.
func (s StringText) Len() int { return len(s) }

// At implements Text.
func (s StringText) At(i int) byte { return s[i] }

// BytesText adapts a byte slice to Text. The slice must not be mutated
// while the view is in use.
type BytesText []byte

// Len implements Text.
func (b BytesText) Len() int { return len(b) }

// At implements Text.
func (b BytesText) At(i int) byte { return b[i] }

// subText is a window [start, end) of another text.
type subText struct {
	base  Text
	start int
	end   int
}

func (s subText) Len() int { return s.end - s.start }

func (s subText) At(i int) byte { return s.base.At(s.start + i) }

// SubText returns a view of base restricted to [start, end).
// Index 0 of the returned view maps to start in base.
func SubText(base Text, start, end int) Text {
	if start == 0 && end == base.Len() {
		return base
	}
	if inner, ok := base.(subText); ok {
		return subText{base: inner.base, start: inner.start + start, end: inner.start + end}
	}
	return subText{base: base, start: start, end: end}
}

// TextString materializes the bytes of t in [start, end) as a string.
func TextString(t Text, start, end int) string {
	if start >= end {
		return ""
	}
	switch v := t.(type) {
	case StringText:
		return string(v[start:end])
	case BytesText:
		return string(v[start:end])
	case subText:
		return TextString(v.base, v.start+start, v.start+end)
	}

	buf := make([]byte, end-start)
	for i := range buf {
		buf[i] = t.At(start + i)
	}
	return string(buf)
}
