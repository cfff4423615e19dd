package inc

import (
	"fmt"
	"strings"

	"github.com/yaklabco/inclex/pkg/lexer"
)

// DumpLines renders list and its embedded lists as one line per token:
// language, token name, offset+length, lookahead, state and quoted text.
// Lists reporting absolute offsets render the same for an incrementally
// updated hierarchy and a fresh lex of the same text.
func DumpLines(list lexer.TokenList, text lexer.Text) []string {
	return DumpDepth(list, text, -1)
}

// DumpDepth is DumpLines descending at most maxDepth embedding levels; a
// negative maxDepth means all of them.
func DumpDepth(list lexer.TokenList, text lexer.Text, maxDepth int) []string {
	var lines []string
	dump(&lines, list, text, 0, maxDepth)
	return lines
}

func dump(lines *[]string, list lexer.TokenList, text lexer.Text, depth, maxDepth int) {
	lang := list.LanguagePath().Inner()
	indent := strings.Repeat("  ", depth)
	for i := range list.TokenCount() {
		toe := list.TokenOrEmbedding(i)
		tok := toe.Token()
		off := list.TokenOffset(i)
		*lines = append(*lines, fmt.Sprintf("%s%s %s %d+%d la=%d st=%d %q",
			indent, lang.Name(), lang.TokenName(tok.ID()), off, tok.Length(),
			list.Lookahead(i), list.State(i), lexer.TextString(text, off, off+tok.Length())))

		if embedded := toe.EmbeddedTokenList(); embedded != nil && (maxDepth < 0 || depth < maxDepth) {
			dump(lines, embedded, text, depth+1, maxDepth)
		}
	}
}

// FullDump lexes text from scratch with language and returns its dump.
func FullDump(text lexer.Text, language lexer.Language, maxFlySequence int) ([]string, error) {
	h := NewTokenHierarchy(text, language, Options{MaxFlySequenceLength: maxFlySequence})
	root, err := h.TokenList()
	if err != nil {
		return nil, err
	}
	return DumpLines(root, text), nil
}
