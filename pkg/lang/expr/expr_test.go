package expr_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/inclex/pkg/lang/expr"
	"github.com/yaklabco/inclex/pkg/lexer"
)

// lex runs a fresh lexer over src and returns "NAME text" per token with
// the final lexer state.
func lex(t *testing.T, state lexer.State, src string) ([]string, lexer.State) {
	t.Helper()

	lang := expr.New()
	in := lexer.NewInput(lexer.StringText(src), 0, len(src), lang.Flyweights(), 0)
	lx := lang.NewLexer(state)

	var out []string
	pos := 0
	for {
		tok := lx.NextToken(in)
		if tok == nil {
			break
		}
		out = append(out, fmt.Sprintf("%s %q", lang.TokenName(tok.ID()), src[pos:pos+tok.Length()]))
		pos += tok.Length()
	}
	require.Equal(t, len(src), pos, "tokens must cover the input")
	return out, lx.State()
}

func TestLexer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		state     lexer.State
		src       string
		want      []string
		wantState lexer.State
	}{
		{
			name: "expression",
			src:  "ab + 12",
			want: []string{`IDENTIFIER "ab"`, `WHITESPACE " "`, `OPERATOR "+"`, `WHITESPACE " "`, `NUMBER "12"`},
		},
		{
			name: "division and underscores",
			src:  "x_1/y",
			want: []string{`IDENTIFIER "x_1"`, `OPERATOR "/"`, `IDENTIFIER "y"`},
		},
		{
			name: "whitespace run",
			src:  "a  \tb",
			want: []string{`IDENTIFIER "a"`, `WHITESPACE "  \t"`, `IDENTIFIER "b"`},
		},
		{
			name: "closed comment",
			src:  "/* c */z",
			want: []string{`COMMENT "/* c */"`, `IDENTIFIER "z"`},
		},
		{
			name:      "unterminated comment",
			src:       "1 /* abc",
			want:      []string{`NUMBER "1"`, `WHITESPACE " "`, `COMMENT "/* abc"`},
			wantState: expr.StateInComment,
		},
		{
			name:      "unterminated comment ending in star",
			src:       "/* ab*",
			want:      []string{`COMMENT "/* ab*"`},
			wantState: expr.StateInCommentStar,
		},
		{
			name:  "resume inside comment",
			state: expr.StateInComment,
			src:   "a*/b",
			want:  []string{`COMMENT "a*/"`, `IDENTIFIER "b"`},
		},
		{
			name:  "resume after comment star",
			state: expr.StateInCommentStar,
			src:   "/x",
			want:  []string{`COMMENT "/"`, `IDENTIFIER "x"`},
		},
		{
			name: "number then identifier",
			src:  "12ab",
			want: []string{`NUMBER "12"`, `IDENTIFIER "ab"`},
		},
		{
			name: "unknown byte",
			src:  "a#",
			want: []string{`IDENTIFIER "a"`, `ERROR "#"`},
		},
		{
			name: "empty",
			src:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, state := lex(t, tt.state, tt.src)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantState, state)
		})
	}
}

func TestLexer_Flyweights(t *testing.T) {
	t.Parallel()

	lang := expr.New()
	src := "a+b+c  d"
	in := lexer.NewInput(lexer.StringText(src), 0, len(src), lang.Flyweights(), 0)
	lx := lang.NewLexer(expr.StateDefault)

	var toks []*lexer.Token
	for tok := lx.NextToken(in); tok != nil; tok = lx.NextToken(in) {
		toks = append(toks, tok)
	}
	require.Len(t, toks, 7)
	assert.True(t, toks[1].IsFlyweight())
	assert.Same(t, toks[1], toks[3], "operators share one flyweight instance")
	assert.False(t, toks[0].IsFlyweight())
	assert.False(t, toks[5].IsFlyweight(), "whitespace runs are positioned")
}

func TestLanguage(t *testing.T) {
	t.Parallel()

	lang := expr.New()
	assert.Equal(t, expr.Name, lang.Name())
	assert.Equal(t, "OPERATOR", lang.TokenName(expr.Operator))
	assert.Equal(t, "UNKNOWN", lang.TokenName(99))
	assert.Nil(t, lang.Embedding(lexer.NewToken(expr.Identifier, 1), lexer.StringText("a")))
	assert.NotNil(t, lang.Flyweights())
}
