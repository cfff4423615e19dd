package markup_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/inclex/pkg/lang/expr"
	"github.com/yaklabco/inclex/pkg/lang/markup"
	"github.com/yaklabco/inclex/pkg/lexer"
)

func lex(t *testing.T, src string) ([]string, lexer.State) {
	t.Helper()

	lang := markup.New(expr.New())
	in := lexer.NewInput(lexer.StringText(src), 0, len(src), lang.Flyweights(), 0)
	lx := lang.NewLexer(markup.StateText)

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
		src       string
		want      []string
		wantState lexer.State
	}{
		{
			name: "element with attribute",
			src:  `<p class="x">hi</p>`,
			want: []string{
				`TAG_OPEN "<p"`, `WHITESPACE " "`, `ATTR_NAME "class"`, `EQUALS "="`,
				`VALUE "\"x\""`, `TAG_CLOSE ">"`, `TEXT "hi"`, `TAG_OPEN "</p"`, `TAG_CLOSE ">"`,
			},
		},
		{
			name: "self closing",
			src:  `<br/>`,
			want: []string{`TAG_OPEN "<br"`, `TAG_CLOSE "/>"`},
		},
		{
			name: "script body",
			src:  `<script>a<b</script>`,
			want: []string{
				`TAG_OPEN "<script"`, `TAG_CLOSE ">"`, `SCRIPT "a<b"`, `TAG_OPEN "</script"`, `TAG_CLOSE ">"`,
			},
		},
		{
			name: "empty script body",
			src:  `<script></script>`,
			want: []string{`TAG_OPEN "<script"`, `TAG_CLOSE ">"`, `TAG_OPEN "</script"`, `TAG_CLOSE ">"`},
		},
		{
			name:      "open script tag",
			src:       `<script>`,
			want:      []string{`TAG_OPEN "<script"`, `TAG_CLOSE ">"`},
			wantState: markup.StateScriptBody,
		},
		{
			name: "unterminated value",
			src:  `<a x='1>`,
			want: []string{`TAG_OPEN "<a"`, `WHITESPACE " "`, `ATTR_NAME "x"`, `EQUALS "="`, `VALUE "'1"`, `TAG_CLOSE ">"`},
		},
		{
			name:      "error inside tag",
			src:       `<a @`,
			want:      []string{`TAG_OPEN "<a"`, `WHITESPACE " "`, `ERROR "@"`},
			wantState: markup.StateInTag,
		},
		{
			name: "text only",
			src:  "plain text",
			want: []string{`TEXT "plain text"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, state := lex(t, tt.src)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantState, state)
		})
	}
}

func TestLanguage_Embedding(t *testing.T) {
	t.Parallel()

	script := expr.New()
	lang := markup.New(script)

	closed := lang.Embedding(lexer.NewToken(markup.Value, 3), lexer.StringText(`"x"`))
	require.NotNil(t, closed)
	assert.Same(t, script, closed.Language)
	assert.Equal(t, 1, closed.StartSkipLength)
	assert.Equal(t, 1, closed.EndSkipLength)
	assert.False(t, closed.JoinSections)

	open := lang.Embedding(lexer.NewToken(markup.Value, 2), lexer.StringText(`"x`))
	require.NotNil(t, open)
	assert.Equal(t, 1, open.StartSkipLength)
	assert.Zero(t, open.EndSkipLength)

	body := lang.Embedding(lexer.NewToken(markup.Script, 3), lexer.StringText("a+b"))
	require.NotNil(t, body)
	assert.True(t, body.JoinSections)

	assert.Nil(t, lang.Embedding(lexer.NewToken(markup.Text, 2), lexer.StringText("hi")))
	assert.Nil(t, markup.New(nil).Embedding(lexer.NewToken(markup.Script, 1), lexer.StringText("a")))
	assert.Equal(t, "UNKNOWN", lang.TokenName(42))
	assert.Equal(t, markup.Name, lang.Name())
}
