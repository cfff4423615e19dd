package inc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/inclex/pkg/lang/expr"
	"github.com/yaklabco/inclex/pkg/lang/markup"
	"github.com/yaklabco/inclex/pkg/lexer"
	"github.com/yaklabco/inclex/pkg/lexer/inc"
)

func TestSnapshot_AbsoluteOffsets(t *testing.T) {
	t.Parallel()

	text := lexer.StringText(`<a x="1+2">t</a>`)
	h := inc.NewTokenHierarchy(text, markup.New(expr.New()), inc.Options{})
	root, err := h.TokenList()
	require.NoError(t, err)

	snap, err := h.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, inc.DumpLines(root, text), inc.DumpLines(snap, text))
	assert.Same(t, snap, snap.RootTokenList())
	assert.Equal(t, text, snap.Text())
	assert.Equal(t, lexer.ModCountImmutable, snap.ModCount())
	assert.Equal(t, byte('<'), snap.CharAt(0))

	value := snap.TokenOrEmbedding(4)
	embedded := value.EmbeddedTokenList()
	require.NotNil(t, embedded)
	assert.Equal(t, "markup/expr", embedded.LanguagePath().String())
	assert.Equal(t, 6, embedded.StartOffset())
	assert.Equal(t, 9, embedded.EndOffset())
	assert.Equal(t, 6, embedded.TokenOffset(0))
	assert.Equal(t, 8, embedded.TokenOffset(2))
	assert.Equal(t, byte('+'), embedded.CharAt(7))

	assert.PanicsWithValue(t, inc.ErrImmutableTokenList, func() {
		snap.SetTokenOrEmbedding(0, lexer.NewToken(0, 1))
	})
}

func TestSnapshot_SurvivesUpdate(t *testing.T) {
	t.Parallel()

	text := lexer.StringText(`<a x="1+2">t</a>`)
	h := inc.NewTokenHierarchy(text, markup.New(expr.New()), inc.Options{})
	snap, err := h.Snapshot()
	require.NoError(t, err)
	before := inc.DumpLines(snap, text)

	newText, res := update(t, h, 6, 3, "42")
	require.NoError(t, res.Err)

	assert.Equal(t, before, inc.DumpLines(snap, text), "the snapshot keeps the pre-edit view")

	after, err := h.Snapshot()
	require.NoError(t, err)
	want, err := inc.FullDump(newText, h.Language(), 0)
	require.NoError(t, err)
	assert.Equal(t, want, inc.DumpLines(after, newText))
}

func TestDumpDepth(t *testing.T) {
	t.Parallel()

	text := lexer.StringText(`<b c='x'>`)
	h := inc.NewTokenHierarchy(text, markup.New(expr.New()), inc.Options{})
	root, err := h.TokenList()
	require.NoError(t, err)

	assert.Equal(t, []string{
		`markup TAG_OPEN 0+2 la=1 st=1 "<b"`,
		`markup WHITESPACE 2+1 la=1 st=1 " "`,
		`markup ATTR_NAME 3+1 la=1 st=1 "c"`,
		`markup EQUALS 4+1 la=0 st=1 "="`,
		`markup VALUE 5+3 la=0 st=1 "'x'"`,
		`markup TAG_CLOSE 8+1 la=0 st=0 ">"`,
	}, inc.DumpDepth(root, text, 0))

	full := inc.DumpLines(root, text)
	require.Len(t, full, 7)
	assert.Equal(t, `  expr IDENTIFIER 6+1 la=1 st=0 "x"`, full[5])
}
