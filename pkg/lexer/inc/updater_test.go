package inc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/inclex/pkg/lang/expr"
	"github.com/yaklabco/inclex/pkg/lang/markup"
	"github.com/yaklabco/inclex/pkg/lexer"
	"github.com/yaklabco/inclex/pkg/lexer/inc"
	"github.com/yaklabco/inclex/pkg/textbuf"
)

type edit struct {
	offset int
	length int
	text   string
}

func newDocument(t *testing.T, language lexer.Language, text string) *inc.DocumentInput {
	t.Helper()

	doc := inc.NewDocumentInput(textbuf.NewString(text), language, inc.Options{})
	t.Cleanup(doc.Close)
	require.NoError(t, doc.Read(func(h *inc.TokenHierarchy) error {
		_, err := h.TokenList()
		return err
	}))
	return doc
}

// requireMatchesFull checks that the hierarchy of doc dumps exactly like a
// fresh lex of the current buffer content.
func requireMatchesFull(t *testing.T, doc *inc.DocumentInput) {
	t.Helper()

	text := doc.Buffer().Snapshot()
	var got []string
	require.NoError(t, doc.Read(func(h *inc.TokenHierarchy) error {
		root, err := h.TokenList()
		if err != nil {
			return err
		}
		got = inc.DumpLines(root, text)
		return nil
	}))

	want, err := inc.FullDump(text, doc.TokenHierarchy().Language(), 0)
	require.NoError(t, err)
	require.Equal(t, want, got, "text %q", lexer.TextString(text, 0, text.Len()))
}

// flyShape marks every token of list and its embedded lists with 'f' for a
// flyweight or 'p' for a positioned token, and returns the longest run of
// consecutive flyweights in any one list.
func flyShape(list lexer.TokenList) (string, int) {
	var b strings.Builder
	longest, run := 0, 0
	for i := range list.TokenCount() {
		toe := list.TokenOrEmbedding(i)
		if toe.Token().IsFlyweight() {
			b.WriteByte('f')
			run++
			longest = max(longest, run)
		} else {
			b.WriteByte('p')
			run = 0
		}
		if embedded := toe.EmbeddedTokenList(); embedded != nil {
			shape, l := flyShape(embedded)
			b.WriteString("(" + shape + ")")
			longest = max(longest, l)
		}
	}
	return b.String(), longest
}

// requireFlyweightsMatchFull checks that list places flyweights exactly like
// a fresh lex of text and keeps every run within the default bound.
func requireFlyweightsMatchFull(t *testing.T, list lexer.TokenList, text lexer.Text, language lexer.Language) {
	t.Helper()

	full, err := inc.NewTokenHierarchy(text, language, inc.Options{}).TokenList()
	require.NoError(t, err)
	want, _ := flyShape(full)
	got, longest := flyShape(list)
	require.Equal(t, want, got, "flyweight placement")
	require.LessOrEqual(t, longest, lexer.DefaultMaxFlySequenceLength)
}

func TestUpdate_MatchesFullLex(t *testing.T) {
	t.Parallel()

	exprLang := expr.New()
	markupLang := markup.New(exprLang)

	tests := []struct {
		name     string
		language lexer.Language
		text     string
		edits    []edit
		want     string
	}{
		{
			name:     "insert operator",
			language: exprLang,
			text:     "ab+cd",
			edits:    []edit{{2, 0, "*"}},
			want:     "ab*+cd",
		},
		{
			name:     "merge identifiers",
			language: exprLang,
			text:     "ab cd",
			edits:    []edit{{2, 1, ""}},
			want:     "abcd",
		},
		{
			name:     "split identifier",
			language: exprLang,
			text:     "abcd",
			edits:    []edit{{2, 0, " "}},
			want:     "ab cd",
		},
		{
			name:     "open comment swallows rest",
			language: exprLang,
			text:     "a + b * 42",
			edits:    []edit{{0, 0, "/*"}},
			want:     "/*a + b * 42",
		},
		{
			name:     "close comment",
			language: exprLang,
			text:     "/* a + b",
			edits:    []edit{{4, 0, "*/"}, {0, 2, ""}, {0, 0, "/*"}},
			want:     "/* a*/ + b",
		},
		{
			name:     "remove everything then retype",
			language: exprLang,
			text:     "x+1",
			edits:    []edit{{0, 3, ""}, {0, 0, "y - 2"}},
			want:     "y - 2",
		},
		{
			name:     "long operator runs",
			language: exprLang,
			text:     "a",
			edits:    []edit{{1, 0, "++++++++++++"}, {5, 2, "b"}},
			want:     "a++++b++++++",
		},
		{
			name:     "attribute value",
			language: markupLang,
			text:     `<a x="1+2">t</a>`,
			edits:    []edit{{8, 1, "22"}, {6, 0, "(0)*"}},
			want:     `<a x="(0)*1+22">t</a>`,
		},
		{
			name:     "unterminated attribute value",
			language: markupLang,
			text:     `<a x="1+2">t</a>`,
			edits:    []edit{{9, 1, ""}, {9, 0, `"`}},
			want:     `<a x="1+2">t</a>`,
		},
		{
			name:     "comment continues into next script",
			language: markupLang,
			text:     `<script>/*a</script><p>x</p><script>b*/c</script>`,
			edits:    []edit{{11, 0, "*/"}, {11, 2, ""}},
			want:     `<script>/*a</script><p>x</p><script>b*/c</script>`,
		},
		{
			name:     "add script section",
			language: markupLang,
			text:     `<script>/*a</script>`,
			edits:    []edit{{20, 0, `<script>b*/c</script>`}},
			want:     `<script>/*a</script><script>b*/c</script>`,
		},
		{
			name:     "remove script section",
			language: markupLang,
			text:     `<script>a</script><i>x</i><script>b</script>`,
			edits:    []edit{{0, 18, ""}},
			want:     `<i>x</i><script>b</script>`,
		},
		{
			name:     "edit text between tags",
			language: markupLang,
			text:     `<p class="x">hello</p>`,
			edits:    []edit{{15, 0, "ooo"}, {13, 8, "<b>"}},
			want:     `<p class="x"><b></p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := newDocument(t, tt.language, tt.text)
			for _, e := range tt.edits {
				_, err := doc.Replace(e.offset, e.length, e.text)
				require.NoError(t, err)
				requireMatchesFull(t, doc)
			}
			assert.Equal(t, tt.want, doc.Buffer().String())
		})
	}
}

func TestUpdate_EmptyEdit(t *testing.T) {
	t.Parallel()

	doc := newDocument(t, expr.New(), "ab+cd")
	res, err := doc.Replace(3, 0, "")
	require.NoError(t, err)
	require.NotNil(t, res.Event)

	change := res.Event.Change
	assert.Equal(t, 2, change.Index())
	assert.Equal(t, 3, change.Offset())
	assert.Zero(t, change.RemovedTokenCount())
	assert.Zero(t, change.AddedTokenCount())
	assert.Equal(t, 3, res.Event.Info.AffectedStartOffset())
	assert.Equal(t, 3, res.Event.Info.AffectedEndOffset())
}

func TestUpdate_FlyweightRunStaysBounded(t *testing.T) {
	t.Parallel()

	exprLang := expr.New()
	markupLang := markup.New(exprLang)

	tests := []struct {
		name     string
		language lexer.Language
		text     string
		offset   func(text string) int
		insert   string
	}{
		{
			name:     "append operators",
			language: exprLang,
			text:     "a",
			offset:   func(text string) int { return len(text) },
			insert:   "+",
		},
		{
			name:     "prepend to run",
			language: exprLang,
			text:     "a++++++++b",
			offset:   func(string) int { return 1 },
			insert:   "-",
		},
		{
			name:     "grow run in the middle",
			language: exprLang,
			text:     "a+++++++++++b",
			offset:   func(text string) int { return len(text) / 2 },
			insert:   "*",
		},
		{
			name:     "operators in script",
			language: markupLang,
			text:     "<script>a</script>",
			offset:   func(text string) int { return strings.Index(text, "</") },
			insert:   "+",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := newDocument(t, tt.language, tt.text)
			for range 3 * lexer.DefaultMaxFlySequenceLength {
				res, err := doc.Insert(tt.offset(doc.Buffer().String()), tt.insert)
				require.NoError(t, err)
				require.False(t, res.RebuildRequired())

				require.NoError(t, doc.Read(func(h *inc.TokenHierarchy) error {
					root, err := h.TokenList()
					if err != nil {
						return err
					}
					requireFlyweightsMatchFull(t, root, h.Text(), tt.language)
					return nil
				}))
			}
			assert.Equal(t, 1, doc.TokenHierarchy().Builds())
			requireMatchesFull(t, doc)
		})
	}
}

func TestJoinedSections(t *testing.T) {
	t.Parallel()

	doc := newDocument(t, markup.New(expr.New()), `<script>/*a</script><p>x</p><script>b*/c</script>`)
	require.NoError(t, doc.Read(func(h *inc.TokenHierarchy) error {
		assert.Nil(t, h.JoinedSections("markup/markup"))

		tll := h.JoinedSections("markup/expr")
		require.NotNil(t, tll)
		require.Equal(t, 2, tll.TokenListCount())
		assert.Equal(t, 3, tll.TokenCount())
		assert.Equal(t, 8, tll.StartOffset())

		first, second := tll.TokenList(0), tll.TokenList(1)
		assert.True(t, first.IsJoined())
		assert.Equal(t, expr.StateDefault, first.StartState())
		assert.Equal(t, expr.StateInComment, first.EndState())
		assert.Equal(t, expr.StateInComment, second.StartState())
		assert.Equal(t, 36, second.StartOffset())

		// The joined view concatenates the sections in document order.
		assert.Equal(t, 8, tll.TokenOffset(0))
		assert.Equal(t, 36, tll.TokenOffset(1))
		assert.Equal(t, 39, tll.TokenOffset(2))

		op := inc.NewJoinLexerInputOperation(tll, 0, 0)
		assert.Equal(t, 2, op.TokenListCount())
		assert.True(t, op.Converged())

		etl, change, err := op.LexSection()
		require.NoError(t, err)
		assert.Same(t, first, etl)
		assert.Equal(t, 1, change.AddedTokenOrEmbeddingsCount())
		assert.Equal(t, expr.StateInComment, op.State())
		assert.Equal(t, 1, op.TokenListIndex())
		assert.True(t, op.Converged())

		_, change, err = op.LexSection()
		require.NoError(t, err)
		assert.Equal(t, 2, change.AddedTokenOrEmbeddingsCount())
		assert.True(t, op.Done())
		assert.False(t, op.Converged())
		return nil
	}))
}
