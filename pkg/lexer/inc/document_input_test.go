package inc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/inclex/pkg/lang/expr"
	"github.com/yaklabco/inclex/pkg/lang/markup"
	"github.com/yaklabco/inclex/pkg/lexer"
	"github.com/yaklabco/inclex/pkg/lexer/inc"
	"github.com/yaklabco/inclex/pkg/textbuf"
	"github.com/yaklabco/inclex/pkg/textedit"
)

func TestDocumentInput_Replace(t *testing.T) {
	t.Parallel()

	doc := newDocument(t, expr.New(), "ab+cd")

	var writeLocked bool
	doc.TokenHierarchy().AddListener(inc.ListenerFunc(func(*inc.TokenHierarchyEvent) {
		writeLocked = doc.IsWriteLocked()
	}))

	res, err := doc.Insert(2, "*")
	require.NoError(t, err)
	require.NotNil(t, res.Event)
	assert.True(t, writeLocked, "events are delivered while the buffer is write locked")
	assert.False(t, doc.IsWriteLocked())
	assert.False(t, doc.IsReadLocked())
	assert.Equal(t, res, doc.LastResult())

	removed, ok := res.Event.Info.RemovedText()
	assert.True(t, ok)
	assert.Empty(t, removed)
	assert.Equal(t, "*", res.Event.Info.InsertedText())

	res, err = doc.Remove(0, 3)
	require.NoError(t, err)
	removed, _ = res.Event.Info.RemovedText()
	assert.Equal(t, "ab*", removed)
	orig, err := res.Event.Info.OriginalText()
	require.NoError(t, err)
	assert.Equal(t, "ab*+cd", orig.String())
	requireMatchesFull(t, doc)
}

func TestDocumentInput_ReadLock(t *testing.T) {
	t.Parallel()

	doc := newDocument(t, expr.New(), "a")
	require.NoError(t, doc.Read(func(h *inc.TokenHierarchy) error {
		assert.True(t, doc.IsReadLocked())
		assert.False(t, doc.IsWriteLocked())
		assert.Same(t, doc.TokenHierarchy(), h)
		return nil
	}))
}

func TestDocumentInput_RejectedEdit(t *testing.T) {
	t.Parallel()

	doc := newDocument(t, expr.New(), "abc")
	_, err := doc.Replace(2, 5, "x")

	var verr *textedit.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "abc", doc.Buffer().String())
	assert.Equal(t, inc.UpdateResult{}, doc.LastResult())
}

func TestDocumentInput_UnbuiltHierarchy(t *testing.T) {
	t.Parallel()

	doc := inc.NewDocumentInput(textbuf.NewString("<p>"), markup.New(expr.New()), inc.Options{})
	defer doc.Close()

	res, err := doc.Insert(3, "x")
	require.NoError(t, err)
	assert.Nil(t, res.Event)
	assert.False(t, doc.TokenHierarchy().IsActive())
	requireMatchesFull(t, doc)
}

func TestDocumentInput_Close(t *testing.T) {
	t.Parallel()

	buf := textbuf.NewString("ab")
	doc := inc.NewDocumentInput(buf, expr.New(), inc.Options{})
	doc.Close()
	doc.Close()

	require.NoError(t, buf.Insert(2, "c"))
	assert.Equal(t, 2, doc.TokenHierarchy().Text().Len(), "closed inputs stop following the buffer")
}

func FuzzIncrementalMatchesFull(f *testing.F) {
	f.Add(`<a x="1+2">t</a>`, uint(8), uint(1), "22")
	f.Add(`<script>/*a</script><p>x</p><script>b*/c</script>`, uint(11), uint(0), "*/")
	f.Add(`<script>a</script><i>x</i><script>b</script>`, uint(0), uint(18), "")
	f.Add(`<p class='x'>hello</p>`, uint(10), uint(0), `"`)
	f.Add("", uint(0), uint(0), `<script>1+</script>`)

	language := markup.New(expr.New())
	f.Fuzz(func(t *testing.T, text string, offset, length uint, insert string) {
		off := int(offset % uint(len(text)+1))
		rl := int(length % uint(len(text)-off+1))

		doc := inc.NewDocumentInput(textbuf.NewString(text), language, inc.Options{})
		defer doc.Close()
		check := func() {
			snap := doc.Buffer().Snapshot()
			want, err := inc.FullDump(snap, language, 0)
			if err != nil {
				t.Skip("text does not lex")
			}
			var got []string
			err = doc.Read(func(h *inc.TokenHierarchy) error {
				root, err := h.TokenList()
				if err != nil {
					return err
				}
				got = inc.DumpLines(root, snap)
				return nil
			})
			if err != nil {
				t.Fatalf("token list: %v", err)
			}
			if !assert.Equal(t, want, got) {
				t.Fatalf("incremental hierarchy diverged for %q", lexer.TextString(snap, 0, snap.Len()))
			}
		}

		replace := func(off, rl int, insert string) {
			var before *inc.SnapshotTokenList
			require.NoError(t, doc.Read(func(h *inc.TokenHierarchy) error {
				var err error
				before, err = h.Snapshot()
				return err
			}))

			res, err := doc.Replace(off, rl, insert)
			if err != nil {
				t.Fatalf("replace: %v", err)
			}
			check()
			if res.RebuildRequired() {
				return
			}
			require.NotNil(t, res.Event)
			require.NoError(t, doc.Read(func(h *inc.TokenHierarchy) error {
				root, err := h.TokenList()
				if err != nil {
					return err
				}
				requireChangeAccounts(t, before, root, res.Event)
				requireFlyweightsMatchFull(t, root, h.Text(), language)
				return nil
			}))
		}

		check()
		replace(off, rl, insert)
		replace(off, len(insert), text[off:off+rl])
	})
}

// requireChangeAccounts checks the root change of ev against the lists
// before and after the edit: untouched prefix, removed and added runs, and a
// suffix shifted by the length difference.
func requireChangeAccounts(t *testing.T, before *inc.SnapshotTokenList, after lexer.TokenList,
	ev *inc.TokenHierarchyEvent,
) {
	t.Helper()

	change, info := ev.Change, ev.Info
	index, removed, added := change.Index(), change.RemovedTokenCount(), change.AddedTokenCount()
	require.Equal(t, before.TokenCount()-removed+added, after.TokenCount(), "token count")

	for i := range index {
		require.Same(t, before.TokenOrEmbedding(i).Token(), after.TokenOrEmbedding(i).Token(), "prefix token %d", i)
		require.Equal(t, before.TokenOffset(i), after.TokenOffset(i), "prefix offset %d", i)
	}

	first := index + removed
	if change.IsBoundsChange() {
		first = index + 1
	}
	for i := first; i < before.TokenCount(); i++ {
		j := i - removed + added
		require.Same(t, before.TokenOrEmbedding(i).Token(), after.TokenOrEmbedding(j).Token(), "suffix token %d", i)
		require.Equal(t, before.TokenOffset(i)+info.DiffLength(), after.TokenOffset(j), "suffix offset %d", i)
	}

	removedList := change.RemovedTokenList()
	for k := range removed {
		require.Same(t, before.TokenOrEmbedding(index+k).Token(), removedList.TokenOrEmbedding(k).Token())
		require.Equal(t, before.TokenOffset(index+k), removedList.TokenOffset(k), "removed offset %d", k)
	}

	if info.RemovedLength() == 0 && info.InsertedLength() == 0 {
		require.Equal(t, info.ModOffset(), info.AffectedStartOffset())
		require.Equal(t, info.ModOffset(), info.AffectedEndOffset())
	}
}
