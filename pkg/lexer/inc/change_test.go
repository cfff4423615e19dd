package inc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/inclex/pkg/lang/expr"
	"github.com/yaklabco/inclex/pkg/lexer"
	"github.com/yaklabco/inclex/pkg/lexer/inc"
)

func TestTokenListChange_Cursor(t *testing.T) {
	t.Parallel()

	lang := expr.New()
	h := inc.NewTokenHierarchy(lexer.StringText("ab+cd"), lang, inc.Options{})
	snap, err := h.Snapshot()
	require.NoError(t, err)

	change := inc.NewTokenListChange(snap)
	assert.Same(t, snap, change.TokenList())

	change.SetIndex(1, 2)
	assert.True(t, change.IsEmpty())
	change.IncreaseMatchIndex()
	assert.Equal(t, 2, change.MatchIndex())
	assert.Equal(t, 3, change.MatchOffset())

	change.AddToken(lexer.NewFlyweight(expr.Operator, "*"), 0, expr.StateDefault)
	change.AddToken(lexer.NewFlyweight(expr.Operator, "+"), 0, expr.StateDefault)
	assert.Equal(t, 1, change.RemovedTokenCount())
	assert.Equal(t, 2, change.AddedTokenOrEmbeddingsCount())
	assert.Equal(t, 4, change.AddedEndOffset())
	assert.False(t, change.IsEmpty())
	assert.Panics(t, change.SkipUnchanged)

	last := change.RemoveLastAddedToken()
	assert.Equal(t, "+", last.Token().Text(nil))
	assert.Equal(t, 1, change.MatchIndex())
	assert.Equal(t, 2, change.MatchOffset())
	assert.Equal(t, 3, change.AddedEndOffset())
	assert.Equal(t, "*", change.AddedTokenOrEmbedding(0).Token().Text(nil))
	assert.Equal(t, 0, change.AddedLookahead(0))
	assert.Equal(t, expr.StateDefault, change.AddedState(0))

	assert.Nil(t, change.RemovedTokenList())
	info := change.ChangeInfo()
	require.NotNil(t, change.RemovedTokenList())
	assert.Same(t, info, change.ChangeInfo())
	assert.Equal(t, 1, info.Index())
	assert.Equal(t, 2, info.Offset())
	assert.Equal(t, 1, info.AddedTokenCount())
	assert.Equal(t, 3, info.AddedEndOffset())
	assert.Zero(t, info.RemovedTokenCount())
	assert.Equal(t, "expr", info.LanguagePath().String())
	assert.Contains(t, info.String(), "index=1")
}

func TestTokenListChange_SkipUnchanged(t *testing.T) {
	t.Parallel()

	h := inc.NewTokenHierarchy(lexer.StringText("ab+cd"), expr.New(), inc.Options{})
	snap, err := h.Snapshot()
	require.NoError(t, err)

	change := inc.NewTokenListChange(snap)
	change.SetIndex(0, 0)
	change.SkipUnchanged()
	assert.Equal(t, 1, change.Index())
	assert.Equal(t, 2, change.Offset())
	assert.Equal(t, 2, change.AddedEndOffset())
	assert.Zero(t, change.RemovedTokenCount())

	change.MarkBoundsChange()
	assert.True(t, change.IsBoundsChange())
	assert.False(t, change.IsEmpty())
}
