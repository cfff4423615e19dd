package textedit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/inclex/pkg/textedit"
)

func TestLineDiff_Equal(t *testing.T) {
	t.Parallel()

	diff := textedit.LineDiff("a", "b", []string{"x", "y"}, []string{"x", "y"})
	assert.Nil(t, diff)
	assert.False(t, diff.HasChanges())
	assert.Empty(t, diff.String())
}

func TestLineDiff_SingleChange(t *testing.T) {
	t.Parallel()

	oldLines := []string{"1", "2", "3", "4", "5", "6", "7"}
	newLines := []string{"1", "2", "3", "X", "5", "6", "7"}

	diff := textedit.LineDiff("incremental", "full", oldLines, newLines)
	require.True(t, diff.HasChanges())
	assert.Equal(t, 1, diff.Additions)
	assert.Equal(t, 1, diff.Deletions)
	require.Len(t, diff.Hunks, 1)

	h := diff.Hunks[0]
	assert.Equal(t, 2, h.OldStart)
	assert.Equal(t, 2, h.NewStart)
	assert.Equal(t, 5, h.OldCount)
	assert.Equal(t, 5, h.NewCount)

	assert.Equal(t, "--- incremental\n+++ full\n@@ -2,5 +2,5 @@\n 2\n 3\n-4\n+X\n 5\n 6\n", diff.String())
}

func TestLineDiff_SeparateHunks(t *testing.T) {
	t.Parallel()

	oldLines := []string{"a", "1", "2", "3", "4", "5", "6", "b"}
	newLines := []string{"A", "1", "2", "3", "4", "5", "6", "B"}

	diff := textedit.LineDiff("old", "new", oldLines, newLines)
	require.Len(t, diff.Hunks, 2)
	assert.Equal(t, 1, diff.Hunks[0].OldStart)
	assert.Equal(t, 6, diff.Hunks[1].OldStart)
}

func TestLineDiff_AddOnly(t *testing.T) {
	t.Parallel()

	diff := textedit.LineDiff("old", "new", nil, []string{"x"})
	require.NotNil(t, diff)
	assert.Equal(t, 1, diff.Additions)
	assert.Zero(t, diff.Deletions)
	assert.Equal(t, "--- old\n+++ new\n@@ -1,0 +1,1 @@\n+x\n", diff.String())
}
