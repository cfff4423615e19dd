package runner_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/inclex/pkg/lang"
	"github.com/yaklabco/inclex/pkg/runner"
)

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.html":   `<a href="x+1">t</a><script>a+b</script>`,
		"sum.expr": "a + b",
		"c.expr":   "x",
	})

	r := runner.New(lang.Default(), nil)
	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2, Embedded: true})
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, []string{"a.html", "c.expr", "sum.expr"}, rel(t, dir, paths(result)))
	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesProcessed)
	assert.False(t, result.HasFailures())

	html := result.Files[0]
	assert.Equal(t, "markup", html.Language)
	assert.Positive(t, html.TokensByLanguage["markup"])
	assert.Positive(t, html.TokensByLanguage["expr"])
	assert.Equal(t, 2, html.EmbeddedLists)
	assert.Len(t, html.Hash, 12)

	sum := result.Files[2]
	assert.Equal(t, "expr", sum.Language)
	assert.Equal(t, 5, sum.Tokens)
	assert.Equal(t, 2, result.Stats.FilesByLanguage["expr"])
}

func TestRun_RootOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.html": `<script>a+b</script>`})

	result, err := runner.New(nil, nil).Run(context.Background(), runner.Options{WorkingDir: dir, Dump: true})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	outcome := result.Files[0]
	assert.Zero(t, outcome.EmbeddedLists)
	assert.Zero(t, outcome.TokensByLanguage["expr"])
	assert.Len(t, outcome.Lines, outcome.Tokens)
}

func TestRun_ForcedLanguage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.html": "<p>"})

	result, err := runner.New(nil, nil).Run(context.Background(), runner.Options{WorkingDir: dir, Language: "expr"})
	require.NoError(t, err)
	assert.Equal(t, "expr", result.Files[0].Language)
}

func TestRun_UnknownLanguage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.html": "<p>"})

	result, err := runner.New(nil, nil).Run(context.Background(), runner.Options{WorkingDir: dir, Language: "exrp"})
	require.NoError(t, err)
	assert.True(t, result.HasFailures())
	var unknown *lang.UnknownLanguageError
	require.ErrorAs(t, result.Files[0].Error, &unknown)
	assert.Contains(t, unknown.Suggestions, "expr")
}

func TestRun_SkipsBinary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"blob.xml": "\x00\x01\x02\x00"})

	result, err := runner.New(nil, nil).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesSkipped)
	assert.True(t, result.Files[0].Skipped)
}

func TestRun_Empty(t *testing.T) {
	t.Parallel()

	result, err := runner.New(nil, nil).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
}

func TestLexFile_Missing(t *testing.T) {
	t.Parallel()

	outcome := runner.New(nil, nil).LexFile(context.Background(), filepath.Join(t.TempDir(), "x.expr"), runner.Options{})
	require.Error(t, outcome.Error)
}

func paths(result *runner.Result) []string {
	out := make([]string, len(result.Files))
	for i, f := range result.Files {
		out[i] = f.Path
	}
	return out
}
