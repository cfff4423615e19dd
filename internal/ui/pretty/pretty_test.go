package pretty_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/inclex/internal/ui/pretty"
	"github.com/yaklabco/inclex/pkg/analysis"
	"github.com/yaklabco/inclex/pkg/lang/expr"
	"github.com/yaklabco/inclex/pkg/lexer"
	"github.com/yaklabco/inclex/pkg/lexer/inc"
	"github.com/yaklabco/inclex/pkg/textedit"
)

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", &buf))
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "buffers are not terminals")
	assert.False(t, pretty.IsColorEnabled("", &buf))
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, pretty.IsColorEnabled("auto", &bytes.Buffer{}))
	assert.True(t, pretty.IsColorEnabled("always", &bytes.Buffer{}))
}

func TestNewStyles_PlainRendersVerbatim(t *testing.T) {
	t.Parallel()

	s := pretty.NewStyles(false)
	assert.Equal(t, "text", s.Added.Render("text"))
	assert.Equal(t, "text", s.Failure.Render("text"))
	assert.NotNil(t, pretty.NewStyles(true))
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	s := pretty.NewStyles(false)
	tests := []struct {
		name   string
		totals analysis.Totals
		want   string
	}{
		{name: "empty", totals: analysis.Totals{}, want: "No files to lex.\n"},
		{name: "single", totals: analysis.Totals{Files: 1, Processed: 1, Tokens: 1}, want: "1 file lexed, 1 token\n"},
		{
			name:   "skipped and failed",
			totals: analysis.Totals{Files: 4, Processed: 2, Tokens: 10, Skipped: 1, Errored: 1},
			want:   "2 files lexed, 10 tokens, 1 skipped, 1 failed\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, s.FormatSummaryOneLine(tt.totals))
		})
	}
}

func TestFormatLanguageTable(t *testing.T) {
	t.Parallel()

	s := pretty.NewStyles(false)
	out := s.FormatLanguageTable([]analysis.LanguageAnalysis{
		{Language: "markup", Files: 2, Tokens: 120},
		{Language: "expr", Files: 12, Tokens: 7},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "LANGUAGE  FILES  TOKENS", lines[0])
	assert.Equal(t, "markup        2     120", lines[2])
	assert.Equal(t, "expr         12       7", lines[3])
	assert.Empty(t, s.FormatLanguageTable(nil))
}

func TestFormatEvent(t *testing.T) {
	t.Parallel()

	h := inc.NewTokenHierarchy(lexer.StringText("ab+cd"), expr.New(), inc.Options{})
	_, err := h.TokenList()
	require.NoError(t, err)

	text := lexer.StringText("ab*+cd")
	removed := ""
	info, err := inc.NewTokenHierarchyEventInfo(text, 2, 0, &removed, 1)
	require.NoError(t, err)
	result := h.Update(info, nil)
	require.NoError(t, result.Err)

	out := pretty.NewStyles(false).FormatEvent(result.Event, text)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "edit @2 -0 +1", lines[0])
	assert.Equal(t, "  expr [1] @2 -1 +2", lines[1])
	assert.Equal(t, "    - OPERATOR 2+1", lines[2])
	assert.Equal(t, `    + OPERATOR 2+1 "*"`, lines[3])
	assert.Equal(t, `    + OPERATOR 3+1 "+"`, lines[4])
}

func TestFormatEvent_Rebuild(t *testing.T) {
	t.Parallel()

	text := lexer.StringText("x")
	info, err := inc.NewTokenHierarchyEventInfo(text, 0, 0, nil, 1)
	require.NoError(t, err)

	out := pretty.NewStyles(false).FormatEvent(&inc.TokenHierarchyEvent{Type: inc.EventRebuild, Info: info}, text)
	assert.Contains(t, out, "hierarchy dropped for rebuild")
}

func TestFormatDiff(t *testing.T) {
	t.Parallel()

	s := pretty.NewStyles(false)
	diff := textedit.LineDiff("incremental", "full", []string{"a", "b"}, []string{"a", "c"})
	out := s.FormatDiff(diff)

	assert.Contains(t, out, "--- incremental\n+++ full\n")
	assert.Contains(t, out, "-b\n+c\n")
	assert.Contains(t, out, "1 additions, 1 deletions")
	assert.Empty(t, s.FormatDiff(nil))
}
