package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/inclex/internal/cli"
	"github.com/yaklabco/inclex/pkg/analysis"
)

// setupWorkspace creates an isolated working directory with files and
// switches to it. Config discovery outside the directory is disabled.
func setupWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

// execute runs the root command and returns stdout, stderr and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCommand(testInfo())
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--color", "never"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegration_LexText(t *testing.T) {
	setupWorkspace(t, map[string]string{
		"calc.expr":  "a + b",
		"page.html":  `<p title="x+1">hi</p><script>y*2</script>`,
		"notes.txt":  "not selected",
		"sub/c.calc": "1/*c*/2",
	})

	stdout, _, err := execute(t, "lex", "--embedded")
	require.NoError(t, err)

	assert.Contains(t, stdout, "calc.expr: expr, 5 tokens")
	assert.Contains(t, stdout, "page.html: markup")
	assert.Contains(t, stdout, "2 embedded")
	assert.Contains(t, stdout, filepath.Join("sub", "c.calc")+": expr, 3 tokens")
	assert.NotContains(t, stdout, "notes.txt")
	assert.Contains(t, stdout, "3 files lexed")
}

func TestIntegration_LexJSON(t *testing.T) {
	setupWorkspace(t, map[string]string{"calc.expr": "a + b"})

	stdout, _, err := execute(t, "lex", "--format", "json")
	require.NoError(t, err)

	var report analysis.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Files, 1)
	assert.Equal(t, "calc.expr", report.Files[0].Path)
	assert.Equal(t, 5, report.Files[0].Tokens)
}

func TestIntegration_LexTokens(t *testing.T) {
	setupWorkspace(t, map[string]string{"calc.expr": "ab+1"})

	stdout, _, err := execute(t, "lex", "--format", "tokens", "calc.expr")
	require.NoError(t, err)

	assert.Contains(t, stdout, "== calc.expr (expr)")
	assert.Contains(t, stdout, `expr IDENTIFIER 0+2`)
	assert.Contains(t, stdout, `expr OPERATOR 2+1`)
	assert.Contains(t, stdout, `expr NUMBER 3+1`)
}

func TestIntegration_LexForcedLanguageAndConfigOverride(t *testing.T) {
	setupWorkspace(t, map[string]string{
		"formula.txt": "x*y",
		".inclex.yml": "languages:\n  txt: expr\n",
	})

	stdout, _, err := execute(t, "lex", "--ext", "txt")
	require.NoError(t, err)
	assert.Contains(t, stdout, "formula.txt: expr, 3 tokens")
}

func TestIntegration_LexUnknownLanguage(t *testing.T) {
	setupWorkspace(t, map[string]string{"calc.expr": "a"})

	_, _, err := execute(t, "lex", "--lang", "exrp")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
	assert.Contains(t, err.Error(), "expr")
}

func TestIntegration_LexInvalidFormat(t *testing.T) {
	setupWorkspace(t, nil)

	_, _, err := execute(t, "lex", "--format", "sarif")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_BadConfig(t *testing.T) {
	setupWorkspace(t, map[string]string{".inclex.yml": "max_fly_sequence: -1\n"})

	_, _, err := execute(t, "lex")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

const replayScript = `edits:
  - offset: 2
    insert: "*"
    note: insert operator
  - offset: 0
    remove: 2
    insert: "x"
  - offset: 0
    insert: "/*"
`

func TestIntegration_ReplayVerify(t *testing.T) {
	dir := setupWorkspace(t, map[string]string{
		"calc.expr":  "ab+cd",
		"edits.yml":  replayScript,
		"page.html":  `<a href="x+1">t</a><script>a+b</script>`,
		"edits2.yml": "edits:\n  - offset: 11\n    insert: \"*2\"\n  - offset: 31\n    remove: 1\n",
	})

	stdout, _, err := execute(t, "replay", "calc.expr", "--script", "edits.yml", "--verify",
		"--output", "out.expr")
	require.NoError(t, err)

	assert.Contains(t, stdout, "#1 insert operator")
	assert.Contains(t, stdout, "edit @2 -0 +1")
	assert.Contains(t, stdout, "3 edits replayed")
	assert.Contains(t, stdout, "0 mismatches")

	written, err := os.ReadFile(filepath.Join(dir, "out.expr"))
	require.NoError(t, err)
	assert.Equal(t, "/*x*+cd", string(written))

	stdout, _, err = execute(t, "replay", "page.html", "--script", "edits2.yml", "--verify", "--quiet")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "#1")
	assert.Contains(t, stdout, "2 edits replayed")
	assert.Contains(t, stdout, "0 mismatches")
}

func TestIntegration_ReplayErrors(t *testing.T) {
	setupWorkspace(t, map[string]string{
		"calc.expr": "ab",
		"bad.yml":   "edits:\n  - offset: 10\n    insert: x\n",
		"empty.yml": "edits: []\n",
	})

	tests := []struct {
		name string
		args []string
		code int
	}{
		{name: "missing file arg", args: []string{"replay", "--script", "bad.yml"}, code: cli.ExitInvalidUsage},
		{name: "edit out of range", args: []string{"replay", "calc.expr", "--script", "bad.yml"}, code: cli.ExitConfigError},
		{name: "empty script", args: []string{"replay", "calc.expr", "--script", "empty.yml"}, code: cli.ExitConfigError},
		{name: "missing input", args: []string{"replay", "nope.expr", "--script", "bad.yml"}, code: cli.ExitIOError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, cli.ExitCode(err), err.Error())
		})
	}
}

func TestIntegration_Init(t *testing.T) {
	dir := setupWorkspace(t, nil)

	_, _, err := execute(t, "init", "--requires", ">= 0.1")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, ".inclex.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "default_language: expr")
	assert.Contains(t, string(content), `requires: ">= 0.1"`)

	// Not a terminal: refuses without --force.
	_, _, err = execute(t, "init")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
	assert.True(t, strings.Contains(err.Error(), "--force"))

	_, _, err = execute(t, "init", "--force")
	require.NoError(t, err)

	// The generated file loads cleanly.
	_, _, err = execute(t, "lex")
	require.NoError(t, err)
}

func TestIntegration_InitBadRequires(t *testing.T) {
	setupWorkspace(t, nil)

	_, _, err := execute(t, "init", "--requires", "banana")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_Version(t *testing.T) {
	setupWorkspace(t, nil)

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "inclex")
	assert.Contains(t, stdout, "version=test")
}
