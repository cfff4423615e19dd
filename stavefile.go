//go:build stave

package main

import (
	"cmp"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/inclex"

// Default target.
var Default = Build

var Aliases = map[string]any{
	"b":  Build,
	"t":  Test.All,
	"tr": Test.Relex,
	"c":  Check,
	"fz": Fuzz.All,
}

type (
	Test  st.Namespace
	Fuzz  st.Namespace
	Bench st.Namespace
)

// Build compiles bin/inclex when any Go source is newer than it.
func Build() error {
	stale, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !stale {
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", versionFlags(), "-o", binary, "./cmd/inclex")
}

// Install runs go install with version info.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", versionFlags(), "./cmd/inclex")
}

// Check formats, vets and tests.
func Check() {
	st.SerialDeps(Fmt, Vet, Test.All)
}

// Fmt rewrites Go files with gofmt. With CI set it only lists them and fails.
func Fmt() error {
	if os.Getenv("CI") == "" {
		return sh.RunV("gofmt", "-w", "cmd", "pkg", "internal")
	}
	out, err := sh.Output("gofmt", "-l", "cmd", "pkg", "internal")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("gofmt needed on:\n%s", out)
	}
	return nil
}

// Vet runs go vet and golangci-lint.
func Vet() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes the binary and coverage output.
func Clean() error {
	for _, p := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(p); err != nil {
			return err
		}
	}
	return nil
}

// All runs every test under the race detector with coverage.
func (Test) All() error {
	return goTest("-race", "-covermode=atomic", "-coverprofile=coverage.out", "./...")
}

// Relex repeats the incremental lexer tests to shake out order dependent
// failures in the updater.
func (Test) Relex() error {
	count := cmp.Or(os.Getenv("COUNT"), "20")
	return goTest("-race", "-count="+count, "./pkg/lexer/...", "./pkg/textbuf/...", "./pkg/lang/...")
}

// fuzzTargets maps each fuzz test to its package.
var fuzzTargets = [][2]string{
	{"./pkg/lexer/inc", "FuzzIncrementalMatchesFull"},
	{"./pkg/lexer/inc", "FuzzOriginalText"},
	{"./pkg/textedit", "FuzzComputeEdit"},
	{"./pkg/fsutil", "FuzzWriteAtomicRoundTrip"},
}

// All fuzzes every target for FUZZTIME each (30s unless set).
func (Fuzz) All() error {
	d := cmp.Or(os.Getenv("FUZZTIME"), "30s")
	for _, ft := range fuzzTargets {
		if err := Fuzz{}.Run(ft[1], d); err != nil {
			return err
		}
	}
	return nil
}

// Run fuzzes one target by name for the given duration.
func (Fuzz) Run(name, duration string) error {
	for _, ft := range fuzzTargets {
		if ft[1] == name {
			return goTest("-run=^$", "-fuzz=^"+name+"$", "-fuzztime="+duration, ft[0])
		}
	}
	return fmt.Errorf("no fuzz target %q", name)
}

// Relex benchmarks document edits against a full lex.
func (Bench) Relex() error {
	return goTest("-run=^$", "-bench=Relex|FullLex", "-benchmem", "./pkg/lexer/...")
}

func goTest(args ...string) error {
	p := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), fmt.Sprint(runtime.NumCPU()))
	return sh.RunV("go", append([]string{"tool", "gotestsum", "-f", "pkgname-and-test-fails", "--", "-p", p}, args...)...)
}

func versionFlags() string {
	git := func(args ...string) string {
		out, err := sh.Output("git", args...)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(out)
	}
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339))
}
