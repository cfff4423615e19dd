// Package runner lexes many files concurrently.
package runner

import (
	"sort"
	"strings"

	"github.com/yaklabco/inclex/pkg/config"
)

// Options controls a run.
type Options struct {
	// Paths are files or directories; empty means the working directory.
	Paths []string

	// WorkingDir resolves relative paths and globs. Empty means the process
	// working directory.
	WorkingDir string

	// Extensions selects files inside directories (lowercase, leading dot).
	// Empty means DefaultExtensions plus the extensions named in
	// Config.Languages.
	Extensions []string

	// IncludeGlobs, when set, restricts files to those matching one pattern.
	IncludeGlobs []string

	// ExcludeGlobs skip files and whole directories.
	ExcludeGlobs []string

	FollowSymlinks bool

	// Jobs bounds concurrent workers; <= 0 means runtime.NumCPU().
	Jobs int

	// Language forces a language for every file instead of detection.
	Language string

	// Dump keeps the token dump of each file in its outcome.
	Dump bool

	// Embedded includes embedded token lists in counts and dumps.
	Embedded bool

	Config *config.Config
}

// DefaultExtensions returns the extensions lexed when none are given.
func DefaultExtensions() []string {
	return []string{".htm", ".html", ".svg", ".vue", ".xhtml", ".xml", ".expr", ".calc"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}
	exts := DefaultExtensions()
	if o.Config != nil {
		for ext := range o.Config.Languages {
			exts = append(exts, "."+strings.ToLower(strings.TrimPrefix(ext, ".")))
		}
	}
	sort.Strings(exts)
	return exts
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) config() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}
