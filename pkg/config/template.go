package config

import (
	"bytes"
	"fmt"
	"sort"
)

// TemplateOptions controls the file written by `inclex init`.
type TemplateOptions struct {
	// Languages are the registered language names listed in comments.
	Languages []string

	// Requires, when set, pins the binary version range.
	Requires string
}

// GenerateTemplate returns a commented .inclex.yml.
func GenerateTemplate(opts TemplateOptions) []byte {
	defaults := NewConfig()
	langs := append([]string(nil), opts.Languages...)
	sort.Strings(langs)

	var buf bytes.Buffer
	buf.WriteString("# inclex configuration\n\n")
	fmt.Fprintf(&buf, "# Log level: debug, info, warn or error.\nlog_level: %s\n\n", defaults.LogLevel)
	if len(langs) > 0 {
		fmt.Fprintf(&buf, "# Available languages: %v\n", langs)
	}
	fmt.Fprintf(&buf, "default_language: %s\n\n", defaults.DefaultLanguage)
	buf.WriteString("# Extension overrides, applied before detection.\nlanguages:\n  calc: expr\n\n")
	buf.WriteString("# Glob patterns of files to skip.\n# ignore:\n#   - \"vendor/**\"\n\n")
	fmt.Fprintf(&buf, "# Longest run of shared flyweight tokens.\nmax_fly_sequence: %d\n\n", defaults.MaxFlySequence)
	buf.WriteString("# Compare every replayed edit with a full relex.\nverify: false\n")
	if opts.Requires != "" {
		fmt.Fprintf(&buf, "\n# Supported inclex versions.\nrequires: %q\n", opts.Requires)
	}
	return buf.Bytes()
}
