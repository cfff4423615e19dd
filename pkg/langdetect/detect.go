// Package langdetect picks the lexer language for a file.
// It uses go-enry to classify files by name and content, then maps the
// result onto the registered lexer languages.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names returned by Detect.
const (
	Markup = "markup"
	Expr   = "expr"
)

// markupFamily lists enry languages lexed as markup.
var markupFamily = map[string]bool{
	"HTML":       true,
	"HTML+ERB":   true,
	"HTML+PHP":   true,
	"HTML+Razor": true,
	"XML":        true,
	"XSLT":       true,
	"SVG":        true,
	"Vue":        true,
	"Svelte":     true,
	"Handlebars": true,
}

// Detector maps files to language names.
type Detector struct {
	overrides map[string]string
	fallback  string
}

// New creates a detector. overrides maps file extensions (with or without
// the leading dot) to language names and wins over detection. fallback is
// returned for files that are not markup; empty means Expr.
func New(overrides map[string]string, fallback string) *Detector {
	if fallback == "" {
		fallback = Expr
	}
	normalized := make(map[string]string, len(overrides))
	for ext, lang := range overrides {
		normalized[normalizeExt(ext)] = lang
	}
	return &Detector{overrides: normalized, fallback: fallback}
}

// Detect returns the language name for a file.
func (d *Detector) Detect(filename string, content []byte) string {
	if lang, ok := d.overrides[normalizeExt(filepath.Ext(filename))]; ok {
		return lang
	}

	base := filepath.Base(filename)
	if lang, safe := enry.GetLanguageByExtension(base); safe {
		return d.mapLanguage(lang)
	}
	// Ambiguous extensions such as .html list several candidates; any markup
	// candidate wins.
	for _, lang := range enry.GetLanguagesByExtension(base, content, nil) {
		if markupFamily[lang] {
			return Markup
		}
	}
	if looksLikeMarkup(bytes.TrimSpace(content)) {
		return Markup
	}
	return d.mapLanguage(enry.GetLanguage(base, content))
}

func (d *Detector) mapLanguage(lang string) string {
	if markupFamily[lang] {
		return Markup
	}
	return d.fallback
}

// Detect classifies a file with no overrides.
func Detect(filename string, content []byte) string {
	return New(nil, "").Detect(filename, content)
}

// Skippable reports files the runner should not lex: binaries and vendored
// or generated paths.
func Skippable(path string, content []byte) bool {
	return enry.IsBinary(content) || enry.IsVendor(path)
}

// looksLikeMarkup catches content enry cannot place, such as an
// unrecognized extension holding an HTML fragment.
func looksLikeMarkup(trimmed []byte) bool {
	lower := bytes.ToLower(trimmed)
	return bytes.HasPrefix(lower, []byte("<!doctype")) ||
		bytes.HasPrefix(lower, []byte("<?xml")) ||
		bytes.Contains(lower, []byte("<html")) ||
		bytes.Contains(lower, []byte("<script"))
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
