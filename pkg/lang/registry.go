// Package lang registers the available languages by name.
package lang

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/yaklabco/inclex/pkg/lang/expr"
	"github.com/yaklabco/inclex/pkg/lang/markup"
	"github.com/yaklabco/inclex/pkg/lexer"
)

// maxTypoDistance is the largest edit distance still offered as a suggestion.
const maxTypoDistance = 2

// UnknownLanguageError is returned by Lookup for an unregistered name.
type UnknownLanguageError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownLanguageError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown language %q", e.Name)
	}
	return fmt.Sprintf("unknown language %q (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

// Registry maps language names to languages.
type Registry struct {
	languages map[string]lexer.Language
}

// NewRegistry creates a registry holding langs.
func NewRegistry(langs ...lexer.Language) *Registry {
	r := &Registry{languages: make(map[string]lexer.Language, len(langs))}
	for _, l := range langs {
		r.Register(l)
	}
	return r
}

// Default returns a registry with the built-in languages. markup embeds the
// expr instance of the same registry.
func Default() *Registry {
	e := expr.New()
	return NewRegistry(e, markup.New(e))
}

// Register adds or replaces a language.
func (r *Registry) Register(l lexer.Language) {
	r.languages[l.Name()] = l
}

// Lookup returns the language registered under name.
func (r *Registry) Lookup(name string) (lexer.Language, error) {
	if l, ok := r.languages[strings.ToLower(name)]; ok {
		return l, nil
	}
	return nil, &UnknownLanguageError{Name: name, Suggestions: r.Suggest(name)}
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.languages))
	for name := range r.languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Suggest returns registered names close to name, best match first.
func (r *Registry) Suggest(name string) []string {
	names := r.Names()

	ranks := fuzzy.RankFindNormalizedFold(name, names)
	sort.Sort(ranks)

	seen := make(map[string]bool)
	var out []string
	for _, rank := range ranks {
		out = append(out, rank.Target)
		seen[rank.Target] = true
	}
	for _, candidate := range names {
		if seen[candidate] {
			continue
		}
		if fuzzy.LevenshteinDistance(strings.ToLower(name), candidate) <= maxTypoDistance {
			out = append(out, candidate)
		}
	}
	return out
}
