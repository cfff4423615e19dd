package lang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/inclex/pkg/lang"
	"github.com/yaklabco/inclex/pkg/lang/expr"
	"github.com/yaklabco/inclex/pkg/lang/markup"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	reg := lang.Default()
	assert.Equal(t, []string{"expr", "markup"}, reg.Names())

	l, err := reg.Lookup("MARKUP")
	require.NoError(t, err)
	assert.Equal(t, markup.Name, l.Name())
}

func TestLookup_Unknown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		query           string
		wantSuggestions []string
		wantMessage     string
	}{
		{
			name:            "transposed letters",
			query:           "exrp",
			wantSuggestions: []string{"expr"},
			wantMessage:     `unknown language "exrp" (did you mean expr?)`,
		},
		{
			name:            "prefix",
			query:           "mk",
			wantSuggestions: []string{"markup"},
			wantMessage:     `unknown language "mk" (did you mean markup?)`,
		},
		{
			name:        "nothing close",
			query:       "zzzzzz",
			wantMessage: `unknown language "zzzzzz"`,
		},
	}

	reg := lang.Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := reg.Lookup(tt.query)
			var unknown *lang.UnknownLanguageError
			require.ErrorAs(t, err, &unknown)
			assert.Equal(t, tt.query, unknown.Name)
			assert.Equal(t, tt.wantSuggestions, unknown.Suggestions)
			assert.EqualError(t, err, tt.wantMessage)
		})
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	reg := lang.NewRegistry()
	assert.Empty(t, reg.Names())

	first := expr.New()
	reg.Register(first)
	second := expr.New()
	reg.Register(second)

	l, err := reg.Lookup("expr")
	require.NoError(t, err)
	assert.Same(t, second, l, "registering a name again replaces the language")
	assert.Equal(t, []string{"expr"}, reg.Names())
}
