package textedit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/inclex/pkg/textedit"
)

func TestComputeEdit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		old     string
		updated string
		want    textedit.TextEdit
		wantOK  bool
	}{
		{name: "equal", old: "abc", updated: "abc"},
		{name: "both empty", old: "", updated: ""},
		{name: "insert middle", old: "ab+cd", updated: "ab*+cd", want: textedit.Replace(2, 0, "*"), wantOK: true},
		{name: "remove middle", old: "ab*+cd", updated: "ab+cd", want: textedit.Replace(2, 1, ""), wantOK: true},
		{name: "replace", old: "a+b", updated: "a-b", want: textedit.Replace(1, 1, "-"), wantOK: true},
		{name: "append", old: "ab", updated: "abc", want: textedit.Replace(2, 0, "c"), wantOK: true},
		{name: "prepend", old: "bc", updated: "abc", want: textedit.Replace(0, 0, "a"), wantOK: true},
		{name: "from empty", old: "", updated: "xy", want: textedit.Replace(0, 0, "xy"), wantOK: true},
		{name: "to empty", old: "xy", updated: "", want: textedit.Replace(0, 2, ""), wantOK: true},
		{name: "repeated bytes", old: "aaa", updated: "aaaa", want: textedit.Replace(3, 0, "a"), wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := textedit.ComputeEdit([]byte(tt.old), []byte(tt.updated))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func FuzzComputeEdit(f *testing.F) {
	f.Add([]byte(""), []byte(""))
	f.Add([]byte("ab+cd"), []byte("ab*+cd"))
	f.Add([]byte("aaaa"), []byte("aa"))
	f.Add([]byte("<a>x</a>"), []byte("<b>x</b>"))

	f.Fuzz(func(t *testing.T, old, updated []byte) {
		edit, ok := textedit.ComputeEdit(old, updated)
		if !ok {
			if string(old) != string(updated) {
				t.Fatalf("no edit for different inputs %q %q", old, updated)
			}
			return
		}
		if err := textedit.ValidateEdit(edit, len(old)); err != nil {
			t.Fatalf("invalid edit: %v", err)
		}
		if got := textedit.Apply(old, edit); string(got) != string(updated) {
			t.Fatalf("apply(%q, %+v) = %q, want %q", old, edit, got, updated)
		}
	})
}
