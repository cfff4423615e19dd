package textedit

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptyScript is returned for a script without edits.
var ErrEmptyScript = errors.New("edit script has no edits")

// ScriptEdit is one step of an edit script: remove Remove bytes at Offset,
// then insert Insert there.
type ScriptEdit struct {
	Offset int    `yaml:"offset"`
	Remove int    `yaml:"remove,omitempty"`
	Insert string `yaml:"insert,omitempty"`

	// Note is an optional label printed when the step is replayed.
	Note string `yaml:"note,omitempty"`
}

// TextEdit converts the step to a TextEdit.
func (s ScriptEdit) TextEdit() TextEdit {
	return Replace(s.Offset, s.Remove, s.Insert)
}

// Script is an ordered sequence of edits. Each edit applies to the text
// produced by the previous one.
type Script struct {
	Edits []ScriptEdit `yaml:"edits"`
}

// ParseScript decodes a YAML edit script.
func ParseScript(data []byte) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse edit script: %w", err)
	}
	if len(script.Edits) == 0 {
		return nil, ErrEmptyScript
	}
	return &script, nil
}

// LoadScript reads and decodes a YAML edit script.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("read edit script: %w", err)
	}
	return ParseScript(data)
}

// Run applies the edits in order to content and returns the final text.
// Every step is validated against the text it applies to.
func (s *Script) Run(content []byte) ([]byte, error) {
	for i, step := range s.Edits {
		edit := step.TextEdit()
		if err := ValidateEdit(edit, len(content)); err != nil {
			return nil, fmt.Errorf("edit %d: %w", i+1, err)
		}
		content = Apply(content, edit)
	}
	return content, nil
}

// ToYAML encodes the script.
func (s *Script) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal edit script: %w", err)
	}
	return data, nil
}
