package textedit

import "bytes"

// Apply applies one validated edit to content and returns new content.
// content itself is never modified.
func Apply(content []byte, edit TextEdit) []byte {
	out := make([]byte, 0, len(content)+edit.InsertedLength()-edit.RemovedLength())
	out = append(out, content[:edit.StartOffset]...)
	out = append(out, edit.NewText...)
	return append(out, content[edit.EndOffset:]...)
}

// ApplyEdits applies a sorted, validated slice of simultaneous edits to
// content. Edits must be prepared with PrepareEdits before calling.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += e.InsertedLength() - e.RemovedLength()
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}
