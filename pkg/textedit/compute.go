package textedit

// ComputeEdit returns the single edit turning old into updated by trimming
// their common prefix and suffix. ok is false when both are equal.
func ComputeEdit(old, updated []byte) (edit TextEdit, ok bool) {
	prefix := 0
	limit := min(len(old), len(updated))
	for prefix < limit && old[prefix] == updated[prefix] {
		prefix++
	}
	if prefix == len(old) && prefix == len(updated) {
		return TextEdit{}, false
	}

	suffix := 0
	for suffix < limit-prefix && old[len(old)-1-suffix] == updated[len(updated)-1-suffix] {
		suffix++
	}

	return TextEdit{
		StartOffset: prefix,
		EndOffset:   len(old) - suffix,
		NewText:     string(updated[prefix : len(updated)-suffix]),
	}, true
}
