package textedit

import (
	"fmt"
	"strings"
)

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged context line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line only present in the new side.
	DiffLineAdd

	// DiffLineRemove is a line only present in the old side.
	DiffLineRemove
)

// DiffLine is a single line of a hunk.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffHunk is a run of changed lines with surrounding context.
// Starts are 1-based line numbers.
type DiffHunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []DiffLine
}

// Diff is a unified line diff between two line sequences.
type Diff struct {
	OldName   string
	NewName   string
	Hunks     []DiffHunk
	Additions int
	Deletions int
}

// contextLines is the number of context lines around changes.
const contextLines = 2

// LineDiff compares two line sequences. It returns nil when they are equal.
func LineDiff(oldName, newName string, oldLines, newLines []string) *Diff {
	ops := diffOps(oldLines, newLines)

	diff := &Diff{OldName: oldName, NewName: newName}
	for _, op := range ops {
		switch op.Kind {
		case DiffLineAdd:
			diff.Additions++
		case DiffLineRemove:
			diff.Deletions++
		}
	}
	if diff.Additions == 0 && diff.Deletions == 0 {
		return nil
	}
	diff.Hunks = groupHunks(ops)
	return diff
}

// HasChanges reports whether the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", d.OldName, d.NewName)
	for _, h := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, line := range h.Lines {
			prefix := " "
			switch line.Kind {
			case DiffLineAdd:
				prefix = "+"
			case DiffLineRemove:
				prefix = "-"
			}
			sb.WriteString(prefix)
			sb.WriteString(line.Content)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// diffOps walks an LCS table and emits context, remove and add lines in
// order. Within a change, removals come before additions.
func diffOps(a, b []string) []DiffLine {
	// dp[i][j] is the LCS length of a[i:] and b[j:].
	dp := make([][]int, len(a)+1)
	for i := range dp {
		dp[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}

	ops := make([]DiffLine, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i < len(a) && j < len(b) && a[i] == b[j]:
			ops = append(ops, DiffLine{Kind: DiffLineContext, Content: a[i]})
			i++
			j++
		case i < len(a) && (j == len(b) || dp[i+1][j] >= dp[i][j+1]):
			ops = append(ops, DiffLine{Kind: DiffLineRemove, Content: a[i]})
			i++
		default:
			ops = append(ops, DiffLine{Kind: DiffLineAdd, Content: b[j]})
			j++
		}
	}
	return ops
}

// groupHunks cuts the op stream into hunks, merging changes separated by at
// most twice the context size.
func groupHunks(ops []DiffLine) []DiffHunk {
	var hunks []DiffHunk
	oldLine, newLine := 1, 1

	for idx := 0; idx < len(ops); {
		if ops[idx].Kind == DiffLineContext {
			idx++
			oldLine++
			newLine++
			continue
		}

		start := max(0, idx-contextLines)
		hunk := DiffHunk{OldStart: oldLine - (idx - start), NewStart: newLine - (idx - start)}

		end := idx
		for end < len(ops) {
			if ops[end].Kind != DiffLineContext {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].Kind == DiffLineContext {
				run++
			}
			if run == len(ops) || run-end > 2*contextLines {
				break
			}
			end = run
		}
		stop := min(len(ops), end+contextLines)

		for k := start; k < stop; k++ {
			op := ops[k]
			hunk.Lines = append(hunk.Lines, op)
			if op.Kind != DiffLineAdd {
				hunk.OldCount++
			}
			if op.Kind != DiffLineRemove {
				hunk.NewCount++
			}
		}
		for k := idx; k < stop; k++ {
			if ops[k].Kind != DiffLineAdd {
				oldLine++
			}
			if ops[k].Kind != DiffLineRemove {
				newLine++
			}
		}
		hunks = append(hunks, hunk)
		idx = stop
	}
	return hunks
}
