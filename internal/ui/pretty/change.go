package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/inclex/pkg/lexer"
	"github.com/yaklabco/inclex/pkg/lexer/inc"
	"github.com/yaklabco/inclex/pkg/textedit"
)

// maxTokenText truncates token text in change trees.
const maxTokenText = 32

// FormatEvent renders a hierarchy event: the edit, then the change tree or
// the rebuild notice. text is the document after the edit.
func (s *Styles) FormatEvent(ev *inc.TokenHierarchyEvent, text lexer.Text) string {
	var sb strings.Builder
	info := ev.Info
	fmt.Fprintf(&sb, "%s %s\n", s.Bold.Render("edit"), s.Offset.Render(fmt.Sprintf("@%d -%d +%d",
		info.ModOffset(), info.RemovedLength(), info.InsertedLength())))

	if ev.Type == inc.EventRebuild {
		sb.WriteString(s.Warning.Render("  relex failed; hierarchy dropped for rebuild"))
		sb.WriteByte('\n')
		return sb.String()
	}
	if ev.Change != nil {
		s.writeChange(&sb, ev.Change, text, 1)
	}
	return sb.String()
}

// FormatChange renders a change and its embedded changes as an indented
// tree.
func (s *Styles) FormatChange(change *inc.TokenChangeInfo, text lexer.Text) string {
	var sb strings.Builder
	s.writeChange(&sb, change, text, 0)
	return sb.String()
}

func (s *Styles) writeChange(sb *strings.Builder, change *inc.TokenChangeInfo, text lexer.Text, depth int) {
	indent := strings.Repeat("  ", depth)
	lang := change.LanguagePath().Inner()

	header := fmt.Sprintf("%s%s %s", indent, s.Language.Render(change.LanguagePath().String()),
		s.Offset.Render(fmt.Sprintf("[%d] @%d -%d +%d", change.Index(), change.Offset(),
			change.RemovedTokenCount(), change.AddedTokenCount())))
	if change.IsBoundsChange() {
		header += " " + s.Bounds.Render("(bounds)")
	}
	sb.WriteString(header)
	sb.WriteByte('\n')

	removed := change.RemovedTokenList()
	for i := range removed.TokenCount() {
		tok := removed.TokenOrEmbedding(i).Token()
		fmt.Fprintf(sb, "%s  %s %s %s\n", indent, s.Removed.Render("-"),
			s.Token.Render(lang.TokenName(tok.ID())),
			s.Offset.Render(fmt.Sprintf("%d+%d", removed.TokenOffset(i), tok.Length())))
	}

	current := change.CurrentTokenList()
	for i := change.Index(); i < change.Index()+change.AddedTokenCount(); i++ {
		tok := current.TokenOrEmbedding(i).Token()
		off := current.TokenOffset(i)
		fmt.Fprintf(sb, "%s  %s %s %s %s\n", indent, s.Added.Render("+"),
			s.Token.Render(lang.TokenName(tok.ID())),
			s.Offset.Render(fmt.Sprintf("%d+%d", off, tok.Length())),
			s.Text.Render(quoteShort(lexer.TextString(text, off, off+tok.Length()))))
	}

	for _, nested := range change.EmbeddedChanges() {
		s.writeChange(sb, nested, text, depth+1)
	}
}

func quoteShort(text string) string {
	if len(text) > maxTokenText {
		return fmt.Sprintf("%q...", text[:maxTokenText])
	}
	return fmt.Sprintf("%q", text)
}

// FormatDiff renders a unified line diff with add and remove coloring.
func (s *Styles) FormatDiff(diff *textedit.Diff) string {
	if !diff.HasChanges() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(s.DiffRemove.Render("--- " + diff.OldName))
	sb.WriteByte('\n')
	sb.WriteString(s.DiffAdd.Render("+++ " + diff.NewName))
	sb.WriteByte('\n')
	for _, h := range diff.Hunks {
		sb.WriteString(s.DiffHunk.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)))
		sb.WriteByte('\n')
		for _, line := range h.Lines {
			switch line.Kind {
			case textedit.DiffLineAdd:
				sb.WriteString(s.DiffAdd.Render("+" + line.Content))
			case textedit.DiffLineRemove:
				sb.WriteString(s.DiffRemove.Render("-" + line.Content))
			default:
				sb.WriteString(s.DiffContext.Render(" " + line.Content))
			}
			sb.WriteByte('\n')
		}
	}
	fmt.Fprintf(&sb, "%s\n", s.Dim.Render(fmt.Sprintf("%d additions, %d deletions", diff.Additions, diff.Deletions)))
	return sb.String()
}
