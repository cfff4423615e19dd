package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/inclex/pkg/analysis"
)

const tablePadding = 2

// FormatLanguageTable renders per-language token counts as an aligned
// table: names left-aligned, counts right-aligned.
func (s *Styles) FormatLanguageTable(langs []analysis.LanguageAnalysis) string {
	if len(langs) == 0 {
		return ""
	}

	nameW, filesW, tokensW := len("LANGUAGE"), len("FILES"), len("TOKENS")
	for _, l := range langs {
		nameW = max(nameW, len(l.Language))
		filesW = max(filesW, len(strconv.Itoa(l.Files)))
		tokensW = max(tokensW, len(strconv.Itoa(l.Tokens)))
	}
	gap := strings.Repeat(" ", tablePadding)

	var sb strings.Builder
	sb.WriteString(s.TableHeader.Render(fmt.Sprintf("%-*s%s%*s%s%*s",
		nameW, "LANGUAGE", gap, filesW, "FILES", gap, tokensW, "TOKENS")))
	sb.WriteByte('\n')
	sb.WriteString(s.TableBorder.Render(strings.Repeat("-", nameW+filesW+tokensW+2*tablePadding)))
	sb.WriteByte('\n')
	for _, l := range langs {
		sb.WriteString(s.Language.Render(fmt.Sprintf("%-*s", nameW, l.Language)))
		fmt.Fprintf(&sb, "%s%*d%s%*d\n", gap, filesW, l.Files, gap, tokensW, l.Tokens)
	}
	return sb.String()
}
