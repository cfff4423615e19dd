package reporter

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatTokens Format = "tokens"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	switch formatStr {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "tokens":
		return FormatTokens, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: text, json, tokens", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatTokens:
		return true
	default:
		return false
	}
}
