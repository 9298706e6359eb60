package debug

import (
	"strings"
	"unicode"
)

// visibleSpace stands in for whitespace graphemes in traced line text.
const visibleSpace = "·"

// FormatLine joins graphemes for display, making whitespace visible so that
// leading or trailing spaces in a wrapped line show up in traces.
func FormatLine(graphemes []string) string {
	var sb strings.Builder
	for _, g := range graphemes {
		if isBlank(g) {
			sb.WriteString(visibleSpace)
			continue
		}
		sb.WriteString(g)
	}
	return sb.String()
}

// Truncate shortens s to at most n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func isBlank(g string) bool {
	if g == "" {
		return false
	}
	for _, r := range g {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
