package generator

import "strings"

// parseOutline turns a raw model response into heading candidates: one per
// line, with bullet markers and list numbering trimmed, blank lines and
// divider lines dropped.
func parseOutline(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Trim(line, "-") == "" {
			continue
		}
		line = strings.TrimLeft(line, "-•* \t")
		// numbered lists: "1. Heading" or "2) Heading"
		if i := strings.IndexAny(line, ".)"); i > 0 && i <= 2 && isDigits(line[:i]) {
			line = strings.TrimSpace(line[i+1:])
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
