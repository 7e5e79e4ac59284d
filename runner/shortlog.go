package runner

import (
	"regexp"
	"strings"
)

// shortlogRE matches `git shortlog -sne` lines: a commit count, then the
// author name, then an optional email.
var shortlogRE = regexp.MustCompile(`^\s*\d+\s+(.+?)(?:\s+<.+>)?$`)

// Contributors extracts author names from shortlog lines, keeping the first
// occurrence of each name. Lines that don't look like shortlog output are
// skipped.
func Contributors(lines []string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := shortlogRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
