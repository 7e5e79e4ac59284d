package commit

import (
	"sort"
	"strings"
)

// Tag maps versions to release tag names and back.
type Tag struct {
	prefix string
}

func NewTag(prefix string) *Tag {
	return &Tag{prefix: prefix}
}

// Render returns the tag name for version.
func (t *Tag) Render(version string) string {
	return t.prefix + version
}

// Glob matches every candidate release tag.
func (t *Tag) Glob() string {
	return t.prefix + "*"
}

// Latest returns the highest tag carrying the prefix, ordered the way
// `git tag --sort=v:refname` orders them, or "" if there is none. The tag is
// not validated: a pre-release or malformed tag can be the latest, and the
// caller rejects its version.
func (t *Tag) Latest(tags []string) string {
	var cands []string
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || !strings.HasPrefix(tag, t.prefix) {
			continue
		}
		cands = append(cands, tag)
	}
	if len(cands) == 0 {
		return ""
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return compareRefVersion(cands[i], cands[j]) < 0
	})
	return cands[len(cands)-1]
}

// compareRefVersion compares two ref names, treating runs of digits as
// numbers: v1.10.0 sorts after v1.9.0, and v2.0.0-rc.1 after v2.0.0.
func compareRefVersion(a, b string) int {
	for a != "" && b != "" {
		if isDigit(a[0]) && isDigit(b[0]) {
			na, ra := splitDigits(a)
			nb, rb := splitDigits(b)
			if c := compareNumeric(na, nb); c != 0 {
				return c
			}
			a, b = ra, rb
			continue
		}
		if a[0] != b[0] {
			if a[0] < b[0] {
				return -1
			}
			return 1
		}
		a, b = a[1:], b[1:]
	}
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func splitDigits(s string) (string, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// compareNumeric compares two digit strings by value. Equal values with
// different leading zeros sort shorter first.
func compareNumeric(a, b string) int {
	ta, tb := strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(ta, tb); c != 0 {
		return c
	}
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return 0
}
