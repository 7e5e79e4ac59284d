// Package commit contains code for reading, classifying, and versioning
// commits.
package commit

import "fmt"

// BumpKind is the semantic versioning severity of a release. Kinds are
// ordered: BumpNone < BumpPatch < BumpMinor < BumpMajor.
type BumpKind int

const (
	BumpNone BumpKind = iota
	BumpPatch
	BumpMinor
	BumpMajor
)

func (b BumpKind) String() string {
	switch b {
	case BumpNone:
		return "none"
	case BumpPatch:
		return "patch"
	case BumpMinor:
		return "minor"
	case BumpMajor:
		return "major"
	default:
		return "<UNKNOWN>"
	}
}

func ParseBumpKind(s string) (BumpKind, error) {
	switch s {
	case "none", "":
		return BumpNone, nil
	case "patch":
		return BumpPatch, nil
	case "minor":
		return BumpMinor, nil
	case "major":
		return BumpMajor, nil
	}
	return BumpNone, fmt.Errorf("commit: unknown bump kind %q", s)
}

func (b BumpKind) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *BumpKind) UnmarshalText(p []byte) error {
	kind, err := ParseBumpKind(string(p))
	if err != nil {
		return err
	}
	*b = kind
	return nil
}
