package commit

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/blang/semver/v4"
)

// DefaultVersion is the previous version of a project with no release tags.
const DefaultVersion = "0.0.0"

var ErrInvalidVersionFormat = errors.New("commit: invalid version format")

// InvalidVersionError reports a version that isn't plain major.minor.patch.
type InvalidVersionError struct {
	Version string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("commit: invalid version %q: expected major.minor.patch", e.Version)
}

func (e *InvalidVersionError) Is(target error) bool {
	return target == ErrInvalidVersionFormat
}

var versionRE = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// ParseVersion parses a strict major.minor.patch version. Pre-release and
// build metadata are rejected.
func ParseVersion(s string) (semver.Version, error) {
	if !versionRE.MatchString(s) {
		return semver.Version{}, &InvalidVersionError{Version: s}
	}
	parts := strings.Split(s, ".")
	nums := make([]uint64, len(parts))
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return semver.Version{}, &InvalidVersionError{Version: s}
		}
		nums[i] = n
	}
	return semver.Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// Increment applies bump to version. BumpNone returns version unchanged.
func Increment(version string, bump BumpKind) (string, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return "", err
	}

	switch bump {
	case BumpNone:
		return version, nil
	case BumpPatch:
		err = v.IncrementPatch()
	case BumpMinor:
		err = v.IncrementMinor()
	case BumpMajor:
		err = v.IncrementMajor()
	default:
		return "", fmt.Errorf("commit: unknown bump kind %d", int(bump))
	}
	if err != nil {
		return "", err
	}
	return v.String(), nil
}
