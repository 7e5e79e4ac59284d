package commit

import (
	"errors"
	"testing"

	"github.com/blang/semver/v4"
)

func TestIncrement(t *testing.T) {
	tcs := []struct {
		version string
		bump    BumpKind
		expect  string
	}{
		{"1.2.3", BumpPatch, "1.2.4"},
		{"1.2.3", BumpMinor, "1.3.0"},
		{"1.2.3", BumpMajor, "2.0.0"},
		{"1.2.3", BumpNone, "1.2.3"},
		{"0.0.0", BumpMinor, "0.1.0"},
		{"0.0.0", BumpPatch, "0.0.1"},
		{"0.9.9", BumpMajor, "1.0.0"},
		{"10.20.30", BumpPatch, "10.20.31"},
	}

	for _, tc := range tcs {
		t.Run(tc.version+"-"+tc.bump.String(), func(t *testing.T) {
			got, err := Increment(tc.version, tc.bump)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.expect {
				t.Fatalf("expected %s, got %s", tc.expect, got)
			}

			again, err := Increment(tc.version, tc.bump)
			if err != nil {
				t.Fatal(err)
			}
			if again != got {
				t.Fatalf("expected deterministic result, got %s then %s", got, again)
			}

			if tc.bump == BumpNone {
				return
			}
			prev := semver.MustParse(tc.version)
			next := semver.MustParse(got)
			if !next.GT(prev) {
				t.Fatalf("expected %s > %s", next, prev)
			}
		})
	}
}

func TestIncrementInvalid(t *testing.T) {
	for _, version := range []string{"", "1.2", "v1.2.3", "1.2.3-rc.0", "1.2.3+build", "1.2.3.4", " 1.2.3", "a.b.c"} {
		t.Run(version, func(t *testing.T) {
			_, err := Increment(version, BumpPatch)
			if err == nil {
				t.Fatalf("expected %q to be rejected", version)
			}
			if !errors.Is(err, ErrInvalidVersionFormat) {
				t.Errorf("expected ErrInvalidVersionFormat, got %v", err)
			}
			var verr *InvalidVersionError
			if !errors.As(err, &verr) || verr.Version != version {
				t.Errorf("expected InvalidVersionError for %q, got %v", version, err)
			}
		})
	}
}

func TestBumpKind(t *testing.T) {
	if !(BumpMajor > BumpMinor && BumpMinor > BumpPatch && BumpPatch > BumpNone) {
		t.Fatal("expected bump kinds to be ordered by severity")
	}
	for _, kind := range []BumpKind{BumpNone, BumpPatch, BumpMinor, BumpMajor} {
		b, err := kind.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var parsed BumpKind
		if err := parsed.UnmarshalText(b); err != nil {
			t.Fatal(err)
		}
		if parsed != kind {
			t.Errorf("expected %s, got %s", kind, parsed)
		}
	}
	if _, err := ParseBumpKind("huge"); err == nil {
		t.Error("expected unknown bump kind to fail")
	}
}
