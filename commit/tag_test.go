package commit

import "testing"

func TestTagLatest(t *testing.T) {
	tcs := []struct {
		name   string
		tags   []string
		expect string
	}{
		{name: "none"},
		{name: "single", tags: []string{"v0.1.0"}, expect: "v0.1.0"},
		{name: "version-order", tags: []string{"v1.2.3", "v1.10.0", "v1.9.0"}, expect: "v1.10.0"},
		{name: "prerelease-after-release", tags: []string{"v1.0.0", "v2.0.0-rc.1", "v2.0.0"}, expect: "v2.0.0-rc.1"},
		{name: "prerelease-highest", tags: []string{"v1.0.0", "v2.0.0-rc.1"}, expect: "v2.0.0-rc.1"},
		{name: "two-part", tags: []string{"v1.4.9", "v1.5"}, expect: "v1.5"},
		{name: "skip-unprefixed", tags: []string{"release-9", "cool/v3.0.0", "v0.2.0"}, expect: "v0.2.0"},
		{name: "only-unprefixed", tags: []string{"latest", "1.0.0"}},
	}

	tag := NewTag("v")
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := tag.Latest(tc.tags); got != tc.expect {
				t.Fatalf("expected %q, got %q", tc.expect, got)
			}
		})
	}
}

func TestCompareRefVersion(t *testing.T) {
	tcs := []struct {
		a, b   string
		expect int
	}{
		{a: "v1.9.0", b: "v1.10.0", expect: -1},
		{a: "v1.10.0", b: "v1.9.0", expect: 1},
		{a: "v1.0.0", b: "v1.0.0", expect: 0},
		{a: "v2.0.0", b: "v2.0.0-rc.1", expect: -1},
		{a: "v2.0.0-rc.2", b: "v2.0.0-rc.10", expect: -1},
		{a: "v1.2", b: "v1.2.0", expect: -1},
		{a: "v01.0.0", b: "v1.0.0", expect: 1},
	}
	for _, tc := range tcs {
		if got := compareRefVersion(tc.a, tc.b); got != tc.expect {
			t.Errorf("compareRefVersion(%q, %q): expected %d, got %d", tc.a, tc.b, tc.expect, got)
		}
	}
}

func TestTagRender(t *testing.T) {
	tag := NewTag("v")
	if s := tag.Render("1.2.3"); s != "v1.2.3" {
		t.Errorf("expected v1.2.3, got %q", s)
	}
	if g := tag.Glob(); g != "v*" {
		t.Errorf("expected v*, got %q", g)
	}

	cool := NewTag("cool/v")
	if s := cool.Render("1.2.3"); s != "cool/v1.2.3" {
		t.Errorf("expected cool/v1.2.3, got %q", s)
	}
	if got := cool.Latest([]string{"v9.0.0", "cool/v0.1.0"}); got != "cool/v0.1.0" {
		t.Errorf("expected cool/v0.1.0, got %q", got)
	}
}
