package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relplan/relplan/commit"
	"github.com/relplan/relplan/config"
	"github.com/relplan/relplan/model"
	"github.com/relplan/relplan/notes"
	"github.com/relplan/relplan/vcs"
)

func mockTermIO(stdin io.Reader) (config.TerminalIO, *bytes.Buffer, *bytes.Buffer) {
	ob := &bytes.Buffer{}
	eb := &bytes.Buffer{}
	tio := config.TerminalIO{Stdin: stdin, Stdout: ob, Stderr: eb}
	return tio, ob, eb
}

func newTestRunner(t *testing.T, overrides *config.Config, m *vcs.Mock, opts ...Option) *Runner {
	t.Helper()
	tio, _, _ := mockTermIO(nil)
	cfg := config.NewWithTerminalIO(overrides, &tio)
	require.NoError(t, cfg.Validate())
	rnr, err := New(cfg, m, opts...)
	require.NoError(t, err)
	return rnr
}

func commits(subjects ...string) []*model.Commit {
	res := make([]*model.Commit, len(subjects))
	for i, s := range subjects {
		res[i] = &model.Commit{ID: strings.Repeat(string(rune('a'+i)), 40), Subject: s}
	}
	return res
}

func TestPlanFirstRelease(t *testing.T) {
	m := vcs.NewMock().
		SetCommits(commits("feat: add x", "fix: y")...).
		SetAuthors("2\tAlice <a@x.com>")
	rnr := newTestRunner(t, &config.Config{Repository: "cool/repo"}, m)

	plan, err := rnr.Plan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "", plan.PreviousTag)
	assert.Equal(t, "0.0.0", plan.PreviousVersion)
	assert.Equal(t, commit.BumpMinor, plan.Bump)
	assert.Equal(t, "0.1.0", plan.NewVersion)
	assert.Equal(t, "v0.1.0", plan.NewTag)
	assert.Equal(t, 2, plan.CommitCount)
	assert.Contains(t, plan.NotesMarkdown, "### Features\n- add x (aaaaaaa)")
	assert.Contains(t, plan.NotesMarkdown, "### Fixes\n- y (bbbbbbb)")
	assert.Contains(t, plan.NotesMarkdown, "**Contributors**: Alice")
	assert.NotContains(t, plan.NotesMarkdown, "Compare", "no compare link without a previous tag")
	assert.Equal(t, []string{"", ""}, m.Since())
}

func TestPlanMajor(t *testing.T) {
	m := vcs.NewMock().
		SetTags("v1.2.3", "v1.2.2").
		SetCommits(commits("feat!: drop old api")...)
	rnr := newTestRunner(t, &config.Config{Repository: "cool/repo"}, m)

	plan, err := rnr.Plan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "v1.2.3", plan.PreviousTag)
	assert.Equal(t, "1.2.3", plan.PreviousVersion)
	assert.Equal(t, commit.BumpMajor, plan.Bump)
	assert.Equal(t, "2.0.0", plan.NewVersion)
	assert.Equal(t, "v2.0.0", plan.NewTag)
	assert.Contains(t, plan.NotesMarkdown, "### Breaking Changes\n- drop old api (aaaaaaa)")
	assert.Contains(t, plan.NotesMarkdown, "**Compare**: https://github.com/cool/repo/compare/v1.2.3...v2.0.0")
	assert.NotContains(t, plan.NotesMarkdown, "Contributors")
	assert.Equal(t, []string{"v1.2.3", "v1.2.3"}, m.Since())
}

func TestPlanNoRelease(t *testing.T) {
	m := vcs.NewMock().
		SetTags("v1.0.0").
		SetCommits(commits("chore: tidy")...).
		SetError("authors", errors.New("should not be called"))
	rnr := newTestRunner(t, nil, m)

	plan, err := rnr.Plan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ReleasePlan{
		PreviousTag:     "v1.0.0",
		PreviousVersion: "1.0.0",
		Bump:            commit.BumpNone,
		NewVersion:      "1.0.0",
		NewTag:          "v1.0.0",
		NotesMarkdown:   "",
		CommitCount:     1,
	}, plan)
}

func TestPlanBreakingAmongFixes(t *testing.T) {
	cs := commits("fix: a", "fix: b", "fix: c")
	cs[1].Body = "BREAKING CHANGE: b changes the output format"
	m := vcs.NewMock().SetTags("v0.3.1").SetCommits(cs...)
	rnr := newTestRunner(t, nil, m)

	plan, err := rnr.Plan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, commit.BumpMajor, plan.Bump)
	assert.Equal(t, "1.0.0", plan.NewVersion)
}

func TestPlanTemplate(t *testing.T) {
	p := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(p, []byte("Release {{tag}} ({{version}})\n{{notes}}"), 0o644))

	m := vcs.NewMock().
		SetTags("v1.2.3").
		SetCommits(commits("feat!: drop old api")...).
		SetAuthors("1\tAlice <a@x.com>")
	rnr := newTestRunner(t, &config.Config{TemplatePath: p}, m)

	plan, err := rnr.Plan(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(plan.NotesMarkdown, "Release v2.0.0 (2.0.0)\n### Breaking Changes"), plan.NotesMarkdown)
	assert.NotContains(t, plan.NotesMarkdown, "Alice")
}

type fixedRenderer string

func (f fixedRenderer) Render(w io.Writer, d notes.Data) error {
	_, err := io.WriteString(w, string(f)+" "+d.Tag)
	return err
}

func TestPlanWithRenderer(t *testing.T) {
	m := vcs.NewMock().SetCommits(commits("fix: y")...)
	rnr := newTestRunner(t, nil, m, WithRenderer(fixedRenderer("notes for")))

	plan, err := rnr.Plan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "notes for v0.0.1", plan.NotesMarkdown)
}

func TestPlanQueryFailure(t *testing.T) {
	boom := errors.New("exit status 128")
	for _, op := range []string{"tags", "commits", "authors"} {
		t.Run(op, func(t *testing.T) {
			m := vcs.NewMock().SetTags("v1.0.0").SetCommits(commits("feat: x")...).SetError(op, boom)
			rnr := newTestRunner(t, nil, m)

			plan, err := rnr.Plan(context.Background())
			require.Error(t, err)
			assert.Equal(t, ReleasePlan{}, plan)

			var qerr *vcs.QueryError
			require.ErrorAs(t, err, &qerr)
			assert.ErrorIs(t, err, boom)
		})
	}
}

func TestPlanInvalidStoredVersion(t *testing.T) {
	m := vcs.NewMock().
		SetTags("v1.0.0", "v2.0.0-rc.1").
		SetCommits(commits("fix: a")...).
		SetAuthors("1\tAlice <a@x.com>")
	rnr := newTestRunner(t, nil, m)

	plan, err := rnr.Plan(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, commit.ErrInvalidVersionFormat)
	assert.Equal(t, ReleasePlan{}, plan)
}

func TestPlanInvalidRenderer(t *testing.T) {
	tio, _, _ := mockTermIO(nil)
	cfg := config.NewWithTerminalIO(&config.Config{TemplatePath: filepath.Join(t.TempDir(), "nope.md")}, &tio)
	_, err := New(cfg, vcs.NewMock())
	assert.Error(t, err)
}
