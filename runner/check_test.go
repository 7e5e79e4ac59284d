package runner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relplan/relplan/config"
	"github.com/relplan/relplan/model"
	"github.com/relplan/relplan/vcs"
)

func TestCheckMessages(t *testing.T) {
	tcs := []struct {
		name       string
		cfg        *config.Config
		messages   []string
		expectFail int
	}{
		{name: "ok", messages: []string{"feat: cool thing", "fix(parser): other thing\n\nbody"}},
		{name: "not-conventional", messages: []string{"cool thing"}, expectFail: 1},
		{name: "comments", messages: []string{"# Please enter the commit message\nfix: thing\n\n# comment"}},
		{
			name:       "disallowed-scope",
			cfg:        &config.Config{AllowedScopes: []string{"api"}},
			messages:   []string{"fix(ui): thing", "fix(api): thing", "fix: unscoped"},
			expectFail: 1,
		},
		{
			name:       "disallowed-type",
			cfg:        &config.Config{AllowedTypes: []string{"feat", "fix"}, AllowedScopes: []string{"api"}},
			messages:   []string{"wip(ui): thing"},
			expectFail: 2,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			rnr := newTestRunner(t, tc.cfg, vcs.NewMock())
			err := rnr.CheckMessages(context.Background(), tc.messages)
			if tc.expectFail == 0 {
				require.NoError(t, err)
				return
			}
			var cf CheckFailure
			require.True(t, errors.As(err, &cf), "expected CheckFailure, got %v", err)
			assert.Len(t, cf.Failures, tc.expectFail)
			assert.ErrorIs(t, err, CheckFailure{})
		})
	}
}

func TestCheckReadMessage(t *testing.T) {
	rnr := newTestRunner(t, nil, vcs.NewMock())
	require.NoError(t, rnr.CheckReadMessage(context.Background(), strings.NewReader("feat: x\n")))
	require.Error(t, rnr.CheckReadMessage(context.Background(), strings.NewReader("x\n")))
}

func TestCheckCommitsFromVCS(t *testing.T) {
	m := vcs.NewMock().SetTags("v0.1.0").SetCommits(
		&model.Commit{ID: "1111111aaaa", Subject: "feat: a"},
		&model.Commit{ID: "2222222bbbb", Subject: "whatever"},
		&model.Commit{ID: "3333333cccc", Subject: "wip: c"},
	)
	rnr := newTestRunner(t, &config.Config{AllowedTypes: []string{"feat", "fix"}}, m)

	err := rnr.CheckCommitsFromVCS(context.Background())
	var cf CheckFailure
	require.True(t, errors.As(err, &cf), "expected CheckFailure, got %v", err)
	require.Len(t, cf.Failures, 2)

	b := &bytes.Buffer{}
	require.NoError(t, cf.WriteFailure(b))
	expect := `2222222 whatever
  subject is not a conventional commit
3333333 wip: c
  commit type "wip" is disallowed
`
	assert.Equal(t, expect, b.String())
}

func TestWriteFailureGroupsByCommit(t *testing.T) {
	cf := CheckFailure{Failures: []FailureEntry{
		{commitTitle: "wip(ui): a", err: errors.New("one")},
		{commitTitle: "other", err: errors.New("two")},
		{commitTitle: "wip(ui): a", err: errors.New("three")},
	}}
	b := &bytes.Buffer{}
	require.NoError(t, cf.WriteFailure(b))
	assert.Equal(t, "wip(ui): a\n  one\n  three\nother\n  two\n", b.String())
}

func TestParseMessage(t *testing.T) {
	tcs := []struct {
		name          string
		msg           string
		expectSubject string
		expectBody    string
	}{
		{name: "subject-only", msg: "fix: a\n", expectSubject: "fix: a"},
		{name: "blank-separator", msg: "fix: a\n\nmore detail\n", expectSubject: "fix: a", expectBody: "more detail"},
		{name: "no-separator", msg: "fix: a\nBREAKING CHANGE: output changed", expectSubject: "fix: a", expectBody: "BREAKING CHANGE: output changed"},
		{name: "comments", msg: "# hint\nfix: a\n# more\n\nbody line\n# trailing", expectSubject: "fix: a", expectBody: "body line"},
		{name: "crlf", msg: "fix: a\r\n\r\nbody\r\n", expectSubject: "fix: a", expectBody: "body"},
		{name: "empty"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			c := parseMessage(tc.msg)
			assert.Equal(t, tc.expectSubject, c.Subject)
			assert.Equal(t, tc.expectBody, c.Body)
		})
	}
}

func TestCheckMessagesBreakingWithoutBlankLine(t *testing.T) {
	rnr := newTestRunner(t, nil, vcs.NewMock())
	pc := rnr.analyzer.Parser().ParseCommit(parseMessage("fix: a\nBREAKING CHANGE: output changed"))
	assert.True(t, pc.IsBreaking())
	require.NoError(t, rnr.CheckMessages(context.Background(), []string{"fix: a\nBREAKING CHANGE: output changed"}))
}
