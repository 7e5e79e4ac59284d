package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/relplan/relplan/commit"
	"github.com/relplan/relplan/model"
)

// CheckFailure lists the commits that don't follow the commit policy.
type CheckFailure struct {
	Failures []FailureEntry
}

type FailureEntry struct {
	commitID    string
	commitTitle string
	err         error
}

func (cf CheckFailure) Error() string {
	return fmt.Sprintf("%d check(s) failed", len(cf.Failures))
}

func (cf CheckFailure) Is(other error) bool {
	_, ok := other.(CheckFailure)
	return ok
}

// WriteFailure writes the failures grouped by commit.
func (cf CheckFailure) WriteFailure(w io.Writer) error {
	if len(cf.Failures) == 0 {
		return nil
	}
	bw := bufio.NewWriter(w)

	var byCommit [][]FailureEntry
	for _, failure := range cf.Failures {
		found := false
		for i, prev := range byCommit {
			if sameCommit(prev[0], failure) {
				byCommit[i] = append(prev, failure)
				found = true
				break
			}
		}
		if !found {
			byCommit = append(byCommit, []FailureEntry{failure})
		}
	}

	for _, failures := range byCommit {
		title := failures[0].commitTitle
		if id := model.ShortID(failures[0].commitID); id != "" {
			title = id + " " + title
		}
		bw.WriteString(title)
		bw.WriteString("\n")
		for _, failure := range failures {
			bw.WriteString("  ")
			bw.WriteString(failure.err.Error())
			bw.WriteString("\n")
		}
	}

	return bw.Flush()
}

func sameCommit(a, b FailureEntry) bool {
	if a.commitID != "" || b.commitID != "" {
		return a.commitID == b.commitID
	}
	return a.commitTitle == b.commitTitle
}

// CheckMessages checks raw commit messages, as passed to a commit-msg hook.
func (r *Runner) CheckMessages(ctx context.Context, messages []string) error {
	parser := r.analyzer.Parser()
	var failures []FailureEntry
	for _, msg := range messages {
		failures = append(failures, r.checkCommit(parser.ParseCommit(parseMessage(msg)))...)
	}
	if len(failures) > 0 {
		return CheckFailure{Failures: failures}
	}
	return nil
}

// CheckReadMessage checks a single commit message read from rdr.
func (r *Runner) CheckReadMessage(ctx context.Context, rdr io.Reader) error {
	raw, err := io.ReadAll(rdr)
	if err != nil {
		return err
	}
	return r.CheckMessages(ctx, []string{string(raw)})
}

// CheckCommitsFromVCS checks all commits since the last release.
func (r *Runner) CheckCommitsFromVCS(ctx context.Context) error {
	latest, err := r.analyzer.LatestRelease(ctx)
	if err != nil {
		return err
	}
	commits, err := r.analyzer.ReadCommitsSince(ctx, latest)
	if err != nil {
		return err
	}
	parser := r.analyzer.Parser()
	var failures []FailureEntry
	for _, mc := range commits {
		failures = append(failures, r.checkCommit(parser.ParseCommit(mc))...)
	}
	if len(failures) > 0 {
		return CheckFailure{Failures: failures}
	}
	return nil
}

var errNotConventional = errors.New("subject is not a conventional commit")

func (r *Runner) checkCommit(pc commit.ParsedCommit) []FailureEntry {
	var failures []FailureEntry
	entry := func(err error) FailureEntry {
		return FailureEntry{commitID: pc.CommitID(), commitTitle: pc.Raw(), err: err}
	}

	if _, ok := pc.(*commit.Unconventional); ok {
		return append(failures, entry(errNotConventional))
	}
	if pc.Scope() != "" && len(r.cfg.AllowedScopes) > 0 && !inStrs(pc.Scope(), r.cfg.AllowedScopes) {
		failures = append(failures, entry(fmt.Errorf("scope %q is disallowed", pc.Scope())))
	}
	if len(r.cfg.AllowedTypes) > 0 && !inStrs(pc.Type(), r.cfg.AllowedTypes) {
		failures = append(failures, entry(fmt.Errorf("commit type %q is disallowed", pc.Type())))
	}
	return failures
}

// parseMessage splits a raw commit message into subject and body, dropping
// git's comment lines. The body is everything after the subject line, with
// or without a separating blank line.
func parseMessage(s string) *model.Commit {
	lines := strings.Split(s, "\n")
	var cleaned []string
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		cleaned = append(cleaned, line)
	}
	if len(cleaned) == 0 {
		return &model.Commit{}
	}
	body := strings.Join(cleaned[1:], "\n")
	body = strings.TrimRight(strings.TrimLeft(body, "\r\n"), "\r\n")
	return &model.Commit{Subject: strings.TrimRight(cleaned[0], "\r"), Body: body}
}

func inStrs(s string, cands []string) bool {
	for _, cand := range cands {
		if s == cand {
			return true
		}
	}
	return false
}
