// Package gitcli implements vcs.Interface using the git commandline tool.
package gitcli

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"github.com/relplan/relplan/config"
	"github.com/relplan/relplan/model"
	"github.com/relplan/relplan/vcs"
)

// Git implements vcs.Interface using the git commandline tool.
type Git struct {
	cfg config.Config
	wd  string
}

func New(cfg config.Config, wd string) *Git {
	return &Git{
		cfg: cfg,
		wd:  wd,
	}
}

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
	logFields = 5
)

var logFormat = "--pretty=format:" + strings.Join([]string{"%H", "%aN", "%aE", "%s", "%b"}, "%x1f") + "%x1e"

func (g *Git) ReadCommits(ctx context.Context, since string) ([]*model.Commit, error) {
	b, err := g.call(ctx, []string{"log", logFormat, vcs.RevRange(since), "--"})
	if err != nil {
		return nil, err
	}
	return parseLog(string(b)), nil
}

// parseLog splits git log output into commits. Records with missing fields
// are kept with those fields empty.
func parseLog(out string) []*model.Commit {
	var commits []*model.Commit
	for _, rec := range strings.Split(out, recordSep) {
		rec = strings.Trim(rec, "\n")
		if rec == "" {
			continue
		}
		parts := strings.SplitN(rec, fieldSep, logFields)
		for len(parts) < logFields {
			parts = append(parts, "")
		}
		commits = append(commits, &model.Commit{
			ID:          strings.TrimSpace(parts[0]),
			Author:      parts[1],
			AuthorEmail: parts[2],
			Subject:     parts[3],
			Body:        parts[4],
		})
	}
	return commits
}

func (g *Git) ReadAuthors(ctx context.Context, since string) ([]string, error) {
	b, err := g.call(ctx, []string{"shortlog", "-sne", vcs.RevRange(since), "--"})
	if err != nil {
		return nil, err
	}
	return lines(b), nil
}

func (g *Git) ReadTags(ctx context.Context, query string) ([]string, error) {
	args := []string{
		"tag",
	}
	if query != "" {
		args = append(args, "-l", query)
	}
	b, err := g.call(ctx, args)
	if err != nil {
		return nil, err
	}
	return lines(b), nil
}

func lines(b []byte) []string {
	var res []string
	scanner := bufio.NewScanner(bytes.NewBuffer(b))
	for scanner.Scan() {
		if s := scanner.Text(); strings.TrimSpace(s) != "" {
			res = append(res, s)
		}
	}
	return res
}
