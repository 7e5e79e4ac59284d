// Package vcs abstracts the version control queries release planning needs.
// Implementations: gitcli (the git command line) and gogit (pure Go).
package vcs

import (
	"context"
	"fmt"
	"path"

	"github.com/relplan/relplan/model"
)

// Interface is a read-only view of a repository's history.
type Interface interface {
	// ReadTags lists tags matching the glob query, or all tags if query is
	// empty.
	ReadTags(ctx context.Context, query string) ([]string, error)
	// ReadCommits returns the commits reachable from HEAD and not from the
	// since ref, newest first. An empty since ref means the full history.
	ReadCommits(ctx context.Context, since string) ([]*model.Commit, error)
	// ReadAuthors returns shortlog lines ("count\tName <email>") for the same
	// range as ReadCommits.
	ReadAuthors(ctx context.Context, since string) ([]string, error)
}

// QueryError is returned when a repository query fails.
type QueryError struct {
	Op  string
	Ref string
	Err error
}

func (e *QueryError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("vcs: %s (since %q) failed: %v", e.Op, e.Ref, e.Err)
	}
	return fmt.Sprintf("vcs: %s failed: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// RevRange returns the git revision range for commits since ref.
func RevRange(since string) string {
	if since == "" {
		return "HEAD"
	}
	return since + "..HEAD"
}

// MatchTag reports whether tag matches the glob query. An empty query matches
// every tag. "*" doesn't cross a "/".
func MatchTag(query, tag string) (bool, error) {
	if query == "" {
		return true, nil
	}
	ok, err := path.Match(query, tag)
	if err != nil {
		return false, fmt.Errorf("vcs: bad tag pattern %q: %w", query, err)
	}
	return ok, nil
}
