package vcs

import (
	"context"

	"github.com/relplan/relplan/model"
)

// Mock is an in-memory Interface for tests.
type Mock struct {
	tags    []string
	commits []*model.Commit
	authors []string
	errs    map[string]error
	since   []string
}

func NewMock() *Mock {
	return &Mock{errs: make(map[string]error)}
}

func (m *Mock) SetTags(tags ...string) *Mock {
	m.tags = tags
	return m
}

func (m *Mock) SetCommits(commits ...*model.Commit) *Mock {
	finalCommits := make([]*model.Commit, len(commits))
	for i, commit := range commits {
		c := *commit
		finalCommits[i] = &c
	}
	m.commits = finalCommits
	return m
}

func (m *Mock) SetAuthors(lines ...string) *Mock {
	m.authors = lines
	return m
}

// SetError makes the named operation ("tags", "commits", "authors") fail.
func (m *Mock) SetError(op string, err error) *Mock {
	m.errs[op] = err
	return m
}

// Since returns the since refs passed to ReadCommits and ReadAuthors, in
// call order.
func (m *Mock) Since() []string {
	return m.since
}

func (m *Mock) ReadTags(ctx context.Context, query string) ([]string, error) {
	if err := m.errs["tags"]; err != nil {
		return nil, err
	}
	var tags []string
	for _, t := range m.tags {
		ok, err := MatchTag(query, t)
		if err != nil {
			return nil, err
		}
		if ok {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

func (m *Mock) ReadCommits(ctx context.Context, since string) ([]*model.Commit, error) {
	m.since = append(m.since, since)
	if err := m.errs["commits"]; err != nil {
		return nil, err
	}
	return m.commits, nil
}

func (m *Mock) ReadAuthors(ctx context.Context, since string) ([]string, error) {
	m.since = append(m.since, since)
	if err := m.errs["authors"]; err != nil {
		return nil, err
	}
	return m.authors, nil
}
