// Package gogit implements vcs.Interface in pure Go using go-git, so planning
// works where the git binary isn't installed.
package gogit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/relplan/relplan/config"
	"github.com/relplan/relplan/model"
	"github.com/relplan/relplan/vcs"
)

// Repo implements vcs.Interface on a go-git repository.
type Repo struct {
	cfg  config.Config
	repo *git.Repository
}

// Open opens the repository containing dir.
func Open(cfg config.Config, dir string) (*Repo, error) {
	if dir == "" {
		dir = "."
	}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("gogit: failed to open repository at %s: %w", dir, err)
	}
	return New(cfg, repo), nil
}

func New(cfg config.Config, repo *git.Repository) *Repo {
	return &Repo{cfg: cfg, repo: repo}
}

func (r *Repo) ReadTags(ctx context.Context, query string) ([]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		ok, err := vcs.MatchTag(query, name)
		if err != nil {
			return err
		}
		if ok {
			tags = append(tags, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(tags)
	return tags, nil
}

func (r *Repo) ReadCommits(ctx context.Context, since string) ([]*model.Commit, error) {
	var commits []*model.Commit
	err := r.walk(ctx, since, func(c *object.Commit) {
		subject, body := splitMessage(c.Message)
		commits = append(commits, &model.Commit{
			ID:          c.Hash.String(),
			Author:      c.Author.Name,
			AuthorEmail: c.Author.Email,
			Subject:     subject,
			Body:        body,
		})
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}

type authorCount struct {
	name, email string
	n           int
}

// ReadAuthors returns lines in the format of `git shortlog -sne`, ordered by
// commit count, then name.
func (r *Repo) ReadAuthors(ctx context.Context, since string) ([]string, error) {
	var counts []*authorCount
	byKey := make(map[string]*authorCount)
	err := r.walk(ctx, since, func(c *object.Commit) {
		key := c.Author.Name + "\x00" + c.Author.Email
		ac, ok := byKey[key]
		if !ok {
			ac = &authorCount{name: c.Author.Name, email: c.Author.Email}
			byKey[key] = ac
			counts = append(counts, ac)
		}
		ac.n++
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].n != counts[j].n {
			return counts[i].n > counts[j].n
		}
		return counts[i].name < counts[j].name
	})
	lines := make([]string, len(counts))
	for i, ac := range counts {
		lines[i] = fmt.Sprintf("%6d\t%s <%s>", ac.n, ac.name, ac.email)
	}
	return lines, nil
}

// walk calls fn for each commit reachable from HEAD and not from since,
// newest first.
func (r *Repo) walk(ctx context.Context, since string, fn func(c *object.Commit)) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("gogit: failed to resolve HEAD: %w", err)
	}

	exclude := make(map[plumbing.Hash]bool)
	if since != "" {
		base, err := r.resolveTag(since)
		if err != nil {
			return err
		}
		iter := object.NewCommitPreorderIter(base, nil, nil)
		err = iter.ForEach(func(c *object.Commit) error {
			exclude[c.Hash] = true
			return ctx.Err()
		})
		if err != nil {
			return err
		}
	}
	r.cfg.Debugf("gogit: walking from %s, excluding %d commits", head.Hash(), len(exclude))

	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return err
	}
	defer iter.Close()
	return iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !exclude[c.Hash] {
			fn(c)
		}
		return nil
	})
}

// resolveTag returns the commit a tag points to, peeling annotated tags.
func (r *Repo) resolveTag(name string) (*object.Commit, error) {
	ref, err := r.repo.Tag(name)
	if err != nil {
		return nil, fmt.Errorf("gogit: tag %q: %w", name, err)
	}

	tag, err := r.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		return tag.Commit()
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return r.repo.CommitObject(ref.Hash())
	default:
		return nil, err
	}
}

// splitMessage splits a commit message the way git's %s and %b do: the
// subject is the first paragraph joined onto one line, and the body is the
// rest.
func splitMessage(msg string) (string, string) {
	msg = strings.TrimLeft(strings.ReplaceAll(msg, "\r\n", "\n"), "\n")
	subject, body := msg, ""
	if i := strings.Index(msg, "\n\n"); i >= 0 {
		subject, body = msg[:i], msg[i+2:]
	}
	lines := strings.Split(subject, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	subject = strings.Join(lines, " ")
	return subject, strings.TrimRight(strings.TrimLeft(body, "\n"), "\n")
}
