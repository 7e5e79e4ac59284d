// Package runner composes commit analysis, contributor lookup, and notes
// rendering into release plans, and implements the other command-line
// operations.
package runner

import (
	"context"

	"github.com/relplan/relplan/commit"
	"github.com/relplan/relplan/config"
	"github.com/relplan/relplan/notes"
	"github.com/relplan/relplan/vcs"
)

type Runner struct {
	cfg      config.Config
	vcs      vcs.Interface
	analyzer *commit.Analyzer
	renderer notes.Renderer
}

type Option func(r *Runner)

// WithRenderer overrides the notes renderer selected by the config.
func WithRenderer(rend notes.Renderer) Option {
	return func(r *Runner) {
		r.renderer = rend
	}
}

func New(cfg config.Config, vcs vcs.Interface, opts ...Option) (*Runner, error) {
	r := &Runner{
		cfg:      cfg,
		vcs:      vcs,
		analyzer: commit.NewAnalyzer(cfg, vcs, nil),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.renderer == nil {
		rend, err := notes.New(cfg)
		if err != nil {
			return nil, err
		}
		r.renderer = rend
	}
	return r, nil
}

func (r *Runner) LatestRelease(ctx context.Context) (string, error) {
	return r.analyzer.LatestRelease(ctx)
}

// Plan computes the release plan for the commits since the latest release.
// Any query failure aborts the plan.
func (r *Runner) Plan(ctx context.Context) (ReleasePlan, error) {
	an, err := r.analyzer.Analyze(ctx)
	if err != nil {
		return ReleasePlan{}, err
	}

	plan := ReleasePlan{
		PreviousTag:     an.PreviousTag,
		PreviousVersion: an.PreviousVersion,
		Bump:            an.Bump,
		NewVersion:      an.NewVersion,
		NewTag:          an.NewTag,
		CommitCount:     len(an.Commits),
	}
	if an.Bump == commit.BumpNone {
		r.cfg.Debugf("no release-worthy commits since %q", an.PreviousTag)
		return plan, nil
	}

	contributors, err := r.contributors(ctx, an.PreviousTag)
	if err != nil {
		return ReleasePlan{}, err
	}
	md, err := notes.RenderString(r.renderer, notes.Data{
		Groups:       commit.Group(an.Commits),
		Contributors: contributors,
		PreviousTag:  an.PreviousTag,
		Tag:          an.NewTag,
		CompareURL:   notes.CompareURL(r.cfg.CompareURLBase, r.cfg.Repository, an.PreviousTag, an.NewTag),
	})
	if err != nil {
		return ReleasePlan{}, err
	}
	plan.NotesMarkdown = md
	return plan, nil
}

func (r *Runner) contributors(ctx context.Context, since string) ([]string, error) {
	lines, err := r.vcs.ReadAuthors(ctx, since)
	if err != nil {
		return nil, &vcs.QueryError{Op: "read authors", Ref: since, Err: err}
	}
	return Contributors(lines), nil
}
