package commit

import (
	"context"
	"strings"

	"github.com/relplan/relplan/config"
	"github.com/relplan/relplan/model"
	"github.com/relplan/relplan/vcs"
)

// Analysis is the versioning decision for the commits since the last
// release.
type Analysis struct {
	PreviousTag     string
	PreviousVersion string
	Commits         []ParsedCommit
	Bump            BumpKind
	NewVersion      string
	NewTag          string
}

type Analyzer struct {
	cfg    config.Config
	vcs    vcs.Interface
	tag    *Tag
	parser *Parser
}

func NewAnalyzer(cfg config.Config, vcs vcs.Interface, tag *Tag) *Analyzer {
	if tag == nil {
		tag = NewTag(cfg.TagPrefix)
	}
	parser := defaultParser
	if pol := cfg.GetPolicy(); pol != nil {
		parser = NewParser(pol)
	}
	return &Analyzer{
		cfg:    cfg,
		vcs:    vcs,
		tag:    tag,
		parser: parser,
	}
}

func (a *Analyzer) Parser() *Parser { return a.parser }

// LatestRelease returns the most recent release tag, or "" if there is none.
func (a *Analyzer) LatestRelease(ctx context.Context) (string, error) {
	tags, err := a.vcs.ReadTags(ctx, a.tag.Glob())
	if err != nil {
		return "", &vcs.QueryError{Op: "read tags", Err: err}
	}
	return a.tag.Latest(tags), nil
}

// ReadCommitsSince reads the raw commits after the release tag.
func (a *Analyzer) ReadCommitsSince(ctx context.Context, tag string) ([]*model.Commit, error) {
	commits, err := a.vcs.ReadCommits(ctx, tag)
	if err != nil {
		return nil, &vcs.QueryError{Op: "read commits", Ref: tag, Err: err}
	}
	return commits, nil
}

// Analyze decides the next version from the commits since the last release.
func (a *Analyzer) Analyze(ctx context.Context) (*Analysis, error) {
	latest, err := a.LatestRelease(ctx)
	if err != nil {
		return nil, err
	}
	prevVersion := DefaultVersion
	if latest != "" {
		prevVersion = strings.TrimPrefix(latest, a.tag.prefix)
	}
	a.cfg.Debugf("latest release: %q (version %s)", latest, prevVersion)
	if _, err := ParseVersion(prevVersion); err != nil {
		return nil, err
	}

	raw, err := a.ReadCommitsSince(ctx, latest)
	if err != nil {
		return nil, err
	}
	commits := a.parser.ParseAll(raw)
	bump := a.parser.Decide(commits)
	a.cfg.Debugf("%d commits since %q, bump: %s", len(commits), latest, bump)

	newVersion, err := Increment(prevVersion, bump)
	if err != nil {
		return nil, err
	}
	return &Analysis{
		PreviousTag:     latest,
		PreviousVersion: prevVersion,
		Commits:         commits,
		Bump:            bump,
		NewVersion:      newVersion,
		NewTag:          a.tag.Render(newVersion),
	}, nil
}
