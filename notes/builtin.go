package notes

import (
	"io"
	"strings"

	"github.com/relplan/relplan/commit"
)

type section struct {
	title   string
	buckets []string
}

var sections = []section{
	{title: "Breaking Changes", buckets: []string{commit.BucketBreaking}},
	{title: "Features", buckets: []string{commit.BucketFeat}},
	{title: "Fixes", buckets: []string{commit.BucketFix}},
	{title: "Improvements", buckets: []string{commit.BucketPerf, commit.BucketRefactor}},
	{title: "Other", buckets: []string{
		commit.BucketDocs,
		commit.BucketCI,
		commit.BucketBuild,
		commit.BucketTest,
		commit.BucketChore,
		commit.BucketOther,
	}},
}

// Builtin renders a fixed layout: one section per non-empty group, then the
// compare link and contributors.
type Builtin struct{}

func (Builtin) Render(w io.Writer, d Data) error {
	var sb strings.Builder
	sb.WriteString(Sections(d.Groups))
	if d.CompareURL != "" {
		sb.WriteString("\n\n**Compare**: ")
		sb.WriteString(d.CompareURL)
	}
	if len(d.Contributors) > 0 {
		sb.WriteString("\n\n**Contributors**: ")
		sb.WriteString(strings.Join(d.Contributors, ", "))
	}

	_, err := io.WriteString(w, strings.TrimSpace(sb.String())+"\n")
	return err
}

// Sections renders the grouped commit sections, trimmed. Empty groups are
// left out.
func Sections(g commit.Groups) string {
	var lines []string
	for _, sec := range sections {
		commits := g.Concat(sec.buckets...)
		if len(commits) == 0 {
			continue
		}
		lines = append(lines, "### "+sec.title)
		for _, c := range commits {
			lines = append(lines, itemLine(c))
		}
		lines = append(lines, "")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// itemLine renders "- description (short id)". The parentheses are kept when
// the id is unknown.
func itemLine(c commit.ParsedCommit) string {
	return "- " + c.Description() + " (" + c.ShortID() + ")"
}
