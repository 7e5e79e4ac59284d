package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/relplan/relplan/commit"
)

type Stats struct {
	Commits int64
	Counts  map[string][]*statCount
}

func (s *Stats) Add(bucket, name string, n int64) {
	counts := s.Counts[bucket]
	count, found := s.findCount(name, counts)
	if !found {
		counts = append(counts, count)
	}
	count.Add(n)

	s.Counts[bucket] = counts
}

func (s *Stats) findCount(name string, counts []*statCount) (*statCount, bool) {
	for _, c := range counts {
		if c.label == name {
			return c, true
		}
	}
	return &statCount{label: name}, false
}

// Count returns the count recorded for name in bucket.
func (s *Stats) Count(bucket, name string) int64 {
	c, found := s.findCount(name, s.Counts[bucket])
	if !found {
		return 0
	}
	return c.n
}

func (s *Stats) sortedBuckets() []string {
	buckets := make([]string, 0, len(s.Counts))
	for name := range s.Counts {
		buckets = append(buckets, name)
	}
	sort.Strings(buckets)
	return buckets
}

type statCount struct {
	label string
	n     int64
}

func (c *statCount) Add(n int64) {
	c.n += n
}

func (s *Stats) TextSummary(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(fmt.Sprintf("%d commits\n\n", s.Commits))

	for _, name := range s.sortedBuckets() {
		counts := s.Counts[name]
		sort.SliceStable(counts, func(i, j int) bool {
			return counts[i].n > counts[j].n
		})
		bw.WriteString(fmt.Sprintf("%s:\n", toTitle(name)))
		for _, count := range counts {
			label := count.label
			if label == "" {
				label = "n/a"
			}
			bw.WriteString(fmt.Sprintf("  %20s\t\t%d\n", label, count.n))
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// Stats counts commits by type, scope, and bump kind. With all set, the full
// history is read; otherwise only commits since the latest release.
func (r *Runner) Stats(ctx context.Context, all bool) (*Stats, error) {
	since := ""
	if !all {
		latest, err := r.analyzer.LatestRelease(ctx)
		if err != nil {
			return nil, err
		}
		since = latest
	}
	commits, err := r.analyzer.ReadCommitsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	stats := &Stats{
		Commits: int64(len(commits)),
		Counts:  make(map[string][]*statCount),
	}

	parser := r.analyzer.Parser()
	for _, mc := range commits {
		pc := parser.ParseCommit(mc)
		stats.Add("scope", pc.Scope(), 1)
		stats.Add("commit_type", pc.Type(), 1)
		stats.Add("bump", parser.Decide([]commit.ParsedCommit{pc}).String(), 1)
	}
	return stats, nil
}

var nonAlphaRE = regexp.MustCompile(`[^A-Za-z]`)

var titleCaser = cases.Title(language.English)

func toTitle(s string) string {
	s = nonAlphaRE.ReplaceAllLiteralString(s, " ")
	return titleCaser.String(s)
}
