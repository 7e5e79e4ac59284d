package commit

// Changelog bucket names.
const (
	BucketBreaking = "breaking"
	BucketFeat     = "feat"
	BucketFix      = "fix"
	BucketPerf     = "perf"
	BucketRefactor = "refactor"
	BucketDocs     = "docs"
	BucketCI       = "ci"
	BucketBuild    = "build"
	BucketTest     = "test"
	BucketChore    = "chore"
	BucketOther    = "other"
)

// Buckets lists every bucket in evaluation order.
var Buckets = []string{
	BucketBreaking,
	BucketFeat,
	BucketFix,
	BucketPerf,
	BucketRefactor,
	BucketDocs,
	BucketCI,
	BucketBuild,
	BucketTest,
	BucketChore,
	BucketOther,
}

// Groups partitions commits into changelog buckets.
type Groups struct {
	buckets map[string][]ParsedCommit
}

// Group sorts commits into buckets, preserving input order within each. A
// breaking commit is placed in the breaking bucket as well as its type
// bucket. Unknown types go to the other bucket.
func Group(commits []ParsedCommit) Groups {
	g := Groups{buckets: make(map[string][]ParsedCommit, len(Buckets))}
	for _, c := range commits {
		if c.IsBreaking() {
			g.buckets[BucketBreaking] = append(g.buckets[BucketBreaking], c)
		}
		bucket := c.Type()
		if !isTypeBucket(bucket) {
			bucket = BucketOther
		}
		g.buckets[bucket] = append(g.buckets[bucket], c)
	}
	return g
}

func isTypeBucket(name string) bool {
	if name == BucketBreaking {
		return false
	}
	for _, b := range Buckets {
		if b == name {
			return true
		}
	}
	return false
}

// Get returns the commits in the named bucket.
func (g Groups) Get(bucket string) []ParsedCommit {
	return g.buckets[bucket]
}

// Concat returns the commits of several buckets, in the order given.
func (g Groups) Concat(buckets ...string) []ParsedCommit {
	var res []ParsedCommit
	for _, b := range buckets {
		res = append(res, g.buckets[b]...)
	}
	return res
}

// Len counts commits across the type buckets, so each commit is counted once.
func (g Groups) Len() int {
	n := 0
	for name, commits := range g.buckets {
		if name == BucketBreaking {
			continue
		}
		n += len(commits)
	}
	return n
}
