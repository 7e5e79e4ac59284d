package commit

import "github.com/relplan/relplan/config"

// Decide returns the bump kind for a batch of commits under the default
// policy: any breaking commit is a major release, any feat a minor one, and
// any fix or perf a patch. Only presence matters, not order or count.
func Decide(commits []ParsedCommit) BumpKind {
	return defaultParser.Decide(commits)
}

// Decide returns the bump kind for commits under the parser's policy.
func (p *Parser) Decide(commits []ParsedCommit) BumpKind {
	return decide(p.policy, commits)
}

func decide(pol *config.Policy, commits []ParsedCommit) BumpKind {
	bump := BumpNone
	for _, c := range commits {
		if c.IsBreaking() {
			return BumpMajor
		}
		kind, err := ParseBumpKind(pol.ReleaseType(c.Type()))
		if err != nil {
			continue
		}
		if kind > bump {
			bump = kind
		}
	}
	return bump
}
