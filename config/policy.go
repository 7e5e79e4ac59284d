package config

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
)

// Policy describes how commit messages are classified. SubjectRE must
// capture the named groups "type" and "subject", and may capture "scope"
// and "bang". BreakingRE is matched against the commit body.
type Policy struct {
	Name        string            `json:"name"`
	SubjectRE   string            `json:"subject_regex"`
	BreakingRE  string            `json:"breaking_regex"`
	CommitTypes map[string]string `json:"commit_types"`
	subjectRE   *regexp.Regexp
	breakingRE  *regexp.Regexp
}

func (p *Policy) GetSubjectRE() *regexp.Regexp {
	if p.subjectRE == nil {
		p.subjectRE = regexp.MustCompile(p.SubjectRE)
	}
	return p.subjectRE
}

func (p *Policy) GetBreakingRE() *regexp.Regexp {
	if p.breakingRE == nil {
		p.breakingRE = regexp.MustCompile(p.BreakingRE)
	}
	return p.breakingRE
}

func (p *Policy) compileSubjectRE() (*regexp.Regexp, error) {
	re, err := regexp.Compile(p.SubjectRE)
	if err != nil {
		return nil, err
	}
	for _, name := range []string{"type", "subject"} {
		if re.SubexpIndex(name) < 0 {
			return nil, fmt.Errorf("subject_regex must capture a %q group", name)
		}
	}
	return re, nil
}

// ReleaseType returns the configured release type name for a commit type, or
// the empty string if the type doesn't trigger a release.
func (p *Policy) ReleaseType(commitType string) string {
	return p.CommitTypes[commitType]
}

func (p *Policy) TextSummary(w io.Writer) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(fmt.Sprintf("Name: %s\n", p.Name))
	bw.WriteString(fmt.Sprintf("Subject regexp: %s\n", p.SubjectRE))
	bw.WriteString(fmt.Sprintf("Breaking change regexp: %s\n", p.BreakingRE))

	if len(p.CommitTypes) > 0 {
		types := make([]string, 0, len(p.CommitTypes))
		for k := range p.CommitTypes {
			types = append(types, k)
		}
		sort.Strings(types)

		bw.WriteString("Commit types:\n")
		for _, k := range types {
			bw.WriteString(fmt.Sprintf("  %16s: %s\n", k, p.CommitTypes[k]))
		}
	}

	return bw.Flush()
}

var builtinPolicies = []Policy{
	{
		Name:       DefaultPolicy,
		SubjectRE:  `^(?P<type>[a-zA-Z]+)(?:\((?P<scope>[^)]+)\))?(?P<bang>!)?: (?P<subject>.+)$`,
		BreakingRE: `(?m)^BREAKING CHANGE:\s+\S`,
		CommitTypes: map[string]string{
			"feat": "minor",
			"fix":  "patch",
			"perf": "patch",
		},
	},
	{
		// conventional-lax accepts digits in types, any whitespace after the
		// colon, and treats refactors and reverts as patch releases.
		Name:       "conventional-lax",
		SubjectRE:  `^(?P<type>[A-Za-z0-9]+)(?:\((?P<scope>[^)]+)\))?(?P<bang>!)?:\s+(?P<subject>.+)$`,
		BreakingRE: `(?m)^BREAKING[ -]CHANGE:\s+\S`,
		CommitTypes: map[string]string{
			"feat":     "minor",
			"fix":      "patch",
			"perf":     "patch",
			"revert":   "patch",
			"refactor": "patch",
		},
	},
}

func getBuiltinPolicy(name string) *Policy {
	for _, pol := range builtinPolicies {
		if name == pol.Name {
			p := pol
			return &p
		}
	}
	return nil
}

// BuiltinPolicyNames lists the policies that need no configuration.
func BuiltinPolicyNames() []string {
	names := make([]string, len(builtinPolicies))
	for i, pol := range builtinPolicies {
		names[i] = pol.Name
	}
	return names
}
