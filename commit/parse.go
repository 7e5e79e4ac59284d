package commit

import (
	"strings"

	"github.com/relplan/relplan/config"
	"github.com/relplan/relplan/model"
)

// TypeOther is the type reported for commits whose subject doesn't follow the
// convention.
const TypeOther = "other"

// ParsedCommit is a classified commit. It is either a Conventional or an
// Unconventional commit; parsing never fails.
type ParsedCommit interface {
	CommitID() string
	ShortID() string
	// Type is the lowercase commit type, or TypeOther.
	Type() string
	Scope() string
	IsBreaking() bool
	// Description is the text shown in release notes.
	Description() string
	// Raw is the original, trimmed subject line.
	Raw() string

	parsedCommit()
}

// Conventional is a commit whose subject matched the policy's subject
// pattern.
type Conventional struct {
	ID          string `json:"id"`
	CommitType  string `json:"type"`
	CommitScope string `json:"scope,omitempty"`
	Breaking    bool   `json:"breaking,omitempty"`
	Subject     string `json:"subject"`
	RawSubject  string `json:"raw_subject"`
}

func (c *Conventional) CommitID() string    { return c.ID }
func (c *Conventional) ShortID() string     { return model.ShortID(c.ID) }
func (c *Conventional) Type() string        { return c.CommitType }
func (c *Conventional) Scope() string       { return c.CommitScope }
func (c *Conventional) IsBreaking() bool    { return c.Breaking }
func (c *Conventional) Description() string { return c.Subject }
func (c *Conventional) Raw() string         { return c.RawSubject }
func (*Conventional) parsedCommit()         {}

// Unconventional is a commit whose subject didn't match. It can still be
// breaking through a body footer.
type Unconventional struct {
	ID         string `json:"id"`
	Breaking   bool   `json:"breaking,omitempty"`
	RawSubject string `json:"raw_subject"`
}

func (c *Unconventional) CommitID() string    { return c.ID }
func (c *Unconventional) ShortID() string     { return model.ShortID(c.ID) }
func (c *Unconventional) Type() string        { return TypeOther }
func (c *Unconventional) Scope() string       { return "" }
func (c *Unconventional) IsBreaking() bool    { return c.Breaking }
func (c *Unconventional) Description() string { return c.RawSubject }
func (c *Unconventional) Raw() string         { return c.RawSubject }
func (*Unconventional) parsedCommit()         {}

// Parser classifies commits according to a policy.
type Parser struct {
	policy *config.Policy
}

func NewParser(policy *config.Policy) *Parser {
	return &Parser{policy: policy}
}

var defaultParser = NewParser(config.GetDefault().GetPolicy())

// Parse classifies a commit using the default conventional policy.
func Parse(subject, body, id string) ParsedCommit {
	return defaultParser.Parse(subject, body, id)
}

func (p *Parser) Parse(subject, body, id string) ParsedCommit {
	raw := strings.TrimSpace(subject)
	breaking := p.policy.GetBreakingRE().MatchString(body)

	re := p.policy.GetSubjectRE()
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return &Unconventional{ID: id, Breaking: breaking, RawSubject: raw}
	}

	group := func(name string) string {
		if i := re.SubexpIndex(name); i >= 0 {
			return m[i]
		}
		return ""
	}
	return &Conventional{
		ID:          id,
		CommitType:  strings.ToLower(group("type")),
		CommitScope: strings.TrimSpace(group("scope")),
		Breaking:    breaking || group("bang") != "",
		Subject:     strings.TrimSpace(group("subject")),
		RawSubject:  raw,
	}
}

// ParseCommit parses a raw commit record. Records with missing fields are
// parsed as far as possible; a nil record yields an empty Unconventional.
func (p *Parser) ParseCommit(c *model.Commit) ParsedCommit {
	if c == nil {
		return &Unconventional{}
	}
	return p.Parse(c.Subject, c.Body, c.ID)
}

func (p *Parser) ParseAll(commits []*model.Commit) []ParsedCommit {
	res := make([]ParsedCommit, len(commits))
	for i, c := range commits {
		res[i] = p.ParseCommit(c)
	}
	return res
}
