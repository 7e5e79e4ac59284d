package model

// Commit is a raw commit record as returned by a commit-history provider.
// Any field may be empty; consumers must not assume a well-formed record.
type Commit struct {
	ID          string `json:"commit"`
	Author      string `json:"author,omitempty"`
	AuthorEmail string `json:"author_email,omitempty"`
	Subject     string `json:"subject"`
	Body        string `json:"body,omitempty"`
}

// ShortIDLen is the length of abbreviated commit ids shown in release notes.
const ShortIDLen = 7

func (c *Commit) ShortID() string {
	return ShortID(c.ID)
}

// ShortID abbreviates a commit id to ShortIDLen characters.
func ShortID(id string) string {
	if len(id) < ShortIDLen {
		return id
	}
	return id[:ShortIDLen]
}
