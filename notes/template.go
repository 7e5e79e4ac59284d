package notes

import (
	"io"
	"strings"
)

// Template fills named placeholders in a user-supplied document:
//
//	{{tag}}           the new tag
//	{{version}}       the new tag without a leading "v"
//	{{previous_tag}}  the previous tag, or empty
//	{{compare_url}}   the compare link, or empty
//	{{notes}}         the built-in grouped sections
//	{{contributors}}  comma-separated contributor names
//
// Substitution is literal and single-pass: replaced text is never scanned
// again, and unknown placeholders are left as they are.
type Template struct {
	text string
}

func NewTemplate(text string) *Template {
	return &Template{text: text}
}

func (t *Template) Render(w io.Writer, d Data) error {
	r := strings.NewReplacer(
		"{{tag}}", d.Tag,
		"{{version}}", strings.TrimPrefix(d.Tag, "v"),
		"{{previous_tag}}", d.PreviousTag,
		"{{compare_url}}", d.CompareURL,
		"{{notes}}", Sections(d.Groups),
		"{{contributors}}", strings.Join(d.Contributors, ", "),
	)
	_, err := io.WriteString(w, strings.TrimSpace(r.Replace(t.text))+"\n")
	return err
}
