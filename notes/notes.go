// Package notes renders markdown release notes from grouped commits, either
// with the built-in layout or by filling placeholders in a user template.
package notes

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/relplan/relplan/commit"
	"github.com/relplan/relplan/config"
)

// Data is everything a renderer may show.
type Data struct {
	Groups       commit.Groups
	Contributors []string
	PreviousTag  string
	Tag          string
	// CompareURL is empty when no comparison is available.
	CompareURL string
}

type Renderer interface {
	Render(w io.Writer, d Data) error
}

// New returns the renderer selected by cfg: a Template when a template path
// is configured, otherwise Builtin.
func New(cfg config.Config) (Renderer, error) {
	if cfg.TemplatePath == "" {
		return Builtin{}, nil
	}
	b, err := os.ReadFile(cfg.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("notes: failed to read template: %w", err)
	}
	return NewTemplate(string(b)), nil
}

// RenderString renders d to a string.
func RenderString(r Renderer, d Data) (string, error) {
	var sb strings.Builder
	if err := r.Render(&sb, d); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// CompareURL links the changes between two tags on a hosted repository. It
// returns "" unless both repo and prev are known.
func CompareURL(base, repo, prev, tag string) string {
	if repo == "" || prev == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/compare/%s...%s", strings.TrimSuffix(base, "/"), repo, prev, tag)
}
