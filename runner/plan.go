package runner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/relplan/relplan/commit"
)

// ReleasePlan is the outcome of one planning run. It is built once and not
// modified afterwards.
type ReleasePlan struct {
	// PreviousTag is empty on a project's first release.
	PreviousTag     string          `json:"previous_tag"`
	PreviousVersion string          `json:"previous_version"`
	Bump            commit.BumpKind `json:"bump"`
	NewVersion      string          `json:"new_version"`
	NewTag          string          `json:"new_tag"`
	// NotesMarkdown is empty when Bump is none.
	NotesMarkdown string `json:"notes_markdown"`
	CommitCount   int    `json:"commit_count"`
}

func (p ReleasePlan) encode(indent bool) ([]byte, error) {
	b := &bytes.Buffer{}
	enc := json.NewEncoder(b)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// WriteJSON writes the plan as indented JSON.
func (p ReleasePlan) WriteJSON(w io.Writer) error {
	b, err := p.encode(true)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// WriteJSONLine writes the plan as a single line of JSON.
func (p ReleasePlan) WriteJSONLine(w io.Writer) error {
	b, err := p.encode(false)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// WriteFile writes the plan as indented JSON to path, creating parent
// directories as needed.
func (p ReleasePlan) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	b, err := p.encode(true)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// WriteGitHubOutput writes the plan's scalar fields as key=value lines, the
// format of a GitHub Actions step output file.
func (p ReleasePlan) WriteGitHubOutput(w io.Writer) error {
	_, err := fmt.Fprintf(w, "previous_tag=%s\nbump=%s\nnew_version=%s\nnew_tag=%s\ncommit_count=%d\n",
		p.PreviousTag, p.Bump, p.NewVersion, p.NewTag, p.CommitCount)
	return err
}

// AppendGitHubOutput appends the plan's outputs to the file at path.
func (p ReleasePlan) AppendGitHubOutput(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if err := p.WriteGitHubOutput(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
