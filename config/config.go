// Package config holds relplan's configuration and its sources: built-in
// defaults, the relplan.yaml file, the environment, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/charmbracelet/log"
	"github.com/imdario/mergo"
)

// Backends that can serve commit history.
const (
	BackendGit   = "git"
	BackendGoGit = "go-git"
)

type Config struct {
	Verbose bool `json:"verbose,omitempty"`
	Quiet   bool `json:"quiet,omitempty"`

	// TemplatePath enables external-template rendering of release notes.
	TemplatePath string `json:"template_path,omitempty"`
	// Repository is the hosting repository identifier ("owner/name"), used
	// to build compare URLs.
	Repository     string `json:"repository,omitempty"`
	CompareURLBase string `json:"compare_url_base,omitempty"`
	// OutputPath, when set, receives the plan as indented JSON.
	OutputPath string `json:"output_path,omitempty"`
	// GitHubOutput, when set, has plan fields appended as key=value lines.
	GitHubOutput string `json:"github_output,omitempty"`

	Backend        string     `json:"backend,omitempty"`
	Dir            string     `json:"dir,omitempty"`
	TagPrefix      string     `json:"tag_prefix,omitempty"`
	Policy         string     `json:"policy,omitempty"`
	CustomPolicies []Policy   `json:"custom_policies,omitempty"`
	AllowedScopes  []string   `json:"allowed_scopes,omitempty"`
	AllowedTypes   []string   `json:"allowed_types,omitempty"`
	Term           TerminalIO `json:"-"`
}

func New(overrides *Config) Config {
	return NewWithTerminalIO(overrides, nil)
}

func NewWithTerminalIO(overrides *Config, termio *TerminalIO) Config {
	cfg := GetDefault()
	if termio == nil {
		termio = &DefaultTermIO
	}
	cfg.Term = *termio

	if overrides != nil {
		if err := mergo.Merge(&cfg, overrides, mergo.WithOverride); err != nil {
			panic(err)
		}
	}
	return cfg
}

// Merge layers non-empty fields of src over c.
func (c *Config) Merge(src *Config) error {
	if src == nil {
		return nil
	}
	return mergo.Merge(c, src, mergo.WithOverride)
}

func (c Config) Validate() error {
	if c.Quiet && c.Verbose {
		return errors.New("config: quiet and verbose are mutually exclusive")
	}
	switch c.Backend {
	case "", BackendGit, BackendGoGit:
	default:
		return fmt.Errorf("config: unknown backend %q (want %q or %q)", c.Backend, BackendGit, BackendGoGit)
	}
	pol := c.GetPolicy()
	if pol == nil {
		return fmt.Errorf("config: unknown policy %q", c.Policy)
	}
	for name, re := range map[string]string{"subject_regex": pol.SubjectRE, "breaking_regex": pol.BreakingRE} {
		if re == "" {
			return fmt.Errorf("config: policy %q: %s is required", pol.Name, name)
		}
		if _, err := regexp.Compile(re); err != nil {
			return fmt.Errorf("config: policy %q: invalid %s: %w", pol.Name, name, err)
		}
	}
	if _, err := pol.compileSubjectRE(); err != nil {
		return fmt.Errorf("config: policy %q: %w", pol.Name, err)
	}
	for typ, rel := range pol.CommitTypes {
		switch rel {
		case "none", "patch", "minor", "major":
		default:
			return fmt.Errorf("config: policy %q: commit type %q has unknown release type %q", pol.Name, typ, rel)
		}
	}
	return nil
}

// GetPolicy returns the selected policy, looking at custom policies first.
func (c Config) GetPolicy() *Policy {
	for _, pol := range c.CustomPolicies {
		if pol.Name == c.Policy {
			p := pol
			return &p
		}
	}
	return getBuiltinPolicy(c.Policy)
}

func (c Config) Printf(msg string, args ...interface{}) {
	if c.Quiet {
		return
	}
	c.Term.Printf(msg+"\n", args...)
}

func (c Config) Errorf(msg string, args ...interface{}) {
	c.Logger().Errorf(msg, args...)
}

func (c Config) Debugf(msg string, args ...interface{}) {
	c.Logger().Debugf(msg, args...)
}

// Logger returns a logger writing to the configured stderr, leveled by the
// verbose and quiet settings.
func (c Config) Logger() *log.Logger {
	level := log.InfoLevel
	if c.Verbose {
		level = log.DebugLevel
	} else if c.Quiet {
		level = log.ErrorLevel
	}
	return log.NewWithOptions(c.Term.Stderr, log.Options{
		Level:  level,
		Prefix: "relplan",
	})
}
