package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
)

// FileName is the config file looked up from the working directory upward.
const FileName = "relplan.yaml"

// ReadFile reads the config file at p. If p is empty, the nearest relplan.yaml
// in dir or one of its parents is used. A nil config is returned when no file
// is found.
func ReadFile(p, dir string) (*Config, error) {
	if p != "" {
		return readFile(p)
	}

	wd := filepath.Clean(dir)
	for {
		cfg, err := readFile(filepath.Join(wd, FileName))
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}

		parent := filepath.Dir(wd)
		if parent == wd {
			return nil, nil
		}
		wd = parent
	}
}

func readFile(p string) (*Config, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", p, err)
	}
	// relative paths in the file are relative to the file itself
	if cfg.TemplatePath != "" && !filepath.IsAbs(cfg.TemplatePath) {
		cfg.TemplatePath = filepath.Join(filepath.Dir(p), cfg.TemplatePath)
	}
	return cfg, nil
}
