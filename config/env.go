package config

import (
	"fmt"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envKeys maps recognized environment variables to config keys. The
// unprefixed names are the ones CI systems already export.
var envKeys = map[string]string{
	"RELEASE_NOTES_TEMPLATE":   "template_path",
	"GITHUB_REPOSITORY":        "repository",
	"OUT_JSON":                 "output_path",
	"GITHUB_OUTPUT":            "github_output",
	"RELPLAN_COMPARE_URL_BASE": "compare_url_base",
	"RELPLAN_BACKEND":          "backend",
	"RELPLAN_POLICY":           "policy",
}

func envKey(s string) string {
	return envKeys[s]
}

// FromEnv reads the configuration overrides present in the environment.
// Variables that are unset or empty are left as zero values.
func FromEnv() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: failed to load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("config: failed to decode environment: %w", err)
	}
	return cfg, nil
}
