// Package config loads user defaults for runcompose from a JSONC file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/griffithind/runcompose/internal/compose"
	rcerrors "github.com/griffithind/runcompose/internal/errors"
	"github.com/griffithind/runcompose/internal/util"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "RUNCOMPOSE_CONFIG"

// fileName is the config file name inside the config directory.
const fileName = "config.jsonc"

// Config holds user defaults. Command-line flags take precedence.
type Config struct {
	Format      string `json:"format,omitempty"`
	SortKeys    bool   `json:"sortKeys,omitempty"`
	Indent      int    `json:"indent,omitempty"`
	StripQuotes bool   `json:"stripQuotes,omitempty"`
	Strict      bool   `json:"strict,omitempty"`
	Check       bool   `json:"check,omitempty"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Format: string(compose.FormatYAML),
		Indent: compose.DefaultIndent,
	}
}

// Path returns the config file location: $RUNCOMPOSE_CONFIG, then
// $XDG_CONFIG_HOME/runcompose/config.jsonc, then ~/.config/runcompose/config.jsonc.
func Path() string {
	if p := util.GetEnv(EnvConfigPath, ""); p != "" {
		return util.ExpandHome(p)
	}
	if dir := util.GetEnv("XDG_CONFIG_HOME", ""); dir != "" {
		return filepath.Join(dir, "runcompose", fileName)
	}
	return filepath.Join(util.ExpandHome("~/.config"), "runcompose", fileName)
}

// Parse parses a JSONC config document on top of the defaults.
func Parse(data []byte) (*Config, error) {
	// Strip comments and trailing commas
	stripped := jsonc.ToJSON(data)

	cfg := Default()
	if len(strings.TrimSpace(string(stripped))) == 0 {
		return cfg, nil
	}

	dec := json.NewDecoder(strings.NewReader(string(stripped)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Format == "" {
		cfg.Format = string(compose.FormatYAML)
	}
	if cfg.Indent == 0 {
		cfg.Indent = compose.DefaultIndent
	}

	return cfg, nil
}

// Load reads the config file at path. An empty path means Path(). A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = Path()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			util.Debug("no config file at %s, using defaults", path)
			return Default(), nil
		}
		return nil, rcerrors.FileRead(path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, rcerrors.ConfigParse(path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	util.Debug("loaded config from %s", path)
	return cfg, nil
}

// Validate checks the config values.
func (c *Config) Validate() error {
	if _, err := compose.ParseFormat(c.Format); err != nil {
		return rcerrors.ConfigValidation(err.Error()).WithContext("field", "format")
	}
	if c.Indent < 2 || c.Indent > 9 {
		return rcerrors.ConfigValidation(fmt.Sprintf("indent must be between 2 and 9, got %d", c.Indent)).
			WithContext("field", "indent")
	}
	return nil
}

// RenderFormat returns the configured output format.
func (c *Config) RenderFormat() compose.Format {
	f, err := compose.ParseFormat(c.Format)
	if err != nil {
		return compose.FormatYAML
	}
	return f
}
