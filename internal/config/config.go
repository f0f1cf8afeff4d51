// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "catalogctl"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "catalogctl"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

//go:embed config_schema.cue
var configSchema string

// Load reads configuration for the repository rooted at repoRoot: built-in
// defaults, then catalogctl.toml from the repo root when present, then
// CATALOGCTL_* environment variables. A missing config file is not an error;
// a malformed or schema-invalid one is.
func Load(repoRoot string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("readme", defaults.Readme)
	v.SetDefault("title", defaults.Title)
	v.SetDefault("legacy_heading", defaults.LegacyHeading)
	v.SetDefault("roots", defaults.Roots)
	v.SetDefault("markers.start", defaults.Markers.Start)
	v.SetDefault("markers.end", defaults.Markers.End)
	v.SetDefault("dialects.comment_help", defaults.Dialects.CommentHelp)
	v.SetDefault("dialects.hash_comment", defaults.Dialects.HashComment)
	v.SetDefault("dialects.docstring", defaults.Dialects.Docstring)
	v.SetDefault("docs.dirs", defaults.Docs.Dirs)
	v.SetDefault("docs.fuzzy_threshold", defaults.Docs.FuzzyThreshold)
	v.SetDefault("stamp.placeholder", defaults.Stamp.Placeholder)
	v.SetDefault("stamp.extensions", defaults.Stamp.Extensions)
	v.SetDefault("tracker.repository", defaults.Tracker.Repository)
	v.SetDefault("tracker.issue_title", defaults.Tracker.IssueTitle)
	v.SetDefault("tracker.api_base_url", defaults.Tracker.APIBaseURL)

	v.SetEnvPrefix("CATALOGCTL")
	v.AutomaticEnv()

	switch {
	case configFilePathOverride != "":
		v.SetConfigFile(configFilePathOverride)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFilePathOverride, err)
		}
	default:
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		v.AddConfigPath(repoRoot)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
			// No config file; defaults apply.
		}
	}

	if err := validateSchema(v.AllSettings()); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Viper has no SetDefault for struct slices, so fill the categories
	// fallback after decoding.
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultConfig().Categories
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigFilePath returns the path Load reads from for a repository root.
func ConfigFilePath(repoRoot string) string {
	if configFilePathOverride != "" {
		return configFilePathOverride
	}
	return filepath.Join(repoRoot, ConfigFileName+"."+ConfigFileExt)
}

// WriteDefault writes the default configuration as TOML to the standard
// location, refusing to clobber an existing file.
func WriteDefault(repoRoot string) (string, error) {
	path := ConfigFilePath(repoRoot)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists: %s", path)
	}

	data, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return path, fmt.Errorf("encode default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
