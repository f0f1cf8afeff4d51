// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidMarkers is returned when the marker pair is empty or equal.
	ErrInvalidMarkers = errors.New("invalid catalog markers")
	// ErrInvalidCategoryRule is returned when a category rule lacks an anchor or label.
	ErrInvalidCategoryRule = errors.New("invalid category rule")
	// ErrInvalidThreshold is returned when the fuzzy threshold leaves [0, 1].
	ErrInvalidThreshold = errors.New("invalid fuzzy threshold")
)

type (
	// Config is the full application configuration.
	Config struct {
		// Readme is the catalog target document, relative to the repo root.
		Readme string `mapstructure:"readme" toml:"readme"`
		// Title is used when the target document has to be created.
		Title string `mapstructure:"title" toml:"title"`
		// LegacyHeading converts a pre-marker section on first merge.
		LegacyHeading string `mapstructure:"legacy_heading" toml:"legacy_heading"`
		// Roots are the script directories to scan, relative to the repo root.
		Roots []string `mapstructure:"roots" toml:"roots"`

		Markers    Markers        `mapstructure:"markers" toml:"markers"`
		Dialects   Dialects       `mapstructure:"dialects" toml:"dialects"`
		Categories []CategoryRule `mapstructure:"categories" toml:"categories"`
		Docs       Docs           `mapstructure:"docs" toml:"docs"`
		Stamp      Stamp          `mapstructure:"stamp" toml:"stamp"`
		Tracker    Tracker        `mapstructure:"tracker" toml:"tracker"`
	}

	// Markers delimit the managed catalog region in the target document.
	Markers struct {
		Start string `mapstructure:"start" toml:"start"`
		End   string `mapstructure:"end" toml:"end"`
	}

	// Dialects lists file extensions per synopsis dialect.
	Dialects struct {
		CommentHelp []string `mapstructure:"comment_help" toml:"comment_help"`
		HashComment []string `mapstructure:"hash_comment" toml:"hash_comment"`
		Docstring   []string `mapstructure:"docstring" toml:"docstring"`
	}

	// CategoryRule maps an anchor path segment to a category label.
	CategoryRule struct {
		Anchor string `mapstructure:"anchor" toml:"anchor"`
		Label  string `mapstructure:"label" toml:"label"`
	}

	// Docs configures companion documentation matching.
	Docs struct {
		// Dirs are documentation directories indexed for stem lookup.
		Dirs []string `mapstructure:"dirs" toml:"dirs"`
		// FuzzyThreshold is the minimum similarity ratio on a 0-1 scale.
		FuzzyThreshold float64 `mapstructure:"fuzzy_threshold" toml:"fuzzy_threshold"`
	}

	// Stamp configures the commit-stamping utility.
	Stamp struct {
		// Placeholder is the literal token replaced by the short revision id.
		Placeholder string `mapstructure:"placeholder" toml:"placeholder"`
		// Extensions limits stamping to matching files.
		Extensions []string `mapstructure:"extensions" toml:"extensions"`
	}

	// Tracker configures the synopsis-lint tracking issue.
	Tracker struct {
		// Repository is "owner/name"; empty falls back to $GITHUB_REPOSITORY.
		Repository string `mapstructure:"repository" toml:"repository"`
		// IssueTitle keys the tracking issue.
		IssueTitle string `mapstructure:"issue_title" toml:"issue_title"`
		// APIBaseURL overrides the GitHub API endpoint (for GHE and tests).
		APIBaseURL string `mapstructure:"api_base_url" toml:"api_base_url"`
	}
)

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		Readme:        "README.md",
		Title:         "Script Catalog",
		LegacyHeading: "## Script Catalog",
		Roots:         []string{"Scripts"},
		Markers: Markers{
			Start: "<!-- GENERATED-CATALOG:START -->",
			End:   "<!-- GENERATED-CATALOG:END -->",
		},
		Dialects: Dialects{
			CommentHelp: []string{".ps1", ".psm1", ".ps1xml"},
			HashComment: []string{".sh", ".bash"},
			Docstring:   []string{".py"},
		},
		Categories: []CategoryRule{
			{Anchor: "Scripts", Label: "Scripts"},
		},
		Docs: Docs{
			Dirs:           []string{"docs"},
			FuzzyThreshold: 0.5,
		},
		Stamp: Stamp{
			Placeholder: "{{COMMIT_SHA}}",
			Extensions:  []string{".ps1", ".psm1", ".psd1", ".sh", ".py"},
		},
		Tracker: Tracker{
			IssueTitle: "Scripts missing synopsis headers",
			APIBaseURL: "https://api.github.com",
		},
	}
}

// Validate checks the structural invariants the CUE schema cannot express
// relative to one another.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Markers.Start) == "" || strings.TrimSpace(c.Markers.End) == "" {
		return fmt.Errorf("%w: start and end must be non-empty", ErrInvalidMarkers)
	}
	if c.Markers.Start == c.Markers.End {
		return fmt.Errorf("%w: start and end must differ", ErrInvalidMarkers)
	}
	for i, rule := range c.Categories {
		if strings.TrimSpace(rule.Anchor) == "" || strings.TrimSpace(rule.Label) == "" {
			return fmt.Errorf("%w: rule %d needs both anchor and label", ErrInvalidCategoryRule, i)
		}
	}
	if c.Docs.FuzzyThreshold < 0 || c.Docs.FuzzyThreshold > 1 {
		return fmt.Errorf("%w: %v is outside [0, 1]", ErrInvalidThreshold, c.Docs.FuzzyThreshold)
	}
	return nil
}
