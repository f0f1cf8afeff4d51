// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"fmt"
	"path/filepath"

	"catalogctl/internal/discovery"
	"catalogctl/internal/synopsis"
)

type (
	// BuildOptions configures one catalog build.
	BuildOptions struct {
		// RepoRoot anchors roots, doc dirs and relative paths.
		RepoRoot string
		// Roots are the script directories to scan, relative to RepoRoot.
		Roots []string
		// Dialects maps extensions to synopsis dialects and doubles as the
		// discovery allowlist.
		Dialects synopsis.Table
		// Rules drive path categorization, tried in order.
		Rules []Rule
		// DocDirs are documentation directories indexed for companion lookup.
		DocDirs []string
		// FuzzyThreshold tunes the fuzzy doc matcher (0 selects the default).
		FuzzyThreshold float64
		// Similarity overrides the fuzzy matching strategy (nil selects the
		// edit-distance default).
		Similarity Similarity
	}

	// BuildResult is the rendered block plus counters for reporting.
	BuildResult struct {
		Block        string
		Total        int
		WithSynopsis int
	}
)

// Build runs the batch pipeline: discover scripts, extract synopses, group,
// match companion docs, and render the catalog block. The block excludes the
// markers; Merge or WriteDocument places it.
func Build(opts BuildOptions) (*BuildResult, error) {
	files, err := discovery.Discover(discovery.Options{
		RepoRoot:   opts.RepoRoot,
		Roots:      opts.Roots,
		Extensions: opts.Dialects.Extensions(),
	})
	if err != nil {
		return nil, fmt.Errorf("discover scripts: %w", err)
	}

	index := NewDocIndex(opts.RepoRoot, opts.DocDirs, opts.Similarity, opts.FuzzyThreshold)

	groups := make(Groups)
	result := &BuildResult{}

	for _, f := range files {
		syn := synopsis.Extract(f.Text(), opts.Dialects.ForExtension(f.Ext))
		entry := Entry{
			Rel:      f.Rel,
			Name:     filepath.Base(f.Rel),
			Synopsis: syn,
			DocRel:   index.FindCompanionDoc(f.Path),
		}

		category, subsection := Categorize(f.Rel, opts.Rules)
		groups.add(category, subsection, entry)

		result.Total++
		if syn != "" {
			result.WithSynopsis++
		}
	}

	result.Block = Render(groups)
	return result, nil
}
