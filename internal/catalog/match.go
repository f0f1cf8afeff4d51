// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/agnivade/levenshtein"
)

// fuzzyThresholdDefault is the minimum similarity ratio accepted when falling
// back to fuzzy name matching.
const fuzzyThresholdDefault = 0.5

type (
	// Similarity scores how alike two normalized names are, on a 0-1 scale.
	// It lets the fuzzy fallback algorithm be swapped without touching the
	// matcher.
	Similarity interface {
		Ratio(a, b string) float64
	}

	// DocIndex is a precomputed lookup of documentation folders keyed by
	// normalized name, plus the matcher configuration.
	DocIndex struct {
		repoRoot  string
		byStem    map[string]string // normalized folder name -> doc rel path
		stems     []string          // sorted-insertion view of byStem keys
		sim       Similarity
		threshold float64
	}

	// levenshteinSimilarity derives a 0-1 ratio from edit distance.
	levenshteinSimilarity struct{}
)

// Ratio returns 1 - distance/maxLen, clamped to 0.
func (levenshteinSimilarity) Ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(a, b)
	if d >= longest {
		return 0
	}
	return 1 - float64(d)/float64(longest)
}

// NewDocIndex scans documentation directories (relative to repoRoot) one
// level deep and indexes each subfolder under its normalized name. The doc
// path recorded for a folder is its README.md when one exists, otherwise the
// folder itself. Missing directories are skipped. A nil similarity selects
// the edit-distance default; a non-positive threshold selects 0.5.
func NewDocIndex(repoRoot string, docDirs []string, sim Similarity, threshold float64) *DocIndex {
	if sim == nil {
		sim = levenshteinSimilarity{}
	}
	if threshold <= 0 {
		threshold = fuzzyThresholdDefault
	}

	idx := &DocIndex{
		repoRoot:  repoRoot,
		byStem:    make(map[string]string),
		sim:       sim,
		threshold: threshold,
	}

	for _, dir := range docDirs {
		abs := dir
		if !filepath.IsAbs(dir) {
			abs = filepath.Join(repoRoot, dir)
		}
		entries, err := os.ReadDir(abs)
		if err != nil {
			slog.Debug("skipping missing docs directory", "dir", abs, "error", err)
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			stem := NormalizeStem(entry.Name())
			if stem == "" {
				continue
			}
			if _, ok := idx.byStem[stem]; ok {
				continue
			}
			idx.byStem[stem] = idx.docPathFor(filepath.Join(abs, entry.Name()))
			idx.stems = append(idx.stems, stem)
		}
	}

	return idx
}

// docPathFor prefers the folder's README.md and falls back to the folder.
func (idx *DocIndex) docPathFor(folder string) string {
	for _, name := range []string{"README.md", "readme.md"} {
		candidate := filepath.Join(folder, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return idx.relTo(candidate)
		}
	}
	return idx.relTo(folder)
}

func (idx *DocIndex) relTo(path string) string {
	rel, err := filepath.Rel(idx.repoRoot, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// FindCompanionDoc associates a script with its documentation, best-effort:
//  1. a sibling README.md, readme.md or <stem>.md in the script's directory;
//  2. an exact normalized-stem lookup in the index;
//  3. the closest fuzzy match above the similarity threshold.
//
// All misses yield "": a catalog entry without documentation is not an error.
func (idx *DocIndex) FindCompanionDoc(scriptPath string) string {
	stem := strings.TrimSuffix(filepath.Base(scriptPath), filepath.Ext(scriptPath))

	// Same-directory conventions, in priority order.
	dir := filepath.Dir(scriptPath)
	for _, name := range []string{"README.md", "readme.md", stem + ".md"} {
		if doc := idx.siblingDoc(dir, name); doc != "" {
			return doc
		}
	}

	normalized := NormalizeStem(stem)
	if normalized == "" {
		return ""
	}
	if doc, ok := idx.byStem[normalized]; ok {
		return doc
	}

	return idx.fuzzyLookup(normalized)
}

// siblingDoc matches a directory entry by name, case-insensitively, so that
// conventions hold on case-sensitive filesystems too.
func (idx *DocIndex) siblingDoc(dir, name string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.EqualFold(entry.Name(), name) {
			return idx.relTo(filepath.Join(dir, entry.Name()))
		}
	}
	return ""
}

// fuzzyLookup returns the single best candidate above the threshold, or "".
func (idx *DocIndex) fuzzyLookup(normalized string) string {
	bestStem := ""
	bestRatio := idx.threshold
	for _, stem := range idx.stems {
		if ratio := idx.sim.Ratio(normalized, stem); ratio > bestRatio {
			bestRatio = ratio
			bestStem = stem
		}
	}
	if bestStem == "" {
		return ""
	}
	return idx.byStem[bestStem]
}

// NormalizeStem strips non-alphanumeric characters and lowercases, so that
// "M365-Cleanup" and "m365cleanup" index identically.
func NormalizeStem(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}
