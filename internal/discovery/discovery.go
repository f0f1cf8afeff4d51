// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// defaultSkipDirs are directory names never descended into.
var defaultSkipDirs = map[string]struct{}{
	".git":         {},
	".github":      {},
	"node_modules": {},
	"vendor":       {},
	".idea":        {},
	".vscode":      {},
}

type (
	// ScriptFile is a discovered script. It is immutable once discovered;
	// its text is read on demand and read failures degrade to empty text.
	ScriptFile struct {
		// Path is the absolute path on disk.
		Path string
		// Rel is the slash-separated path relative to the repository root.
		Rel string
		// Ext is the lowercased file extension, including the leading dot.
		Ext string
	}

	// Options configures a discovery run.
	Options struct {
		// RepoRoot anchors relative roots and relative result paths.
		RepoRoot string
		// Roots are the directories to walk, relative to RepoRoot or absolute.
		// Order does not affect the result; output is always sorted.
		Roots []string
		// Extensions is the allowlist, matched case-insensitively. Entries
		// may be given with or without the leading dot.
		Extensions []string
	}
)

// Text reads the file's content. Unreadable files yield empty text with a
// warning instead of an error so the rest of the run can proceed.
func (s ScriptFile) Text() string {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		slog.Warn("failed to read script, treating as empty", "path", s.Path, "error", err)
		return ""
	}
	return string(data)
}

// Discover walks every root and returns the matching files sorted
// case-insensitively by relative path. Roots that do not exist are skipped.
func Discover(opts Options) ([]ScriptFile, error) {
	rootAbs, err := filepath.Abs(opts.RepoRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve repo root: %w", err)
	}

	extSet := normalizeExtensions(opts.Extensions)

	seen := make(map[string]struct{})
	var files []ScriptFile

	for _, root := range opts.Roots {
		walkRoot := root
		if !filepath.IsAbs(root) {
			walkRoot = filepath.Join(rootAbs, root)
		}

		if info, statErr := os.Stat(walkRoot); statErr != nil || !info.IsDir() {
			slog.Warn("skipping missing script root", "root", walkRoot)
			continue
		}

		err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if _, ok := defaultSkipDirs[d.Name()]; ok {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}

			ext := strings.ToLower(filepath.Ext(d.Name()))
			if _, ok := extSet[ext]; !ok {
				return nil
			}
			if _, ok := seen[path]; ok {
				return nil
			}
			seen[path] = struct{}{}

			rel, relErr := filepath.Rel(rootAbs, path)
			if relErr != nil {
				rel = path
			}
			files = append(files, ScriptFile{
				Path: path,
				Rel:  filepath.ToSlash(rel),
				Ext:  ext,
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", walkRoot, err)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		a, b := strings.ToLower(files[i].Rel), strings.ToLower(files[j].Rel)
		if a == b {
			return files[i].Rel < files[j].Rel
		}
		return a < b
	})

	return files, nil
}

// normalizeExtensions lowercases entries and ensures a leading dot.
func normalizeExtensions(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}
