// SPDX-License-Identifier: MPL-2.0

// Package stamp replaces a literal placeholder token with the short
// identifier of the current revision across matching files.
package stamp

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

type (
	// Options configures a stamping run.
	Options struct {
		// RepoRoot is the tree to walk.
		RepoRoot string
		// Placeholder is the literal token to replace.
		Placeholder string
		// Extensions limits stamping to matching files (case-insensitive).
		Extensions []string
		// SHA is the replacement. Empty means resolve via ResolveSHA.
		SHA string
	}

	// Result reports what a run touched.
	Result struct {
		// SHA is the revision identifier that was stamped in.
		SHA string
		// Stamped lists the rewritten files, relative to the repo root.
		Stamped []string
	}
)

// ResolveSHA returns the short revision identifier: $GIT_SHA when set,
// otherwise `git rev-parse --short HEAD` run in root.
func ResolveSHA(root string) (string, error) {
	if sha := strings.TrimSpace(os.Getenv("GIT_SHA")); sha != "" {
		return sha, nil
	}

	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("resolve commit sha: %w", err)
	}

	sha := strings.TrimSpace(string(out))
	if sha == "" {
		return "", fmt.Errorf("resolve commit sha: git returned nothing")
	}
	return sha, nil
}

// Run walks the tree and rewrites every matching file containing the
// placeholder. Unreadable files are skipped with a warning; a failed rewrite
// aborts, since a half-stamped tree is worse than a loud failure.
func Run(opts Options) (*Result, error) {
	if opts.Placeholder == "" {
		return nil, fmt.Errorf("stamp: placeholder must be non-empty")
	}

	sha := opts.SHA
	if sha == "" {
		resolved, err := ResolveSHA(opts.RepoRoot)
		if err != nil {
			return nil, err
		}
		sha = resolved
	}

	rootAbs, err := filepath.Abs(opts.RepoRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve repo root: %w", err)
	}

	extSet := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extSet[ext] = struct{}{}
	}

	result := &Result{SHA: sha}

	err = filepath.WalkDir(rootAbs, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if _, ok := extSet[strings.ToLower(filepath.Ext(d.Name()))]; !ok {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			slog.Warn("skipping unreadable file", "path", path, "error", readErr)
			return nil
		}

		text := string(data)
		if !strings.Contains(text, opts.Placeholder) {
			return nil
		}

		stamped := strings.ReplaceAll(text, opts.Placeholder, sha)
		if writeErr := os.WriteFile(path, []byte(stamped), 0o644); writeErr != nil {
			return fmt.Errorf("stamp %s: %w", path, writeErr)
		}

		rel, relErr := filepath.Rel(rootAbs, path)
		if relErr != nil {
			rel = path
		}
		result.Stamped = append(result.Stamped, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", rootAbs, err)
	}

	return result, nil
}
