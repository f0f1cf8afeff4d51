// SPDX-License-Identifier: MPL-2.0

package lint

import (
	"fmt"
	"strings"

	"catalogctl/internal/discovery"
	"catalogctl/internal/synopsis"

	"mvdan.cc/sh/v3/syntax"
)

type (
	// Finding is one lint failure: the offending file and why it failed.
	Finding struct {
		// Rel is the script's path relative to the repository root.
		Rel string
		// Reason is a human-readable explanation.
		Reason string
	}

	// Options configures a lint run.
	Options struct {
		// RepoRoot anchors the script roots.
		RepoRoot string
		// Roots are the script directories to scan.
		Roots []string
		// Dialects maps extensions to synopsis dialects and doubles as the
		// discovery allowlist.
		Dialects synopsis.Table
		// CheckSyntax additionally parses shell scripts and reports files
		// that fail to parse.
		CheckSyntax bool
	}

	// Result is the outcome of a lint run.
	Result struct {
		// Total is the number of scripts examined.
		Total int
		// Findings lists failures, sorted by path.
		Findings []Finding
	}
)

// OK reports whether the run found nothing to complain about.
func (r *Result) OK() bool {
	return len(r.Findings) == 0
}

// Summary renders the findings as a markdown list, suitable for both terminal
// output and the tracking-issue body. Output is deterministic.
func (r *Result) Summary() string {
	if r.OK() {
		return fmt.Sprintf("All %d scripts have the required synopsis headers.", r.Total)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d scripts are missing required headers:\n", len(r.Findings), r.Total)
	for _, f := range r.Findings {
		fmt.Fprintf(&b, "\n- `%s` — %s", f.Rel, f.Reason)
	}
	return b.String()
}

// Run lints every script under the configured roots. Unreadable files count
// as having no synopsis rather than aborting the run; the returned error is
// reserved for filesystem walking failures.
func Run(opts Options) (*Result, error) {
	files, err := discovery.Discover(discovery.Options{
		RepoRoot:   opts.RepoRoot,
		Roots:      opts.Roots,
		Extensions: opts.Dialects.Extensions(),
	})
	if err != nil {
		return nil, fmt.Errorf("discover scripts: %w", err)
	}

	result := &Result{Total: len(files)}

	for _, f := range files {
		dialect := opts.Dialects.ForExtension(f.Ext)
		text := f.Text()

		if synopsis.Extract(text, dialect) == "" {
			result.Findings = append(result.Findings, Finding{
				Rel:    f.Rel,
				Reason: missingReason(dialect),
			})
		}

		if opts.CheckSyntax && dialect == synopsis.DialectHashComment {
			if err := checkShellSyntax(f.Rel, text); err != nil {
				result.Findings = append(result.Findings, Finding{
					Rel:    f.Rel,
					Reason: fmt.Sprintf("shell syntax error: %v", err),
				})
			}
		}
	}

	return result, nil
}

// missingReason phrases the failure per dialect, matching the header format
// contributors are expected to add.
func missingReason(d synopsis.Dialect) string {
	switch d {
	case synopsis.DialectCommentHelp:
		return "missing .SYNOPSIS in a comment-help block (<# ... #>)"
	case synopsis.DialectHashComment:
		return "missing a leading # synopsis comment"
	case synopsis.DialectDocstring:
		return "missing a module docstring (or leading # synopsis)"
	default:
		return "missing a synopsis header"
	}
}

// checkShellSyntax parses the script in bash dialect; parse errors are
// returned, semantic problems are out of scope.
func checkShellSyntax(name, text string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	_, err := parser.Parse(strings.NewReader(text), name)
	return err
}
