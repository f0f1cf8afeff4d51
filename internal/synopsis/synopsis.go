// SPDX-License-Identifier: MPL-2.0

package synopsis

import (
	"regexp"
	"strings"
)

const (
	// DialectNone means the file's extension maps to no known comment convention.
	DialectNone Dialect = iota
	// DialectCommentHelp is the <# ... #> comment-help block convention.
	DialectCommentHelp
	// DialectHashComment is the leading-# comment convention.
	DialectHashComment
	// DialectDocstring is the module-docstring convention with a hash-comment fallback.
	DialectDocstring
)

// synopsisTag is the case-insensitive line that introduces the summary inside
// a comment-help block.
const synopsisTag = ".synopsis"

type (
	// Dialect identifies one of the recognized comment conventions.
	Dialect int

	// Table maps lowercased file extensions (with leading dot) to dialects.
	Table map[string]Dialect
)

// commentHelpBlock matches the first <# ... #> block, spanning lines, non-greedy.
var commentHelpBlock = regexp.MustCompile(`(?s)<#(.*?)#>`)

// String returns a human-readable dialect name.
func (d Dialect) String() string {
	switch d {
	case DialectCommentHelp:
		return "comment-help"
	case DialectHashComment:
		return "hash-comment"
	case DialectDocstring:
		return "docstring"
	default:
		return "none"
	}
}

// NewTable builds a dialect-dispatch table from per-dialect extension lists.
// Extensions are normalized to lowercase with a leading dot, so callers may
// pass "ps1" and ".PS1" interchangeably.
func NewTable(commentHelp, hashComment, docstring []string) Table {
	t := make(Table)
	add := func(exts []string, d Dialect) {
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			t[ext] = d
		}
	}
	add(commentHelp, DialectCommentHelp)
	add(hashComment, DialectHashComment)
	add(docstring, DialectDocstring)
	return t
}

// DefaultTable returns the stock extension mapping.
func DefaultTable() Table {
	return NewTable(
		[]string{".ps1", ".psm1", ".ps1xml"},
		[]string{".sh", ".bash"},
		[]string{".py"},
	)
}

// ForExtension resolves the dialect for a file extension, or DialectNone.
func (t Table) ForExtension(ext string) Dialect {
	return t[strings.ToLower(ext)]
}

// Extensions returns every extension the table recognizes.
func (t Table) Extensions() []string {
	exts := make([]string, 0, len(t))
	for ext := range t {
		exts = append(exts, ext)
	}
	return exts
}

// Extract returns the first line of the synopsis declared in text according
// to the given dialect, trimmed, or "" when no synopsis is declared. It never
// returns an error: malformed headers degrade to "".
func Extract(text string, d Dialect) string {
	switch d {
	case DialectCommentHelp:
		return extractCommentHelp(text)
	case DialectHashComment:
		return extractHashComment(text)
	case DialectDocstring:
		return extractDocstring(text)
	default:
		return ""
	}
}

// extractCommentHelp finds the first <# ... #> block and returns the first
// non-empty line following a bare .SYNOPSIS tag line inside it.
func extractCommentHelp(text string) string {
	m := commentHelpBlock.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	lines := strings.Split(m[1], "\n")
	for i, line := range lines {
		if !strings.EqualFold(strings.TrimSpace(line), synopsisTag) {
			continue
		}
		for _, next := range lines[i+1:] {
			if s := strings.TrimSpace(next); s != "" {
				return s
			}
		}
		return ""
	}
	return ""
}

// extractHashComment scans the leading comment header: an optional shebang is
// skipped, blank lines and empty comments are tolerated, and scanning stops at
// the first non-blank, non-comment line (the first line of code).
func extractHashComment(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], "#!") {
		lines = lines[1:]
	}

	for _, line := range lines {
		st := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(st, "#"):
			if s := strings.TrimSpace(strings.TrimLeft(st, "#")); s != "" {
				return s
			}
		case st != "":
			// Hit code before any meaningful comment.
			return ""
		}
	}
	return ""
}

// extractDocstring returns the first line of a leading triple-quoted string.
// An optional single-character string prefix (r, R, u, U) is accepted before
// the opening delimiter. Unclosed or empty docstrings fall back to the
// hash-comment scan on the full text.
func extractDocstring(text string) string {
	rest := strings.TrimLeft(text, " \t\r\n")
	if len(rest) > 0 && strings.ContainsRune("rRuU", rune(rest[0])) {
		rest = rest[1:]
	}

	var delim string
	switch {
	case strings.HasPrefix(rest, `"""`):
		delim = `"""`
	case strings.HasPrefix(rest, "'''"):
		delim = "'''"
	default:
		return extractHashComment(text)
	}

	body := rest[len(delim):]
	end := strings.Index(body, delim)
	if end < 0 {
		// Opened but never closed; treat as no docstring at all.
		return extractHashComment(text)
	}

	doc := strings.TrimSpace(body[:end])
	if doc == "" {
		return extractHashComment(text)
	}
	first, _, _ := strings.Cut(doc, "\n")
	return strings.TrimSpace(first)
}
