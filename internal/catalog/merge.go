// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

type (
	// MergeOptions describes where the managed block lives inside the target
	// document.
	MergeOptions struct {
		// StartMarker and EndMarker delimit the managed region.
		StartMarker string
		EndMarker   string
		// LegacyHeading, when non-empty, names a markdown heading whose
		// section is converted into a marker-managed region the first time
		// Merge runs against a document that predates the markers.
		LegacyHeading string
		// Title is used when the target document has to be created from
		// scratch.
		Title string
	}
)

// Merge reinserts block into existing text. When the marker pair is present
// (start before end) only the content strictly between the markers changes;
// everything outside stays byte-identical. Otherwise a legacy heading section
// is converted in place, and failing that the block is appended. The result
// always contains a marker-wrapped region, which makes Merge idempotent:
// merging the same block twice is a fixed point.
func Merge(existing, block string, opts MergeOptions) string {
	wrapped := opts.StartMarker + "\n" + block + "\n" + opts.EndMarker

	si := strings.Index(existing, opts.StartMarker)
	ei := strings.Index(existing, opts.EndMarker)
	if si >= 0 && ei > si {
		return existing[:si] + wrapped + existing[ei+len(opts.EndMarker):]
	}

	if opts.LegacyHeading != "" {
		if merged, ok := mergeLegacySection(existing, wrapped, opts.LegacyHeading); ok {
			return merged
		}
	}

	if strings.TrimSpace(existing) == "" {
		return wrapped + "\n"
	}
	return strings.TrimRight(existing, "\n") + "\n\n" + wrapped + "\n"
}

// mergeLegacySection replaces the section introduced by heading, up to but not
// including the next heading of equal or higher rank (or end of document),
// with the heading followed by the marker-wrapped block.
func mergeLegacySection(existing, wrapped, heading string) (string, bool) {
	rank := headingRank(heading)
	if rank == 0 {
		return "", false
	}

	lines := strings.Split(existing, "\n")
	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == heading {
			start = i
			break
		}
	}
	if start < 0 {
		return "", false
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if r := headingRank(strings.TrimSpace(lines[i])); r > 0 && r <= rank {
			end = i
			break
		}
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString(strings.Join(lines[:start], "\n"))
		b.WriteString("\n")
	}
	b.WriteString(heading)
	b.WriteString("\n\n")
	b.WriteString(wrapped)
	b.WriteString("\n")
	if end < len(lines) {
		b.WriteString("\n")
		b.WriteString(strings.Join(lines[end:], "\n"))
	}
	return b.String(), true
}

// headingRank counts leading '#' runes of a markdown ATX heading, 0 for
// non-headings.
func headingRank(line string) int {
	n := 0
	for _, r := range line {
		if r != '#' {
			break
		}
		n++
	}
	if n == 0 || n >= len(line) || line[n] != ' ' {
		return 0
	}
	return n
}

// WriteDocument merges block into the document at path and writes the result
// back, creating a minimal titled document when the file does not exist. The
// write is skipped when nothing changed, so unchanged runs leave the file's
// modification time alone. A failed write is the caller's problem: it is the
// one fatal condition of the pipeline.
func WriteDocument(path, block string, opts MergeOptions) (changed bool, err error) {
	existing := ""
	exists := true

	data, readErr := os.ReadFile(path)
	switch {
	case readErr == nil:
		existing = string(data)
	case errors.Is(readErr, fs.ErrNotExist):
		exists = false
	default:
		return false, fmt.Errorf("read %s: %w", path, readErr)
	}

	var merged string
	if exists {
		merged = Merge(existing, block, opts)
	} else {
		title := opts.Title
		if title == "" {
			title = "Catalog"
		}
		merged = "# " + title + "\n\n" + Merge("", block, opts)
	}

	if exists && merged == existing {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(merged), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
