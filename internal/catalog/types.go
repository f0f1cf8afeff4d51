// SPDX-License-Identifier: MPL-2.0

package catalog

const (
	// DefaultSubsection groups files that sit directly under an anchor segment.
	DefaultSubsection = "General"
	// FallbackCategory groups files no rule claims.
	FallbackCategory = "Miscellaneous"
)

type (
	// Entry is one catalog line: a script, its synopsis (empty when missing),
	// and an optional companion documentation path.
	Entry struct {
		// Rel is the slash-separated path relative to the repository root.
		Rel string
		// Name is the file base name used as the display name.
		Name string
		// Synopsis is the extracted one-line summary, or "" when absent.
		Synopsis string
		// DocRel is the relative path of a companion document, or "".
		DocRel string
	}

	// Groups maps category -> subsection -> entries. Entries are kept in
	// discovery order, which is already sorted case-insensitively by path;
	// category and subsection iteration order is imposed at render time.
	Groups map[string]map[string][]Entry

	// Rule maps paths containing an anchor segment to a category label.
	// Rules are tried in order; the first whose anchor appears in the path
	// wins.
	Rule struct {
		// Anchor is the path segment that identifies the rule's root.
		Anchor string
		// Label is the category name emitted for matching paths.
		Label string
	}
)

// add appends an entry under its group, creating levels as needed.
func (g Groups) add(category, subsection string, e Entry) {
	sub, ok := g[category]
	if !ok {
		sub = make(map[string][]Entry)
		g[category] = sub
	}
	sub[subsection] = append(sub[subsection], e)
}
