// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// missingSynopsisMarker is emitted for entries whose header declares no summary.
const missingSynopsisMarker = "_missing synopsis_"

// Render assembles the grouped entries into a markdown block. Categories and
// subsections are emitted in case-insensitive lexicographic order, entries in
// the order they were grouped (discovery order, already sorted). Identical
// inputs produce byte-identical output.
func Render(groups Groups) string {
	if len(groups) == 0 {
		return "_No scripts found yet_"
	}

	var b strings.Builder

	categories := maps.Keys(groups)
	slices.SortFunc(categories, compareFold)

	for ci, category := range categories {
		if ci > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "### %s\n", category)

		subsections := maps.Keys(groups[category])
		slices.SortFunc(subsections, compareFold)

		for _, subsection := range subsections {
			fmt.Fprintf(&b, "\n#### %s\n\n", subsection)
			for _, entry := range groups[category][subsection] {
				b.WriteString(renderEntry(entry))
				b.WriteString("\n")
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderEntry formats one catalog line: display name, path link, synopsis or
// missing marker, and an optional docs link.
func renderEntry(e Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- [%s](%s)", e.Name, e.Rel)
	if e.Synopsis != "" {
		fmt.Fprintf(&b, " — %s", e.Synopsis)
	} else {
		fmt.Fprintf(&b, " — %s", missingSynopsisMarker)
	}
	if e.DocRel != "" {
		fmt.Fprintf(&b, " ([docs](%s))", e.DocRel)
	}
	return b.String()
}

// compareFold orders strings case-insensitively, breaking ties case-sensitively
// so the order stays total.
func compareFold(a, b string) int {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return strings.Compare(la, lb)
	}
	return strings.Compare(a, b)
}
