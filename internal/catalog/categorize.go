// SPDX-License-Identifier: MPL-2.0

package catalog

import "strings"

// Categorize maps a relative path to its (category, subsection) grouping key.
// Rules are tried in order and the first matching anchor segment wins: the
// category is the rule's label, the subsection is the path segment right
// after the anchor, or DefaultSubsection when the file sits directly under
// the anchor. Paths no rule claims fall back to FallbackCategory for both
// levels. Same path, same rules, same result: this is a pure function.
func Categorize(rel string, rules []Rule) (category, subsection string) {
	segments := strings.Split(strings.Trim(rel, "/"), "/")

	for _, rule := range rules {
		for i, seg := range segments {
			if seg != rule.Anchor {
				continue
			}
			// The segment after the anchor is a subsection only when it is
			// itself a directory, i.e. not the final (file name) segment.
			if i+1 < len(segments)-1 {
				return rule.Label, segments[i+1]
			}
			return rule.Label, DefaultSubsection
		}
	}

	return FallbackCategory, FallbackCategory
}
