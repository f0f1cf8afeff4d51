// SPDX-License-Identifier: MPL-2.0

// Package catalog turns discovered scripts into a grouped markdown index and
// merges it into a managed region of a target document.
//
// The pipeline is a one-shot batch: discover -> extract synopses -> categorize
// -> match companion docs -> render -> merge. Re-running it against an
// unchanged tree is a no-op; the target document is only rewritten when the
// regenerated block differs from the existing one.
//
// File organization:
//   - types.go: Entry, Groups and category rules
//   - categorize.go: anchor-segment path grouping
//   - match.go: companion documentation lookup (exact + fuzzy)
//   - render.go: deterministic markdown rendering
//   - merge.go: marker-delimited document merging
//   - catalog.go: the Build pipeline
package catalog
