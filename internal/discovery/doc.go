// SPDX-License-Identifier: MPL-2.0

// Package discovery walks configured script roots and returns a deterministic
// list of script files.
//
// Roots are resolved against a repository root, visited recursively, and
// filtered by a case-insensitive extension allowlist. Paths reachable through
// more than one root (for example when one root is nested inside another) are
// reported once. Missing roots are skipped with a warning rather than failing
// the run, so a partially populated repository still produces a catalog.
package discovery
