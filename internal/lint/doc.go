// SPDX-License-Identifier: MPL-2.0

// Package lint enforces synopsis headers across the configured script roots.
//
// A script passes when its dialect's synopsis extraction yields a non-empty
// summary. Findings are deterministic and sorted by path, so CI output is
// stable across runs. An optional syntax pass parses shell scripts with
// mvdan.cc/sh and reports files that do not parse at all.
package lint
