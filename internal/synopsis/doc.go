// SPDX-License-Identifier: MPL-2.0

// Package synopsis extracts one-line summaries from script comment headers.
//
// Three comment conventions (dialects) are recognized:
//   - Comment-help blocks: <# ... #> containing a .SYNOPSIS tag (PowerShell)
//   - Leading hash comments: the first non-empty # line after an optional shebang (shell)
//   - Module docstrings: the first line of a leading triple-quoted string,
//     falling back to the hash-comment rule when no docstring is present (Python)
//
// Extraction never fails: malformed or comment-free input yields an empty
// string, which callers interpret as "no synopsis declared".
package synopsis
