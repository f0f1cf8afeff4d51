// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"catalogctl/internal/synopsis"
)

func TestBuildEndToEnd(t *testing.T) {
	root := t.TempDir()

	psScript := "<#\n.SYNOPSIS\nRemoves stale profiles.\n#>\nRemove-Item foo\n"
	if err := os.MkdirAll(filepath.Join(root, "Scripts", "Windows"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "Scripts", "Windows", "Foo.ps1"), []byte(psScript), 0o644); err != nil {
		t.Fatalf("write ps1: %v", err)
	}

	shScript := "#!/bin/bash\nset -e\necho hi\n"
	if err := os.MkdirAll(filepath.Join(root, "Scripts", "Linux"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "Scripts", "Linux", "bar.sh"), []byte(shScript), 0o644); err != nil {
		t.Fatalf("write sh: %v", err)
	}

	result, err := Build(BuildOptions{
		RepoRoot: root,
		Roots:    []string{"Scripts"},
		Dialects: synopsis.DefaultTable(),
		Rules:    []Rule{{Anchor: "Scripts", Label: "Scripts"}},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if result.Total != 2 {
		t.Fatalf("Total = %d, want 2", result.Total)
	}
	if result.WithSynopsis != 1 {
		t.Fatalf("WithSynopsis = %d, want 1", result.WithSynopsis)
	}

	block := result.Block
	if !strings.Contains(block, "#### Windows") || !strings.Contains(block, "#### Linux") {
		t.Fatalf("subsections missing:\n%s", block)
	}
	if !strings.Contains(block, "- [Foo.ps1](Scripts/Windows/Foo.ps1) — Removes stale profiles.") {
		t.Fatalf("ps1 entry missing or missing synopsis:\n%s", block)
	}
	if !strings.Contains(block, "- [bar.sh](Scripts/Linux/bar.sh) — _missing synopsis_") {
		t.Fatalf("sh entry not marked as missing synopsis:\n%s", block)
	}
}

func TestBuildThenMergeRoundTrip(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "Scripts"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	script := "# Syncs things\necho sync\n"
	if err := os.WriteFile(filepath.Join(root, "Scripts", "sync.sh"), []byte(script), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	result, err := Build(BuildOptions{
		RepoRoot: root,
		Roots:    []string{"Scripts"},
		Dialects: synopsis.DefaultTable(),
		Rules:    []Rule{{Anchor: "Scripts", Label: "Scripts"}},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	readme := filepath.Join(root, "README.md")
	opts := MergeOptions{StartMarker: testStart, EndMarker: testEnd, Title: "Repo"}

	changed, err := WriteDocument(readme, result.Block, opts)
	if err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}
	if !changed {
		t.Fatalf("expected initial write to change the document")
	}

	// Unchanged tree, unchanged block: the second run must not rewrite.
	changed, err = WriteDocument(readme, result.Block, opts)
	if err != nil {
		t.Fatalf("WriteDocument rerun: %v", err)
	}
	if changed {
		t.Fatalf("rerun rewrote an unchanged document")
	}
}
