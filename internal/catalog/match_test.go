// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func mkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	mkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestNormalizeStem(t *testing.T) {
	cases := map[string]string{
		"M365-Cleanup":  "m365cleanup",
		"m365_cleanup":  "m365cleanup",
		"Fix DNS!":      "fixdns",
		"___":           "",
		"AlreadyLower1": "alreadylower1",
	}
	for in, want := range cases {
		if got := NormalizeStem(in); got != want {
			t.Fatalf("NormalizeStem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFindCompanionDocSiblingPriority(t *testing.T) {
	root := t.TempDir()
	script := filepath.Join(root, "Scripts", "Windows", "Foo.ps1")
	touch(t, script)
	touch(t, filepath.Join(root, "Scripts", "Windows", "Foo.md"))
	touch(t, filepath.Join(root, "Scripts", "Windows", "README.md"))

	idx := NewDocIndex(root, nil, nil, 0)

	// README.md outranks the stem-named sibling.
	if got := idx.FindCompanionDoc(script); got != "Scripts/Windows/README.md" {
		t.Fatalf("FindCompanionDoc = %q, want sibling README.md", got)
	}
}

func TestFindCompanionDocStemSibling(t *testing.T) {
	root := t.TempDir()
	script := filepath.Join(root, "Scripts", "Foo.ps1")
	touch(t, script)
	touch(t, filepath.Join(root, "Scripts", "Foo.md"))

	idx := NewDocIndex(root, nil, nil, 0)
	if got := idx.FindCompanionDoc(script); got != "Scripts/Foo.md" {
		t.Fatalf("FindCompanionDoc = %q, want stem sibling", got)
	}
}

func TestFindCompanionDocIndexedExactMatch(t *testing.T) {
	root := t.TempDir()
	script := filepath.Join(root, "Scripts", "M365-Cleanup.ps1")
	touch(t, script)
	touch(t, filepath.Join(root, "docs", "M365Cleanup", "README.md"))

	idx := NewDocIndex(root, []string{"docs"}, nil, 0)
	if got := idx.FindCompanionDoc(script); got != "docs/M365Cleanup/README.md" {
		t.Fatalf("FindCompanionDoc = %q, want indexed doc folder README", got)
	}
}

func TestFindCompanionDocFuzzyFallback(t *testing.T) {
	root := t.TempDir()
	script := filepath.Join(root, "Scripts", "M365-Cleanups.ps1")
	touch(t, script)
	touch(t, filepath.Join(root, "docs", "M365Cleanup", "README.md"))

	idx := NewDocIndex(root, []string{"docs"}, nil, 0)
	if got := idx.FindCompanionDoc(script); got != "docs/M365Cleanup/README.md" {
		t.Fatalf("FindCompanionDoc = %q, want fuzzy match", got)
	}
}

func TestFindCompanionDocRejectsWeakFuzzyMatch(t *testing.T) {
	root := t.TempDir()
	script := filepath.Join(root, "Scripts", "zzzz.sh")
	touch(t, script)
	touch(t, filepath.Join(root, "docs", "M365Cleanup", "README.md"))

	idx := NewDocIndex(root, []string{"docs"}, nil, 0)
	if got := idx.FindCompanionDoc(script); got != "" {
		t.Fatalf("FindCompanionDoc = %q, want no match", got)
	}
}

func TestFindCompanionDocNoDocsAnywhere(t *testing.T) {
	root := t.TempDir()
	script := filepath.Join(root, "Scripts", "lonely.sh")
	touch(t, script)

	idx := NewDocIndex(root, []string{"docs"}, nil, 0)
	if got := idx.FindCompanionDoc(script); got != "" {
		t.Fatalf("FindCompanionDoc = %q, want empty", got)
	}
}

func TestLevenshteinSimilarityRatio(t *testing.T) {
	sim := levenshteinSimilarity{}

	if got := sim.Ratio("abc", "abc"); got != 1 {
		t.Fatalf("Ratio(identical) = %v, want 1", got)
	}
	if got := sim.Ratio("", ""); got != 1 {
		t.Fatalf("Ratio(empty, empty) = %v, want 1", got)
	}
	if got := sim.Ratio("abcd", "abce"); got != 0.75 {
		t.Fatalf("Ratio(one edit of four) = %v, want 0.75", got)
	}
	if got := sim.Ratio("abc", "xyz"); got != 0 {
		t.Fatalf("Ratio(disjoint) = %v, want 0", got)
	}
}

type constantSimilarity struct{ v float64 }

func (c constantSimilarity) Ratio(a, b string) float64 { return c.v }

func TestDocIndexPluggableSimilarity(t *testing.T) {
	root := t.TempDir()
	script := filepath.Join(root, "Scripts", "anything.sh")
	touch(t, script)
	touch(t, filepath.Join(root, "docs", "SomeDoc", "README.md"))

	idx := NewDocIndex(root, []string{"docs"}, constantSimilarity{v: 0.9}, 0.5)
	if got := idx.FindCompanionDoc(script); got != "docs/SomeDoc/README.md" {
		t.Fatalf("FindCompanionDoc = %q, want forced match via injected strategy", got)
	}
}
