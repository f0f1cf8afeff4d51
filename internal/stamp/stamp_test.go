// SPDX-License-Identifier: MPL-2.0

package stamp

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunReplacesPlaceholder(t *testing.T) {
	root := t.TempDir()

	write := func(rel, content string) {
		t.Helper()
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}

	write("Scripts/a.ps1", "# Version: {{COMMIT_SHA}}\nWrite-Host 'x'\n")
	write("Scripts/b.sh", "#!/bin/sh\necho {{COMMIT_SHA}}\n")
	write("Scripts/c.sh", "#!/bin/sh\necho 'no placeholder'\n")
	write("Scripts/d.txt", "{{COMMIT_SHA}} but wrong extension\n")

	result, err := Run(Options{
		RepoRoot:    root,
		Placeholder: "{{COMMIT_SHA}}",
		Extensions:  []string{".ps1", ".sh"},
		SHA:         "abc1234",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Stamped) != 2 {
		t.Fatalf("Stamped = %v, want 2 files", result.Stamped)
	}

	data, err := os.ReadFile(filepath.Join(root, "Scripts/a.ps1"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if want := "# Version: abc1234\nWrite-Host 'x'\n"; string(data) != want {
		t.Fatalf("stamped content = %q, want %q", string(data), want)
	}

	// The wrong-extension file is untouched.
	data, err = os.ReadFile(filepath.Join(root, "Scripts/d.txt"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "{{COMMIT_SHA}} but wrong extension\n" {
		t.Fatalf("d.txt was modified: %q", string(data))
	}
}

func TestRunRequiresPlaceholder(t *testing.T) {
	if _, err := Run(Options{RepoRoot: t.TempDir(), SHA: "abc"}); err == nil {
		t.Fatalf("expected error for empty placeholder")
	}
}

func TestResolveSHAFromEnv(t *testing.T) {
	t.Setenv("GIT_SHA", "  feedbee ")

	sha, err := ResolveSHA(t.TempDir())
	if err != nil {
		t.Fatalf("ResolveSHA: %v", err)
	}
	if sha != "feedbee" {
		t.Fatalf("sha = %q, want feedbee", sha)
	}
}
