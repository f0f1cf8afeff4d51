// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"catalogctl/internal/config"
)

// execute runs the root command with args against a temp repo and returns
// combined output. Global flag state is restored afterwards.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		verbose = false
		cfgFile = ""
		repoRoot = "."
		buildDryRun = false
		buildPreview = false
		lintSyntax = false
		lintTrack = false
		stampSHA = ""
		config.Reset()
	})

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

func seedRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	scripts := filepath.Join(root, "Scripts", "Windows")
	if err := os.MkdirAll(scripts, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	ps1 := "<#\n.SYNOPSIS\nResets cached credentials.\n#>\n"
	if err := os.WriteFile(filepath.Join(scripts, "Reset.ps1"), []byte(ps1), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return root
}

func TestBuildDryRunPrintsBlock(t *testing.T) {
	root := seedRepo(t)

	out, err := execute(t, "build", "--dry-run", "--repo", root)
	if err != nil {
		t.Fatalf("build --dry-run: %v\n%s", err, out)
	}

	if !strings.Contains(out, "Reset.ps1") || !strings.Contains(out, "Resets cached credentials.") {
		t.Fatalf("unexpected dry-run output:\n%s", out)
	}
	if _, statErr := os.Stat(filepath.Join(root, "README.md")); statErr == nil {
		t.Fatalf("dry run must not create the README")
	}
}

func TestBuildWritesReadme(t *testing.T) {
	root := seedRepo(t)

	out, err := execute(t, "build", "--repo", root)
	if err != nil {
		t.Fatalf("build: %v\n%s", err, out)
	}

	data, err := os.ReadFile(filepath.Join(root, "README.md"))
	if err != nil {
		t.Fatalf("read README: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "<!-- GENERATED-CATALOG:START -->") {
		t.Fatalf("README missing start marker:\n%s", content)
	}
	if !strings.Contains(content, "Reset.ps1") {
		t.Fatalf("README missing catalog entry:\n%s", content)
	}
}

func TestLintFailsOnMissingSynopsis(t *testing.T) {
	root := seedRepo(t)
	bare := "#!/bin/bash\necho hi\n"
	if err := os.WriteFile(filepath.Join(root, "Scripts", "bare.sh"), []byte(bare), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	out, err := execute(t, "lint", "--repo", root)
	if err == nil {
		t.Fatalf("expected lint to fail:\n%s", out)
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("expected ExitError code 1, got %v", err)
	}
	if !strings.Contains(out, "Scripts/bare.sh") {
		t.Fatalf("offender not listed:\n%s", out)
	}
}

func TestLintPassesOnCleanTree(t *testing.T) {
	root := seedRepo(t)

	out, err := execute(t, "lint", "--repo", root)
	if err != nil {
		t.Fatalf("lint: %v\n%s", err, out)
	}
	if !strings.Contains(out, "OK") {
		t.Fatalf("expected OK output:\n%s", out)
	}
}

func TestStampCommand(t *testing.T) {
	root := seedRepo(t)
	script := "#!/bin/sh\necho {{COMMIT_SHA}}\n"
	if err := os.WriteFile(filepath.Join(root, "Scripts", "v.sh"), []byte(script), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	out, err := execute(t, "stamp", "--repo", root, "--sha", "cafe123")
	if err != nil {
		t.Fatalf("stamp: %v\n%s", err, out)
	}

	data, err := os.ReadFile(filepath.Join(root, "Scripts", "v.sh"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "echo cafe123") {
		t.Fatalf("placeholder not stamped: %q", string(data))
	}
}

func TestConfigInitAndPath(t *testing.T) {
	root := t.TempDir()

	out, err := execute(t, "config", "init", "--repo", root)
	if err != nil {
		t.Fatalf("config init: %v\n%s", err, out)
	}
	if _, statErr := os.Stat(filepath.Join(root, "catalogctl.toml")); statErr != nil {
		t.Fatalf("config file not created: %v", statErr)
	}

	out, err = execute(t, "config", "path", "--repo", root)
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if !strings.Contains(out, "catalogctl.toml") {
		t.Fatalf("unexpected path output: %q", out)
	}
}
