package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"whoopctl/internal/config"
)

func setupVersionTest(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	SetBuildInfo("abc1234", "2026-08-23T07:16:38Z")
	// Initialize minimal config so PersistentPreRunE doesn't fail on version
	cfg = &config.Config{
		Output:  config.OutputConfig{Colors: false},
		Logging: config.LoggingConfig{Level: "info"},
	}
	// Reset flags between test runs to avoid state leaking
	versionCmd.Flags().Set("short", "false")
	versionCmd.Flags().Set("json", "false")
}

func TestVersionOutput_ContainsFields(t *testing.T) {
	setupVersionTest(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	out := buf.String()
	for _, field := range []string{"commit:", "built:", "go version:", "platform:"} {
		if !strings.Contains(out, field) {
			t.Errorf("version output missing %q field. Got:\n%s", field, out)
		}
	}
	if !strings.Contains(out, "whoopctl version") {
		t.Errorf("version output missing binary name. Got:\n%s", out)
	}
}

func TestVersionShort(t *testing.T) {
	setupVersionTest(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version", "--short"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version --short failed: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 {
		t.Errorf("expected single line for --short, got %d lines:\n%s", len(lines), out)
	}
}

func TestVersionJSON(t *testing.T) {
	setupVersionTest(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version", "--json"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version --json failed: %v", err)
	}

	var info map[string]string
	if err := json.Unmarshal(buf.Bytes(), &info); err != nil {
		t.Fatalf("version --json produced invalid JSON: %v\n%s", err, buf.String())
	}
	if info["commit"] != "abc1234" {
		t.Errorf("commit = %q, want %q", info["commit"], "abc1234")
	}
	for _, key := range []string{"version", "built", "goVersion", "platform"} {
		if info[key] == "" {
			t.Errorf("missing %q in JSON output: %v", key, info)
		}
	}
}
