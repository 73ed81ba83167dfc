package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// disableHistory points COVGATE_CONFIG at a config with history turned
// off so command tests never touch ~/.covgate.
func disableHistory(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "covgate.yaml")
	if err := os.WriteFile(path, []byte("history:\n  disable: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COVGATE_CONFIG", path)
}

func TestVersionCommand(t *testing.T) {
	SetVersion("test-version")
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "test-version") {
		t.Errorf("expected version output to contain 'test-version', got: %s", out)
	}
}

func TestRootHelp(t *testing.T) {
	out, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedSubcommands := []string{
		"status", "stage", "commit", "push", "pr",
		"mvn", "jacoco", "coverage", "scaffold",
		"failures", "propose", "history", "db", "config",
		"tool", "version",
	}
	for _, sub := range expectedSubcommands {
		if !strings.Contains(out, sub) {
			t.Errorf("help output missing subcommand %q", sub)
		}
	}
}

func TestCoverageSubcommands(t *testing.T) {
	subcmds := []string{"percent", "analyze"}
	for _, sub := range subcmds {
		out, err := executeCommand("coverage", sub, "--help")
		if err != nil {
			t.Errorf("coverage %s --help failed: %v", sub, err)
		}
		if out == "" {
			t.Errorf("coverage %s --help produced no output", sub)
		}
	}
}

func TestGroupedSubcommands(t *testing.T) {
	groups := [][]string{
		{"pr", "create"},
		{"jacoco", "configure"},
	}
	for _, g := range groups {
		out, err := executeCommand(g[0], g[1], "--help")
		if err != nil {
			t.Errorf("%s %s --help failed: %v", g[0], g[1], err)
		}
		if out == "" {
			t.Errorf("%s %s --help produced no output", g[0], g[1])
		}
	}
}

func TestConfigShowMergesDefaults(t *testing.T) {
	disableHistory(t)
	out, err := executeCommand("config", "show")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "command: mvn") {
		t.Errorf("expected merged maven default, got: %s", out)
	}
}

func TestConfigValidateRejectsBadThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "covgate.yaml")
	if err := os.WriteFile(path, []byte("coverage:\n  threshold: 140\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COVGATE_CONFIG", path)

	out, err := executeCommand("config", "validate")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(out, "coverage.threshold") {
		t.Errorf("expected threshold error in output, got: %s", out)
	}
}

func TestCommitRequiresMessage(t *testing.T) {
	disableHistory(t)
	_, err := executeCommand("commit")
	if err == nil || !strings.Contains(err.Error(), "message") {
		t.Errorf("expected missing-message error, got %v", err)
	}
}

func TestToolUnknownName(t *testing.T) {
	disableHistory(t)
	out, err := executeCommand("tool", "definitely_not_a_tool")
	if err != nil {
		t.Fatalf("unknown tool must not fail the process: %v", err)
	}
	if !strings.Contains(out, `"ok": false`) {
		t.Errorf("expected ok:false envelope, got: %s", out)
	}
	if !strings.Contains(out, "Unknown tool") {
		t.Errorf("expected unknown-tool message, got: %s", out)
	}
}

func TestToolTestFailuresEmptyProject(t *testing.T) {
	disableHistory(t)
	out, err := executeCommand("tool", "test_failures", t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"ok": true`) {
		t.Errorf("expected ok:true for a project with no reports, got: %s", out)
	}
	if !strings.Contains(out, `"count": 0`) {
		t.Errorf("expected zero failures, got: %s", out)
	}
}

func TestToolAnalyzeCoverageMissingReport(t *testing.T) {
	disableHistory(t)
	out, err := executeCommand("tool", "analyze_coverage", t.TempDir())
	if err != nil {
		t.Fatalf("tool failures must stay in the envelope: %v", err)
	}
	if !strings.Contains(out, `"ok": false`) {
		t.Errorf("expected ok:false for missing report, got: %s", out)
	}
	if !strings.Contains(out, "run Maven tests with JaCoCo enabled") {
		t.Errorf("expected locate hint in message, got: %s", out)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := executeCommand("nonexistent")
	if err == nil {
		t.Error("expected error for unknown command, got nil")
	}
}
