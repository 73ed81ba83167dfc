package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "covgate.yaml")
	content := `project:
  dir: ./service
coverage:
  threshold: 80
  include: true
git:
  remote: upstream
  excludes:
    - "**/generated/**"
maven:
  goals: [clean, verify]
history:
  disable: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Project.Dir != "./service" {
		t.Errorf("project.dir = %q", cfg.Project.Dir)
	}
	if cfg.Coverage.Threshold != 80 || !cfg.Coverage.Include {
		t.Errorf("coverage = %+v", cfg.Coverage)
	}
	if cfg.Git.Remote != "upstream" {
		t.Errorf("git.remote = %q", cfg.Git.Remote)
	}
	if !reflect.DeepEqual(cfg.Git.Excludes, []string{"**/generated/**"}) {
		t.Errorf("git.excludes = %v", cfg.Git.Excludes)
	}
	if !reflect.DeepEqual(cfg.Maven.Goals, []string{"clean", "verify"}) {
		t.Errorf("maven.goals = %v", cfg.Maven.Goals)
	}
	if !cfg.History.Disable {
		t.Error("history.disable should be true")
	}

	// Unset values still get defaults.
	if cfg.Git.Base != "main" {
		t.Errorf("git.base default = %q, want main", cfg.Git.Base)
	}
	if cfg.Maven.Command != "mvn" {
		t.Errorf("maven.command default = %q, want mvn", cfg.Maven.Command)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "covgate.yaml")
	if err := os.WriteFile(path, []byte("coverage: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Project.Dir != "." {
		t.Errorf("project.dir = %q, want .", cfg.Project.Dir)
	}
	if cfg.Project.SourceRoot != filepath.Join("src", "main", "java") {
		t.Errorf("source_root = %q", cfg.Project.SourceRoot)
	}
	if cfg.Git.Remote != "origin" || cfg.Git.Base != "main" {
		t.Errorf("git defaults = %+v", cfg.Git)
	}
	if !reflect.DeepEqual(cfg.Maven.Goals, []string{"test"}) {
		t.Errorf("maven.goals = %v", cfg.Maven.Goals)
	}
	if cfg.Coverage.Threshold != 0 {
		t.Errorf("threshold default = %v, want 0 (disabled)", cfg.Coverage.Threshold)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if errs := Validate(cfg); len(errs) != 0 {
		t.Errorf("default config should validate, got %v", errs)
	}

	cfg.Coverage.Threshold = 140
	cfg.Git.Excludes = []string{"[bad"}
	errs := Validate(cfg)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	if errs[0].Field != "coverage.threshold" {
		t.Errorf("first error field = %q", errs[0].Field)
	}
	if errs[1].Field != "git.excludes[0]" {
		t.Errorf("second error field = %q", errs[1].Field)
	}
}
