package maven

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const pomWithPlugins = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <groupId>com.example</groupId>
  <artifactId>demo</artifactId>
  <version>1.0.0</version>
  <build>
    <plugins>
      <plugin>
        <groupId>org.apache.maven.plugins</groupId>
        <artifactId>maven-compiler-plugin</artifactId>
      </plugin>
    </plugins>
  </build>
</project>
`

func writePom(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pom.xml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestConfigureJacoco_MissingPom(t *testing.T) {
	_, err := ConfigureJacoco(t.TempDir())
	if !errors.Is(err, ErrNoPom) {
		t.Fatalf("expected ErrNoPom, got %v", err)
	}
}

func TestConfigureJacoco_InsertsUnderPlugins(t *testing.T) {
	dir := writePom(t, pomWithPlugins)
	res, err := ConfigureJacoco(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Changed {
		t.Error("expected a modification")
	}
	text, err := os.ReadFile(filepath.Join(dir, "pom.xml"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(text), "jacoco-maven-plugin"); n != 1 {
		t.Errorf("expected exactly 1 plugin insertion, found %d", n)
	}
	if !strings.Contains(string(text), "prepare-agent") {
		t.Error("expected agent execution in the inserted block")
	}
	// The compiler plugin must survive the edit.
	if !strings.Contains(string(text), "maven-compiler-plugin") {
		t.Error("existing plugins must be preserved")
	}

	backup, err := os.ReadFile(filepath.Join(dir, "pom.xml.bak"))
	if err != nil {
		t.Fatalf("expected a backup file: %v", err)
	}
	if string(backup) != pomWithPlugins {
		t.Error("backup must hold the pre-edit pom")
	}
}

func TestConfigureJacoco_WrapsBareBuild(t *testing.T) {
	dir := writePom(t, `<project>
  <build>
  </build>
</project>
`)
	if _, err := ConfigureJacoco(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, _ := os.ReadFile(filepath.Join(dir, "pom.xml"))
	if !strings.Contains(string(text), "<plugins>") {
		t.Error("expected a plugins section to be created")
	}
	if !strings.Contains(string(text), "jacoco-maven-plugin") {
		t.Error("expected plugin insertion")
	}
}

func TestConfigureJacoco_AddsBuildSection(t *testing.T) {
	dir := writePom(t, `<project>
  <artifactId>bare</artifactId>
</project>
`)
	if _, err := ConfigureJacoco(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, _ := os.ReadFile(filepath.Join(dir, "pom.xml"))
	for _, want := range []string{"<build>", "<plugins>", "jacoco-maven-plugin", "</project>"} {
		if !strings.Contains(string(text), want) {
			t.Errorf("pom missing %q after configuration", want)
		}
	}
}

func TestConfigureJacoco_Idempotent(t *testing.T) {
	dir := writePom(t, pomWithPlugins)
	if _, err := ConfigureJacoco(dir); err != nil {
		t.Fatal(err)
	}
	res, err := ConfigureJacoco(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Changed {
		t.Error("second run must not modify the pom again")
	}
	if !strings.Contains(res.Message, "already configured") {
		t.Errorf("message = %q", res.Message)
	}
}

func TestConfigureJacoco_NeverOverwritesBackup(t *testing.T) {
	dir := writePom(t, pomWithPlugins)
	sentinel := "earlier backup"
	if err := os.WriteFile(filepath.Join(dir, "pom.xml.bak"), []byte(sentinel), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := ConfigureJacoco(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Backup != "" {
		t.Errorf("no new backup should be reported, got %q", res.Backup)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "pom.xml.bak"))
	if string(data) != sentinel {
		t.Errorf("backup overwritten: %q", data)
	}
}
