package jacoco

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleReport = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE report PUBLIC "-//JACOCO//DTD Report 1.1//EN" "report.dtd">
<report name="demo-app">
  <package name="com/example/app">
    <class name="com/example/app/Calculator" sourcefilename="Calculator.java">
      <method name="add" desc="(II)I" line="5">
        <counter type="LINE" missed="0" covered="2"/>
      </method>
      <counter type="INSTRUCTION" missed="5" covered="20"/>
      <counter type="LINE" missed="3" covered="7"/>
      <counter type="BRANCH" missed="1" covered="1"/>
    </class>
    <class name="com/example/app/Greeter" sourcefilename="Greeter.java">
      <counter type="LINE" missed="0" covered="4"/>
    </class>
    <counter type="LINE" missed="3" covered="11"/>
  </package>
  <package name="com/example/util">
    <class name="com/example/util/Strings" sourcefilename="Strings.java">
      <counter type="LINE" missed="6" covered="0"/>
    </class>
  </package>
  <counter type="LINE" missed="9" covered="11"/>
</report>
`

func writeReport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jacoco.xml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestParse_BuildsTree(t *testing.T) {
	report, err := Parse(writeReport(t, sampleReport))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Name != "demo-app" {
		t.Errorf("expected report name demo-app, got %q", report.Name)
	}
	if len(report.Packages) != 2 {
		t.Fatalf("expected 2 packages, got %d", len(report.Packages))
	}
	app := report.Packages[0]
	if app.Name != "com/example/app" {
		t.Errorf("expected first package com/example/app, got %q", app.Name)
	}
	if len(app.Classes) != 2 {
		t.Fatalf("expected 2 classes in first package, got %d", len(app.Classes))
	}
	calc := app.Classes[0]
	if calc.Name != "com/example/app/Calculator" {
		t.Errorf("unexpected class name %q", calc.Name)
	}
	// Only class-level counters count; the nested method counter must not
	// leak into the class.
	if len(calc.Counters) != 3 {
		t.Errorf("expected 3 class counters, got %d", len(calc.Counters))
	}
	line, ok := calc.Counter(KindLine)
	if !ok {
		t.Fatal("expected a LINE counter on Calculator")
	}
	if line.Missed != 3 || line.Covered != 7 {
		t.Errorf("expected LINE 3/7, got %d/%d", line.Missed, line.Covered)
	}
	if line.Total() != 10 {
		t.Errorf("expected total 10, got %d", line.Total())
	}
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "absent.xml"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestParse_UndecodableDocument(t *testing.T) {
	_, err := Parse(writeReport(t, "<report><package></report>"))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestParse_SkipsBrokenClassEntries(t *testing.T) {
	broken := `<?xml version="1.0"?>
<report name="partial">
  <package name="com/example">
    <class name="com/example/Bad">
      <counter type="LINE" missed="three" covered="7"/>
    </class>
    <class>
      <counter type="LINE" missed="1" covered="1"/>
    </class>
    <class name="com/example/Good">
      <counter type="LINE" missed="2" covered="8"/>
    </class>
  </package>
</report>
`
	report, err := Parse(writeReport(t, broken))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Packages) != 1 {
		t.Fatalf("expected 1 package, got %d", len(report.Packages))
	}
	classes := report.Packages[0].Classes
	if len(classes) != 1 {
		t.Fatalf("expected only the good class to survive, got %d", len(classes))
	}
	if classes[0].Name != "com/example/Good" {
		t.Errorf("expected com/example/Good, got %q", classes[0].Name)
	}
}

func TestLineSummary_SumsClassCounters(t *testing.T) {
	report, err := Parse(writeReport(t, sampleReport))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := report.LineSummary()
	if s.Covered != 11 || s.Missed != 9 {
		t.Errorf("expected 11 covered / 9 missed, got %d/%d", s.Covered, s.Missed)
	}
	if s.Total() != s.Covered+s.Missed {
		t.Errorf("total %d does not match covered+missed", s.Total())
	}
	if s.Percent != 55.0 {
		t.Errorf("expected 55.0 percent, got %v", s.Percent)
	}
}

func TestLineSummary_ZeroLines(t *testing.T) {
	empty := `<?xml version="1.0"?><report name="empty"></report>`
	report, err := Parse(writeReport(t, empty))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := report.LineSummary()
	if s.Percent != 0.0 {
		t.Errorf("expected 0.0 percent for an empty report, got %v", s.Percent)
	}
	if s.Covered != 0 || s.Missed != 0 {
		t.Errorf("expected zero counts, got %d/%d", s.Covered, s.Missed)
	}
}

func TestGaps_OnlyClassesWithMissedLines(t *testing.T) {
	two := `<?xml version="1.0"?>
<report name="gaps">
  <package name="com/example">
    <class name="com/example/Covered">
      <counter type="LINE" missed="0" covered="12"/>
    </class>
    <class name="com/example/Uncovered">
      <counter type="LINE" missed="3" covered="9"/>
    </class>
  </package>
</report>
`
	report, err := Parse(writeReport(t, two))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gaps := report.Gaps()
	if len(gaps) != 1 {
		t.Fatalf("expected exactly 1 uncovered class, got %d", len(gaps))
	}
	g := gaps[0]
	if g.Missed != 3 || g.Covered != 9 {
		t.Errorf("expected 3 missed / 9 covered, got %d/%d", g.Missed, g.Covered)
	}
	rec := g.Recommendation()
	want := "Increase tests for com/example.com/example/Uncovered (missed lines: 3)"
	if rec != want {
		t.Errorf("recommendation mismatch:\n got: %s\nwant: %s", rec, want)
	}
}

func TestGaps_DocumentOrder(t *testing.T) {
	report, err := Parse(writeReport(t, sampleReport))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gaps := report.Gaps()
	if len(gaps) != 2 {
		t.Fatalf("expected 2 uncovered classes, got %d", len(gaps))
	}
	if gaps[0].Class != "com/example/app/Calculator" {
		t.Errorf("expected Calculator first, got %q", gaps[0].Class)
	}
	if gaps[1].Class != "com/example/util/Strings" {
		t.Errorf("expected Strings second, got %q", gaps[1].Class)
	}
	// Idempotent: a second walk yields the same order.
	again := report.Gaps()
	for i := range gaps {
		if gaps[i] != again[i] {
			t.Errorf("gap %d changed between walks: %+v vs %+v", i, gaps[i], again[i])
		}
	}
}
