package jacoco

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ErrNotFound reports that no coverage report exists at the given path.
var ErrNotFound = errors.New("coverage report not found")

// ErrMalformed reports that the report file could not be decoded at all.
// Individually broken class entries do not trigger it; they are skipped.
var ErrMalformed = errors.New("malformed coverage report")

// CounterKind identifies what a JaCoCo counter measures.
type CounterKind string

const (
	KindInstruction CounterKind = "INSTRUCTION"
	KindBranch      CounterKind = "BRANCH"
	KindLine        CounterKind = "LINE"
	KindComplexity  CounterKind = "COMPLEXITY"
	KindMethod      CounterKind = "METHOD"
	KindClass       CounterKind = "CLASS"
)

// Counter is a missed/covered pair for one kind at one scope.
type Counter struct {
	Kind    CounterKind `json:"kind"`
	Missed  int         `json:"missed"`
	Covered int         `json:"covered"`
}

// Total returns the number of items the counter accounts for.
func (c Counter) Total() int {
	return c.Missed + c.Covered
}

// Class holds the counters recorded for a single class.
type Class struct {
	Name     string    `json:"name"`
	Counters []Counter `json:"counters"`
}

// Counter returns the class counter of the given kind, if present.
func (c Class) Counter(kind CounterKind) (Counter, bool) {
	for _, ctr := range c.Counters {
		if ctr.Kind == kind {
			return ctr, true
		}
	}
	return Counter{}, false
}

// Package groups the classes reported under one Java package. Names keep
// the slash-separated form JaCoCo writes (com/example/app).
type Package struct {
	Name    string  `json:"name"`
	Classes []Class `json:"classes"`
}

// Report is the decoded coverage report tree. It is built fresh on every
// Parse call and never mutated afterwards. Packages and classes appear in
// document order.
type Report struct {
	Name     string    `json:"name"`
	Packages []Package `json:"packages"`
}

// Raw decode layer. Counter attributes stay strings so that a single
// non-integer value breaks only its own class, not the whole document.
type xmlReport struct {
	XMLName  xml.Name     `xml:"report"`
	Name     string       `xml:"name,attr"`
	Packages []xmlPackage `xml:"package"`
}

type xmlPackage struct {
	Name    string     `xml:"name,attr"`
	Classes []xmlClass `xml:"class"`
}

type xmlClass struct {
	Name     string       `xml:"name,attr"`
	Counters []xmlCounter `xml:"counter"`
}

type xmlCounter struct {
	Type    string `xml:"type,attr"`
	Missed  string `xml:"missed,attr"`
	Covered string `xml:"covered,attr"`
}

// Parse reads the JaCoCo XML report at path. A missing file maps to
// ErrNotFound and an undecodable document to ErrMalformed; class entries
// with unusable counters are dropped so a partially broken report still
// yields the classes that do decode.
func Parse(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}

	var raw xmlReport
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}

	report := &Report{Name: raw.Name}
	for _, pkg := range raw.Packages {
		p := Package{Name: pkg.Name}
		for _, cls := range pkg.Classes {
			c, ok := buildClass(cls)
			if !ok {
				continue
			}
			p.Classes = append(p.Classes, c)
		}
		report.Packages = append(report.Packages, p)
	}
	return report, nil
}

// buildClass converts a raw class entry, reporting ok=false when the entry
// is unusable (missing name, non-integer counter values).
func buildClass(raw xmlClass) (Class, bool) {
	if raw.Name == "" {
		return Class{}, false
	}
	c := Class{Name: raw.Name}
	for _, ctr := range raw.Counters {
		if ctr.Type == "" {
			continue
		}
		missed, err := strconv.Atoi(ctr.Missed)
		if err != nil {
			return Class{}, false
		}
		covered, err := strconv.Atoi(ctr.Covered)
		if err != nil {
			return Class{}, false
		}
		c.Counters = append(c.Counters, Counter{
			Kind:    CounterKind(ctr.Type),
			Missed:  missed,
			Covered: covered,
		})
	}
	return c, true
}
