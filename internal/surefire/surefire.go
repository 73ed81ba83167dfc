// Package surefire reads Maven Surefire XML reports and extracts the
// failing test cases.
package surefire

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
)

// ReportsDir is the conventional Surefire output location relative to a
// Maven project root.
var ReportsDir = filepath.Join("target", "surefire-reports")

// Failure describes one failing or erroring test case.
type Failure struct {
	Classname  string `json:"classname"`
	Name       string `json:"name"`
	Message    string `json:"message"`
	StackTrace string `json:"stacktrace"`
}

type xmlTestCase struct {
	Classname string      `xml:"classname,attr"`
	Name      string      `xml:"name,attr"`
	Failure   *xmlProblem `xml:"failure"`
	Error     *xmlProblem `xml:"error"`
}

type xmlProblem struct {
	Message string `xml:"message,attr"`
	Text    string `xml:",chardata"`
}

// CollectFailures scans the project's Surefire report directory and
// returns every failing test case, in report-file order. A missing
// directory yields an empty result; files that fail to decode are
// skipped so one corrupt report cannot hide the rest.
func CollectFailures(projectDir string) ([]Failure, error) {
	dir := filepath.Join(projectDir, ReportsDir)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, err
	}

	var failures []Failure
	for _, file := range files {
		found, err := parseReport(file)
		if err != nil {
			continue
		}
		failures = append(failures, found...)
	}
	return failures, nil
}

// parseReport walks one report's token stream so test cases are found at
// any nesting depth.
func parseReport(path string) ([]Failure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []Failure
	dec := xml.NewDecoder(f)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "testcase" {
			continue
		}
		var tc xmlTestCase
		if err := dec.DecodeElement(&tc, &se); err != nil {
			return nil, err
		}
		problem := tc.Failure
		if problem == nil {
			problem = tc.Error
		}
		if problem == nil {
			continue
		}
		out = append(out, Failure{
			Classname:  tc.Classname,
			Name:       tc.Name,
			Message:    problem.Message,
			StackTrace: problem.Text,
		})
	}
	return out, nil
}
