package jacoco

import "fmt"

// Summary is the aggregate line coverage for a whole report. Percent is
// derived, never stored in the artifact; 0.0 when the report counts no
// lines at all.
type Summary struct {
	Percent float64 `json:"percent"`
	Covered int     `json:"covered"`
	Missed  int     `json:"missed"`
}

// Total returns the line count the summary is computed over.
func (s Summary) Total() int {
	return s.Covered + s.Missed
}

// LineSummary sums the LINE counters of every class in the report.
func (r *Report) LineSummary() Summary {
	var s Summary
	for _, pkg := range r.Packages {
		for _, cls := range pkg.Classes {
			ctr, ok := cls.Counter(KindLine)
			if !ok {
				continue
			}
			s.Covered += ctr.Covered
			s.Missed += ctr.Missed
		}
	}
	if total := s.Total(); total > 0 {
		s.Percent = float64(s.Covered) / float64(total) * 100.0
	}
	return s
}

// UncoveredClass identifies one class with uncovered lines.
type UncoveredClass struct {
	Package string `json:"package"`
	Class   string `json:"class"`
	Missed  int    `json:"missed"`
	Covered int    `json:"covered"`
}

// Recommendation renders the advice line for an uncovered class.
func (u UncoveredClass) Recommendation() string {
	return fmt.Sprintf("Increase tests for %s.%s (missed lines: %d)", u.Package, u.Class, u.Missed)
}

// Gaps walks every class and returns one entry per class whose LINE
// counter has missed lines. Order is document order, so repeated calls
// over the same report always agree.
func (r *Report) Gaps() []UncoveredClass {
	var gaps []UncoveredClass
	for _, pkg := range r.Packages {
		for _, cls := range pkg.Classes {
			ctr, ok := cls.Counter(KindLine)
			if !ok || ctr.Missed == 0 {
				continue
			}
			gaps = append(gaps, UncoveredClass{
				Package: pkg.Name,
				Class:   cls.Name,
				Missed:  ctr.Missed,
				Covered: ctr.Covered,
			})
		}
	}
	return gaps
}

// GapReport is the result of analyzing a located report for under-covered
// classes.
type GapReport struct {
	File            string           `json:"file"`
	Uncovered       []UncoveredClass `json:"uncovered"`
	Recommendations []string         `json:"recommendations"`
}

// Analyze locates a report (reportPath wins when non-empty, otherwise the
// search policy in Locate applies), parses it, and returns the gap report.
func Analyze(projectDir, reportPath string) (*GapReport, error) {
	path := reportPath
	if path == "" {
		found, err := Locate(projectDir)
		if err != nil {
			return nil, err
		}
		path = found
	}

	report, err := Parse(path)
	if err != nil {
		return nil, err
	}

	gaps := report.Gaps()
	recs := make([]string, 0, len(gaps))
	for _, g := range gaps {
		recs = append(recs, g.Recommendation())
	}
	return &GapReport{File: path, Uncovered: gaps, Recommendations: recs}, nil
}

// Percent locates, parses and summarizes a report in one step.
func Percent(projectDir, reportPath string) (Summary, string, error) {
	path := reportPath
	if path == "" {
		found, err := Locate(projectDir)
		if err != nil {
			return Summary{}, "", err
		}
		path = found
	}
	report, err := Parse(path)
	if err != nil {
		return Summary{}, "", err
	}
	return report.LineSummary(), path, nil
}
