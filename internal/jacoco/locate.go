package jacoco

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ReportFileName is the file name the JaCoCo Maven plugin writes.
const ReportFileName = "jacoco.xml"

// DefaultReportPath is the conventional location under a Maven project
// root, tried when the walk finds nothing.
var DefaultReportPath = filepath.Join("target", "site", "jacoco", ReportFileName)

// Locate finds a coverage report under projectDir. It first walks the
// tree for any file named jacoco.xml (first hit in walk order wins), then
// falls back to the conventional build-output path. A miss is ErrNotFound
// with a hint that instrumented tests have to run first.
func Locate(projectDir string) (string, error) {
	var found string
	walkErr := filepath.WalkDir(projectDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, keep looking elsewhere
		}
		if !d.IsDir() && d.Name() == ReportFileName {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if walkErr == nil && found != "" {
		return found, nil
	}

	fallback := filepath.Join(projectDir, DefaultReportPath)
	if _, err := os.Stat(fallback); err == nil {
		return fallback, nil
	}

	return "", fmt.Errorf("%w under %s: run Maven tests with JaCoCo enabled first", ErrNotFound, projectDir)
}
