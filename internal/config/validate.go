package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// ValidationError represents a single validation issue with a config.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a Config for semantic errors. It returns a slice of
// all validation errors found (empty if valid).
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.Project.Dir == "" {
		errs = append(errs, ValidationError{Field: "project.dir", Message: "is required"})
	}
	if cfg.Coverage.Threshold < 0 || cfg.Coverage.Threshold > 100 {
		errs = append(errs, ValidationError{
			Field:   "coverage.threshold",
			Message: fmt.Sprintf("must be between 0 and 100, got %v", cfg.Coverage.Threshold),
		})
	}
	if cfg.Maven.Command == "" {
		errs = append(errs, ValidationError{Field: "maven.command", Message: "is required"})
	}
	for i, pat := range cfg.Git.Excludes {
		if !doublestar.ValidatePattern(pat) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("git.excludes[%d]", i),
				Message: fmt.Sprintf("invalid glob pattern %q", pat),
			})
		}
	}
	return errs
}
