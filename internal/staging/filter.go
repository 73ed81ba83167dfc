package staging

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes is the exclusion set applied when the caller supplies no
// patterns. It covers build output, compiled artifacts, logs, and IDE
// metadata.
var DefaultExcludes = []string{
	"**/target/**",
	"**/*.class",
	"**/*.jar",
	"**/*.log",
	"**/.idea/**",
	"**/.vscode/**",
	"**/*.pyc",
	"**/node_modules/**",
}

// Decision records the verdict for a single changed path.
type Decision struct {
	Path     string `json:"path"`
	Included bool   `json:"included"`
}

// Filter drops changed paths that match any of its glob patterns. Each
// path is tested both as reported (repo-relative) and joined to the repo
// root, and is excluded if any pattern matches either form.
type Filter struct {
	root     string
	patterns []string
}

// NewFilter builds a filter rooted at the repository directory. A nil or
// empty pattern list selects DefaultExcludes; a caller-supplied list
// replaces the defaults entirely.
func NewFilter(root string, patterns []string) *Filter {
	if len(patterns) == 0 {
		patterns = DefaultExcludes
	}
	return &Filter{root: root, patterns: patterns}
}

// Excluded reports whether the path matches any exclusion pattern.
func (f *Filter) Excluded(path string) bool {
	abs := path
	if f.root != "" && !filepath.IsAbs(path) {
		abs = filepath.Join(f.root, path)
	}
	for _, pat := range f.patterns {
		if matchPattern(pat, path) {
			return true
		}
		if abs != path && matchPattern(pat, abs) {
			return true
		}
	}
	return false
}

// Apply partitions the changed paths into kept and dropped sets,
// preserving input order.
func (f *Filter) Apply(paths []string) (kept, dropped []string) {
	for _, p := range paths {
		if f.Excluded(p) {
			dropped = append(dropped, p)
		} else {
			kept = append(kept, p)
		}
	}
	return kept, dropped
}

// Decisions returns the per-path verdicts in input order.
func (f *Filter) Decisions(paths []string) []Decision {
	out := make([]Decision, 0, len(paths))
	for _, p := range paths {
		out = append(out, Decision{Path: p, Included: !f.Excluded(p)})
	}
	return out
}

func matchPattern(pattern, path string) bool {
	if ok, err := doublestar.PathMatch(pattern, path); err == nil && ok {
		return true
	}
	// Bare-name patterns also match against the final path element.
	if !strings.Contains(pattern, "/") {
		if ok, err := doublestar.PathMatch(pattern, filepath.Base(path)); err == nil && ok {
			return true
		}
	}
	return false
}
