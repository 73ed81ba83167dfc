// Package fixes persists fix proposals for failing tests under the
// project's hidden state directory.
package fixes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/covgate/covgate/internal/fsutil"
	"github.com/covgate/covgate/internal/surefire"
)

// Proposal pairs an iteration number with the failures observed in it.
// The adjacent .patch file starts as a placeholder for a human (or a
// later tool) to fill with an actual unified diff.
type Proposal struct {
	Iteration int                `json:"iteration"`
	Failures  []surefire.Failure `json:"failures"`
}

const patchPlaceholder = `# Proposal patch placeholder
# This file contains suggested changes to fix failing tests found during iteration.
# Inspect the failures in the .json file and edit this patch to include actual unified-diff content.
`

// Store manages proposal files for one project.
type Store struct {
	baseDir string
}

// NewStore roots a store at <projectDir>/.covgate/fixes.
func NewStore(projectDir string) *Store {
	return &Store{baseDir: filepath.Join(projectDir, ".covgate", "fixes")}
}

// BaseDir returns the store's root directory.
func (s *Store) BaseDir() string { return s.baseDir }

func (s *Store) metaPath(iteration int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("proposal_%d.json", iteration))
}

func (s *Store) patchPath(iteration int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("proposal_%d.patch", iteration))
}

// Write persists the proposal metadata plus its placeholder patch and
// returns the metadata path.
func (s *Store) Write(p Proposal) (string, error) {
	meta := s.metaPath(p.Iteration)
	if err := fsutil.WriteJSON(meta, p); err != nil {
		return "", err
	}
	if err := fsutil.WriteAtomic(s.patchPath(p.Iteration), []byte(patchPlaceholder)); err != nil {
		return "", err
	}
	return meta, nil
}

// Read loads a stored proposal by iteration number.
func (s *Store) Read(iteration int) (Proposal, error) {
	var p Proposal
	if err := fsutil.ReadJSON(s.metaPath(iteration), &p); err != nil {
		return Proposal{}, err
	}
	return p, nil
}

// Iterations lists the stored iteration numbers in ascending order.
func (s *Store) Iterations() ([]int, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []int
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "proposal_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "proposal_"), ".json"))
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	sort.Ints(out)
	return out, nil
}

// NextIteration returns one past the highest stored iteration, starting
// at 1 for an empty store.
func (s *Store) NextIteration() (int, error) {
	nums, err := s.Iterations()
	if err != nil {
		return 0, err
	}
	if len(nums) == 0 {
		return 1, nil
	}
	return nums[len(nums)-1] + 1, nil
}
