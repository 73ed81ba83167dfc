package git

import (
	"context"
	"fmt"
	"strings"
)

// Status summarizes the working tree from one porcelain status query.
type Status struct {
	Branch    string   `json:"branch"`
	Upstream  string   `json:"upstream,omitempty"`
	Staged    []string `json:"staged"`
	Unstaged  []string `json:"unstaged"`
	Conflicts []string `json:"conflicts"`
	Untracked []string `json:"untracked"`
	Clean     bool     `json:"clean"`
}

// Status runs `git status --porcelain --branch` and classifies every
// entry by its two-letter code.
func (c *Client) Status(ctx context.Context) (Status, error) {
	res, err := c.run(ctx, "status", "--porcelain", "--branch")
	if err != nil {
		return Status{}, err
	}
	if res.ExitCode != 0 {
		return Status{}, fmt.Errorf("git status: %s", strings.TrimSpace(res.Combined()))
	}
	return parseStatus(res.Stdout), nil
}

func parseStatus(out string) Status {
	var st Status
	for _, ln := range strings.Split(out, "\n") {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		if strings.HasPrefix(ln, "##") {
			st.Branch, st.Upstream = parseBranchHeader(ln)
			continue
		}
		if len(ln) < 4 {
			continue
		}
		x, y := ln[0], ln[1]
		path := entryPath(ln[3:])
		switch {
		case x == '?' && y == '?':
			st.Untracked = append(st.Untracked, path)
		case x == 'U' || y == 'U' || (x == 'A' && y == 'A') || (x == 'D' && y == 'D'):
			st.Conflicts = append(st.Conflicts, path)
		default:
			if x != ' ' {
				st.Staged = append(st.Staged, path)
			}
			if y != ' ' {
				st.Unstaged = append(st.Unstaged, path)
			}
		}
	}
	st.Clean = len(st.Staged) == 0 && len(st.Unstaged) == 0 &&
		len(st.Conflicts) == 0 && len(st.Untracked) == 0
	return st
}

// ChangedFiles lists every path the working tree reports as changed,
// one entry per porcelain status line. Renames resolve to their
// destination.
func (c *Client) ChangedFiles(ctx context.Context) ([]string, error) {
	res, err := c.run(ctx, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, fmt.Errorf("git status: %s", strings.TrimSpace(res.Combined()))
	}
	var out []string
	for _, ln := range strings.Split(res.Stdout, "\n") {
		if strings.TrimSpace(ln) == "" || len(ln) < 4 {
			continue
		}
		out = append(out, entryPath(ln[3:]))
	}
	return out, nil
}

// parseBranchHeader splits "## main...origin/main [ahead 1]" into local
// and upstream names. Headers for unborn branches ("## No commits yet on
// main") and detached HEAD ("## HEAD (no branch)") carry no upstream.
func parseBranchHeader(ln string) (branch, upstream string) {
	header := strings.TrimSpace(strings.TrimPrefix(ln, "##"))
	if i := strings.Index(header, "..."); i >= 0 {
		branch = header[:i]
		upstream = header[i+3:]
		if j := strings.Index(upstream, " ["); j >= 0 {
			upstream = upstream[:j]
		}
		return branch, upstream
	}
	if strings.HasPrefix(header, "No commits yet on ") {
		return strings.TrimPrefix(header, "No commits yet on "), ""
	}
	if i := strings.Index(header, " "); i >= 0 {
		header = header[:i]
	}
	return header, ""
}

// entryPath resolves a porcelain path field, preferring the rename
// destination in "old -> new" entries.
func entryPath(field string) string {
	if i := strings.Index(field, " -> "); i >= 0 {
		return field[i+4:]
	}
	return field
}
