// Package render formats command results for terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/covgate/covgate/internal/gate"
	"github.com/covgate/covgate/internal/git"
	"github.com/covgate/covgate/internal/jacoco"
)

// Mark returns a colored pass/fail glyph.
func Mark(ok bool) string {
	if ok {
		return color.GreenString("✓")
	}
	return color.RedString("✗")
}

// Coverage formats an aggregate summary as a single line.
func Coverage(s jacoco.Summary) string {
	return fmt.Sprintf("%.2f%% (%d/%d lines)", s.Percent, s.Covered, s.Total())
}

// GitStatus formats a working-tree summary.
func GitStatus(st git.Status) string {
	var sb strings.Builder
	branch := st.Branch
	if st.Upstream != "" {
		branch += "..." + st.Upstream
	}
	fmt.Fprintf(&sb, "On branch %s\n", color.CyanString(branch))
	if st.Clean {
		fmt.Fprintf(&sb, "%s working tree clean\n", Mark(true))
		return sb.String()
	}
	writeSection(&sb, "Staged", st.Staged)
	writeSection(&sb, "Unstaged", st.Unstaged)
	writeSection(&sb, "Untracked", st.Untracked)
	if len(st.Conflicts) > 0 {
		fmt.Fprintf(&sb, "%s Conflicts:\n", color.RedString("!"))
		for _, p := range st.Conflicts {
			fmt.Fprintf(&sb, "  %s\n", color.RedString(p))
		}
	}
	return sb.String()
}

func writeSection(sb *strings.Builder, title string, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", title)
	for _, p := range paths {
		fmt.Fprintf(sb, "  %s\n", p)
	}
}

// Outcome formats a gate result.
func Outcome(o gate.Outcome) string {
	var sb strings.Builder
	switch o.State {
	case gate.StateCommitted:
		fmt.Fprintf(&sb, "%s committed: %s\n", Mark(true), o.Message)
	case gate.StateThresholdFailed:
		fmt.Fprintf(&sb, "%s %s\n", Mark(false), o.Message)
	case gate.StateNoStagedChanges:
		fmt.Fprintf(&sb, "%s %s\n", Mark(false), o.Message)
	}
	if o.Coverage != nil {
		fmt.Fprintf(&sb, "  line coverage: %s\n", Coverage(*o.Coverage))
	}
	return sb.String()
}

// Push formats a push negotiation result, keeping every attempt's
// diagnostics visible.
func Push(res git.PushResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s push %s %s", Mark(res.Ok), res.Remote, res.Branch)
	if res.SetUpstream {
		sb.WriteString(" (upstream set)")
	}
	sb.WriteString("\n")
	for i, a := range res.Attempts {
		out := strings.TrimSpace(a.Output)
		if out == "" {
			continue
		}
		fmt.Fprintf(&sb, "  attempt %d (exit %d):\n", i+1, a.ExitCode)
		for _, ln := range strings.Split(out, "\n") {
			fmt.Fprintf(&sb, "    %s\n", ln)
		}
	}
	return sb.String()
}

// Gaps formats a coverage gap report.
func Gaps(gr jacoco.GapReport) string {
	if len(gr.Uncovered) == 0 {
		return fmt.Sprintf("%s no uncovered classes in %s\n", Mark(true), gr.File)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %d uncovered classes in %s\n", Mark(false), len(gr.Uncovered), gr.File)
	for _, rec := range gr.Recommendations {
		fmt.Fprintf(&sb, "  %s\n", rec)
	}
	return sb.String()
}
