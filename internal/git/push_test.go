package git

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/covgate/covgate/internal/exec"
)

func TestPush_PlainSuccess(t *testing.T) {
	runner := &scriptedRunner{results: []exec.Result{
		{Stdout: "main\n"},
		{Stdout: "Everything up-to-date"},
	}}
	c := NewClient(runner, "/repo")
	res, err := c.Push(context.Background(), "origin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Ok {
		t.Error("expected ok result")
	}
	if res.SetUpstream {
		t.Error("plain success must not trigger the upstream variant")
	}
	if len(res.Attempts) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(res.Attempts))
	}
	if len(runner.calls) != 2 {
		t.Fatalf("expected rev-parse + push only, got %v", runner.calls)
	}
	want := []string{"git", "push", "origin", "main"}
	if !reflect.DeepEqual(runner.calls[1], want) {
		t.Errorf("push call = %v, want %v", runner.calls[1], want)
	}
}

func TestPush_UpstreamFallback(t *testing.T) {
	runner := &scriptedRunner{results: []exec.Result{
		{Stdout: "feature/gate\n"},
		{ExitCode: 128, Stderr: "fatal: The current branch has no upstream branch"},
		{Stdout: "Branch 'feature/gate' set up to track 'origin/feature/gate'."},
	}}
	c := NewClient(runner, "/repo")
	res, err := c.Push(context.Background(), "origin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Ok || !res.SetUpstream {
		t.Errorf("expected ok upstream push, got %+v", res)
	}
	if len(res.Attempts) != 2 {
		t.Fatalf("expected both attempts recorded, got %d", len(res.Attempts))
	}
	// The first failure stays visible in the diagnostics.
	if res.Attempts[0].ExitCode != 128 {
		t.Errorf("first attempt exit = %d, want 128", res.Attempts[0].ExitCode)
	}
	want := []string{"git", "push", "-u", "origin", "feature/gate"}
	if !reflect.DeepEqual(runner.calls[2], want) {
		t.Errorf("fallback call = %v, want %v", runner.calls[2], want)
	}
}

func TestPush_BothAttemptsFail(t *testing.T) {
	runner := &scriptedRunner{results: []exec.Result{
		{Stdout: "main\n"},
		{ExitCode: 1, Stderr: "rejected"},
		{ExitCode: 1, Stderr: "rejected again"},
	}}
	c := NewClient(runner, "/repo")
	res, err := c.Push(context.Background(), "origin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Ok {
		t.Error("expected failed result")
	}
	if len(res.Attempts) != 2 {
		t.Fatalf("expected exactly 2 attempts, got %d", len(res.Attempts))
	}
	// Two attempts is the whole policy; no third push may happen.
	if len(runner.calls) != 3 {
		t.Errorf("expected 3 git calls total, got %v", runner.calls)
	}
}

func TestPush_DetachedHead(t *testing.T) {
	runner := &scriptedRunner{results: []exec.Result{{Stdout: "HEAD\n"}}}
	c := NewClient(runner, "/repo")
	_, err := c.Push(context.Background(), "origin")
	if !errors.Is(err, ErrDetachedHead) {
		t.Fatalf("expected ErrDetachedHead, got %v", err)
	}
	if len(runner.calls) != 1 {
		t.Errorf("no push may be attempted without a branch, got %v", runner.calls)
	}
}
