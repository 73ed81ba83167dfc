package git

import "context"

// Attempt captures one push invocation for diagnostics.
type Attempt struct {
	Args     []string `json:"args"`
	ExitCode int      `json:"exit_code"`
	Output   string   `json:"output"`
}

// PushResult reports the outcome of the push sequence. Ok reflects the
// last attempt that ran; earlier failures stay visible in Attempts.
type PushResult struct {
	Ok          bool      `json:"ok"`
	Remote      string    `json:"remote"`
	Branch      string    `json:"branch"`
	SetUpstream bool      `json:"set_upstream"`
	Attempts    []Attempt `json:"attempts"`
}

// Push sends the current branch to the remote. A failed plain push is
// followed by exactly one upstream-setting attempt, never more.
func (c *Client) Push(ctx context.Context, remote string) (PushResult, error) {
	branch, err := c.CurrentBranch(ctx)
	if err != nil {
		return PushResult{}, err
	}
	out := PushResult{Remote: remote, Branch: branch}

	res, err := c.run(ctx, "push", remote, branch)
	if err != nil {
		return out, err
	}
	out.Attempts = append(out.Attempts, Attempt{
		Args:     []string{"push", remote, branch},
		ExitCode: res.ExitCode,
		Output:   res.Combined(),
	})
	if res.ExitCode == 0 {
		out.Ok = true
		return out, nil
	}

	res, err = c.run(ctx, "push", "-u", remote, branch)
	if err != nil {
		return out, err
	}
	out.SetUpstream = true
	out.Attempts = append(out.Attempts, Attempt{
		Args:     []string{"push", "-u", remote, branch},
		ExitCode: res.ExitCode,
		Output:   res.Combined(),
	})
	out.Ok = res.ExitCode == 0
	return out, nil
}
