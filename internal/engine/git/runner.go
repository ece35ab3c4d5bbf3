package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/KonstantinKhan/git-mcp/internal/platform/logger"
)

// ExecRunner implements Runner by spawning the git binary via os/exec.
type ExecRunner struct {
	// Bin is the git executable to run. Empty means "git" from PATH.
	Bin string
}

// NewExecRunner creates an ExecRunner for the given git binary.
func NewExecRunner(bin string) *ExecRunner {
	if strings.TrimSpace(bin) == "" {
		bin = "git"
	}
	return &ExecRunner{Bin: bin}
}

// Run executes one git command in dir and blocks until it terminates.
// Each invocation is attempted exactly once.
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) (Result, error) {
	logger.FromContext(ctx).Debug("running git", "args", strings.Join(args, " "), "dir", dir)

	cmd := exec.CommandContext(ctx, r.Bin, args...) // #nosec G204 -- args are assembled by this package's callers, not raw user input
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return Result{Stdout: stdout.String()}, nil
	}

	if ctx.Err() != nil {
		// The process was killed by context cancellation; don't let the
		// resulting exit status masquerade as a benign "no result".
		return Result{}, fmt.Errorf("git %s: %w", strings.Join(args, " "), ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if diag := strings.TrimSpace(stderr.String()); diag != "" {
			return Result{}, &CommandError{Args: args, ExitCode: exitErr.ExitCode(), Stderr: diag}
		}
		// Non-zero exit without diagnostics is a "no result" outcome, not a
		// failure: e.g. listing a branch that does not exist. The caller
		// inspects ExitCode and Stdout directly.
		return Result{Stdout: stdout.String(), ExitCode: exitErr.ExitCode()}, nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return Result{}, fmt.Errorf("%w (looked for %q)", ErrGitNotFound, r.Bin)
	}
	return Result{}, fmt.Errorf("starting git %s: %w", strings.Join(args, " "), err)
}
