// Package git runs the git executable and captures its output.
//
// The default implementation shells out to the git binary; the Runner
// interface allows tests to script subprocess results without a repository.
package git

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrGitNotFound is returned when the git binary cannot be located at all,
// as opposed to git running and reporting a failure.
var ErrGitNotFound = errors.New("git executable not found")

// Result holds the captured output of one git invocation.
type Result struct {
	// Stdout is the captured standard output, unmodified.
	Stdout string
	// ExitCode is the process exit status. A non-zero code with no
	// diagnostic output is not an error; callers inspect it directly.
	ExitCode int
}

// Runner executes a git command in a working directory and captures its output.
type Runner interface {
	// Run blocks until the process terminates. Standard output and standard
	// error are captured as separate streams, never merged. A non-zero exit
	// paired with diagnostic text yields a *CommandError; a non-zero exit
	// with an empty diagnostic stream is reported through Result.ExitCode
	// with a nil error.
	Run(ctx context.Context, dir string, args ...string) (Result, error)
}

// CommandError reports a git command that exited non-zero and wrote
// diagnostics to its error stream. Stderr carries the text verbatim.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("git %s: exit status %d: %s", strings.Join(e.Args, " "), e.ExitCode, e.Stderr)
}
