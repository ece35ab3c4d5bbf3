package status

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/KonstantinKhan/git-mcp/internal/engine/git"
	"github.com/KonstantinKhan/git-mcp/internal/platform/logger"
)

// Inspector reads the state of a single working copy through a git.Runner.
type Inspector struct {
	runner git.Runner
	repo   string
}

// NewInspector returns an Inspector bound to the repository at repo.
func NewInspector(r git.Runner, repo string) *Inspector {
	return &Inspector{runner: r, repo: repo}
}

// Validate checks that the configured path exists, is a directory, and is
// inside a git working copy. It is the gate every other operation expects
// to have passed.
func (i *Inspector) Validate(ctx context.Context) error {
	info, err := os.Stat(i.repo)
	if err != nil {
		return fmt.Errorf("repository path does not exist: %s", i.repo)
	}
	if !info.IsDir() {
		return fmt.Errorf("repository path is not a directory: %s", i.repo)
	}

	res, err := i.runner.Run(ctx, i.repo, "rev-parse", "--git-dir")
	if err != nil {
		if errors.Is(err, git.ErrGitNotFound) {
			return fmt.Errorf("git is not installed or not on PATH: %w", err)
		}
		return fmt.Errorf("%w: %s", ErrNotRepository, i.repo)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("%w: %s", ErrNotRepository, i.repo)
	}
	return nil
}

// CurrentBranch resolves the symbolic name of HEAD. A detached HEAD
// resolves to the literal string "HEAD".
func (i *Inspector) CurrentBranch(ctx context.Context) (string, error) {
	res, err := i.runner.Run(ctx, i.repo, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolving current branch: %w", err)
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("resolving current branch: git exited %d", res.ExitCode)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// FileChanges lists the staged, unstaged, and untracked paths of the
// working copy. Each status line is classified into exactly one of the
// three lists: untracked when the code is "??", staged when the index
// column is set, unstaged otherwise. Untracked paths are dropped when
// includeUntracked is false.
func (i *Inspector) FileChanges(ctx context.Context, includeUntracked bool) (staged, unstaged []FileChange, untracked []string, err error) {
	res, err := i.runner.Run(ctx, i.repo, "status", "--porcelain")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("listing file changes: %w", err)
	}

	staged = []FileChange{}
	unstaged = []FileChange{}
	untracked = []string{}
	for _, line := range strings.Split(res.Stdout, "\n") {
		if len(line) < 3 {
			continue
		}
		code, path := line[:2], line[3:]
		switch {
		case code == "??":
			if includeUntracked {
				untracked = append(untracked, path)
			}
		case code[0] != ' ':
			staged = append(staged, FileChange{Path: path, Status: kindOf(code[0])})
		case code[1] != ' ':
			unstaged = append(unstaged, FileChange{Path: path, Status: kindOf(code[1])})
		}
	}

	logger.FromContext(ctx).Debug("listed file changes",
		"staged", len(staged),
		"unstaged", len(unstaged),
		"untracked", len(untracked),
	)
	return staged, unstaged, untracked, nil
}

// Diff returns the unified diff between the working copy and HEAD with
// contextLines lines of context. A diff that cannot be produced, for
// example in a repository with no commits yet, is reported as an empty
// string rather than an error.
func (i *Inspector) Diff(ctx context.Context, contextLines int) (string, error) {
	res, err := i.runner.Run(ctx, i.repo, "diff", fmt.Sprintf("-U%d", contextLines), "HEAD")
	if err != nil {
		var cmdErr *git.CommandError
		if errors.As(err, &cmdErr) {
			return "", nil
		}
		return "", fmt.Errorf("diffing working copy: %w", err)
	}
	return res.Stdout, nil
}

// Snapshot runs the full status pipeline and assembles the result. Any
// failing step aborts the whole snapshot; partial results are never
// returned.
func (i *Inspector) Snapshot(ctx context.Context, opts SnapshotOptions) (*Snapshot, error) {
	branch, err := i.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	staged, unstaged, untracked, err := i.FileChanges(ctx, opts.IncludeUntracked)
	if err != nil {
		return nil, err
	}
	diff, err := i.Diff(ctx, opts.ContextLines)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("captured status snapshot", "branch", branch)
	return &Snapshot{
		Branch:    branch,
		Staged:    staged,
		Unstaged:  unstaged,
		Untracked: untracked,
		Diff:      diff,
	}, nil
}
