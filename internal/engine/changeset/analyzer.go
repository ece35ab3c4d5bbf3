package changeset

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KonstantinKhan/git-mcp/internal/engine/git"
	"github.com/KonstantinKhan/git-mcp/internal/platform/logger"
)

// commitEnd separates commit records in the log output so that free-text
// bodies can span any number of lines.
const commitEnd = "COMMIT_END"

// Analyzer compares branches of a single working copy through a git.Runner.
type Analyzer struct {
	runner git.Runner
	repo   string
}

// NewAnalyzer returns an Analyzer bound to the repository at repo.
func NewAnalyzer(r git.Runner, repo string) *Analyzer {
	return &Analyzer{runner: r, repo: repo}
}

// DetectTargetBranch picks the repository default branch: main when it
// exists, else master, else ErrNoDefaultBranch.
func (a *Analyzer) DetectTargetBranch(ctx context.Context) (string, error) {
	res, err := a.runner.Run(ctx, a.repo, "branch", "--list", "main", "master", "--format=%(refname:short)")
	if err != nil {
		return "", fmt.Errorf("detecting target branch: %w", err)
	}

	exists := map[string]bool{}
	for _, line := range strings.Split(res.Stdout, "\n") {
		exists[strings.TrimSpace(line)] = true
	}
	switch {
	case exists["main"]:
		return "main", nil
	case exists["master"]:
		return "master", nil
	}
	return "", ErrNoDefaultBranch
}

// CurrentBranch resolves the branch HEAD points at. A detached HEAD is an
// error here: there is no source branch to compare.
func (a *Analyzer) CurrentBranch(ctx context.Context) (string, error) {
	res, err := a.runner.Run(ctx, a.repo, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolving current branch: %w", err)
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("resolving current branch: git exited %d", res.ExitCode)
	}

	branch := strings.TrimSpace(res.Stdout)
	if branch == "HEAD" {
		return "", ErrDetachedHead
	}
	return branch, nil
}

// ValidateDistinct rejects a comparison of a branch against itself.
func ValidateDistinct(current, target string) error {
	if current == target {
		return fmt.Errorf("%w: %s", ErrSameBranch, current)
	}
	return nil
}

// CommitLog lists the commits on HEAD that target lacks, newest first. An
// empty range is an empty slice, not an error.
func (a *Analyzer) CommitLog(ctx context.Context, target string) ([]CommitRecord, error) {
	res, err := a.runner.Run(ctx, a.repo, "log", target+"..HEAD", "--format=%H%n%an%n%ae%n%s%n%b%n"+commitEnd)
	if err != nil {
		return nil, fmt.Errorf("listing commits %s..HEAD: %w", target, err)
	}
	return parseCommitLog(res.Stdout), nil
}

// parseCommitLog splits log output on the record sentinel. Each block
// carries hash, author name, author email, and subject on fixed lines;
// everything after them is the body. Blocks with fewer than the four
// fixed lines are dropped as malformed.
func parseCommitLog(out string) []CommitRecord {
	commits := []CommitRecord{}
	for _, block := range strings.Split(out, commitEnd) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		if len(lines) < 4 {
			continue
		}
		commits = append(commits, CommitRecord{
			Hash:        lines[0],
			AuthorName:  lines[1],
			AuthorEmail: lines[2],
			Subject:     lines[3],
			Body:        strings.TrimSpace(strings.Join(lines[4:], "\n")),
		})
	}
	return commits
}

// FileStatistics counts additions and deletions per file for the
// merge-base range target...HEAD. The three-dot range compares against
// the common ancestor, so commits that landed on target after divergence
// do not show up as changes.
func (a *Analyzer) FileStatistics(ctx context.Context, target string) ([]FileStat, error) {
	res, err := a.runner.Run(ctx, a.repo, "diff", "--numstat", target+"...HEAD")
	if err != nil {
		return nil, fmt.Errorf("collecting file statistics against %s: %w", target, err)
	}

	stats := []FileStat{}
	for _, line := range strings.Split(res.Stdout, "\n") {
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) < 3 {
			continue
		}
		stats = append(stats, FileStat{
			Path:      fields[2],
			Additions: parseNum(fields[0]),
			Deletions: parseNum(fields[1]),
		})
	}
	return stats, nil
}

// parseNum reads a numstat count. The binary-file marker "-" and anything
// else non-numeric count as zero.
func parseNum(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Diff returns the unified diff for the merge-base range target...HEAD
// with contextLines lines of context. A diff that cannot be produced is
// an empty string, matching the status diff policy.
func (a *Analyzer) Diff(ctx context.Context, target string, contextLines int) (string, error) {
	res, err := a.runner.Run(ctx, a.repo, "diff", fmt.Sprintf("-U%d", contextLines), target+"...HEAD")
	if err != nil {
		var cmdErr *git.CommandError
		if errors.As(err, &cmdErr) {
			return "", nil
		}
		return "", fmt.Errorf("diffing against %s: %w", target, err)
	}
	return res.Stdout, nil
}

// Compare runs the full comparison pipeline and assembles the Report. The
// stages run in data-dependency order and fail fast; a zero-commit range
// short-circuits with *NoCommitsError before statistics or diff run.
func (a *Analyzer) Compare(ctx context.Context, opts CompareOptions) (*Report, error) {
	source, err := a.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}

	target := opts.TargetBranch
	if target == "" {
		if target, err = a.DetectTargetBranch(ctx); err != nil {
			return nil, err
		}
	}

	if err := ValidateDistinct(source, target); err != nil {
		return nil, err
	}

	commits, err := a.CommitLog(ctx, target)
	if err != nil {
		return nil, err
	}
	if len(commits) == 0 {
		return nil, &NoCommitsError{Source: source, Target: target}
	}

	files, err := a.FileStatistics(ctx, target)
	if err != nil {
		return nil, err
	}
	diff, err := a.Diff(ctx, target, opts.ContextLines)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("compared branches",
		"source", source,
		"target", target,
		"commits", len(commits),
		"files", len(files),
	)

	return &Report{
		Title:        source,
		Description:  BuildDescription(commits),
		SourceBranch: source,
		TargetBranch: target,
		Author:       commits[0].AuthorName,
		AllAuthors:   ExtractAuthors(commits),
		Commits:      commits,
		ChangedFiles: files,
		Diff:         diff,
	}, nil
}
