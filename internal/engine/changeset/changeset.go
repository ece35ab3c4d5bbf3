// Package changeset compares the current branch of a working copy against
// a target branch, the way a pull request would present it: commit log,
// per-file statistics, merge-base diff, authors, and a generated markdown
// description.
package changeset

import (
	"errors"
	"fmt"
)

var (
	// ErrDetachedHead is reported when HEAD does not point at a branch.
	ErrDetachedHead = errors.New("HEAD is detached; check out a branch before comparing")
	// ErrNoDefaultBranch is reported when neither main nor master exists
	// and no explicit target branch was supplied.
	ErrNoDefaultBranch = errors.New("no default branch found (looked for main and master); pass target_branch explicitly")
	// ErrSameBranch is reported when the current and target branch are the
	// same name.
	ErrSameBranch = errors.New("nothing to compare: current and target branch are the same")
)

// NoCommitsError reports that the source branch has no commits the target
// lacks. It is an expected end state, not a defect; callers present it as
// an informational message.
type NoCommitsError struct {
	Source string
	Target string
}

func (e *NoCommitsError) Error() string {
	return fmt.Sprintf("branch %s has no commits that %s lacks; it is already up to date", e.Source, e.Target)
}

// CommitRecord is one commit of the compared range. Hash is the full SHA.
type CommitRecord struct {
	Hash        string `json:"hash"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
}

// FileStat is the addition/deletion count of one changed file. Binary
// files count as zero in both columns.
type FileStat struct {
	Path      string `json:"path"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// Report is the assembled comparison of a source branch against a target.
// Commits are ordered newest first.
type Report struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	SourceBranch string         `json:"source_branch"`
	TargetBranch string         `json:"target_branch"`
	Author       string         `json:"author"`
	AllAuthors   []string       `json:"all_authors"`
	Commits      []CommitRecord `json:"commits"`
	ChangedFiles []FileStat     `json:"changed_files"`
	Diff         string         `json:"diff"`
}

// CompareOptions configures one comparison run.
type CompareOptions struct {
	// TargetBranch names the branch to compare against. Empty means
	// detect the repository default.
	TargetBranch string
	// ContextLines is the number of context lines around each diff hunk.
	ContextLines int
}
