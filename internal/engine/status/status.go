// Package status inspects a git working copy: current branch, staged and
// unstaged changes, untracked files, and the diff against the last commit.
package status

import "errors"

// ErrNotRepository is reported when the path exists but is not inside a
// git working copy.
var ErrNotRepository = errors.New("not a git repository")

// ChangeKind classifies one slot of a short-status code.
type ChangeKind string

const (
	ChangeModified ChangeKind = "modified"
	ChangeAdded    ChangeKind = "added"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeRenamed  ChangeKind = "renamed"
	ChangeCopied   ChangeKind = "copied"
	ChangeUpdated  ChangeKind = "updated"
	ChangeUnknown  ChangeKind = "unknown"
)

// kindOf maps a single status-code character to its ChangeKind.
func kindOf(code byte) ChangeKind {
	switch code {
	case 'M':
		return ChangeModified
	case 'A':
		return ChangeAdded
	case 'D':
		return ChangeDeleted
	case 'R':
		return ChangeRenamed
	case 'C':
		return ChangeCopied
	case 'U':
		return ChangeUpdated
	default:
		return ChangeUnknown
	}
}

// FileChange is one classified entry of the working-copy status.
type FileChange struct {
	Path   string     `json:"path"`
	Status ChangeKind `json:"status"`
}

// Snapshot is the full status of a working copy at one point in time.
// Slices are always non-nil so the serialized form carries [] rather
// than null.
type Snapshot struct {
	Branch    string       `json:"branch"`
	Staged    []FileChange `json:"staged"`
	Unstaged  []FileChange `json:"unstaged"`
	Untracked []string     `json:"untracked"`
	Diff      string       `json:"diff"`
}

// SnapshotOptions configures one Snapshot request.
type SnapshotOptions struct {
	// IncludeUntracked controls whether untracked paths are collected.
	IncludeUntracked bool
	// ContextLines is the number of context lines around each diff hunk.
	ContextLines int
}
