package llm

import (
	"fmt"
	"strings"

	"github.com/KonstantinKhan/git-mcp/internal/engine/changeset"
)

// maxDiffBytes caps the diff portion of a prompt so a large change set
// cannot blow the model's context window.
const maxDiffBytes = 32 * 1024

const truncationMarker = "\n[diff truncated]"

const promptTemplate = `You are writing a pull request summary for a human reviewer. Using the branches, commits, and diff below, write concise markdown: a one-paragraph overview, then a bullet list of notable changes. Respond with markdown only, no preamble.

Source branch: %s
Target branch: %s

Commits (newest first):
%s
Changed files:
%s
Diff:
%s`

// BuildPrompt renders a comparison report as a summary prompt. The diff is
// truncated at maxDiffBytes with a marker so the model knows it saw a
// partial view.
func BuildPrompt(report *changeset.Report) string {
	var commits strings.Builder
	for _, c := range report.Commits {
		fmt.Fprintf(&commits, "- %s (%s)\n", c.Subject, c.AuthorName)
		if c.Body != "" {
			fmt.Fprintf(&commits, "  %s\n", strings.ReplaceAll(c.Body, "\n", "\n  "))
		}
	}

	var files strings.Builder
	for _, f := range report.ChangedFiles {
		fmt.Fprintf(&files, "- %s (+%d -%d)\n", f.Path, f.Additions, f.Deletions)
	}

	diff := report.Diff
	if len(diff) > maxDiffBytes {
		diff = diff[:maxDiffBytes] + truncationMarker
	}

	return fmt.Sprintf(promptTemplate, report.SourceBranch, report.TargetBranch, commits.String(), files.String(), diff)
}
