package changeset

import (
	"fmt"
	"sort"
	"strings"
)

// noCommitsDescription is the description text for an empty commit range.
const noCommitsDescription = "No commits found between the compared branches."

// BuildDescription renders a commit list as pull-request markdown: a
// bulleted summary section followed by one subsection per commit with its
// body. The input arrives newest first; both sections read oldest first so
// the description tells the story in the order it happened.
func BuildDescription(commits []CommitRecord) string {
	if len(commits) == 0 {
		return noCommitsDescription
	}

	var b strings.Builder
	b.WriteString("## Summary\n\n")
	for i := len(commits) - 1; i >= 0; i-- {
		c := commits[i]
		fmt.Fprintf(&b, "- [%s] %s (%s)\n", shortHash(c.Hash), c.Subject, c.AuthorName)
	}

	b.WriteString("\n## Commits\n")
	for i := len(commits) - 1; i >= 0; i-- {
		c := commits[i]
		fmt.Fprintf(&b, "\n### [%s] %s\n", shortHash(c.Hash), c.Subject)
		if c.Body != "" {
			b.WriteString("\n")
			b.WriteString(c.Body)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ExtractAuthors returns the distinct author names of the commit list,
// lexicographically sorted.
func ExtractAuthors(commits []CommitRecord) []string {
	seen := make(map[string]bool, len(commits))
	authors := []string{}
	for _, c := range commits {
		if seen[c.AuthorName] {
			continue
		}
		seen[c.AuthorName] = true
		authors = append(authors, c.AuthorName)
	}
	sort.Strings(authors)
	return authors
}

func shortHash(hash string) string {
	if len(hash) <= 7 {
		return hash
	}
	return hash[:7]
}
