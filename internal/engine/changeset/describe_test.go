package changeset

import (
	"strings"
	"testing"
)

func TestBuildDescription_Empty(t *testing.T) {
	got := BuildDescription(nil)
	if got != noCommitsDescription {
		t.Fatalf("expected the fixed sentence, got %q", got)
	}
	if got != BuildDescription([]CommitRecord{}) {
		t.Fatal("nil and empty input must render the same description")
	}
}

func TestBuildDescription_SectionsOldestFirst(t *testing.T) {
	// Input order is newest first, as the commit log delivers it.
	commits := []CommitRecord{
		{Hash: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", AuthorName: "Bob", Subject: "second change", Body: "More detail."},
		{Hash: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", AuthorName: "Alice", Subject: "first change"},
	}

	got := BuildDescription(commits)

	summaryAt := strings.Index(got, "## Summary")
	commitsAt := strings.Index(got, "## Commits")
	if summaryAt < 0 || commitsAt < 0 || commitsAt < summaryAt {
		t.Fatalf("expected a summary section followed by a commits section:\n%s", got)
	}

	if !strings.Contains(got, "- [aaaaaaa] first change (Alice)") {
		t.Fatalf("missing or malformed summary bullet:\n%s", got)
	}
	if !strings.Contains(got, "### [bbbbbbb] second change") {
		t.Fatalf("missing or malformed commit heading:\n%s", got)
	}
	if !strings.Contains(got, "More detail.") {
		t.Fatalf("missing commit body:\n%s", got)
	}

	// Oldest first in both sections even though the input is newest first.
	summary := got[summaryAt:commitsAt]
	if strings.Index(summary, "first change") > strings.Index(summary, "second change") {
		t.Fatalf("summary bullets are not oldest first:\n%s", summary)
	}
	details := got[commitsAt:]
	if strings.Index(details, "first change") > strings.Index(details, "second change") {
		t.Fatalf("commit details are not oldest first:\n%s", details)
	}
}

func TestBuildDescription_BlankBodyOmitted(t *testing.T) {
	commits := []CommitRecord{
		{Hash: "cccccccccccccccccccccccccccccccccccccccc", AuthorName: "Carol", Subject: "tidy up"},
	}

	got := BuildDescription(commits)
	if !strings.HasSuffix(got, "### [ccccccc] tidy up\n") {
		t.Fatalf("expected the heading with no body block:\n%q", got)
	}
}

func TestBuildDescription_ShortHash(t *testing.T) {
	commits := []CommitRecord{
		{Hash: "abc", AuthorName: "Dora", Subject: "tiny"},
	}

	got := BuildDescription(commits)
	if !strings.Contains(got, "- [abc] tiny (Dora)") {
		t.Fatalf("short hashes must pass through unsliced:\n%s", got)
	}
}

func TestExtractAuthors_SortedAndDeduplicated(t *testing.T) {
	commits := []CommitRecord{
		{AuthorName: "B"},
		{AuthorName: "A"},
		{AuthorName: "B"},
	}

	got := ExtractAuthors(commits)
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Fatalf("expected [A B], got %v", got)
	}
}

func TestExtractAuthors_Empty(t *testing.T) {
	got := ExtractAuthors(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected an empty non-nil slice, got %v", got)
	}
}
