package server

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const repoPathDescription = "Path to the repository. Defaults to the configured default repository, else the server working directory."

// registerTools declares the tool surface. The summary tool is offered
// only when a summarizer was configured, so clients never see a tool that
// cannot run.
func (s *Server) registerTools(m *mcpserver.MCPServer) {
	statusTool := mcp.NewTool("git_status",
		mcp.WithDescription("Report the working copy status of a local git repository: current branch, staged, unstaged, and untracked files, and the diff against the last commit."),
		mcp.WithString("repo_path",
			mcp.Description(repoPathDescription),
		),
		mcp.WithBoolean("include_untracked",
			mcp.Description("Include untracked files in the result."),
			mcp.DefaultBool(true),
		),
		mcp.WithNumber("context_lines",
			mcp.Description("Number of context lines around each diff hunk."),
			mcp.DefaultNumber(3),
		),
	)
	m.AddTool(statusTool, s.handleStatus)

	prTool := mcp.NewTool("git_pull_request",
		mcp.WithDescription("Compare the current branch against a target branch the way a pull request would: commit log, per-file statistics, merge-base diff, author list, and a generated markdown description."),
		mcp.WithString("repo_path",
			mcp.Description(repoPathDescription),
		),
		mcp.WithString("target_branch",
			mcp.Description("Branch to compare against. Auto-detects main or master when omitted."),
		),
		mcp.WithNumber("context_lines",
			mcp.Description("Number of context lines around each diff hunk."),
			mcp.DefaultNumber(3),
		),
	)
	m.AddTool(prTool, s.handlePullRequest)

	if s.summarizer == nil {
		return
	}
	summaryTool := mcp.NewTool("git_pr_summary",
		mcp.WithDescription("Run the same comparison as git_pull_request, then have the configured model write a reviewer-facing markdown summary of the change set."),
		mcp.WithString("repo_path",
			mcp.Description(repoPathDescription),
		),
		mcp.WithString("target_branch",
			mcp.Description("Branch to compare against. Auto-detects main or master when omitted."),
		),
		mcp.WithNumber("context_lines",
			mcp.Description("Number of context lines around each diff hunk."),
			mcp.DefaultNumber(3),
		),
	)
	m.AddTool(summaryTool, s.handlePRSummary)
}
