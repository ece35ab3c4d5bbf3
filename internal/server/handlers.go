package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/KonstantinKhan/git-mcp/internal/engine/changeset"
	"github.com/KonstantinKhan/git-mcp/internal/engine/llm"
	"github.com/KonstantinKhan/git-mcp/internal/engine/status"
)

// resolveRepo picks the repository for a request: the explicit option,
// else the configured default, else the process working directory.
func (s *Server) resolveRepo(req mcp.CallToolRequest) (string, error) {
	if repo := req.GetString("repo_path", ""); repo != "" {
		return repo, nil
	}
	if s.cfg.DefaultRepo != "" {
		return s.cfg.DefaultRepo, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return wd, nil
}

func (s *Server) handleStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repo, err := s.resolveRepo(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	insp := status.NewInspector(s.runner, repo)
	if err := insp.Validate(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	snap, err := insp.Snapshot(ctx, status.SnapshotOptions{
		IncludeUntracked: req.GetBool("include_untracked", true),
		ContextLines:     req.GetInt("context_lines", 3),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(snap)
}

func (s *Server) handlePullRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, early, err := s.compare(ctx, req)
	if report == nil {
		return early, err
	}
	return jsonResult(report)
}

func (s *Server) handlePRSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, early, err := s.compare(ctx, req)
	if report == nil {
		return early, err
	}

	summary, err := s.summarizer.Summarize(ctx, llm.BuildPrompt(report))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("writing summary: %v", err)), nil
	}
	return mcp.NewToolResultText(summary), nil
}

// compare runs the shared validate-then-compare pipeline of the pull
// request tools. A nil report means the request is already answered by
// the other return values.
func (s *Server) compare(ctx context.Context, req mcp.CallToolRequest) (*changeset.Report, *mcp.CallToolResult, error) {
	repo, err := s.resolveRepo(req)
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error()), nil
	}
	if err := status.NewInspector(s.runner, repo).Validate(ctx); err != nil {
		return nil, mcp.NewToolResultError(err.Error()), nil
	}

	report, err := changeset.NewAnalyzer(s.runner, repo).Compare(ctx, changeset.CompareOptions{
		TargetBranch: req.GetString("target_branch", ""),
		ContextLines: req.GetInt("context_lines", 3),
	})
	if err != nil {
		// An empty range is an answer, not a failure.
		var noCommits *changeset.NoCommitsError
		if errors.As(err, &noCommits) {
			return nil, mcp.NewToolResultText(noCommits.Error()), nil
		}
		return nil, mcp.NewToolResultError(err.Error()), nil
	}
	return report, nil, nil
}

// jsonResult marshals v as indented JSON text content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(raw)), nil
}
