// Package server exposes the repository inspection operations as MCP tools
// over stdio or streamable HTTP.
package server

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/KonstantinKhan/git-mcp/internal/engine/config"
	"github.com/KonstantinKhan/git-mcp/internal/engine/git"
	"github.com/KonstantinKhan/git-mcp/internal/engine/llm"
	"github.com/KonstantinKhan/git-mcp/internal/platform/logger"
)

// Server wires the inspection engine to the MCP protocol. It holds no
// per-request state; concurrent tool calls share only immutable fields.
type Server struct {
	cfg        *config.Config
	runner     git.Runner
	summarizer llm.Client
	log        *slog.Logger
	mcp        *mcpserver.MCPServer
}

// New assembles the MCP server and registers its tools. The summarizer may
// be nil; the summary tool is then not offered.
func New(cfg *config.Config, runner git.Runner, summarizer llm.Client, log *slog.Logger, version string) *Server {
	s := &Server{
		cfg:        cfg,
		runner:     runner,
		summarizer: summarizer,
		log:        log,
	}

	m := mcpserver.NewMCPServer("git-mcp", version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
		mcpserver.WithToolHandlerMiddleware(s.logCalls),
	)
	s.registerTools(m)
	s.mcp = m
	return s
}

// logCalls injects the logger into the request context and records every
// tool call with its duration and outcome.
func (s *Server) logCalls(next mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = logger.WithContext(ctx, s.log)
		start := time.Now()

		res, err := next(ctx, req)

		outcome := "ok"
		if err != nil || (res != nil && res.IsError) {
			outcome = "error"
		}
		s.log.Info("tool call",
			"tool", req.Params.Name,
			"duration_ms", time.Since(start).Milliseconds(),
			"outcome", outcome,
		)
		return res, err
	}
}

// ServeStdio speaks the protocol over stdin/stdout until ctx ends or the
// stream closes. Stdout carries protocol frames only; logging stays on
// stderr.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcpserver.NewStdioServer(s.mcp)
	srv.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))

	s.log.Info("stdio transport ready")
	return srv.Listen(ctx, os.Stdin, os.Stdout)
}

// ServeHTTP speaks the protocol over streamable HTTP on addr until ctx is
// cancelled or the listener fails.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	srv := mcpserver.NewStreamableHTTPServer(s.mcp)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(addr)
	}()

	s.log.Info("http transport listening", "addr", addr)
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
