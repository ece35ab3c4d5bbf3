package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KonstantinKhan/git-mcp/internal/engine/config"
	"github.com/KonstantinKhan/git-mcp/internal/engine/git"
	"github.com/KonstantinKhan/git-mcp/internal/engine/llm"
	"github.com/KonstantinKhan/git-mcp/internal/platform/logger"
	"github.com/KonstantinKhan/git-mcp/internal/server"
)

var (
	flagTransport string
	flagAddr      string
	flagRepo      string
	flagConfig    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Serve the git inspection tools over the Model Context Protocol.

The stdio transport speaks the protocol on stdin/stdout and is what MCP
clients spawn. The http transport listens on the configured address and
serves the streamable HTTP protocol instead.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServer(ctx)
	},
}

// runServer wires real infrastructure and starts the chosen transport.
// This is a composition root: it instantiates production dependencies.
func runServer(ctx context.Context) error {
	var (
		cfg *config.Config
		err error
	)
	if flagConfig != "" {
		cfg, err = config.LoadFrom(ctx, flagConfig)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagRepo != "" {
		cfg.DefaultRepo = flagRepo
	}
	if flagAddr != "" {
		cfg.Addr = flagAddr
	}

	// Config output preferences apply unless the flags already asked.
	log := logger.FromContext(ctx)
	if (cfg.OutputVerbose && !flagVerbose) || (cfg.OutputJSON && !flagLogJSON) {
		log = logger.New(flagVerbose || cfg.OutputVerbose, flagLogJSON || cfg.OutputJSON)
	}

	var summarizer llm.Client
	if !cfg.GeminiAPIKey.IsEmpty() {
		summarizer = llm.NewGeminiClient(string(cfg.GeminiAPIKey), cfg.Model, llm.DefaultClientFactory)
		log.Info("PR summary tool enabled", "model", cfg.Model)
	}

	srv := server.New(cfg, git.NewExecRunner(""), summarizer, log, version)

	switch flagTransport {
	case "stdio":
		return srv.ServeStdio(ctx)
	case "http":
		if cfg.Addr == "" {
			return errors.New("http transport needs a listen address; set addr in the config or pass --addr")
		}
		return srv.ServeHTTP(ctx, cfg.Addr)
	default:
		return fmt.Errorf("unknown transport %q (valid: stdio, http)", flagTransport)
	}
}

func init() {
	serveCmd.Flags().StringVar(&flagTransport, "transport", "stdio", "Transport to serve on: stdio or http")
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address for the http transport (overrides config)")
	serveCmd.Flags().StringVar(&flagRepo, "repo", "", "Default repository for requests that omit repo_path (overrides config)")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to the config file (default ~/.config/git-mcp/config.yaml)")
	rootCmd.AddCommand(serveCmd)
}
