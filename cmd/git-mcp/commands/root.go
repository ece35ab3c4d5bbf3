// Package commands implements the CLI commands for git-mcp.
package commands

import (
	"github.com/KonstantinKhan/git-mcp/internal/platform/logger"
	"github.com/spf13/cobra"
)

// Global flag values accessible to all commands.
var (
	flagVerbose bool
	flagLogJSON bool
)

// rootCmd is the base command for the git-mcp CLI.
var rootCmd = &cobra.Command{
	Use:   "git-mcp",
	Short: "Read-only git inspection over the Model Context Protocol",
	Long: `git-mcp is an MCP (Model Context Protocol) server that lets AI agents
inspect a local git working copy without mutating it: working copy status
with a diff against the last commit, and a pull-request-style comparison of
the current branch against a target branch.

All operations are read-only. The server shells out to the git binary and
parses its output; nothing is cached between calls. Logging goes to stderr
so the stdio transport's protocol stream stays clean.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		l := logger.New(flagVerbose, flagLogJSON)
		ctx := logger.WithContext(cmd.Context(), l)
		cmd.SetContext(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Write log lines as JSON")
}

// Execute runs the root command. Returns an error if the command fails.
func Execute() error {
	return rootCmd.Execute()
}
