package commands

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KonstantinKhan/git-mcp/internal/engine/config"
	"github.com/KonstantinKhan/git-mcp/internal/platform/logger"
)

// InitFS abstracts file system operations needed by the init command.
type InitFS interface {
	Stat(name string) (fs.FileInfo, error)
	IsNotExist(err error) bool
	MkdirAll(path string, perm fs.FileMode) error
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

// starterConfig is the commented template written by init.
const starterConfig = `# git-mcp configuration.
# All keys are optional. Environment variables override file values:
# GIT_MCP_REPO, GIT_MCP_ADDR, GIT_MCP_GEMINI_KEY, GIT_MCP_MODEL.

# Repository used when a request omits repo_path. Empty means the server
# working directory.
default_repo: ""

# Listen address for the http transport.
addr: "localhost:8939"

# Gemini API key. Setting it enables the git_pr_summary tool.
gemini_api_key: ""
model: "gemini-3-pro"

output:
  verbose: false
  json: false
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Write a commented starter config to ~/.config/git-mcp/config.yaml.
An existing config is never overwritten.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := logger.FromContext(cmd.Context())
		log.Info("init started")

		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		if err := initConfig(path, &osInitFS{}, cmd.OutOrStdout()); err != nil {
			return err
		}

		log.Info("init completed")
		return nil
	},
}

// initConfig performs the init workflow with injected dependencies for testability.
func initConfig(path string, fsys InitFS, out io.Writer) error {
	if _, err := fsys.Stat(path); err == nil {
		fmt.Fprintf(out, "⚡ Config already exists at %s. Leaving it untouched.\n", path)
		return nil
	} else if !fsys.IsNotExist(err) {
		return fmt.Errorf("checking config path: %w", err)
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	// The file may come to hold an API key, hence the tight mode.
	if err := fsys.WriteFile(path, []byte(starterConfig), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(out, "✅ Wrote starter config to %s\n", path)
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
