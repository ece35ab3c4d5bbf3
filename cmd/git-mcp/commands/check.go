package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KonstantinKhan/git-mcp/internal/engine/changeset"
	"github.com/KonstantinKhan/git-mcp/internal/engine/git"
	"github.com/KonstantinKhan/git-mcp/internal/engine/status"
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Diagnose a repository without starting the server",
	Long: `Run the same validation the tools run, without serving: verify that git
is installed and the path is a git working copy, then report the current
branch and the detected target branch. Defaults to the working directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := ""
		if len(args) == 1 {
			repo = args[0]
		} else {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting working directory: %w", err)
			}
			repo = wd
		}
		return checkRepo(cmd.Context(), repo, git.NewExecRunner(""), cmd.OutOrStdout())
	},
}

// checkRepo performs the diagnosis with injected dependencies for testability.
func checkRepo(ctx context.Context, repo string, runner git.Runner, out io.Writer) error {
	insp := status.NewInspector(runner, repo)
	if err := insp.Validate(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "✅ %s is a git working copy\n", repo)

	branch, err := insp.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "   current branch: %s\n", branch)

	target, err := changeset.NewAnalyzer(runner, repo).DetectTargetBranch(ctx)
	switch {
	case errors.Is(err, changeset.ErrNoDefaultBranch):
		fmt.Fprintln(out, "   target branch: none detected (pass target_branch when comparing)")
	case err != nil:
		return err
	default:
		fmt.Fprintf(out, "   target branch: %s\n", target)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
