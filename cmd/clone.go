package cmd

import (
	"fmt"
	"os"

	"github.com/TFMV/repotree/internal/clone"
	"github.com/spf13/cobra"
)

var (
	cloneDir      string
	cloneBranch   string
	cloneDepth    int
	cloneProgress bool
)

var cloneCmd = &cobra.Command{
	Use:   "clone <url>",
	Short: "Clone a git repository",
	Long: `Clone a git repository into a local directory, replacing the directory if
it already exists.

Examples:
  repotree clone https://github.com/org/project.git
  repotree clone --dir=/tmp/project --branch=main --depth=1 git@github.com:org/project.git`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cloneOptions(args[0])
		dir, err := clone.Repository(cmd.Context(), opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cloned %s into %s\n", args[0], dir)
		return nil
	},
}

func cloneOptions(url string) clone.Options {
	opts := clone.Options{
		URL:    url,
		Dir:    cloneDir,
		Branch: cloneBranch,
		Depth:  cloneDepth,
		Logger: logger,
	}
	if cloneProgress {
		opts.Progress = os.Stderr
	}
	return opts
}

// addCloneFlags registers the clone flags on c.
func addCloneFlags(c *cobra.Command) {
	c.Flags().StringVar(&cloneDir, "dir", "", "Clone target directory (default derived from the URL)")
	c.Flags().StringVar(&cloneBranch, "branch", "", "Branch to check out (default branch when empty)")
	c.Flags().IntVar(&cloneDepth, "depth", 0, "Shallow clone depth (0 for full history)")
	c.Flags().BoolVar(&cloneProgress, "progress", false, "Show remote progress on stderr")
}

func init() {
	rootCmd.AddCommand(cloneCmd)
	addCloneFlags(cloneCmd)
}
