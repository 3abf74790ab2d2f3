package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/TFMV/repotree/internal/clone"
	repotree "github.com/TFMV/repotree/internal/walk"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	runOutputDir string
	runStats     bool
)

var runCmd = &cobra.Command{
	Use:   "run <url|path>",
	Short: "Clone a repository if needed, then print its tree and write all reports",
	Long: `Run the whole pipeline: clone the repository when given a git URL, print the
tree to the console, then write the contents dump and the summary into the
output directory.

Examples:
  repotree run https://github.com/org/project.git
  repotree run --output-dir=reports --extensions=go ./project`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := walkOptions()
		if err != nil {
			return err
		}

		root := args[0]
		if clone.IsGitURL(root) {
			root, err = clone.Repository(cmd.Context(), cloneOptions(args[0]))
			if err != nil {
				return err
			}
		}
		abs, err := repotree.ValidateRoot(root)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		tree := repotree.NewTreeRenderer(opts, nil).Render(abs)
		if !tree.Success {
			logger.Warn("tree rendered with errors", zap.Error(tree.Err))
		}

		outputDir := runOutputDir
		if outputDir == "" {
			outputDir = filepath.Dir(abs)
		}

		contents := repotree.ExportContents(abs, defaultOutput(outputDir, abs, "_contents.txt"), opts)
		if !contents.Success {
			return contents.Err
		}
		fmt.Fprintf(out, "\nContents saved to %s (%d files, %d skipped)\n",
			contents.FilePath, contents.Counts.Processed, contents.Counts.Skipped)

		summary := repotree.NewSummaryComposer(opts, runStats).Compose(abs, defaultOutput(outputDir, abs, "_summary.txt"))
		if !summary.Success {
			return summary.Err
		}
		fmt.Fprintf(out, "Summary saved to %s\n", summary.FilePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runOutputDir, "output-dir", "", "Directory for report files (default parent of the walked directory)")
	runCmd.Flags().BoolVar(&runStats, "stats", true, "Include statistics in the summary")
	addCloneFlags(runCmd)
}
