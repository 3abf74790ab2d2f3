package cmd

import (
	"fmt"

	repotree "github.com/TFMV/repotree/internal/walk"
	"github.com/spf13/cobra"
)

var (
	summaryOutput string
	summaryStats  bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary [path]",
	Short: "Write a report with the tree and statistics of a directory",
	Long: `Write a summary file holding the directory tree and, unless disabled,
file counts, sizes, a per-extension breakdown and the largest files.

Examples:
  repotree summary ./project
  repotree summary --stats=false --output=summary.txt ./project`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := pathArg(args)
		if err != nil {
			return err
		}
		opts, err := walkOptions()
		if err != nil {
			return err
		}

		output := summaryOutput
		if output == "" {
			output = defaultOutput(".", root, "_summary.txt")
		}
		res := repotree.NewSummaryComposer(opts, summaryStats).Compose(root, output)
		if !res.Success {
			return res.Err
		}
		if res.Err != nil {
			logger.Warn("summary written with errors")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Summary saved to %s\n", res.FilePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringVarP(&summaryOutput, "output", "o", "", "Output file (default <dir>_summary.txt)")
	summaryCmd.Flags().BoolVar(&summaryStats, "stats", true, "Include statistics in the summary")
}
