package cmd

import (
	"fmt"

	repotree "github.com/TFMV/repotree/internal/walk"
	"github.com/spf13/cobra"
)

var (
	treeShowSize bool
	treeOutput   string
)

var treeCmd = &cobra.Command{
	Use:   "tree [path]",
	Short: "Print the directory tree",
	Long: `Print an indented tree of a directory, directories first.

Examples:
  repotree tree ./project
  repotree tree --max-depth=2 --show-size ./project
  repotree tree --exclude="*.log" --output=tree.txt ./project`,
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
		opts.ShowSize = treeShowSize

		if treeOutput != "" {
			res := repotree.ExportTree(root, treeOutput, opts)
			if !res.Success {
				return res.Err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tree saved to %s\n", res.FilePath)
			return nil
		}

		if _, err := repotree.ValidateRoot(root); err != nil {
			return err
		}
		res := repotree.NewTreeRenderer(opts, nil).Render(root)
		if !res.Success {
			logger.Warn("tree rendered with errors")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().BoolVarP(&treeShowSize, "show-size", "s", false, "Show file sizes")
	treeCmd.Flags().StringVarP(&treeOutput, "output", "o", "", "Write the tree to this file instead of stdout")
}
