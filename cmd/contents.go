package cmd

import (
	"fmt"

	repotree "github.com/TFMV/repotree/internal/walk"
	"github.com/spf13/cobra"
)

var contentsOutput string

var contentsCmd = &cobra.Command{
	Use:   "contents [path]",
	Short: "Dump the contents of every text file into one file",
	Long: `Write the relative path and contents of every qualifying file below a
directory into a single text file. Files over --max-file-size, binary files and
unreadable files are listed as skipped.

Examples:
  repotree contents ./project
  repotree contents --extensions=go,md --output=dump.txt ./project
  repotree contents --max-file-size=256KB ./project`,
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

		output := contentsOutput
		if output == "" {
			output = defaultOutput(".", root, "_contents.txt")
		}
		res := repotree.ExportContents(root, output, opts)
		if !res.Success {
			return res.Err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Contents saved to %s (%d files, %d skipped)\n",
			res.FilePath, res.Counts.Processed, res.Counts.Skipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contentsCmd)

	contentsCmd.Flags().StringVarP(&contentsOutput, "output", "o", "", "Output file (default <dir>_contents.txt)")
}
