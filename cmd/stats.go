package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	repotree "github.com/TFMV/repotree/internal/walk"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	statsFormat string
	statsOutput string
)

var statsCmd = &cobra.Command{
	Use:   "stats [path]",
	Short: "Print file counts, sizes and the largest files of a directory",
	Long: `Walk a directory and report the number of files and directories, the
total size, a breakdown by extension and the largest files.

Examples:
  repotree stats ./project
  repotree stats --format=json ./project
  repotree stats --format=yaml --output=stats.yaml ./project`,
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

		stats, err := repotree.NewStatsAggregator(opts).Aggregate(root)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if statsOutput != "" {
			f, err := os.Create(statsOutput)
			if err != nil {
				return fmt.Errorf("create %s: %w", statsOutput, err)
			}
			defer f.Close()
			w = f
		}
		if err := writeStats(w, stats, statsFormat); err != nil {
			return err
		}
		if statsOutput != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Statistics saved to %s\n", statsOutput)
		}
		return nil
	},
}

// writeStats renders stats as text, json or yaml.
func writeStats(w io.Writer, stats *repotree.Stats, format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		return repotree.WriteStats(w, stats)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats.Report(repotree.LargestFilesDisplay))
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(stats.Report(repotree.LargestFilesDisplay)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (text, json, yaml)", format)
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", "text", "Output format (text, json, yaml)")
	statsCmd.Flags().StringVarP(&statsOutput, "output", "o", "", "File to write the statistics to")
}
