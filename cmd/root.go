package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	repotree "github.com/TFMV/repotree/internal/walk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	version = "0.1.0"

	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "repotree",
	Short: "Clone a repository and report on its files",
	Long: `repotree clones a git repository (or takes a local directory) and walks it
to produce a tree view, a flattened dump of file contents, and a statistics summary.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := repotree.ParseLogLevel(viper.GetString("log-level"))
		if err != nil {
			return err
		}
		logger = repotree.NewLogger(level)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// An interrupt cancels the context handed to the commands.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default is $HOME/.repotree.yaml)")
	flags.IntP("max-depth", "d", -1, "Maximum directory depth (-1 for unlimited)")
	flags.StringSliceP("exclude", "x", []string{".git", "node_modules"}, "Names or '*' patterns to exclude")
	flags.Bool("show-hidden", false, "Include hidden files and directories")
	flags.StringSliceP("extensions", "e", nil, "File extensions to include in content exports (default all)")
	flags.String("max-file-size", "1MB", "Files larger than this are not dumped (e.g. 500KB, 2MB)")
	flags.String("separator", repotree.DefaultSeparator, "Separator line written after each dumped file")
	flags.Bool("gitignore", false, "Also hide entries matched by the root .gitignore")
	flags.String("log-level", "warn", "Log level (debug|info|warn|error)")

	for _, name := range []string{
		"max-depth", "exclude", "show-hidden", "extensions",
		"max-file-size", "separator", "gitignore", "log-level",
	} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			// Search config in home directory with name ".repotree" (without extension).
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".repotree")
	}

	viper.SetEnvPrefix("repotree")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", cfgFile, err)
		os.Exit(1)
	}
}

// walkOptions builds the walk configuration from flags, config and environment.
func walkOptions() (repotree.WalkOptions, error) {
	opts := repotree.DefaultWalkOptions()
	opts.MaxDepth = viper.GetInt("max-depth")
	opts.Exclude = viper.GetStringSlice("exclude")
	opts.ShowHidden = viper.GetBool("show-hidden")
	opts.UseGitignore = viper.GetBool("gitignore")
	opts.Logger = logger

	if exts := viper.GetStringSlice("extensions"); len(exts) > 0 {
		opts.Extensions = exts
	}
	if sep := viper.GetString("separator"); sep != "" {
		opts.Separator = sep
	}

	maxSize, err := repotree.ParseSize(viper.GetString("max-file-size"))
	if err != nil {
		return opts, fmt.Errorf("invalid max-file-size: %w", err)
	}
	opts.MaxFileSize = maxSize
	return opts, nil
}

// pathArg returns the directory argument, defaulting to the working directory.
func pathArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return os.Getwd()
}

// defaultOutput names a report file after the walked directory.
func defaultOutput(dir, root, suffix string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	return filepath.Join(dir, filepath.Base(abs)+suffix)
}
