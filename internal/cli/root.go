package cli

import (
	"fmt"

	"github.com/roboco-io/mdgrid/internal/config"
	"github.com/roboco-io/mdgrid/internal/logger"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	// cfg is loaded once per invocation by the root PersistentPreRunE.
	cfg        = config.DefaultConfig()
	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "mdgrid [file]",
	Short: "Edit Markdown tables as a grid",
	Long: `mdgrid edits Markdown pipe tables as a grid of cells.

Run without a subcommand to open the grid editor on a file (same as
"mdgrid edit"). In edit mode cells can be changed and rows or columns
selected; in drag mode header cells are dragged onto each other to swap
columns. The rest of the file is preserved byte for byte.

Environment variables:
  MDGRID_MODE=drag      start the editor in drag mode
  MDGRID_LOG=true       write a log file under ~/.mdgrid/logs
  MDGRID_LOG_DIR=path   log directory
  MDGRID_CONFIG=path    configuration file

Examples:
  mdgrid notes.md
  mdgrid fmt -w notes.md
  mdgrid apply notes.md --op drag:0:2`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runEdit,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mdgrid %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ~/.mdgrid/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output on stderr")
	addEditFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string reported by "mdgrid version".
func SetVersion(v string) {
	version = v
}

// setup loads configuration and starts logging. The config subcommands
// still run on a broken file so it can be repaired.
func setup(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return err
	}

	loaded, err := loader.Load()
	switch {
	case err == nil:
		cfg = loaded
	case isConfigCommand(cmd):
		cfg = config.DefaultConfig()
		cfg.ApplyEnv()
	default:
		return err
	}

	if err := logger.Init(logger.Options{
		Enabled: cfg.Log.Enabled,
		LogDir:  cfg.Log.Dir,
		Level:   logger.ParseLevel(cfg.Log.Level),
	}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger.Debug("command started", "command", cmd.CommandPath(), "args", args, "version", version)
	return nil
}

func newLoader() (*config.Loader, error) {
	if configFile != "" {
		return config.NewLoaderWithPath(configFile), nil
	}
	return config.NewLoader()
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}

func verbosef(cmd *cobra.Command, format string, args ...any) {
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
	}
}
