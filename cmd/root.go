package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	Logger     *slog.Logger

	// fs backs every file the commands read or write
	fs afero.Fs = afero.NewOsFs()

	// cfg holds defaults from the config file, loaded before each command runs
	cfg = DefaultConfig()

	rootCmd = &cobra.Command{
		Use:   "biscuit",
		Short: "Convert, validate, filter and manage browser cookie exports",
		Long: `Biscuit reads browser cookie exports in JSON, CSV, Netscape cookies.txt
and HAR form. It validates every record, filters by domain, name, flags and
expiration, and writes the result back out as JSON, CSV, XML or Netscape.
A terminal UI lets you search and prune a cookie file interactively.`,
		Example: `  biscuit export cookies.json --to netscape -o cookies.txt
  biscuit import cookies.csv
  biscuit list cookies.json --search session --show-expired=false
  biscuit manage cookies.json`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger()
			return loadConfig()
		},
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $HOME/.biscuit/config.toml)")

	// will be reconfigured in PersistentPreRunE based on flags
	setupLogger()
}

// setupLogger configures the global slog logger based on the verbose flag
func setupLogger() {
	var opts *slog.HandlerOptions

	if verbose {
		opts = &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}
	} else {
		opts = &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	if verbose {
		Logger.Debug("verbose logging enabled",
			"level", slog.LevelDebug.String(),
			"pid", os.Getpid())
	}
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	if Logger == nil {
		setupLogger()
	}
	return Logger
}

func loadConfig() error {
	loaded, err := LoadConfig(fs, configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// ValidateCookieFile checks that the path exists and is not a directory.
func ValidateCookieFile(path string) error {
	if path == "" {
		return fmt.Errorf("cookie file path is required")
	}

	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("cookie file does not exist: %s", path)
		}
		return fmt.Errorf("error accessing cookie file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("provided path is a directory, not a file: %s", path)
	}

	return nil
}
