// Package cli implements the showcase command line.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hirepath/showcase/internal/config"
	"github.com/hirepath/showcase/internal/logging"
)

// Version is set at build time.
var Version = "dev"

var (
	configFile     string
	logLevel       string
	logFormat      string
	logFile        string
	jsonOutput     bool
	jsonlOutput    bool
	nonInteractive bool
	noProgress     bool
	noColor        bool

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Scripted recruiting demos for the terminal",
	Long: `showcase replays the recruiting product demos: resume screening,
an AI interview round and the rotating hiring-workflow carousel.

Run "showcase ui" for the interactive view, or "showcase play" to print
demo snapshots headless.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Close()
	},
}

func init() {
	rootCmd.Version = Version

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default: ./showcase.yaml or ~/.config/showcase/config.yaml)")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "", "log format: console or json")
	flags.StringVar(&logFile, "log-file", "", "write logs to this file")
	flags.BoolVar(&jsonOutput, "json", false, "output JSON")
	flags.BoolVar(&jsonlOutput, "jsonl", false, "output JSON lines")
	flags.BoolVar(&nonInteractive, "non-interactive", false, "never prompt or open the TUI")
	flags.BoolVar(&noProgress, "no-progress", false, "disable progress output")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// GetConfig returns the loaded configuration, nil before a command runs.
func GetConfig() *config.Config {
	return appConfig
}

func initConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return &PreflightError{
			Message:  fmt.Sprintf("Could not load configuration: %v", err),
			Hint:     "Check the file passed with --config and the SHOWCASE_* environment variables",
			NextStep: "showcase --help",
		}
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = logFormat
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = logFile
	}
	if jsonOutput || jsonlOutput {
		// keep stdout machine readable
		cfg.Logging.Format = "json"
	}

	if err := logging.Init(logConfig(cfg, false)); err != nil {
		return err
	}
	appConfig = cfg

	logger := logging.Component("cli")
	logger.Debug().
		Str("command", cmd.CommandPath()).
		Str("config", cfg.Source).
		Msg("configuration loaded")
	return nil
}

func logConfig(cfg *config.Config, discard bool) logging.Config {
	return logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		File:    cfg.Logging.File,
		Discard: discard,
	}
}
