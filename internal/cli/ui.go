package cli

import (
	"github.com/spf13/cobra"

	"github.com/hirepath/showcase/internal/config"
	"github.com/hirepath/showcase/internal/identity"
	"github.com/hirepath/showcase/internal/logging"
	"github.com/hirepath/showcase/internal/tui"
)

var uiAuthMode string

func init() {
	uiCmd.Flags().StringVar(&uiAuthMode, "auth-mode", string(identity.ModeSignIn), "identity widget mode (sign-in|sign-up)")
	rootCmd.AddCommand(uiCmd)
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the showcase TUI",
	Long:  "Launch the interactive terminal view with all demos running side by side.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func runTUI(cmd *cobra.Command) error {
	mode, err := parseAuthMode(uiAuthMode)
	if err != nil {
		return err
	}

	if IsNonInteractive() {
		return &PreflightError{
			Message:  "TUI requires an interactive terminal",
			Hint:     "Run without --non-interactive and with a TTY, or use headless playback",
			NextStep: "showcase play all --cycles 1",
		}
	}

	cfg := GetConfig()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	// The alternate screen owns the terminal; logs go to the file or nowhere.
	if err := logging.Init(logConfig(cfg, true)); err != nil {
		return err
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	return tui.Run(cmd.Context(), tui.Options{
		Catalog:  catalog,
		Theme:    cfg.TUI.Theme,
		Speed:    cfg.Demo.Speed,
		Radius:   cfg.Carousel.Radius,
		Interval: cfg.Carousel.Interval,
		AuthMode: mode,
	})
}

func parseAuthMode(s string) (identity.Mode, error) {
	mode, err := identity.ParseMode(s)
	if err != nil {
		return "", &PreflightError{
			Message:  err.Error(),
			Hint:     "Use --auth-mode sign-in or --auth-mode sign-up",
			NextStep: "showcase ui --auth-mode sign-in",
		}
	}
	return mode, nil
}
