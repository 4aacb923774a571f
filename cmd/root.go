// Package cmd contains all CLI commands for whoopctl
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"whoopctl/internal/config"
	"whoopctl/internal/output"
	"whoopctl/internal/whoop"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  *slog.Logger
	version = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "whoopctl",
	Short: "WHOOP daily stats from the command line",
	Long: `whoopctl talks to the WHOOP mobile backend with your account
credentials and turns the app's display payloads into a daily summary.

Example usage:
  whoopctl stats                     # Today's sleep, strain, and healthspan summary
  whoopctl stats --date 2026-08-20   # Summary for a specific day
  whoopctl stats --json              # Machine-readable output
  whoopctl auth                      # Verify credentials and token lifetime`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .whoopctl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	var err error

	// Setup logger
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// Load configuration
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Update logger based on config
	if cfg.Logging.Level == "debug" || verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	logger.Debug("configuration loaded",
		"base_url", cfg.API.BaseURL,
		"log_level", cfg.Logging.Level,
	)

	return nil
}

// newPrinter builds a printer honoring the configured color setting,
// bound to the command's output streams.
func newPrinter(cmd *cobra.Command) *output.Printer {
	colors := false
	if cfg != nil {
		colors = cfg.Output.Colors
	}
	return output.NewPrinterTo(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.PrinterOptions{
		ColorMode:    output.ColorAuto,
		ConfigColors: colors,
	})
}

// newWhoopClient validates credentials and constructs the API client.
func newWhoopClient() (*whoop.Client, error) {
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, &output.CLIError{
			Summary:    "missing WHOOP credentials",
			Detail:     err.Error(),
			Suggestion: "Export WHOOP_EMAIL and WHOOP_PASSWORD, or set whoop.email and whoop.password in .whoopctl.yaml",
			ExitCode:   output.ExitConfigError,
		}
	}

	creds := whoop.Credentials{
		Email:    cfg.Whoop.Email,
		Password: cfg.Whoop.Password,
	}
	return whoop.NewClient(creds, cfg.Whoop.ClientID, cfg.API.BaseURL, logger), nil
}
