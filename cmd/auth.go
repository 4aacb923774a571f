package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"whoopctl/internal/output"
	"whoopctl/internal/whoop"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Log in and report token status",
	Long: `Authenticate against the WHOOP backend with the configured
credentials and report how long the issued token stays valid.

Examples:
  whoopctl auth
  WHOOP_EMAIL=me@example.com WHOOP_PASSWORD=secret whoopctl auth`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)

	authCmd.Flags().Duration("timeout", 30*time.Second, "login timeout")
}

func runAuth(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")

	client, err := newWhoopClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	token, err := client.Login(ctx)
	if err != nil {
		var authErr *whoop.AuthError
		if errors.As(err, &authErr) {
			return &output.CLIError{
				Summary:    "login rejected",
				Detail:     authErr.Error(),
				Suggestion: "Check WHOOP_EMAIL and WHOOP_PASSWORD",
				ExitCode:   output.ExitAuthError,
			}
		}
		return fmt.Errorf("logging in: %w", err)
	}

	p := newPrinter(cmd)
	p.Success("Logged in as %s", cfg.Whoop.Email)
	p.Print("  token valid for: %s", token.TimeUntilExpiry().Round(time.Second))
	p.Print("  expires at:      %s", token.ExpiresAt.Local().Format(time.RFC3339))
	return nil
}
