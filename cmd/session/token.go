package session

import (
	"fmt"
	"strings"

	"github.com/ignitionstack/wasmboard/internal/di"
	"github.com/ignitionstack/wasmboard/internal/ui"
	"github.com/spf13/cobra"
)

func NewTokenCommand(provide di.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored login token",
	}
	cmd.AddCommand(newTokenSetCommand(provide), newTokenShowCommand(provide))
	return cmd
}

func newTokenSetCommand(provide di.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "set <jwt>",
		Short: "Store the token returned by a login",
		Long: `Store the JWT returned by the server's /auth/login endpoint in the session.
Use "-" to read it from stdin.`,
		Example: `  wasmboard session token set eyJhbGciOi...
  jq -r .jwt login.json | wasmboard session token set -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := args[0]
			if token == "-" {
				if _, err := fmt.Fscan(cmd.InOrStdin(), &token); err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}
			}

			c, err := provide(cmd.Context())
			if err != nil {
				return err
			}
			if err := c.Session.SaveToken(strings.TrimSpace(token)); err != nil {
				return err
			}
			ui.PrintSuccess("Token stored")
			return nil
		},
	}
}

func newTokenShowCommand(provide di.Provider) *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored token",
		Example: `  wasmboard session token show
  wasmboard session token show --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := provide(cmd.Context())
			if err != nil {
				return err
			}
			token, err := c.Session.Token()
			if err != nil {
				return err
			}

			if copyToClipboard {
				if err := ui.CopyToClipboard(token); err != nil {
					return err
				}
				ui.PrintSuccess("Token copied to clipboard")
				return nil
			}
			fmt.Fprintln(ui.Out, token)
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the token to the clipboard instead of printing it")
	return cmd
}
