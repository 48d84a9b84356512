package session

import (
	"github.com/ignitionstack/wasmboard/internal/di"
	"github.com/ignitionstack/wasmboard/internal/ui"
	"github.com/spf13/cobra"
)

// NewSessionCommand groups the commands that manage persisted session state.
func NewSessionCommand(provide di.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the persisted session",
		Long: `The session keeps the module list, the login token and the stored wasm
binaries in the directory configured by session.dir.`,
	}
	cmd.AddCommand(NewTokenCommand(provide), newClearCommand(provide))
	return cmd
}

func newClearCommand(provide di.Provider) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget the module list and the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			confirmed, err := ui.Confirm("Forget the module list and the login token?", yes)
			if err != nil || !confirmed {
				return err
			}

			c, err := provide(cmd.Context())
			if err != nil {
				return err
			}
			c.Modules.Clear()
			if err := c.Session.Clear(); err != nil {
				return err
			}
			ui.PrintSuccess("Session cleared")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
