package modules

import (
	"fmt"
	"os"

	"github.com/ignitionstack/wasmboard/internal/di"
	"github.com/ignitionstack/wasmboard/internal/ui"
	"github.com/spf13/cobra"
)

func NewModulesLoadCommand(provide di.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "load <listing.json>",
		Short: "Replace the session modules with a server listing",
		Long: `Replace the module list with the content of a module listing document, as
returned by the server's /user/modules endpoint.

The document is validated first; an invalid document leaves the session
unchanged and reports the first violation.`,
		Example: `  wasmboard modules load listing.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read listing: %w", err)
			}

			c, err := provide(cmd.Context())
			if err != nil {
				return err
			}

			mods, err := c.Modules.Load(data)
			if err != nil {
				return err
			}
			ui.PrintSuccess(fmt.Sprintf("Loaded %d modules", len(mods)))
			return nil
		},
	}
}
