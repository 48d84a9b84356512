package modules

import (
	"fmt"

	"github.com/ignitionstack/wasmboard/internal/di"
	"github.com/ignitionstack/wasmboard/internal/ui"
	"github.com/ignitionstack/wasmboard/pkg/manifest"
	"github.com/spf13/cobra"
)

func NewModulesSyncCommand(provide di.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "sync [manifest]",
		Short: "Replace the session modules with a workspace manifest",
		Long: fmt.Sprintf(`Read a workspace manifest, inspect every wasm file it lists and replace the
session module list with the result.

Without an argument the first of %v found in the current directory is used.
Entries without an id are numbered after the highest explicit id.`, manifest.DefaultFiles),
		Example: `  # wasmboard.yml
  modules:
    - path: build/math.wasm
      id: 1
    - path: build/echo.wasm

  wasmboard modules sync`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath := ""
			if len(args) == 1 {
				manifestPath = args[0]
			}

			c, err := provide(cmd.Context())
			if err != nil {
				return err
			}

			mods, err := c.Modules.Sync(cmd.Context(), manifestPath)
			if err != nil {
				return err
			}
			ui.PrintSuccess(fmt.Sprintf("Synced %d modules", len(mods)))
			fmt.Fprintln(ui.Out, ui.RenderTable(modulesTable(mods)))
			return nil
		},
	}
}
