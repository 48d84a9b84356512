package modules

import (
	"fmt"

	"github.com/ignitionstack/wasmboard/internal/di"
	"github.com/ignitionstack/wasmboard/internal/ui"
	"github.com/spf13/cobra"
)

func NewModulesAddCommand(provide di.Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file.wasm>...",
		Short: "Add wasm files to the session",
		Long: `Inspect each wasm file, store its binary in the session directory and append
it to the module list with the next free id.

Adding a binary that is already in the list keeps the existing entry.`,
		Example: `  wasmboard modules add ./build/math.wasm ./build/echo.wasm`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := provide(cmd.Context())
			if err != nil {
				return err
			}

			for _, path := range args {
				module, err := c.Modules.Add(cmd.Context(), path)
				if err != nil {
					return err
				}
				ui.PrintSuccess(fmt.Sprintf("Module %d %s %s", module.ID, ui.ArrowRightSymbol, path))
			}
			return nil
		},
	}
}
