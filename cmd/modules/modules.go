package modules

import (
	"github.com/ignitionstack/wasmboard/internal/di"
	"github.com/spf13/cobra"
)

// NewModulesCommand groups the commands that edit the session module list.
func NewModulesCommand(provide di.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "Manage the modules of the session",
		Long: `Commands for the module list of the current session.

The list is kept in the session directory and survives between invocations.
Every change is written back immediately.`,
		Example: `  wasmboard modules add ./build/math.wasm
  wasmboard modules list
  wasmboard modules remove 1 --yes`,
	}

	cmd.AddCommand(
		NewModulesListCommand(provide),
		NewModulesLoadCommand(provide),
		NewModulesAddCommand(provide),
		NewModulesRemoveCommand(provide),
		NewModulesClearCommand(provide),
		NewModulesSyncCommand(provide),
	)
	return cmd
}

// NewModuleCommand groups commands that work on a single wasm file.
func NewModuleCommand(provide di.Provider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "module",
		Short: "Work with a single wasm file",
	}
	cmd.AddCommand(NewModuleInspectCommand(provide))
	return cmd
}
