package modules

import (
	"fmt"
	"strings"

	"github.com/ignitionstack/wasmboard/internal/di"
	"github.com/ignitionstack/wasmboard/internal/ui"
	"github.com/ignitionstack/wasmboard/pkg/api"
	"github.com/spf13/cobra"
)

func NewModulesListCommand(provide di.Provider) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the modules of the session",
		Long: `Display every module held by the session with its id, hash and the
signatures of its exported functions.

The --json flag prints the list in the same shape as the server's module
listing, so it can be fed back to "modules load".`,
		Example: `  # List modules
  wasmboard modules list

  # Export the list as a server listing document
  wasmboard modules list --json > listing.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := provide(cmd.Context())
			if err != nil {
				return err
			}

			mods := c.Modules.List()
			if asJSON {
				return ui.PrintJSON(api.ModulesResponse{Modules: mods})
			}
			if len(mods) == 0 {
				ui.PrintEmptyState("No modules in this session. Add one with: wasmboard modules add <file.wasm>")
				return nil
			}
			fmt.Fprintln(ui.Out, ui.RenderTable(modulesTable(mods)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the list as a module listing document")
	return cmd
}

func modulesTable(mods []api.Module) *ui.Table {
	table := ui.NewTable([]string{"ID", "HASH", "FUNCTIONS"})
	for _, m := range mods {
		table.AddRow(fmt.Sprintf("%d", m.ID), shortHash(m.ModuleHash), formatFunctions(m.Functions))
	}
	return table
}

func formatFunctions(fns []api.Function) string {
	if len(fns) == 0 {
		return "<none>"
	}
	parts := make([]string, len(fns))
	for i, fn := range fns {
		parts[i] = fmt.Sprintf("%s(%s)", fn.Function, fn.Signature)
	}
	return strings.Join(parts, " ")
}

func shortHash(hash string) string {
	return ui.TruncateWithEllipsis(hash, 15)
}
