package modules

import (
	"fmt"
	"strings"

	"github.com/ignitionstack/wasmboard/internal/di"
	"github.com/ignitionstack/wasmboard/internal/ui"
	"github.com/ignitionstack/wasmboard/pkg/api"
	"github.com/spf13/cobra"
)

func NewModuleInspectCommand(provide di.Provider) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <file.wasm>",
		Short: "Describe the exported functions of a wasm file",
		Long: `Compile a wasm file locally and print its module hash and the signature of
every exported function, in export order. Nothing is stored.`,
		Example: `  wasmboard module inspect ./build/math.wasm
  wasmboard module inspect ./build/math.wasm --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := provide(cmd.Context())
			if err != nil {
				return err
			}

			module, err := c.Modules.Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return ui.PrintJSON(module)
			}

			ui.PrintInfo("Hash", module.ModuleHash)
			table := ui.NewTable([]string{"FUNCTION", "PARAMS", "RESULTS"})
			for _, fn := range module.Functions {
				sig, err := api.ParseSignature(fn.Signature)
				if err != nil {
					return err
				}
				table.AddRow(fn.Function, typeList(sig.Params), typeList(sig.Results))
			}
			fmt.Fprintln(ui.Out, ui.RenderTable(table))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the module as JSON")
	return cmd
}

func typeList(types []api.ValueType) string {
	if len(types) == 0 {
		return "-"
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
