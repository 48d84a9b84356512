package function

import (
	"fmt"
	"time"

	"github.com/ignitionstack/wasmboard/internal/di"
	"github.com/ignitionstack/wasmboard/internal/ui"
	"github.com/ignitionstack/wasmboard/internal/ui/operations"
	"github.com/ignitionstack/wasmboard/pkg/api"
	"github.com/spf13/cobra"
)

func NewFunctionCallCommand(provide di.Provider) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "call <module-id|file.wasm> <function> [params...]",
		Short: "Call an exported function locally",
		Long: `Run an exported function of a wasm module on the local runtime and print the
values it returns.

The module is either the id of a session module or the path of a wasm file.
Parameters are numbers, converted to the types of the function signature:
integer parameters (i32, i64) must be whole numbers within range.

Flags go before the module argument; everything after it is positional,
so negative parameters need no quoting.

The call is aborted after the configured runtime.call_timeout.`,
		Example: `  # Call add on session module 1
  wasmboard function call 1 add 2 3

  # Negative parameters
  wasmboard function call 1 add -2 3

  # Call a function of a file directly
  wasmboard function call ./build/math.wasm scale 1.5

  # Print the result as a function result document
  wasmboard function call --json 1 add 2,3`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, function := args[0], args[1]
			params, err := parseParams(args[2:])
			if err != nil {
				return err
			}

			c, err := provide(cmd.Context())
			if err != nil {
				return err
			}

			return operations.WithSpinner(
				fmt.Sprintf("Calling %s...", function),
				func() (interface{}, error) {
					return c.Modules.Call(cmd.Context(), ref, function, params)
				},
				func(result interface{}, elapsed time.Duration) {
					res := result.(*api.FunctionResult)
					if asJSON {
						ui.PrintJSON(res) //nolint:errcheck
						return
					}
					ui.PrintSuccess(fmt.Sprintf("%s returned [%s]", function, formatValues(res.ReturnValue)))
					ui.PrintInfo("Elapsed", elapsed.Round(time.Microsecond).String())
				},
			)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().SetInterspersed(false)
	return cmd
}
