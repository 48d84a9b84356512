package function

import (
	"fmt"
	"strconv"

	"github.com/ignitionstack/wasmboard/internal/di"
	"github.com/ignitionstack/wasmboard/internal/ui"
	"github.com/ignitionstack/wasmboard/pkg/api"
	wberrors "github.com/ignitionstack/wasmboard/pkg/errors"
	"github.com/spf13/cobra"
)

func NewFunctionListCommand(provide di.Provider, baseURL func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [module-id]",
		Aliases: []string{"ls"},
		Short:   "List the functions of the session modules",
		Long: `Display every function of the session modules together with its signature
and the hosting API endpoint that calls it.

If a module id is provided, only that module's functions are listed.`,
		Example: `  wasmboard function list
  wasmboard function list 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := provide(cmd.Context())
			if err != nil {
				return err
			}

			mods := c.Modules.List()
			if len(args) == 1 {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid module id %q", args[0])
				}
				mods, err = selectModule(mods, id)
				if err != nil {
					return err
				}
			}

			table := ui.NewTable([]string{"MODULE", "FUNCTION", "SIGNATURE", "ENDPOINT"})
			for _, m := range mods {
				for _, fn := range m.Functions {
					table.AddRow(
						strconv.FormatInt(m.ID, 10),
						fn.Function,
						fn.Signature,
						baseURL()+api.CallFunctionPath(m.ID, fn.Function),
					)
				}
			}

			if len(table.Rows) == 0 {
				ui.PrintEmptyState("No functions found")
				return nil
			}
			fmt.Fprintln(ui.Out, ui.RenderTable(table))
			return nil
		},
	}
	return cmd
}

func selectModule(mods []api.Module, id int64) ([]api.Module, error) {
	for _, m := range mods {
		if m.ID == id {
			return []api.Module{m}, nil
		}
	}
	return nil, wberrors.WithDetails(wberrors.ErrModuleNotFound, fmt.Sprintf("module %d", id))
}
