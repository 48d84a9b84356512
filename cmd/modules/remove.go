package modules

import (
	"fmt"
	"strconv"

	"github.com/ignitionstack/wasmboard/internal/di"
	"github.com/ignitionstack/wasmboard/internal/ui"
	"github.com/spf13/cobra"
)

func NewModulesRemoveCommand(provide di.Provider) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a module from the session",
		Example: `  wasmboard modules remove 3 --yes`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid module id %q", args[0])
			}

			confirmed, err := ui.Confirm(fmt.Sprintf("Remove module %d?", id), yes)
			if err != nil || !confirmed {
				return err
			}

			c, err := provide(cmd.Context())
			if err != nil {
				return err
			}
			if err := c.Modules.Remove(id); err != nil {
				return err
			}
			ui.PrintSuccess(fmt.Sprintf("Removed module %d", id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func NewModulesClearCommand(provide di.Provider) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "clear",
		Short:   "Remove every module from the session",
		Example: `  wasmboard modules clear --yes`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			confirmed, err := ui.Confirm("Remove all modules from the session?", yes)
			if err != nil || !confirmed {
				return err
			}

			c, err := provide(cmd.Context())
			if err != nil {
				return err
			}
			c.Modules.Clear()
			ui.PrintSuccess("Session module list cleared")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
