package cmd

import "github.com/ignitionstack/wasmboard/cmd/modules"

func init() {
	rootCmd.AddCommand(modules.NewModulesCommand(provideContainer))
	rootCmd.AddCommand(modules.NewModuleCommand(provideContainer))
}
