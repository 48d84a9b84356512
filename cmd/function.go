package cmd

import (
	"github.com/ignitionstack/wasmboard/cmd/function"
	"github.com/ignitionstack/wasmboard/pkg/api"
	"github.com/spf13/cobra"
)

var functionCmd = &cobra.Command{
	Use:   "function",
	Short: "Run and list module functions",
	Long: `Commands for working with the exported functions of WebAssembly modules.

Functions are identified by the module that exports them, either a session
module id or a wasm file, and their export name. Signatures use the
"params->results" notation, for example "i32,i32->i32".`,
	Example: `  # List the functions of all session modules
  wasmboard function list

  # Call a function
  wasmboard function call 1 add 2 3`,
	Aliases: []string{"fn"},
}

func apiBaseURL() string {
	if cfg == nil || cfg.API.BaseURL == "" {
		return api.DefaultBaseURL
	}
	return cfg.API.BaseURL
}

func init() {
	functionCmd.AddCommand(function.NewFunctionCallCommand(provideContainer))
	functionCmd.AddCommand(function.NewFunctionListCommand(provideContainer, apiBaseURL))
	rootCmd.AddCommand(functionCmd)
}
