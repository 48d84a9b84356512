package cmd

import "github.com/ignitionstack/wasmboard/cmd/session"

func init() {
	rootCmd.AddCommand(session.NewSessionCommand(provideContainer))
}
