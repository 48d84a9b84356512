package main

import "github.com/ignitionstack/wasmboard/cmd"

func main() {
	cmd.Execute()
}
