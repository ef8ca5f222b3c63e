// Command stsim is the Structured Text simulator CLI: tokenize, parse, run
// scan cycles, and render a program as a ladder diagram, all from the
// command line while the same core is embedded into the browser UI via
// cmd/stsim-wasm.
package main

import (
	"os"

	"github.com/cdilga/ladder-logic-editor-sub000/cmd/stsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
