package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "stsim",
	Short: "IEC 61131-3 Structured Text simulator",
	Long: `stsim parses, runs, and visualizes IEC 61131-3 Structured Text programs.

Subcommands:
  lex        tokenize ST source
  parse      parse ST source and print the AST or diagnostics
  run        run a fixed number of scan cycles and print the resulting store
  transform  render a program as a ladder-diagram node/edge graph

The same parser, evaluator, executor, and transformer are compiled to
WebAssembly for the browser editor (cmd/stsim-wasm); this CLI is a thin
wrapper around that same core, useful for scripting and debugging outside
the browser.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
