package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cdilga/ladder-logic-editor-sub000/internal/errors"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/parser"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/scan"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/types"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var (
	evalExpr   string
	runScans   int
	scanTimeMs int64
	setInputs  []string
	runFormat  string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a fixed number of scan cycles and print the resulting store",
	Long: `Run an ST program through a fixed number of scan cycles and print the
resulting variable store.

Examples:
  stsim run program.st --scans 5
  stsim run program.st --scans 10 --scan-time 50 --set Start=TRUE
  stsim run program.st --scans 3 --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline code instead of reading from file")
	runCmd.Flags().IntVar(&runScans, "scans", 1, "number of scan cycles to execute")
	runCmd.Flags().Int64Var(&scanTimeMs, "scan-time", 100, "scan time in milliseconds")
	runCmd.Flags().StringArrayVar(&setInputs, "set", nil, "set a BOOL/INT/REAL variable before scanning (NAME=VALUE, repeatable)")
	runCmd.Flags().StringVar(&runFormat, "format", "table", "output format: table or yaml")
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}

	program := parser.Parse(input)
	if len(program.Errors) > 0 {
		compilerErrors := errors.ToCompilerErrors(program.Errors, input, filename)
		fmt.Fprintln(os.Stderr, errors.FormatErrors(compilerErrors, false))
		return fmt.Errorf("parsing failed with %d error(s)", len(program.Errors))
	}

	runner := scan.New(program, scanTimeMs)
	if err := applyInputs(runner, setInputs); err != nil {
		return err
	}
	runner.RunScans(runScans)

	switch runFormat {
	case "yaml":
		return printStoreYAML(runner)
	default:
		printStoreTable(runner)
		return nil
	}
}

// applyInputs parses --set NAME=VALUE flags and writes them into the store
// before the first scan, so a scenario (e.g. "Start=TRUE") can be driven
// without editing the source.
func applyInputs(runner *scan.Runner, sets []string) error {
	for _, s := range sets {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid --set %q, expected NAME=VALUE", s)
		}
		name, raw := parts[0], parts[1]
		switch strings.ToUpper(raw) {
		case "TRUE":
			runner.Store.SetBool(name, true)
			continue
		case "FALSE":
			runner.Store.SetBool(name, false)
			continue
		}
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			if runner.Registry.Tags[name] == types.TagReal {
				runner.Store.SetReal(name, float64(i))
				continue
			}
			runner.Store.SetInt(name, i)
			continue
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			runner.Store.SetReal(name, f)
			continue
		}
		runner.Store.SetString(name, raw)
	}
	return nil
}

func printStoreTable(r *scan.Runner) {
	fmt.Printf("scans: %d  clock: %dms\n\n", r.Scans, r.Store.Clock)

	names := make([]string, 0, len(r.Registry.Tags))
	for name := range r.Registry.Tags {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tag := r.Registry.Tags[name]
		fmt.Printf("%-24s %-14s %v\n", name, tag, readScalar(r, name, tag))
	}
}

func printStoreYAML(r *scan.Runner) error {
	doc := map[string]any{
		"scans": r.Scans,
		"clock": r.Store.Clock,
		"vars":  map[string]any{},
	}
	vars := doc["vars"].(map[string]any)
	for name, tag := range r.Registry.Tags {
		vars[name] = readScalar(r, name, tag)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

// readScalar reads name from whichever table its tag routes to. FB instance
// tags (TIMER/COUNTER/...) and ARRAY aren't single scalars, so they print as
// their Go struct value, same as any other debug dump.
func readScalar(r *scan.Runner, name string, tag types.Tag) any {
	switch tag {
	case types.TagBool:
		return r.Store.GetBool(name)
	case types.TagInt, types.TagEnum:
		return r.Store.GetInt(name)
	case types.TagReal:
		return r.Store.GetReal(name)
	case types.TagTime:
		return r.Store.GetTime(name)
	case types.TagDate:
		return r.Store.GetDate(name)
	case types.TagTimeOfDay:
		return r.Store.GetTimeOfDay(name)
	case types.TagDateAndTime:
		return r.Store.GetDateAndTime(name)
	case types.TagString:
		return r.Store.GetString(name)
	case types.TagTimer:
		return r.Store.Timers[name]
	case types.TagCounter:
		return r.Store.Counters[name]
	case types.TagRTrig, types.TagFTrig:
		return r.Store.EdgeDetectors[name]
	case types.TagBistable:
		return r.Store.Bistables[name]
	case types.TagArray:
		return r.Store.Arrays[name]
	default:
		return nil
	}
}
