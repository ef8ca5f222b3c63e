//go:build js && wasm

// Command stsim-wasm is the WebAssembly entry point for the Structured Text
// simulator core. It exposes parsing, scan-cycle execution, and the
// ST-to-ladder transform to JavaScript as window.STSim.
//
// Build with:
//
//	GOOS=js GOARCH=wasm go build -o stsim.wasm ./cmd/stsim-wasm
//
// Usage from JavaScript:
//
//	<script src="wasm_exec.js"></script>
//	<script>
//	  const go = new Go();
//	  WebAssembly.instantiateStreaming(fetch("stsim.wasm"), go.importObject)
//	    .then((result) => {
//	      go.run(result.instance);
//	      // window.STSim is now available
//	    });
//	</script>
package main

import (
	"encoding/json"
	"math"
	"syscall/js"

	"github.com/cdilga/ladder-logic-editor-sub000/internal/ast"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/errors"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/ladder"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/parser"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/scan"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/types"
)

// sessions holds every live Runner keyed by a handle handed back to
// JavaScript. A page typically keeps exactly one open at a time, but nothing
// here assumes that.
var (
	sessions   = map[int]*scan.Runner{}
	nextHandle = 1
)

func main() {
	done := make(chan struct{})

	api := js.Global().Get("Object").New()
	api.Set("transform", js.FuncOf(jsTransform))
	api.Set("newRunner", js.FuncOf(jsNewRunner))
	api.Set("runScan", js.FuncOf(jsRunScan))
	api.Set("setInput", js.FuncOf(jsSetInput))
	api.Set("reset", js.FuncOf(jsReset))
	api.Set("destroy", js.FuncOf(jsDestroy))
	js.Global().Set("STSim", api)

	js.Global().Get("console").Call("log", "STSim WASM module initialized")

	<-done
}

// jsTransform(source) -> JSON string of the ladder transform result.
func jsTransform(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return jsonError("transform requires a source string")
	}
	result := ladder.Transform(args[0].String())
	return mustJSON(result)
}

// jsNewRunner(source, scanTimeMs) -> {ok, handle} or {ok:false, error}.
func jsNewRunner(_ js.Value, args []js.Value) any {
	if len(args) < 2 {
		return jsonError("newRunner requires (source, scanTimeMs)")
	}
	source := args[0].String()
	scanTimeMs := int64(args[1].Int())

	program := parser.Parse(source)
	if len(program.Errors) > 0 {
		return jsonError(formatParseErrors(program, source))
	}

	runner := scan.New(program, scanTimeMs)
	handle := nextHandle
	nextHandle++
	sessions[handle] = runner

	return map[string]any{"ok": true, "handle": handle}
}

// jsRunScan(handle, n) -> JSON dump of the store after n scans (default 1).
func jsRunScan(_ js.Value, args []js.Value) any {
	runner, err := sessionFor(args)
	if err != nil {
		return jsonError(err.Error())
	}
	n := 1
	if len(args) > 1 {
		n = args[1].Int()
	}
	runner.RunScans(n)
	return mustJSON(dumpStore(runner))
}

// jsSetInput(handle, name, value) sets a BOOL/INT/REAL input before the next
// scan. value arrives as whatever JS type it is; booleans and numbers are
// detected directly, anything else is written as a string.
func jsSetInput(_ js.Value, args []js.Value) any {
	if len(args) < 3 {
		return jsonError("setInput requires (handle, name, value)")
	}
	runner, err := sessionFor(args[:1])
	if err != nil {
		return jsonError(err.Error())
	}
	name := args[1].String()
	v := args[2]
	switch v.Type() {
	case js.TypeBoolean:
		runner.Store.SetBool(name, v.Bool())
	case js.TypeNumber:
		switch runner.Registry.Tags[name] {
		case types.TagInt, types.TagEnum:
			runner.Store.SetInt(name, int64(math.Floor(v.Float())))
		default:
			runner.Store.SetReal(name, v.Float())
		}
	default:
		runner.Store.SetString(name, v.String())
	}
	return map[string]any{"ok": true}
}

// jsReset(handle) reloads the runner's store to its declared initial values.
func jsReset(_ js.Value, args []js.Value) any {
	runner, err := sessionFor(args)
	if err != nil {
		return jsonError(err.Error())
	}
	runner.Reset()
	return map[string]any{"ok": true}
}

// jsDestroy(handle) releases a session so it can be garbage collected.
func jsDestroy(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return jsonError("destroy requires a handle")
	}
	delete(sessions, args[0].Int())
	return map[string]any{"ok": true}
}

func sessionFor(args []js.Value) (*scan.Runner, error) {
	if len(args) < 1 {
		return nil, errNoHandle
	}
	runner, ok := sessions[args[0].Int()]
	if !ok {
		return nil, errUnknownHandle
	}
	return runner, nil
}

var (
	errNoHandle      = simpleError("missing runner handle")
	errUnknownHandle = simpleError("unknown runner handle")
)

type simpleError string

func (e simpleError) Error() string { return string(e) }

func dumpStore(r *scan.Runner) map[string]any {
	vars := make(map[string]any, len(r.Registry.Tags))
	for name := range r.Registry.Tags {
		vars[name] = readAny(r, name)
	}
	return map[string]any{
		"ok":    true,
		"scans": r.Scans,
		"clock": r.Store.Clock,
		"vars":  vars,
	}
}

func readAny(r *scan.Runner, name string) any {
	tag := r.Registry.Tags[name]
	switch tag.String() {
	case "BOOL":
		return r.Store.GetBool(name)
	case "INT", "ENUM":
		return r.Store.GetInt(name)
	case "REAL":
		return r.Store.GetReal(name)
	case "TIME":
		return r.Store.GetTime(name)
	case "DATE":
		return r.Store.GetDate(name)
	case "TIME_OF_DAY":
		return r.Store.GetTimeOfDay(name)
	case "DATE_AND_TIME":
		return r.Store.GetDateAndTime(name)
	case "STRING":
		return r.Store.GetString(name)
	case "TIMER":
		return r.Store.Timers[name]
	case "COUNTER":
		return r.Store.Counters[name]
	case "R_TRIG", "F_TRIG":
		return r.Store.EdgeDetectors[name]
	case "BISTABLE":
		return r.Store.Bistables[name]
	case "ARRAY":
		return r.Store.Arrays[name]
	default:
		return nil
	}
}

func formatParseErrors(program *ast.Program, source string) string {
	var out string
	for i, pe := range program.Errors {
		ce := errors.NewCompilerError(pe.Pos, pe.Message, source, "<source>")
		if i > 0 {
			out += "\n"
		}
		out += ce.Format(false)
	}
	return out
}

func jsonError(msg string) map[string]any {
	return map[string]any{"ok": false, "error": msg}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		b, _ = json.Marshal(jsonError(err.Error()))
	}
	return string(b)
}
