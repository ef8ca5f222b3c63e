// Package scan drives the scan-cycle interpreter: advance the clock,
// execute every statement once in source order, then advance every live
// timer. The core only exposes RunScan — it is the UI's job to call it
// repeatedly (typically from an animation-frame loop); nothing here blocks
// or owns a goroutine.
package scan

import (
	"github.com/cdilga/ladder-logic-editor-sub000/internal/ast"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/eval"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/exec"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/initializer"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/store"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/types"
)

// Runner ties together the AST the scan executes against, the typed store
// it mutates, and the registries that route reads and writes. The AST is
// immutable once a Runner is created; the store is the only thing a scan
// changes, which is what makes run_scan × N reproducible.
type Runner struct {
	Program  *ast.Program
	Store    *store.Store
	Registry *types.Registry
	Scans    int64
}

// New builds a Runner over program with a fresh store initialized to the
// program's declared values, at the given scan time in milliseconds.
func New(program *ast.Program, scanTimeMs int64) *Runner {
	reg := types.Build(program)
	st := store.New(scanTimeMs)
	initializer.Initialize(program, st, reg)
	return &Runner{Program: program, Store: st, Registry: reg}
}

// RunScan executes exactly one scan cycle: advance the clock, run every
// top-level statement in source order, then advance every live timer by
// the store's configured scan time. It never returns an error — runtime
// faults (div-by-zero, bad array index, unknown name) degrade to a value
// default inside eval/exec rather than propagating here.
func (r *Runner) RunScan() {
	r.Store.Clock += r.Store.ScanTime
	ctx := &eval.Context{Store: r.Store, Registry: r.Registry}
	exec.Execute(r.Program.Statements, ctx)
	r.advanceTimers()
	r.Scans++
}

// advanceTimers ticks every timer instance materialized so far by one scan
// time. Order across instances is unspecified and immaterial: timers don't
// read each other's state.
func (r *Runner) advanceTimers() {
	for name := range r.Store.Timers {
		r.Store.UpdateTimer(name, r.Store.ScanTime)
	}
}

// RunScans executes n scans back to back, equivalent to calling RunScan n
// times. Kept as a convenience for tests and the CLI's --scans flag; the
// UI drives single scans itself.
func (r *Runner) RunScans(n int) {
	for i := 0; i < n; i++ {
		r.RunScan()
	}
}

// Reset clears the store back to its initial declared values, as if the
// simulator had just been started from the stopped state.
func (r *Runner) Reset() {
	scanTime := r.Store.ScanTime
	r.Store.ClearAll()
	r.Store.ScanTime = scanTime
	initializer.Initialize(r.Program, r.Store, r.Registry)
	r.Scans = 0
}
