package exec

import (
	"github.com/cdilga/ladder-logic-editor-sub000/internal/ast"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/eval"
)

// execFBCall dispatches Instance(Arg := expr, ...) to the runtime kind
// named by the instance's declared type. The kind decides which keyword
// arguments are meaningful; an unrecognized instance name (never declared,
// or declared with a type this core doesn't treat as a function block) is
// a no-op, matching the "unknown name never halts the scan" invariant.
func execFBCall(call *ast.FunctionBlockCall, ctx *eval.Context) {
	if ctx.Registry == nil {
		return
	}
	kind, ok := ctx.Registry.FBKinds[call.Instance]
	if !ok {
		return
	}

	args := map[string]eval.Value{}
	for _, a := range call.Args {
		args[a.Name] = eval.Evaluate(a.Value, ctx)
	}
	has := func(name string) bool { _, ok := args[name]; return ok }
	boolArg := func(name string) bool { return eval.ToBoolean(args[name]) }
	intArg := func(name string) int64 { return floorToInt(eval.ToNumber(args[name])) }

	switch kind {
	case "TON", "TOF", "TP":
		pt := int64(0)
		if has("PT") {
			pt = intArg("PT")
		}
		t := ctx.Store.InitTimer(call.Instance, pt, kind)
		if has("PT") {
			t.PT = pt
		}
		if has("IN") {
			t.IN = boolArg("IN")
		}

	case "CTU":
		pv := int64(0)
		if has("PV") {
			pv = intArg("PV")
		}
		ctx.Store.PulseCountUp(call.Instance, boolArg("CU"), boolArg("R"), pv)

	case "CTD":
		pv := int64(0)
		if has("PV") {
			pv = intArg("PV")
		}
		ctx.Store.PulseCountDown(call.Instance, boolArg("CD"), boolArg("LD"), pv)

	case "CTUD":
		pv := int64(0)
		if has("PV") {
			pv = intArg("PV")
		}
		ctx.Store.PulseCountUpDown(call.Instance, boolArg("CU"), boolArg("CD"), boolArg("R"), boolArg("LD"), pv)

	case "R_TRIG":
		ctx.Store.UpdateRTrig(call.Instance, boolArg("CLK"))

	case "F_TRIG":
		ctx.Store.UpdateFTrig(call.Instance, boolArg("CLK"))

	case "SR":
		ctx.Store.UpdateSR(call.Instance, boolArg("S1"), boolArg("R"))

	case "RS":
		ctx.Store.UpdateRS(call.Instance, boolArg("R1"), boolArg("S"))
	}
}
