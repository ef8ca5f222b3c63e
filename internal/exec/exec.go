// Package exec is the Structured Text statement executor: assignment,
// IF/CASE/FOR/WHILE/REPEAT control flow, and function-block invocation. It
// shares the evaluator's "set a flag, continue" philosophy — a malformed or
// out-of-range statement never aborts the surrounding program, it just
// becomes a no-op.
package exec

import (
	"math"

	"github.com/cdilga/ladder-logic-editor-sub000/internal/ast"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/eval"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/types"
)

// Execute runs stmts in order against ctx. A single malformed statement
// never stops the ones that follow it — that confinement is enforced by
// construction: every statement kind below degrades to a no-op on bad
// input rather than returning an error.
func Execute(stmts []ast.Statement, ctx *eval.Context) {
	for _, s := range stmts {
		executeOne(s, ctx)
	}
}

func executeOne(stmt ast.Statement, ctx *eval.Context) {
	switch s := stmt.(type) {
	case *ast.Assignment:
		execAssignment(s, ctx)
	case *ast.IfStatement:
		execIf(s, ctx)
	case *ast.CaseStatement:
		execCase(s, ctx)
	case *ast.ForLoop:
		execFor(s, ctx)
	case *ast.WhileLoop:
		execWhile(s, ctx)
	case *ast.RepeatLoop:
		execRepeat(s, ctx)
	case *ast.FunctionBlockCall:
		execFBCall(s, ctx)
	}
}

// execAssignment evaluates the RHS once, then routes the write through the
// type registry: BOOL coerces to bool, INT takes the floor,
// REAL passes through, array/struct targets resolve their own storage, and
// a CONSTANT name is silently ignored.
func execAssignment(a *ast.Assignment, ctx *eval.Context) {
	if len(a.Left.Indices) > 0 {
		assignArrayElement(a, ctx)
		return
	}

	name := pathName(a.Left.Path)
	if ctx.Registry != nil && ctx.Registry.Constants[name] {
		return
	}

	v := eval.Evaluate(a.Value, ctx)
	writeScalar(name, v, ctx)
}

func assignArrayElement(a *ast.Assignment, ctx *eval.Context) {
	name := pathName(a.Left.Path)
	arr, ok := ctx.Store.GetArray(name)
	if !ok {
		return
	}
	indices := make([]int64, len(a.Left.Indices))
	for i, e := range a.Left.Indices {
		indices[i] = int64(eval.ToNumber(eval.Evaluate(e, ctx)))
	}
	v := eval.Evaluate(a.Value, ctx)
	if arr.Meta.ElementTag == types.TagString {
		arr.SetElementString(indices, eval.ToString(v))
		return
	}
	arr.SetElement(indices, coerceNumberFor(arr.Meta.ElementTag, v))
}

// writeScalar routes a plain (possibly dotted struct-field) name to its
// table via the type registry. A name the registry never saw is an
// unknown target and, per the error model, the write is simply dropped.
func writeScalar(name string, v eval.Value, ctx *eval.Context) {
	tag := types.TagUnknown
	if ctx.Registry != nil {
		if t, ok := ctx.Registry.Tags[name]; ok {
			tag = t
		}
	}
	switch tag {
	case types.TagBool:
		ctx.Store.SetBool(name, eval.ToBoolean(v))
	case types.TagInt, types.TagEnum:
		ctx.Store.SetInt(name, floorToInt(eval.ToNumber(v)))
	case types.TagReal:
		ctx.Store.SetReal(name, eval.ToNumber(v))
	case types.TagTime:
		ctx.Store.SetTime(name, floorToInt(eval.ToNumber(v)))
	case types.TagDate:
		ctx.Store.SetDate(name, floorToInt(eval.ToNumber(v)))
	case types.TagTimeOfDay:
		ctx.Store.SetTimeOfDay(name, floorToInt(eval.ToNumber(v)))
	case types.TagDateAndTime:
		ctx.Store.SetDateAndTime(name, floorToInt(eval.ToNumber(v)))
	case types.TagString:
		ctx.Store.SetString(name, eval.ToString(v))
	}
	// Unknown/FB-kind targets: the statement executor only ever writes
	// scalar/struct-field storage here; FB fields are mutated by the FB
	// call path, never by a plain assignment.
}

func coerceNumberFor(tag types.Tag, v eval.Value) float64 {
	if tag == types.TagInt || tag == types.TagEnum {
		return float64(floorToInt(eval.ToNumber(v)))
	}
	return eval.ToNumber(v)
}

func floorToInt(f float64) int64 {
	if math.IsNaN(f) || f > 9.2e18 || f < -9.2e18 {
		return 0
	}
	return int64(math.Floor(f))
}

func pathName(path []string) string {
	if len(path) == 1 {
		return path[0]
	}
	out := path[0]
	for _, p := range path[1:] {
		out += "." + p
	}
	return out
}

// execIf runs the first branch (THEN, then each ELSIF in order) whose
// condition is truthy, else ELSE if present.
func execIf(s *ast.IfStatement, ctx *eval.Context) {
	if eval.ToBoolean(eval.Evaluate(s.Condition, ctx)) {
		Execute(s.Then, ctx)
		return
	}
	for _, branch := range s.Elsifs {
		if eval.ToBoolean(eval.Evaluate(branch.Condition, ctx)) {
			Execute(branch.Body, ctx)
			return
		}
	}
	if s.Else != nil {
		Execute(s.Else, ctx)
	}
}

// execCase evaluates the selector once, then runs the first branch with a
// matching label (value or closed range); no match and no ELSE is a no-op.
func execCase(s *ast.CaseStatement, ctx *eval.Context) {
	selector := floorToInt(eval.ToNumber(eval.Evaluate(s.Selector, ctx)))
	for _, branch := range s.Branches {
		for _, label := range branch.Labels {
			if label.Matches(selector) {
				Execute(branch.Body, ctx)
				return
			}
		}
	}
	if s.Else != nil {
		Execute(s.Else, ctx)
	}
}

// execFor evaluates start/end/step once at entry. A step whose sign
// contradicts the direction from start to end (or a zero step) runs zero
// iterations rather than hanging.
func execFor(s *ast.ForLoop, ctx *eval.Context) {
	start := floorToInt(eval.ToNumber(eval.Evaluate(s.Start, ctx)))
	end := floorToInt(eval.ToNumber(eval.Evaluate(s.End, ctx)))
	step := int64(1)
	if s.Step != nil {
		step = floorToInt(eval.ToNumber(eval.Evaluate(s.Step, ctx)))
	}
	if step == 0 {
		return
	}

	tag := types.TagInt
	if ctx.Registry != nil {
		if t, ok := ctx.Registry.Tags[s.Variable]; ok {
			tag = t
		}
	}
	setLoopVar := func(v int64) {
		if tag == types.TagReal {
			ctx.Store.SetReal(s.Variable, float64(v))
		} else {
			ctx.Store.SetInt(s.Variable, v)
		}
	}

	if step > 0 {
		for v := start; v <= end; v += step {
			setLoopVar(v)
			Execute(s.Body, ctx)
		}
		return
	}
	for v := start; v >= end; v += step {
		setLoopVar(v)
		Execute(s.Body, ctx)
	}
}

// execWhile is a pre-test loop: the condition may be false on entry, in
// which case the body never runs.
func execWhile(s *ast.WhileLoop, ctx *eval.Context) {
	guard := 0
	for eval.ToBoolean(eval.Evaluate(s.Condition, ctx)) {
		Execute(s.Body, ctx)
		guard++
		if guard >= maxLoopIterations {
			return
		}
	}
}

// execRepeat is a post-test loop: the body always runs at least once.
func execRepeat(s *ast.RepeatLoop, ctx *eval.Context) {
	guard := 0
	for {
		Execute(s.Body, ctx)
		guard++
		if eval.ToBoolean(eval.Evaluate(s.Condition, ctx)) || guard >= maxLoopIterations {
			return
		}
	}
}

// maxLoopIterations bounds WHILE/REPEAT against a source program that
// never reaches its exit condition. The scan-cycle contract has no
// watchdog of its own; a single runaway scan would otherwise hang the
// caller (the UI's animation-frame loop) forever.
const maxLoopIterations = 1_000_000
