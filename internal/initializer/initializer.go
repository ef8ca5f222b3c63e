// Package initializer walks a parsed program's declarations and seeds a
// fresh store with every variable's initial value or type default.
package initializer

import (
	"math"

	"github.com/cdilga/ladder-logic-editor-sub000/internal/ast"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/eval"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/store"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/types"
)

// Initialize seeds st with every declared variable's initial value (or its
// type's zero default) except VAR_EXTERNAL declarations, which create no
// storage of their own — their storage is the matching VAR_GLOBAL name.
// Function-block instances are deliberately left uninitialized here: the
// contract materializes them lazily, on first call, inside the statement
// executor.
func Initialize(program *ast.Program, st *store.Store, reg *types.Registry) {
	ctx := &eval.Context{Store: st, Registry: reg}

	for _, d := range program.Declarations {
		vb, ok := d.(*ast.VariableBlock)
		if !ok || vb.Qualifier == ast.QualVarExternal {
			continue
		}
		for _, decl := range vb.Declarations {
			for _, name := range decl.Names {
				initVariable(name, decl.Type, decl.InitialExpr, ctx)
			}
		}
	}
}

func initVariable(name string, dt *ast.DataType, initExpr ast.Expression, ctx *eval.Context) {
	if dt == nil {
		return
	}

	if dt.ArrayRanges != nil {
		meta := ctx.Registry.ArrayMeta[name]
		ctx.Store.InitArray(name, meta)
		return
	}

	tag := ctx.Registry.Tags[name]
	if tag == types.TagTimer || tag == types.TagCounter || tag == types.TagRTrig ||
		tag == types.TagFTrig || tag == types.TagBistable {
		return
	}

	// A reference to a user STRUCT type has no scalar tag of its own; its
	// fields were already registered (and are initialized individually when
	// this loop reaches their own VariableDecl, named "inst.field").
	if _, isStruct := ctx.Registry.StructTypes[dt.Name]; isStruct && dt.ArrayRanges == nil {
		return
	}

	// No initial-value expression: leave the table untouched. Reading an
	// absent key yields the Go zero value, which is exactly the type
	// default the PLC error model wants — evaluating a zero eval.Value
	// would wrongly stringify to "FALSE" for an uninitialized STRING.
	if initExpr == nil {
		return
	}
	v := eval.Evaluate(initExpr, ctx)

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
}

func floorToInt(f float64) int64 {
	if f != f || f > 9.2e18 || f < -9.2e18 { // NaN or out of int64 range
		return 0
	}
	return int64(math.Floor(f))
}
