package eval

import (
	"strings"

	"github.com/cdilga/ladder-logic-editor-sub000/internal/ast"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/types"
)

// resolveVariable implements the access-path priority order from the
// component design: a length-1 path is a direct store read; a length-2
// path is tried, in order, against the timer/counter/edge-detector/
// bistable field namespaces before falling back to plain `inst.field`
// storage (a struct field). Arrays are addressed by subscript on the full
// dotted name. Every failure mode — unknown name, wrong arity, missing
// instance — degrades to the type default instead of erroring.
func resolveVariable(v *ast.Variable, ctx *Context) Value {
	if len(v.Indices) > 0 {
		return resolveArrayElement(v, ctx)
	}

	switch len(v.Path) {
	case 0:
		return NumberValue(0)
	case 1:
		return readScalar(v.Path[0], ctx)
	case 2:
		if val, ok := resolveFBField(v.Path[0], v.Path[1], ctx); ok {
			return val
		}
		return readScalar(v.Path[0]+"."+v.Path[1], ctx)
	default:
		return readScalar(strings.Join(v.Path, "."), ctx)
	}
}

func resolveArrayElement(v *ast.Variable, ctx *Context) Value {
	name := strings.Join(v.Path, ".")
	arr, ok := ctx.Store.GetArray(name)
	if !ok {
		return NumberValue(0)
	}
	indices := make([]int64, len(v.Indices))
	for i, e := range v.Indices {
		indices[i] = int64(ToNumber(Evaluate(e, ctx)))
	}
	if arr.Meta.ElementTag == types.TagString {
		return StringValue(arr.GetElementString(indices))
	}
	return NumberValue(arr.GetElement(indices))
}

// resolveFBField tries inst against each function-block kind's field set,
// in the priority order the evaluator contract specifies. ok is false if
// inst names no live FB instance, so the caller can fall back to struct
// field storage.
func resolveFBField(inst, field string, ctx *Context) (Value, bool) {
	field = strings.ToUpper(field)

	if t, ok := ctx.Store.GetTimer(inst); ok {
		switch field {
		case "Q":
			return BoolValue(t.Q), true
		case "ET":
			return NumberValue(float64(t.ET)), true
		case "IN":
			return BoolValue(t.IN), true
		case "PT":
			return NumberValue(float64(t.PT)), true
		}
		return NumberValue(0), true
	}

	if c, ok := ctx.Store.GetCounter(inst); ok {
		switch field {
		case "CV":
			return NumberValue(float64(c.CV)), true
		case "QU":
			return BoolValue(c.QU), true
		case "QD":
			return BoolValue(c.QD), true
		case "CU":
			return BoolValue(c.CU), true
		case "CD":
			return BoolValue(c.CD), true
		case "PV":
			return NumberValue(float64(c.PV)), true
		case "R":
			return BoolValue(c.R), true
		case "LD":
			return BoolValue(c.LD), true
		}
		return NumberValue(0), true
	}

	if e, ok := ctx.Store.GetEdgeDetector(inst); ok {
		switch field {
		case "Q":
			return BoolValue(e.Q), true
		case "CLK":
			return BoolValue(e.CLK), true
		case "M":
			return BoolValue(e.M), true
		}
		return NumberValue(0), true
	}

	if b, ok := ctx.Store.GetBistable(inst); ok {
		if field == "Q1" {
			return BoolValue(b.Q1), true
		}
		return NumberValue(0), true
	}

	return Value{}, false
}

// readScalar routes a plain name through the type registry to the matching
// table. A name the registry has never seen falls back to an enum member
// lookup (a bare enumerator used as a value, e.g. `state := RUNNING;`),
// then to 0.
func readScalar(name string, ctx *Context) Value {
	tag := types.TagUnknown
	if ctx.Registry != nil {
		if t, ok := ctx.Registry.Tags[name]; ok {
			tag = t
		}
	}
	switch tag {
	case types.TagBool:
		return BoolValue(ctx.Store.GetBool(name))
	case types.TagInt, types.TagEnum:
		return NumberValue(float64(ctx.Store.GetInt(name)))
	case types.TagReal:
		return NumberValue(ctx.Store.GetReal(name))
	case types.TagTime:
		return NumberValue(float64(ctx.Store.GetTime(name)))
	case types.TagDate:
		return NumberValue(float64(ctx.Store.GetDate(name)))
	case types.TagTimeOfDay:
		return NumberValue(float64(ctx.Store.GetTimeOfDay(name)))
	case types.TagDateAndTime:
		return NumberValue(float64(ctx.Store.GetDateAndTime(name)))
	case types.TagString:
		return StringValue(ctx.Store.GetString(name))
	default:
		if ctx.Registry != nil {
			if v, ok := ctx.Registry.EnumMembers[name]; ok {
				return NumberValue(float64(v))
			}
		}
		return NumberValue(0)
	}
}
