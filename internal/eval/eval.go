// Package eval is the recursive Structured Text expression evaluator: total,
// IEC 61131-3 coercion rules, never throws. Division by zero, unknown
// names, and out-of-bounds array access all degrade to a default value
// instead of aborting — the "set a flag, continue" PLC error model lives
// here as much as in the statement executor.
package eval

import (
	"math"
	"strconv"
	"strings"

	"github.com/cdilga/ladder-logic-editor-sub000/internal/ast"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/store"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/types"
)

// ValueKind tags the category a runtime Value carries. The core's value
// space is exactly the three kinds the evaluator contract names: boolean,
// number, string.
type ValueKind int

const (
	VBool ValueKind = iota
	VNumber
	VString
)

// Value is the evaluator's runtime representation: every number, whatever
// its declared ST type, is a float64, matching the source's own "everything
// is a float at runtime" design.
type Value struct {
	Kind   ValueKind
	Bool   bool
	Number float64
	Str    string
}

func BoolValue(b bool) Value       { return Value{Kind: VBool, Bool: b} }
func NumberValue(n float64) Value  { return Value{Kind: VNumber, Number: n} }
func StringValue(s string) Value   { return Value{Kind: VString, Str: s} }

// ToBoolean: 0 and the empty string are false, everything else true.
func ToBoolean(v Value) bool {
	switch v.Kind {
	case VBool:
		return v.Bool
	case VNumber:
		return v.Number != 0
	default:
		return v.Str != ""
	}
}

// ToNumber: booleans become 0/1; a string prefixed T#/TIME# parses as a
// duration in ms; any other string parses as decimal, defaulting to 0 on
// failure rather than erroring.
func ToNumber(v Value) float64 {
	switch v.Kind {
	case VBool:
		if v.Bool {
			return 1
		}
		return 0
	case VNumber:
		return v.Number
	default:
		upper := strings.ToUpper(v.Str)
		if strings.HasPrefix(upper, "TIME#") {
			ms, err := types.ParseDuration(v.Str[len("TIME#"):])
			if err != nil {
				return 0
			}
			return float64(ms)
		}
		if strings.HasPrefix(upper, "T#") {
			ms, err := types.ParseDuration(v.Str[len("T#"):])
			if err != nil {
				return 0
			}
			return float64(ms)
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0
		}
		return n
	}
}

// ToString: booleans render as TRUE/FALSE, numbers in their shortest
// decimal form.
func ToString(v Value) string {
	switch v.Kind {
	case VBool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	case VNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	default:
		return v.Str
	}
}

// Context bundles the store and type registry a variable reference resolves
// against. UserFunction, if set, is consulted for an unrecognized function
// name before falling back to 0, per the contract's optional hook.
type Context struct {
	Store      *store.Store
	Registry   *types.Registry
	UserFunction func(name string, args []Value) (Value, bool)
}

// Evaluate recursively evaluates expr. It is total: every node type
// produces a Value, even when the expression references storage that does
// not exist.
func Evaluate(expr ast.Expression, ctx *Context) Value {
	switch e := expr.(type) {
	case *ast.Literal:
		return evalLiteral(e)
	case *ast.Variable:
		return resolveVariable(e, ctx)
	case *ast.ParenExpr:
		return Evaluate(e.Inner, ctx)
	case *ast.UnaryExpr:
		operand := Evaluate(e.Operand, ctx)
		if e.Operator == ast.OpNot {
			return BoolValue(!ToBoolean(operand))
		}
		return NumberValue(-ToNumber(operand))
	case *ast.BinaryExpr:
		left := Evaluate(e.Left, ctx)
		right := Evaluate(e.Right, ctx)
		return evalBinary(e.Operator, left, right)
	case *ast.FunctionCall:
		args := make([]Value, len(e.Arguments))
		for i, a := range e.Arguments {
			args[i] = Evaluate(a, ctx)
		}
		return callFunction(e.Name, args, ctx)
	default:
		return NumberValue(0)
	}
}

func evalLiteral(l *ast.Literal) Value {
	switch l.Kind {
	case ast.LiteralBool:
		return BoolValue(l.Bool)
	case ast.LiteralInt:
		return NumberValue(float64(l.Int))
	case ast.LiteralReal:
		return NumberValue(l.Real)
	case ast.LiteralString:
		return StringValue(l.Str)
	case ast.LiteralTime:
		ms, _ := types.ParseDuration(l.Raw)
		return NumberValue(float64(ms))
	case ast.LiteralDate:
		days, _ := types.ParseDate(l.Raw)
		return NumberValue(float64(days))
	case ast.LiteralTimeOfDay:
		ms, _ := types.ParseTimeOfDay(l.Raw)
		return NumberValue(float64(ms))
	case ast.LiteralDateAndTime:
		ms, _ := types.ParseDateAndTime(l.Raw)
		return NumberValue(float64(ms))
	default:
		return NumberValue(0)
	}
}

// evalBinary applies op without short-circuiting: both operands are always
// evaluated first by the caller. Division and modulo by zero fall straight
// out of IEEE 754 float semantics (±Inf / NaN) rather than panicking, which
// is exactly the PLC "continue regardless" behavior the spec calls for.
func evalBinary(op ast.BinaryOp, l, r Value) Value {
	switch op {
	case ast.OpAdd:
		return NumberValue(ToNumber(l) + ToNumber(r))
	case ast.OpSub:
		return NumberValue(ToNumber(l) - ToNumber(r))
	case ast.OpMul:
		return NumberValue(ToNumber(l) * ToNumber(r))
	case ast.OpDiv:
		return NumberValue(ToNumber(l) / ToNumber(r))
	case ast.OpMod:
		return NumberValue(math.Mod(ToNumber(l), ToNumber(r)))
	case ast.OpPower:
		return NumberValue(math.Pow(ToNumber(l), ToNumber(r)))
	case ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		return compareValues(op, l, r)
	case ast.OpEq:
		return BoolValue(valuesEqual(l, r))
	case ast.OpNe:
		return BoolValue(!valuesEqual(l, r))
	case ast.OpAnd:
		return BoolValue(ToBoolean(l) && ToBoolean(r))
	case ast.OpOr:
		return BoolValue(ToBoolean(l) || ToBoolean(r))
	case ast.OpXor:
		return BoolValue(ToBoolean(l) != ToBoolean(r))
	default:
		return NumberValue(0)
	}
}

func compareValues(op ast.BinaryOp, l, r Value) Value {
	if l.Kind == VString && r.Kind == VString {
		a, b := l.Str, r.Str
		switch op {
		case ast.OpLt:
			return BoolValue(a < b)
		case ast.OpGt:
			return BoolValue(a > b)
		case ast.OpLe:
			return BoolValue(a <= b)
		default:
			return BoolValue(a >= b)
		}
	}
	a, b := ToNumber(l), ToNumber(r)
	switch op {
	case ast.OpLt:
		return BoolValue(a < b)
	case ast.OpGt:
		return BoolValue(a > b)
	case ast.OpLe:
		return BoolValue(a <= b)
	default:
		return BoolValue(a >= b)
	}
}

func valuesEqual(l, r Value) bool {
	if l.Kind == VString || r.Kind == VString {
		return ToString(l) == ToString(r)
	}
	return ToNumber(l) == ToNumber(r)
}
