package eval

import (
	"math"
	"strings"
)

// callFunction dispatches a built-in by name (case-insensitive, matching ST
// keyword casing rules). An unrecognized name is offered to ctx.UserFunction
// if set, then defaults to 0 — this evaluator never errors on a bad call.
func callFunction(name string, args []Value, ctx *Context) Value {
	switch strings.ToUpper(name) {
	case "ABS":
		return NumberValue(math.Abs(arg(args, 0)))
	case "SQRT":
		return NumberValue(math.Sqrt(arg(args, 0)))
	case "SIN":
		return NumberValue(math.Sin(arg(args, 0)))
	case "COS":
		return NumberValue(math.Cos(arg(args, 0)))
	case "TAN":
		return NumberValue(math.Tan(arg(args, 0)))
	case "ASIN":
		return NumberValue(math.Asin(arg(args, 0)))
	case "ACOS":
		return NumberValue(math.Acos(arg(args, 0)))
	case "ATAN":
		return NumberValue(math.Atan(arg(args, 0)))
	case "ATAN2":
		return NumberValue(math.Atan2(arg(args, 0), arg(args, 1)))
	case "LN":
		return NumberValue(math.Log(arg(args, 0)))
	case "LOG":
		return NumberValue(math.Log10(arg(args, 0)))
	case "EXP":
		return NumberValue(math.Exp(arg(args, 0)))
	case "MIN":
		return NumberValue(fold(args, math.Min, math.Inf(1)))
	case "MAX":
		return NumberValue(fold(args, math.Max, math.Inf(-1)))
	case "LIMIT":
		mn, in, mx := arg(args, 0), arg(args, 1), arg(args, 2)
		return NumberValue(math.Min(math.Max(in, mn), mx))
	case "SEL":
		if len(args) < 3 {
			return NumberValue(0)
		}
		if ToBoolean(args[0]) {
			return args[2]
		}
		return args[1]
	case "MUX":
		if len(args) < 2 {
			return NumberValue(0)
		}
		k := int(arg(args, 0))
		inputs := args[1:]
		if k < 0 || k >= len(inputs) {
			return inputs[0]
		}
		return inputs[k]
	case "CONCAT":
		var b strings.Builder
		for _, a := range args {
			b.WriteString(ToString(a))
		}
		return StringValue(b.String())
	case "LEN":
		return NumberValue(float64(len([]rune(str(args, 0)))))
	case "LEFT":
		s := []rune(str(args, 0))
		l := clamp(int(arg(args, 1)), len(s))
		return StringValue(string(s[:l]))
	case "RIGHT":
		s := []rune(str(args, 0))
		l := clamp(int(arg(args, 1)), len(s))
		return StringValue(string(s[len(s)-l:]))
	case "MID":
		s := []rune(str(args, 0))
		l := clamp(int(arg(args, 1)), len(s))
		p := clampPos(int(arg(args, 2)), len(s))
		end := p + l
		if end > len(s) {
			end = len(s)
		}
		return StringValue(string(s[p:end]))
	case "FIND":
		idx := strings.Index(str(args, 0), str(args, 1))
		if idx < 0 {
			return NumberValue(0)
		}
		return NumberValue(float64(len([]rune(str(args, 0)[:idx])) + 1))
	case "INSERT":
		s1, s2 := []rune(str(args, 0)), str(args, 1)
		p := clampPos(int(arg(args, 2)), len(s1))
		return StringValue(string(s1[:p]) + s2 + string(s1[p:]))
	case "DELETE":
		s := []rune(str(args, 0))
		l := clamp(int(arg(args, 1)), len(s))
		p := clampPos(int(arg(args, 2)), len(s))
		end := p + l
		if end > len(s) {
			end = len(s)
		}
		return StringValue(string(s[:p]) + string(s[end:]))
	case "REPLACE":
		s1, s2 := []rune(str(args, 0)), str(args, 1)
		l := clamp(int(arg(args, 2)), len(s1))
		p := clampPos(int(arg(args, 3)), len(s1))
		end := p + l
		if end > len(s1) {
			end = len(s1)
		}
		return StringValue(string(s1[:p]) + s2 + string(s1[end:]))
	}

	if ctx != nil && ctx.UserFunction != nil {
		if v, ok := ctx.UserFunction(name, args); ok {
			return v
		}
	}
	return NumberValue(0)
}

func arg(args []Value, i int) float64 {
	if i >= len(args) {
		return 0
	}
	return ToNumber(args[i])
}

func str(args []Value, i int) string {
	if i >= len(args) {
		return ""
	}
	return ToString(args[i])
}

func fold(args []Value, f func(a, b float64) float64, seed float64) float64 {
	acc := seed
	for _, a := range args {
		acc = f(acc, ToNumber(a))
	}
	return acc
}

// clamp is L clamped to a non-negative count not exceeding the string's
// rune length.
func clamp(l, strLen int) int {
	if l < 0 {
		l = 0
	}
	if l > strLen {
		l = strLen
	}
	return l
}

// clampPos converts a 1-based position P into a 0-based offset clamped to
// [0, strLen].
func clampPos(p, strLen int) int {
	pos := p - 1
	if pos < 0 {
		pos = 0
	}
	if pos > strLen {
		pos = strLen
	}
	return pos
}
