package ast

import (
	"bytes"
	"strings"

	"github.com/cdilga/ladder-logic-editor-sub000/internal/lexer"
)

// LiteralKind tags the value category carried by a Literal node.
type LiteralKind int

const (
	LiteralBool LiteralKind = iota
	LiteralInt
	LiteralReal
	LiteralString
	LiteralTime
	LiteralDate
	LiteralTimeOfDay
	LiteralDateAndTime
)

// Literal is a constant value. Raw preserves the exact source lexeme for
// TIME/DATE/TOD/DT literals so round-tripping a .st file stays lossless;
// Bool, Int, Real and Str hold the value already resolved at parse time.
type Literal struct {
	Token lexer.Token
	Kind  LiteralKind
	Bool  bool
	Int   int64
	Real  float64
	Str   string
	Raw   string
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Literal }
func (l *Literal) Pos() lexer.Position  { return l.Token.Pos }
func (l *Literal) String() string {
	switch l.Kind {
	case LiteralBool:
		if l.Bool {
			return "TRUE"
		}
		return "FALSE"
	case LiteralInt:
		return l.Token.Literal
	case LiteralReal:
		return l.Token.Literal
	case LiteralString:
		return "'" + l.Str + "'"
	default:
		return l.Token.Literal
	}
}

// IndexExpr is one array subscript. ST allows both comma-separated
// [i,j] and chained [i][j] addressing for the same multi-dimensional
// access; the parser normalizes both into a flat Indices list.
type IndexExpr struct {
	Expr Expression
}

// Variable is an access path: a dotted chain of names (struct field or
// function-block field access) with an optional array subscript on the
// final segment, e.g. `Motor1.RunTimer.ET` or `Grid[i,j]`.
type Variable struct {
	Token   lexer.Token
	Path    []string
	Indices []Expression // subscripts on the final path segment, if any
}

func (v *Variable) expressionNode()      {}
func (v *Variable) TokenLiteral() string { return v.Token.Literal }
func (v *Variable) Pos() lexer.Position  { return v.Token.Pos }
func (v *Variable) String() string {
	var out bytes.Buffer
	out.WriteString(strings.Join(v.Path, "."))
	if len(v.Indices) > 0 {
		out.WriteString("[")
		parts := make([]string, len(v.Indices))
		for i, e := range v.Indices {
			parts[i] = e.String()
		}
		out.WriteString(strings.Join(parts, ","))
		out.WriteString("]")
	}
	return out.String()
}

// BinaryOp enumerates ST's binary operators, ordered roughly by the
// precedence table in the grammar.
type BinaryOp int

const (
	OpPower BinaryOp = iota
	OpMul
	OpDiv
	OpMod
	OpAdd
	OpSub
	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNe
	OpAnd
	OpXor
	OpOr
)

var binaryOpLiterals = map[BinaryOp]string{
	OpPower: "**", OpMul: "*", OpDiv: "/", OpMod: "MOD",
	OpAdd: "+", OpSub: "-",
	OpLt: "<", OpGt: ">", OpLe: "<=", OpGe: ">=", OpEq: "=", OpNe: "<>",
	OpAnd: "AND", OpXor: "XOR", OpOr: "OR",
}

func (op BinaryOp) String() string { return binaryOpLiterals[op] }

// BinaryExpr is a binary operator application. The evaluator is total and
// always evaluates both sides; short-circuiting is not part of the
// language's semantics.
type BinaryExpr struct {
	Token    lexer.Token
	Left     Expression
	Operator BinaryOp
	Right    Expression
}

func (b *BinaryExpr) expressionNode()      {}
func (b *BinaryExpr) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpr) Pos() lexer.Position  { return b.Token.Pos }
func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + b.Operator.String() + " " + b.Right.String() + ")"
}

// UnaryOp enumerates ST's prefix operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
)

// UnaryExpr is a prefix operator application: -x or NOT x.
type UnaryExpr struct {
	Token    lexer.Token
	Operator UnaryOp
	Operand  Expression
}

func (u *UnaryExpr) expressionNode()      {}
func (u *UnaryExpr) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpr) Pos() lexer.Position  { return u.Token.Pos }
func (u *UnaryExpr) String() string {
	sym := "-"
	if u.Operator == OpNot {
		sym = "NOT "
	}
	return "(" + sym + u.Operand.String() + ")"
}

// ParenExpr is a parenthesized sub-expression, kept as its own node so
// diagnostics and the ladder transformer can report spans that match the
// source exactly.
type ParenExpr struct {
	Token lexer.Token
	Inner Expression
}

func (p *ParenExpr) expressionNode()      {}
func (p *ParenExpr) TokenLiteral() string { return p.Token.Literal }
func (p *ParenExpr) Pos() lexer.Position  { return p.Token.Pos }
func (p *ParenExpr) String() string       { return "(" + p.Inner.String() + ")" }

// FunctionCall is a call to a built-in function: ABS(x), SEL(g, a, b), etc.
// Function-block instance invocations (`Timer1(IN := x, PT := y)`) are a
// statement, not an expression — see FunctionBlockCall in statements.go.
type FunctionCall struct {
	Token     lexer.Token
	Name      string
	Arguments []Expression
}

func (f *FunctionCall) expressionNode()      {}
func (f *FunctionCall) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionCall) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionCall) String() string {
	args := make([]string, len(f.Arguments))
	for i, a := range f.Arguments {
		args[i] = a.String()
	}
	return f.Name + "(" + strings.Join(args, ", ") + ")"
}
