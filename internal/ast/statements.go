package ast

import (
	"strings"

	"github.com/cdilga/ladder-logic-editor-sub000/internal/lexer"
)

// Assignment is `lhs := rhs;`. The LHS is restricted to a Variable access
// path (with optional array index) — assigning to an arbitrary expression
// is not part of the grammar.
type Assignment struct {
	Token lexer.Token
	Left  *Variable
	Value Expression
}

func (a *Assignment) statementNode()      {}
func (a *Assignment) TokenLiteral() string { return a.Token.Literal }
func (a *Assignment) Pos() lexer.Position  { return a.Token.Pos }
func (a *Assignment) String() string {
	return a.Left.String() + " := " + a.Value.String() + ";"
}

// ElsifBranch is one ELSIF condition/body pair.
type ElsifBranch struct {
	Condition Expression
	Body      []Statement
}

// IfStatement is IF...THEN...ELSIF...ELSE...END_IF. The first branch whose
// condition is truthy runs; if none match, Else runs (if present).
type IfStatement struct {
	Token     lexer.Token
	Condition Expression
	Then      []Statement
	Elsifs    []ElsifBranch
	Else      []Statement
}

func (i *IfStatement) statementNode()      {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IfStatement) Pos() lexer.Position  { return i.Token.Pos }
func (i *IfStatement) String() string {
	var b strings.Builder
	b.WriteString("IF " + i.Condition.String() + " THEN ... ")
	for range i.Elsifs {
		b.WriteString("ELSIF ... ")
	}
	if i.Else != nil {
		b.WriteString("ELSE ... ")
	}
	b.WriteString("END_IF;")
	return b.String()
}

// CaseLabel is one label in a CASE branch's label list: either a single
// value or a closed range "low..high".
type CaseLabel struct {
	Value    int64
	IsRange  bool
	RangeEnd int64
}

// Matches reports whether v falls under this label.
func (l CaseLabel) Matches(v int64) bool {
	if l.IsRange {
		return v >= l.Value && v <= l.RangeEnd
	}
	return v == l.Value
}

// CaseBranch is one label-list : statements branch of a CASE.
type CaseBranch struct {
	Labels []CaseLabel
	Body   []Statement
}

// CaseStatement is CASE expr OF label_list: stmts ... ELSE ... END_CASE.
// The selector is evaluated once; the first branch with a matching label
// wins. With no match and no ELSE, the statement is a no-op.
type CaseStatement struct {
	Token    lexer.Token
	Selector Expression
	Branches []CaseBranch
	Else     []Statement
}

func (c *CaseStatement) statementNode()      {}
func (c *CaseStatement) TokenLiteral() string { return c.Token.Literal }
func (c *CaseStatement) Pos() lexer.Position  { return c.Token.Pos }
func (c *CaseStatement) String() string {
	return "CASE " + c.Selector.String() + " OF ... END_CASE;"
}

// ForLoop is FOR v := start TO end [BY step] DO ... END_FOR. Start, End and
// Step are evaluated once at entry; Step defaults to +1 when absent.
type ForLoop struct {
	Token    lexer.Token
	Variable string
	Start    Expression
	End      Expression
	Step     Expression // nil ⇒ default of +1
	Body     []Statement
}

func (f *ForLoop) statementNode()      {}
func (f *ForLoop) TokenLiteral() string { return f.Token.Literal }
func (f *ForLoop) Pos() lexer.Position  { return f.Token.Pos }
func (f *ForLoop) String() string {
	s := "FOR " + f.Variable + " := " + f.Start.String() + " TO " + f.End.String()
	if f.Step != nil {
		s += " BY " + f.Step.String()
	}
	return s + " DO ... END_FOR;"
}

// WhileLoop is WHILE cond DO ... END_WHILE: a pre-test loop that may run
// zero times.
type WhileLoop struct {
	Token     lexer.Token
	Condition Expression
	Body      []Statement
}

func (w *WhileLoop) statementNode()      {}
func (w *WhileLoop) TokenLiteral() string { return w.Token.Literal }
func (w *WhileLoop) Pos() lexer.Position  { return w.Token.Pos }
func (w *WhileLoop) String() string {
	return "WHILE " + w.Condition.String() + " DO ... END_WHILE;"
}

// RepeatLoop is REPEAT ... UNTIL cond END_REPEAT: a post-test loop that
// always runs at least once.
type RepeatLoop struct {
	Token     lexer.Token
	Body      []Statement
	Condition Expression
}

func (r *RepeatLoop) statementNode()      {}
func (r *RepeatLoop) TokenLiteral() string { return r.Token.Literal }
func (r *RepeatLoop) Pos() lexer.Position  { return r.Token.Pos }
func (r *RepeatLoop) String() string {
	return "REPEAT ... UNTIL " + r.Condition.String() + " END_REPEAT;"
}

// FBArgument is one `Name := expr` keyword argument to a function-block
// call.
type FBArgument struct {
	Name  string
	Value Expression
}

// FunctionBlockCall is `Instance(Arg1 := e1, Arg2 := e2, ...);` — the
// invocation of a timer, counter, edge detector, or bistable instance (or a
// user-defined function block, which this core treats opaquely). The
// instance's declared type, looked up from the enclosing VAR block, decides
// which runtime kind (TON, CTU, R_TRIG, ...) this call drives.
type FunctionBlockCall struct {
	Token    lexer.Token
	Instance string
	Args     []FBArgument
}

func (f *FunctionBlockCall) statementNode()      {}
func (f *FunctionBlockCall) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionBlockCall) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionBlockCall) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.Name + " := " + a.Value.String()
	}
	return f.Instance + "(" + strings.Join(parts, ", ") + ");"
}
