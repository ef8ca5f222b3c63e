// Package ast defines the abstract syntax tree produced by the Structured
// Text parser: declarations, expressions, and statements.
package ast

import (
	"bytes"

	"github.com/cdilga/ladder-logic-editor-sub000/internal/lexer"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Declaration is any top-level declaration: a type definition or a
// variable block.
type Declaration interface {
	Node
	declarationNode()
}

// Program is the root of the AST: the parsed declarations and executable
// statements of one source text, plus any diagnostics gathered while
// parsing it. A syntax error never aborts parsing — it is localized to one
// declaration or statement, and Errors accumulates alongside a still-usable
// Declarations/Statements tree.
type Program struct {
	Name         string
	Declarations []Declaration
	Statements   []Statement
	Errors       []ParseError
}

// ParseError is one diagnostic produced while parsing.
type ParseError struct {
	Message string
	Pos     lexer.Position
}

func (p *Program) TokenLiteral() string {
	if len(p.Declarations) > 0 {
		return p.Declarations[0].TokenLiteral()
	}
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, d := range p.Declarations {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (p *Program) Pos() lexer.Position {
	if len(p.Declarations) > 0 {
		return p.Declarations[0].Pos()
	}
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

// Identifier is a bare name reference, e.g. a variable or type name.
type Identifier struct {
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()        {}
func (i *Identifier) TokenLiteral() string   { return i.Token.Literal }
func (i *Identifier) String() string         { return i.Value }
func (i *Identifier) Pos() lexer.Position    { return i.Token.Pos }
