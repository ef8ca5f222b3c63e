// Package parser implements a recursive-descent Structured Text parser with
// Pratt expression parsing.
//
// The parser never aborts on a syntax error: it records a diagnostic on
// Program.Errors, skips forward to a recovery point, and keeps parsing the
// rest of the source. This lets the editor keep rendering a live ladder
// diagram even while the user is mid-keystroke.
package parser

import (
	"fmt"

	"github.com/cdilga/ladder-logic-editor-sub000/internal/ast"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/lexer"
)

// Precedence levels, tightest to loosest mirrors the grammar's own table
// read in reverse: POWER binds tightest, OR loosest.
const (
	LOWEST int = iota
	OR_PREC
	XOR_PREC
	AND_PREC
	RELATIONAL
	ADDITIVE
	MULTIPLICATIVE
	UNARY
	POWER_PREC
)

var precedences = map[lexer.TokenType]int{
	lexer.OR:  OR_PREC,
	lexer.XOR: XOR_PREC,
	lexer.AND: AND_PREC,

	lexer.LESS: RELATIONAL, lexer.GREATER: RELATIONAL,
	lexer.LESS_EQ: RELATIONAL, lexer.GREATER_EQ: RELATIONAL,
	lexer.EQ: RELATIONAL, lexer.NOT_EQ: RELATIONAL,

	lexer.PLUS: ADDITIVE, lexer.MINUS: ADDITIVE,

	lexer.ASTERISK: MULTIPLICATIVE, lexer.SLASH: MULTIPLICATIVE, lexer.MOD: MULTIPLICATIVE,

	lexer.POWER: POWER_PREC,
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser turns a token stream into an *ast.Program.
type Parser struct {
	l    *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token

	errors []ast.ParseError

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New builds a Parser over l and primes the first two tokens.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:  p.parseIdentOrCallOrVariable,
		lexer.INT:    p.parseIntLiteral,
		lexer.FLOAT:  p.parseFloatLiteral,
		lexer.TRUE:   p.parseBoolLiteral,
		lexer.FALSE:  p.parseBoolLiteral,
		lexer.STRING: p.parseStringLiteral,
		lexer.TIME:   p.parseTimeFamilyLiteral,
		lexer.DATE:   p.parseTimeFamilyLiteral,
		lexer.TOD:    p.parseTimeFamilyLiteral,
		lexer.DT:     p.parseTimeFamilyLiteral,
		lexer.LPAREN: p.parseGroupedExpr,
		lexer.MINUS:  p.parseUnaryMinus,
		lexer.NOT:    p.parseUnaryNot,
	}

	p.infixFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS: p.parseBinary, lexer.MINUS: p.parseBinary,
		lexer.ASTERISK: p.parseBinary, lexer.SLASH: p.parseBinary, lexer.MOD: p.parseBinary,
		lexer.POWER: p.parseBinary,
		lexer.LESS:  p.parseBinary, lexer.GREATER: p.parseBinary,
		lexer.LESS_EQ: p.parseBinary, lexer.GREATER_EQ: p.parseBinary,
		lexer.EQ: p.parseBinary, lexer.NOT_EQ: p.parseBinary,
		lexer.AND: p.parseBinary, lexer.OR: p.parseBinary, lexer.XOR: p.parseBinary,
	}

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool { return p.cur.Type == t }

func (p *Parser) addError(msg string, pos lexer.Position) {
	p.errors = append(p.errors, ast.ParseError{Message: msg, Pos: pos})
}

// expect consumes the current token if it matches tt; otherwise it records a
// diagnostic and leaves the cursor where it is so the caller's own recovery
// (usually skipping to the next SEMICOLON) can take over.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.curTokenIs(tt) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf("expected %s, got %s %q", tt, p.cur.Type, p.cur.Literal), p.cur.Pos)
	return false
}

func (p *Parser) consumeOptional(tt lexer.TokenType) {
	if p.curTokenIs(tt) {
		p.nextToken()
	}
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return LOWEST
}

// skipToSemicolon is the recovery strategy for a broken statement or
// declaration line: discard tokens up to and including the next SEMICOLON
// (or EOF), so the rest of the program still parses.
func (p *Parser) skipToSemicolon() {
	for !p.curTokenIs(lexer.SEMICOLON) && !p.curTokenIs(lexer.EOF) {
		p.nextToken()
	}
	p.consumeOptional(lexer.SEMICOLON)
}

// ParseProgram parses the entire token stream into a Program. A declaration
// or statement that fails to parse is skipped; parsing always reaches EOF.
func ParseProgram(l *lexer.Lexer) *ast.Program {
	p := New(l)
	return p.parseProgram()
}

// Parse is a convenience wrapper over source text.
func Parse(source string) *ast.Program {
	return ParseProgram(lexer.New(source))
}

func (p *Parser) parseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curTokenIs(lexer.EOF) {
		startPos := p.cur.Pos

		switch {
		case p.curTokenIsQualifier():
			if d := p.parseVariableBlock(); d != nil {
				program.Declarations = append(program.Declarations, d)
			}
		case p.curTokenIs(lexer.TYPE):
			if d := p.parseTypeDefinition(); d != nil {
				program.Declarations = append(program.Declarations, d)
			}
		case p.curTokenIs(lexer.PROGRAM):
			p.nextToken()
			if p.curTokenIs(lexer.IDENT) {
				program.Name = p.cur.Literal
				p.nextToken()
			}
		case p.curTokenIs(lexer.END_PROGRAM):
			p.nextToken()
		case p.curTokenIs(lexer.FUNCTION_BLOCK), p.curTokenIs(lexer.FUNCTION):
			// User-defined FUNCTION/FUNCTION_BLOCK bodies are out of scope for
			// this core (it executes a flat program); skip the header line so
			// a file containing one doesn't desync the whole parse.
			p.nextToken()
		case p.curTokenIs(lexer.END_FUNCTION_BLOCK), p.curTokenIs(lexer.END_FUNCTION):
			p.nextToken()
		default:
			if s := p.parseStatement(); s != nil {
				program.Statements = append(program.Statements, s)
			}
		}

		if p.cur.Pos == startPos && !p.curTokenIs(lexer.EOF) {
			p.addError("unexpected token: "+p.cur.Type.String()+" "+fmt.Sprintf("%q", p.cur.Literal), p.cur.Pos)
			p.nextToken()
		}
	}

	program.Errors = p.errors
	for _, le := range p.l.Errors() {
		program.Errors = append(program.Errors, ast.ParseError{Message: le.Message, Pos: le.Pos})
	}
	return program
}

func (p *Parser) curTokenIsQualifier() bool {
	switch p.cur.Type {
	case lexer.VAR, lexer.VAR_INPUT, lexer.VAR_OUTPUT, lexer.VAR_IN_OUT,
		lexer.VAR_GLOBAL, lexer.VAR_EXTERNAL, lexer.CONSTANT:
		return true
	}
	return false
}

var qualifierByToken = map[lexer.TokenType]ast.Qualifier{
	lexer.VAR:          ast.QualVar,
	lexer.VAR_INPUT:    ast.QualVarInput,
	lexer.VAR_OUTPUT:   ast.QualVarOutput,
	lexer.VAR_IN_OUT:   ast.QualVarInOut,
	lexer.VAR_GLOBAL:   ast.QualVarGlobal,
	lexer.VAR_EXTERNAL: ast.QualVarExternal,
	lexer.CONSTANT:     ast.QualConstant,
}
