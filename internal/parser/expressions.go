package parser

import (
	"github.com/cdilga/ladder-logic-editor-sub000/internal/ast"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/lexer"
)

var tokenToBinaryOp = map[lexer.TokenType]ast.BinaryOp{
	lexer.PLUS: ast.OpAdd, lexer.MINUS: ast.OpSub,
	lexer.ASTERISK: ast.OpMul, lexer.SLASH: ast.OpDiv, lexer.MOD: ast.OpMod,
	lexer.POWER: ast.OpPower,
	lexer.LESS:  ast.OpLt, lexer.GREATER: ast.OpGt,
	lexer.LESS_EQ: ast.OpLe, lexer.GREATER_EQ: ast.OpGe,
	lexer.EQ: ast.OpEq, lexer.NOT_EQ: ast.OpNe,
	lexer.AND: ast.OpAnd, lexer.OR: ast.OpOr, lexer.XOR: ast.OpXor,
}

var timeFamilyKind = map[lexer.TokenType]ast.LiteralKind{
	lexer.TIME: ast.LiteralTime,
	lexer.DATE: ast.LiteralDate,
	lexer.TOD:  ast.LiteralTimeOfDay,
	lexer.DT:   ast.LiteralDateAndTime,
}

// parseExpression is the Pratt-parser entry point: it parses a prefix
// production, then folds in infix operators whose precedence exceeds the
// caller's, left-associatively.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		p.addError("no expression can start with "+p.cur.Type.String(), p.cur.Pos)
		tok := p.cur
		p.nextToken()
		return &ast.Literal{Token: tok, Kind: ast.LiteralInt, Int: 0}
	}
	left := prefix()

	for !p.curTokenIs(lexer.SEMICOLON) && precedence < p.curPrecedence() {
		infix, ok := p.infixFns[p.cur.Type]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIntLiteral() ast.Expression {
	tok := p.cur
	v, err := parseIntLiteralValue(tok.Literal)
	if err != nil {
		p.addError("invalid integer literal "+tok.Literal+": "+err.Error(), tok.Pos)
	}
	p.nextToken()
	return &ast.Literal{Token: tok, Kind: ast.LiteralInt, Int: v}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.cur
	v, err := parseFloatLiteralValue(tok.Literal)
	if err != nil {
		p.addError("invalid real literal "+tok.Literal+": "+err.Error(), tok.Pos)
	}
	p.nextToken()
	return &ast.Literal{Token: tok, Kind: ast.LiteralReal, Real: v}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	tok := p.cur
	v := tok.Type == lexer.TRUE
	p.nextToken()
	return &ast.Literal{Token: tok, Kind: ast.LiteralBool, Bool: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.cur
	p.nextToken()
	return &ast.Literal{Token: tok, Kind: ast.LiteralString, Str: tok.Literal}
}

// parseTimeFamilyLiteral keeps the raw lexeme only: actual millisecond/day
// conversion is done on demand by internal/types' duration parser, so a
// TIME/DATE/TOD/DT literal round-trips losslessly back to source text.
func (p *Parser) parseTimeFamilyLiteral() ast.Expression {
	tok := p.cur
	kind := timeFamilyKind[tok.Type]
	p.nextToken()
	return &ast.Literal{Token: tok, Kind: kind, Raw: tok.Literal}
}

func (p *Parser) parseGroupedExpr() ast.Expression {
	tok := p.cur
	p.nextToken()
	inner := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	return &ast.ParenExpr{Token: tok, Inner: inner}
}

func (p *Parser) parseUnaryMinus() ast.Expression {
	tok := p.cur
	p.nextToken()
	operand := p.parseExpression(UNARY)
	return &ast.UnaryExpr{Token: tok, Operator: ast.OpNeg, Operand: operand}
}

func (p *Parser) parseUnaryNot() ast.Expression {
	tok := p.cur
	p.nextToken()
	operand := p.parseExpression(UNARY)
	return &ast.UnaryExpr{Token: tok, Operator: ast.OpNot, Operand: operand}
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	tok := p.cur
	op := tokenToBinaryOp[tok.Type]
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	return &ast.BinaryExpr{Token: tok, Left: left, Operator: op, Right: right}
}

// parseIdentOrCallOrVariable disambiguates a built-in function call,
// `Name(args...)`, from a variable access path, `a.b.c[i,j]`: a plain name
// immediately followed by '(' is a call, everything else is a path.
func (p *Parser) parseIdentOrCallOrVariable() ast.Expression {
	tok := p.cur
	name := p.cur.Literal
	p.nextToken()

	if p.curTokenIs(lexer.LPAREN) {
		p.nextToken()
		var args []ast.Expression
		if !p.curTokenIs(lexer.RPAREN) {
			args = append(args, p.parseExpression(LOWEST))
			for p.curTokenIs(lexer.COMMA) {
				p.nextToken()
				args = append(args, p.parseExpression(LOWEST))
			}
		}
		p.expect(lexer.RPAREN)
		return &ast.FunctionCall{Token: tok, Name: name, Arguments: args}
	}

	path := []string{name}
	for p.curTokenIs(lexer.DOT) {
		p.nextToken()
		if !p.curTokenIs(lexer.IDENT) {
			p.addError("expected a field name after '.'", p.cur.Pos)
			break
		}
		path = append(path, p.cur.Literal)
		p.nextToken()
	}

	var indices []ast.Expression
	for p.curTokenIs(lexer.LBRACK) {
		p.nextToken()
		indices = append(indices, p.parseExpression(LOWEST))
		for p.curTokenIs(lexer.COMMA) {
			p.nextToken()
			indices = append(indices, p.parseExpression(LOWEST))
		}
		p.expect(lexer.RBRACK)
	}

	return &ast.Variable{Token: tok, Path: path, Indices: indices}
}

// parseVariable parses a Variable node directly (used where the grammar
// requires an assignable path, e.g. the LHS of an assignment).
func (p *Parser) parseVariable() *ast.Variable {
	expr := p.parseIdentOrCallOrVariable()
	if v, ok := expr.(*ast.Variable); ok {
		return v
	}
	p.addError("expected a variable, not a function call", expr.Pos())
	return &ast.Variable{Token: p.cur, Path: []string{expr.TokenLiteral()}}
}
