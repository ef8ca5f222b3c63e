package parser

import (
	"github.com/cdilga/ladder-logic-editor-sub000/internal/ast"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/lexer"
)

// parseStatement dispatches on the current token. An identifier starts
// either an assignment (`x := ...;`) or a function-block call
// (`Instance(...)`); everything else is resolved by its leading keyword.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.CASE:
		return p.parseCaseStatement()
	case lexer.FOR:
		return p.parseForLoop()
	case lexer.WHILE:
		return p.parseWhileLoop()
	case lexer.REPEAT:
		return p.parseRepeatLoop()
	case lexer.IDENT:
		return p.parseAssignmentOrFBCall()
	default:
		p.addError("expected a statement, got "+p.cur.Type.String(), p.cur.Pos)
		p.skipToSemicolon()
		return nil
	}
}

// parseStatementsUntil parses statements until the current token matches one
// of enders (or EOF), guaranteeing forward progress so a malformed statement
// can never wedge the parser.
func (p *Parser) parseStatementsUntil(enders ...lexer.TokenType) []ast.Statement {
	var stmts []ast.Statement
	for !p.curTokenIsAnyOf(enders) && !p.curTokenIs(lexer.EOF) {
		before := p.cur.Pos
		s := p.parseStatement()
		if s != nil {
			stmts = append(stmts, s)
		}
		if p.cur.Pos == before {
			p.nextToken()
		}
	}
	return stmts
}

func (p *Parser) curTokenIsAnyOf(types []lexer.TokenType) bool {
	for _, t := range types {
		if p.cur.Type == t {
			return true
		}
	}
	return false
}

func (p *Parser) parseAssignmentOrFBCall() ast.Statement {
	startToken := p.cur
	if p.peek.Type == lexer.LPAREN {
		name := p.cur.Literal
		p.nextToken()
		return p.parseFunctionBlockCallArgs(startToken, name)
	}
	v := p.parseVariable()

	if p.curTokenIs(lexer.ASSIGN) {
		p.nextToken()
		value := p.parseExpression(LOWEST)
		p.expect(lexer.SEMICOLON)
		return &ast.Assignment{Token: startToken, Left: v, Value: value}
	}

	if p.curTokenIs(lexer.LPAREN) && len(v.Path) == 1 && len(v.Indices) == 0 {
		return p.parseFunctionBlockCallArgs(startToken, v.Path[0])
	}

	p.addError("expected ':=' or '(' after "+v.String(), p.cur.Pos)
	p.skipToSemicolon()
	return nil
}

func (p *Parser) parseFunctionBlockCallArgs(token lexer.Token, instance string) ast.Statement {
	p.nextToken() // consume '('
	var args []ast.FBArgument
	if !p.curTokenIs(lexer.RPAREN) {
		for {
			if !p.curTokenIs(lexer.IDENT) {
				p.addError("expected a keyword argument name, got "+p.cur.Type.String(), p.cur.Pos)
				break
			}
			argName := p.cur.Literal
			p.nextToken()
			if !p.expect(lexer.ASSIGN) {
				break
			}
			val := p.parseExpression(LOWEST)
			args = append(args, ast.FBArgument{Name: argName, Value: val})
			if p.curTokenIs(lexer.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
	}
	p.expect(lexer.RPAREN)
	p.expect(lexer.SEMICOLON)
	return &ast.FunctionBlockCall{Token: token, Instance: instance, Args: args}
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	token := p.cur
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.THEN)

	stmt := &ast.IfStatement{Token: token, Condition: cond}
	stmt.Then = p.parseStatementsUntil(lexer.ELSIF, lexer.ELSE, lexer.END_IF)

	for p.curTokenIs(lexer.ELSIF) {
		p.nextToken()
		c := p.parseExpression(LOWEST)
		p.expect(lexer.THEN)
		body := p.parseStatementsUntil(lexer.ELSIF, lexer.ELSE, lexer.END_IF)
		stmt.Elsifs = append(stmt.Elsifs, ast.ElsifBranch{Condition: c, Body: body})
	}

	if p.curTokenIs(lexer.ELSE) {
		p.nextToken()
		stmt.Else = p.parseStatementsUntil(lexer.END_IF)
	}

	p.expect(lexer.END_IF)
	p.consumeOptional(lexer.SEMICOLON)
	return stmt
}

func (p *Parser) parseCaseStatement() *ast.CaseStatement {
	token := p.cur
	p.nextToken()
	selector := p.parseExpression(LOWEST)
	p.expect(lexer.OF)

	stmt := &ast.CaseStatement{Token: token, Selector: selector}
	for p.curTokenIs(lexer.INT) || p.curTokenIs(lexer.MINUS) {
		labels := p.parseCaseLabelList()
		p.expect(lexer.COLON)
		body := p.parseCaseBranchBody()
		stmt.Branches = append(stmt.Branches, ast.CaseBranch{Labels: labels, Body: body})
	}

	if p.curTokenIs(lexer.ELSE) {
		p.nextToken()
		stmt.Else = p.parseCaseBranchBody()
	}

	p.expect(lexer.END_CASE)
	p.consumeOptional(lexer.SEMICOLON)
	return stmt
}

var caseBranchEnders = []lexer.TokenType{lexer.ELSE, lexer.END_CASE}

func (p *Parser) parseCaseBranchBody() []ast.Statement {
	var stmts []ast.Statement
	for !p.curTokenIs(lexer.INT) && !p.curTokenIs(lexer.MINUS) &&
		!p.curTokenIsAnyOf(caseBranchEnders) && !p.curTokenIs(lexer.EOF) {
		before := p.cur.Pos
		s := p.parseStatement()
		if s != nil {
			stmts = append(stmts, s)
		}
		if p.cur.Pos == before {
			p.nextToken()
		}
	}
	return stmts
}

func (p *Parser) parseCaseLabelList() []ast.CaseLabel {
	var labels []ast.CaseLabel
	for {
		v := p.parseIntBound()
		label := ast.CaseLabel{Value: v}
		if p.curTokenIs(lexer.DOTDOT) {
			p.nextToken()
			label.IsRange = true
			label.RangeEnd = p.parseIntBound()
		}
		labels = append(labels, label)
		if p.curTokenIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	return labels
}

func (p *Parser) parseForLoop() *ast.ForLoop {
	token := p.cur
	p.nextToken()
	if !p.curTokenIs(lexer.IDENT) {
		p.addError("expected a loop variable name after FOR", p.cur.Pos)
	}
	varName := p.cur.Literal
	p.nextToken()
	p.expect(lexer.ASSIGN)
	start := p.parseExpression(LOWEST)
	p.expect(lexer.TO)
	end := p.parseExpression(LOWEST)

	var step ast.Expression
	if p.curTokenIs(lexer.BY) {
		p.nextToken()
		step = p.parseExpression(LOWEST)
	}

	p.expect(lexer.DO)
	body := p.parseStatementsUntil(lexer.END_FOR)
	p.expect(lexer.END_FOR)
	p.consumeOptional(lexer.SEMICOLON)

	return &ast.ForLoop{Token: token, Variable: varName, Start: start, End: end, Step: step, Body: body}
}

func (p *Parser) parseWhileLoop() *ast.WhileLoop {
	token := p.cur
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.DO)
	body := p.parseStatementsUntil(lexer.END_WHILE)
	p.expect(lexer.END_WHILE)
	p.consumeOptional(lexer.SEMICOLON)
	return &ast.WhileLoop{Token: token, Condition: cond, Body: body}
}

func (p *Parser) parseRepeatLoop() *ast.RepeatLoop {
	token := p.cur
	p.nextToken()
	body := p.parseStatementsUntil(lexer.UNTIL)
	p.expect(lexer.UNTIL)
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.END_REPEAT)
	p.consumeOptional(lexer.SEMICOLON)
	return &ast.RepeatLoop{Token: token, Body: body, Condition: cond}
}
