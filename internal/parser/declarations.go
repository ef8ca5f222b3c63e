package parser

import (
	"strconv"
	"strings"

	"github.com/cdilga/ladder-logic-editor-sub000/internal/ast"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/lexer"
)

// parseVariableBlock parses one VAR...END_VAR (or VAR_INPUT, CONSTANT, ...)
// block. A malformed declaration line is skipped to its terminating
// SEMICOLON so the remaining declarations in the block still parse.
func (p *Parser) parseVariableBlock() *ast.VariableBlock {
	token := p.cur
	qualifier := qualifierByToken[p.cur.Type]
	p.nextToken()
	if p.curTokenIs(lexer.CONSTANT) {
		qualifier = ast.QualConstant
		p.nextToken()
	}

	block := &ast.VariableBlock{Token: token, Qualifier: qualifier}
	for !p.curTokenIs(lexer.END_VAR) && !p.curTokenIs(lexer.EOF) {
		decl := p.parseVariableDecl()
		if decl != nil {
			block.Declarations = append(block.Declarations, decl)
		} else {
			p.skipToSemicolon()
		}
	}
	p.expect(lexer.END_VAR)
	p.consumeOptional(lexer.SEMICOLON)
	return block
}

func (p *Parser) parseVariableDecl() *ast.VariableDecl {
	if !p.curTokenIs(lexer.IDENT) {
		p.addError("expected a variable name in declaration, got "+p.cur.Type.String(), p.cur.Pos)
		return nil
	}
	token := p.cur
	names := []string{p.cur.Literal}
	p.nextToken()
	for p.curTokenIs(lexer.COMMA) {
		p.nextToken()
		if !p.curTokenIs(lexer.IDENT) {
			break
		}
		names = append(names, p.cur.Literal)
		p.nextToken()
	}

	if !p.expect(lexer.COLON) {
		return nil
	}
	dataType := p.parseDataType()
	if dataType == nil {
		return nil
	}

	decl := &ast.VariableDecl{Token: token, Names: names, Type: dataType}

	if p.curTokenIs(lexer.AT) {
		p.nextToken()
		if p.curTokenIs(lexer.ADDRESS) {
			decl.AtAddress = p.cur.Literal
			p.nextToken()
		} else {
			p.addError("expected an address literal after AT", p.cur.Pos)
		}
	}

	if p.curTokenIs(lexer.ASSIGN) {
		p.nextToken()
		decl.InitialExpr = p.parseExpression(LOWEST)
	}

	p.expect(lexer.SEMICOLON)
	return decl
}

// parseDataType parses a primitive/user-type name or an ARRAY[r1,r2,...] OF
// elemType declaration.
func (p *Parser) parseDataType() *ast.DataType {
	if p.curTokenIs(lexer.ARRAY) {
		token := p.cur
		p.nextToken()
		if !p.expect(lexer.LBRACK) {
			return nil
		}
		var ranges []ast.ArrayRange
		for {
			start := p.parseIntBound()
			if !p.expect(lexer.DOTDOT) {
				break
			}
			end := p.parseIntBound()
			ranges = append(ranges, ast.ArrayRange{Start: start, End: end})
			if p.curTokenIs(lexer.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
		if !p.expect(lexer.RBRACK) {
			return nil
		}
		if !p.expect(lexer.OF) {
			return nil
		}
		elem := p.parseDataType()
		return &ast.DataType{Token: token, ArrayRanges: ranges, ElementType: elem}
	}

	if !p.curTokenIs(lexer.IDENT) {
		p.addError("expected a type name, got "+p.cur.Type.String(), p.cur.Pos)
		return nil
	}
	token := p.cur
	name := p.cur.Literal
	p.nextToken()
	return &ast.DataType{Token: token, Name: name}
}

// parseIntBound parses a (possibly negated) integer literal used in an
// array range or CASE label, without going through the full expression
// parser — array bounds and case labels are restricted to integer constants.
func (p *Parser) parseIntBound() int64 {
	neg := false
	if p.curTokenIs(lexer.MINUS) {
		neg = true
		p.nextToken()
	}
	if !p.curTokenIs(lexer.INT) {
		p.addError("expected an integer literal, got "+p.cur.Type.String(), p.cur.Pos)
		return 0
	}
	v, err := parseIntLiteralValue(p.cur.Literal)
	if err != nil {
		p.addError("invalid integer literal "+p.cur.Literal+": "+err.Error(), p.cur.Pos)
	}
	p.nextToken()
	if neg {
		v = -v
	}
	return v
}

// parseTypeDefinition parses a STRUCT or enum TYPE...END_TYPE declaration.
func (p *Parser) parseTypeDefinition() *ast.TypeDefinition {
	token := p.cur
	p.nextToken()
	if !p.curTokenIs(lexer.IDENT) {
		p.addError("expected a type name after TYPE", p.cur.Pos)
		p.skipToSemicolon()
		return nil
	}
	name := p.cur.Literal
	p.nextToken()
	if !p.expect(lexer.COLON) {
		p.skipToSemicolon()
		return nil
	}

	def := &ast.TypeDefinition{Token: token, Name: name}

	switch {
	case p.curTokenIs(lexer.STRUCT):
		p.nextToken()
		def.Kind = ast.TypeStruct
		for !p.curTokenIs(lexer.END_STRUCT) && !p.curTokenIs(lexer.EOF) {
			if !p.curTokenIs(lexer.IDENT) {
				p.addError("expected a field name in STRUCT", p.cur.Pos)
				p.skipToSemicolon()
				continue
			}
			fieldName := p.cur.Literal
			p.nextToken()
			if !p.expect(lexer.COLON) {
				p.skipToSemicolon()
				continue
			}
			fieldType := p.parseDataType()
			if fieldType == nil {
				p.skipToSemicolon()
				continue
			}
			def.Fields = append(def.Fields, ast.StructField{Name: fieldName, Type: fieldType})
			p.expect(lexer.SEMICOLON)
		}
		p.expect(lexer.END_STRUCT)
		p.consumeOptional(lexer.SEMICOLON)

	case p.curTokenIs(lexer.LPAREN):
		p.nextToken()
		def.Kind = ast.TypeEnum
		var prevVal int64 = -1
		for {
			if !p.curTokenIs(lexer.IDENT) {
				p.addError("expected an enumerator name", p.cur.Pos)
				break
			}
			enumName := p.cur.Literal
			p.nextToken()
			val := prevVal + 1
			explicit := false
			if p.curTokenIs(lexer.ASSIGN) {
				p.nextToken()
				val = p.parseIntBound()
				explicit = true
			}
			def.Enumerators = append(def.Enumerators, ast.Enumerator{Name: enumName, Value: val, ExplicitValue: explicit})
			prevVal = val
			if p.curTokenIs(lexer.COMMA) {
				p.nextToken()
				continue
			}
			break
		}
		p.expect(lexer.RPAREN)
		p.expect(lexer.SEMICOLON)

	default:
		p.addError("expected STRUCT or ( after TYPE name : ", p.cur.Pos)
		p.skipToSemicolon()
		return def
	}

	p.expect(lexer.END_TYPE)
	p.consumeOptional(lexer.SEMICOLON)
	return def
}

// parseIntLiteralValue parses a lexed integer lexeme: plain decimal, hex
// "16#FF_FF", or binary "2#1010_1", with '_' digit separators stripped.
func parseIntLiteralValue(lit string) (int64, error) {
	if idx := strings.IndexByte(lit, '#'); idx >= 0 {
		base, err := strconv.Atoi(lit[:idx])
		if err != nil {
			return 0, err
		}
		digits := strings.ReplaceAll(lit[idx+1:], "_", "")
		return strconv.ParseInt(digits, base, 64)
	}
	return strconv.ParseInt(strings.ReplaceAll(lit, "_", ""), 10, 64)
}

func parseFloatLiteralValue(lit string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(lit, "_", ""), 64)
}
