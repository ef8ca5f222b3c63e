// Package lexer turns IEC 61131-3 Structured Text source into a stream of tokens.
package lexer

import "fmt"

// Position identifies a location in the source text.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// TokenType identifies the lexical category of a Token.
type TokenType int

// Token is a single lexical unit: its type, the raw text that produced it
// (preserved verbatim so TIME/DATE/TOD/DT literals round-trip losslessly),
// and its source position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// NewToken builds a Token from its parts.
func NewToken(t TokenType, literal string, pos Position) Token {
	return Token{Type: t, Literal: literal, Pos: pos}
}

// Length returns the rune length of the token's literal text, used to size
// caret underlines in diagnostics.
func (t Token) Length() int {
	n := 0
	for range t.Literal {
		n++
	}
	if n == 0 {
		return 1
	}
	return n
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
}
