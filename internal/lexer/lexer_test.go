package lexer

import "testing"

func lexAll(t *testing.T, input string) []Token {
	t.Helper()
	l := New(input)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}
	return toks
}

func TestLexerKeywordsCaseInsensitive(t *testing.T) {
	toks := lexAll(t, "if THEN EnD_iF")
	want := []TokenType{IF, THEN, END_IF, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

func TestLexerIntegerBases(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"16#FF", "16#FF"},
		{"2#1010", "2#1010"},
		{"1_000_000", "1_000_000"},
	}
	for _, tt := range tests {
		toks := lexAll(t, tt.input)
		if toks[0].Type != INT {
			t.Errorf("%q: got type %s, want INT", tt.input, toks[0].Type)
		}
		if toks[0].Literal != tt.want {
			t.Errorf("%q: got literal %q, want %q", tt.input, toks[0].Literal, tt.want)
		}
	}
}

func TestLexerRealLiteral(t *testing.T) {
	toks := lexAll(t, "3.14 1.5e10 2.0E-3")
	for i, lit := range []string{"3.14", "1.5e10", "2.0E-3"} {
		if toks[i].Type != FLOAT {
			t.Errorf("token %d: got type %s, want FLOAT", i, toks[i].Type)
		}
		if toks[i].Literal != lit {
			t.Errorf("token %d: got literal %q, want %q", i, toks[i].Literal, lit)
		}
	}
}

// The spec calls out that "ms" must be tried before "m" or "s" so a literal
// like T#500ms lexes as one TIME token with body "500ms", not "500m"
// followed by a stray identifier "s".
func TestLexerTimeLiteralPrefixes(t *testing.T) {
	tests := []struct {
		input    string
		wantType TokenType
		wantBody string
	}{
		{"T#500ms", TIME, "500ms"},
		{"TIME#1h30m", TIME, "1h30m"},
		{"D#2024-01-15", DATE, "2024-01-15"},
		{"DATE#2024-01-15", DATE, "2024-01-15"},
		{"TOD#14:30:00.500", TOD, "14:30:00.500"},
		{"TIME_OF_DAY#14:30:00", TOD, "14:30:00"},
		{"DT#2024-01-15-14:30:00", DT, "2024-01-15-14:30:00"},
		{"DATE_AND_TIME#2024-01-15-14:30:00", DT, "2024-01-15-14:30:00"},
	}
	for _, tt := range tests {
		toks := lexAll(t, tt.input)
		if toks[0].Type != tt.wantType {
			t.Errorf("%q: got type %s, want %s", tt.input, toks[0].Type, tt.wantType)
		}
		if toks[0].Literal != tt.wantBody {
			t.Errorf("%q: got body %q, want %q", tt.input, toks[0].Literal, tt.wantBody)
		}
	}
}

func TestLexerStringLiterals(t *testing.T) {
	toks := lexAll(t, `'hello' "world"`)
	if toks[0].Type != STRING || toks[0].Literal != "hello" {
		t.Errorf("single-quoted string: got %v", toks[0])
	}
	if toks[1].Type != STRING || toks[1].Literal != "world" {
		t.Errorf("double-quoted string: got %v", toks[1])
	}
}

func TestLexerUnterminatedStringRecordsErrorButKeepsScanning(t *testing.T) {
	l := New(`'unterminated
x := 1;`)
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
	}
	if len(l.Errors()) == 0 {
		t.Fatal("expected an unterminated-string error")
	}
}

func TestLexerOperatorsAndPunctuation(t *testing.T) {
	toks := lexAll(t, ":= <> <= >= ** .. [ ] ( ) ;")
	want := []TokenType{ASSIGN, NOT_EQ, LESS_EQ, GREATER_EQ, POWER, DOTDOT,
		LBRACK, RBRACK, LPAREN, RPAREN, SEMICOLON, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

func TestLexerHardwareAddress(t *testing.T) {
	toks := lexAll(t, "AT %IX0.0")
	if toks[0].Type != AT {
		t.Fatalf("got %s, want AT", toks[0].Type)
	}
	if toks[1].Type != ADDRESS || toks[1].Literal != "%IX0.0" {
		t.Errorf("got %v, want ADDRESS %%IX0.0", toks[1])
	}
}

func TestLexerComments(t *testing.T) {
	toks := lexAll(t, "x := 1; // trailing\ny := (* block *) 2; { brace } z := 3;")
	var idents []string
	for _, tok := range toks {
		if tok.Type == IDENT {
			idents = append(idents, tok.Literal)
		}
	}
	want := []string{"x", "y", "z"}
	if len(idents) != len(want) {
		t.Fatalf("got idents %v, want %v", idents, want)
	}
	for i := range want {
		if idents[i] != want[i] {
			t.Errorf("ident %d: got %q, want %q", i, idents[i], want[i])
		}
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	l := New("a b c")
	first := l.Peek(0)
	second := l.Peek(1)
	if first.Literal != "a" || second.Literal != "b" {
		t.Fatalf("Peek(0)=%v Peek(1)=%v, want a, b", first, second)
	}
	got := l.NextToken()
	if got.Literal != "a" {
		t.Fatalf("NextToken() = %v, want a (peek must not consume)", got)
	}
}

func TestLexerIllegalCharacterKeepsScanning(t *testing.T) {
	toks := lexAll(t, "x := 1 @ y := 2;")
	if len(toks) == 0 {
		t.Fatal("expected tokens")
	}
	sawIllegal := false
	for _, tok := range toks {
		if tok.Type == ILLEGAL {
			sawIllegal = true
		}
	}
	if !sawIllegal {
		t.Error("expected an ILLEGAL token for '@'")
	}
	// scanning continues past the illegal char to EOF
	if toks[len(toks)-1].Type != EOF {
		t.Error("lexer did not reach EOF after illegal character")
	}
}
