package lexer

import (
	"testing"

	"github.com/bminor/bminorc/internal/diag"
	"github.com/bminor/bminorc/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `x: integer = 123;
	y: float = 1.5;`

	tests := []struct {
		expectedLiteral string
		expectedType    token.Type
	}{
		{"x", token.IDENT},
		{":", token.COLON},
		{"integer", token.INTEGER},
		{"=", token.ASSIGN},
		{"123", token.INT},
		{";", token.SEMICOLON},
		{"y", token.IDENT},
		{":", token.COLON},
		{"float", token.FLOATKW},
		{"=", token.ASSIGN},
		{"1.5", token.FLOAT},
		{";", token.SEMICOLON},
		{"", token.EOF},
	}

	d := diag.New()
	l := New(input, d)

	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - type wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
	if d.HasErrors() {
		t.Fatalf("unexpected errors: %v", d.All())
	}
}

func TestKeywords(t *testing.T) {
	input := `array auto boolean char do else false float for function if integer print return string true void while`

	expected := []token.Type{
		token.ARRAY, token.AUTO, token.BOOLEAN, token.CHARKW, token.DO, token.ELSE,
		token.FALSE, token.FLOATKW, token.FOR, token.FUNCTION, token.IF, token.INTEGER,
		token.PRINT, token.RETURN, token.STRINGKW, token.TRUE, token.VOID, token.WHILE,
	}

	d := diag.New()
	l := New(input, d)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d] - type wrong. expected=%s, got=%s", i, want, tok.Type)
		}
	}
}

func TestOperators(t *testing.T) {
	input := `! < <= > >= == != && || ++ --`
	expected := []token.Type{
		token.NOT, token.LT, token.LE, token.GT, token.GE, token.EQ,
		token.NE, token.LAND, token.LOR, token.INC, token.DEC, token.EOF,
	}

	d := diag.New()
	l := New(input, d)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d] - type wrong. expected=%s, got=%s (literal=%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestSingleCharPunctuation(t *testing.T) {
	input := `+ - * / % ^ = ( ) [ ] { } : ; ,`
	expected := []token.Type{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.CARET,
		token.ASSIGN, token.LPAREN, token.RPAREN, token.LBRACK, token.RBRACK,
		token.LBRACE, token.RBRACE, token.COLON, token.SEMICOLON, token.COMMA, token.EOF,
	}

	d := diag.New()
	l := New(input, d)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d] - type wrong. expected=%s, got=%s", i, want, tok.Type)
		}
	}
}

func TestLineComments(t *testing.T) {
	input := "x: integer; // a comment\ny: integer;"
	d := diag.New()
	l := New(input, d)

	tok := l.NextToken() // x
	if tok.Literal != "x" {
		t.Fatalf("expected x, got %q", tok.Literal)
	}
	for l.NextToken().Type != token.SEMICOLON {
	}
	tok = l.NextToken()
	if tok.Literal != "y" || tok.Pos.Line != 2 {
		t.Fatalf("expected y on line 2, got %q on line %d", tok.Literal, tok.Pos.Line)
	}
}

func TestBlockComments(t *testing.T) {
	input := "x /* multi\nline */ = 1;"
	d := diag.New()
	l := New(input, d)

	tok := l.NextToken()
	if tok.Literal != "x" {
		t.Fatalf("expected x, got %q", tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != token.ASSIGN || tok.Pos.Line != 2 {
		t.Fatalf("expected = on line 2, got %q on line %d", tok.Literal, tok.Pos.Line)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	d := diag.New()
	l := New("x /* never closes", d)
	l.NextToken()
	for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
	}
	if d.Count() != 1 {
		t.Fatalf("expected one diagnostic, got %d: %v", d.Count(), d.All())
	}
}

func TestIntegerLiteral(t *testing.T) {
	d := diag.New()
	l := New("x: integer = 123;", d)
	var got token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.INT {
			got = tok
			break
		}
		if tok.Type == token.EOF {
			t.Fatal("no INT token found")
		}
	}
	if got.Literal != "123" || got.Pos.Line != 1 {
		t.Fatalf("expected (INT, 123, 1), got (%s, %s, %d)", got.Type, got.Literal, got.Pos.Line)
	}
	if d.HasErrors() {
		t.Fatalf("unexpected errors: %v", d.All())
	}
}

func TestCharLiteralHexEscape(t *testing.T) {
	d := diag.New()
	l := New(`c: char = '\0x41';`, d)
	var got token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.CHAR {
			got = tok
			break
		}
		if tok.Type == token.EOF {
			t.Fatal("no CHAR token found")
		}
	}
	if got.Literal != "A" {
		t.Fatalf("expected decoded char 'A', got %q", got.Literal)
	}
	if d.HasErrors() {
		t.Fatalf("unexpected errors: %v", d.All())
	}
}

func TestCharLiteralSimpleEscapes(t *testing.T) {
	cases := map[string]string{
		`'\n'`: "\n", `'\t'`: "\t", `'\\'`: "\\", `'\''`: "'",
	}
	for input, want := range cases {
		d := diag.New()
		l := New(input, d)
		tok := l.NextToken()
		if tok.Type != token.CHAR || tok.Literal != want {
			t.Fatalf("input %q: expected CHAR %q, got %s %q", input, want, tok.Type, tok.Literal)
		}
	}
}

func TestStringLiteral(t *testing.T) {
	d := diag.New()
	l := New(`s: string = "hello\nworld";`, d)
	var got token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.STRING {
			got = tok
			break
		}
		if tok.Type == token.EOF {
			t.Fatal("no STRING token found")
		}
	}
	if got.Literal != "hello\nworld" {
		t.Fatalf("expected decoded string, got %q", got.Literal)
	}
}

func TestIdentifierStartingWithDigitIsLexicalError(t *testing.T) {
	d := diag.New()
	toks := Tokenize("1var: integer = 1;", d)
	for _, tok := range toks {
		if tok.Type == token.IDENT && tok.Literal == "1var" {
			t.Fatalf("should not tokenize digit-led run as identifier")
		}
	}
	if d.Count() < 1 {
		t.Fatalf("expected at least one lexical error, got %d", d.Count())
	}
}

func TestFloatBeforeIntegerLongestMatch(t *testing.T) {
	d := diag.New()
	toks := Tokenize("3.14 5 .5", d)
	want := []token.Type{token.FLOAT, token.INT, token.FLOAT, token.EOF}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token[%d]: expected %s, got %s", i, w, toks[i].Type)
		}
	}
}

func TestLineNumbersMonotone(t *testing.T) {
	input := "x: integer;\ny: integer;\n\nz: integer;"
	toks := Tokenize(input, diag.New())
	last := 0
	for _, tok := range toks {
		if tok.Pos.Line < last {
			t.Fatalf("line numbers not monotone: saw %d after %d", tok.Pos.Line, last)
		}
		last = tok.Pos.Line
	}
}

func TestIllegalCharacter(t *testing.T) {
	d := diag.New()
	toks := Tokenize("x @ y", d)
	if toks[1].Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL token for '@', got %s", toks[1].Type)
	}
	if d.Count() != 1 {
		t.Fatalf("expected one diagnostic, got %d", d.Count())
	}
}

func TestTrailingBareDotIsNotPartOfFloat(t *testing.T) {
	// spec.md §4.1's float production is "[0-9]*\.[0-9]+": a dot with
	// no digits after it does not belong to the number.
	d := diag.New()
	toks := Tokenize("123.", d)
	if toks[0].Type != token.INT || toks[0].Literal != "123" {
		t.Fatalf("expected INT(123), got %s(%q)", toks[0].Type, toks[0].Literal)
	}
	if toks[1].Type != token.ILLEGAL || toks[1].Literal != "." {
		t.Fatalf("expected a standalone ILLEGAL '.' token, got %s(%q)", toks[1].Type, toks[1].Literal)
	}
}

func TestDotFollowedByDigitsIsStillAFloat(t *testing.T) {
	d := diag.New()
	toks := Tokenize("123.45", d)
	if toks[0].Type != token.FLOAT || toks[0].Literal != "123.45" {
		t.Fatalf("expected FLOAT(123.45), got %s(%q)", toks[0].Type, toks[0].Literal)
	}
	if d.HasErrors() {
		t.Fatalf("unexpected errors: %s", d.String())
	}
}
