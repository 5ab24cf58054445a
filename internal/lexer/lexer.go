// Package lexer implements lexical analysis for B-Minor source text,
// turning UTF-8 source into a lazy stream of token.Token values.
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bminor/bminorc/internal/diag"
	"github.com/bminor/bminorc/internal/token"
)

// Lexer is a one-shot, non-restartable scanner over a single source
// string. Errors never abort scanning; they are accumulated in the
// shared diagnostics bag and the lexer keeps producing tokens.
type Lexer struct {
	input        string
	diags        *diag.Bag
	position     int
	readPosition int
	line         int
	column       int
	ch           rune
}

// New creates a Lexer over input, reporting lexical errors into diags.
func New(input string, diags *diag.Bag) *Lexer {
	l := &Lexer{
		input: input,
		diags: diags,
		line:  1,
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.position}
}

func (l *Lexer) newline() {
	l.line++
	l.column = 0
}

// skipWhitespaceAndComments consumes spaces, tabs, carriage returns,
// newlines, "//" line comments, and "/* */" block comments, per
// spec.md §4.1.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '\n':
			l.newline()
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.skipBlockComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipBlockComment() {
	pos := l.currentPos()
	l.readChar() // skip /
	l.readChar() // skip *
	for {
		if l.ch == 0 {
			l.diags.AddAt(diag.Lexical, pos, "unterminated block comment")
			return
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return
		}
		if l.ch == '\n' {
			l.newline()
		}
		l.readChar()
	}
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// readIdentifierOrKeyword reads [A-Za-z_][A-Za-z0-9_]* and classifies it.
func (l *Lexer) readIdentifierOrKeyword(pos token.Position) token.Token {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.position]
	return token.New(token.LookupIdent(lit), lit, pos)
}

// readNumberOrIllegalIdent handles the digit-led productions of spec.md
// §4.1: a digit run that continues into letters is a lexical error
// (identifier starting with a digit); otherwise it is an integer or,
// if a longest-match ".digits" follows, a float literal.
func (l *Lexer) readNumberOrIllegalIdent(pos token.Position) token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}

	// Digit run immediately followed by a letter: reject the whole run
	// as a malformed identifier, per spec.md §4.1.
	if isLetter(l.ch) {
		for isLetter(l.ch) || isDigit(l.ch) {
			l.readChar()
		}
		lit := l.input[start:l.position]
		l.diags.AddAt(diag.Lexical, pos, "invalid identifier %q: identifiers may not start with a digit", lit)
		return token.New(token.ILLEGAL, lit, pos)
	}

	// Only consume the '.' as a decimal point when at least one digit
	// follows, per spec.md §4.1's "[0-9]*\.[0-9]+" production: a
	// trailing bare dot ("123.") is not part of the float literal and
	// is left for the next NextToken call to report on its own.
	isFloat := false
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	lit := l.input[start:l.position]
	if isFloat {
		return token.New(token.FLOAT, lit, pos)
	}
	return token.New(token.INT, lit, pos)
}

// readLeadingDotFloat handles the "." case of FLOAT_LITERAL's
// "[0-9]*\.[0-9]+" production where there are no leading digits, e.g. ".5".
func (l *Lexer) readLeadingDotFloat(pos token.Position) token.Token {
	start := l.position
	l.readChar() // consume '.'
	for isDigit(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.position]
	return token.New(token.FLOAT, lit, pos)
}

var simpleCharEscapes = map[rune]rune{
	'a': '\a', 'b': '\b', 'e': 0x1B, 'f': '\f', 'n': '\n',
	'r': '\r', 't': '\t', 'v': '\v', '\\': '\\', '\'': '\'', '"': '"',
}

// readCharLiteral scans 'c' or escape forms (\x, \0xHH) per spec.md
// §4.1. The caller dispatches on l.ch == '\'' without consuming it, so
// on entry l.ch is still the opening quote.
func (l *Lexer) readCharLiteral(pos token.Position) token.Token {
	start := l.position
	l.readChar() // skip opening '

	var value rune
	ok := true

	switch {
	case l.ch == '\\':
		l.readChar() // skip backslash
		if l.ch == '0' && l.peekChar() == 'x' {
			l.readChar() // skip 0
			l.readChar() // skip x
			hex := make([]rune, 0, 2)
			for i := 0; i < 2 && isHexDigit(l.ch); i++ {
				hex = append(hex, l.ch)
				l.readChar()
			}
			if len(hex) != 2 {
				ok = false
			} else {
				n, err := strconv.ParseInt(string(hex), 16, 32)
				ok = err == nil
				value = rune(n)
			}
		} else if esc, found := simpleCharEscapes[l.ch]; found {
			value = esc
			l.readChar()
		} else {
			ok = false
			if l.ch != 0 {
				l.readChar()
			}
		}
	case l.ch >= 0x20 && l.ch <= 0x7E && l.ch != '\'':
		value = l.ch
		l.readChar()
	default:
		ok = false
		if l.ch != 0 && l.ch != '\n' {
			l.readChar()
		}
	}

	if l.ch == '\'' {
		l.readChar() // skip closing '
	} else {
		ok = false
	}

	lit := l.input[start:l.position]
	if !ok {
		l.diags.AddAt(diag.Lexical, pos, "malformed char literal %q", lit)
		return token.New(token.ILLEGAL, lit, pos)
	}
	return token.New(token.CHAR, string(value), pos)
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// readStringLiteral scans a double-quoted string with standard escapes,
// per spec.md §4.1.
func (l *Lexer) readStringLiteral(pos token.Position) token.Token {
	l.readChar() // skip opening "

	var sb strings.Builder
	terminated := false
	for l.ch != 0 {
		if l.ch == '"' {
			terminated = true
			l.readChar()
			break
		}
		if l.ch == '\\' {
			l.readChar()
			if esc, found := simpleCharEscapes[l.ch]; found {
				sb.WriteRune(esc)
				l.readChar()
				continue
			}
			if l.ch == 0 {
				break
			}
			sb.WriteRune(l.ch)
			l.readChar()
			continue
		}
		if l.ch == '\n' {
			l.newline()
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}

	if !terminated {
		l.diags.AddAt(diag.Lexical, pos, "unterminated string literal")
	}
	return token.New(token.STRING, sb.String(), pos)
}

type twoCharOp struct {
	second rune
	typ    token.Type
}

// twoCharOperators lists the multi-character operators that must be
// matched before their single-character prefix, per spec.md §4.1.
var twoCharOperators = map[rune][]twoCharOp{
	'<': {{'=', token.LE}},
	'>': {{'=', token.GE}},
	'=': {{'=', token.EQ}},
	'!': {{'=', token.NE}},
	'&': {{'&', token.LAND}},
	'|': {{'|', token.LOR}},
	'+': {{'+', token.INC}},
	'-': {{'-', token.DEC}},
}

var singleCharTokens = map[rune]token.Type{
	'+': token.PLUS, '-': token.MINUS, '*': token.STAR, '/': token.SLASH,
	'%': token.PERCENT, '^': token.CARET, '=': token.ASSIGN,
	'(': token.LPAREN, ')': token.RPAREN, '[': token.LBRACK, ']': token.RBRACK,
	'{': token.LBRACE, '}': token.RBRACE, ':': token.COLON,
	';': token.SEMICOLON, ',': token.COMMA, '<': token.LT, '>': token.GT,
	'!': token.NOT,
}

// NextToken produces the next token.Token from the input, applying the
// longest-match / earliest-rule-wins rules of spec.md §4.1.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()
	pos := l.currentPos()

	switch {
	case l.ch == 0:
		return token.New(token.EOF, "", pos)
	case isLetter(l.ch):
		return l.readIdentifierOrKeyword(pos)
	case isDigit(l.ch):
		return l.readNumberOrIllegalIdent(pos)
	case l.ch == '.' && isDigit(l.peekChar()):
		return l.readLeadingDotFloat(pos)
	case l.ch == '\'':
		return l.readCharLiteral(pos)
	case l.ch == '"':
		return l.readStringLiteral(pos)
	}

	if variants, ok := twoCharOperators[l.ch]; ok {
		for _, v := range variants {
			if l.peekChar() == v.second {
				lit := string(l.ch) + string(v.second)
				l.readChar()
				l.readChar()
				return token.New(v.typ, lit, pos)
			}
		}
	}

	if typ, ok := singleCharTokens[l.ch]; ok {
		lit := string(l.ch)
		l.readChar()
		return token.New(typ, lit, pos)
	}

	bad := l.ch
	l.diags.AddAt(diag.Lexical, pos, "illegal character %q", bad)
	l.readChar()
	return token.New(token.ILLEGAL, string(bad), pos)
}

// Tokenize drains the lexer into a slice, mainly for `bminorc scan` and
// tests that want the whole stream at once.
func Tokenize(input string, diags *diag.Bag) []token.Token {
	l := New(input, diags)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}
