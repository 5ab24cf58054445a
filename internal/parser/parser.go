// Package parser implements a hand-written recursive-descent parser
// for B-Minor, grounded on original_source/bminor/parser.py's grammar
// (an SLY LALR grammar) but re-expressed the way a single-token-lookahead
// Go parser naturally would.
//
// original_source/bminor/parser.py stratifies statements into
// "closed_stmt"/"open_stmt" productions purely so an LALR(1) grammar can
// resolve the dangling-else ambiguity without conflicts. A hand-written
// recursive-descent parser does not need that stratification: parsing
// the "then" branch of an if greedily, and only afterward checking for
// a trailing "else", already binds every else to its nearest unmatched
// if — the same rule the stratified grammar encodes, reached by a
// simpler route. That simplification is recorded in DESIGN.md.
package parser

import (
	"strconv"

	"github.com/bminor/bminorc/internal/ast"
	"github.com/bminor/bminorc/internal/diag"
	"github.com/bminor/bminorc/internal/lexer"
	"github.com/bminor/bminorc/internal/token"
	"github.com/bminor/bminorc/internal/types"
)

// Parser turns a token stream into an *ast.Program, reporting syntax
// errors into a shared diagnostics bag rather than stopping at the
// first one.
type Parser struct {
	l     *lexer.Lexer
	diags *diag.Bag

	cur  token.Token
	peek token.Token
}

// New creates a Parser reading from l and reporting into diags.
func New(l *lexer.Lexer, diags *diag.Bag) *Parser {
	p := &Parser{l: l, diags: diags}
	p.next()
	p.next()
	return p
}

// Parse lexes src and parses it into a Program, reporting both lexical
// and syntax errors into diags.
func Parse(src string, diags *diag.Bag) *ast.Program {
	l := lexer.New(src, diags)
	p := New(l, diags)
	return p.ParseProgram()
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek.Type == t }

func (p *Parser) errorf(format string, args ...any) {
	p.diags.AddAt(diag.Syntax, p.cur.Pos, format, args...)
}

// expect reports a syntax error if cur is not t; it never advances.
func (p *Parser) expect(t token.Type) bool {
	if p.curIs(t) {
		return true
	}
	p.errorf("expected %s, got %s (%q)", t, p.cur.Type, p.cur.Literal)
	return false
}

// recover skips tokens until a statement boundary, for panic-mode
// error recovery after a malformed declaration or statement.
func (p *Parser) recover() {
	for !p.curIs(token.SEMICOLON) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		p.next()
	}
	if p.curIs(token.SEMICOLON) {
		p.next()
	}
}

// ---- Program and declarations ---------------------------------------

// ParseProgram parses a full translation unit: a list of top-level
// declarations, per spec.md §4.2.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		before := p.cur
		d := p.parseDecl()
		if d != nil {
			prog.Decls = append(prog.Decls, d)
		}
		if p.cur == before {
			// Parsing a decl must always make progress; guard against an
			// infinite loop on unrecognized input.
			p.next()
		}
	}
	return prog
}

// tagFromKeyword maps a primitive type keyword token to its types.Tag.
func tagFromKeyword(t token.Type) (types.Tag, bool) {
	switch t {
	case token.INTEGER:
		return types.Integer, true
	case token.FLOATKW:
		return types.Float, true
	case token.BOOLEAN:
		return types.Boolean, true
	case token.CHARKW:
		return types.Char, true
	case token.STRINGKW:
		return types.String, true
	case token.VOID:
		return types.Void, true
	case token.AUTO:
		// "auto" has no fixed tag and is represented as Invalid. No later
		// pass infers a type for it, so the checker rejects its uses.
		return types.Invalid, true
	default:
		return types.Invalid, false
	}
}

// parseTypeSpec parses a type_simple or (possibly nested) array type,
// returning the full Type and, for an array type, the outermost
// declared size expression (nil when omitted or not an array).
func (p *Parser) parseTypeSpec() (types.Type, ast.Expr) {
	if p.curIs(token.ARRAY) {
		p.next()
		p.expect(token.LBRACK)
		p.next()
		var size ast.Expr
		if !p.curIs(token.RBRACK) {
			size = p.parseExpression()
		}
		p.expect(token.RBRACK)
		p.next()
		elem, _ := p.parseTypeSpec()
		return types.Array(elem, constIntOrDefault(size, -1)), size
	}
	tag, ok := tagFromKeyword(p.cur.Type)
	if !ok {
		p.errorf("expected a type, got %s (%q)", p.cur.Type, p.cur.Literal)
		p.next()
		return types.InvalidType, nil
	}
	p.next()
	return types.Primitive(tag), nil
}

// constIntOrDefault statically folds a handful of trivial literal
// shapes (plain integer literals and their unary negation) so array
// types can carry a known size when one is syntactically obvious;
// anything more complex is left to the semantic checker.
func constIntOrDefault(e ast.Expr, def int) int {
	switch v := e.(type) {
	case nil:
		return def
	case *ast.IntegerLiteral:
		return int(v.Value)
	case *ast.UnaryExpr:
		if v.Operator == "-" {
			if inner, ok := v.Operand.(*ast.IntegerLiteral); ok {
				return -int(inner.Value)
			}
		}
	}
	return def
}

// parseDecl parses one top-level or local declaration: a variable, an
// array, or a function (original_source/bminor/parser.py's "decl").
func (p *Parser) parseDecl() ast.Decl {
	if !p.curIs(token.IDENT) {
		p.errorf("expected a declaration, got %s (%q)", p.cur.Type, p.cur.Literal)
		p.recover()
		return nil
	}
	nameTok := p.cur
	name := p.cur.Literal
	p.next()
	if !p.expect(token.COLON) {
		p.recover()
		return nil
	}
	p.next()

	if p.curIs(token.FUNCTION) {
		return p.parseFuncDecl(nameTok, name)
	}

	t, sizeExpr := p.parseTypeSpec()
	if t.IsArray() {
		return p.parseArrayDeclTail(nameTok, name, t, sizeExpr)
	}
	return p.parseVarDeclTail(nameTok, name, t)
}

func (p *Parser) parseVarDeclTail(tok token.Token, name string, t types.Type) *ast.VarDecl {
	var val ast.Expr
	if p.curIs(token.ASSIGN) {
		p.next()
		val = p.parseExpression()
	}
	if !p.expect(token.SEMICOLON) {
		p.recover()
	} else {
		p.next()
	}
	return &ast.VarDecl{Token: tok, Name: name, Type: t, Value: val}
}

func (p *Parser) parseArrayDeclTail(tok token.Token, name string, t types.Type, sizeExpr ast.Expr) *ast.ArrayDecl {
	var init []ast.Expr
	if p.curIs(token.ASSIGN) {
		p.next()
		if p.expect(token.LBRACE) {
			p.next()
			init = p.parseExprListUntil(token.RBRACE)
			p.expect(token.RBRACE)
			p.next()
		}
	}
	if !p.expect(token.SEMICOLON) {
		p.recover()
	} else {
		p.next()
	}
	return &ast.ArrayDecl{Token: tok, Name: name, Elem: *t.Elem, Size: sizeExpr, Init: init}
}

func (p *Parser) parseFuncDecl(tok token.Token, name string) *ast.FuncDecl {
	p.next() // consume 'function'
	retTag, ok := tagFromKeyword(p.cur.Type)
	if !ok {
		p.errorf("expected a return type, got %s (%q)", p.cur.Type, p.cur.Literal)
	}
	p.next()
	if !p.expect(token.LPAREN) {
		p.recover()
		return &ast.FuncDecl{Token: tok, Name: name, Return: types.Primitive(retTag)}
	}
	p.next()
	var params []ast.Param
	if !p.curIs(token.RPAREN) {
		params = p.parseParamList()
	}
	p.expect(token.RPAREN)
	p.next()

	decl := &ast.FuncDecl{Token: tok, Name: name, Return: types.Primitive(retTag), Params: params}
	// The body may be written "= { ... };" or just "{ ... }".
	if p.curIs(token.ASSIGN) && p.peekIs(token.LBRACE) {
		p.next()
	}
	if p.curIs(token.LBRACE) {
		decl.Body = p.parseBlock()
		if p.curIs(token.SEMICOLON) {
			p.next()
		}
		return decl
	}
	if !p.expect(token.SEMICOLON) {
		p.recover()
	} else {
		p.next()
	}
	return decl
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	params = append(params, p.parseParam())
	for p.curIs(token.COMMA) {
		p.next()
		params = append(params, p.parseParam())
	}
	return params
}

func (p *Parser) parseParam() ast.Param {
	if !p.curIs(token.IDENT) {
		p.errorf("expected a parameter name, got %s (%q)", p.cur.Type, p.cur.Literal)
		return &ast.VarParam{Token: p.cur, Name: "<error>", Type: types.InvalidType}
	}
	tok := p.cur
	name := p.cur.Literal
	p.next()
	p.expect(token.COLON)
	p.next()
	t, sizeExpr := p.parseTypeSpec()
	if t.IsArray() {
		return &ast.ArrayParam{Token: tok, Name: name, Elem: *t.Elem, Size: sizeExpr}
	}
	return &ast.VarParam{Token: tok, Name: name, Type: t}
}

// ---- Statements -------------------------------------------------------

func (p *Parser) parseBlock() *ast.Block {
	tok := p.cur // '{'
	p.next()
	blk := &ast.Block{Token: tok}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		before := p.cur
		stmt := p.parseStmt()
		if stmt != nil {
			blk.Stmts = append(blk.Stmts, stmt)
		}
		if p.cur == before {
			p.next()
		}
	}
	p.expect(token.RBRACE)
	p.next()
	return blk
}

// parseStmt parses any statement, including a local var/array/function
// declaration. Greedy else-binding (see the package doc comment) means
// the closed/open distinction never needs to be threaded explicitly.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur.Type {
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.DO:
		return p.parseDoWhileStmt()
	case token.LBRACE:
		return p.parseBlock()
	case token.PRINT:
		return p.parsePrintStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.IDENT:
		if p.peekIs(token.COLON) {
			if d, ok := p.parseDecl().(ast.Stmt); ok {
				return d
			}
			return nil
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	tok := p.cur
	p.next()
	p.expect(token.LPAREN)
	p.next()
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	p.next()
	thenStmt := p.parseStmt()
	stmt := &ast.IfStmt{Token: tok, Cond: cond, Then: thenStmt}
	if p.curIs(token.ELSE) {
		p.next()
		stmt.Else = p.parseStmt()
	}
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	tok := p.cur
	p.next()
	p.expect(token.LPAREN)
	p.next()
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	p.next()
	body := p.parseStmt()
	return &ast.WhileStmt{Token: tok, Cond: cond, Body: body}
}

func (p *Parser) parseDoWhileStmt() ast.Stmt {
	tok := p.cur
	p.next()
	body := p.parseStmt()
	p.expect(token.WHILE)
	p.next()
	p.expect(token.LPAREN)
	p.next()
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	p.next()
	p.expect(token.SEMICOLON)
	p.next()
	return &ast.DoWhileStmt{Token: tok, Body: body, Cond: cond}
}

// parseForStmt parses "for (init; cond; incr) stmt". Any of the three
// header clauses may be omitted syntactically; the semantic checker,
// not the parser, rejects the omission (spec.md §4.5: "'for' must have
// a variable initialization" / "...boolean condition" / "...increment").
func (p *Parser) parseForStmt() ast.Stmt {
	tok := p.cur
	p.next()
	p.expect(token.LPAREN)
	p.next()

	var init, cond, incr ast.Expr
	if !p.curIs(token.SEMICOLON) {
		init = p.parseExpression()
	}
	p.expect(token.SEMICOLON)
	p.next()
	if !p.curIs(token.SEMICOLON) {
		cond = p.parseExpression()
	}
	p.expect(token.SEMICOLON)
	p.next()
	if !p.curIs(token.RPAREN) {
		incr = p.parseExpression()
	}
	p.expect(token.RPAREN)
	p.next()

	body := p.parseStmt()
	return &ast.ForStmt{Token: tok, Init: init, Cond: cond, Incr: incr, Body: body}
}

func (p *Parser) parsePrintStmt() ast.Stmt {
	tok := p.cur
	p.next()
	args := p.parseExprListUntil(token.SEMICOLON)
	p.expect(token.SEMICOLON)
	p.next()
	return &ast.PrintStmt{Token: tok, Args: args}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	tok := p.cur
	p.next()
	var val ast.Expr
	if !p.curIs(token.SEMICOLON) {
		val = p.parseExpression()
	}
	p.expect(token.SEMICOLON)
	p.next()
	return &ast.ReturnStmt{Token: tok, Value: val}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	tok := p.cur
	x := p.parseExpression()
	p.expect(token.SEMICOLON)
	p.next()
	return &ast.ExprStmt{Token: tok, X: x}
}

// parseExprListUntil parses a comma-separated expression list up to
// (but not consuming) a terminator token. An empty list before the
// terminator is allowed.
func (p *Parser) parseExprListUntil(terminator token.Type) []ast.Expr {
	if p.curIs(terminator) {
		return nil
	}
	var list []ast.Expr
	list = append(list, p.parseExpression())
	for p.curIs(token.COMMA) {
		p.next()
		list = append(list, p.parseExpression())
	}
	return list
}

// ---- Expressions -----------------------------------------------------
//
// Precedence, low to high: assignment (right-assoc) > || > && >
// equality > relational > additive > multiplicative > unary > postfix
// > primary. This flattens original_source/bminor/parser.py's
// expr1..expr9 chain into the equivalent tiers a Go precedence-climbing
// parser naturally uses.

func (p *Parser) parseExpression() ast.Expr {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseLogicalOr()
	if p.curIs(token.ASSIGN) {
		tok := p.cur
		p.next()
		right := p.parseAssignment()
		return &ast.Assignment{Token: tok, Target: left, Value: right}
	}
	return left
}

func (p *Parser) parseLogicalOr() ast.Expr {
	left := p.parseLogicalAnd()
	for p.curIs(token.LOR) {
		tok := p.cur
		p.next()
		right := p.parseLogicalAnd()
		left = &ast.BinaryExpr{Token: tok, Operator: "||", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	left := p.parseEquality()
	for p.curIs(token.LAND) {
		tok := p.cur
		p.next()
		right := p.parseEquality()
		left = &ast.BinaryExpr{Token: tok, Operator: "&&", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.curIs(token.EQ) || p.curIs(token.NE) {
		tok := p.cur
		op := opText(tok.Type)
		p.next()
		right := p.parseRelational()
		left = &ast.BinaryExpr{Token: tok, Operator: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for p.curIs(token.LT) || p.curIs(token.LE) || p.curIs(token.GT) || p.curIs(token.GE) {
		tok := p.cur
		op := opText(tok.Type)
		p.next()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Token: tok, Operator: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.curIs(token.PLUS) || p.curIs(token.MINUS) {
		tok := p.cur
		op := opText(tok.Type)
		p.next()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Token: tok, Operator: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.curIs(token.STAR) || p.curIs(token.SLASH) || p.curIs(token.PERCENT) {
		tok := p.cur
		op := opText(tok.Type)
		p.next()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Token: tok, Operator: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur.Type {
	case token.MINUS, token.PLUS, token.NOT, token.CARET:
		tok := p.cur
		op := opText(tok.Type)
		p.next()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Token: tok, Operator: op, Operand: operand}
	case token.INC, token.DEC:
		tok := p.cur
		op := opText(tok.Type)
		p.next()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Token: tok, Operator: op, Operand: operand}
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for p.curIs(token.INC) || p.curIs(token.DEC) {
		tok := p.cur
		op := opText(tok.Type)
		p.next()
		expr = &ast.UnaryExpr{Token: tok, Operator: op, Operand: expr, Postfix: true}
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expr {
	switch p.cur.Type {
	case token.INT:
		tok := p.cur
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.errorf("invalid integer literal %q", tok.Literal)
		}
		p.next()
		return &ast.IntegerLiteral{Token: tok, Value: v}
	case token.FLOAT:
		tok := p.cur
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.errorf("invalid float literal %q", tok.Literal)
		}
		p.next()
		return &ast.FloatLiteral{Token: tok, Value: v}
	case token.TRUE:
		tok := p.cur
		p.next()
		return &ast.BoolLiteral{Token: tok, Value: true}
	case token.FALSE:
		tok := p.cur
		p.next()
		return &ast.BoolLiteral{Token: tok, Value: false}
	case token.CHAR:
		tok := p.cur
		p.next()
		var r rune
		for _, c := range tok.Literal {
			r = c
			break
		}
		return &ast.CharLiteral{Token: tok, Value: r}
	case token.STRING:
		tok := p.cur
		p.next()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case token.IDENT:
		return p.parseIdentOrCallOrIndex()
	case token.LPAREN:
		tok := p.cur
		p.next()
		inner := p.parseExpression()
		p.expect(token.RPAREN)
		p.next()
		return &ast.GroupedExpr{Token: tok, X: inner}
	default:
		p.errorf("unexpected token %s (%q) in expression", p.cur.Type, p.cur.Literal)
		tok := p.cur
		p.next()
		return &ast.Ident{Token: tok, Name: "<error>"}
	}
}

func (p *Parser) parseIdentOrCallOrIndex() ast.Expr {
	tok := p.cur
	name := p.cur.Literal
	p.next()

	if p.curIs(token.LPAREN) {
		p.next()
		args := p.parseExprListUntil(token.RPAREN)
		p.expect(token.RPAREN)
		p.next()
		return &ast.CallExpr{Token: tok, Name: name, Args: args}
	}
	if p.curIs(token.LBRACK) {
		p.next()
		idx := p.parseExpression()
		p.expect(token.RBRACK)
		p.next()
		return &ast.IndexExpr{Token: tok, Name: name, Index: idx}
	}
	return &ast.Ident{Token: tok, Name: name}
}

func opText(t token.Type) string {
	switch t {
	case token.PLUS:
		return "+"
	case token.MINUS:
		return "-"
	case token.STAR:
		return "*"
	case token.SLASH:
		return "/"
	case token.PERCENT:
		return "%"
	case token.CARET:
		return "^"
	case token.NOT:
		return "!"
	case token.LT:
		return "<"
	case token.LE:
		return "<="
	case token.GT:
		return ">"
	case token.GE:
		return ">="
	case token.EQ:
		return "=="
	case token.NE:
		return "!="
	case token.LAND:
		return "&&"
	case token.LOR:
		return "||"
	case token.INC:
		return "++"
	case token.DEC:
		return "--"
	default:
		return t.String()
	}
}
