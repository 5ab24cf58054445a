// Package ast defines the B-Minor abstract syntax tree. Every node
// carries its own source position; expression nodes additionally carry
// a mutable Type field that the semantic checker fills in during a
// single annotating pass (spec.md §9, option (a): "annotate in place").
package ast

import (
	"fmt"
	"strings"

	"github.com/bminor/bminorc/internal/token"
	"github.com/bminor/bminorc/internal/types"
)

// Node is the root interface implemented by every AST node.
type Node interface {
	Pos() token.Position
	String() string
}

// Decl is a top-level declaration: a variable, array, or function.
type Decl interface {
	Node
	declNode()
}

// Stmt is anything that can appear in a statement list.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node. GetType/SetType implement the "annotate
// in place" strategy of spec.md §9: the checker assigns a types.Type
// once resolved, and the emitter reads it back without re-deriving it.
type Expr interface {
	Node
	exprNode()
	GetType() types.Type
	SetType(t types.Type)
}

// Param is either a VarParam or an ArrayParam in a function signature.
type Param interface {
	Node
	paramNode()
	ParamName() string
}

type exprBase struct {
	Type types.Type
}

func (e *exprBase) GetType() types.Type  { return e.Type }
func (e *exprBase) SetType(t types.Type) { e.Type = t }

// ---- Program -------------------------------------------------------

// Program is the root node: an ordered list of top-level declarations.
type Program struct {
	Decls []Decl
}

func (p *Program) Pos() token.Position {
	if len(p.Decls) == 0 {
		return token.Position{Line: 1, Column: 1}
	}
	return p.Decls[0].Pos()
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, d := range p.Decls {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ---- Declarations ---------------------------------------------------

// VarDecl declares a single scalar variable, with an optional initializer.
// It is both a Decl (at top level) and a Stmt (inside a function body).
type VarDecl struct {
	Token token.Token // the identifier token
	Name  string
	Type  types.Type // the declared type, known syntactically
	Value Expr       // nil when there is no initializer
}

func (d *VarDecl) Pos() token.Position { return d.Token.Pos }
func (d *VarDecl) declNode()           {}
func (d *VarDecl) stmtNode()           {}
func (d *VarDecl) String() string {
	if d.Value != nil {
		return fmt.Sprintf("%s: %s = %s;", d.Name, d.Type, d.Value)
	}
	return fmt.Sprintf("%s: %s;", d.Name, d.Type)
}

// ArrayDecl declares a fixed-size array, with an optional brace-enclosed
// element-list initializer.
type ArrayDecl struct {
	Token token.Token
	Name  string
	Elem  types.Type // element type
	Size  Expr       // nil when the size was omitted (an error unless Init is given)
	Init  []Expr     // nil when there is no initializer
}

func (d *ArrayDecl) Pos() token.Position { return d.Token.Pos }
func (d *ArrayDecl) declNode()           {}
func (d *ArrayDecl) stmtNode()           {}
func (d *ArrayDecl) String() string {
	size := ""
	if d.Size != nil {
		size = d.Size.String()
	}
	return fmt.Sprintf("%s: array[%s] %s;", d.Name, size, d.Elem)
}

// VarParam is a scalar function parameter.
type VarParam struct {
	Token token.Token
	Name  string
	Type  types.Type
}

func (p *VarParam) Pos() token.Position { return p.Token.Pos }
func (p *VarParam) paramNode()          {}
func (p *VarParam) ParamName() string   { return p.Name }
func (p *VarParam) String() string      { return fmt.Sprintf("%s: %s", p.Name, p.Type) }

// ArrayParam is an array-typed function parameter.
type ArrayParam struct {
	Token token.Token
	Name  string
	Elem  types.Type
	Size  Expr // nil when the bound is omitted, e.g. "a: array[] integer"
}

func (p *ArrayParam) Pos() token.Position { return p.Token.Pos }
func (p *ArrayParam) paramNode()          {}
func (p *ArrayParam) ParamName() string   { return p.Name }
func (p *ArrayParam) String() string {
	size := ""
	if p.Size != nil {
		size = p.Size.String()
	}
	return fmt.Sprintf("%s: array[%s] %s", p.Name, size, p.Elem)
}

// FuncDecl declares a function. Body is nil for a forward declaration
// (a function prototype with no statement list).
type FuncDecl struct {
	Token  token.Token
	Name   string
	Return types.Type
	Params []Param
	Body   *Block
}

func (d *FuncDecl) Pos() token.Position { return d.Token.Pos }
func (d *FuncDecl) declNode()           {}
func (d *FuncDecl) stmtNode()           {}
func (d *FuncDecl) String() string {
	parts := make([]string, len(d.Params))
	for i, p := range d.Params {
		parts[i] = p.String()
	}
	sig := fmt.Sprintf("%s: function %s(%s)", d.Name, d.Return, strings.Join(parts, ", "))
	if d.Body == nil {
		return sig + ";"
	}
	return sig + " " + d.Body.String()
}

// ---- Statements -------------------------------------------------------

// Block is a brace-delimited statement list.
type Block struct {
	Token token.Token // the '{'
	Stmts []Stmt
}

func (b *Block) Pos() token.Position { return b.Token.Pos }
func (b *Block) stmtNode()           {}
func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Stmts {
		sb.WriteString(s.String())
		sb.WriteByte('\n')
	}
	sb.WriteString("}")
	return sb.String()
}

// ExprStmt is an expression evaluated for its side effect, terminated
// by a semicolon (assignments, calls, ++/--).
type ExprStmt struct {
	Token token.Token
	X     Expr
}

func (s *ExprStmt) Pos() token.Position { return s.Token.Pos }
func (s *ExprStmt) stmtNode()           {}
func (s *ExprStmt) String() string      { return s.X.String() + ";" }

// PrintStmt prints a comma-separated list of expressions.
type PrintStmt struct {
	Token token.Token
	Args  []Expr
}

func (s *PrintStmt) Pos() token.Position { return s.Token.Pos }
func (s *PrintStmt) stmtNode()           {}
func (s *PrintStmt) String() string {
	parts := make([]string, len(s.Args))
	for i, a := range s.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("print %s;", strings.Join(parts, ", "))
}

// ReturnStmt returns an optional value from the enclosing function.
type ReturnStmt struct {
	Token token.Token
	Value Expr // nil for a bare "return;"
}

func (s *ReturnStmt) Pos() token.Position { return s.Token.Pos }
func (s *ReturnStmt) stmtNode()           {}
func (s *ReturnStmt) String() string {
	if s.Value != nil {
		return fmt.Sprintf("return %s;", s.Value)
	}
	return "return;"
}

// IfStmt is a conditional with an optional else branch. The
// closed/open stratification used to resolve dangling-else lives in
// the parser; by the time the tree is built, Else is simply nil or set.
type IfStmt struct {
	Token token.Token
	Cond  Expr
	Then  Stmt
	Else  Stmt // nil when there is no else clause
}

func (s *IfStmt) Pos() token.Position { return s.Token.Pos }
func (s *IfStmt) stmtNode()           {}
func (s *IfStmt) String() string {
	if s.Else != nil {
		return fmt.Sprintf("if (%s) %s else %s", s.Cond, s.Then, s.Else)
	}
	return fmt.Sprintf("if (%s) %s", s.Cond, s.Then)
}

// WhileStmt is a pre-tested loop.
type WhileStmt struct {
	Token token.Token
	Cond  Expr
	Body  Stmt
}

func (s *WhileStmt) Pos() token.Position { return s.Token.Pos }
func (s *WhileStmt) stmtNode()           {}
func (s *WhileStmt) String() string      { return fmt.Sprintf("while (%s) %s", s.Cond, s.Body) }

// DoWhileStmt is a post-tested loop.
type DoWhileStmt struct {
	Token token.Token
	Body  Stmt
	Cond  Expr
}

func (s *DoWhileStmt) Pos() token.Position { return s.Token.Pos }
func (s *DoWhileStmt) stmtNode()           {}
func (s *DoWhileStmt) String() string      { return fmt.Sprintf("do %s while (%s);", s.Body, s.Cond) }

// ForStmt is a three-clause loop; any of Init/Cond/Incr may be nil,
// except that the checker requires all three (spec.md §4.5).
type ForStmt struct {
	Token token.Token
	Init  Expr
	Cond  Expr
	Incr  Expr
	Body  Stmt
}

func (s *ForStmt) Pos() token.Position { return s.Token.Pos }
func (s *ForStmt) stmtNode()           {}
func (s *ForStmt) String() string {
	return fmt.Sprintf("for (%s; %s; %s) %s", s.Init, s.Cond, s.Incr, s.Body)
}

// ---- Expressions -----------------------------------------------------

// Ident names a scalar variable, function, or parameter.
type Ident struct {
	exprBase
	Token token.Token
	Name  string
}

func (e *Ident) Pos() token.Position { return e.Token.Pos }
func (e *Ident) exprNode()           {}
func (e *Ident) String() string      { return e.Name }

// IndexExpr is an array element reference, "name[index]".
type IndexExpr struct {
	exprBase
	Token token.Token
	Name  string
	Index Expr
}

func (e *IndexExpr) Pos() token.Position { return e.Token.Pos }
func (e *IndexExpr) exprNode()           {}
func (e *IndexExpr) String() string      { return fmt.Sprintf("%s[%s]", e.Name, e.Index) }

// Assignment is "lvalue = rhs", right-associative.
type Assignment struct {
	exprBase
	Token  token.Token // the '='
	Target Expr        // *Ident or *IndexExpr
	Value  Expr
}

func (e *Assignment) Pos() token.Position { return e.Token.Pos }
func (e *Assignment) exprNode()           {}
func (e *Assignment) String() string      { return fmt.Sprintf("%s = %s", e.Target, e.Value) }

// BinaryExpr is a binary operator application.
type BinaryExpr struct {
	exprBase
	Token    token.Token
	Operator string
	Left     Expr
	Right    Expr
}

func (e *BinaryExpr) Pos() token.Position { return e.Token.Pos }
func (e *BinaryExpr) exprNode()           {}
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Operator, e.Right)
}

// UnaryExpr covers prefix -, !, ^ and prefix/postfix ++, --. Postfix is
// distinguished by Postfix == true; Operator is always the bare symbol.
type UnaryExpr struct {
	exprBase
	Token    token.Token
	Operator string
	Operand  Expr
	Postfix  bool
}

func (e *UnaryExpr) Pos() token.Position { return e.Token.Pos }
func (e *UnaryExpr) exprNode()           {}
func (e *UnaryExpr) String() string {
	if e.Postfix {
		return fmt.Sprintf("(%s%s)", e.Operand, e.Operator)
	}
	return fmt.Sprintf("(%s%s)", e.Operator, e.Operand)
}

// CallExpr is a function call.
type CallExpr struct {
	exprBase
	Token token.Token
	Name  string
	Args  []Expr
}

func (e *CallExpr) Pos() token.Position { return e.Token.Pos }
func (e *CallExpr) exprNode()           {}
func (e *CallExpr) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(parts, ", "))
}

// GroupedExpr preserves explicit parenthesization for pretty-printing;
// it has no effect on evaluation order beyond what the parser already
// assigned via precedence.
type GroupedExpr struct {
	exprBase
	Token token.Token
	X     Expr
}

func (e *GroupedExpr) Pos() token.Position { return e.Token.Pos }
func (e *GroupedExpr) exprNode()           {}
func (e *GroupedExpr) String() string      { return fmt.Sprintf("(%s)", e.X) }

// IntegerLiteral, FloatLiteral, BoolLiteral, CharLiteral, and
// StringLiteral are the five literal kinds B-Minor supports.

type IntegerLiteral struct {
	exprBase
	Token token.Token
	Value int64
}

func (e *IntegerLiteral) Pos() token.Position { return e.Token.Pos }
func (e *IntegerLiteral) exprNode()           {}
func (e *IntegerLiteral) String() string      { return e.Token.Literal }

type FloatLiteral struct {
	exprBase
	Token token.Token
	Value float64
}

func (e *FloatLiteral) Pos() token.Position { return e.Token.Pos }
func (e *FloatLiteral) exprNode()           {}
func (e *FloatLiteral) String() string      { return e.Token.Literal }

type BoolLiteral struct {
	exprBase
	Token token.Token
	Value bool
}

func (e *BoolLiteral) Pos() token.Position { return e.Token.Pos }
func (e *BoolLiteral) exprNode()           {}
func (e *BoolLiteral) String() string      { return e.Token.Literal }

type CharLiteral struct {
	exprBase
	Token token.Token
	Value rune
}

func (e *CharLiteral) Pos() token.Position { return e.Token.Pos }
func (e *CharLiteral) exprNode()           {}
func (e *CharLiteral) String() string      { return fmt.Sprintf("'%c'", e.Value) }

type StringLiteral struct {
	exprBase
	Token token.Token
	Value string
}

func (e *StringLiteral) Pos() token.Position { return e.Token.Pos }
func (e *StringLiteral) exprNode()           {}
func (e *StringLiteral) String() string      { return fmt.Sprintf("%q", e.Value) }
