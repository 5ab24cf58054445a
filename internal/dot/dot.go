// Package dot renders a parsed AST as a Graphviz DOT graph, for the
// "bminorc parse --dot" artifact of spec.md §6.
//
// Grounded on original_source/core/parser/dot_render.py's ASTPrinter:
// the same "n%02d" sequential node naming, box/filled node styling, and
// one node per declaration/statement/expression with a labeled child
// edge per sub-node. Hand-rolled rather than built on a graph library:
// none of the corpus's dependencies (cobra, go-snaps, go-llvm) render
// graphs, and the shape here — one node per AST variant with bespoke
// labels — doesn't fit a general-purpose graph package any better than
// a direct tree walk does; DESIGN.md records why it stays on the
// standard library.
package dot

import (
	"fmt"
	"io"
	"strings"

	"github.com/bminor/bminorc/internal/ast"
)

type renderer struct {
	w    io.Writer
	seq  int
	body strings.Builder
}

// Render writes prog as a DOT graph named "AST" to w.
func Render(w io.Writer, prog *ast.Program) {
	r := &renderer{w: w}
	root := r.next()
	r.node(root, "Program")
	for _, d := range prog.Decls {
		child := r.visitDecl(d)
		r.edge(root, child)
	}
	fmt.Fprintln(w, `digraph AST {`)
	fmt.Fprintln(w, `  node [shape=box, style=filled, color=deepskyblue];`)
	fmt.Fprintln(w, `  edge [arrowhead=none];`)
	io.WriteString(w, r.body.String())
	fmt.Fprintln(w, `}`)
}

func (r *renderer) next() string {
	r.seq++
	return fmt.Sprintf("n%02d", r.seq)
}

func (r *renderer) node(id, label string) {
	fmt.Fprintf(&r.body, "  %s [label=%q];\n", id, label)
}

func (r *renderer) edge(from, to string) {
	fmt.Fprintf(&r.body, "  %s -> %s;\n", from, to)
}

func (r *renderer) typeNode(label string) string {
	id := r.next()
	r.node(id, "Type: "+label)
	return id
}

func (r *renderer) visitDecl(d ast.Decl) string {
	switch v := d.(type) {
	case *ast.VarDecl:
		id := r.next()
		r.node(id, "VarDecl: "+v.Name)
		r.edge(id, r.typeNode(v.Type.String()))
		if v.Value != nil {
			r.edge(id, r.visitExpr(v.Value))
		}
		return id
	case *ast.ArrayDecl:
		id := r.next()
		r.node(id, "ArrayDecl: "+v.Name)
		r.edge(id, r.typeNode(v.Elem.String()))
		for _, e := range v.Init {
			r.edge(id, r.visitExpr(e))
		}
		return id
	case *ast.FuncDecl:
		id := r.next()
		r.node(id, "FuncDecl: "+v.Name)
		r.edge(id, r.typeNode(v.Return.String()))
		for _, p := range v.Params {
			r.edge(id, r.visitParam(p))
		}
		if v.Body != nil {
			r.edge(id, r.visitStmt(v.Body))
		}
		return id
	default:
		return r.leaf(fmt.Sprintf("%T", d))
	}
}

func (r *renderer) visitParam(p ast.Param) string {
	switch v := p.(type) {
	case *ast.VarParam:
		return r.leaf(fmt.Sprintf("VarParam: %s (%s)", v.Name, v.Type))
	case *ast.ArrayParam:
		return r.leaf(fmt.Sprintf("ArrayParam: %s (array of %s)", v.Name, v.Elem))
	default:
		return r.leaf(fmt.Sprintf("%T", p))
	}
}

func (r *renderer) leaf(label string) string {
	id := r.next()
	r.node(id, label)
	return id
}

func (r *renderer) visitStmt(s ast.Stmt) string {
	switch v := s.(type) {
	case *ast.VarDecl, *ast.ArrayDecl, *ast.FuncDecl:
		return r.visitDecl(s.(ast.Decl))
	case *ast.Block:
		id := r.next()
		r.node(id, "Block")
		for _, stmt := range v.Stmts {
			r.edge(id, r.visitStmt(stmt))
		}
		return id
	case *ast.ExprStmt:
		id := r.next()
		r.node(id, "ExprStmt")
		r.edge(id, r.visitExpr(v.X))
		return id
	case *ast.PrintStmt:
		id := r.next()
		r.node(id, "PrintStmt")
		for _, a := range v.Args {
			r.edge(id, r.visitExpr(a))
		}
		return id
	case *ast.ReturnStmt:
		id := r.next()
		r.node(id, "ReturnStmt")
		if v.Value != nil {
			r.edge(id, r.visitExpr(v.Value))
		}
		return id
	case *ast.IfStmt:
		id := r.next()
		r.node(id, "IfStmt")
		r.edge(id, r.visitExpr(v.Cond))
		r.edge(id, r.visitStmt(v.Then))
		if v.Else != nil {
			r.edge(id, r.visitStmt(v.Else))
		}
		return id
	case *ast.WhileStmt:
		id := r.next()
		r.node(id, "WhileStmt")
		r.edge(id, r.visitExpr(v.Cond))
		r.edge(id, r.visitStmt(v.Body))
		return id
	case *ast.DoWhileStmt:
		id := r.next()
		r.node(id, "DoWhileStmt")
		r.edge(id, r.visitStmt(v.Body))
		r.edge(id, r.visitExpr(v.Cond))
		return id
	case *ast.ForStmt:
		id := r.next()
		r.node(id, "ForStmt")
		for _, e := range []ast.Expr{v.Init, v.Cond, v.Incr} {
			if e != nil {
				r.edge(id, r.visitExpr(e))
			}
		}
		r.edge(id, r.visitStmt(v.Body))
		return id
	default:
		return r.leaf(fmt.Sprintf("%T", s))
	}
}

func (r *renderer) visitExpr(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.Assignment:
		id := r.next()
		r.node(id, "Assignment")
		r.edge(id, r.visitExpr(v.Target))
		r.edge(id, r.visitExpr(v.Value))
		return id
	case *ast.BinaryExpr:
		id := r.next()
		r.node(id, "BinaryExpr: "+v.Operator)
		r.edge(id, r.visitExpr(v.Left))
		r.edge(id, r.visitExpr(v.Right))
		return id
	case *ast.UnaryExpr:
		id := r.next()
		r.node(id, fmt.Sprintf("UnaryExpr: %s postfix=%v", v.Operator, v.Postfix))
		r.edge(id, r.visitExpr(v.Operand))
		return id
	case *ast.CallExpr:
		id := r.next()
		r.node(id, "CallExpr: "+v.Name)
		for _, a := range v.Args {
			r.edge(id, r.visitExpr(a))
		}
		return id
	case *ast.IndexExpr:
		id := r.next()
		r.node(id, "IndexExpr: "+v.Name)
		r.edge(id, r.visitExpr(v.Index))
		return id
	case *ast.GroupedExpr:
		return r.visitExpr(v.X)
	case *ast.Ident:
		return r.leaf("Ident: " + v.Name)
	case *ast.IntegerLiteral:
		return r.leaf(fmt.Sprintf("IntegerLiteral: %d", v.Value))
	case *ast.FloatLiteral:
		return r.leaf(fmt.Sprintf("FloatLiteral: %g", v.Value))
	case *ast.BoolLiteral:
		return r.leaf(fmt.Sprintf("BoolLiteral: %v", v.Value))
	case *ast.CharLiteral:
		return r.leaf(fmt.Sprintf("CharLiteral: %q", v.Value))
	case *ast.StringLiteral:
		return r.leaf(fmt.Sprintf("StringLiteral: %q", v.Value))
	default:
		return r.leaf(fmt.Sprintf("%T", e))
	}
}
