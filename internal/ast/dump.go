package ast

import (
	"fmt"
	"strings"
)

// Dump renders the tree as an indented outline, the Go equivalent of
// the Python original's rich.tree-based ast_to_tree pretty printer
// (supplemented here since spec.md itself does not mandate a format,
// only that --dot and the IR artifacts be suppressed on error).
func Dump(p *Program) string {
	var sb strings.Builder
	sb.WriteString("Program\n")
	for _, d := range p.Decls {
		dumpNode(&sb, d, "  ")
	}
	return sb.String()
}

func dumpNode(sb *strings.Builder, n Node, indent string) {
	switch v := n.(type) {
	case *VarDecl:
		fmt.Fprintf(sb, "%sVarDecl %s: %s\n", indent, v.Name, v.Type)
		if v.Value != nil {
			dumpNode(sb, v.Value, indent+"  ")
		}
	case *ArrayDecl:
		fmt.Fprintf(sb, "%sArrayDecl %s: array of %s\n", indent, v.Name, v.Elem)
		for _, e := range v.Init {
			dumpNode(sb, e, indent+"  ")
		}
	case *FuncDecl:
		fmt.Fprintf(sb, "%sFuncDecl %s -> %s\n", indent, v.Name, v.Return)
		for _, p := range v.Params {
			fmt.Fprintf(sb, "%s  Param %s\n", indent, p)
		}
		if v.Body != nil {
			dumpNode(sb, v.Body, indent+"  ")
		}
	case *Block:
		fmt.Fprintf(sb, "%sBlock\n", indent)
		for _, s := range v.Stmts {
			dumpNode(sb, s, indent+"  ")
		}
	case *IfStmt:
		fmt.Fprintf(sb, "%sIfStmt\n", indent)
		dumpNode(sb, v.Cond, indent+"  ")
		dumpNode(sb, v.Then, indent+"  ")
		if v.Else != nil {
			dumpNode(sb, v.Else, indent+"  ")
		}
	case *WhileStmt:
		fmt.Fprintf(sb, "%sWhileStmt\n", indent)
		dumpNode(sb, v.Cond, indent+"  ")
		dumpNode(sb, v.Body, indent+"  ")
	case *DoWhileStmt:
		fmt.Fprintf(sb, "%sDoWhileStmt\n", indent)
		dumpNode(sb, v.Body, indent+"  ")
		dumpNode(sb, v.Cond, indent+"  ")
	case *ForStmt:
		fmt.Fprintf(sb, "%sForStmt\n", indent)
		for _, e := range []Expr{v.Init, v.Cond, v.Incr} {
			if e != nil {
				dumpNode(sb, e, indent+"  ")
			}
		}
		dumpNode(sb, v.Body, indent+"  ")
	case *ReturnStmt:
		fmt.Fprintf(sb, "%sReturnStmt\n", indent)
		if v.Value != nil {
			dumpNode(sb, v.Value, indent+"  ")
		}
	case *PrintStmt:
		fmt.Fprintf(sb, "%sPrintStmt\n", indent)
		for _, a := range v.Args {
			dumpNode(sb, a, indent+"  ")
		}
	case *ExprStmt:
		fmt.Fprintf(sb, "%sExprStmt\n", indent)
		dumpNode(sb, v.X, indent+"  ")
	case *Assignment:
		fmt.Fprintf(sb, "%sAssignment\n", indent)
		dumpNode(sb, v.Target, indent+"  ")
		dumpNode(sb, v.Value, indent+"  ")
	case *BinaryExpr:
		fmt.Fprintf(sb, "%sBinaryExpr %s\n", indent, v.Operator)
		dumpNode(sb, v.Left, indent+"  ")
		dumpNode(sb, v.Right, indent+"  ")
	case *UnaryExpr:
		fmt.Fprintf(sb, "%sUnaryExpr %s postfix=%v\n", indent, v.Operator, v.Postfix)
		dumpNode(sb, v.Operand, indent+"  ")
	case *CallExpr:
		fmt.Fprintf(sb, "%sCallExpr %s\n", indent, v.Name)
		for _, a := range v.Args {
			dumpNode(sb, a, indent+"  ")
		}
	case *IndexExpr:
		fmt.Fprintf(sb, "%sIndexExpr %s\n", indent, v.Name)
		dumpNode(sb, v.Index, indent+"  ")
	case *GroupedExpr:
		fmt.Fprintf(sb, "%sGroupedExpr\n", indent)
		dumpNode(sb, v.X, indent+"  ")
	case *Ident:
		fmt.Fprintf(sb, "%sIdent %s\n", indent, v.Name)
	case *IntegerLiteral:
		fmt.Fprintf(sb, "%sIntegerLiteral %d\n", indent, v.Value)
	case *FloatLiteral:
		fmt.Fprintf(sb, "%sFloatLiteral %g\n", indent, v.Value)
	case *BoolLiteral:
		fmt.Fprintf(sb, "%sBoolLiteral %v\n", indent, v.Value)
	case *CharLiteral:
		fmt.Fprintf(sb, "%sCharLiteral %q\n", indent, v.Value)
	case *StringLiteral:
		fmt.Fprintf(sb, "%sStringLiteral %q\n", indent, v.Value)
	default:
		fmt.Fprintf(sb, "%s%T\n", indent, v)
	}
}
