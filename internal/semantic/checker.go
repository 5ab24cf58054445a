// Package semantic implements the B-Minor static checker: scope
// resolution and type checking over an already-parsed *ast.Program.
//
// Grounded on original_source/bminor/semantic/checker.py's Check
// visitor and original_source/bminor/semantic/symtab.py's scope
// semantics, re-expressed against internal/symtab's arena-indexed
// scope tree and internal/types' operator tables instead of the
// original's exception-raising, pointer-linked Symtab.
package semantic

import (
	"github.com/bminor/bminorc/internal/ast"
	"github.com/bminor/bminorc/internal/diag"
	"github.com/bminor/bminorc/internal/symtab"
	"github.com/bminor/bminorc/internal/types"
)

// funcContext tracks the function whose body is currently being
// checked, so ReturnStmt can validate against its return type and
// FuncDecl can require at least one return when one is mandatory.
type funcContext struct {
	name       string
	returnType types.Type
	hasReturn  bool
}

// Checker walks a Program, resolving names against a symtab.Table and
// annotating every ast.Expr's Type field in place (spec.md §9's
// "annotate in place" checker strategy).
type Checker struct {
	diags *diag.Bag
	tab   *symtab.Table

	ifCount      int
	whileCount   int
	forCount     int
	doWhileCount int

	funcs []funcContext
}

// Check runs the full semantic pass over prog, reporting diagnostics
// into diags, and returns the populated scope tree (used by the "--sym"
// CLI flag to dump symbol tables once checking succeeds).
func Check(prog *ast.Program, diags *diag.Bag) *symtab.Table {
	c := &Checker{diags: diags, tab: symtab.New()}
	const global = symtab.Handle(0)

	// Two passes over the top level, mirroring the original checker's
	// single pass but split so forward calls between top-level
	// functions resolve regardless of declaration order.
	for _, d := range prog.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok {
			c.defineFunc(global, fn)
		}
	}
	for _, d := range prog.Decls {
		c.checkDecl(d, global)
	}
	return c.tab
}

func (c *Checker) errorf(line int, format string, args ...any) {
	c.diags.Add(diag.Semantic, line, format, args...)
}

func paramType(p ast.Param) types.Type {
	switch v := p.(type) {
	case *ast.VarParam:
		return v.Type
	case *ast.ArrayParam:
		return types.Array(v.Elem, -1)
	default:
		return types.InvalidType
	}
}

func (c *Checker) defineFunc(scope symtab.Handle, fn *ast.FuncDecl) {
	params := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = paramType(p)
	}
	sym := symtab.Symbol{Name: fn.Name, Type: types.Function(fn.Return, params), Decl: fn}
	if err := c.tab.Define(scope, sym); err != nil {
		c.errorf(fn.Pos().Line, "%s", err.Error())
	}
}

// ---- Declarations -----------------------------------------------------

func (c *Checker) checkDecl(d ast.Decl, scope symtab.Handle) {
	switch v := d.(type) {
	case *ast.VarDecl:
		c.checkVarDecl(v, scope)
	case *ast.ArrayDecl:
		c.checkArrayDecl(v, scope)
	case *ast.FuncDecl:
		c.checkFuncDecl(v, scope)
	}
}

func (c *Checker) checkVarDecl(d *ast.VarDecl, scope symtab.Handle) {
	if d.Value != nil {
		vt := c.checkExpr(d.Value, scope)
		if vt.IsValid() && !vt.Equal(d.Type) {
			c.errorf(d.Pos().Line, "Types do not match in '%s'", d.Name)
		}
	}
	sym := symtab.Symbol{Name: d.Name, Type: d.Type, Decl: d}
	if err := c.tab.Define(scope, sym); err != nil {
		c.errorf(d.Pos().Line, "%s", err.Error())
	}
}

func (c *Checker) checkArrayDecl(d *ast.ArrayDecl, scope symtab.Handle) {
	if d.Size == nil && len(d.Init) == 0 {
		c.errorf(d.Pos().Line, "'%s' must have size", d.Name)
	}
	if d.Size != nil {
		st := c.checkExpr(d.Size, scope)
		if st.IsValid() && st.Tag != types.Integer {
			c.errorf(d.Pos().Line, "'%s' size must be an integer", d.Name)
		}
	}
	for _, elem := range d.Init {
		et := c.checkExpr(elem, scope)
		if et.IsValid() && !et.Equal(d.Elem) {
			c.errorf(d.Pos().Line, "Types do not match in '%s'", d.Name)
			break
		}
	}
	// Array initializer length vs. declared size: only checked when the
	// size is a statically known integer literal (DESIGN.md's "Open
	// Question" decision); a runtime-valued size expression is left to
	// the emitter's alloca, per spec.md §4.6.
	if lit, ok := d.Size.(*ast.IntegerLiteral); ok && len(d.Init) > 0 && int(lit.Value) != len(d.Init) {
		c.errorf(d.Pos().Line, "'%s' array initializer has %d elements, expected size %d", d.Name, len(d.Init), lit.Value)
	}
	arrType := types.Array(d.Elem, arraySize(d))
	sym := symtab.Symbol{Name: d.Name, Type: arrType, Decl: d}
	if err := c.tab.Define(scope, sym); err != nil {
		c.errorf(d.Pos().Line, "%s", err.Error())
	}
}

func arraySize(d *ast.ArrayDecl) int {
	if lit, ok := d.Size.(*ast.IntegerLiteral); ok {
		return int(lit.Value)
	}
	if len(d.Init) > 0 {
		return len(d.Init)
	}
	return -1
}

func (c *Checker) checkFuncDecl(d *ast.FuncDecl, scope symtab.Handle) {
	if !c.tab.IsDeclaredInScope(scope, d.Name) {
		// A local (nested) function declaration; top-level ones were
		// already defined in the pre-pass.
		c.defineFunc(scope, d)
	}
	if d.Body == nil {
		return
	}

	funcScope := c.tab.NewChild(scope, d.Name)
	for _, p := range d.Params {
		sym := symtab.Symbol{Name: p.ParamName(), Type: paramType(p), Decl: p}
		if err := c.tab.Define(funcScope, sym); err != nil {
			c.errorf(p.Pos().Line, "%s", err.Error())
		}
	}

	c.funcs = append(c.funcs, funcContext{name: d.Name, returnType: d.Return})
	for _, s := range d.Body.Stmts {
		c.checkStmt(s, funcScope)
	}
	ctx := c.funcs[len(c.funcs)-1]
	c.funcs = c.funcs[:len(c.funcs)-1]

	if len(d.Body.Stmts) > 0 && d.Return.Tag != types.Void && !ctx.hasReturn {
		c.errorf(d.Pos().Line, "'%s' must have a return", d.Name)
	}
}

// ---- Statements -------------------------------------------------------

func (c *Checker) checkStmt(s ast.Stmt, scope symtab.Handle) {
	switch v := s.(type) {
	case *ast.VarDecl:
		c.checkVarDecl(v, scope)
	case *ast.ArrayDecl:
		c.checkArrayDecl(v, scope)
	case *ast.FuncDecl:
		c.checkFuncDecl(v, scope)
	case *ast.Block:
		for _, stmt := range v.Stmts {
			c.checkStmt(stmt, scope)
		}
	case *ast.ExprStmt:
		c.checkExpr(v.X, scope)
	case *ast.PrintStmt:
		c.checkPrintStmt(v, scope)
	case *ast.ReturnStmt:
		c.checkReturnStmt(v, scope)
	case *ast.IfStmt:
		c.checkIfStmt(v, scope)
	case *ast.WhileStmt:
		c.checkWhileStmt(v, scope)
	case *ast.DoWhileStmt:
		c.checkDoWhileStmt(v, scope)
	case *ast.ForStmt:
		c.checkForStmt(v, scope)
	}
}

func (c *Checker) checkPrintStmt(s *ast.PrintStmt, scope symtab.Handle) {
	for _, arg := range s.Args {
		t := c.checkExpr(arg, scope)
		if !t.IsValid() {
			continue
		}
		// REDESIGN FLAG: string (and any non-scalar) print targets have
		// no runtime support and must be rejected here rather than
		// mis-lowered by the emitter (spec.md §9).
		if t.Tag == types.String || t.Tag == types.Void || t.IsArray() || t.IsFunction() {
			c.errorf(s.Pos().Line, "'print' does not support values of type '%s'", t)
		}
	}
}

func (c *Checker) checkReturnStmt(s *ast.ReturnStmt, scope symtab.Handle) {
	if len(c.funcs) == 0 {
		c.errorf(s.Pos().Line, "'return' used outside of a function")
		return
	}
	ctx := &c.funcs[len(c.funcs)-1]
	ctx.hasReturn = true

	if s.Value == nil {
		if ctx.returnType.Tag != types.Void {
			c.errorf(s.Pos().Line, "Types do not match in '%s'", ctx.name)
		}
		return
	}
	vt := c.checkExpr(s.Value, scope)
	if vt.IsValid() && !vt.Equal(ctx.returnType) {
		c.errorf(s.Pos().Line, "Types do not match in '%s'", ctx.name)
	}
}

func (c *Checker) checkIfStmt(s *ast.IfStmt, scope symtab.Handle) {
	c.ifCount++
	n := c.ifCount
	ct := c.checkExpr(s.Cond, scope)
	if ct.IsValid() && ct.Tag != types.Boolean {
		c.errorf(s.Pos().Line, "Condition in 'if' must be boolean")
	}
	thenScope := c.tab.NewChild(scope, scopeName("if", n))
	c.checkStmt(s.Then, thenScope)
	if s.Else != nil {
		elseScope := c.tab.NewChild(scope, scopeName("if", n)+"else")
		c.checkStmt(s.Else, elseScope)
	}
}

func (c *Checker) checkWhileStmt(s *ast.WhileStmt, scope symtab.Handle) {
	c.whileCount++
	ct := c.checkExpr(s.Cond, scope)
	if ct.IsValid() && ct.Tag != types.Boolean {
		c.errorf(s.Pos().Line, "Condition in 'while' must be boolean")
	}
	bodyScope := c.tab.NewChild(scope, scopeName("while", c.whileCount))
	c.checkStmt(s.Body, bodyScope)
}

func (c *Checker) checkDoWhileStmt(s *ast.DoWhileStmt, scope symtab.Handle) {
	c.doWhileCount++
	bodyScope := c.tab.NewChild(scope, scopeName("do_while", c.doWhileCount))
	c.checkStmt(s.Body, bodyScope)
	ct := c.checkExpr(s.Cond, scope)
	if ct.IsValid() && ct.Tag != types.Boolean {
		c.errorf(s.Pos().Line, "Condition in 'do-while' must be boolean")
	}
}

func (c *Checker) checkForStmt(s *ast.ForStmt, scope symtab.Handle) {
	c.forCount++
	bodyScope := c.tab.NewChild(scope, scopeName("for", c.forCount))

	if s.Init == nil {
		c.errorf(s.Pos().Line, "'for' must have a variable initialization")
	} else {
		c.checkExpr(s.Init, bodyScope)
	}
	if s.Cond == nil {
		c.errorf(s.Pos().Line, "'for' must have a boolean condition")
	} else {
		ct := c.checkExpr(s.Cond, bodyScope)
		if ct.IsValid() && ct.Tag != types.Boolean {
			c.errorf(s.Pos().Line, "'for' must have a boolean condition")
		}
	}
	if s.Incr == nil {
		c.errorf(s.Pos().Line, "'for' must have a variable increment or decrement")
	} else {
		// REDESIGN FLAG: incr is just another Expression; it is type
		// checked like any expression statement, with no special case
		// for UnaryExpr/Assignment shapes (spec.md §9).
		c.checkExpr(s.Incr, bodyScope)
	}
	c.checkStmt(s.Body, bodyScope)
}

func scopeName(prefix string, n int) string {
	return prefix + itoa(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// ---- Expressions -----------------------------------------------------

func (c *Checker) checkExpr(e ast.Expr, scope symtab.Handle) types.Type {
	if e == nil {
		return types.InvalidType
	}
	t := c.resolveExpr(e, scope)
	e.SetType(t)
	return t
}

func (c *Checker) resolveExpr(e ast.Expr, scope symtab.Handle) types.Type {
	switch v := e.(type) {
	case *ast.IntegerLiteral:
		return types.IntegerType
	case *ast.FloatLiteral:
		return types.FloatType
	case *ast.BoolLiteral:
		return types.BooleanType
	case *ast.CharLiteral:
		return types.CharType
	case *ast.StringLiteral:
		return types.StringType
	case *ast.GroupedExpr:
		return c.checkExpr(v.X, scope)
	case *ast.Ident:
		sym, ok := c.tab.Resolve(scope, v.Name)
		if !ok {
			c.errorf(v.Pos().Line, "'%s' is not defined", v.Name)
			return types.InvalidType
		}
		return sym.Type
	case *ast.IndexExpr:
		sym, ok := c.tab.Resolve(scope, v.Name)
		idxType := c.checkExpr(v.Index, scope)
		if idxType.IsValid() && idxType.Tag != types.Integer {
			c.errorf(v.Pos().Line, "'%s' index must be an integer", v.Name)
		}
		if !ok {
			c.errorf(v.Pos().Line, "'%s' is not defined", v.Name)
			return types.InvalidType
		}
		if !sym.Type.IsArray() {
			c.errorf(v.Pos().Line, "'%s' is not an array", v.Name)
			return types.InvalidType
		}
		return *sym.Type.Elem
	case *ast.Assignment:
		return c.checkAssignment(v, scope)
	case *ast.BinaryExpr:
		return c.checkBinary(v, scope)
	case *ast.UnaryExpr:
		return c.checkUnary(v, scope)
	case *ast.CallExpr:
		return c.checkCall(v, scope)
	default:
		return types.InvalidType
	}
}

func (c *Checker) checkAssignment(v *ast.Assignment, scope symtab.Handle) types.Type {
	if !isLocation(v.Target) {
		c.checkExpr(v.Value, scope)
		c.errorf(v.Pos().Line, "left-hand side of '=' must be a location")
		return types.InvalidType
	}

	targetType := c.checkExpr(v.Target, scope)
	valueType := c.checkExpr(v.Value, scope)
	name := targetName(v.Target)

	if !targetType.IsValid() {
		// Target resolution already reported "not defined"; don't pile on.
		return types.InvalidType
	}
	if valueType.IsValid() && !valueType.Equal(targetType) {
		c.errorf(v.Pos().Line, "Types do not match in '%s'", name)
		return targetType
	}
	return targetType
}

// isLocation reports whether e is an addressable storage site (a
// scalar variable or array element), the only targets spec.md §4.2
// permits on the left of '='.
func isLocation(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Ident, *ast.IndexExpr:
		return true
	default:
		return false
	}
}

func targetName(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.Ident:
		return v.Name
	case *ast.IndexExpr:
		return v.Name
	default:
		return "<expr>"
	}
}

func (c *Checker) checkBinary(v *ast.BinaryExpr, scope symtab.Handle) types.Type {
	lt := c.checkExpr(v.Left, scope)
	rt := c.checkExpr(v.Right, scope)
	if !lt.IsValid() || !rt.IsValid() {
		return types.InvalidType
	}
	// REDESIGN FLAG: string concatenation and relational/equality
	// comparison type-check per the operator table, but there is no
	// runtime support to lower them against (spec.md §9: "do not
	// silently lower strings"). Reject here rather than let the
	// emitter mis-lower '+' to a dropped operand or '==' etc. to a
	// pointer-identity comparison.
	if lt.Tag == types.String || rt.Tag == types.String {
		c.errorf(v.Pos().Line, "'%s' does not support values of type 'string'", v.Operator)
		return types.InvalidType
	}
	result, ok := types.CheckBinOp(v.Operator, lt, rt)
	if !ok {
		c.errorf(v.Pos().Line, "Types do not match in '%s'", v.Operator)
		return types.InvalidType
	}
	return result
}

func (c *Checker) checkUnary(v *ast.UnaryExpr, scope symtab.Handle) types.Type {
	ot := c.checkExpr(v.Operand, scope)
	if !ot.IsValid() {
		return types.InvalidType
	}
	if v.Operator == "++" || v.Operator == "--" {
		if ot.Tag != types.Integer && ot.Tag != types.Float {
			c.errorf(v.Pos().Line, "Types do not match in '%s'", v.Operator)
			return types.InvalidType
		}
		return ot
	}
	result, ok := types.CheckUnaryOp(v.Operator, ot)
	if !ok {
		c.errorf(v.Pos().Line, "Types do not match in '%s'", v.Operator)
		return types.InvalidType
	}
	return result
}

func (c *Checker) checkCall(v *ast.CallExpr, scope symtab.Handle) types.Type {
	sym, ok := c.tab.Resolve(scope, v.Name)
	argTypes := make([]types.Type, len(v.Args))
	for i, a := range v.Args {
		argTypes[i] = c.checkExpr(a, scope)
	}
	if !ok {
		c.errorf(v.Pos().Line, "'%s' is not defined", v.Name)
		return types.InvalidType
	}
	if !sym.Type.IsFunction() {
		c.errorf(v.Pos().Line, "'%s' is not a function", v.Name)
		return types.InvalidType
	}
	if len(argTypes) != len(sym.Type.Params) {
		c.errorf(v.Pos().Line, "Wrong arguments in '%s'", v.Name)
		return *sym.Type.Return
	}
	for i, at := range argTypes {
		if at.IsValid() && !at.Equal(sym.Type.Params[i]) {
			c.errorf(v.Pos().Line, "Types do not match in '%s' arguments", v.Name)
			break
		}
	}
	return *sym.Type.Return
}
