package walk

import (
	"fmt"
	"golf/ast"
	"golf/report"
)

// Walker is responsible for walking a program and checking that every
// identifier refers to a visible binding.  It aborts at the first error.
type Walker struct {
	// The scope new bindings are added to and lookups start from.
	scope *Scope

	// The non-fatal diagnostics produced so far.
	warnings []*Warning
}

// Warning is a non-fatal diagnostic produced by the walker.
type Warning struct {
	Pos     *report.TextPosition
	Message string
}

// WalkProgram checks a program against the given global scope.  Names
// assigned at the top level are added to the global scope.  The returned error
// is always a *report.CompileError.
func WalkProgram(stmts []ast.Stmt, global *Scope) (warnings []*Warning, err error) {
	defer report.CatchErrors(&err)

	w := &Walker{scope: global}
	for _, stmt := range stmts {
		w.walkStmt(stmt)
	}

	return w.warnings, nil
}

// -----------------------------------------------------------------------------

// error aborts the walk with a check error at pos.
func (w *Walker) error(pos *report.TextPosition, msg string, args ...interface{}) {
	panic(report.Raise(report.ErrCheck, pos, msg, args...))
}

// warn records a warning at pos.
func (w *Walker) warn(pos *report.TextPosition, msg string, args ...interface{}) {
	w.warnings = append(w.warnings, &Warning{Pos: pos, Message: fmt.Sprintf(msg, args...)})
}

// pushScope enters a new scope holding the given parameter names.
func (w *Walker) pushScope(params []string) {
	w.scope = NewScope(w.scope, params)
}

// popScope leaves the current scope.  The scope is discarded.
func (w *Walker) popScope() {
	w.scope = w.scope.Parent()
}

// -----------------------------------------------------------------------------

func (w *Walker) walkStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.ExprStmt:
		w.walkExpr(v.Expr)
	case *ast.Assignment:
		ident, ok := v.Left.(*ast.Identifier)
		if !ok {
			w.error(v.Left.Position(), "invalid assignment target")
		}

		// The name is bound before the right-hand side is checked so that
		// function literals can refer to themselves.
		w.scope.Add(ident.Name)
		w.walkExpr(v.Right)
	}
}

func (w *Walker) walkExpr(expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.Identifier:
		if _, _, ok := w.scope.Lookup(v.Name); !ok {
			w.error(v.Pos, "undeclared use of `%s`", v.Name)
		}
	case *ast.Operation:
		w.walkExpr(v.Left)
		w.walkExpr(v.Right)
	case *ast.Call:
		w.walkExpr(v.Callee)
		for _, arg := range v.Args {
			w.walkExpr(arg)
		}
	case *ast.Index:
		w.walkExpr(v.Base)
		w.walkExpr(v.Index)
	case *ast.Block:
		for _, stmt := range v.Stmts {
			w.walkStmt(stmt)
		}
	case *ast.Function:
		w.walkFunction(v)
	case *ast.Arm:
		w.walkArm(v)
	}

	// Literals, operands and the end-of-input sentinel have nothing to check.
}

// walkFunction checks the items of a function literal in order.  The literal
// has a body scope for the names its plain statements assign: they are locals
// of the generated function and are visible to the arms which follow them.
// Each arm is checked in its own scope nested in the body scope.
func (w *Walker) walkFunction(fn *ast.Function) {
	w.pushScope(nil)
	defer w.popScope()

	// the first catch-all arm of each arity
	catchAlls := make(map[int]*ast.Arm)

	for _, stmt := range fn.Arms.Stmts {
		es, ok := stmt.(*ast.ExprStmt)
		if !ok {
			w.walkStmt(stmt)
			continue
		}

		arm, ok := es.Expr.(*ast.Arm)
		if !ok {
			w.walkStmt(stmt)
			continue
		}

		w.walkArm(arm)

		if arm.IsOperatorArm() {
			continue
		}

		arity := len(arm.Params)
		if shadow, ok := catchAlls[arity]; ok {
			w.warn(arm.Pos, "arm is unreachable: the arm at %s accepts every call with %d argument(s)", shadow.Pos, arity)
		} else if arm.IsCatchAll() {
			catchAlls[arity] = arm
		}
	}
}

// walkArm checks an arm.  Pattern parameters are checked in the enclosing
// scope; the body is checked in a fresh scope binding the identifier
// parameters.
func (w *Walker) walkArm(arm *ast.Arm) {
	names := make([]string, len(arm.Params))
	for i, param := range arm.Params {
		switch p := param.(type) {
		case *ast.Identifier:
			names[i] = p.Name
		case *ast.OperandExpr:
		default:
			w.walkExpr(p)
		}
	}

	w.pushScope(names)
	w.walkStmt(arm.Body)
	w.popScope()
}
