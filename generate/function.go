package generate

import (
	"golf/ast"
	"strconv"
	"strings"
)

// genFunction lowers a function literal to a table whose metatable makes it
// callable.  The `__call` metamethod receives the table itself followed by the
// call arguments, so an arm of n parameters matches when the argument count
// (including the table) is n+1 and its parameters start at index 2.  Operator
// arms become the matching arithmetic or comparison metamethods.  The result
// looks like:
//
//	setmetatable({}, {
//	  __call = function(...)
//	    local __argc = select("#", ...);
//	    local __args = {...};
//	    if __argc == 2 then
//	      if __args[2] == 0 then
//	        return 0;
//	      end
//	    end
//	    ...
//	  end,
//	})
func (g *Generator) genFunction(fn *ast.Function) string {
	sb := &strings.Builder{}
	sb.WriteString("setmetatable({}, {\n")

	g.depth++

	var items []ast.Stmt
	for _, stmt := range fn.Arms.Stmts {
		if arm := asArm(stmt); arm != nil && arm.IsOperatorArm() {
			g.genOperatorArm(sb, arm)
		} else {
			items = append(items, stmt)
		}
	}

	g.line(sb, "__call = function(...)")
	g.depth++

	g.line(sb, "local %s = select(\"#\", ...);", argcName)
	g.line(sb, "local %s = {...};", argsName)

	for i, item := range items {
		if arm := asArm(item); arm != nil {
			g.genArm(sb, arm)
		} else {
			sb.WriteString(g.genStmt(item, i == len(items)-1))
		}
	}

	// a body ending in arms fails loudly when no arm matched
	if len(items) > 0 && asArm(items[len(items)-1]) != nil {
		g.line(sb, "error(\"no arm accepts \" .. (%s - 1) .. \" argument(s)\");", argcName)
	}

	g.depth--
	g.line(sb, "end,")

	g.depth--
	sb.WriteString(strings.Repeat(indentUnit, g.depth))
	sb.WriteString("})")

	return sb.String()
}

// genArm lowers a dispatch arm to a guarded branch.
func (g *Generator) genArm(sb *strings.Builder, arm *ast.Arm) {
	g.line(sb, "if %s == %d then", argcName, len(arm.Params)+1)
	g.depth++

	var guards []string
	for i, param := range arm.Params {
		arg := argsName + "[" + strconv.Itoa(i+2) + "]"

		if ident, ok := param.(*ast.Identifier); ok {
			g.line(sb, "local %s = %s;", g.name(ident.Name), arg)
		} else {
			guards = append(guards, arg+" == "+g.genExpr(param))
		}
	}

	if len(guards) > 0 {
		g.line(sb, "if %s then", strings.Join(guards, " and "))
		g.depth++
		sb.WriteString(g.genStmt(arm.Body, true))
		g.depth--
		g.line(sb, "end")
	} else {
		sb.WriteString(g.genStmt(arm.Body, true))
	}

	g.depth--
	g.line(sb, "end")
}

// genOperatorArm lowers an operator arm to a metamethod entry.
func (g *Generator) genOperatorArm(sb *strings.Builder, arm *ast.Arm) {
	if len(arm.Params) != 2 {
		g.ice(arm.Pos, "malformed operator arm")
	}

	op := arm.Params[0].(*ast.OperandExpr)
	other, ok := arm.Params[1].(*ast.Identifier)
	if !ok {
		g.ice(arm.Pos, "malformed operator arm")
	}

	mm, _ := op.Op.Metamethod()
	g.line(sb, "%s = function(%s, %s)", mm, selfName, g.name(other.Name))

	g.depth++
	sb.WriteString(g.genStmt(arm.Body, true))
	g.depth--

	g.line(sb, "end,")
}

// asArm returns the arm wrapped by a statement, or nil.
func asArm(stmt ast.Stmt) *ast.Arm {
	if es, ok := stmt.(*ast.ExprStmt); ok {
		if arm, ok := es.Expr.(*ast.Arm); ok {
			return arm
		}
	}

	return nil
}
