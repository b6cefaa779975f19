package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// SprintProgram renders a statement list, one statement per line.
func SprintProgram(stmts []Stmt) string {
	lines := make([]string, len(stmts))
	for i, stmt := range stmts {
		lines[i] = SprintStmt(stmt)
	}

	return strings.Join(lines, "\n")
}

// SprintStmt renders a statement in the compact form used by the AST dump and
// the tests: eg. `Assign(a, Add(b, 1))`.
func SprintStmt(stmt Stmt) string {
	switch v := stmt.(type) {
	case *ExprStmt:
		return Sprint(v.Expr)
	case *Assignment:
		return fmt.Sprintf("Assign(%s, %s)", Sprint(v.Left), Sprint(v.Right))
	}

	return "<?>"
}

// Sprint renders an expression in compact form: operations are written as
// `Add(a, Mul(b, c))`, calls as `Call(f, [x, y])`.
func Sprint(expr Expr) string {
	switch v := expr.(type) {
	case *Number:
		return strconv.FormatFloat(v.Value, 'f', -1, 64)
	case *Bool:
		return strconv.FormatBool(v.Value)
	case *Str:
		return strconv.Quote(v.Value)
	case *Char:
		return strconv.QuoteRune(v.Value)
	case *Identifier:
		return v.Name
	case *Operation:
		return fmt.Sprintf("%s(%s, %s)", v.Op, Sprint(v.Left), Sprint(v.Right))
	case *Call:
		return fmt.Sprintf("Call(%s, [%s])", Sprint(v.Callee), sprintList(v.Args))
	case *Index:
		return fmt.Sprintf("Index(%s, %s)", Sprint(v.Base), Sprint(v.Index))
	case *Function:
		return "Function{" + sprintBlock(v.Arms) + "}"
	case *Block:
		return "Block{" + sprintBlock(v) + "}"
	case *Arm:
		return fmt.Sprintf("Arm([%s], %s)", sprintList(v.Params), SprintStmt(v.Body))
	case *OperandExpr:
		return fmt.Sprintf("Operand(%s)", v.Op)
	case *EndOfInput:
		return "EOF"
	}

	return "<?>"
}

func sprintList(exprs []Expr) string {
	items := make([]string, len(exprs))
	for i, expr := range exprs {
		items[i] = Sprint(expr)
	}

	return strings.Join(items, ", ")
}

func sprintBlock(block *Block) string {
	items := make([]string, len(block.Stmts))
	for i, stmt := range block.Stmts {
		items[i] = SprintStmt(stmt)
	}

	return strings.Join(items, "; ")
}
