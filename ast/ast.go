package ast

import "golf/report"

// Expr is an expression node.  The set of expression nodes is closed: every
// implementation lives in this file.
type Expr interface {
	// Position returns the source position of the node, or nil for nodes
	// that carry none.
	Position() *report.TextPosition

	exprNode()
}

// Stmt is a statement node: either an ExprStmt or an Assignment.
type Stmt interface {
	Position() *report.TextPosition

	stmtNode()
}

// ExprBase is the base struct for all expression nodes carrying a position.
type ExprBase struct {
	Pos *report.TextPosition
}

func (eb *ExprBase) Position() *report.TextPosition {
	return eb.Pos
}

func (*ExprBase) exprNode() {}

// -----------------------------------------------------------------------------

// Block is a sequence of statements.  It is used as the item list of a
// function literal.
type Block struct {
	ExprBase

	Stmts []Stmt
}

// Number is a numeric literal.  Integer and float literals both lower to it.
type Number struct {
	ExprBase

	Value float64
}

// Bool is a boolean literal.
type Bool struct {
	ExprBase

	Value bool
}

// Str is a string literal.  The value has escape sequences already processed.
type Str struct {
	ExprBase

	Value string
}

// Char is a char literal.
type Char struct {
	ExprBase

	Value rune
}

// Identifier is a reference to a named value.
type Identifier struct {
	ExprBase

	Name string
}

// Operation is a binary operator application.
type Operation struct {
	ExprBase

	Left  Expr
	Op    Operand
	Right Expr
}

// Call is a function application by juxtaposition or comma list.
type Call struct {
	ExprBase

	Callee Expr
	Args   []Expr
}

// Index is an index expression: `base[index]`.
type Index struct {
	ExprBase

	Base, Index Expr
}

// Function is a function literal: a block of arms and plain statements.
type Function struct {
	ExprBase

	Arms *Block
}

// Arm is a single clause of a function literal.  Identifier parameters are
// bindings; every other parameter is a pattern the call argument must equal.
// An arm whose first parameter is an OperandExpr overloads that operator.
type Arm struct {
	ExprBase

	Params []Expr
	Body   Stmt
}

// OperandExpr is an operator used as a value: the first parameter of an
// operator arm.
type OperandExpr struct {
	ExprBase

	Op Operand
}

// EndOfInput is the sentinel returned by the parser when it runs out of
// tokens.  It never appears in a finished AST.
type EndOfInput struct {
	ExprBase
}

// -----------------------------------------------------------------------------

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Expr Expr
}

func (es *ExprStmt) Position() *report.TextPosition {
	return es.Expr.Position()
}

func (*ExprStmt) stmtNode() {}

// Assignment binds the value of Right to the name in Left.  The parser only
// ever produces identifier targets.
type Assignment struct {
	Pos *report.TextPosition

	Left, Right Expr
}

func (a *Assignment) Position() *report.TextPosition {
	return a.Pos
}

func (*Assignment) stmtNode() {}

// -----------------------------------------------------------------------------

// IsOperatorArm reports whether the arm overloads an operator rather than
// taking part in call dispatch.
func (a *Arm) IsOperatorArm() bool {
	if len(a.Params) == 0 {
		return false
	}

	_, ok := a.Params[0].(*OperandExpr)
	return ok
}

// IsCatchAll reports whether every parameter of the arm is an identifier.
func (a *Arm) IsCatchAll() bool {
	for _, param := range a.Params {
		if _, ok := param.(*Identifier); !ok {
			return false
		}
	}

	return true
}
