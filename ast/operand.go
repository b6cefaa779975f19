package ast

// Operand is a binary operator of the source language.
type Operand int

// Enumeration of operands.
const (
	OpPow Operand = iota
	OpMul
	OpDiv
	OpMod
	OpAdd
	OpSub
	OpEqual
	OpNotEqual
	OpLt
	OpGt
	OpLtEq
	OpGtEq
	OpConcat
	OpCombine
	OpPipeLeft
	OpPipeRight
)

// operandInfo holds the fixed properties of an operand.
type operandInfo struct {
	// The operator text in source code.
	symbol string

	// The name of the operand as used in AST dumps.
	name string

	// The precedence of the operand: lower numbers bind tighter.
	precedence int

	// The Lua infix token for the operand.  This is empty for operands which
	// are not lowered as infix expressions.
	luaToken string

	// The Lua metamethod overloading the operand.  This is empty for operands
	// which cannot be overloaded.
	metamethod string
}

var operandTable = map[Operand]operandInfo{
	OpPow:       {"^", "Pow", 0, "^", "__pow"},
	OpMul:       {"*", "Mul", 1, "*", "__mul"},
	OpDiv:       {"/", "Div", 1, "/", "__div"},
	OpMod:       {"%", "Mod", 1, "%", "__mod"},
	OpAdd:       {"+", "Add", 2, "+", "__add"},
	OpSub:       {"-", "Sub", 2, "-", "__sub"},
	OpEqual:     {"==", "Equal", 3, "==", "__eq"},
	OpNotEqual:  {"~=", "NotEqual", 3, "~=", ""},
	OpLt:        {"<", "Lt", 4, "<", "__lt"},
	OpGt:        {">", "Gt", 4, ">", ""},
	OpLtEq:      {"<=", "LtEq", 4, "<=", "__le"},
	OpGtEq:      {">=", "GtEq", 4, ">=", ""},
	OpConcat:    {"++", "Concat", 5, "..", "__concat"},
	OpCombine:   {".", "Combine", 5, "", ""},
	OpPipeLeft:  {"<|", "PipeLeft", 5, "", ""},
	OpPipeRight: {"|>", "PipeRight", 5, "", ""},
}

var operandsBySymbol = func() map[string]Operand {
	m := make(map[string]Operand, len(operandTable))
	for op, info := range operandTable {
		m[info.symbol] = op
	}
	return m
}()

// LookupOperand returns the operand written as the given operator text.
func LookupOperand(symbol string) (Operand, bool) {
	op, ok := operandsBySymbol[symbol]
	return op, ok
}

// Precedence returns the binding precedence of the operand.  Lower values bind
// tighter.
func (op Operand) Precedence() int {
	return operandTable[op].precedence
}

// Symbol returns the source text of the operand.
func (op Operand) Symbol() string {
	return operandTable[op].symbol
}

// LuaToken returns the Lua infix operator for the operand.  It is empty for
// the combinator and pipe operands.
func (op Operand) LuaToken() string {
	return operandTable[op].luaToken
}

// Metamethod returns the Lua metamethod that overloads the operand, if any.
func (op Operand) Metamethod() (string, bool) {
	mm := operandTable[op].metamethod
	return mm, mm != ""
}

func (op Operand) String() string {
	return operandTable[op].name
}
