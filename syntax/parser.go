package syntax

import (
	"golf/ast"
	"golf/report"
	"strconv"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is a recursive descent parser over a materialized token sequence.
// Binary operators are handled by an explicit operator-precedence loop rather
// than by recursion.  All parsing functions assume that they begin with the
// traveler on the first token of their production and leave it on the token
// after the production.  A single error aborts the whole parse: the parser
// never attempts to resynchronize.
type Parser struct {
	tr *Traveler
}

// NewParser creates a new parser over the given tokens.
func NewParser(tokens []*Token) *Parser {
	return &Parser{tr: NewTraveler(tokens)}
}

// Parse lexes and parses a source text.
func Parse(src string) ([]ast.Stmt, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}

	return NewParser(toks).Parse()
}

// Parse parses the token sequence into a statement list.  No partial result is
// returned on error.
//
// file = {statement} ;
func (p *Parser) Parse() ([]ast.Stmt, error) {
	var stmts []ast.Stmt

	for p.tr.Remaining() > 1 {
		p.skipWhitespace()
		if p.tr.Remaining() <= 1 {
			break
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	return stmts, nil
}

// -----------------------------------------------------------------------------

// skipWhitespace moves over any run of newline and indent tokens.
func (p *Parser) skipWhitespace() {
	for p.tr.Remaining() > 1 {
		if kind := p.tr.Current().Kind; kind != TOK_EOL && kind != TOK_INDENT {
			return
		}

		p.tr.Next()
	}
}

// got reports whether the traveler is on the given symbol.  It is always
// false past the last token.
func (p *Parser) got(symbol string) bool {
	cur := p.tr.Current()
	return p.tr.Remaining() > 1 && cur.Kind == TOK_SYMBOL && cur.Value == symbol
}

// expectSymbol checks that the traveler is on the given symbol without
// consuming it.  A literal whose text equals the symbol does not match.
func (p *Parser) expectSymbol(symbol string) error {
	if p.got(symbol) {
		return nil
	}

	return p.tr.unexpected(symbol)
}

// errorAt creates a parse error positioned at a token.
func (p *Parser) errorAt(tok *Token, msg string, args ...interface{}) error {
	return report.Raise(report.ErrParse, posOf(tok), msg, args...)
}

func posOf(tok *Token) *report.TextPosition {
	pos := tok.Pos
	return &pos
}

func isEOF(expr ast.Expr) bool {
	_, ok := expr.(*ast.EndOfInput)
	return ok
}

// -----------------------------------------------------------------------------

// statement = expression ['=' expression] ;
//
// Any expression may appear on the left of `=`; the walker rejects targets
// which are not identifiers.
func (p *Parser) statement() (ast.Stmt, error) {
	p.skipWhitespace()

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if isEOF(expr) {
		return nil, p.errorAt(p.tr.Current(), "expected statement, found end of input")
	}

	if p.got("=") {
		return p.assignment(expr)
	}

	return &ast.ExprStmt{Expr: expr}, nil
}

// assignment = expression '=' expression ;
func (p *Parser) assignment(left ast.Expr) (ast.Stmt, error) {
	// skip the `=`
	p.tr.Next()

	if p.tr.Remaining() <= 1 {
		return nil, p.errorAt(p.tr.Current(), "expected expression, found: end of input")
	} else if cur := p.tr.Current(); cur.Kind == TOK_EOL {
		return nil, p.errorAt(cur, "expected expression, found: %s", cur.describe())
	}

	right, err := p.expression()
	if err != nil {
		return nil, err
	}

	return &ast.Assignment{
		Pos:   left.Position(),
		Left:  left,
		Right: right,
	}, nil
}

// expression = term [operation] ;
func (p *Parser) expression() (ast.Expr, error) {
	p.skipWhitespace()

	first, err := p.term()
	if err != nil || isEOF(first) {
		return first, err
	}

	if p.tr.Remaining() > 1 {
		p.skipWhitespace()

		if p.tr.Remaining() > 1 && p.tr.Current().Kind == TOK_OPERATOR {
			return p.operation(first)
		}
	}

	return first, nil
}

// pendingOperator is an operator waiting on the operator stack of the
// operation loop.
type pendingOperator struct {
	op  ast.Operand
	pos *report.TextPosition
}

// operation = {OPERATOR term} ;
//
// The loop keeps a stack of operands and a stack of pending operators.  Before
// an incoming operator is pushed, every pending operator binding at least as
// tightly is reduced: this folds equal precedence to the left and resolves
// tighter operators first.
func (p *Parser) operation(first ast.Expr) (ast.Expr, error) {
	operands := []ast.Expr{first}
	var operators []pendingOperator

	reduce := func() {
		top := operators[len(operators)-1]
		operators = operators[:len(operators)-1]

		left, right := operands[len(operands)-2], operands[len(operands)-1]
		operands = operands[:len(operands)-2]

		operands = append(operands, &ast.Operation{
			ExprBase: ast.ExprBase{Pos: top.pos},
			Left:     left,
			Op:       top.op,
			Right:    right,
		})
	}

	for p.tr.Remaining() > 1 && p.tr.Current().Kind == TOK_OPERATOR {
		tok := p.tr.Current()
		op, ok := ast.LookupOperand(tok.Value)
		if !ok {
			return nil, p.errorAt(tok, "unknown operator: %s", tok.Value)
		}

		p.tr.Next()

		for len(operators) > 0 && op.Precedence() >= operators[len(operators)-1].op.Precedence() {
			reduce()
		}

		operators = append(operators, pendingOperator{op: op, pos: posOf(tok)})

		// operands may continue on the next line
		p.skipWhitespace()

		right, err := p.term()
		if err != nil {
			return nil, err
		} else if isEOF(right) {
			return nil, p.errorAt(tok, "expected operand after `%s`", tok.Value)
		}

		operands = append(operands, right)
	}

	for len(operators) > 0 {
		reduce()
	}

	return operands[0], nil
}

// term = literal | IDENT suffix | '(' expression ')' suffix | function ;
func (p *Parser) term() (ast.Expr, error) {
	if p.tr.Remaining() < 2 {
		return &ast.EndOfInput{ExprBase: ast.ExprBase{Pos: posOf(p.tr.Current())}}, nil
	}

	tok := p.tr.Current()
	base := ast.ExprBase{Pos: posOf(tok)}

	switch tok.Kind {
	case TOK_INTLIT, TOK_FLOATLIT:
		value, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.errorAt(tok, "malformed numeric literal: %s", tok.Value)
		}

		p.tr.Next()
		return &ast.Number{ExprBase: base, Value: value}, nil
	case TOK_BOOLLIT:
		p.tr.Next()
		return &ast.Bool{ExprBase: base, Value: tok.Value == "true"}, nil
	case TOK_STRINGLIT:
		p.tr.Next()
		return &ast.Str{ExprBase: base, Value: tok.Value}, nil
	case TOK_CHARLIT:
		p.tr.Next()
		return &ast.Char{ExprBase: base, Value: []rune(tok.Value)[0]}, nil
	case TOK_IDENT:
		p.tr.Next()
		return p.suffix(&ast.Identifier{ExprBase: base, Name: tok.Value})
	case TOK_SYMBOL:
		switch tok.Value {
		case "(":
			return p.group()
		case "{":
			return p.function()
		}

		return nil, p.errorAt(tok, "unexpected symbol: %s", tok.Value)
	}

	return nil, p.errorAt(tok, "unexpected: %s", tok.describe())
}

// suffix = {'[' expression ']'} [call] ;
func (p *Parser) suffix(expr ast.Expr) (ast.Expr, error) {
	for p.got("[") {
		var err error
		if expr, err = p.index(expr); err != nil {
			return nil, err
		}
	}

	if p.tr.Remaining() <= 1 {
		return expr, nil
	}

	// a juxtaposed literal, identifier or group starts a call
	if cur := p.tr.Current(); cur.IsLiteral() || cur.Kind == TOK_IDENT || p.got("(") {
		return p.call(expr)
	}

	return expr, nil
}

// group = '(' expression ')' ;
func (p *Parser) group() (ast.Expr, error) {
	// skip the `(`
	p.tr.Next()

	inner, err := p.expression()
	if err != nil {
		return nil, err
	} else if isEOF(inner) {
		return nil, p.expectSymbol(")")
	}

	p.skipWhitespace()
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	p.tr.Next()

	return p.suffix(inner)
}

// index = '[' expression ']' ;
func (p *Parser) index(base ast.Expr) (ast.Expr, error) {
	open := p.tr.Current()
	p.tr.Next()

	idx, err := p.expression()
	if err != nil {
		return nil, err
	} else if isEOF(idx) {
		return nil, p.expectSymbol("]")
	}

	p.skipWhitespace()
	if err := p.expectSymbol("]"); err != nil {
		return nil, err
	}
	p.tr.Next()

	return &ast.Index{ExprBase: ast.ExprBase{Pos: posOf(open)}, Base: base, Index: idx}, nil
}

// call = expression {',' expression} ;
//
// A single argument may follow the callee directly; any further arguments
// must be separated by commas.  The argument list ends at a newline.
func (p *Parser) call(callee ast.Expr) (ast.Expr, error) {
	call := &ast.Call{ExprBase: ast.ExprBase{Pos: callee.Position()}, Callee: callee}

	for p.tr.Remaining() > 1 && p.tr.Current().Kind != TOK_EOL {
		if p.got(",") {
			p.tr.Next()
		} else if len(call.Args) > 0 {
			break
		}

		arg, err := p.expression()
		if err != nil {
			return nil, err
		} else if isEOF(arg) {
			break
		}

		call.Args = append(call.Args, arg)
	}

	return call, nil
}

// function = '{' {arm | statement} '}' ;
func (p *Parser) function() (ast.Expr, error) {
	open := p.tr.Current()
	p.tr.Next()

	fn := &ast.Function{
		ExprBase: ast.ExprBase{Pos: posOf(open)},
		Arms:     &ast.Block{ExprBase: ast.ExprBase{Pos: posOf(open)}},
	}

	for {
		p.skipWhitespace()

		if p.tr.Remaining() <= 1 {
			return nil, p.expectSymbol("}")
		} else if p.got("}") {
			break
		}

		var stmt ast.Stmt
		if p.got("|") {
			arm, err := p.arm()
			if err != nil {
				return nil, err
			}

			stmt = &ast.ExprStmt{Expr: arm}
		} else {
			var err error
			if stmt, err = p.statement(); err != nil {
				return nil, err
			}
		}

		fn.Arms.Stmts = append(fn.Arms.Stmts, stmt)
	}

	// skip the `}`
	p.tr.Next()

	return fn, nil
}

// arm = '|' [param {',' param}] '|' statement ;
func (p *Parser) arm() (*ast.Arm, error) {
	open := p.tr.Current()
	p.tr.Next()

	arm := &ast.Arm{ExprBase: ast.ExprBase{Pos: posOf(open)}}
	for !p.got("|") {
		param, err := p.param(len(arm.Params) == 0)
		if err != nil {
			return nil, err
		}

		arm.Params = append(arm.Params, param)

		if p.got("|") {
			break
		}

		if err := p.expectSymbol(","); err != nil {
			return nil, err
		}
		p.tr.Next()
	}

	// skip the closing `|`
	p.tr.Next()

	if arm.IsOperatorArm() {
		if len(arm.Params) != 2 {
			return nil, p.errorAt(open, "operator arm must have the form `| op, name |`")
		} else if _, ok := arm.Params[1].(*ast.Identifier); !ok {
			return nil, p.errorAt(open, "operator arm must have the form `| op, name |`")
		}
	}

	if p.tr.Remaining() <= 1 {
		return nil, p.errorAt(p.tr.Current(), "expected arm body, found end of input")
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	arm.Body = body
	return arm, nil
}

// param = OPERATOR | expression ;
func (p *Parser) param(first bool) (ast.Expr, error) {
	if tok := p.tr.Current(); tok.Kind == TOK_OPERATOR && p.tr.Remaining() > 1 {
		op, ok := ast.LookupOperand(tok.Value)
		if !ok {
			return nil, p.errorAt(tok, "unknown operator: %s", tok.Value)
		} else if !first {
			return nil, p.errorAt(tok, "operator `%s` may only be the first parameter of an arm", tok.Value)
		} else if _, ok := op.Metamethod(); !ok {
			return nil, p.errorAt(tok, "operator `%s` cannot be overloaded", tok.Value)
		}

		p.tr.Next()
		return &ast.OperandExpr{ExprBase: ast.ExprBase{Pos: posOf(tok)}, Op: op}, nil
	}

	param, err := p.expression()
	if err != nil {
		return nil, err
	} else if isEOF(param) {
		return nil, p.errorAt(p.tr.Current(), "expected parameter, found end of input")
	}

	return param, nil
}
