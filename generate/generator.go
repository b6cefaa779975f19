package generate

import (
	"fmt"
	"golf/ast"
	"golf/common"
	"golf/report"
	"strconv"
	"strings"
)

// Generator is responsible for lowering a checked program to Lua source text.
// Statements are emitted one per line and terminated with `;` so that no line
// beginning with `(` can be parsed as a call of the previous line.
type Generator struct {
	// The prefix prepended to identifiers that collide with Lua reserved
	// words or with the names the generator uses internally.
	reservedPrefix string

	// The current indentation depth.
	depth int
}

// indentUnit is the text of one level of indentation.
const indentUnit = "  "

// Names used by generated code.
const (
	argsName   = "__args"
	argcName   = "__argc"
	composeArg = "__a"
	selfName   = "__self"
)

// reservedNames is the set of identifiers a source name must not lower to: the
// Lua keywords, the globals generated code calls and the generator's own
// names.
var reservedNames = map[string]struct{}{
	"and": {}, "break": {}, "do": {}, "else": {}, "elseif": {}, "end": {},
	"false": {}, "for": {}, "function": {}, "goto": {}, "if": {}, "in": {},
	"local": {}, "nil": {}, "not": {}, "or": {}, "repeat": {}, "return": {},
	"then": {}, "true": {}, "until": {}, "while": {},

	"error": {}, "select": {}, "setmetatable": {},

	"_": {}, argsName: {}, argcName: {}, composeArg: {}, selfName: {},
}

// NewGenerator creates a new generator.  An empty prefix selects the default.
// The prefix always ends in an underscore so that no prefixed name can spell
// a Lua keyword or a generated name.
func NewGenerator(reservedPrefix string) *Generator {
	if reservedPrefix == "" {
		reservedPrefix = common.DefaultReservedPrefix
	}

	if !strings.HasSuffix(reservedPrefix, "_") {
		reservedPrefix += "_"
	}

	return &Generator{reservedPrefix: reservedPrefix}
}

// Generate lowers a program to Lua.  Errors only occur for AST shapes the
// parser and walker never produce; they are of kind report.ErrGenerate.
func (g *Generator) Generate(stmts []ast.Stmt) (out string, err error) {
	defer report.CatchErrors(&err)

	g.depth = 0

	sb := &strings.Builder{}
	for _, stmt := range stmts {
		sb.WriteString(g.genStmt(stmt, false))
	}

	return sb.String(), nil
}

// -----------------------------------------------------------------------------

// ice aborts generation with an internal error.
func (g *Generator) ice(pos *report.TextPosition, msg string, args ...interface{}) {
	panic(report.Raise(report.ErrGenerate, pos, msg, args...))
}

// line writes one indented line to sb.
func (g *Generator) line(sb *strings.Builder, format string, args ...interface{}) {
	sb.WriteString(strings.Repeat(indentUnit, g.depth))
	fmt.Fprintf(sb, format, args...)
	sb.WriteRune('\n')
}

// name lowers a source identifier.  A plain name (ASCII letters, digits and
// underscores, not reserved and not starting with the reserved prefix) is
// kept as is.  Every other name is escaped and prefixed:
//
//	_  ->  __
//	?  ->  _Q
//	'  ->  _P
//	r  ->  _UXXXXXX   (any other rune, six hex digits)
//
// The escape is one-to-one and escaped names start with the prefix while
// plain names never do, so distinct source names never share a Lua name.
func (g *Generator) name(src string) string {
	if g.isPlainName(src) {
		return src
	}

	sb := &strings.Builder{}
	sb.WriteString(g.reservedPrefix)
	for _, r := range src {
		switch {
		case r == '_':
			sb.WriteString("__")
		case r == '?':
			sb.WriteString("_Q")
		case r == '\'':
			sb.WriteString("_P")
		case isASCIIAlnum(r):
			sb.WriteRune(r)
		default:
			fmt.Fprintf(sb, "_U%06X", r)
		}
	}

	return sb.String()
}

// isPlainName reports whether a source name can be used in Lua unchanged.
func (g *Generator) isPlainName(src string) bool {
	if src == "" || strings.HasPrefix(src, g.reservedPrefix) {
		return false
	}

	if _, ok := reservedNames[src]; ok {
		return false
	}

	for _, r := range src {
		if r != '_' && !isASCIIAlnum(r) {
			return false
		}
	}

	return true
}

func isASCIIAlnum(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

// -----------------------------------------------------------------------------

// genStmt lowers a statement at the current depth.  If ret is set, the value
// of the statement is returned from the enclosing Lua function.
func (g *Generator) genStmt(stmt ast.Stmt, ret bool) string {
	sb := &strings.Builder{}

	switch v := stmt.(type) {
	case *ast.ExprStmt:
		if _, ok := v.Expr.(*ast.Arm); ok {
			g.ice(v.Position(), "arm outside of a function literal")
		}

		expr := g.genExpr(v.Expr)
		if ret {
			g.line(sb, "return %s;", expr)
		} else if _, ok := v.Expr.(*ast.Call); ok {
			g.line(sb, "%s;", expr)
		} else {
			// Lua only accepts calls as expression statements.
			g.line(sb, "local _ = %s;", expr)
		}
	case *ast.Assignment:
		ident, ok := v.Left.(*ast.Identifier)
		if !ok {
			g.ice(v.Pos, "assignment to a non-identifier")
		}

		name := g.name(ident.Name)
		if _, ok := v.Right.(*ast.Function); ok {
			// Declare first so the function can see its own name.
			g.line(sb, "local %s;", name)
			g.line(sb, "%s = %s;", name, g.genExpr(v.Right))
		} else {
			g.line(sb, "local %s = %s;", name, g.genExpr(v.Right))
		}

		if ret {
			g.line(sb, "return %s;", name)
		}
	default:
		g.ice(stmt.Position(), "unknown statement %T", stmt)
	}

	return sb.String()
}

// genExpr lowers an expression.  Function literals span several lines; their
// inner lines are indented relative to the current depth.
func (g *Generator) genExpr(expr ast.Expr) string {
	switch v := expr.(type) {
	case *ast.Number:
		return strconv.FormatFloat(v.Value, 'f', -1, 64)
	case *ast.Bool:
		return strconv.FormatBool(v.Value)
	case *ast.Str:
		return quote(v.Value)
	case *ast.Char:
		return quote(string(v.Value))
	case *ast.Identifier:
		return g.name(v.Name)
	case *ast.Operation:
		return g.genOperation(v)
	case *ast.Call:
		args := make([]string, len(v.Args))
		for i, arg := range v.Args {
			args[i] = g.genExpr(arg)
		}

		return fmt.Sprintf("(%s)(%s)", g.genExpr(v.Callee), strings.Join(args, ", "))
	case *ast.Index:
		return fmt.Sprintf("(%s)[%s]", g.genExpr(v.Base), g.genExpr(v.Index))
	case *ast.Function:
		return g.genFunction(v)
	case *ast.OperandExpr:
		mm, _ := v.Op.Metamethod()
		return quote(mm)
	case *ast.Arm:
		g.ice(v.Pos, "arm outside of a function literal")
	case *ast.Block:
		g.ice(v.Pos, "block used as a value")
	case *ast.EndOfInput:
		g.ice(v.Pos, "end of input in a finished program")
	}

	g.ice(expr.Position(), "unknown expression %T", expr)
	return ""
}

// genOperation lowers a binary operation.
func (g *Generator) genOperation(op *ast.Operation) string {
	left, right := g.genExpr(op.Left), g.genExpr(op.Right)

	switch op.Op {
	case ast.OpCombine:
		return fmt.Sprintf("function(%s) return (%s)((%s)(%s)) end", composeArg, left, right, composeArg)
	case ast.OpPipeLeft:
		return fmt.Sprintf("(%s)(%s)", left, right)
	case ast.OpPipeRight:
		return fmt.Sprintf("(%s)(%s)", right, left)
	}

	return fmt.Sprintf("(%s %s %s)", left, op.Op.LuaToken(), right)
}

// quote renders a string as a Lua string literal.
func quote(s string) string {
	sb := &strings.Builder{}
	sb.WriteByte('"')

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(sb, `\%03d`, c)
			} else {
				sb.WriteByte(c)
			}
		}
	}

	sb.WriteByte('"')
	return sb.String()
}
