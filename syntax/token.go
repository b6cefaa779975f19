package syntax

import (
	"fmt"
	"golf/report"
	"strconv"
)

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	// Tokens compare equal for parsing purposes if their kinds match.
	Kind int

	// The string value of the token.  For literals this is the normalized
	// literal text: eg. a string token has its quotes removed and its escapes
	// processed.
	Value string

	// The position of the first character of the token.
	Pos report.TextPosition
}

// Enumeration of token kinds.
const (
	TOK_INTLIT = iota
	TOK_FLOATLIT
	TOK_STRINGLIT
	TOK_CHARLIT
	TOK_BOOLLIT

	TOK_SYMBOL
	TOK_OPERATOR
	TOK_IDENT

	TOK_WHITESPACE
	TOK_EOL
	TOK_INDENT

	TOK_EOF
)

var tokKindNames = map[int]string{
	TOK_INTLIT:     "int",
	TOK_FLOATLIT:   "float",
	TOK_STRINGLIT:  "string",
	TOK_CHARLIT:    "char",
	TOK_BOOLLIT:    "bool",
	TOK_SYMBOL:     "symbol",
	TOK_OPERATOR:   "operator",
	TOK_IDENT:      "identifier",
	TOK_WHITESPACE: "whitespace",
	TOK_EOL:        "newline",
	TOK_INDENT:     "indent",
	TOK_EOF:        "end of input",
}

// KindName returns the human-readable name of a token kind.
func KindName(kind int) string {
	return tokKindNames[kind]
}

// IsLiteral reports whether the token is a literal of any kind.
func (t *Token) IsLiteral() bool {
	switch t.Kind {
	case TOK_INTLIT, TOK_FLOATLIT, TOK_STRINGLIT, TOK_CHARLIT, TOK_BOOLLIT:
		return true
	}

	return false
}

// describe returns the token as it should be quoted in an error message.
func (t *Token) describe() string {
	switch t.Kind {
	case TOK_EOL, TOK_INDENT, TOK_EOF:
		return KindName(t.Kind)
	case TOK_STRINGLIT:
		// quoted so that a literal never reads like the symbol it contains
		return strconv.Quote(t.Value)
	case TOK_CHARLIT:
		return strconv.QuoteRune([]rune(t.Value)[0])
	}

	return t.Value
}

func (t *Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", KindName(t.Kind), t.Value, t.Pos)
}
