package syntax

import (
	"golf/report"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matcher is a token recognition strategy.  A matcher returns the token it
// recognized at the tokenizer's cursor, nil if the input does not start with
// its kind of token, or an error if the input is a malformed token of its
// kind.  Matchers are always run through Tokenizer.TryMatch, which restores
// the tokenizer when they fail.
type Matcher interface {
	Match(t *Tokenizer) (*Token, error)
}

// MatcherFunc adapts an ordinary function into a Matcher.
type MatcherFunc func(t *Tokenizer) (*Token, error)

func (mf MatcherFunc) Match(t *Tokenizer) (*Token, error) {
	return mf(t)
}

// Operators lists every operator in matching order: longer operators come
// before their prefixes.
var Operators = []string{
	"++", "+", "-", "*", "/", "%", "^",
	">=", "<=", "==", "~=",
	".", "<|", "|>", ">", "<",
}

// Symbols lists every punctuation symbol.
var Symbols = []string{"(", ")", "[", "]", ",", ":", ";", "{", "}", "!", "|", "="}

// DefaultMatchers returns the matcher set of the language in the order they
// must be tried.
func DefaultMatchers() []Matcher {
	return []Matcher{
		&ConstantMatcher{Kind: TOK_EOL, Constants: []string{"\n"}},
		MatcherFunc(matchIndent),
		MatcherFunc(matchWhitespace),
		MatcherFunc(matchOperator),
		&ConstantMatcher{Kind: TOK_SYMBOL, Constants: Symbols},
		MatcherFunc(matchFloat),
		MatcherFunc(matchInt),
		MatcherFunc(matchString),
		&KeywordMatcher{Kind: TOK_BOOLLIT, Keywords: []string{"true", "false"}},
		MatcherFunc(matchIdentifier),
	}
}

// makeToken creates a token starting at the position of the current
// checkpoint.
func makeToken(t *Tokenizer, kind int, value string) *Token {
	return &Token{Kind: kind, Value: value, Pos: t.CheckpointPosition()}
}

// -----------------------------------------------------------------------------

// ConstantMatcher matches the first of a list of fixed strings that the input
// starts with.
type ConstantMatcher struct {
	Kind      int
	Constants []string
}

func (cm *ConstantMatcher) Match(t *Tokenizer) (*Token, error) {
	for _, c := range cm.Constants {
		if t.HasPrefix(c) {
			t.Advance(utf8.RuneCountInString(c))
			return makeToken(t, cm.Kind, c), nil
		}
	}

	return nil, nil
}

// KeywordMatcher matches the first of a list of keywords that the input starts
// with, provided the keyword is not the prefix of a longer identifier.
type KeywordMatcher struct {
	Kind     int
	Keywords []string
}

func (km *KeywordMatcher) Match(t *Tokenizer) (*Token, error) {
	for _, kw := range km.Keywords {
		if !t.HasPrefix(kw) {
			continue
		}

		n := utf8.RuneCountInString(kw)
		if r, ok := t.Peek(n); ok && isKeywordBoundaryViolation(r) {
			continue
		}

		t.Advance(n)
		return makeToken(t, km.Kind, kw), nil
	}

	return nil, nil
}

func isKeywordBoundaryViolation(r rune) bool {
	return r == '_' || r == '?' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// -----------------------------------------------------------------------------

// matchIndent matches the run of spaces and tabs at the start of a line.
func matchIndent(t *Tokenizer) (*Token, error) {
	if !t.AtLineStart() {
		return nil, nil
	}

	sb := &strings.Builder{}
	for {
		r, ok := t.Peek(0)
		if !ok || (r != ' ' && r != '\t') {
			break
		}

		sb.WriteRune(r)
		t.Advance(1)
	}

	if sb.Len() == 0 {
		return nil, nil
	}

	return makeToken(t, TOK_INDENT, sb.String()), nil
}

// matchWhitespace matches a run of whitespace other than newlines.
func matchWhitespace(t *Tokenizer) (*Token, error) {
	sb := &strings.Builder{}
	for {
		r, ok := t.Peek(0)
		if !ok || r == '\n' || !unicode.IsSpace(r) {
			break
		}

		sb.WriteRune(r)
		t.Advance(1)
	}

	if sb.Len() == 0 {
		return nil, nil
	}

	return makeToken(t, TOK_WHITESPACE, sb.String()), nil
}

// matchOperator matches an operator.  A `+` or `-` directly followed by a
// digit is left to the numeric matchers when it begins a term: ie. when the
// previous significant character cannot end an operand.
func matchOperator(t *Tokenizer) (*Token, error) {
	if isSignedNumber(t) {
		if prev, ok := t.PrevSignificant(); !ok || !endsOperand(prev) {
			return nil, nil
		}
	}

	return (&ConstantMatcher{Kind: TOK_OPERATOR, Constants: Operators}).Match(t)
}

// isSignedNumber reports whether the input starts with a sign followed by a
// digit.
func isSignedNumber(t *Tokenizer) bool {
	sign, ok := t.Peek(0)
	if !ok || (sign != '+' && sign != '-') {
		return false
	}

	digit, ok := t.Peek(1)
	return ok && isDigit(digit)
}

// endsOperand reports whether r can be the last character of an operand.
func endsOperand(r rune) bool {
	switch r {
	case ')', ']', '}', '"', '\'', '_', '?':
		return true
	}

	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// -----------------------------------------------------------------------------

// readSign consumes an optional leading sign.
func readSign(t *Tokenizer, sb *strings.Builder) {
	if r, ok := t.Peek(0); ok && (r == '+' || r == '-') {
		sb.WriteRune(r)
		t.Advance(1)
	}
}

// matchFloat matches a float literal: an optional sign followed by digits
// containing exactly one decimal point.  Input without a decimal point is
// left to matchInt.
func matchFloat(t *Tokenizer) (*Token, error) {
	sb := &strings.Builder{}
	readSign(t, sb)

	seenDot := false
	digits := 0
	for {
		r, ok := t.Peek(0)
		if !ok {
			break
		}

		if isDigit(r) {
			digits++
		} else if r == '.' {
			if seenDot {
				pos := t.Position()
				return nil, report.Raise(report.ErrLex, &pos, "illegal second decimal point in float literal")
			}

			// A dot not followed by a digit is only part of the literal if
			// it trails digits: eg. `1.`.
			if next, ok := t.Peek(1); digits == 0 && (!ok || !isDigit(next)) {
				break
			}

			seenDot = true
		} else {
			break
		}

		sb.WriteRune(r)
		t.Advance(1)
	}

	if !seenDot || digits == 0 {
		return nil, nil
	}

	value, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		pos := t.CheckpointPosition()
		return nil, report.Raise(report.ErrLex, &pos, "unable to parse float literal `%s`", sb.String())
	}

	return makeToken(t, TOK_FLOATLIT, strconv.FormatFloat(value, 'f', -1, 64)), nil
}

// matchInt matches an integer literal: an optional sign followed by digits.
func matchInt(t *Tokenizer) (*Token, error) {
	sign := &strings.Builder{}
	readSign(t, sign)

	digits := &strings.Builder{}
	for {
		r, ok := t.Peek(0)
		if !ok || !isDigit(r) {
			break
		}

		digits.WriteRune(r)
		t.Advance(1)
	}

	if digits.Len() == 0 {
		return nil, nil
	}

	// the magnitude is an unsigned 64-bit integer
	magnitude, err := strconv.ParseUint(digits.String(), 10, 64)
	if err != nil {
		pos := t.CheckpointPosition()
		return nil, report.Raise(report.ErrLex, &pos, "integer literal `%s` is out of range", sign.String()+digits.String())
	}

	value := strconv.FormatUint(magnitude, 10)
	if sign.String() == "-" && magnitude != 0 {
		value = "-" + value
	}

	return makeToken(t, TOK_INTLIT, value), nil
}

// -----------------------------------------------------------------------------

// matchString matches a string literal (`"..."`), a char literal (`'c'`) or a
// raw string literal (`r"..."`).
func matchString(t *Tokenizer) (*Token, error) {
	r, ok := t.Peek(0)
	if !ok {
		return nil, nil
	}

	switch r {
	case '"':
		t.Advance(1)
		value, err := readQuoted(t, '"', true)
		if err != nil {
			return nil, err
		}

		return makeToken(t, TOK_STRINGLIT, value), nil
	case '\'':
		t.Advance(1)
		value, err := readQuoted(t, '\'', true)
		if err != nil {
			return nil, err
		}

		if utf8.RuneCountInString(value) != 1 {
			pos := t.CheckpointPosition()
			return nil, report.Raise(report.ErrLex, &pos, "char literal must contain exactly one character")
		}

		return makeToken(t, TOK_CHARLIT, value), nil
	case 'r':
		if next, ok := t.Peek(1); !ok || next != '"' {
			return nil, nil
		}

		t.Advance(2)
		value, err := readQuoted(t, '"', false)
		if err != nil {
			return nil, err
		}

		return makeToken(t, TOK_STRINGLIT, value), nil
	}

	return nil, nil
}

// escapeSequences maps the character after a backslash to the character it
// stands for.
var escapeSequences = map[rune]rune{
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// readQuoted reads the content of a literal up to and including the closing
// delimiter.  The opening delimiter must already be consumed.
func readQuoted(t *Tokenizer, delim rune, escapes bool) (string, error) {
	sb := &strings.Builder{}

	for {
		r, ok := t.Peek(0)
		if !ok {
			pos := t.CheckpointPosition()
			return "", report.Raise(report.ErrLex, &pos, "unterminated string literal")
		}

		if r == delim {
			t.Advance(1)
			return sb.String(), nil
		}

		if r == '\\' && escapes {
			pos := t.Position()

			esc, ok := t.Peek(1)
			if !ok {
				start := t.CheckpointPosition()
				return "", report.Raise(report.ErrLex, &start, "unterminated string literal")
			}

			value, ok := escapeSequences[esc]
			if !ok {
				return "", report.Raise(report.ErrLex, &pos, "invalid escape sequence `\\%c`", esc)
			}

			sb.WriteRune(value)
			t.Advance(2)
			continue
		}

		sb.WriteRune(r)
		t.Advance(1)
	}
}

// -----------------------------------------------------------------------------

// matchIdentifier matches an identifier: a greedy run of letters, digits, `_`,
// `?` and `'`.
func matchIdentifier(t *Tokenizer) (*Token, error) {
	sb := &strings.Builder{}
	for {
		r, ok := t.Peek(0)
		if !ok || !isIdentRune(r) {
			break
		}

		sb.WriteRune(r)
		t.Advance(1)
	}

	if sb.Len() == 0 {
		return nil, nil
	}

	return makeToken(t, TOK_IDENT, sb.String()), nil
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '?' || r == '\'' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
