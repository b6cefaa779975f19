package syntax

import (
	"golf/report"
)

// Traveler is a cursor over a materialized token sequence.  The parser uses it
// to look at, step over and assert tokens.
type Traveler struct {
	tokens []*Token
	top    int
}

// NewTraveler creates a traveler positioned on the first token.
func NewTraveler(tokens []*Token) *Traveler {
	return &Traveler{tokens: tokens}
}

// Next moves the cursor forward one token.  It returns false and does nothing
// if the cursor is already past the last token.
func (tr *Traveler) Next() bool {
	if tr.top < len(tr.tokens) {
		tr.top++
		return true
	}

	return false
}

// Prev moves the cursor back one token.  It returns false and does nothing if
// the cursor is on the first token.
func (tr *Traveler) Prev() bool {
	if tr.top > 0 {
		tr.top--
		return true
	}

	return false
}

// Remaining returns len(tokens) - top + 1.  A result of 1 or less means the
// cursor has run past the last token and must be treated as end of input.
func (tr *Traveler) Remaining() int {
	return len(tr.tokens) - tr.top + 1
}

// Current returns the token under the cursor.  Past the end, this is the last
// token.  An empty token sequence yields an EOF token at the start of the
// source.
func (tr *Traveler) Current() *Token {
	if len(tr.tokens) == 0 {
		return &Token{Kind: TOK_EOF, Pos: report.TextPosition{Line: 1, Col: 1}}
	}

	if tr.top >= len(tr.tokens) {
		return tr.tokens[len(tr.tokens)-1]
	}

	return tr.tokens[tr.top]
}

// CurrentContent returns the value of the current token.
func (tr *Traveler) CurrentContent() string {
	return tr.Current().Value
}

// Expect checks that the current token is of the given kind and returns its
// value.  It does not consume the token.
func (tr *Traveler) Expect(kind int) (string, error) {
	if tr.Remaining() > 1 && tr.Current().Kind == kind {
		return tr.CurrentContent(), nil
	}

	return "", tr.unexpected(KindName(kind))
}

// ExpectContent checks that the current token has the given value and returns
// it.  It does not consume the token.
func (tr *Traveler) ExpectContent(content string) (string, error) {
	if tr.Remaining() > 1 && tr.CurrentContent() == content {
		return content, nil
	}

	return "", tr.unexpected(content)
}

// unexpected creates an error at the current token reporting that want was
// expected instead.
func (tr *Traveler) unexpected(want string) error {
	cur := tr.Current()
	pos := cur.Pos

	found := cur.describe()
	if tr.Remaining() <= 1 {
		found = KindName(TOK_EOF)
	}

	return report.Raise(report.ErrParse, &pos, "expected '%s', found '%s'", want, found)
}
