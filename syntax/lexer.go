package syntax

import "golf/report"

// Lexer is responsible for tokenizing a source text.  It drives a tokenizer
// through an ordered matcher set, returning the first token any matcher
// recognizes.  Whitespace tokens are skipped.  A lexer consumes its tokenizer:
// once it has returned the EOF token, it keeps returning EOF.
type Lexer struct {
	tz       *Tokenizer
	matchers []Matcher
}

// NewLexer creates a new lexer over the source text using the default matcher
// set.
func NewLexer(src string) *Lexer {
	return NewLexerWithMatchers(src, DefaultMatchers())
}

// NewLexerWithMatchers creates a new lexer with a custom matcher set.  The
// matchers are tried in the order given.
func NewLexerWithMatchers(src string, matchers []Matcher) *Lexer {
	return &Lexer{tz: NewTokenizer(src), matchers: matchers}
}

// NextToken retrieves the next non-whitespace token from the input.  If the
// input has ended, this will be an EOF token.
func (l *Lexer) NextToken() (*Token, error) {
	for !l.tz.End() {
		tok, err := l.matchToken()
		if err != nil {
			return nil, err
		}

		if tok.Kind != TOK_WHITESPACE {
			return tok, nil
		}
	}

	return &Token{Kind: TOK_EOF, Pos: l.tz.Position()}, nil
}

// matchToken tries each matcher in order and returns the first match.
func (l *Lexer) matchToken() (*Token, error) {
	for _, m := range l.matchers {
		tok, err := l.tz.TryMatch(m)
		if err != nil {
			return nil, err
		} else if tok != nil {
			return tok, nil
		}
	}

	r, _ := l.tz.Peek(0)
	pos := l.tz.Position()
	return nil, report.Raise(report.ErrLex, &pos, "unexpected character `%c`", r)
}

// Tokenize lexes the whole source text.  The returned tokens do not include
// the EOF token.
func Tokenize(src string) ([]*Token, error) {
	l := NewLexer(src)

	var toks []*Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}

		if tok.Kind == TOK_EOF {
			return toks, nil
		}

		toks = append(toks, tok)
	}
}
