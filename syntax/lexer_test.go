package syntax

import (
	"errors"
	"golf/report"
	"testing"

	"github.com/kr/pretty"
)

// lexed is the comparable summary of a token used by the lexer tests.
type lexed struct {
	Kind  string
	Value string
}

func summarize(toks []*Token) []lexed {
	out := make([]lexed, len(toks))
	for i, tok := range toks {
		out[i] = lexed{KindName(tok.Kind), tok.Value}
	}
	return out
}

func TestTokenizeSingle(t *testing.T) {
	tests := []struct {
		src  string
		kind int
		want string
	}{
		{"12.5", TOK_FLOATLIT, "12.5"},
		{"42", TOK_INTLIT, "42"},
		{"-3", TOK_INTLIT, "-3"},
		{"+7", TOK_INTLIT, "7"},
		{"-0.25", TOK_FLOATLIT, "-0.25"},
		{"007", TOK_INTLIT, "7"},
		{"-0", TOK_INTLIT, "0"},
		{"9223372036854775808", TOK_INTLIT, "9223372036854775808"},
		{"18446744073709551615", TOK_INTLIT, "18446744073709551615"},
		{"-18446744073709551615", TOK_INTLIT, "-18446744073709551615"},
		{"1.", TOK_FLOATLIT, "1"},
		{"true", TOK_BOOLLIT, "true"},
		{"false", TOK_BOOLLIT, "false"},
		{"true1", TOK_IDENT, "true1"},
		{"true_", TOK_IDENT, "true_"},
		{"false?", TOK_IDENT, "false?"},
		{"fib'", TOK_IDENT, "fib'"},
		{"empty?", TOK_IDENT, "empty?"},
		{"r", TOK_IDENT, "r"},
		{`"hi\n"`, TOK_STRINGLIT, "hi\n"},
		{`"say \"x\""`, TOK_STRINGLIT, `say "x"`},
		{`r"a\nb"`, TOK_STRINGLIT, `a\nb`},
		{`'x'`, TOK_CHARLIT, "x"},
		{`'\t'`, TOK_CHARLIT, "\t"},
		{`'é'`, TOK_CHARLIT, "é"},
		{"|>", TOK_OPERATOR, "|>"},
		{"<|", TOK_OPERATOR, "<|"},
		{"++", TOK_OPERATOR, "++"},
		{"~=", TOK_OPERATOR, "~="},
		{">=", TOK_OPERATOR, ">="},
		{"|", TOK_SYMBOL, "|"},
		{"=", TOK_SYMBOL, "="},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks, err := Tokenize(tt.src)
			if err != nil {
				t.Fatalf("Tokenize(%q) failed: %s", tt.src, err)
			}
			if len(toks) != 1 {
				t.Fatalf("Tokenize(%q) = %v, want one token", tt.src, toks)
			}
			if toks[0].Kind != tt.kind || toks[0].Value != tt.want {
				t.Errorf("Tokenize(%q) = %s, want %s(%q)", tt.src, toks[0], KindName(tt.kind), tt.want)
			}
		})
	}
}

func TestTokenizeProgram(t *testing.T) {
	src := "fib = {\n    |0| 0\n    |n| (fib n - 1) + fib n-2\n}\n"

	toks, err := Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}

	want := []lexed{
		{"identifier", "fib"}, {"symbol", "="}, {"symbol", "{"}, {"newline", "\n"},
		{"indent", "    "}, {"symbol", "|"}, {"int", "0"}, {"symbol", "|"}, {"int", "0"}, {"newline", "\n"},
		{"indent", "    "}, {"symbol", "|"}, {"identifier", "n"}, {"symbol", "|"},
		{"symbol", "("}, {"identifier", "fib"}, {"identifier", "n"}, {"operator", "-"}, {"int", "1"}, {"symbol", ")"},
		{"operator", "+"}, {"identifier", "fib"}, {"identifier", "n"}, {"operator", "-"}, {"int", "2"}, {"newline", "\n"},
		{"symbol", "}"}, {"newline", "\n"},
	}

	if diff := pretty.Diff(summarize(toks), want); len(diff) > 0 {
		t.Errorf("token stream mismatch:\n%s", diff)
	}
}

func TestSignAbsorption(t *testing.T) {
	tests := []struct {
		src  string
		want []lexed
	}{
		{"a - 3", []lexed{{"identifier", "a"}, {"operator", "-"}, {"int", "3"}}},
		{"a -3", []lexed{{"identifier", "a"}, {"operator", "-"}, {"int", "3"}}},
		{"(a)-3", []lexed{{"symbol", "("}, {"identifier", "a"}, {"symbol", ")"}, {"operator", "-"}, {"int", "3"}}},
		{"2 * -3", []lexed{{"int", "2"}, {"operator", "*"}, {"int", "-3"}}},
		{"x = -1.5", []lexed{{"identifier", "x"}, {"symbol", "="}, {"float", "-1.5"}}},
		{"|-1|", []lexed{{"symbol", "|"}, {"int", "-1"}, {"symbol", "|"}}},
		{"- x", []lexed{{"operator", "-"}, {"identifier", "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks, err := Tokenize(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			if diff := pretty.Diff(summarize(toks), tt.want); len(diff) > 0 {
				t.Errorf("Tokenize(%q) mismatch:\n%s", tt.src, diff)
			}
		})
	}
}

func TestTokenPositions(t *testing.T) {
	toks, err := Tokenize("a = 1\n  b")
	if err != nil {
		t.Fatal(err)
	}

	want := []report.TextPosition{{Line: 1, Col: 1}, {Line: 1, Col: 3}, {Line: 1, Col: 5}, {Line: 1, Col: 6}, {Line: 2, Col: 1}, {Line: 2, Col: 3}}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tok := range toks {
		if tok.Pos != want[i] {
			t.Errorf("token %d (%s) at %s, want %s", i, tok, tok.Pos, want[i])
		}
	}
}

func TestIndentOnlyAtLineStart(t *testing.T) {
	toks, err := Tokenize("a  +\t b")
	if err != nil {
		t.Fatal(err)
	}

	for _, tok := range toks {
		if tok.Kind == TOK_INDENT || tok.Kind == TOK_WHITESPACE {
			t.Errorf("unexpected %s token in %v", KindName(tok.Kind), toks)
		}
	}

	// trailing whitespace never swallows the newline
	toks, err = Tokenize("a   \nb")
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 3 || toks[1].Kind != TOK_EOL {
		t.Errorf("Tokenize(trailing whitespace) = %v", toks)
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
		pos  report.TextPosition
	}{
		{"second decimal point", "x = 1.2.3", "illegal second decimal point in float literal", report.TextPosition{Line: 1, Col: 8}},
		{"invalid escape", `s = "a\qb"`, "invalid escape sequence `\\q`", report.TextPosition{Line: 1, Col: 7}},
		{"unterminated string", `s = "abc`, "unterminated string literal", report.TextPosition{Line: 1, Col: 5}},
		{"unterminated raw string", `s = r"abc`, "unterminated string literal", report.TextPosition{Line: 1, Col: 5}},
		{"long char", "c = 'ab'", "char literal must contain exactly one character", report.TextPosition{Line: 1, Col: 5}},
		{"empty char", "c = ''", "char literal must contain exactly one character", report.TextPosition{Line: 1, Col: 5}},
		{"int overflow", "n = 18446744073709551616", "integer literal `18446744073709551616` is out of range", report.TextPosition{Line: 1, Col: 5}},
		{"negative int overflow", "n = -18446744073709551616", "integer literal `-18446744073709551616` is out of range", report.TextPosition{Line: 1, Col: 5}},
		{"long int overflow", "n = 99999999999999999999", "integer literal `99999999999999999999` is out of range", report.TextPosition{Line: 1, Col: 5}},
		{"unexpected character", "a\n  @", "unexpected character `@`", report.TextPosition{Line: 2, Col: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.src)

			var cerr *report.CompileError
			if !errors.As(err, &cerr) {
				t.Fatalf("Tokenize(%q) error = %v, want a compile error", tt.src, err)
			}
			if cerr.Kind != report.ErrLex {
				t.Errorf("error kind = %d, want ErrLex", cerr.Kind)
			}
			if cerr.Message != tt.msg {
				t.Errorf("error message = %q, want %q", cerr.Message, tt.msg)
			}
			if cerr.Position == nil || *cerr.Position != tt.pos {
				t.Errorf("error position = %v, want %s", cerr.Position, tt.pos)
			}
		})
	}
}

func TestLexerStaysAtEOF(t *testing.T) {
	l := NewLexer("x  ")

	tok, err := l.NextToken()
	if err != nil || tok.Kind != TOK_IDENT {
		t.Fatalf("NextToken() = %v, %v", tok, err)
	}

	for i := 0; i < 2; i++ {
		tok, err = l.NextToken()
		if err != nil || tok.Kind != TOK_EOF {
			t.Fatalf("NextToken() after input = %v, %v", tok, err)
		}
	}
}

func TestCustomMatchers(t *testing.T) {
	l := NewLexerWithMatchers("ab", []Matcher{
		&ConstantMatcher{Kind: TOK_SYMBOL, Constants: []string{"a", "b"}},
	})

	var got []string
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatal(err)
		}
		if tok.Kind == TOK_EOF {
			break
		}
		got = append(got, tok.Value)
	}

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("custom lexer produced %v", got)
	}
}
