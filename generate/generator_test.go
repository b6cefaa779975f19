package generate

import (
	"errors"
	"golf/ast"
	"golf/report"
	"golf/syntax"
	"golf/walk"
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

// transpile parses, checks and generates a program.
func transpile(t *testing.T, src string) string {
	t.Helper()

	stmts, err := syntax.Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %s", err)
	}
	if _, err := walk.WalkProgram(stmts, walk.NewGlobalScope()); err != nil {
		t.Fatalf("WalkProgram failed: %s", err)
	}

	out, err := NewGenerator("").Generate(stmts)
	if err != nil {
		t.Fatalf("Generate failed: %s", err)
	}
	return out
}

// eval runs the generated code followed by `return expr` and returns the
// result.
func eval(t *testing.T, code, expr string) lua.LValue {
	t.Helper()

	L := lua.NewState()
	defer L.Close()

	if err := L.DoString(code + "return " + expr + "\n"); err != nil {
		t.Fatalf("running generated Lua failed: %s\n%s", err, code)
	}
	return L.Get(-1)
}

const fibProgram = `fib = {
    |0| 0

    a = 10

    |1| 1
    |n| (fib n - 1) + fib n - 2
}

twice = {
    |n| 2 * n
}

twice_fib = twice . fib

a = twice_fib 10
`

func TestGenerateFunctionText(t *testing.T) {
	got := transpile(t, "twice = { |n| 2 * n }")

	want := `local twice;
twice = setmetatable({}, {
  __call = function(...)
    local __argc = select("#", ...);
    local __args = {...};
    if __argc == 2 then
      local n = __args[2];
      return (2 * n);
    end
    error("no arm accepts " .. (__argc - 1) .. " argument(s)");
  end,
});
`
	if got != want {
		t.Errorf("Generate() =\n%s\nwant\n%s", got, want)
	}
}

func TestGenerateGuards(t *testing.T) {
	got := transpile(t, "f = { |x, 0| x }")

	for _, want := range []string{
		"if __argc == 3 then",
		"local x = __args[2];",
		"if __args[3] == 0 then",
		"return x;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("generated code is missing %q:\n%s", want, got)
		}
	}
}

func TestGenerateExpressions(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a = 1 + 2 * 3", "local a = (1 + (2 * 3));\n"},
		{"a = 1.5", "local a = 1.5;\n"},
		{"a = 18446744073709551615", "local a = 18446744073709551616;\n"},
		{"a = -3", "local a = -3;\n"},
		{"a = 1\nb = a - -3", "local a = 1;\nlocal b = (a - -3);\n"},
		{"a = 2 ^ 3 % 2", "local a = ((2 ^ 3) % 2);\n"},
		{"a = 1 ~= 2", "local a = (1 ~= 2);\n"},
		{`s = "a" ++ "b"`, "local s = (\"a\" .. \"b\");\n"},
		{`s = "q\"\n\t"`, "local s = \"q\\\"\\n\\t\";\n"},
		{"c = 'x'", "local c = \"x\";\n"},
		{"b = true", "local b = true;\n"},
		{"1 + 2", "local _ = (1 + 2);\n"},
		{"f = { |x| x }\nf 1, 2", "(f)(1, 2);\n"},
		{"xs = 1\nx = xs[0]", "local x = (xs)[0];\n"},
		{"f = { |x| x }\ny = 3 |> f", "local y = (f)(3);\n"},
		{"f = { |x| x }\ny = f <| 3", "local y = (f)(3);\n"},
		{"f = { |x| x }\ng = f . f", "local g = function(__a) return (f)((f)(__a)) end;\n"},
		{"end = 1\nthen = end", "local _end = 1;\nlocal _then = _end;\n"},
		{"empty? = 1\nx' = empty?", "local _empty_Q = 1;\nlocal _x_P = _empty_Q;\n"},
		{"select = 1\nerror = select", "local _select = 1;\nlocal _error = _select;\n"},
		{"a_Q = 1\n_b = a_Q", "local a_Q = 1;\nlocal ___b = a_Q;\n"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := transpile(t, tt.src); !strings.HasSuffix(got, tt.want) {
				t.Errorf("Generate(%q) =\n%s\nwant suffix\n%s", tt.src, got, tt.want)
			}
		})
	}
}

func TestReservedPrefix(t *testing.T) {
	stmts, err := syntax.Parse("local = 1")
	if err != nil {
		t.Fatal(err)
	}

	out, err := NewGenerator("golf_").Generate(stmts)
	if err != nil {
		t.Fatal(err)
	}
	if out != "local golf_local = 1;\n" {
		t.Errorf("Generate() = %q", out)
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		prefix string
		src    string
		want   string
	}{
		{"", "twice_fib", "twice_fib"},
		{"", "a_Q", "a_Q"},
		{"", "a?", "_a_Q"},
		{"", "it's", "_it_Ps"},
		{"", "end", "_end"},
		{"", "_end", "___end"},
		{"", "_", "___"},
		{"", "__args", "_____args"},
		{"", "setmetatable", "_setmetatable"},
		{"", "caf\u00e9", "_caf_U0000E9"},
		{"golf_", "_x", "_x"},
		{"golf_", "_", "golf___"},
		{"golf_", "golf_x", "golf_golf__x"},
		{"golf_", "__a", "golf_____a"},
		{"golf", "end", "golf_end"},
	}

	for _, tt := range tests {
		t.Run(tt.prefix+tt.src, func(t *testing.T) {
			if got := NewGenerator(tt.prefix).name(tt.src); got != tt.want {
				t.Errorf("name(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestNamesAreDistinct(t *testing.T) {
	srcs := []string{
		"a", "a?", "a_Q", "_a_Q", "a'", "a_P", "a??", "a?_Q", "a_QQ",
		"end", "_end", "__end", "___end", "_", "__", "select", "_select",
		"x\u00e9", "x_U0000E9", "_x_U0000E9", "__a", "__args", "_a",
	}

	for _, prefix := range []string{"", "golf_"} {
		g := NewGenerator(prefix)
		seen := make(map[string]string)

		for _, src := range srcs {
			lowered := g.name(src)
			if other, ok := seen[lowered]; ok {
				t.Errorf("prefix %q: %q and %q both lower to %q", prefix, src, other, lowered)
			}
			seen[lowered] = src

			if _, ok := reservedNames[lowered]; ok {
				t.Errorf("prefix %q: %q lowers to the reserved name %q", prefix, src, lowered)
			}
		}
	}
}

func TestNamesAtRuntime(t *testing.T) {
	code := transpile(t, `a? = 1
a_Q = 2
end = 3
_end = 4
select = 5
error = 6
setmetatable = 7
f = { |x| x }
g = { |x| x }
p = a?
q = end
r = f 8
s = g . f`)

	tests := []struct {
		expr string
		want lua.LValue
	}{
		{"p", lua.LNumber(1)},
		{"a_Q", lua.LNumber(2)},
		{"q", lua.LNumber(3)},
		{"___end", lua.LNumber(4)},
		{"_select", lua.LNumber(5)},
		{"r", lua.LNumber(8)},
		{"s(9)", lua.LNumber(9)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := eval(t, code, tt.expr); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}

	// the dispatch failure still reaches Lua's error function
	L := lua.NewState()
	defer L.Close()
	if err := L.DoString(code + "return f(1, 2)\n"); err == nil || !strings.Contains(err.Error(), "no arm accepts 2 argument(s)") {
		t.Errorf("calling with the wrong arity: err = %v", err)
	}
}

func TestRecursiveDispatch(t *testing.T) {
	code := transpile(t, fibProgram)

	tests := []struct {
		expr string
		want lua.LNumber
	}{
		{"fib(0)", 0},
		{"fib(1)", 1},
		{"fib(5)", 5},
		{"fib(10)", 55},
		{"twice(21)", 42},
		{"twice_fib(10)", 110},
		{"a", 110},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := eval(t, code, tt.expr); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}

	if !strings.Contains(code, "local twice_fib = function(__a) return (twice)((fib)(__a)) end;") {
		t.Errorf("composition does not lower to twice(fib(x)):\n%s", code)
	}
	if !strings.Contains(code, "local a = (twice_fib)(10);") {
		t.Errorf("call does not lower to a parenthesized application:\n%s", code)
	}
}

func TestDispatchOrder(t *testing.T) {
	code := transpile(t, `which = { |0| "zero" |1| "one" |n| n }
plane = {
  |0, 0| "origin"
  |x, 0| "axis"
  |x, y| "plane"
}
arity = { |a| 1 |a, b| 2 }`)

	tests := []struct {
		expr string
		want lua.LValue
	}{
		{"which(0)", lua.LString("zero")},
		{"which(1)", lua.LString("one")},
		{"which(5)", lua.LNumber(5)},
		{"which('0')", lua.LString("0")},
		{"plane(0, 0)", lua.LString("origin")},
		{"plane(3, 0)", lua.LString("axis")},
		{"plane(3, 4)", lua.LString("plane")},
		{"arity(9)", lua.LNumber(1)},
		{"arity(9, 9)", lua.LNumber(2)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := eval(t, code, tt.expr); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestDispatchFailure(t *testing.T) {
	code := transpile(t, "f = { |x| x }")

	L := lua.NewState()
	defer L.Close()

	err := L.DoString(code + "return f(1, 2)\n")
	if err == nil || !strings.Contains(err.Error(), "no arm accepts 2 argument(s)") {
		t.Errorf("calling with the wrong arity: err = %v", err)
	}
}

func TestFunctionBodies(t *testing.T) {
	code := transpile(t, `f = {
  x = 2
  x * 3
}
g = { |x| y = x + 1 }
v = {
  |+, other| other * 10
  |x| x
}`)

	tests := []struct {
		expr string
		want lua.LNumber
	}{
		{"f()", 6},
		{"g(1)", 2},
		{"v + 3", 30},
		{"v(7)", 7},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := eval(t, code, tt.expr); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}

	if strings.Count(code, "error(") != 2 {
		t.Errorf("only bodies ending in an arm should raise on no match:\n%s", code)
	}
}

func TestGenerateInternalErrors(t *testing.T) {
	tests := []struct {
		name string
		stmt ast.Stmt
	}{
		{"top level arm", &ast.ExprStmt{Expr: &ast.Arm{Body: &ast.ExprStmt{Expr: &ast.Number{}}}}},
		{"end of input", &ast.ExprStmt{Expr: &ast.EndOfInput{}}},
		{"index target", &ast.Assignment{Left: &ast.Index{Base: &ast.Identifier{Name: "a"}, Index: &ast.Number{}}, Right: &ast.Number{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator("").Generate([]ast.Stmt{tt.stmt})

			var cerr *report.CompileError
			if !errors.As(err, &cerr) || cerr.Kind != report.ErrGenerate {
				t.Errorf("Generate() error = %v, want an internal error", err)
			}
		})
	}
}
