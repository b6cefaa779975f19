package ast

import (
	"testing"
)

func TestOperandPrecedence(t *testing.T) {
	tests := []struct {
		symbol string
		op     Operand
		prec   int
	}{
		{"^", OpPow, 0},
		{"*", OpMul, 1},
		{"/", OpDiv, 1},
		{"%", OpMod, 1},
		{"+", OpAdd, 2},
		{"-", OpSub, 2},
		{"==", OpEqual, 3},
		{"~=", OpNotEqual, 3},
		{"<", OpLt, 4},
		{">=", OpGtEq, 4},
		{"++", OpConcat, 5},
		{".", OpCombine, 5},
		{"<|", OpPipeLeft, 5},
		{"|>", OpPipeRight, 5},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			op, ok := LookupOperand(tt.symbol)
			if !ok {
				t.Fatalf("LookupOperand(%q) failed", tt.symbol)
			}
			if op != tt.op {
				t.Errorf("LookupOperand(%q) = %s, want %s", tt.symbol, op, tt.op)
			}
			if op.Precedence() != tt.prec {
				t.Errorf("%s.Precedence() = %d, want %d", op, op.Precedence(), tt.prec)
			}
			if op.Symbol() != tt.symbol {
				t.Errorf("%s.Symbol() = %q, want %q", op, op.Symbol(), tt.symbol)
			}
		})
	}

	if _, ok := LookupOperand("&&"); ok {
		t.Error("LookupOperand(\"&&\") succeeded")
	}
}

func TestMetamethods(t *testing.T) {
	if mm, ok := OpAdd.Metamethod(); !ok || mm != "__add" {
		t.Errorf("OpAdd.Metamethod() = %q, %v", mm, ok)
	}
	if mm, ok := OpConcat.Metamethod(); !ok || mm != "__concat" {
		t.Errorf("OpConcat.Metamethod() = %q, %v", mm, ok)
	}
	for _, op := range []Operand{OpCombine, OpPipeLeft, OpPipeRight, OpGt, OpGtEq, OpNotEqual} {
		if _, ok := op.Metamethod(); ok {
			t.Errorf("%s should not be overloadable", op)
		}
	}
}

func TestSprint(t *testing.T) {
	ident := func(name string) Expr { return &Identifier{Name: name} }
	num := func(v float64) Expr { return &Number{Value: v} }

	fn := &Function{Arms: &Block{Stmts: []Stmt{
		&ExprStmt{Expr: &Arm{Params: []Expr{num(0)}, Body: &ExprStmt{Expr: num(0)}}},
		&Assignment{Left: ident("a"), Right: num(10)},
		&ExprStmt{Expr: &Arm{
			Params: []Expr{ident("n")},
			Body:   &ExprStmt{Expr: &Call{Callee: ident("fib"), Args: []Expr{&Operation{Left: ident("n"), Op: OpSub, Right: num(1)}}}},
		}},
	}}}

	got := SprintStmt(&Assignment{Left: ident("fib"), Right: fn})
	want := "Assign(fib, Function{Arm([0], 0); Assign(a, 10); Arm([n], Call(fib, [Sub(n, 1)]))})"
	if got != want {
		t.Errorf("SprintStmt() =\n%s\nwant\n%s", got, want)
	}

	if got := Sprint(&Index{Base: ident("xs"), Index: num(1.5)}); got != "Index(xs, 1.5)" {
		t.Errorf("Sprint(Index) = %s", got)
	}
	if got := Sprint(&Str{Value: "a\"b"}); got != `"a\"b"` {
		t.Errorf("Sprint(Str) = %s", got)
	}
}

func TestArmClassification(t *testing.T) {
	catchAll := &Arm{Params: []Expr{&Identifier{Name: "a"}, &Identifier{Name: "b"}}}
	if !catchAll.IsCatchAll() || catchAll.IsOperatorArm() {
		t.Error("identifier-only arm misclassified")
	}

	guarded := &Arm{Params: []Expr{&Identifier{Name: "a"}, &Number{Value: 1}}}
	if guarded.IsCatchAll() {
		t.Error("guarded arm classified as catch-all")
	}

	operator := &Arm{Params: []Expr{&OperandExpr{Op: OpAdd}, &Identifier{Name: "other"}}}
	if !operator.IsOperatorArm() {
		t.Error("operator arm not recognized")
	}
}
