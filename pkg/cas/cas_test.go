package cas

import "testing"

// The end-to-end shape an embedder sees: build an operator expression with
// the generic arithmetic, apply it to a function, evaluate.
func TestOperatorAlgebraEndToEnd(t *testing.T) {
	// Two scalar lifts combined through the ring act pointwise.
	shift := NumberToOperator(Int(1)) // scales by 1, acts as pass-through scale
	double := NumberToOperator(Int(2))

	combined, err := Add(shift, double) // (1 + 2) as operators: f -> 1*f + 2*f
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	op, ok := combined.(*Operator)
	if !ok {
		t.Fatalf("Add = %T, want *Operator", combined)
	}

	square := NewFunction(Symbol("sq"), Exactly(1), func(args ...Expr) (Expr, error) {
		return Mul(args[0], args[0])
	})
	f, err := op.ApplyTo(square)
	if err != nil {
		t.Fatalf("ApplyTo error: %v", err)
	}
	got, err := f.Apply(Int(4))
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if got != Int(48) { // 1*16 + 2*16
		t.Errorf("((1+2) sq)(4) = %s, want 48", got.Inspect())
	}
}

func TestLiteralAndWalkerSurface(t *testing.T) {
	lit := LiteralApply(TypeNumeric, Symbol("add"), Symbol("x"), Int(2))
	if !IsLiteral(lit) || !IsAbstract(lit) {
		t.Fatal("literal predicates failed")
	}
	vars := Variables(lit)
	if len(vars) != 1 || vars[0] != Symbol("x") {
		t.Errorf("Variables = %v, want [x]", vars)
	}

	substituted := Substitute(lit, Symbol("x"), Int(5))
	result, err := Evaluate(ExpressionOf(substituted), nil, map[Symbol]Applicable{
		"add": Fn(func(args ...Expr) (Expr, error) { return Add(args[0], args[1]) }),
	})
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if result != Int(7) {
		t.Errorf("result = %s, want 7", result.Inspect())
	}
}

func TestFreezeSurface(t *testing.T) {
	o, err := Mul(Identity(), Identity())
	if err != nil {
		t.Fatalf("Mul error: %v", err)
	}
	frozen := Freeze(o)
	want := Apply(Symbol("mul"), Symbol("identity"), Symbol("identity"))
	if Compare(frozen, want) != 0 {
		t.Errorf("Freeze = %s, want %s", frozen.Inspect(), want.Inspect())
	}
}
