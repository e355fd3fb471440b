package expr

import "testing"

func TestCompareTypePrecedence(t *testing.T) {
	tests := []struct {
		name string
		a, b Node
		want int
	}{
		{"int below symbol", Int(3), Symbol("x"), -1},
		{"negative int below symbol", Int(-10), Symbol("a"), -1},
		{"zero below symbol", Int(0), Symbol("a"), -1},
		{"float below symbol", Float(2.5), Symbol("a"), -1},
		{"symbol below string", Symbol("x"), String("s"), -1},
		{"string below list", String("zz"), List{Int(1), Int(2)}, -1},
		{"int below list", Int(99), List{Int(1)}, -1},
		{"symbol above int", Symbol("x"), Int(3), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a.Inspect(), tt.b.Inspect(), got, tt.want)
			}
			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.b.Inspect(), tt.a.Inspect(), got, -tt.want)
			}
		})
	}
}

func TestCompareEmptyList(t *testing.T) {
	empty := List{}
	if got := Compare(empty, List{}); got != 0 {
		t.Errorf("Compare((), ()) = %d, want 0", got)
	}
	others := []Node{Int(-5), Int(0), Float(1.5), Symbol("x"), String("s"), List{Int(1)}}
	for _, o := range others {
		if got := Compare(empty, o); got != -1 {
			t.Errorf("Compare((), %s) = %d, want -1", o.Inspect(), got)
		}
		if got := Compare(o, empty); got != 1 {
			t.Errorf("Compare(%s, ()) = %d, want 1", o.Inspect(), got)
		}
	}
}

func TestCompareReals(t *testing.T) {
	tests := []struct {
		name string
		a, b Node
		want int
	}{
		{"int order", Int(1), Int(2), -1},
		{"int equal", Int(7), Int(7), 0},
		{"float order", Float(1.5), Float(1.6), -1},
		{"mixed int float", Int(2), Float(2.5), -1},
		{"mixed equal value", Int(2), Float(2.0), 0},
		{"negative", Int(-3), Int(-2), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a.Inspect(), tt.b.Inspect(), got, tt.want)
			}
		})
	}
}

func TestCompareSymbolsAndStrings(t *testing.T) {
	if got := Compare(Symbol("alpha"), Symbol("beta")); got != -1 {
		t.Errorf("Compare(alpha, beta) = %d, want -1", got)
	}
	if got := Compare(Symbol("x"), Symbol("x")); got != 0 {
		t.Errorf("Compare(x, x) = %d, want 0", got)
	}
	if got := Compare(String("abc"), String("abd")); got != -1 {
		t.Errorf("Compare(abc, abd) = %d, want -1", got)
	}
}

func TestCompareLists(t *testing.T) {
	tests := []struct {
		name string
		a, b Node
		want int
	}{
		{"shorter wins", List{Int(1), Int(2)}, List{Int(1), Int(2), Int(3)}, -1},
		{"head dominates", List{Int(2)}, List{Int(1)}, 1},
		{"head over tail", List{Int(2), Int(0)}, List{Int(1), Int(9)}, 1},
		{"equal", List{Symbol("x"), Int(1)}, List{Symbol("x"), Int(1)}, 0},
		{"recursive", List{List{Int(1)}}, List{List{Int(2)}}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a.Inspect(), tt.b.Inspect(), got, tt.want)
			}
		})
	}
}

func TestCompareTotalOrderProperties(t *testing.T) {
	atoms := []Node{
		List{},
		Int(-1), Int(0), Int(3), Float(2.5),
		Symbol("a"), Symbol("z"),
		String("a"), String("b"),
		List{Int(1)}, List{Int(1), Int(2)}, List{Symbol("f"), Symbol("x")},
		NewLiteral(TypeNumeric, Symbol("x")),
		NewLiteral(TypeVector, Symbol("v")),
	}
	for _, a := range atoms {
		for _, b := range atoms {
			ab, ba := Compare(a, b), Compare(b, a)
			if ab != -ba {
				t.Errorf("antisymmetry: Compare(%s,%s)=%d but Compare(%s,%s)=%d",
					a.Inspect(), b.Inspect(), ab, b.Inspect(), a.Inspect(), ba)
			}
			for _, c := range atoms {
				if Compare(a, b) <= 0 && Compare(b, c) <= 0 && Compare(a, c) > 0 {
					t.Errorf("transitivity broken on %s, %s, %s", a.Inspect(), b.Inspect(), c.Inspect())
				}
			}
		}
	}
}

func TestIsSorted(t *testing.T) {
	tests := []struct {
		name string
		in   Node
		want bool
	}{
		{"non-list", Symbol("x"), true},
		{"empty", List{}, true},
		{"sorted", List{Int(1), Int(2), Symbol("a")}, true},
		{"duplicates ok", List{Int(1), Int(1)}, true},
		{"unsorted", List{Symbol("a"), Int(1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSorted(tt.in); got != tt.want {
				t.Errorf("IsSorted(%s) = %v, want %v", tt.in.Inspect(), got, tt.want)
			}
		})
	}
}

func TestSort(t *testing.T) {
	in := List{Symbol("b"), Int(3), String("s"), Symbol("a"), Int(1)}
	got := Sort(in)
	want := List{Int(1), Int(3), Symbol("a"), Symbol("b"), String("s")}
	if Compare(got, want) != 0 {
		t.Errorf("Sort(%s) = %s, want %s", in.Inspect(), got.Inspect(), want.Inspect())
	}
	// Input untouched.
	if Compare(in, List{Symbol("b"), Int(3), String("s"), Symbol("a"), Int(1)}) != 0 {
		t.Errorf("Sort mutated its input: %s", in.Inspect())
	}
	if got := Sort(Symbol("x")); got != Symbol("x") {
		t.Errorf("Sort on non-list = %v, want pass-through", got)
	}
}
