package expr

import "sort"

// Compare imposes a total order over expressions, used wherever the system
// needs deterministic term ordering (canonical forms, stable display).
//
// The order, in precedence:
//
//  1. The empty list sorts below everything except another empty list.
//  2. Otherwise kinds rank: reals < symbols < strings < lists < opaque.
//  3. Reals compare numerically, symbols by name, strings lexicographically.
//  4. Lists compare by length first, then element-wise.
//  5. Opaque values (functions, operators, literals, host values) have no
//     semantic order and fall back to their Hash, tie-broken by Inspect.
//     This fallback is arbitrary but stable within a process.
func Compare(a, b Node) int {
	ae, be := isEmptyList(a), isEmptyList(b)
	switch {
	case ae && be:
		return 0
	case ae:
		return -1
	case be:
		return 1
	}

	ra, rb := orderRank(a), orderRank(b)
	if ra != rb {
		return sign(ra - rb)
	}

	switch ra {
	case rankReal:
		return compareReals(a, b)
	case rankSymbol:
		return compareStrings(string(a.(Symbol)), string(b.(Symbol)))
	case rankString:
		return compareStrings(string(a.(String)), string(b.(String)))
	case rankList:
		return compareLists(a.(List), b.(List))
	}

	// Fallback order for values outside the semantic ranks.
	ha, hb := a.Hash(), b.Hash()
	if ha != hb {
		if ha < hb {
			return -1
		}
		return 1
	}
	return compareStrings(a.Inspect(), b.Inspect())
}

// IsSorted reports whether n is a list whose adjacent elements are in
// non-decreasing Compare order. Non-list nodes are trivially sorted.
func IsSorted(n Node) bool {
	l, ok := n.(List)
	if !ok {
		return true
	}
	for i := 1; i < len(l); i++ {
		if Compare(l[i-1], l[i]) > 0 {
			return false
		}
	}
	return true
}

// Sort returns a new list ordered by Compare, or n itself when it is not a
// list.
func Sort(n Node) Node {
	l, ok := n.(List)
	if !ok {
		return n
	}
	out := make(List, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool {
		return Compare(out[i], out[j]) < 0
	})
	return out
}

const (
	rankReal = iota
	rankSymbol
	rankString
	rankList
	rankOpaque
)

func orderRank(n Node) int {
	switch n.Kind() {
	case INT_KIND, FLOAT_KIND:
		return rankReal
	case SYMBOL_KIND:
		return rankSymbol
	case STRING_KIND:
		return rankString
	case LIST_KIND:
		return rankList
	}
	return rankOpaque
}

func compareReals(a, b Node) int {
	// Exact path so huge integers are not squashed through float64.
	if ai, ok := a.(Int); ok {
		if bi, ok := b.(Int); ok {
			switch {
			case ai < bi:
				return -1
			case ai > bi:
				return 1
			}
			return 0
		}
	}
	av, _ := RealValue(a)
	bv, _ := RealValue(b)
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	}
	return 0
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareLists(a, b List) int {
	if len(a) != len(b) {
		return sign(len(a) - len(b))
	}
	for i := range a {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

func isEmptyList(n Node) bool {
	l, ok := n.(List)
	return ok && len(l) == 0
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
