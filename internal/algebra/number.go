package algebra

import (
	"fmt"
	"math"

	"github.com/opalcas/opal/internal/expr"
)

// Numeric arithmetic over the Int and Float leaves. Two exact integers stay
// exact; any inexact operand makes the result inexact. Exact exponentiation
// that would overflow int64 widens to Float instead of wrapping.

func registerNumeric(t *Table) {
	for _, left := range []expr.Kind{expr.INT_KIND, expr.FLOAT_KIND} {
		for _, right := range []expr.Kind{expr.INT_KIND, expr.FLOAT_KIND} {
			t.Register(OpAdd, left, right, numAdd)
			t.Register(OpSub, left, right, numSub)
			t.Register(OpMul, left, right, numMul)
			t.Register(OpExpt, left, right, numExpt)
		}
	}
}

func numAdd(a, b expr.Node) (expr.Node, error) {
	if ai, bi, ok := bothInts(a, b); ok {
		return expr.Int(ai + bi), nil
	}
	av, bv := mustReal(a), mustReal(b)
	return expr.Float(av + bv), nil
}

func numSub(a, b expr.Node) (expr.Node, error) {
	if ai, bi, ok := bothInts(a, b); ok {
		return expr.Int(ai - bi), nil
	}
	av, bv := mustReal(a), mustReal(b)
	return expr.Float(av - bv), nil
}

func numMul(a, b expr.Node) (expr.Node, error) {
	if ai, bi, ok := bothInts(a, b); ok {
		return expr.Int(ai * bi), nil
	}
	av, bv := mustReal(a), mustReal(b)
	return expr.Float(av * bv), nil
}

func numExpt(a, b expr.Node) (expr.Node, error) {
	if ai, bi, ok := bothInts(a, b); ok && bi >= 0 {
		if r, exact := intPow(ai, bi); exact {
			return expr.Int(r), nil
		}
	}
	av, bv := mustReal(a), mustReal(b)
	return expr.Float(math.Pow(av, bv)), nil
}

func bothInts(a, b expr.Node) (int64, int64, bool) {
	ai, ok := a.(expr.Int)
	if !ok {
		return 0, 0, false
	}
	bi, ok := b.(expr.Int)
	if !ok {
		return 0, 0, false
	}
	return int64(ai), int64(bi), true
}

func mustReal(n expr.Node) float64 {
	v, ok := expr.RealValue(n)
	if !ok {
		panic(fmt.Sprintf("algebra: %s registered as numeric", n.Kind()))
	}
	return v
}

// intPow is exponentiation by squaring. exact is false when any step
// overflows int64; callers widen to Float in that case.
func intPow(base, exp int64) (result int64, exact bool) {
	result = int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			r, ok := mulInt64(result, base)
			if !ok {
				return 0, false
			}
			result = r
		}
		exp >>= 1
		if exp == 0 {
			break
		}
		b, ok := mulInt64(base, base)
		if !ok {
			return 0, false
		}
		base = b
	}
	return result, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if b == -1 {
		if a == math.MinInt64 {
			return 0, false
		}
		return -a, true
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}
