package algebra

import (
	"errors"
	"fmt"

	"github.com/opalcas/opal/internal/expr"
)

// ErrIncompatibleArity is returned when two arities cannot be unified.
var ErrIncompatibleArity = errors.New("incompatible arity")

// Arity is the argument-count contract of a function: an exact count, or a
// lower-bounded open range. The zero value is "exactly 0".
type Arity struct {
	min   int
	exact bool
}

// Exactly returns the arity of a function taking exactly n arguments.
func Exactly(n int) Arity {
	if n < 0 {
		panic("algebra: negative arity")
	}
	return Arity{min: n, exact: true}
}

// AtLeast returns the arity of a function taking n or more arguments.
func AtLeast(n int) Arity {
	if n < 0 {
		panic("algebra: negative arity")
	}
	return Arity{min: n}
}

// Exact returns the exact argument count, when there is one.
func (a Arity) Exact() (int, bool) { return a.min, a.exact }

// Min returns the smallest argument count the arity admits.
func (a Arity) Min() int { return a.min }

// Admits reports whether a call with n arguments satisfies the arity.
func (a Arity) Admits(n int) bool {
	if a.exact {
		return n == a.min
	}
	return n >= a.min
}

func (a Arity) String() string {
	if a.exact {
		return fmt.Sprintf("exactly %d", a.min)
	}
	return fmt.Sprintf("at least %d", a.min)
}

// Join unifies two arities: the result describes a function built by
// combining an a-arity and a b-arity function pointwise.
func Join(a, b Arity) (Arity, error) {
	switch {
	case a.exact && b.exact:
		if a.min != b.min {
			return Arity{}, fmt.Errorf("%w: %s vs %s", ErrIncompatibleArity, a, b)
		}
		return a, nil
	case a.exact:
		if a.min < b.min {
			return Arity{}, fmt.Errorf("%w: %s vs %s", ErrIncompatibleArity, a, b)
		}
		return a, nil
	case b.exact:
		if b.min < a.min {
			return Arity{}, fmt.Errorf("%w: %s vs %s", ErrIncompatibleArity, a, b)
		}
		return b, nil
	}
	if b.min > a.min {
		return b, nil
	}
	return a, nil
}

// JoinAll folds Join over one or more arities.
func JoinAll(arities ...Arity) (Arity, error) {
	if len(arities) == 0 {
		return AtLeast(0), nil
	}
	acc := arities[0]
	for _, a := range arities[1:] {
		joined, err := Join(acc, a)
		if err != nil {
			return Arity{}, err
		}
		acc = joined
	}
	return acc, nil
}

// ArityOf returns the arity attached to a function or operator value, and
// the conventional default of exactly one argument for anything else.
func ArityOf(n expr.Node) Arity {
	switch v := n.(type) {
	case *Function:
		return v.arity
	case *Operator:
		return v.arity
	}
	return Exactly(1)
}
