package algebra

import (
	"fmt"
	"math"

	"github.com/opalcas/opal/internal/expr"
)

// The operator ring. Addition and subtraction act pointwise on the
// transformed functions; multiplication is composition of the operators'
// actions, which makes the ring non-commutative.

// AddOperators builds the operator whose transform is the pointwise sum of
// o's and p's transforms.
func AddOperators(o, p *Operator) (*Operator, error) {
	return combineOperators(OpAdd, o, p)
}

// SubOperators builds the operator whose transform is the pointwise
// difference of o's and p's transforms.
func SubOperators(o, p *Operator) (*Operator, error) {
	return combineOperators(OpSub, o, p)
}

func combineOperators(op string, o, p *Operator) (*Operator, error) {
	arity, err := Join(o.arity, p.arity)
	if err != nil {
		return nil, err
	}
	name := expr.Apply(expr.Symbol(op), o.name, p.name)
	transform := func(fs ...*Function) (*Function, error) {
		of, err := o.ApplyTo(fs...)
		if err != nil {
			return nil, err
		}
		pf, err := p.ApplyTo(fs...)
		if err != nil {
			return nil, err
		}
		// Recurse through the generic table: the results are functions, so
		// this lands on the pointwise function arithmetic.
		combined, err := Std().Dispatch(op, of, pf)
		if err != nil {
			return nil, err
		}
		return combined.(*Function), nil
	}
	return NewOperator(name, arity, transform), nil
}

// MulOperators builds the product of two operators, which is the
// composition of their actions: (o*p)(f) = o(p(f)).
func MulOperators(o, p *Operator) (*Operator, error) {
	arity, err := Join(o.arity, p.arity)
	if err != nil {
		return nil, err
	}
	name := expr.Apply(expr.Symbol(OpMul), o.name, p.name)
	transform := func(fs ...*Function) (*Function, error) {
		inner, err := p.ApplyTo(fs...)
		if err != nil {
			return nil, err
		}
		return o.ApplyTo(inner)
	}
	return NewOperator(name, arity, transform), nil
}

// ExptOperator raises an operator to a non-negative integer power by
// repeated composition. Zero yields the identity operator.
func ExptOperator(o *Operator, n int64) (*Operator, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadExponent, n)
	}
	if n == 0 {
		return Identity(), nil
	}
	acc := o
	for i := int64(1); i < n; i++ {
		next, err := MulOperators(acc, o)
		if err != nil {
			return nil, err
		}
		acc = next
	}
	name := expr.Apply(expr.Symbol(OpExpt), o.name, expr.Int(n))
	return NewOperator(name, acc.arity, acc.transform), nil
}

// SquareOperator is the self-product o*o.
func SquareOperator(o *Operator) (*Operator, error) {
	return MulOperators(o, o)
}

// TransposeOperator wraps o so the transformed function's results pass
// through a symbolic transpose.
func TransposeOperator(o *Operator) *Operator {
	name := expr.Apply(expr.Symbol("transpose"), o.name)
	transform := func(fs ...*Function) (*Function, error) {
		of, err := o.ApplyTo(fs...)
		if err != nil {
			return nil, err
		}
		impl := func(args ...expr.Node) (expr.Node, error) {
			v, err := of.Apply(args...)
			if err != nil {
				return nil, err
			}
			return expr.Apply(expr.Symbol("transpose"), v), nil
		}
		return NewFunction(expr.Apply(expr.Symbol("transpose"), of.name), of.arity, impl), nil
	}
	return NewOperator(name, o.arity, transform)
}

// CrossProduct applies o and p to f and pairs the results under a symbolic
// cross product. Unlike the ring operations it yields a plain function, not
// an operator.
func CrossProduct(o, p *Operator, f *Function) (*Function, error) {
	of, err := o.ApplyTo(f)
	if err != nil {
		return nil, err
	}
	pf, err := p.ApplyTo(f)
	if err != nil {
		return nil, err
	}
	arity, err := Join(of.arity, pf.arity)
	if err != nil {
		return nil, err
	}
	name := expr.Apply(expr.Symbol("cross"), of.name, pf.name)
	impl := func(args ...expr.Node) (expr.Node, error) {
		ov, err := of.Apply(args...)
		if err != nil {
			return nil, err
		}
		pv, err := pf.Apply(args...)
		if err != nil {
			return nil, err
		}
		return expr.Apply(expr.Symbol("cross"), ov, pv), nil
	}
	return NewFunction(name, arity, impl), nil
}

// NumberToOperator lifts a number into the ring: the lifted operator scales
// every result of the function it transforms.
func NumberToOperator(n expr.Node) *Operator {
	transform := func(fs ...*Function) (*Function, error) {
		if len(fs) != 1 {
			return nil, fmt.Errorf("lifted number %s takes one function, got %d", n.Inspect(), len(fs))
		}
		f := fs[0]
		impl := func(args ...expr.Node) (expr.Node, error) {
			v, err := f.Apply(args...)
			if err != nil {
				return nil, err
			}
			return Std().Mul(n, v)
		}
		// The scaled function keeps f's arity.
		return NewFunction(expr.Apply(expr.Symbol(OpMul), n, f.name), f.arity, impl), nil
	}
	return NewOperator(n, AtLeast(0), transform)
}

// FunctionToOperator lifts a function into the ring: the lifted operator
// multiplies f's results pointwise into the function it transforms.
func FunctionToOperator(f *Function) *Operator {
	transform := func(fs ...*Function) (*Function, error) {
		if len(fs) != 1 {
			return nil, fmt.Errorf("lifted function %s takes one function, got %d", f.name.Inspect(), len(fs))
		}
		product, err := Std().Mul(f, fs[0])
		if err != nil {
			return nil, err
		}
		return product.(*Function), nil
	}
	return NewOperator(f.name, AtLeast(0), transform)
}

// Pointwise function arithmetic: combining two functions combines their
// results through the generic table, with the arities joined up front.

func combineFunctions(op string, f, g *Function) (*Function, error) {
	arity, err := Join(f.arity, g.arity)
	if err != nil {
		return nil, err
	}
	name := expr.Apply(expr.Symbol(op), f.name, g.name)
	impl := func(args ...expr.Node) (expr.Node, error) {
		fv, err := f.Apply(args...)
		if err != nil {
			return nil, err
		}
		gv, err := g.Apply(args...)
		if err != nil {
			return nil, err
		}
		return Std().Dispatch(op, fv, gv)
	}
	return NewFunction(name, arity, impl), nil
}

// scaleFunction combines a function with a constant, on whichever side the
// constant appeared.
func scaleFunction(op string, f *Function, n expr.Node, numberOnLeft bool) *Function {
	var name expr.List
	if numberOnLeft {
		name = expr.Apply(expr.Symbol(op), n, f.name)
	} else {
		name = expr.Apply(expr.Symbol(op), f.name, n)
	}
	impl := func(args ...expr.Node) (expr.Node, error) {
		v, err := f.Apply(args...)
		if err != nil {
			return nil, err
		}
		if numberOnLeft {
			return Std().Dispatch(op, n, v)
		}
		return Std().Dispatch(op, v, n)
	}
	return NewFunction(name, f.arity, impl)
}

func registerFunctions(t *Table) {
	for _, op := range []string{OpAdd, OpSub, OpMul} {
		op := op
		t.Register(op, expr.FUNCTION_KIND, expr.FUNCTION_KIND, func(a, b expr.Node) (expr.Node, error) {
			return combineFunctions(op, a.(*Function), b.(*Function))
		})
		for _, numKind := range []expr.Kind{expr.INT_KIND, expr.FLOAT_KIND} {
			t.Register(op, expr.FUNCTION_KIND, numKind, func(a, b expr.Node) (expr.Node, error) {
				return scaleFunction(op, a.(*Function), b, false), nil
			})
			t.Register(op, numKind, expr.FUNCTION_KIND, func(a, b expr.Node) (expr.Node, error) {
				return scaleFunction(op, b.(*Function), a, true), nil
			})
		}
	}
	// Pointwise power of a function by a constant exponent.
	for _, numKind := range []expr.Kind{expr.INT_KIND, expr.FLOAT_KIND} {
		t.Register(OpExpt, expr.FUNCTION_KIND, numKind, func(a, b expr.Node) (expr.Node, error) {
			return scaleFunction(OpExpt, a.(*Function), b, false), nil
		})
	}
}

func registerOperators(t *Table) {
	type binaryOperatorOp func(o, p *Operator) (*Operator, error)
	ringOps := map[string]binaryOperatorOp{
		OpAdd: AddOperators,
		OpSub: SubOperators,
		OpMul: MulOperators,
	}
	for op, combine := range ringOps {
		combine := combine
		t.Register(op, expr.OPERATOR_KIND, expr.OPERATOR_KIND, func(a, b expr.Node) (expr.Node, error) {
			return combine(a.(*Operator), b.(*Operator))
		})
		// Mixed operands lift into the ring first, then combine same-kind.
		for _, numKind := range []expr.Kind{expr.INT_KIND, expr.FLOAT_KIND} {
			t.Register(op, expr.OPERATOR_KIND, numKind, func(a, b expr.Node) (expr.Node, error) {
				return combine(a.(*Operator), NumberToOperator(b))
			})
			t.Register(op, numKind, expr.OPERATOR_KIND, func(a, b expr.Node) (expr.Node, error) {
				return combine(NumberToOperator(a), b.(*Operator))
			})
		}
		t.Register(op, expr.OPERATOR_KIND, expr.FUNCTION_KIND, func(a, b expr.Node) (expr.Node, error) {
			return combine(a.(*Operator), FunctionToOperator(b.(*Function)))
		})
		t.Register(op, expr.FUNCTION_KIND, expr.OPERATOR_KIND, func(a, b expr.Node) (expr.Node, error) {
			return combine(FunctionToOperator(a.(*Function)), b.(*Operator))
		})
	}

	t.Register(OpExpt, expr.OPERATOR_KIND, expr.INT_KIND, func(a, b expr.Node) (expr.Node, error) {
		return ExptOperator(a.(*Operator), int64(b.(expr.Int)))
	})
	t.Register(OpExpt, expr.OPERATOR_KIND, expr.FLOAT_KIND, func(a, b expr.Node) (expr.Node, error) {
		f := float64(b.(expr.Float))
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("%w: %v", ErrBadExponent, f)
		}
		return ExptOperator(a.(*Operator), int64(f))
	})
}
