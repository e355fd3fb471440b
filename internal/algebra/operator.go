package algebra

import (
	"errors"
	"fmt"

	"github.com/opalcas/opal/internal/expr"
)

// ErrBadExponent is returned when an operator is raised to a negative
// power. Operator exponentiation is repeated composition, so only
// non-negative integer exponents are meaningful.
var ErrBadExponent = errors.New("operator exponent must be a non-negative integer")

// Transform is the action of an operator: it maps one or more functions to
// a single function.
type Transform func(fs ...*Function) (*Function, error)

// Operator is a named, arity-tagged transformation from functions to a
// function. The arity describes the argument functions the operator
// expects, not the functions it produces. Operators are immutable.
type Operator struct {
	name      expr.Node
	arity     Arity
	transform Transform
}

// NewOperator builds an operator. Like function names, operator names are
// small expressions: the identity operator is named by the symbol identity,
// a product carries (mul a b).
func NewOperator(name expr.Node, arity Arity, transform Transform) *Operator {
	return &Operator{name: name, arity: arity, transform: transform}
}

func (o *Operator) Kind() expr.Kind { return expr.OPERATOR_KIND }

func (o *Operator) Inspect() string {
	return fmt.Sprintf("#[operator %s]", o.name.Inspect())
}

func (o *Operator) Hash() uint32 { return o.name.Hash() ^ 0x7f4a7c15 }

func (o *Operator) Name() expr.Node { return o.name }
func (o *Operator) Arity() Arity    { return o.arity }

// Freeze displays an operator as its name, unevaluated.
func (o *Operator) Freeze() expr.Node { return expr.Freeze(o.name) }

// ApplyTo runs the operator's transform over one or more functions,
// producing a new function.
func (o *Operator) ApplyTo(fs ...*Function) (*Function, error) {
	if !o.arity.Admits(len(fs)) {
		return nil, fmt.Errorf("%w: operator %s takes %s functions, got %d",
			ErrIncompatibleArity, o.name.Inspect(), o.arity, len(fs))
	}
	return o.transform(fs...)
}

// Apply lets an operator sit in an evaluation environment: every argument
// must be a function value, and the result is the transformed function.
func (o *Operator) Apply(args ...expr.Node) (expr.Node, error) {
	fs := make([]*Function, len(args))
	for i, arg := range args {
		f, ok := arg.(*Function)
		if !ok {
			return nil, fmt.Errorf("operator %s applied to non-function %s",
				o.name.Inspect(), arg.Inspect())
		}
		fs[i] = f
	}
	return o.ApplyTo(fs...)
}

// IsOperator reports whether n is an operator value.
func IsOperator(n expr.Node) bool {
	_, ok := n.(*Operator)
	return ok
}

var identityOperator = NewOperator(expr.Symbol("identity"), AtLeast(0),
	func(fs ...*Function) (*Function, error) {
		if len(fs) != 1 {
			return nil, fmt.Errorf("identity operator takes one function, got %d", len(fs))
		}
		return fs[0], nil
	})

// Identity returns the identity operator: its transform hands every
// function back unchanged.
func Identity() *Operator { return identityOperator }
