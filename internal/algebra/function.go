// Package algebra implements the algebraic value kinds that sit on top of
// the raw expression trees: functions with declared arities, operators
// (function-to-function transformations forming a ring under add, sub,
// compose-as-multiply and non-negative integer power), and the generic
// double-dispatch arithmetic table that combines them with numbers and with
// each other.
package algebra

import (
	"fmt"

	"github.com/opalcas/opal/internal/expr"
)

// Function is an applicable value with a display name and a declared arity.
// Functions are immutable; combining two functions produces a new one.
type Function struct {
	name  expr.Node
	arity Arity
	impl  func(args ...expr.Node) (expr.Node, error)
}

// NewFunction builds a function value. The name is itself a small
// expression (a symbol, or a form like (add f g) for derived functions).
func NewFunction(name expr.Node, arity Arity, impl func(args ...expr.Node) (expr.Node, error)) *Function {
	return &Function{name: name, arity: arity, impl: impl}
}

func (f *Function) Kind() expr.Kind { return expr.FUNCTION_KIND }

func (f *Function) Inspect() string {
	return fmt.Sprintf("#[function %s]", f.name.Inspect())
}

func (f *Function) Hash() uint32 { return f.name.Hash() ^ 0x9e3779b9 }

func (f *Function) Name() expr.Node { return f.name }
func (f *Function) Arity() Arity    { return f.arity }

// Freeze displays a function as its name.
func (f *Function) Freeze() expr.Node { return expr.Freeze(f.name) }

// Apply invokes the function after checking the call against its arity.
func (f *Function) Apply(args ...expr.Node) (expr.Node, error) {
	if !f.arity.Admits(len(args)) {
		return nil, fmt.Errorf("%w: %s takes %s arguments, got %d",
			ErrIncompatibleArity, f.name.Inspect(), f.arity, len(args))
	}
	return f.impl(args...)
}

// IsFunction reports whether n is a function value.
func IsFunction(n expr.Node) bool {
	_, ok := n.(*Function)
	return ok
}
