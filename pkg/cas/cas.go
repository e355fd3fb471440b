// Package cas is the public embedding surface of the opal kernel. Host
// programs build expression trees, literals, functions and operators here
// and combine them through the generic arithmetic without touching the
// internal packages.
package cas

import (
	"github.com/opalcas/opal/internal/algebra"
	"github.com/opalcas/opal/internal/expr"
	"github.com/opalcas/opal/internal/walker"
)

// Re-exported node types. An Expr is any kernel value.
type (
	Expr     = expr.Node
	Symbol   = expr.Symbol
	Int      = expr.Int
	Float    = expr.Float
	String   = expr.String
	List     = expr.List
	Literal  = expr.Literal
	TypeTag  = expr.TypeTag
	Function = algebra.Function
	Operator = algebra.Operator
	Arity    = algebra.Arity
)

// Abstract literal type tags.
var (
	TypeNumeric = expr.TypeNumeric
	TypeVector  = expr.TypeVector
	TypeDown    = expr.TypeDown
	TypeMatrix  = expr.TypeMatrix
)

// Sentinel errors surfaced to embedders.
var (
	ErrIncompatibleArity  = algebra.ErrIncompatibleArity
	ErrBadExponent        = algebra.ErrBadExponent
	ErrNoHandler          = algebra.ErrNoHandler
	ErrUnresolvedOperator = walker.ErrUnresolvedOperator
)

// Construction.

func Apply(op Expr, args ...Expr) List { return expr.Apply(op, args...) }

func NewLiteral(tag TypeTag, payload Expr) *Literal { return expr.NewLiteral(tag, payload) }

func LiteralApply(tag TypeTag, op Expr, args ...Expr) *Literal {
	return expr.ApplyForm(tag, op, args...)
}

func Extension(name string) TypeTag { return expr.Extension(name) }

func NewFunction(name Expr, arity Arity, impl func(args ...Expr) (Expr, error)) *Function {
	return algebra.NewFunction(name, arity, impl)
}

func Exactly(n int) Arity { return algebra.Exactly(n) }
func AtLeast(n int) Arity { return algebra.AtLeast(n) }

// The operator ring.

func Identity() *Operator { return algebra.Identity() }

func NumberToOperator(n Expr) *Operator { return algebra.NumberToOperator(n) }

func FunctionToOperator(f *Function) *Operator { return algebra.FunctionToOperator(f) }

func Square(o *Operator) (*Operator, error) { return algebra.SquareOperator(o) }

func Transpose(o *Operator) *Operator { return algebra.TransposeOperator(o) }

func CrossProduct(o, p *Operator, f *Function) (*Function, error) {
	return algebra.CrossProduct(o, p, f)
}

// Generic arithmetic over any mix of numbers, functions and operators.

func Add(a, b Expr) (Expr, error)  { return algebra.Add(a, b) }
func Sub(a, b Expr) (Expr, error)  { return algebra.Sub(a, b) }
func Mul(a, b Expr) (Expr, error)  { return algebra.Mul(a, b) }
func Expt(a, b Expr) (Expr, error) { return algebra.Expt(a, b) }

// Predicates and projections.

func IsOperator(x Expr) bool { return algebra.IsOperator(x) }
func IsFunction(x Expr) bool { return algebra.IsFunction(x) }
func IsLiteral(x Expr) bool  { return expr.IsLiteral(x) }
func IsAbstract(x Expr) bool { return expr.IsAbstract(x) }

func LiteralTypeOf(x Expr) (TypeTag, bool) { return expr.LiteralTypeOf(x) }

func ExpressionOf(x Expr) Expr { return expr.ExpressionOf(x) }

func ArityOf(x Expr) Arity { return algebra.ArityOf(x) }

// Freeze produces the canonical display form of any kernel value.
func Freeze(x Expr) Expr { return expr.Freeze(x) }

// Canonical ordering.

func Compare(a, b Expr) int { return expr.Compare(a, b) }
func IsSorted(x Expr) bool  { return expr.IsSorted(x) }
func Sort(x Expr) Expr      { return expr.Sort(x) }

// Tree walking.

type Applicable = walker.Applicable

// Fn adapts a plain Go function for use in evaluation environments.
func Fn(f func(args ...Expr) (Expr, error)) Applicable { return walker.Func(f) }

func Variables(x Expr) []Symbol { return walker.Variables(x) }

func Substitute(x, old, new Expr) Expr { return walker.Substitute(x, old, new) }

func SubstituteMap(x Expr, subst map[Expr]Expr) Expr { return walker.SubstituteMap(x, subst) }

func Evaluate(x Expr, vars map[Symbol]Expr, fns map[Symbol]Applicable) (Expr, error) {
	return walker.Evaluate(x, vars, fns)
}
