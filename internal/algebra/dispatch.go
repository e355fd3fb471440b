package algebra

import (
	"errors"
	"fmt"
	"sync"

	"github.com/opalcas/opal/internal/expr"
)

// ErrNoHandler is returned when the dispatch table has no entry for an
// operation over a given pair of operand kinds.
var ErrNoHandler = errors.New("no handler for operand kinds")

// Generic operation names. The table is open to more, but the kernel only
// registers these four.
const (
	OpAdd  = "add"
	OpSub  = "sub"
	OpMul  = "mul"
	OpExpt = "expt"
)

// Handler combines two operands into a result.
type Handler func(a, b expr.Node) (expr.Node, error)

type dispatchKey struct {
	op    string
	left  expr.Kind
	right expr.Kind
}

// Table resolves generic binary operations by the runtime kinds of both
// operands. Registration happens up front; lookups never mutate, so a
// populated table is safe for concurrent use.
type Table struct {
	handlers map[dispatchKey]Handler
}

func NewTable() *Table {
	return &Table{handlers: make(map[dispatchKey]Handler)}
}

// Register binds a handler for op over the (left, right) kind pair.
func (t *Table) Register(op string, left, right expr.Kind, h Handler) {
	t.handlers[dispatchKey{op: op, left: left, right: right}] = h
}

// Dispatch resolves and runs the handler for op on a and b.
func (t *Table) Dispatch(op string, a, b expr.Node) (expr.Node, error) {
	h, ok := t.handlers[dispatchKey{op: op, left: a.Kind(), right: b.Kind()}]
	if !ok {
		return nil, fmt.Errorf("%w: %s(%s, %s)", ErrNoHandler, op, a.Kind(), b.Kind())
	}
	return h(a, b)
}

func (t *Table) Add(a, b expr.Node) (expr.Node, error)  { return t.Dispatch(OpAdd, a, b) }
func (t *Table) Sub(a, b expr.Node) (expr.Node, error)  { return t.Dispatch(OpSub, a, b) }
func (t *Table) Mul(a, b expr.Node) (expr.Node, error)  { return t.Dispatch(OpMul, a, b) }
func (t *Table) Expt(a, b expr.Node) (expr.Node, error) { return t.Dispatch(OpExpt, a, b) }

var (
	stdOnce  sync.Once
	stdTable *Table
)

// Std returns the shared table carrying the kernel's standard
// registrations: numeric arithmetic, pointwise function arithmetic, the
// operator ring, and the mixed number/function/operator promotions.
func Std() *Table {
	stdOnce.Do(func() {
		stdTable = NewTable()
		registerNumeric(stdTable)
		registerFunctions(stdTable)
		registerOperators(stdTable)
	})
	return stdTable
}

// Add combines two algebraic values through the standard table.
func Add(a, b expr.Node) (expr.Node, error) { return Std().Add(a, b) }

// Sub subtracts through the standard table.
func Sub(a, b expr.Node) (expr.Node, error) { return Std().Sub(a, b) }

// Mul multiplies through the standard table. For two operators this is
// composition.
func Mul(a, b expr.Node) (expr.Node, error) { return Std().Mul(a, b) }

// Expt exponentiates through the standard table.
func Expt(a, b expr.Node) (expr.Node, error) { return Std().Expt(a, b) }
