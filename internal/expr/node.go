// Package expr defines the raw symbolic expression trees the kernel
// operates on.
//
// An expression is one of:
//   - a Symbol, a leaf variable or operator name
//   - an Int or Float, a real numeric leaf
//   - a String
//   - a List, an ordered sequence of expressions; an application form is a
//     List whose head (index 0) is the operator expression
//   - a *Literal, a type-tagged wrapper around another expression
//   - any other value implementing Node, treated as an opaque leaf
//
// Nodes are immutable values. Operations that "modify" a tree return a new
// tree sharing unmodified subtrees.
package expr

import (
	"hash/fnv"
	"math"
	"strconv"
	"strings"
)

type Kind string

const (
	SYMBOL_KIND   Kind = "SYMBOL"
	INT_KIND      Kind = "INT"
	FLOAT_KIND    Kind = "FLOAT"
	STRING_KIND   Kind = "STRING"
	LIST_KIND     Kind = "LIST"
	LITERAL_KIND  Kind = "LITERAL"
	FUNCTION_KIND Kind = "FUNCTION"
	OPERATOR_KIND Kind = "OPERATOR"
)

// Node is the base interface for all expression values.
type Node interface {
	Kind() Kind
	// Inspect renders the node for display and freezing.
	Inspect() string
	// Hash is a stable in-process key, used as the comparator's fallback
	// order for nodes with no semantic ordering.
	Hash() uint32
}

// Symbol is a leaf variable or an operator name.
type Symbol string

func (s Symbol) Kind() Kind      { return SYMBOL_KIND }
func (s Symbol) Inspect() string { return string(s) }
func (s Symbol) Hash() uint32    { return hashString(string(s)) }

// Int is an exact integer leaf.
type Int int64

func (i Int) Kind() Kind      { return INT_KIND }
func (i Int) Inspect() string { return strconv.FormatInt(int64(i), 10) }
func (i Int) Hash() uint32    { return uint32(uint64(i)) }

// Float is an inexact real leaf.
type Float float64

func (f Float) Kind() Kind      { return FLOAT_KIND }
func (f Float) Inspect() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (f Float) Hash() uint32    { return uint32(math.Float64bits(float64(f)) >> 32) }

// String is a literal text leaf.
type String string

func (s String) Kind() Kind      { return STRING_KIND }
func (s String) Inspect() string { return strconv.Quote(string(s)) }
func (s String) Hash() uint32    { return hashString(string(s)) }

// List is an ordered sequence of expressions. An application form puts the
// operator expression at index 0.
type List []Node

func (l List) Kind() Kind { return LIST_KIND }

func (l List) Inspect() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, el := range l {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(el.Inspect())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (l List) Hash() uint32 {
	h := fnv.New32a()
	for _, el := range l {
		var buf [4]byte
		eh := el.Hash()
		buf[0] = byte(eh >> 24)
		buf[1] = byte(eh >> 16)
		buf[2] = byte(eh >> 8)
		buf[3] = byte(eh)
		h.Write(buf[:])
	}
	return h.Sum32()
}

// Apply builds an application form (op arg1 arg2 ...).
func Apply(op Node, args ...Node) List {
	form := make(List, 0, len(args)+1)
	form = append(form, op)
	form = append(form, args...)
	return form
}

// IsReal reports whether n is a numeric leaf.
func IsReal(n Node) bool {
	switch n.Kind() {
	case INT_KIND, FLOAT_KIND:
		return true
	}
	return false
}

// RealValue returns the numeric value of an Int or Float leaf.
func RealValue(n Node) (float64, bool) {
	switch v := n.(type) {
	case Int:
		return float64(v), true
	case Float:
		return float64(v), true
	}
	return 0, false
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
