package expr

import (
	"reflect"
	"sort"
)

// TypeTag classifies what mathematical object a Literal stands in for.
// The set is closed apart from Extension tags.
type TypeTag struct {
	name      string
	extension bool
}

var (
	TypeNumeric = TypeTag{name: "numeric"}
	TypeVector  = TypeTag{name: "vector"}
	TypeDown    = TypeTag{name: "abstract-down"}
	TypeMatrix  = TypeTag{name: "abstract-matrix"}
)

// Extension returns an implementation-specific tag outside the abstract set.
func Extension(name string) TypeTag {
	return TypeTag{name: name, extension: true}
}

func (t TypeTag) Name() string { return t.name }

// IsAbstract reports whether the tag belongs to the fixed abstract-type set.
func (t TypeTag) IsAbstract() bool { return !t.extension && t.name != "" }

// Meta is a small immutable key/value store attached to a Literal. Values
// are opaque to the kernel and are carried through transforms unchanged.
type Meta struct {
	kv map[string]any
}

func (m Meta) Get(key string) (any, bool) {
	v, ok := m.kv[key]
	return v, ok
}

func (m Meta) Len() int { return len(m.kv) }

// With returns a copy of m with key bound to value.
func (m Meta) With(key string, value any) Meta {
	kv := make(map[string]any, len(m.kv)+1)
	for k, v := range m.kv {
		kv[k] = v
	}
	kv[key] = value
	return Meta{kv: kv}
}

func (m Meta) Keys() []string {
	keys := make([]string, 0, len(m.kv))
	for k := range m.kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m Meta) equal(o Meta) bool {
	if len(m.kv) != len(o.kv) {
		return false
	}
	for k, v := range m.kv {
		ov, ok := o.kv[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}

// Literal pairs a raw expression with a TypeTag and metadata. It is the
// canonical wrapper for "this tree denotes a mathematical object of kind T".
// Literals are immutable; transforming operations return new Literals.
type Literal struct {
	typ  TypeTag
	expr Node
	meta Meta
}

// NewLiteral wraps node under tag with empty metadata.
func NewLiteral(tag TypeTag, node Node) *Literal {
	return &Literal{typ: tag, expr: node}
}

// ApplyForm builds a Literal wrapping the application form (op args...).
func ApplyForm(tag TypeTag, op Node, args ...Node) *Literal {
	return NewLiteral(tag, Apply(op, args...))
}

func (l *Literal) Kind() Kind { return LITERAL_KIND }

// Inspect renders only the wrapped expression; tag and metadata are
// bookkeeping, not display.
func (l *Literal) Inspect() string { return l.expr.Inspect() }

func (l *Literal) Hash() uint32 {
	return hashString(l.typ.name) ^ l.expr.Hash()
}

func (l *Literal) Type() TypeTag    { return l.typ }
func (l *Literal) Expression() Node { return l.expr }
func (l *Literal) Meta() Meta       { return l.meta }

// WithMeta returns a copy of l with key bound to value in its metadata.
func (l *Literal) WithMeta(key string, value any) *Literal {
	return &Literal{typ: l.typ, expr: l.expr, meta: l.meta.With(key, value)}
}

// FMap applies f to the wrapped expression, preserving tag and metadata.
func (l *Literal) FMap(f func(Node) Node) *Literal {
	return &Literal{typ: l.typ, expr: f(l.expr), meta: l.meta}
}

// Equal requires equal tags, Compare-equal expressions, and equal metadata.
func (l *Literal) Equal(o *Literal) bool {
	if l == nil || o == nil {
		return l == o
	}
	return l.typ == o.typ && Compare(l.expr, o.expr) == 0 && l.meta.equal(o.meta)
}

// Numeric predicates hold only when the wrapped expression is itself a
// recognized numeric leaf; a symbolic payload is never zero or one.

func (l *Literal) IsZero() bool {
	v, ok := RealValue(l.expr)
	return ok && v == 0
}

func (l *Literal) IsOne() bool {
	v, ok := RealValue(l.expr)
	return ok && v == 1
}

// IsIdentity is the multiplicative-identity test, an alias of IsOne.
func (l *Literal) IsIdentity() bool { return l.IsOne() }

func (l *Literal) IsExact() bool {
	return l.expr.Kind() == INT_KIND
}

func (l *Literal) Freeze() Node { return Freeze(l.expr) }

// IsLiteral reports whether n is a Literal.
func IsLiteral(n Node) bool {
	_, ok := n.(*Literal)
	return ok
}

// LiteralTypeOf returns the tag of a Literal, or false for anything else.
func LiteralTypeOf(n Node) (TypeTag, bool) {
	l, ok := n.(*Literal)
	if !ok {
		return TypeTag{}, false
	}
	return l.typ, true
}

// IsAbstract reports whether n is a Literal tagged with one of the fixed
// abstract types.
func IsAbstract(n Node) bool {
	l, ok := n.(*Literal)
	return ok && l.typ.IsAbstract()
}

// ExpressionOf unwraps a Literal and passes every other node through.
func ExpressionOf(n Node) Node {
	if l, ok := n.(*Literal); ok {
		return l.expr
	}
	return n
}

// Freezer is implemented by values that carry a canonical display form
// distinct from themselves (literals, operators).
type Freezer interface {
	Freeze() Node
}

// Freeze produces the canonical display form of n: Freezers supply their
// own, lists freeze element-wise, everything else displays as itself.
func Freeze(n Node) Node {
	if f, ok := n.(Freezer); ok {
		return f.Freeze()
	}
	if l, ok := n.(List); ok {
		out := make(List, len(l))
		for i, el := range l {
			out[i] = Freeze(el)
		}
		return out
	}
	return n
}
