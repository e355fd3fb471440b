// Package walker provides the tree operations the rest of the kernel builds
// on: free-variable collection, structural substitution, and environment
// driven evaluation of raw expression trees.
package walker

import (
	"errors"
	"fmt"
	"sort"

	"github.com/opalcas/opal/internal/expr"
)

// ErrUnresolvedOperator is returned by Evaluate when an application head
// has no binding in the function environment.
var ErrUnresolvedOperator = errors.New("unresolved operator")

// Applicable is anything that can sit in a function environment.
type Applicable interface {
	Apply(args ...expr.Node) (expr.Node, error)
}

// Func adapts a plain Go function to Applicable.
type Func func(args ...expr.Node) (expr.Node, error)

func (f Func) Apply(args ...expr.Node) (expr.Node, error) { return f(args...) }

// Variables collects the free symbols of n, sorted by name. Symbols in the
// head position of an application form are operator names, not variables,
// and are skipped at every level of the tree.
func Variables(n expr.Node) []expr.Symbol {
	seen := make(map[expr.Symbol]struct{})
	collectVariables(n, false, seen)
	out := make([]expr.Symbol, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func collectVariables(n expr.Node, isHead bool, seen map[expr.Symbol]struct{}) {
	switch v := n.(type) {
	case expr.Symbol:
		if !isHead {
			seen[v] = struct{}{}
		}
	case *expr.Literal:
		collectVariables(v.Expression(), isHead, seen)
	case expr.List:
		for i, el := range v {
			collectVariables(el, i == 0, seen)
		}
	}
}

// Substitute returns n with every subtree equal to old replaced by new.
// The rewrite is postorder: children are rewritten before the node itself
// is considered, so replacement values are never re-examined.
func Substitute(n, old, new expr.Node) expr.Node {
	return rewrite(n, func(candidate expr.Node) (expr.Node, bool) {
		if nodesEqual(candidate, old) {
			return new, true
		}
		return nil, false
	})
}

// SubstituteMap replaces every subtree equal to a key of subst by the
// corresponding value, postorder.
func SubstituteMap(n expr.Node, subst map[expr.Node]expr.Node) expr.Node {
	return rewrite(n, func(candidate expr.Node) (expr.Node, bool) {
		for old, new := range subst {
			if nodesEqual(candidate, old) {
				return new, true
			}
		}
		return nil, false
	})
}

func rewrite(n expr.Node, match func(expr.Node) (expr.Node, bool)) expr.Node {
	switch v := n.(type) {
	case *expr.Literal:
		// Substitution reaches inside a literal through FMap so the tag
		// and metadata survive untouched.
		return v.FMap(func(payload expr.Node) expr.Node {
			return rewrite(payload, match)
		})
	case expr.List:
		out := make(expr.List, len(v))
		for i, el := range v {
			out[i] = rewrite(el, match)
		}
		if r, ok := match(out); ok {
			return r
		}
		return out
	}
	if r, ok := match(n); ok {
		return r
	}
	return n
}

// nodesEqual is substitution equality: same kind at every level, with
// literals matched through Equal (tag and metadata included). Compare alone
// would conflate Int(2) with Float(2), so it only decides the leaf cases.
func nodesEqual(a, b expr.Node) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch va := a.(type) {
	case *expr.Literal:
		return va.Equal(b.(*expr.Literal))
	case expr.List:
		vb := b.(expr.List)
		if len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !nodesEqual(va[i], vb[i]) {
				return false
			}
		}
		return true
	}
	return expr.Compare(a, b) == 0
}

// Evaluate interprets n against a variable environment and a function
// environment, postorder.
//
// A symbol leaf is replaced by its binding in vars, or passes through
// unchanged when unbound. An application form (head args...) resolves head
// in fns (a missing entry is an error, not a pass-through), then evaluates
// the arguments eagerly, left to right, and applies the resolved function.
// Every other leaf evaluates to itself.
func Evaluate(n expr.Node, vars map[expr.Symbol]expr.Node, fns map[expr.Symbol]Applicable) (expr.Node, error) {
	switch v := n.(type) {
	case expr.Symbol:
		if bound, ok := vars[v]; ok {
			return bound, nil
		}
		return v, nil
	case expr.List:
		if len(v) == 0 {
			return v, nil
		}
		fn, err := resolveHead(v[0], fns)
		if err != nil {
			return nil, err
		}
		args := make([]expr.Node, len(v)-1)
		for i, arg := range v[1:] {
			evaluated, err := Evaluate(arg, vars, fns)
			if err != nil {
				return nil, err
			}
			args[i] = evaluated
		}
		return fn.Apply(args...)
	}
	return n, nil
}

func resolveHead(head expr.Node, fns map[expr.Symbol]Applicable) (Applicable, error) {
	switch h := head.(type) {
	case expr.Symbol:
		if fn, ok := fns[h]; ok {
			return fn, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUnresolvedOperator, h)
	case Applicable:
		// A tree may carry an applicable value directly in head position.
		return h, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnresolvedOperator, head.Inspect())
}
