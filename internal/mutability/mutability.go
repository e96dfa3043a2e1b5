// Package mutability decides which Yul bindings must be declared mutable in
// the generated Rust. Yul does not track mutability, so a binding is mutable
// exactly when some later statement in its scope assigns to it.
package mutability

import (
	"sort"

	"github.com/Oxidefier/oxidefier/internal/yul"
)

// Set is a set of Yul variable names.
type Set map[string]bool

// Union adds every name of other to s.
func (s Set) Union(other Set) {
	for name := range other {
		s[name] = true
	}
}

// Sorted returns the names in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Assigned returns every name that is the target of an assignment anywhere
// inside n, nested blocks included. Function definitions below n are not
// entered; their variables live in a separate scope.
func Assigned(n yul.Node) Set {
	set := make(Set)
	yul.Inspect(n, func(node yul.Node) bool {
		switch node := node.(type) {
		case *yul.FunctionDefinition:
			return node == n
		case *yul.Assignment:
			for _, name := range node.VariableNames {
				set[name] = true
			}
		}
		return true
	})
	return set
}

// After returns, for each statement index i, the names assigned by the
// statements that follow i in the same sequence. It is computed with one
// backward pass.
func After(stmts []yul.Stmt) []Set {
	after := make([]Set, len(stmts))
	acc := make(Set)
	for i := len(stmts) - 1; i >= 0; i-- {
		snapshot := make(Set, len(acc))
		snapshot.Union(acc)
		after[i] = snapshot
		if _, ok := stmts[i].(*yul.FunctionDefinition); ok {
			continue
		}
		acc.Union(Assigned(stmts[i]))
	}
	return after
}

// MutatedIn returns the names of eligible that are assigned anywhere in block.
// A nil eligible set means every name is eligible.
func MutatedIn(block *yul.Block, eligible Set) Set {
	if block == nil {
		return make(Set)
	}
	assigned := Assigned(block)
	if eligible == nil {
		return assigned
	}
	out := make(Set)
	for name := range assigned {
		if eligible[name] {
			out[name] = true
		}
	}
	return out
}

// Declaration reports, for each name bound by decl, whether the binding must
// be mutable given the names assigned after the declaration.
func Declaration(decl *yul.VariableDeclaration, assignedAfter Set) []bool {
	mut := make([]bool, len(decl.Variables))
	for i, name := range decl.Variables {
		mut[i] = assignedAfter[name]
	}
	return mut
}
