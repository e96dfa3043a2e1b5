// Package callgraph extracts the call dependencies of Yul functions and
// orders function definitions so that callees come before their callers.
package callgraph

import (
	"sort"

	"github.com/Oxidefier/oxidefier/internal/yul"
)

// Dependencies returns the names of every function called anywhere in the
// body of fn, deduplicated and sorted. Builtins are included; the graph
// simply has no outgoing edges for them.
func Dependencies(fn *yul.FunctionDefinition) []string {
	seen := make(map[string]bool)
	if fn.Body != nil {
		yul.Inspect(fn.Body, func(n yul.Node) bool {
			if call, ok := n.(*yul.FunctionCall); ok {
				seen[call.FunctionName] = true
			}
			return true
		})
	}

	deps := make([]string, 0, len(seen))
	for name := range seen {
		deps = append(deps, name)
	}
	sort.Strings(deps)
	return deps
}

// Collect builds the dependency mapping for every function defined directly
// in a top-level block.
func Collect(block *yul.Block) map[string][]string {
	deps := make(map[string][]string)
	for _, fn := range yul.Functions(block) {
		deps[fn.Name] = Dependencies(fn)
	}
	return deps
}
