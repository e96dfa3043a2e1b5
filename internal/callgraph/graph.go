package callgraph

import (
	"sort"
	"strings"

	"github.com/Oxidefier/oxidefier/internal/yul"
)

// FuncID indexes a function record in a Graph. IDs follow the lexicographic
// order of the function names.
type FuncID int

// Graph is a caller -> callee graph over an arena of function names.
type Graph struct {
	names []string
	index map[string]FuncID
	edges [][]FuncID
}

// New builds a graph from a name -> dependencies mapping. Every name that
// appears as a key or as a dependency becomes a node.
func New(deps map[string][]string) *Graph {
	seen := make(map[string]bool)
	for caller, callees := range deps {
		seen[caller] = true
		for _, c := range callees {
			seen[c] = true
		}
	}

	g := &Graph{
		names: make([]string, 0, len(seen)),
		index: make(map[string]FuncID, len(seen)),
	}
	for name := range seen {
		g.names = append(g.names, name)
	}
	sort.Strings(g.names)
	for i, name := range g.names {
		g.index[name] = FuncID(i)
	}

	g.edges = make([][]FuncID, len(g.names))
	for caller, callees := range deps {
		from := g.index[caller]
		added := make(map[FuncID]bool, len(callees))
		for _, c := range callees {
			to := g.index[c]
			if !added[to] {
				added[to] = true
				g.edges[from] = append(g.edges[from], to)
			}
		}
		sort.Slice(g.edges[from], func(i, j int) bool { return g.edges[from][i] < g.edges[from][j] })
	}
	return g
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.names) }

// Name returns the function name of id.
func (g *Graph) Name(id FuncID) string { return g.names[id] }

// Lookup returns the id of name.
func (g *Graph) Lookup(name string) (FuncID, bool) {
	id, ok := g.index[name]
	return id, ok
}

// Callees returns the direct callees of id in id order.
func (g *Graph) Callees(id FuncID) []FuncID { return g.edges[id] }

// Cycle is a chain of calls that returns to its first function,
// e.g. [f g f].
type Cycle []string

func (c Cycle) String() string {
	return strings.Join(c, " -> ")
}

// Contains reports whether name is a member of the cycle.
func (c Cycle) Contains(name string) bool {
	for _, n := range c {
		if n == name {
			return true
		}
	}
	return false
}

// Order returns the depth-first postorder of the graph, rooted at every node
// in id order, together with the cycles met along the way. A callee is
// emitted before its caller unless both sit on a common cycle.
// Cycles never stop the traversal.
func (g *Graph) Order() ([]string, []Cycle) {
	var (
		order   = make([]string, 0, len(g.names))
		cycles  []Cycle
		visited = make([]bool, len(g.names))
		onPath  = make([]bool, len(g.names))
		path    []FuncID
	)

	var visit func(id FuncID)
	visit = func(id FuncID) {
		visited[id] = true
		onPath[id] = true
		path = append(path, id)

		for _, next := range g.edges[id] {
			if onPath[next] {
				cycles = append(cycles, g.cycleFrom(path, next))
			} else if !visited[next] {
				visit(next)
			}
		}

		path = path[:len(path)-1]
		onPath[id] = false
		order = append(order, g.names[id])
	}

	for id := range g.names {
		if !visited[id] {
			visit(FuncID(id))
		}
	}
	return order, cycles
}

// cycleFrom builds the cycle closed by an edge from the top of path back to
// start, which is on path.
func (g *Graph) cycleFrom(path []FuncID, start FuncID) Cycle {
	i := len(path) - 1
	for i > 0 && path[i] != start {
		i--
	}
	cycle := make(Cycle, 0, len(path)-i+1)
	for _, id := range path[i:] {
		cycle = append(cycle, g.names[id])
	}
	return append(cycle, g.names[start])
}

// Order is a shorthand for New(deps).Order().
func Order(deps map[string][]string) ([]string, []Cycle) {
	return New(deps).Order()
}

// Arrange sorts function definitions by their position in order. Functions
// missing from order keep their relative source order after all others.
func Arrange(fns []*yul.FunctionDefinition, order []string) []*yul.FunctionDefinition {
	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}
	rank := func(fn *yul.FunctionDefinition) int {
		if p, ok := pos[fn.Name]; ok {
			return p
		}
		return len(order)
	}

	sorted := make([]*yul.FunctionDefinition, len(fns))
	copy(sorted, fns)
	sort.SliceStable(sorted, func(i, j int) bool { return rank(sorted[i]) < rank(sorted[j]) })
	return sorted
}
