package compiler

import (
	"strings"

	"github.com/Oxidefier/oxidefier/internal/callgraph"
	"github.com/Oxidefier/oxidefier/internal/names"
	"github.com/Oxidefier/oxidefier/internal/yul"
)

// ObjectOrder is the emission order of the functions of one object.
type ObjectOrder struct {
	Module    string
	Functions []FunctionOrder
	Cycles    []callgraph.Cycle
}

// FunctionOrder is one emitted function. Calls lists the functions of the
// same object it calls; builtins are left out.
type FunctionOrder struct {
	Name   string
	Calls  []string
	Cyclic bool
}

// Order decodes data and reports, for every object, the order in which its
// functions are emitted.
func Order(data []byte) ([]ObjectOrder, error) {
	root, err := yul.Decode(data)
	if err != nil {
		return nil, err
	}
	var out []ObjectOrder
	collectOrder(root, nil, &out)
	return out, nil
}

func collectOrder(n yul.ObjectNode, path []string, out *[]ObjectOrder) {
	obj, ok := n.(*yul.Object)
	if !ok {
		return
	}
	path = append(path, names.ModuleName(obj.Name))

	entry := ObjectOrder{Module: strings.Join(path, "::")}
	if obj.Code != nil && obj.Code.Block != nil {
		entry.Functions, entry.Cycles = orderBlock(obj.Code.Block)
	}
	*out = append(*out, entry)

	for _, sub := range obj.SubObjects {
		collectOrder(sub, path, out)
	}
}

func orderBlock(block *yul.Block) ([]FunctionOrder, []callgraph.Cycle) {
	deps := callgraph.Collect(block)
	g := callgraph.New(deps)
	order, cycles := g.Order()

	fns := make([]FunctionOrder, 0, g.Len())
	for _, fn := range callgraph.Arrange(yul.Functions(block), order) {
		fo := FunctionOrder{Name: fn.Name}
		if id, ok := g.Lookup(fn.Name); ok {
			for _, callee := range g.Callees(id) {
				name := g.Name(callee)
				if _, user := deps[name]; user {
					fo.Calls = append(fo.Calls, name)
				}
			}
		}
		for _, c := range cycles {
			if c.Contains(fn.Name) {
				fo.Cyclic = true
				break
			}
		}
		fns = append(fns, fo)
	}
	return fns, cycles
}
