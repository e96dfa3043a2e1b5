package yul

// Inspect traverses the tree rooted at n in depth-first order, calling f for
// each node. If f returns false the children of that node are skipped.
//
// Children are visited in the lexical order of their JSON field names
// (body, condition, post, pre for a for loop; cases, expression for a switch;
// and so on) so that traversal order does not depend on how a node was built.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}

	switch n := n.(type) {
	case *Object:
		if n.Code != nil {
			Inspect(n.Code, f)
		}
		for _, sub := range n.SubObjects {
			Inspect(sub, f)
		}
	case *Code:
		inspectBlock(n.Block, f)
	case *Block:
		for _, s := range n.Statements {
			Inspect(s, f)
		}
	case *FunctionDefinition:
		inspectBlock(n.Body, f)
	case *VariableDeclaration:
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *Assignment:
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *ExpressionStatement:
		Inspect(n.Expression, f)
	case *If:
		inspectBlock(n.Body, f)
		Inspect(n.Condition, f)
	case *Switch:
		for _, c := range n.Cases {
			Inspect(c, f)
		}
		Inspect(n.Expression, f)
	case *Case:
		inspectBlock(n.Body, f)
		if n.Value != nil {
			Inspect(n.Value, f)
		}
		if n.Unsupported != nil {
			Inspect(n.Unsupported, f)
		}
	case *ForLoop:
		inspectBlock(n.Body, f)
		Inspect(n.Condition, f)
		inspectBlock(n.Post, f)
		inspectBlock(n.Pre, f)
	case *FunctionCall:
		for _, a := range n.Arguments {
			Inspect(a, f)
		}
	}
}

func inspectBlock(b *Block, f func(Node) bool) {
	if b != nil {
		Inspect(b, f)
	}
}

// Functions returns the function definitions that are direct statements of b,
// in source order.
func Functions(b *Block) []*FunctionDefinition {
	if b == nil {
		return nil
	}
	var fns []*FunctionDefinition
	for _, s := range b.Statements {
		if fn, ok := s.(*FunctionDefinition); ok {
			fns = append(fns, fn)
		}
	}
	return fns
}
