package callgraph_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Oxidefier/oxidefier/internal/callgraph"
	"github.com/Oxidefier/oxidefier/internal/yul"
)

func call(name string, args ...yul.Expr) *yul.FunctionCall {
	return &yul.FunctionCall{FunctionName: name, Arguments: args}
}

func stmt(e yul.Expr) yul.Stmt {
	return &yul.ExpressionStatement{Expression: e}
}

func fn(name string, body ...yul.Stmt) *yul.FunctionDefinition {
	return &yul.FunctionDefinition{Name: name, Body: &yul.Block{Statements: body}}
}

func indexOf(order []string, name string) int {
	for i, n := range order {
		if n == name {
			return i
		}
	}
	return -1
}

var _ = Describe("Dependencies", func() {
	It("should collect nested calls once, sorted", func() {
		f := fn("f",
			stmt(call("mstore", call("add", &yul.Identifier{Name: "x"}, call("g")))),
			&yul.If{
				Condition: call("iszero", call("h")),
				Body:      &yul.Block{Statements: []yul.Stmt{stmt(call("g"))}},
			},
			&yul.ForLoop{
				Pre:       &yul.Block{Statements: []yul.Stmt{&yul.VariableDeclaration{Variables: []string{"i"}, Value: call("k")}}},
				Condition: call("lt"),
				Post:      &yul.Block{},
				Body:      &yul.Block{Statements: []yul.Stmt{&yul.Assignment{VariableNames: []string{"i"}, Value: call("j")}}},
			},
			&yul.Switch{
				Expression: call("s"),
				Cases: []*yul.Case{
					{Value: &yul.Literal{Value: "1"}, Body: &yul.Block{Statements: []yul.Stmt{stmt(call("c1"))}}},
					{Body: &yul.Block{Statements: []yul.Stmt{stmt(call("dflt"))}}},
				},
			},
		)

		Expect(callgraph.Dependencies(f)).To(Equal([]string{
			"add", "c1", "dflt", "g", "h", "iszero", "j", "k", "lt", "mstore", "s",
		}))
	})

	It("should return an empty list for a function without calls", func() {
		Expect(callgraph.Dependencies(fn("empty"))).To(BeEmpty())
	})

	It("should collect every top-level function", func() {
		block := &yul.Block{Statements: []yul.Stmt{
			fn("a", stmt(call("b"))),
			stmt(call("a")),
			fn("b"),
		}}
		Expect(callgraph.Collect(block)).To(Equal(map[string][]string{
			"a": {"b"},
			"b": {},
		}))
	})
})

var _ = Describe("Order", func() {
	It("should place callees before callers", func() {
		order, cycles := callgraph.Order(map[string][]string{
			"main":   {"parse", "emit"},
			"parse":  {"lex"},
			"emit":   {"format"},
			"lex":    {},
			"format": {"lex"},
		})

		Expect(cycles).To(BeEmpty())
		Expect(order).To(HaveLen(5))
		Expect(indexOf(order, "lex")).To(BeNumerically("<", indexOf(order, "parse")))
		Expect(indexOf(order, "lex")).To(BeNumerically("<", indexOf(order, "format")))
		Expect(indexOf(order, "format")).To(BeNumerically("<", indexOf(order, "emit")))
		Expect(indexOf(order, "parse")).To(BeNumerically("<", indexOf(order, "main")))
		Expect(indexOf(order, "emit")).To(BeNumerically("<", indexOf(order, "main")))
	})

	It("should produce the lexicographic DFS postorder", func() {
		order, _ := callgraph.Order(map[string][]string{
			"c": {"a"},
			"b": {},
			"a": {},
		})
		Expect(order).To(Equal([]string{"a", "b", "c"}))
	})

	It("should include callees that are not keys", func() {
		order, _ := callgraph.Order(map[string][]string{"f": {"add"}})
		Expect(order).To(Equal([]string{"add", "f"}))
	})

	It("should be deterministic", func() {
		deps := map[string][]string{
			"z": {"y", "x"}, "y": {"x"}, "x": {}, "w": {"z", "x"}, "v": {"w"},
		}
		first, _ := callgraph.Order(deps)
		for i := 0; i < 20; i++ {
			again, _ := callgraph.Order(deps)
			Expect(again).To(Equal(first))
		}
	})

	It("should report mutual recursion once and terminate", func() {
		order, cycles := callgraph.Order(map[string][]string{
			"f": {"g"},
			"g": {"f"},
		})

		Expect(order).To(ConsistOf("f", "g"))
		Expect(cycles).To(HaveLen(1))
		Expect(cycles[0].Contains("f")).To(BeTrue())
		Expect(cycles[0].Contains("g")).To(BeTrue())
		Expect(cycles[0].String()).To(Equal("f -> g -> f"))
	})

	It("should report self recursion", func() {
		order, cycles := callgraph.Order(map[string][]string{"f": {"f", "add"}})
		Expect(order).To(Equal([]string{"add", "f"}))
		Expect(cycles).To(HaveLen(1))
		Expect(cycles[0]).To(Equal(callgraph.Cycle{"f", "f"}))
	})

	It("should report the cycle path only from its entry point", func() {
		_, cycles := callgraph.Order(map[string][]string{
			"a": {"b"},
			"b": {"c"},
			"c": {"d"},
			"d": {"b"},
		})
		Expect(cycles).To(HaveLen(1))
		Expect(cycles[0]).To(Equal(callgraph.Cycle{"b", "c", "d", "b"}))
	})

	It("should handle an empty mapping", func() {
		order, cycles := callgraph.Order(nil)
		Expect(order).To(BeEmpty())
		Expect(cycles).To(BeEmpty())
	})
})

var _ = Describe("Graph", func() {
	It("should index names lexicographically", func() {
		g := callgraph.New(map[string][]string{"b": {"a", "c", "a"}})
		Expect(g.Len()).To(Equal(3))

		b, ok := g.Lookup("b")
		Expect(ok).To(BeTrue())
		Expect(b).To(Equal(callgraph.FuncID(1)))
		Expect(g.Callees(b)).To(Equal([]callgraph.FuncID{0, 2}))
		Expect(g.Name(2)).To(Equal("c"))

		_, ok = g.Lookup("missing")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Arrange", func() {
	It("should sort definitions by order and keep unknown ones last", func() {
		a, b, c, d := fn("a"), fn("b"), fn("c"), fn("d")
		arranged := callgraph.Arrange([]*yul.FunctionDefinition{d, a, c, b}, []string{"c", "add", "a", "b"})
		Expect(arranged).To(Equal([]*yul.FunctionDefinition{c, a, b, d}))
	})
})
