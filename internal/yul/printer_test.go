package yul

import (
	"strings"
	"testing"
)

func TestPrint(t *testing.T) {
	obj := &Object{
		Name: "Counter_21",
		Code: &Code{Block: &Block{Statements: []Stmt{
			&FunctionDefinition{
				Name:            "f",
				Parameters:      []string{"a"},
				ReturnVariables: []string{"r"},
				Body: &Block{Statements: []Stmt{
					&Assignment{VariableNames: []string{"r"}, Value: &FunctionCall{
						FunctionName: "add",
						Arguments:    []Expr{&Identifier{Name: "a"}, &Literal{LiteralKind: LiteralNumber, Value: "1"}},
					}},
				}},
			},
			&Switch{Expression: &Identifier{Name: "x"}, Cases: []*Case{
				{Value: &Literal{LiteralKind: LiteralNumber, Value: "0"}, Body: &Block{Statements: []Stmt{&Leave{}}}},
				{Body: &Block{}},
			}},
		}}},
		SubObjects: []ObjectNode{&Data{Name: ".metadata"}},
	}

	out := Print(obj)
	for _, want := range []string{
		"Object: Counter_21\n",
		"  Code:\n",
		"    Function: f\n",
		"      Params: a\n",
		"      Returns: r\n",
		"        Assign: r\n",
		"          Call: add\n",
		"            Ident: a\n",
		"            Literal(number): 1\n",
		"    Switch\n",
		"      Case 0:\n",
		"        Leave\n",
		"      Default: empty\n",
		"  Data: .metadata\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Print() missing %q\n%s", want, out)
		}
	}
}
