package rustbe

import (
	"fmt"
	"strings"

	"github.com/Oxidefier/oxidefier/internal/literal"
	"github.com/Oxidefier/oxidefier/internal/names"
	"github.com/Oxidefier/oxidefier/internal/yul"
)

func (g *generator) generateExpr(e yul.Expr) string {
	switch expr := e.(type) {
	case *yul.FunctionCall:
		return g.generateCall(expr)
	case *yul.Identifier:
		return names.Encode(expr.Name)
	case *yul.Literal:
		return g.generateLiteral(expr)
	case *yul.UnsupportedExpr:
		g.diag.Warningf(expr.Src, "unsupported expression node type %s", expr.Tag)
		return placeholder(fmt.Sprintf("unsupported expression node type: %s", expr.Tag))
	case nil:
		return placeholder("missing expression")
	default:
		return placeholder(fmt.Sprintf("unexpected expression %T", e))
	}
}

// generateCall passes the execution context as the trailing argument of every
// call, builtins included. Every call is fallible.
func (g *generator) generateCall(call *yul.FunctionCall) string {
	args := make([]string, 0, len(call.Arguments)+1)
	for _, arg := range call.Arguments {
		args = append(args, g.generateExpr(arg))
	}
	args = append(args, "context")

	return names.Encode(call.FunctionName) + "(" + strings.Join(args, ", ") + ")?"
}

func (g *generator) generateLiteral(lit *yul.Literal) string {
	if lit == nil {
		return placeholder("missing literal")
	}
	out, err := literal.Encode(lit)
	if err != nil {
		g.diag.Errorf(lit.Src, "%v", err)
		return placeholder(err.Error())
	}
	return out
}

func placeholder(msg string) string {
	return `unimplemented!("` + escapeRustString(msg) + `")`
}

func escapeRustString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
