package rustbe

import (
	"fmt"
	"strings"

	"github.com/Oxidefier/oxidefier/internal/mutability"
	"github.com/Oxidefier/oxidefier/internal/names"
	"github.com/Oxidefier/oxidefier/internal/yul"
)

// generateStmts lowers a statement sequence. At the top level of an object's
// code, function definitions are items and are skipped here.
func (g *generator) generateStmts(stmts []yul.Stmt, top bool) {
	after := mutability.After(stmts)
	for i, s := range stmts {
		if _, ok := s.(*yul.FunctionDefinition); ok && top {
			continue
		}
		g.generateStmt(s, after[i])
	}
}

func (g *generator) generateBlock(b *yul.Block) {
	g.emitLine("{")
	g.incIndent()
	if b != nil {
		g.generateStmts(b.Statements, false)
	}
	g.decIndent()
	g.emitLine("}")
}

func (g *generator) generateStmt(s yul.Stmt, after mutability.Set) {
	switch stmt := s.(type) {
	case *yul.Block:
		g.generateBlock(stmt)
	case *yul.VariableDeclaration:
		g.generateVariableDeclaration(stmt, after)
	case *yul.Assignment:
		g.emitLinef("%s = %s;\n", names.Tuple(stmt.VariableNames), g.generateExpr(stmt.Value))
	case *yul.ExpressionStatement:
		g.emitLinef("%s;\n", g.generateExpr(stmt.Expression))
	case *yul.If:
		g.emitLinef("if %s != U256::ZERO {\n", g.generateExpr(stmt.Condition))
		g.incIndent()
		if stmt.Body != nil {
			g.generateStmts(stmt.Body.Statements, false)
		}
		g.decIndent()
		g.emitLine("}")
	case *yul.Switch:
		g.generateSwitch(stmt)
	case *yul.ForLoop:
		g.generateForLoop(stmt, after)
	case *yul.Break:
		g.generateBreak()
	case *yul.Continue:
		g.generateContinue(stmt)
	case *yul.Leave:
		g.generateLeave()
	case *yul.FunctionDefinition:
		g.diag.Warningf(stmt.Src, "function %s defined inside a nested block", stmt.Name)
		g.emitLine("// Function definition not expected at block level")
	case *yul.UnsupportedStmt:
		g.diag.Warningf(stmt.Src, "unsupported statement node type %s", stmt.Tag)
		g.emitLinef("// Unsupported statement node type: %s\n", stmt.Tag)
	}
}

func (g *generator) generateVariableDeclaration(decl *yul.VariableDeclaration, after mutability.Set) {
	mut := mutability.Declaration(decl, after)
	for i := range mut {
		mut[i] = g.mutable(mut[i])
	}

	var value string
	if decl.Value != nil {
		value = g.generateExpr(decl.Value)
	} else if len(decl.Variables) == 1 {
		value = "U256::ZERO"
	} else {
		value = "(" + strings.TrimSuffix(strings.Repeat("U256::ZERO, ", len(decl.Variables)), ", ") + ")"
	}

	if len(decl.Variables) == 1 {
		g.emitLinef("let %s%s = %s;\n", mutFlag(mut[0]), names.Encode(decl.Variables[0]), value)
		return
	}

	pattern := make([]string, len(decl.Variables))
	for i, name := range decl.Variables {
		pattern[i] = mutFlag(mut[i]) + names.Encode(name)
	}
	g.emitLinef("let (%s) = %s;\n", strings.Join(pattern, ", "), value)
}

// generateSwitch evaluates the scrutinee once into δ and tests the cases in
// source order.
func (g *generator) generateSwitch(sw *yul.Switch) {
	g.emitLine("// switch")
	g.emitLinef("let δ = %s;\n", g.generateExpr(sw.Expression))

	var cases []*yul.Case
	for _, c := range sw.Cases {
		if !c.IsDefault() {
			cases = append(cases, c)
		}
	}
	def := sw.Default()
	if def == nil && g.opts.SwitchFallback == FallbackNone {
		g.diag.Infof(sw.Src, "switch without default: unmatched values do nothing")
	}

	if len(cases) == 0 {
		switch {
		case def != nil:
			g.generateBlock(def.Body)
		case g.opts.SwitchFallback == FallbackUnreachable:
			g.emitLine(`unreachable!("no switch case matched");`)
		}
		return
	}

	for i, c := range cases {
		if i == 0 {
			g.emitLinef("if δ == %s {\n", g.caseValue(c))
		} else {
			g.emitLinef("} else if δ == %s {\n", g.caseValue(c))
		}
		g.incIndent()
		if c.Body != nil {
			g.generateStmts(c.Body.Statements, false)
		}
		g.decIndent()
	}

	switch {
	case def != nil:
		g.emitLine("} else {")
		g.incIndent()
		if def.Body != nil {
			g.generateStmts(def.Body.Statements, false)
		}
		g.decIndent()
	case g.opts.SwitchFallback == FallbackUnreachable:
		g.emitLine("} else {")
		g.incIndent()
		g.emitLine(`unreachable!("no switch case matched");`)
		g.decIndent()
	}
	g.emitLine("}")
}

func (g *generator) caseValue(c *yul.Case) string {
	if c.Unsupported != nil {
		return g.generateExpr(c.Unsupported)
	}
	return g.generateLiteral(c.Value)
}

// continuesDirectly reports whether body contains a continue that targets
// the loop owning body.
func continuesDirectly(body *yul.Block) bool {
	if body == nil {
		return false
	}
	found := false
	yul.Inspect(body, func(n yul.Node) bool {
		if found {
			return false
		}
		switch n.(type) {
		case *yul.ForLoop, *yul.FunctionDefinition:
			return false
		case *yul.Continue:
			found = true
			return false
		}
		return true
	})
	return found
}

// generateForLoop lowers a for loop into a while loop. A non-empty init block
// is hoisted into an enclosing block so its bindings stay scoped to the loop.
// When the body continues, it becomes a labeled block: continue breaks out of
// it so the post block still runs.
func (g *generator) generateForLoop(loop *yul.ForLoop, after mutability.Set) {
	if loop.Pre != nil && !loop.Pre.IsEmpty() {
		stmts := make([]yul.Stmt, 0, len(loop.Pre.Statements)+1)
		stmts = append(stmts, loop.Pre.Statements...)
		stmts = append(stmts, &yul.ForLoop{
			Pre:       &yul.Block{Src: loop.Pre.Src},
			Condition: loop.Condition,
			Post:      loop.Post,
			Body:      loop.Body,
			Src:       loop.Src,
		})
		g.generateBlock(&yul.Block{Statements: stmts, Src: loop.Pre.Src})
		return
	}

	depth := len(g.loops)
	frame := loopFrame{}
	if continuesDirectly(loop.Body) {
		frame.label = fmt.Sprintf("'loop_%d", depth)
		frame.bodyLabel = fmt.Sprintf("'body_%d", depth)
	}

	cond := g.generateExpr(loop.Condition)
	g.emitLine("// for loop")
	if frame.label != "" {
		g.emitLinef("%s: while %s != U256::ZERO {\n", frame.label, cond)
	} else {
		g.emitLinef("while %s != U256::ZERO {\n", cond)
	}
	g.incIndent()

	g.loops = append(g.loops, frame)

	g.emitLine("// body")
	if frame.bodyLabel != "" {
		g.emitLinef("%s: {\n", frame.bodyLabel)
	} else {
		g.emitLine("{")
	}
	g.incIndent()
	if loop.Body != nil {
		g.generateStmts(loop.Body.Statements, false)
	}
	g.decIndent()
	g.emitLine("}")

	// The post block is outside the labeled body.
	g.loops[len(g.loops)-1] = loopFrame{label: frame.label}

	g.emitLine("// post")
	g.generateBlock(loop.Post)

	g.loops = g.loops[:len(g.loops)-1]

	g.decIndent()
	g.emitLine("}")
}

func (g *generator) generateBreak() {
	if n := len(g.loops); n > 0 && g.loops[n-1].label != "" {
		g.emitLinef("break %s;\n", g.loops[n-1].label)
		return
	}
	g.emitLine("break;")
}

func (g *generator) generateContinue(c *yul.Continue) {
	n := len(g.loops)
	if n == 0 {
		g.diag.Errorf(c.Src, "continue outside of a for loop")
		g.emitLine("continue;")
		return
	}
	if label := g.loops[n-1].bodyLabel; label != "" {
		g.emitLinef("break %s;\n", label)
		return
	}
	g.emitLine("continue;")
}

// generateLeave returns the current values of the function's return
// variables.
func (g *generator) generateLeave() {
	g.emitLinef("return Ok(%s);\n", names.Tuple(g.returns))
}
