package rustbe

import (
	"fmt"
	"strings"

	"github.com/Oxidefier/oxidefier/internal/callgraph"
	"github.com/Oxidefier/oxidefier/internal/diagnostic"
	"github.com/Oxidefier/oxidefier/internal/mutability"
	"github.com/Oxidefier/oxidefier/internal/names"
	"github.com/Oxidefier/oxidefier/internal/yul"
)

// Mode selects how results and failures flow through generated functions.
type Mode int

// In both modes functions return YulOutput<R>, every call propagates its
// failure with `?` and `leave` returns Ok with the current return values.
const (
	// Fallible declares a binding mutable only when it is assigned later.
	Fallible Mode = iota
	// Plain is the shallow embedding: every local and return variable is
	// declared mutable without analysis.
	Plain
)

func (m Mode) String() string {
	switch m {
	case Fallible:
		return "fallible"
	case Plain:
		return "plain"
	default:
		return "unknown"
	}
}

// SwitchFallback selects what a switch without a default case does when no
// case matches.
type SwitchFallback int

const (
	// FallbackNone does nothing, as in Yul.
	FallbackNone SwitchFallback = iota
	// FallbackUnreachable traps with unreachable!().
	FallbackUnreachable
)

func (f SwitchFallback) String() string {
	switch f {
	case FallbackNone:
		return "none"
	case FallbackUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Options configures one generation run.
type Options struct {
	Mode           Mode
	SwitchFallback SwitchFallback
}

// EntryName is the function each module gets for its object's top-level
// block.
const EntryName = "body"

// Generate produces Rust source code for a Yul object tree: one nested
// module per object. Unsupported nodes become placeholders and are reported
// in the returned diagnostics.
func Generate(root yul.ObjectNode, opts Options) (string, *diagnostic.Diagnostics) {
	g := newGenerator(opts)
	g.generateObjectNode(root)
	return g.sb.String(), g.diag
}

// loopFrame describes the innermost enclosing loop. bodyLabel is set when
// the body is a labeled block, which happens when the body continues.
type loopFrame struct {
	label     string
	bodyLabel string
}

type generator struct {
	sb      strings.Builder
	indent  int
	opts    Options
	diag    *diagnostic.Diagnostics
	modPath []string

	// Per function state.
	returns []string
	loops   []loopFrame
}

func newGenerator(opts Options) *generator {
	return &generator{opts: opts, diag: diagnostic.New()}
}

func (g *generator) emit(s string) {
	g.sb.WriteString(s)
}

func (g *generator) emitLinef(format string, args ...any) {
	g.sb.WriteString(g.indentStr())
	g.sb.WriteString(fmt.Sprintf(format, args...))
}

func (g *generator) emitLine(s string) {
	if s == "" {
		g.sb.WriteString("\n")
	} else {
		g.sb.WriteString(g.indentStr())
		g.sb.WriteString(s)
		g.sb.WriteString("\n")
	}
}

func (g *generator) incIndent() { g.indent++ }
func (g *generator) decIndent() { g.indent-- }

func (g *generator) indentStr() string {
	return strings.Repeat("    ", g.indent)
}

func (g *generator) setScope(fn string) {
	scope := strings.Join(g.modPath, "::")
	if fn != "" {
		scope += "::" + fn
	}
	g.diag.SetScope(scope)
}

// --- Objects ---

func (g *generator) generateObjectNode(n yul.ObjectNode) {
	switch obj := n.(type) {
	case *yul.Object:
		g.generateObject(obj)
	case *yul.Data:
		g.emitLine("// Data object not expected")
	case *yul.UnsupportedObject:
		g.diag.Warningf(obj.Src, "unsupported object node type %s", obj.Tag)
		g.emitLinef("// Unsupported object node type: %s\n", obj.Tag)
	}
}

func (g *generator) generateObject(obj *yul.Object) {
	modName := names.ModuleName(obj.Name)
	g.modPath = append(g.modPath, modName)
	g.setScope("")

	g.emitLinef("pub mod %s {\n", modName)
	g.incIndent()
	g.emitLine("use alloy_primitives::U256;")
	g.emitLine("use evm_opcodes::*;")
	g.emitLine("")

	if obj.Code != nil {
		g.generateCode(obj.Code)
	}

	for _, sub := range obj.SubObjects {
		if _, ok := sub.(*yul.Data); ok {
			continue
		}
		g.emitLine("")
		g.generateObjectNode(sub)
	}

	g.decIndent()
	g.emitLine("}")

	g.modPath = g.modPath[:len(g.modPath)-1]
	g.setScope("")
}

// generateCode emits the functions of a code block in call dependency order,
// followed by the entry function.
func (g *generator) generateCode(code *yul.Code) {
	block := code.Block
	if block == nil {
		block = &yul.Block{}
	}

	order, cycles := callgraph.Order(callgraph.Collect(block))
	for _, c := range cycles {
		g.diag.WarningWithHint(block.Src, fmt.Sprintf("call cycle detected: %s", c),
			"mutually recursive functions are emitted in DFS postorder")
	}

	for _, fn := range callgraph.Arrange(yul.Functions(block), order) {
		g.generateFunction(fn)
		g.emitLine("")
	}

	g.generateEntry(block)
}

// --- Functions ---

func mutFlag(mutable bool) string {
	if mutable {
		return "mut "
	}
	return ""
}

// tupleType returns the Rust type for n return values.
func tupleType(n int) string {
	switch n {
	case 0:
		return "()"
	case 1:
		return "U256"
	}
	return "(" + strings.TrimSuffix(strings.Repeat("U256, ", n), ", ") + ")"
}

func resultType(n int) string {
	return " -> YulOutput<" + tupleType(n) + ">"
}

// mutable reports whether a binding is declared mut. Plain mode declares
// every local mutable.
func (g *generator) mutable(assigned bool) bool {
	return assigned || g.opts.Mode == Plain
}

func (g *generator) emitSignature(name string, params []string, results int) {
	params = append(params, "context: &mut Context<CI>")
	g.emitLinef("pub fn %s<CI>(%s)%s\n", name, strings.Join(params, ", "), resultType(results))
	g.emitLine("where")
	g.incIndent()
	g.emitLine("Context<CI>: ContractInteractions,")
	g.decIndent()
	g.emitLine("{")
}

// emitTail emits the final expression delivering the return variables.
func (g *generator) emitTail() {
	g.emitLinef("Ok(%s)\n", names.Tuple(g.returns))
}

func (g *generator) generateFunction(fn *yul.FunctionDefinition) {
	g.setScope(fn.Name)
	defer g.setScope("")

	eligible := make(mutability.Set, len(fn.Parameters)+len(fn.ReturnVariables))
	for _, name := range fn.Parameters {
		eligible[name] = true
	}
	for _, name := range fn.ReturnVariables {
		eligible[name] = true
	}
	mutated := mutability.MutatedIn(fn.Body, eligible)

	params := make([]string, 0, len(fn.Parameters)+1)
	for _, p := range fn.Parameters {
		params = append(params, mutFlag(mutated[p])+names.Encode(p)+": U256")
	}

	g.emitSignature(names.Encode(fn.Name), params, len(fn.ReturnVariables))
	g.incIndent()

	for _, r := range fn.ReturnVariables {
		g.emitLinef("let %s%s = U256::ZERO;\n", mutFlag(g.mutable(mutated[r])), names.Encode(r))
	}

	g.returns = fn.ReturnVariables
	g.loops = nil
	if fn.Body != nil {
		g.generateStmts(fn.Body.Statements, false)
	}
	g.emitTail()
	g.returns = nil

	g.decIndent()
	g.emitLine("}")
}

// generateEntry lowers the top-level statements of a code block into the
// module's entry function. Function definitions are skipped; they have
// already been emitted as items.
func (g *generator) generateEntry(block *yul.Block) {
	g.setScope(EntryName)
	defer g.setScope("")

	g.emitSignature(EntryName, nil, 0)
	g.incIndent()
	g.returns = nil
	g.loops = nil
	g.generateStmts(block.Statements, true)
	g.emitTail()
	g.decIndent()
	g.emitLine("}")
}
