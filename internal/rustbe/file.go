package rustbe

import (
	"github.com/Oxidefier/oxidefier/internal/diagnostic"
	"github.com/Oxidefier/oxidefier/internal/names"
	"github.com/Oxidefier/oxidefier/internal/yul"
)

// FileOptions configures a complete main.rs.
type FileOptions struct {
	Options
	// EmitMain makes main() run the root object's entry function against a
	// default context. Otherwise main() is empty.
	EmitMain bool
}

var lints = []string{
	"dead_code",
	"mixed_script_confusables",
	"non_snake_case",
	"uncommon_codepoints",
	"unreachable_code",
	"unused_assignments",
	"unused_labels",
	"unused_mut",
	"unused_variables",
}

// GenerateFile produces a complete Rust source file for a Yul object tree:
// header, the generated modules and a main function.
func GenerateFile(root yul.ObjectNode, opts FileOptions) (string, *diagnostic.Diagnostics) {
	modules, diags := Generate(root, opts.Options)

	g := newGenerator(opts.Options)
	g.emitLine("// Generated by Oxidefier")
	g.emitLine("")
	for _, lint := range lints {
		g.emitLinef("#![allow(%s)]\n", lint)
	}
	g.emitLine("")
	g.emitLine("use alloy_primitives::U256;")
	g.emitLine("use evm_opcodes::*;")
	g.emitLine("")
	g.emit(modules)
	g.emitLine("")

	obj, ok := root.(*yul.Object)
	if opts.EmitMain && !ok {
		g.diag.Warningf(yul.Location{}, "root is a %s, not an object: main left empty", root.Kind())
	}
	diags.Merge(g.diag)
	if !opts.EmitMain || !ok {
		g.emitLine("fn main() {}")
		return g.sb.String(), diags
	}

	g.generateMain(names.ModuleName(obj.Name))
	return g.sb.String(), diags
}

func (g *generator) generateMain(module string) {
	g.emitLine("fn main() {")
	g.incIndent()
	g.emitLine("let mut context = Context {")
	g.incIndent()
	for _, field := range []string{
		"contract_interactions: std::marker::PhantomData::<DummyContractInteractions>",
		"memory: Memory::new()",
		"immutables: std::collections::HashMap::new()",
		"address: U256::ZERO",
		"caller: U256::ZERO",
		"callvalue: U256::ZERO",
		"gas: U256::from(100_000_000u64)",
		"timestamp: U256::ZERO",
		"calldata: vec![]",
		"chain_id: U256::from(1u64)",
	} {
		g.emitLine(field + ",")
	}
	g.decIndent()
	g.emitLine("};")
	g.emitLinef("let result = %s::%s(&mut context);\n", module, EntryName)
	g.emitLine(`println!("result: {:?}", result);`)
	g.decIndent()
	g.emitLine("}")
}
