package backend

import (
	"github.com/Oxidefier/oxidefier/internal/diagnostic"
	"github.com/Oxidefier/oxidefier/internal/rustbe"
	"github.com/Oxidefier/oxidefier/internal/yul"
)

// RustBackend wraps rustbe as a Backend implementation.
type RustBackend struct {
	Mode           rustbe.Mode
	SwitchFallback rustbe.SwitchFallback
	EmitMain       bool
}

// Name returns the target name.
func (b *RustBackend) Name() string {
	if b.Mode == rustbe.Plain {
		return "rust-plain"
	}
	return "rust"
}

// Generate produces a main.rs for the object tree.
func (b *RustBackend) Generate(root yul.ObjectNode) (string, *diagnostic.Diagnostics) {
	return rustbe.GenerateFile(root, rustbe.FileOptions{
		Options: rustbe.Options{
			Mode:           b.Mode,
			SwitchFallback: b.SwitchFallback,
		},
		EmitMain: b.EmitMain,
	})
}
