package backend

import (
	"github.com/Oxidefier/oxidefier/internal/diagnostic"
	"github.com/Oxidefier/oxidefier/internal/yul"
)

// Backend is the interface that all code generation backends implement.
type Backend interface {
	// Name returns the target name (e.g., "rust", "rust-plain")
	Name() string
	// Generate produces a complete source file from a Yul object tree.
	Generate(root yul.ObjectNode) (string, *diagnostic.Diagnostics)
}
