package compiler

import (
	"github.com/Oxidefier/oxidefier/internal/backend"
	"github.com/Oxidefier/oxidefier/internal/config"
)

// getBackend returns the appropriate backend for the configured target
func getBackend(cfg config.Config) (backend.Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &backend.RustBackend{
		Mode:           cfg.Mode(),
		SwitchFallback: cfg.Fallback(),
		EmitMain:       cfg.EmitMain,
	}, nil
}

// getFileExtension returns the file extension for the given target
func getFileExtension(target string) string {
	switch target {
	case "rust", "rust-plain":
		return ".rs"
	default:
		return ""
	}
}
