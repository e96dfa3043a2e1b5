package compiler

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/Oxidefier/oxidefier/internal/config"
	"github.com/Oxidefier/oxidefier/internal/diagnostic"
	"github.com/Oxidefier/oxidefier/internal/yul"
)

// Result holds the output of a translation
type Result struct {
	Diagnostics *diagnostic.Diagnostics
	RustSource  string
	Root        yul.ObjectNode
}

// Compile runs the full pipeline: decode -> backend.
// Returns the result without writing files or invoking cargo. Malformed
// input is an error; anything the backend cannot translate is reported in
// the diagnostics.
func Compile(data []byte, cfg config.Config) (*Result, error) {
	root, err := yul.Decode(data)
	if err != nil {
		return nil, err
	}

	be, err := getBackend(cfg)
	if err != nil {
		return nil, err
	}

	src, diags := be.Generate(root)
	return &Result{Diagnostics: diags, RustSource: src, Root: root}, nil
}

// Emitter writes translated crates and optionally checks them with cargo.
type Emitter struct {
	Writer FileWriter
	Runner Runner
	Log    *slog.Logger
}

// NewEmitter returns an Emitter on the local file system.
func NewEmitter(log *slog.Logger) *Emitter {
	if log == nil {
		log = slog.Default()
	}
	return &Emitter{
		Writer: OSWriter{},
		Runner: ExecRunner{Stdout: os.Stderr, Stderr: os.Stderr},
		Log:    log,
	}
}

var crateNameInvalid = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// CrateName turns a unit name into a valid Cargo package name.
func CrateName(unit string) string {
	name := crateNameInvalid.ReplaceAllString(unit, "_")
	if name == "" {
		return "yul_output"
	}
	return name
}

// CargoManifest returns the Cargo.toml of a generated crate. The crate is
// meant to live in a workspace providing the runtime dependencies.
func CargoManifest(crate string) string {
	return fmt.Sprintf(`[package]
name = "%s"
version = "0.1.0"
edition.workspace = true

[dependencies]
alloy-primitives.workspace = true
evm_opcodes.workspace = true
`, crate)
}

// EmitCrate writes <out>/<unit>/Cargo.toml and <out>/<unit>/src/main.rs and
// returns the crate directory.
func (e *Emitter) EmitCrate(res *Result, cfg config.Config, unit string) (string, error) {
	crate := CrateName(unit)
	dir := filepath.Join(cfg.OutDir, crate)
	srcDir := filepath.Join(dir, "src")

	if err := e.Writer.MkdirAll(srcDir); err != nil {
		return "", fmt.Errorf("failed to create src dir: %w", err)
	}
	if err := e.Writer.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte(CargoManifest(crate))); err != nil {
		return "", fmt.Errorf("failed to write Cargo.toml: %w", err)
	}
	mainPath := filepath.Join(srcDir, "main"+getFileExtension(cfg.Target))
	if err := e.Writer.WriteFile(mainPath, []byte(res.RustSource)); err != nil {
		return "", fmt.Errorf("failed to write main.rs: %w", err)
	}

	e.Log.Info("wrote crate", "crate", crate, "dir", dir)
	return dir, nil
}

// Build translates data, writes the crate and runs cargo check when
// configured. Diagnostics are returned even when the build fails.
func (e *Emitter) Build(data []byte, cfg config.Config, unit string) (*Result, error) {
	res, err := Compile(data, cfg)
	if err != nil {
		return nil, err
	}
	for _, d := range res.Diagnostics.Warnings() {
		e.Log.Warn(d.Message, "src", d.Src.String(), "scope", d.Scope)
	}
	if res.Diagnostics.HasErrors() {
		return res, fmt.Errorf("translation errors:\n%s", res.Diagnostics.Format(unit))
	}

	dir, err := e.EmitCrate(res, cfg, unit)
	if err != nil {
		return res, err
	}

	if cfg.CargoCheck {
		e.Log.Info("running cargo check", "dir", dir)
		if err := e.Runner.Run(dir, "cargo", []string{"check", "--quiet"}); err != nil {
			return res, fmt.Errorf("cargo check failed: %w", err)
		}
	}
	return res, nil
}
