// Package config holds the settings of a translation run. Settings come from
// defaults, an optional YAML file and command-line flags, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Oxidefier/oxidefier/internal/rustbe"
)

var (
	// ErrUnknownTarget is returned for a target name no backend serves.
	ErrUnknownTarget = errors.New("unknown target")
	// ErrUnknownFallback is returned for an invalid switch_fallback value.
	ErrUnknownFallback = errors.New("unknown switch fallback")
)

// Targets lists the accepted target names.
var Targets = []string{"rust", "rust-plain"}

// Config is the configuration of one run.
type Config struct {
	// Target selects the backend: "rust" or "rust-plain".
	Target string `yaml:"target"`
	// Unit is the crate name. Defaults to the input file's base name.
	Unit string `yaml:"unit"`
	// OutDir is the directory crates are written under.
	OutDir string `yaml:"out_dir"`
	// SwitchFallback is "none" or "unreachable".
	SwitchFallback string `yaml:"switch_fallback"`
	EmitMain       bool   `yaml:"emit_main"`
	CargoCheck     bool   `yaml:"cargo_check"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Target:         "rust",
		OutDir:         "out",
		SwitchFallback: "none",
		EmitMain:       true,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if !isTarget(c.Target) {
		return fmt.Errorf("%w: %q (want one of %s)", ErrUnknownTarget, c.Target, strings.Join(Targets, ", "))
	}
	if _, err := ParseFallback(c.SwitchFallback); err != nil {
		return err
	}
	return nil
}

func isTarget(name string) bool {
	for _, t := range Targets {
		if t == name {
			return true
		}
	}
	return false
}

// Mode returns the lowering mode of the target.
func (c Config) Mode() rustbe.Mode {
	if c.Target == "rust-plain" {
		return rustbe.Plain
	}
	return rustbe.Fallible
}

// ParseFallback maps a switch_fallback value to its lowering.
func ParseFallback(s string) (rustbe.SwitchFallback, error) {
	switch s {
	case "", "none":
		return rustbe.FallbackNone, nil
	case "unreachable":
		return rustbe.FallbackUnreachable, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFallback, s)
}

// Fallback returns the switch lowering. Invalid values fall back to none;
// Validate reports them.
func (c Config) Fallback() rustbe.SwitchFallback {
	f, _ := ParseFallback(c.SwitchFallback)
	return f
}

// UnitName returns the crate name for an input file.
func (c Config) UnitName(inputPath string) string {
	if c.Unit != "" {
		return c.Unit
	}
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
