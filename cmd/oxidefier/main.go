package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tebeka/atexit"

	"github.com/Oxidefier/oxidefier/internal/compiler"
	"github.com/Oxidefier/oxidefier/internal/config"
	"github.com/Oxidefier/oxidefier/internal/yul"
)

const usage = `oxidefier - translate Yul IR JSON into Rust

Usage:
  oxidefier build [options] <file.json>    Write a Cargo crate for the contract
  oxidefier emit [options] <file.json>     Print the generated Rust source
  oxidefier check [options] <file.json>    Translate and report diagnostics only
  oxidefier order <file.json>              Show the function emission order
  oxidefier dump <file.json>               Print the decoded Yul tree

Options:
  --config <file.yaml>        Load settings from a YAML file
  --target <rust|rust-plain>  Backend (default rust)
  --out <dir>                 Directory crates are written under (default out)
  --unit <name>               Crate name (default: input base name)
  --switch-fallback <mode>    none or unreachable (default none)
  --no-main                   Emit an empty main function
  --cargo-check               Run cargo check on the written crate
  --verbose                   Log debug output

Examples:
  oxidefier build erc20.json                    Write out/erc20/{Cargo.toml,src/main.rs}
  oxidefier emit --target rust-plain erc20.json Print the plain translation
  oxidefier order erc20.json                    List functions in dependency order
`

type options struct {
	cfg       config.Config
	filePath  string
	verbose   bool
	overrides []func(*config.Config)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		atexit.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "build":
		handleBuild(os.Args[2:])
	case "emit":
		handleEmit(os.Args[2:])
	case "check":
		handleCheck(os.Args[2:])
	case "order":
		handleOrder(os.Args[2:])
	case "dump":
		handleDump(os.Args[2:])
	case "help", "--help", "-h":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		fmt.Fprint(os.Stderr, usage)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	atexit.Exit(1)
}

// parseArgs reads options and the input file. Settings from --config are
// applied first and flags override them.
func parseArgs(args []string) options {
	opts := options{cfg: config.Default()}
	var configPath string

	for i := 0; i < len(args); i++ {
		arg, inline, hasInline := strings.Cut(args[i], "=")
		value := func() string {
			if hasInline {
				return inline
			}
			if i+1 >= len(args) {
				fail("%s needs a value", arg)
			}
			i++
			return args[i]
		}
		switch arg {
		case "--config":
			configPath = value()
		case "--target":
			v := value()
			opts.overrides = append(opts.overrides, func(c *config.Config) { c.Target = v })
		case "--out":
			v := value()
			opts.overrides = append(opts.overrides, func(c *config.Config) { c.OutDir = v })
		case "--unit":
			v := value()
			opts.overrides = append(opts.overrides, func(c *config.Config) { c.Unit = v })
		case "--switch-fallback":
			v := value()
			opts.overrides = append(opts.overrides, func(c *config.Config) { c.SwitchFallback = v })
		case "--no-main":
			opts.overrides = append(opts.overrides, func(c *config.Config) { c.EmitMain = false })
		case "--cargo-check":
			opts.overrides = append(opts.overrides, func(c *config.Config) { c.CargoCheck = true })
		case "--verbose", "-v":
			opts.verbose = true
		default:
			if strings.HasPrefix(arg, "-") {
				fail("unknown option: %s", arg)
			}
			opts.filePath = args[i]
		}
	}

	if opts.filePath == "" {
		fail("no input file specified")
	}

	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			fail("%s", err)
		}
		opts.cfg = cfg
	}
	for _, o := range opts.overrides {
		o(&opts.cfg)
	}
	if err := opts.cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrUnknownTarget) {
			fail("%s\n\n%s", err, usage)
		}
		fail("%s", err)
	}
	return opts
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func readInput(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		fail("reading file: %s", err)
	}
	return data
}

func handleBuild(args []string) {
	opts := parseArgs(args)
	log := newLogger(opts.verbose)
	unit := opts.cfg.UnitName(opts.filePath)

	log.Debug("building", "file", opts.filePath, "target", opts.cfg.Target, "unit", unit)
	emitter := compiler.NewEmitter(log)
	if _, err := emitter.Build(readInput(opts.filePath), opts.cfg, unit); err != nil {
		fail("%s", err)
	}
}

func handleEmit(args []string) {
	opts := parseArgs(args)
	res, err := compiler.Compile(readInput(opts.filePath), opts.cfg)
	if err != nil {
		fail("%s", err)
	}
	if res.Diagnostics.Count() > 0 {
		fmt.Fprint(os.Stderr, res.Diagnostics.Format(opts.filePath))
	}
	if res.Diagnostics.HasErrors() {
		atexit.Exit(1)
	}
	fmt.Print(res.RustSource)
}

func handleCheck(args []string) {
	opts := parseArgs(args)
	res, err := compiler.Compile(readInput(opts.filePath), opts.cfg)
	if err != nil {
		fail("%s", err)
	}
	if res.Diagnostics.Count() == 0 {
		fmt.Printf("%s: OK\n", opts.filePath)
		return
	}
	fmt.Fprint(os.Stderr, res.Diagnostics.Format(opts.filePath))
	if res.Diagnostics.HasErrors() {
		atexit.Exit(1)
	}
}

func handleOrder(args []string) {
	opts := parseArgs(args)
	orders, err := compiler.Order(readInput(opts.filePath))
	if err != nil {
		fail("%s", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Module", "#", "Function", "Calls", "Cycle"})
	for _, o := range orders {
		for i, fn := range o.Functions {
			cycle := ""
			if fn.Cyclic {
				cycle = "yes"
			}
			t.AppendRow(table.Row{o.Module, i + 1, fn.Name, strings.Join(fn.Calls, ", "), cycle})
		}
		t.AppendSeparator()
	}
	t.Render()

	for _, o := range orders {
		for _, c := range o.Cycles {
			fmt.Printf("cycle in %s: %s\n", o.Module, c)
		}
	}
}

func handleDump(args []string) {
	opts := parseArgs(args)
	root, err := yul.Decode(readInput(opts.filePath))
	if err != nil {
		fail("%s", err)
	}
	fmt.Print(yul.Print(root))
}
