package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/jptrs93/rustproto/internal/generate"
	rustgen "github.com/jptrs93/rustproto/internal/generate/rust"
	"github.com/jptrs93/rustproto/internal/logging"
	"github.com/jptrs93/rustproto/internal/parser"
)

type genCmd struct {
	importPaths stringList
	rustOut     string
	rustOpt     string
	verbose     bool
}

func (*genCmd) Name() string     { return "gen" }
func (*genCmd) Synopsis() string { return "generate Rust bindings for .proto files" }
func (*genCmd) Usage() string {
	return `gen -rust_out DIR -rust_opt experimental-codegen=enabled,kernel=upb|cpp [-proto_path DIR]... FILE...
`
}

func (c *genCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.importPaths, "proto_path", "proto import path (repeatable)")
	f.StringVar(&c.rustOut, "rust_out", "", "output directory for generated files")
	f.StringVar(&c.rustOpt, "rust_opt", "", "generator parameters, comma separated key=value pairs")
	f.BoolVar(&c.verbose, "v", false, "verbose logging")
}

func (c *genCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "no proto files provided")
		return subcommands.ExitUsageError
	}
	if c.rustOut == "" {
		fmt.Fprintln(os.Stderr, "-rust_out is required")
		return subcommands.ExitUsageError
	}
	importPaths := c.importPaths
	if len(importPaths) == 0 {
		importPaths = append(importPaths, ".")
	}

	logger, err := logging.New(c.verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer logger.Sync()

	p := parser.Parser{ImportPaths: importPaths}
	files, err := p.Parse(ctx, f.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	gen := rustgen.Generator{Logger: logger}
	outputs, err := gen.Generate(files, generate.Options{
		Out:    cleanPath(c.rustOut),
		Params: generate.ParseParameter(c.rustOpt),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := generate.WriteFiles(outputs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
