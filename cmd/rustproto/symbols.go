package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/jptrs93/rustproto/internal/generate"
	rustgen "github.com/jptrs93/rustproto/internal/generate/rust"
	"github.com/jptrs93/rustproto/internal/ir"
	"github.com/jptrs93/rustproto/internal/parser"
)

type symbolsCmd struct {
	importPaths stringList
	kernel      string
}

func (*symbolsCmd) Name() string     { return "symbols" }
func (*symbolsCmd) Synopsis() string { return "list the symbols generated bindings link against" }
func (*symbolsCmd) Usage() string {
	return `symbols [-kernel upb|cpp] [-proto_path DIR]... FILE...
`
}

func (c *symbolsCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.importPaths, "proto_path", "proto import path (repeatable)")
	f.StringVar(&c.kernel, "kernel", "cpp", "kernel whose symbols to list (upb or cpp)")
}

func (c *symbolsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "no proto files provided")
		return subcommands.ExitUsageError
	}
	cfg, err := rustgen.ParseConfig([]generate.Param{
		{Key: "experimental-codegen", Value: "enabled"},
		{Key: "kernel", Value: c.kernel},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	importPaths := c.importPaths
	if len(importPaths) == 0 {
		importPaths = append(importPaths, ".")
	}
	p := parser.Parser{ImportPaths: importPaths}
	files, err := p.Parse(ctx, f.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := writeSymbols(os.Stdout, cfg.Kernel, files); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func writeSymbols(w io.Writer, kernel rustgen.Kernel, files []ir.File) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, file := range files {
		if err := rustgen.CheckSymbols(kernel, file); err != nil {
			return fmt.Errorf("%s: %w", file.Path, err)
		}
		for _, msg := range file.Messages {
			for _, sym := range rustgen.MessageSymbols(kernel, msg) {
				field := sym.Field
				if field == "" {
					field = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", sym.Message, field, sym.Op, sym.Name)
			}
		}
	}
	return tw.Flush()
}
