// protoc-gen-rust is a protoc plugin that generates Rust bindings backed by
// the upb or C++ protobuf runtime:
//
//	protoc --rust_out=experimental-codegen=enabled,kernel=cpp:out path/to/file.proto
//
// With kernel=cpp a C++ thunks file is generated next to each .rs file and
// must be compiled together with the C++ code protoc generates for the schema.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	rustgen "github.com/jptrs93/rustproto/internal/generate/rust"
	"github.com/jptrs93/rustproto/internal/logging"
	"github.com/jptrs93/rustproto/internal/plugin"
)

const version = "0.1.0"

func main() {
	os.Exit(run())
}

// run returns the exit code so deferred logger flushes happen before exit.
func run() int {
	showVersion := pflag.Bool("version", false, "print the version and exit")
	verbose := pflag.BoolP("verbose", "v", false, "log skipped fields and generated files to stderr")
	pflag.Parse()
	if *showVersion {
		fmt.Printf("protoc-gen-rust %s\n", version)
		return 0
	}

	logger, err := logging.New(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logger.Sync()

	if err := plugin.Run(os.Stdin, os.Stdout, rustgen.Generator{Logger: logger}); err != nil {
		logger.Error("generation failed", zap.Error(err))
		return 1
	}
	return 0
}
