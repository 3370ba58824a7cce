package rustgen

import (
	"errors"
	"fmt"

	"github.com/jptrs93/rustproto/internal/generate"
)

// Kernel selects the backing runtime the generated Rust code talks to.
type Kernel int

const (
	// KernelUpb targets the arena-owned upb runtime.
	KernelUpb Kernel = iota
	// KernelCpp targets C++ messages reached through generated thunks.
	KernelCpp
)

func (k Kernel) String() string {
	switch k {
	case KernelUpb:
		return "upb"
	case KernelCpp:
		return "cpp"
	}
	return fmt.Sprintf("Kernel(%d)", int(k))
}

// FileExtension is the suffix of the bindings file, appended to the schema
// path without its .proto extension.
func (k Kernel) FileExtension() string {
	switch k {
	case KernelUpb:
		return ".u.pb.rs"
	case KernelCpp:
		return ".c.pb.rs"
	}
	panic(fmt.Sprintf("unknown kernel: %d", int(k)))
}

const (
	optInKey   = "experimental-codegen"
	optInValue = "enabled"
	kernelKey  = "kernel"
)

var (
	ErrNotOptedIn = errors.New("The Rust codegen is highly experimental. Future versions will break " +
		"existing code. Use at your own risk. You can opt-in by passing " +
		"'experimental-codegen=enabled' to '--rust_out'.")
	ErrMissingKernel = errors.New("Mandatory option `kernel` missing, please specify `cpp` or `upb`.")
)

type Config struct {
	Kernel Kernel
}

// ParseConfig validates the generator parameters. The opt-in pair is checked
// first; the kernel is the first "kernel" pair with a recognized value.
// Unknown keys are ignored.
func ParseConfig(params []generate.Param) (Config, error) {
	optedIn := false
	for _, p := range params {
		if p.Key == optInKey && p.Value == optInValue {
			optedIn = true
			break
		}
	}
	if !optedIn {
		return Config{}, ErrNotOptedIn
	}
	for _, p := range params {
		if p.Key != kernelKey {
			continue
		}
		switch p.Value {
		case "upb":
			return Config{Kernel: KernelUpb}, nil
		case "cpp":
			return Config{Kernel: KernelCpp}, nil
		}
	}
	return Config{}, ErrMissingKernel
}
