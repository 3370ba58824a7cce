package generate

import (
	"strings"

	"github.com/jptrs93/rustproto/internal/ir"
)

type OutputFile struct {
	Path    string
	Content []byte
}

// Param is one key/value pair of the generator parameter string. Order is
// significant: consumers scan params front to back.
type Param struct {
	Key   string
	Value string
}

type Options struct {
	// Out is prepended to every output path when set.
	Out    string
	Params []Param
}

type Generator interface {
	Name() string
	Generate(files []ir.File, options Options) ([]OutputFile, error)
}

// ParseParameter splits a protoc-style parameter string such as
// "experimental-codegen=enabled,kernel=cpp" into ordered pairs. Empty
// segments are dropped and a segment without '=' gets an empty value.
func ParseParameter(raw string) []Param {
	var params []Param
	for _, part := range strings.Split(raw, ",") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		params = append(params, Param{Key: key, Value: value})
	}
	return params
}
