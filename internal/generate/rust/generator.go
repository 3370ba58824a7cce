package rustgen

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"go.uber.org/zap"

	"github.com/jptrs93/rustproto/internal/generate"
	"github.com/jptrs93/rustproto/internal/generate/templates"
	"github.com/jptrs93/rustproto/internal/ir"
)

const thunksExtension = ".pb.thunks.cc"

type Generator struct {
	Logger *zap.Logger
}

func (g Generator) Name() string {
	return "rust"
}

func (g Generator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// Generate runs GenerateFile for every file. Nothing is returned unless all
// files succeed.
func (g Generator) Generate(files []ir.File, options generate.Options) ([]generate.OutputFile, error) {
	var outputs []generate.OutputFile
	for _, file := range files {
		fileOutputs, err := g.GenerateFile(file, options.Params)
		if err != nil {
			return nil, err
		}
		for _, out := range fileOutputs {
			if options.Out != "" {
				out.Path = filepath.Join(options.Out, out.Path)
			}
			outputs = append(outputs, out)
		}
	}
	return outputs, nil
}

// GenerateFile emits the bindings for one schema file: a single .rs file for
// the upb kernel, the .rs file plus its C++ thunks for the cpp kernel. Paths
// are relative to the output root.
func (g Generator) GenerateFile(file ir.File, params []generate.Param) ([]generate.OutputFile, error) {
	cfg, err := ParseConfig(params)
	if err != nil {
		return nil, err
	}
	if err := CheckSymbols(cfg.Kernel, file); err != nil {
		return nil, fmt.Errorf("%s: %w", file.Path, err)
	}
	tmpl, err := template.ParseFS(templates.FS, "rust_file.tmpl", "cc_thunks.tmpl")
	if err != nil {
		return nil, err
	}

	log := g.logger().With(zap.String("file", file.Path), zap.Stringer("kernel", cfg.Kernel))
	basename := ir.StripProto(file.Path)

	rsData, err := buildRsFileData(file, cfg.Kernel, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Path, err)
	}
	var rsBuf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&rsBuf, "rust_file.tmpl", rsData); err != nil {
		return nil, err
	}
	outputs := []generate.OutputFile{{
		Path:    basename + cfg.Kernel.FileExtension(),
		Content: rsBuf.Bytes(),
	}}

	if cfg.Kernel == KernelCpp {
		ccData := ccFileData{BaseName: basename}
		for _, msg := range file.Messages {
			ccMsg, err := buildThunkMessage(msg)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file.Path, err)
			}
			ccData.Messages = append(ccData.Messages, ccMsg)
		}
		var ccBuf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&ccBuf, "cc_thunks.tmpl", ccData); err != nil {
			return nil, err
		}
		outputs = append(outputs, generate.OutputFile{
			Path:    basename + thunksExtension,
			Content: ccBuf.Bytes(),
		})
	}

	for _, out := range outputs {
		log.Info("generated", zap.String("path", out.Path), zap.Int("bytes", len(out.Content)))
	}
	return outputs, nil
}
