package plugin

import (
	"fmt"
	"io"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/jptrs93/rustproto/internal/generate"
	"github.com/jptrs93/rustproto/internal/ir"
	"github.com/jptrs93/rustproto/internal/parser"
)

// Run reads a CodeGeneratorRequest from r and writes the response to w.
// Generation failures are reported inside the response; only transport
// errors are returned.
func Run(r io.Reader, w io.Writer, gen generate.Generator) error {
	in, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	req := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(in, req); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}
	out, err := proto.Marshal(Handle(req, gen))
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

// Handle answers one request. The response carries either every generated
// file or only an error.
func Handle(req *pluginpb.CodeGeneratorRequest, gen generate.Generator) *pluginpb.CodeGeneratorResponse {
	features := uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL)
	resp := &pluginpb.CodeGeneratorResponse{SupportedFeatures: proto.Uint64(features)}

	files, err := requestFiles(req)
	if err != nil {
		resp.Error = proto.String(err.Error())
		return resp
	}
	outputs, err := gen.Generate(files, generate.Options{
		Params: generate.ParseParameter(req.GetParameter()),
	})
	if err != nil {
		resp.Error = proto.String(err.Error())
		return resp
	}
	for _, out := range outputs {
		resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(out.Path),
			Content: proto.String(string(out.Content)),
		})
	}
	return resp
}

func requestFiles(req *pluginpb.CodeGeneratorRequest) ([]ir.File, error) {
	registry, err := protodesc.NewFiles(&descriptorpb.FileDescriptorSet{File: req.GetProtoFile()})
	if err != nil {
		return nil, fmt.Errorf("build descriptors: %w", err)
	}
	var files []ir.File
	for _, name := range req.GetFileToGenerate() {
		desc, err := registry.FindFileByPath(name)
		if err != nil {
			return nil, fmt.Errorf("file to generate %s: %w", name, err)
		}
		file, err := parser.FileToIR(desc)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}
