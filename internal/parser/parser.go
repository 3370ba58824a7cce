package parser

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jptrs93/rustproto/internal/ir"

	"github.com/bufbuild/protocompile"
	"google.golang.org/protobuf/reflect/protoreflect"
)

type Parser struct {
	ImportPaths []string
	// Accessor overrides how source files are opened. Defaults to os.Open.
	Accessor func(path string) (io.ReadCloser, error)
}

func (p *Parser) Parse(ctx context.Context, filePaths []string) ([]ir.File, error) {
	accessor := p.Accessor
	if accessor == nil {
		accessor = func(path string) (io.ReadCloser, error) {
			return os.Open(path)
		}
	}
	resolver := &protocompile.SourceResolver{
		ImportPaths: p.ImportPaths,
		Accessor:    accessor,
	}
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(resolver),
	}
	files, err := compiler.Compile(ctx, filePaths...)
	if err != nil {
		return nil, err
	}

	var result []ir.File
	for _, file := range files {
		irFile, err := FileToIR(file)
		if err != nil {
			return nil, err
		}
		result = append(result, irFile)
	}
	return result, nil
}

// FileToIR converts a resolved file descriptor into the generator's schema
// tree. The descriptor is only read.
func FileToIR(file protoreflect.FileDescriptor) (ir.File, error) {
	out := ir.File{
		Path:    file.Path(),
		Package: string(file.Package()),
	}
	msgs, err := collectMessages(file.Messages(), string(file.Package()), nil)
	if err != nil {
		return ir.File{}, err
	}
	out.Messages = msgs
	for _, dep := range publicDependencies(file) {
		irDep := ir.Dependency{Path: dep.Path()}
		depMsgs := dep.Messages()
		for i := 0; i < depMsgs.Len(); i++ {
			irDep.Messages = append(irDep.Messages, string(depMsgs.Get(i).Name()))
		}
		out.PublicDeps = append(out.PublicDeps, irDep)
	}
	return out, nil
}

func collectMessages(messages protoreflect.MessageDescriptors, pkg string, prefix []string) ([]ir.Message, error) {
	var result []ir.Message
	for i := 0; i < messages.Len(); i++ {
		msg := messages.Get(i)
		if msg.IsMapEntry() {
			continue
		}
		irMsg := ir.Message{
			Name:     ir.NestedName(prefix, string(msg.Name())),
			FullName: string(msg.FullName()),
			Package:  pkg,
		}
		fields, err := collectFields(msg.Fields())
		if err != nil {
			return nil, err
		}
		irMsg.Fields = fields
		result = append(result, irMsg)

		nameParts := append(append([]string(nil), prefix...), string(msg.Name()))
		nested, err := collectMessages(msg.Messages(), pkg, nameParts)
		if err != nil {
			return nil, err
		}
		result = append(result, nested...)
	}
	return result, nil
}

func collectFields(fields protoreflect.FieldDescriptors) ([]ir.Field, error) {
	var result []ir.Field
	for i := 0; i < fields.Len(); i++ {
		field := fields.Get(i)
		kind, err := kindFromField(field)
		if err != nil {
			return nil, err
		}
		result = append(result, ir.Field{
			Name:       string(field.Name()),
			Kind:       kind,
			IsRepeated: field.IsList() || field.IsMap(),
			IsMap:      field.IsMap(),
			HasCType:   hasCTypeOption(field),
			Oneof:      oneofName(field),
		})
	}
	return result, nil
}

func kindFromField(field protoreflect.FieldDescriptor) (ir.Kind, error) {
	switch field.Kind() {
	case protoreflect.BoolKind:
		return ir.KindBool, nil
	case protoreflect.Int32Kind:
		return ir.KindInt32, nil
	case protoreflect.Int64Kind:
		return ir.KindInt64, nil
	case protoreflect.Uint32Kind:
		return ir.KindUint32, nil
	case protoreflect.Uint64Kind:
		return ir.KindUint64, nil
	case protoreflect.Sint32Kind:
		return ir.KindSint32, nil
	case protoreflect.Sint64Kind:
		return ir.KindSint64, nil
	case protoreflect.Fixed32Kind:
		return ir.KindFixed32, nil
	case protoreflect.Fixed64Kind:
		return ir.KindFixed64, nil
	case protoreflect.Sfixed32Kind:
		return ir.KindSfixed32, nil
	case protoreflect.Sfixed64Kind:
		return ir.KindSfixed64, nil
	case protoreflect.FloatKind:
		return ir.KindFloat, nil
	case protoreflect.DoubleKind:
		return ir.KindDouble, nil
	case protoreflect.StringKind:
		return ir.KindString, nil
	case protoreflect.BytesKind:
		return ir.KindBytes, nil
	case protoreflect.MessageKind:
		return ir.KindMessage, nil
	case protoreflect.GroupKind:
		return ir.KindGroup, nil
	case protoreflect.EnumKind:
		return ir.KindEnum, nil
	default:
		return 0, fmt.Errorf("unsupported field kind: %s", field.Kind())
	}
}
