package rustgen

import (
	"go.uber.org/zap"

	"github.com/jptrs93/rustproto/internal/ir"
)

type rsFileData struct {
	Kernel    string
	ReExports []rsReExport
	Messages  []rsMessage
}

type rsReExport struct {
	Crate string
	Type  string
}

type rsMessage struct {
	Name      string
	New       string
	Serialize string
	Parse     string
	Accessors []rsAccessor
}

type rsAccessor struct {
	FieldName        string
	GetterName       string
	FieldType        string
	IsBytes          bool
	GetterReturnType string
	SetterParams     string
	SetterArgs       string
	Has              string
	Get              string
	Set              string
	Clear            string
}

func buildRsFileData(file ir.File, kernel Kernel, log *zap.Logger) (rsFileData, error) {
	data := rsFileData{Kernel: kernel.String()}
	// TODO: resolve public imports to real crate paths once dependency crates
	// are named by something other than the schema file name.
	for _, dep := range file.PublicDeps {
		crate := CrateName(dep.Path)
		for _, name := range dep.Messages {
			data.ReExports = append(data.ReExports, rsReExport{Crate: crate, Type: name})
		}
	}
	for _, msg := range file.Messages {
		var rsMsg rsMessage
		var err error
		switch kernel {
		case KernelUpb:
			rsMsg, err = buildUpbMessage(msg, log)
		case KernelCpp:
			rsMsg, err = buildCppMessage(msg, log)
		}
		if err != nil {
			return rsFileData{}, err
		}
		data.Messages = append(data.Messages, rsMsg)
	}
	return data, nil
}

func buildRsAccessors(msg ir.Message, kernel Kernel, log *zap.Logger) ([]rsAccessor, error) {
	symbol := symbolFunc(kernel)
	var accessors []rsAccessor
	for _, field := range msg.Fields {
		if !IsSupported(field) {
			log.Debug("skipping unsupported field",
				zap.String("message", msg.FullName),
				zap.String("field", field.Name),
				zap.Stringer("kind", field.Kind),
				zap.Bool("repeated", field.IsRepeated))
			continue
		}
		typeName, err := rsTypeName(field)
		if err != nil {
			return nil, err
		}
		acc := rsAccessor{
			FieldName:        field.Name,
			GetterName:       rsFieldName(field.Name),
			FieldType:        typeName,
			GetterReturnType: typeName,
			SetterParams:     "val: " + typeName,
			SetterArgs:       "val",
			Has:              symbol(msg, OpHas, field.Name),
			Get:              symbol(msg, OpGet, field.Name),
			Set:              symbol(msg, OpSet, field.Name),
			Clear:            symbol(msg, OpClear, field.Name),
		}
		if field.Kind == ir.KindBytes {
			acc.IsBytes = true
			acc.GetterReturnType = "::__pb::PtrAndLen"
			if kernel == KernelUpb {
				acc.SetterParams, acc.SetterArgs = upbBytesSetter()
			} else {
				acc.SetterParams, acc.SetterArgs = cppBytesSetter()
			}
		}
		accessors = append(accessors, acc)
	}
	return accessors, nil
}
