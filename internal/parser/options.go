package parser

import (
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

// hasCTypeOption reports whether the field carries an explicit ctype
// storage-class option, whatever its value.
func hasCTypeOption(field protoreflect.FieldDescriptor) bool {
	opts, ok := field.Options().(*descriptorpb.FieldOptions)
	if !ok || opts == nil {
		return false
	}
	return opts.Ctype != nil
}

func oneofName(field protoreflect.FieldDescriptor) string {
	oneof := field.ContainingOneof()
	if oneof == nil || oneof.IsSynthetic() {
		return ""
	}
	return string(oneof.Name())
}

func publicDependencies(file protoreflect.FileDescriptor) []protoreflect.FileDescriptor {
	var deps []protoreflect.FileDescriptor
	imports := file.Imports()
	for i := 0; i < imports.Len(); i++ {
		imp := imports.Get(i)
		if !imp.IsPublic {
			continue
		}
		deps = append(deps, imp.FileDescriptor)
	}
	return deps
}
