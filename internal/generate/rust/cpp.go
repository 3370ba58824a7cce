package rustgen

import (
	"go.uber.org/zap"

	"github.com/jptrs93/rustproto/internal/ir"
)

type ccFileData struct {
	BaseName string
	Messages []ccMessage
}

type ccMessage struct {
	QualifiedName string
	New           string
	Serialize     string
	Parse         string
	Accessors     []ccAccessor
}

type ccAccessor struct {
	FieldName        string
	IsBytes          bool
	GetterReturnType string
	SetterParams     string
	SetterArgs       string
	Has              string
	Get              string
	Set              string
	Clear            string
}

func buildCppMessage(msg ir.Message, log *zap.Logger) (rsMessage, error) {
	out := rsMessage{
		Name:      msg.Name,
		New:       ThunkName(msg, OpNew, ""),
		Serialize: ThunkName(msg, OpSerialize, ""),
		Parse:     ThunkName(msg, OpParse, ""),
	}
	accessors, err := buildRsAccessors(msg, KernelCpp, log)
	if err != nil {
		return rsMessage{}, err
	}
	out.Accessors = accessors
	return out, nil
}

func cppBytesSetter() (params, args string) {
	return "val: *const u8, len: usize", "val.as_ptr(), val.len()"
}

// buildThunkMessage produces the C++ definitions matching the declarations
// buildCppMessage emits for the same message.
func buildThunkMessage(msg ir.Message) (ccMessage, error) {
	out := ccMessage{
		QualifiedName: cppQualifiedName(msg),
		New:           ThunkName(msg, OpNew, ""),
		Serialize:     ThunkName(msg, OpSerialize, ""),
		Parse:         ThunkName(msg, OpParse, ""),
	}
	for _, field := range supportedFields(msg) {
		typeName, err := cppPrimitiveTypeName(field)
		if err != nil {
			return ccMessage{}, err
		}
		acc := ccAccessor{
			FieldName:        cppFieldName(field.Name),
			GetterReturnType: typeName,
			SetterParams:     typeName + " val",
			SetterArgs:       "val",
			Has:              ThunkName(msg, OpHas, field.Name),
			Get:              ThunkName(msg, OpGet, field.Name),
			Set:              ThunkName(msg, OpSet, field.Name),
			Clear:            ThunkName(msg, OpClear, field.Name),
		}
		if field.Kind == ir.KindBytes {
			acc.IsBytes = true
			acc.GetterReturnType = "google::protobuf::rust_internal::PtrAndLen"
			acc.SetterParams = "const char* ptr, size_t size"
			acc.SetterArgs = "absl::string_view(ptr, size)"
		}
		out.Accessors = append(out.Accessors, acc)
	}
	return out, nil
}
