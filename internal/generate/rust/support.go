package rustgen

import "github.com/jptrs93/rustproto/internal/ir"

// IsSupported reports whether accessors can be generated for the field.
// Unsupported fields are left out of the bindings entirely.
func IsSupported(field ir.Field) bool {
	if field.IsRepeated || field.IsMap || field.HasCType || field.Oneof != "" {
		return false
	}
	switch field.Kind {
	case ir.KindBool, ir.KindInt64, ir.KindBytes:
		return true
	default:
		return false
	}
}

func supportedFields(msg ir.Message) []ir.Field {
	var fields []ir.Field
	for _, field := range msg.Fields {
		if IsSupported(field) {
			fields = append(fields, field)
		}
	}
	return fields
}
