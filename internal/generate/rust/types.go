package rustgen

import (
	"errors"
	"fmt"

	"github.com/jptrs93/rustproto/internal/ir"
)

// ErrUnmappableType means a field passed IsSupported but the emitter has no
// type mapping for it.
var ErrUnmappableType = errors.New("unsupported field type")

func rsTypeName(field ir.Field) (string, error) {
	switch field.Kind {
	case ir.KindBool:
		return "bool", nil
	case ir.KindInt64:
		return "i64", nil
	case ir.KindBytes:
		return "&[u8]", nil
	}
	return "", fmt.Errorf("%w: %s (field %s)", ErrUnmappableType, field.Kind, field.Name)
}

func cppPrimitiveTypeName(field ir.Field) (string, error) {
	switch field.Kind {
	case ir.KindBool:
		return "bool", nil
	case ir.KindInt64:
		return "::int64_t", nil
	case ir.KindBytes:
		return "std::string", nil
	}
	return "", fmt.Errorf("%w: %s (field %s)", ErrUnmappableType, field.Kind, field.Name)
}
