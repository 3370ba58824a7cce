package rustgen

import (
	"go.uber.org/zap"

	"github.com/jptrs93/rustproto/internal/ir"
)

// buildUpbMessage binds a message to the symbols upb already exports for
// it: <pkg_Msg>_new, <pkg_Msg>_serialize and the per-field accessors. The
// arena handed to _new lives as long as the wrapper; serialize allocates a
// second arena that the returned SerializedData owns.
func buildUpbMessage(msg ir.Message, log *zap.Logger) (rsMessage, error) {
	out := rsMessage{
		Name:      msg.Name,
		New:       UpbSymbol(msg, OpNew, ""),
		Serialize: UpbSymbol(msg, OpSerialize, ""),
	}
	accessors, err := buildRsAccessors(msg, KernelUpb, log)
	if err != nil {
		return rsMessage{}, err
	}
	out.Accessors = accessors
	return out, nil
}

// upb passes string views by value, so the bytes setter takes one
// PtrAndLen instead of a pointer and a length.
func upbBytesSetter() (params, args string) {
	return "val: ::__pb::PtrAndLen", "::__pb::PtrAndLen { ptr: val.as_ptr(), len: val.len() }"
}
