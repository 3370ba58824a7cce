package ir

type File struct {
	Path       string
	Package    string
	Messages   []Message
	PublicDeps []Dependency
}

// Dependency is a publicly imported file. Only the names of its top-level
// messages are kept; they are re-exported as-is.
type Dependency struct {
	Path     string
	Messages []string
}

type Message struct {
	// Name is the message name with enclosing message names joined by '_'.
	Name     string
	FullName string
	Package  string
	Fields   []Field
}

type Field struct {
	Name       string
	Kind       Kind
	IsRepeated bool
	IsMap      bool
	HasCType   bool
	// Oneof is the name of the containing oneof; synthetic proto3 optional
	// oneofs are not recorded.
	Oneof string
}

type Kind int

const (
	KindBool Kind = iota
	KindInt32
	KindInt64
	KindUint32
	KindUint64
	KindSint32
	KindSint64
	KindFixed32
	KindFixed64
	KindSfixed32
	KindSfixed64
	KindFloat
	KindDouble
	KindString
	KindBytes
	KindMessage
	KindGroup
	KindEnum
)

var kindNames = [...]string{
	KindBool:     "bool",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindUint32:   "uint32",
	KindUint64:   "uint64",
	KindSint32:   "sint32",
	KindSint64:   "sint64",
	KindFixed32:  "fixed32",
	KindFixed64:  "fixed64",
	KindSfixed32: "sfixed32",
	KindSfixed64: "sfixed64",
	KindFloat:    "float",
	KindDouble:   "double",
	KindString:   "string",
	KindBytes:    "bytes",
	KindMessage:  "message",
	KindGroup:    "group",
	KindEnum:     "enum",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}
