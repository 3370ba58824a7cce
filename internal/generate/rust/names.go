package rustgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jptrs93/rustproto/internal/ir"
)

// Op names one operation that crosses the Rust/backing-runtime boundary.
type Op string

const (
	OpNew       Op = "new"
	OpSerialize Op = "serialize"
	OpParse     Op = "parse"
	OpHas       Op = "has"
	OpGet       Op = "get"
	OpSet       Op = "set"
	OpClear     Op = "clear"
)

var fieldOps = []Op{OpHas, OpGet, OpSet, OpClear}

// thunkPrefix keeps generated thunks apart from every other linkable C++
// symbol.
const thunkPrefix = "__rust_proto_thunk__"

var (
	ErrSymbolCollision = errors.New("symbol collision")
	ErrMethodCollision = errors.New("method name collision")
)

// ThunkName is the extern "C" symbol of the C++ thunk for op. Field
// operations take the field name; message operations pass "".
func ThunkName(msg ir.Message, op Op, field string) string {
	flat := ir.UnderscoreDelimited(msg.FullName)
	if field == "" {
		return thunkPrefix + flat + "__" + string(op)
	}
	return thunkPrefix + flat + "_" + string(op) + "_" + field
}

// UpbSymbol is the name upb's own code generator exports for op. Nothing is
// generated behind these names; the bindings only declare them.
func UpbSymbol(msg ir.Message, op Op, field string) string {
	flat := ir.UnderscoreDelimited(msg.FullName)
	switch {
	case field == "":
		return flat + "_" + string(op)
	case op == OpGet:
		return flat + "_" + field
	default:
		return flat + "_" + string(op) + "_" + field
	}
}

// CrateName derives the Rust crate identifier of an imported schema file
// from its base name.
func CrateName(depPath string) string {
	return strings.NewReplacer(".", "_", "-", "_").Replace(ir.BaseName(depPath))
}

func symbolFunc(kernel Kernel) func(ir.Message, Op, string) string {
	if kernel == KernelUpb {
		return UpbSymbol
	}
	return ThunkName
}

type Symbol struct {
	Name    string
	Message string
	Op      Op
	Field   string
}

func (s Symbol) String() string {
	if s.Field == "" {
		return fmt.Sprintf("%s %s", s.Message, s.Op)
	}
	return fmt.Sprintf("%s.%s %s", s.Message, s.Field, s.Op)
}

// MessageSymbols lists every boundary symbol the bindings of msg declare, in
// emission order. For the cpp kernel this is also the exact set of thunks
// the companion C++ file defines.
func MessageSymbols(kernel Kernel, msg ir.Message) []Symbol {
	name := symbolFunc(kernel)
	msgOps := []Op{OpNew, OpSerialize}
	if kernel == KernelCpp {
		msgOps = append(msgOps, OpParse)
	}
	var syms []Symbol
	for _, op := range msgOps {
		syms = append(syms, Symbol{Name: name(msg, op, ""), Message: msg.FullName, Op: op})
	}
	for _, field := range supportedFields(msg) {
		for _, op := range fieldOps {
			syms = append(syms, Symbol{
				Name:    name(msg, op, field.Name),
				Message: msg.FullName,
				Op:      op,
				Field:   field.Name,
			})
		}
	}
	return syms
}

// CheckSymbols fails when two boundary operations of one file flatten to the
// same symbol, e.g. message "a.b_c" against "a_b.c", or when two methods of
// one wrapper get the same Rust name, e.g. a field "parse" or fields "x" and
// "has_x".
func CheckSymbols(kernel Kernel, file ir.File) error {
	seen := map[string]Symbol{}
	for _, msg := range file.Messages {
		for _, sym := range MessageSymbols(kernel, msg) {
			if prev, ok := seen[sym.Name]; ok {
				return fmt.Errorf("%w: %s is used by both %s and %s", ErrSymbolCollision, sym.Name, prev, sym)
			}
			seen[sym.Name] = sym
		}
		if err := checkMethods(kernel, msg); err != nil {
			return err
		}
	}
	return nil
}

func checkMethods(kernel Kernel, msg ir.Message) error {
	owners := map[string]string{"new": "the constructor", "serialize": "serialize"}
	if kernel == KernelCpp {
		owners["parse"] = "parse"
		owners["__unstable_cpp_repr_grant_permission_to_break"] = "the raw handle accessor"
	}
	for _, field := range supportedFields(msg) {
		owner := "field " + field.Name
		for _, name := range []string{
			"has_" + field.Name,
			rsFieldName(field.Name),
			"set_" + field.Name,
			"clear_" + field.Name,
		} {
			if prev, ok := owners[name]; ok {
				return fmt.Errorf("%w: %s.%s is generated for both %s and %s", ErrMethodCollision, msg.FullName, name, prev, owner)
			}
			owners[name] = owner
		}
	}
	return nil
}

var rsKeywords = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "const": true, "continue": true,
	"dyn": true, "else": true, "enum": true, "extern": true, "false": true, "fn": true,
	"for": true, "if": true, "impl": true, "in": true, "let": true, "loop": true,
	"match": true, "mod": true, "move": true, "mut": true, "pub": true, "ref": true,
	"return": true, "static": true, "struct": true, "trait": true, "true": true,
	"type": true, "unsafe": true, "use": true, "where": true, "while": true,
	"abstract": true, "become": true, "box": true, "do": true, "final": true,
	"macro": true, "override": true, "priv": true, "try": true, "typeof": true,
	"unsized": true, "virtual": true, "yield": true,
}

// rsFieldName returns the getter identifier for a field name. Keywords
// become raw identifiers, except the few Rust refuses to accept as such.
func rsFieldName(name string) string {
	switch name {
	case "self", "Self", "super", "crate":
		return name + "_"
	}
	if rsKeywords[name] {
		return "r#" + name
	}
	return name
}

var cppKeywords = map[string]bool{
	"alignas": true, "alignof": true, "and": true, "asm": true, "auto": true, "bitand": true,
	"bitor": true, "bool": true, "break": true, "case": true, "catch": true, "char": true,
	"class": true, "compl": true, "const": true, "constexpr": true, "continue": true,
	"decltype": true, "default": true, "delete": true, "do": true, "double": true,
	"else": true, "enum": true, "explicit": true, "export": true, "extern": true,
	"false": true, "float": true, "for": true, "friend": true, "goto": true, "if": true,
	"inline": true, "int": true, "long": true, "mutable": true, "namespace": true,
	"new": true, "noexcept": true, "not": true, "nullptr": true, "operator": true,
	"or": true, "private": true, "protected": true, "public": true, "register": true,
	"return": true, "short": true, "signed": true, "sizeof": true, "static": true,
	"struct": true, "switch": true, "template": true, "this": true, "throw": true,
	"true": true, "try": true, "typedef": true, "typeid": true, "typename": true,
	"union": true, "unsigned": true, "using": true, "virtual": true, "void": true,
	"volatile": true, "while": true, "xor": true,
}

// cppFieldName mirrors how protoc's C++ generator names accessors: the field
// name lower-cased, with a trailing underscore on keywords.
func cppFieldName(name string) string {
	lower := strings.ToLower(name)
	if cppKeywords[lower] {
		return lower + "_"
	}
	return lower
}

// cppNamespace maps a proto package to its C++ namespace, "a.b" -> "::a::b".
func cppNamespace(pkg string) string {
	if pkg == "" {
		return ""
	}
	return "::" + strings.ReplaceAll(pkg, ".", "::")
}

func cppQualifiedName(msg ir.Message) string {
	return cppNamespace(msg.Package) + "::" + msg.Name
}
