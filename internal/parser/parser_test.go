package parser

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jptrs93/rustproto/internal/ir"
)

const depSource = `
syntax = "proto2";

package dep;

message Shared {
  optional bool ok = 1;
}

message Other {}
`

const msgSource = `
syntax = "proto2";

package pkg.inner;

import public "dep-file.proto";

message Msg {
  optional bool flag = 1;
  optional int64 count = 2;
  optional bytes data = 3;
  repeated int64 values = 4;
  map<string, int64> counts = 5;
  optional bytes blob = 6 [ctype = CORD];
  oneof choice {
    bool a = 7;
    int64 b = 8;
  }
  message Nested {
    optional bool on = 1;
  }
  optional Nested nested = 9;
}
`

func memoryParser(sources map[string]string) *Parser {
	return &Parser{
		Accessor: func(path string) (io.ReadCloser, error) {
			src, ok := sources[path]
			if !ok {
				return nil, os.ErrNotExist
			}
			return io.NopCloser(strings.NewReader(src)), nil
		},
	}
}

func TestParseBuildsSchemaTree(t *testing.T) {
	p := memoryParser(map[string]string{
		"dep-file.proto": depSource,
		"pkg/msg.proto":  msgSource,
	})
	files, err := p.Parse(context.Background(), []string{"pkg/msg.proto"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	file := files[0]
	if file.Path != "pkg/msg.proto" || file.Package != "pkg.inner" {
		t.Fatalf("unexpected file header: %q %q", file.Path, file.Package)
	}

	wantDeps := []ir.Dependency{{Path: "dep-file.proto", Messages: []string{"Shared", "Other"}}}
	if d := cmp.Diff(wantDeps, file.PublicDeps); d != "" {
		t.Fatalf("public deps mismatch (-want +got):\n%s", d)
	}

	if len(file.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(file.Messages))
	}
	msg := file.Messages[0]
	if msg.Name != "Msg" || msg.FullName != "pkg.inner.Msg" || msg.Package != "pkg.inner" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	nested := file.Messages[1]
	if nested.Name != "Msg_Nested" || nested.FullName != "pkg.inner.Msg.Nested" {
		t.Fatalf("unexpected nested message: %+v", nested)
	}

	byName := map[string]ir.Field{}
	for _, f := range msg.Fields {
		byName[f.Name] = f
	}
	checks := []struct {
		name  string
		check func(ir.Field) bool
	}{
		{"flag", func(f ir.Field) bool { return f.Kind == ir.KindBool && !f.IsRepeated && f.Oneof == "" }},
		{"count", func(f ir.Field) bool { return f.Kind == ir.KindInt64 && !f.IsRepeated }},
		{"data", func(f ir.Field) bool { return f.Kind == ir.KindBytes && !f.HasCType }},
		{"values", func(f ir.Field) bool { return f.IsRepeated && !f.IsMap }},
		{"counts", func(f ir.Field) bool { return f.IsRepeated && f.IsMap }},
		{"blob", func(f ir.Field) bool { return f.Kind == ir.KindBytes && f.HasCType }},
		{"a", func(f ir.Field) bool { return f.Oneof == "choice" }},
		{"b", func(f ir.Field) bool { return f.Oneof == "choice" }},
		{"nested", func(f ir.Field) bool { return f.Kind == ir.KindMessage && !f.IsRepeated }},
	}
	for _, c := range checks {
		f, ok := byName[c.name]
		if !ok {
			t.Fatalf("field %s missing", c.name)
		}
		if !c.check(f) {
			t.Fatalf("field %s has unexpected shape: %+v", c.name, f)
		}
	}
}

func TestParseProto3OptionalIsNotAOneof(t *testing.T) {
	p := memoryParser(map[string]string{
		"p3.proto": `
syntax = "proto3";
package p3;
message M {
  optional bool flag = 1;
  int64 plain = 2;
}
`,
	})
	files, err := p.Parse(context.Background(), []string{"p3.proto"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fields := files[0].Messages[0].Fields
	if fields[0].Oneof != "" || fields[0].Kind != ir.KindBool {
		t.Fatalf("proto3 optional field: %+v", fields[0])
	}
	if fields[1].Oneof != "" || fields[1].Kind != ir.KindInt64 {
		t.Fatalf("implicit presence field: %+v", fields[1])
	}
}

func TestParseMissingFile(t *testing.T) {
	p := memoryParser(map[string]string{})
	if _, err := p.Parse(context.Background(), []string{"missing.proto"}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
