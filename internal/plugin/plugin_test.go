package plugin

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	rustgen "github.com/jptrs93/rustproto/internal/generate/rust"
)

func testRequest(parameter string) *pluginpb.CodeGeneratorRequest {
	dep := &descriptorpb.FileDescriptorProto{
		Name:        proto.String("dep.proto"),
		Package:     proto.String("dep"),
		Syntax:      proto.String("proto2"),
		MessageType: []*descriptorpb.DescriptorProto{{Name: proto.String("Shared")}},
	}
	file := &descriptorpb.FileDescriptorProto{
		Name:             proto.String("pkg/msg.proto"),
		Package:          proto.String("pkg"),
		Syntax:           proto.String("proto2"),
		Dependency:       []string{"dep.proto"},
		PublicDependency: []int32{0},
		MessageType: []*descriptorpb.DescriptorProto{{
			Name: proto.String("Msg"),
			Field: []*descriptorpb.FieldDescriptorProto{
				{
					Name:     proto.String("data"),
					Number:   proto.Int32(1),
					Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
					Type:     descriptorpb.FieldDescriptorProto_TYPE_BYTES.Enum(),
					JsonName: proto.String("data"),
				},
				{
					Name:     proto.String("cord"),
					Number:   proto.Int32(2),
					Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
					Type:     descriptorpb.FieldDescriptorProto_TYPE_BYTES.Enum(),
					JsonName: proto.String("cord"),
					Options: &descriptorpb.FieldOptions{
						Ctype: descriptorpb.FieldOptions_CORD.Enum(),
					},
				},
			},
		}},
	}
	return &pluginpb.CodeGeneratorRequest{
		FileToGenerate: []string{"pkg/msg.proto"},
		Parameter:      proto.String(parameter),
		ProtoFile:      []*descriptorpb.FileDescriptorProto{dep, file},
	}
}

func TestHandleCppKernel(t *testing.T) {
	resp := Handle(testRequest("experimental-codegen=enabled,kernel=cpp"), rustgen.Generator{})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %s", resp.GetError())
	}
	var names []string
	for _, f := range resp.GetFile() {
		names = append(names, f.GetName())
	}
	if d := cmp.Diff([]string{"pkg/msg.c.pb.rs", "pkg/msg.pb.thunks.cc"}, names); d != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", d)
	}
	rs := resp.GetFile()[0].GetContent()
	if !strings.Contains(rs, "pub use dep_proto::Shared;") {
		t.Fatalf("missing re-export:\n%s", rs)
	}
	if !strings.Contains(rs, "pub fn data(&self) -> &[u8] {") {
		t.Fatalf("missing bytes getter:\n%s", rs)
	}
	cc := resp.GetFile()[1].GetContent()
	for _, out := range []string{rs, cc} {
		if strings.Contains(out, "has_cord") || strings.Contains(out, "_cord(") || strings.Contains(out, "fn cord(") {
			t.Fatalf("ctype field must be skipped:\n%s", out)
		}
	}
	if !strings.Contains(cc, "__rust_proto_thunk__pkg_Msg_get_data(") {
		t.Fatalf("missing bytes getter thunk:\n%s", cc)
	}
	if resp.GetSupportedFeatures()&uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL) == 0 {
		t.Fatal("proto3 optional support not advertised")
	}
}

func TestHandleReportsConfigErrorWithoutFiles(t *testing.T) {
	resp := Handle(testRequest("kernel=upb"), rustgen.Generator{})
	if resp.GetError() != rustgen.ErrNotOptedIn.Error() {
		t.Fatalf("error = %q", resp.GetError())
	}
	if len(resp.GetFile()) != 0 {
		t.Fatalf("got %d files, want none", len(resp.GetFile()))
	}
}

func TestHandleUnknownFileToGenerate(t *testing.T) {
	req := testRequest("experimental-codegen=enabled,kernel=upb")
	req.FileToGenerate = []string{"missing.proto"}
	resp := Handle(req, rustgen.Generator{})
	if resp.Error == nil || len(resp.GetFile()) != 0 {
		t.Fatalf("want error and no files, got %q and %d files", resp.GetError(), len(resp.GetFile()))
	}
}

func TestRunRoundTrip(t *testing.T) {
	in, err := proto.Marshal(testRequest("experimental-codegen=enabled,kernel=upb"))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := Run(bytes.NewReader(in), &out, rustgen.Generator{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	resp := &pluginpb.CodeGeneratorResponse{}
	if err := proto.Unmarshal(out.Bytes(), resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.GetFile()) != 1 || resp.GetFile()[0].GetName() != "pkg/msg.u.pb.rs" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestRunRejectsGarbage(t *testing.T) {
	var out bytes.Buffer
	if err := Run(strings.NewReader("\xff\xff\xff"), &out, rustgen.Generator{}); err == nil {
		t.Fatal("expected parse error")
	}
}
