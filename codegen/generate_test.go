package codegen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/veilproto/wlveil/internal/wire"
)

func regionDescriptor() Descriptor {
	return Descriptor{
		GoName:   "WlRegion",
		WireName: "wl_region",
		Version:  1,
		Requests: []Message{
			{Name: "Destroy", Since: 1},
			{
				Name:  "Add",
				Since: 1,
				Args: []Arg{
					{Name: "x", Kind: wire.ArgInt},
					{Name: "y", Kind: wire.ArgInt},
					{Name: "width", Kind: wire.ArgInt},
					{Name: "height", Kind: wire.ArgInt},
				},
			},
		},
	}
}

func TestGenerateRegionCompiles(t *testing.T) {
	out, err := Generate(regionDescriptor())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, want := range []string{
		"package proto",
		"type WlRegion struct",
		"func NewWlRegion(core *object.Core) *WlRegion",
		"func (o *WlRegion) TrySendAdd(x int32, y int32, width int32, height int32) *object.Error",
		"var WlRegionTable = dispatch.Table{",
		`Name: "destroy"`,
		`Name: "add"`,
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("generated source missing %q\n---\n%s", want, out)
		}
	}
}

func TestGenerateNewIDRequest(t *testing.T) {
	d := Descriptor{
		GoName:   "WlCompositor",
		WireName: "wl_compositor",
		Version:  4,
		Requests: []Message{
			{
				Name:  "CreateSurface",
				Since: 1,
				Args: []Arg{
					{Name: "id", Kind: wire.ArgNewID},
				},
			},
		},
	}
	out, err := Generate(d)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	src := string(out)
	if !strings.Contains(src, "func (o *WlCompositor) NewSendCreateSurface(newClientID uint32) (*object.Core, *object.Error)") {
		t.Errorf("missing NewSend method, got:\n%s", src)
	}
	if !strings.Contains(src, "o.Owner.BindServerID(child, serverID)") {
		t.Errorf("missing server-id bind in generated constructor, got:\n%s", src)
	}
}

func TestGenerateArrayAndFDArgs(t *testing.T) {
	d := Descriptor{
		GoName:   "WlKeyboard",
		WireName: "wl_keyboard",
		Version:  1,
		Requests: []Message{
			{
				Name:  "UploadKeymap",
				Since: 1,
				Args: []Arg{
					{Name: "fd", Kind: wire.ArgFD},
					{Name: "layout", Kind: wire.ArgArray},
				},
			},
		},
	}
	out, err := Generate(d)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	src := string(out)
	if !strings.Contains(src, "w.FD(fd)") {
		t.Errorf("expected w.FD(fd) for an ArgFD parameter, got:\n%s", src)
	}
	if !strings.Contains(src, "w.Array(layout)") {
		t.Errorf("expected w.Array(layout) for an ArgArray parameter, got:\n%s", src)
	}
}
