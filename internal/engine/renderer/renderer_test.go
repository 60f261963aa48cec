package renderer

import (
	"errors"
	"testing"

	"github.com/Faultbox/meadow/internal/engine/geometry"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name  string
		mesh  *SubMesh
		count uint32
		want  IndirectArgs
	}{
		{"nil mesh", nil, 100, IndirectArgs{}},
		{"cube", &SubMesh{IndexCount: 36}, 100, IndirectArgs{36, 100, 0, 0, 0}},
		{"offset range", &SubMesh{IndexStart: 12, IndexCount: 36, BaseVertex: 8}, 100, IndirectArgs{36, 100, 12, 8, 0}},
		{"zero instances", &SubMesh{IndexCount: 6}, 0, IndirectArgs{6, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildArgs(tt.mesh, tt.count); got != tt.want {
				t.Errorf("BuildArgs: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArgsBytes(t *testing.T) {
	a := IndirectArgs{36, 100, 12, 8, 0}
	b := a.Bytes()
	if len(b) != ArgsSize {
		t.Fatalf("len: got %d, want %d", len(b), ArgsSize)
	}
	if b[0] != 36 || b[4] != 100 || b[8] != 12 || b[12] != 8 || b[16] != 0 {
		t.Errorf("encoding: got %v", b)
	}
	got, ok := DecodeArgs(b)
	if !ok || got != a {
		t.Errorf("DecodeArgs: got %v (%v), want %v", got, ok, a)
	}
	if _, ok := DecodeArgs(b[:19]); ok {
		t.Error("DecodeArgs should reject short input")
	}
}

func TestOwnedBufferRelease(t *testing.T) {
	rec := NewRecorder()

	var nilBuf *OwnedBuffer
	nilBuf.Release()

	var zero OwnedBuffer
	zero.Release()

	b, err := Allocate(rec, 4, 16)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if rec.LiveBuffers() != 1 {
		t.Fatalf("live buffers: got %d, want 1", rec.LiveBuffers())
	}

	b.Release()
	b.Release()

	if rec.LiveBuffers() != 0 {
		t.Errorf("live buffers: got %d, want 0", rec.LiveBuffers())
	}
	if n := rec.Count(OpRelease); n != 1 {
		t.Errorf("release ops: got %d, want 1", n)
	}
	if err := b.Upload([]byte{1}); !errors.Is(err, ErrReleased) {
		t.Errorf("upload after release: got %v, want ErrReleased", err)
	}
}

func TestRecorderUpload(t *testing.T) {
	rec := NewRecorder()
	b, err := rec.AllocateStructuredBuffer(1, ArgsSize)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}

	if err := rec.Upload(b, make([]byte, ArgsSize+1)); !errors.Is(err, ErrSize) {
		t.Errorf("oversized upload: got %v, want ErrSize", err)
	}

	args := IndirectArgs{3, 1, 0, 0, 0}
	if err := rec.Upload(b, args.Bytes()); err != nil {
		t.Fatalf("upload: %v", err)
	}
	data, ok := rec.BufferData(b)
	if !ok {
		t.Fatal("buffer should be live")
	}
	if got, _ := DecodeArgs(data); got != args {
		t.Errorf("stored args: got %v, want %v", got, args)
	}

	rec.Release(b)
	rec.Release(b)
	if err := rec.Upload(b, args.Bytes()); !errors.Is(err, ErrReleased) {
		t.Errorf("upload after release: got %v, want ErrReleased", err)
	}

	if _, err := rec.AllocateStructuredBuffer(0, 4); !errors.Is(err, ErrSize) {
		t.Errorf("zero count: got %v, want ErrSize", err)
	}
}

func TestRecorderDraw(t *testing.T) {
	rec := NewRecorder()
	mesh := &geometry.Mesh{
		Vertices: make([]geometry.Vertex, 3),
		Indices:  []uint32{0, 1, 2},
	}
	h, err := rec.UploadMesh(mesh)
	if err != nil {
		t.Fatalf("UploadMesh: %v", err)
	}
	mat, err := rec.NewMaterial("test", "v", "f")
	if err != nil {
		t.Fatalf("NewMaterial: %v", err)
	}

	inst, _ := Allocate(rec, 2, 128)
	if err := rec.BindBuffer(mat, "_Colors", inst.Buffer()); !errors.Is(err, ErrUnknownBinding) {
		t.Errorf("unknown binding: got %v, want ErrUnknownBinding", err)
	}
	if err := rec.BindBuffer(mat, InstanceBinding, inst.Buffer()); err != nil {
		t.Fatalf("BindBuffer: %v", err)
	}

	argsBuf, _ := Allocate(rec, 1, ArgsSize)
	want := BuildArgs(h.SubMesh(0), 2)
	if err := argsBuf.Upload(want.Bytes()); err != nil {
		t.Fatalf("upload args: %v", err)
	}

	call := DrawCall{Mesh: h, Material: mat, Args: argsBuf.Buffer()}
	if err := rec.DrawIndexedInstancedIndirect(call); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if len(rec.Draws) != 1 || rec.Draws[0].Args != want {
		t.Fatalf("draws: got %+v, want one draw with %v", rec.Draws, want)
	}

	call.ArgsOffset = 4
	if err := rec.DrawIndexedInstancedIndirect(call); !errors.Is(err, ErrSize) {
		t.Errorf("args overrun: got %v, want ErrSize", err)
	}

	inst.Release()
	call.ArgsOffset = 0
	if err := rec.DrawIndexedInstancedIndirect(call); !errors.Is(err, ErrReleased) {
		t.Errorf("draw with released instances: got %v, want ErrReleased", err)
	}

	rec.ReleaseMesh(h)
	rec.ReleaseMesh(h)
	if rec.LiveMeshes() != 0 || rec.Count(OpReleaseMesh) != 1 {
		t.Errorf("mesh release: live %d, ops %d", rec.LiveMeshes(), rec.Count(OpReleaseMesh))
	}
}

func TestMeshHandleSubMesh(t *testing.T) {
	var h MeshHandle
	if h.SubMesh(0) != nil {
		t.Error("zero handle should have no sub-meshes")
	}
	if BuildArgs(h.SubMesh(0), 10) != (IndirectArgs{}) {
		t.Error("missing sub-mesh should give zero args")
	}

	h = MeshHandle{ID: 1, SubMeshes: []SubMesh{{IndexCount: 6}}}
	if sm := h.SubMesh(0); sm == nil || sm.IndexCount != 6 {
		t.Errorf("SubMesh(0): got %+v", sm)
	}
	if h.SubMesh(1) != nil || h.SubMesh(-1) != nil {
		t.Error("out of range sub-mesh should be nil")
	}
}

func TestPropertyBlockVisit(t *testing.T) {
	p := NewPropertyBlock()
	p.SetFloat("uTime", 2)
	p.SetFloat("uAlpha", 1)

	var names []string
	p.Visit(func(name string, _ float32) { names = append(names, name) }, nil, nil)
	if len(names) != 2 || names[0] != "uAlpha" || names[1] != "uTime" {
		t.Errorf("visit order: got %v", names)
	}

	var nilBlock *PropertyBlock
	nilBlock.Visit(func(string, float32) { t.Error("nil block visited") }, nil, nil)
	if _, ok := nilBlock.Float("uTime"); ok {
		t.Error("nil block should have no properties")
	}
}
