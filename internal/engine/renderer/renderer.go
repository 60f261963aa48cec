// Package renderer defines the GPU collaborator the demo components draw
// through, plus an in-memory Recorder backend.
package renderer

import (
	"errors"

	"github.com/Faultbox/meadow/internal/engine/geometry"
)

// InstanceBinding is the material slot holding per-instance transforms.
const InstanceBinding = "_InstanceData"

var (
	// ErrReleased is returned when using a buffer or mesh after release.
	ErrReleased = errors.New("renderer: resource released")
	// ErrSize is returned for allocations or uploads that do not fit.
	ErrSize = errors.New("renderer: size out of range")
	// ErrUnknownBinding is returned when binding to a slot the material lacks.
	ErrUnknownBinding = errors.New("renderer: unknown binding")
)

// Renderer is the host rendering API. Implementations are not safe for
// concurrent use; call them from the render thread only.
type Renderer interface {
	AllocateStructuredBuffer(count, stride int) (Buffer, error)
	Upload(b Buffer, data []byte) error
	// Release frees b. Unknown or already released buffers are ignored.
	Release(b Buffer)

	UploadMesh(m *geometry.Mesh) (MeshHandle, error)
	// ReleaseMesh frees h. Unknown or already released meshes are ignored.
	ReleaseMesh(h MeshHandle)

	NewMaterial(name, vertexSrc, fragmentSrc string) (*Material, error)
	ReleaseMaterial(m *Material)
	BindBuffer(m *Material, name string, b Buffer) error

	DrawIndexedInstancedIndirect(call DrawCall) error
}

// Buffer identifies a structured GPU buffer. The zero value is "no buffer".
type Buffer struct {
	ID     uint32
	Count  int
	Stride int
}

// Size returns the allocation size in bytes.
func (b Buffer) Size() int {
	return b.Count * b.Stride
}

// Valid reports whether b refers to an allocation.
func (b Buffer) Valid() bool {
	return b.ID != 0
}

// SubMesh is a contiguous index range of an uploaded mesh.
type SubMesh struct {
	IndexStart uint32
	IndexCount uint32
	BaseVertex uint32
}

// MeshHandle identifies an uploaded mesh. The zero value is "no mesh".
type MeshHandle struct {
	ID        uint32
	Vertices  int
	SubMeshes []SubMesh
}

// Valid reports whether h refers to an upload.
func (h MeshHandle) Valid() bool {
	return h.ID != 0
}

// SubMesh returns sub-mesh i, or nil if h has no such range.
func (h MeshHandle) SubMesh(i int) *SubMesh {
	if i < 0 || i >= len(h.SubMeshes) {
		return nil
	}
	return &h.SubMeshes[i]
}

// Material pairs a shader program with its bound structured buffers.
type Material struct {
	Name     string
	bindings map[string]Buffer
}

// NewMaterialState returns an empty material for backends to fill in.
func NewMaterialState(name string) *Material {
	return &Material{Name: name, bindings: make(map[string]Buffer)}
}

// Binding returns the buffer bound to slot name.
func (m *Material) Binding(name string) (Buffer, bool) {
	if m == nil {
		return Buffer{}, false
	}
	b, ok := m.bindings[name]
	return b, ok
}

// SetBinding records b under name. Only InstanceBinding is a known slot.
func (m *Material) SetBinding(name string, b Buffer) error {
	if name != InstanceBinding {
		return ErrUnknownBinding
	}
	m.bindings[name] = b
	return nil
}

// DrawCall describes one indirect instanced draw.
type DrawCall struct {
	Mesh       MeshHandle
	SubMesh    int
	Material   *Material
	Bounds     geometry.Bounds
	Args       Buffer
	ArgsOffset int
	Properties *PropertyBlock
}

// SingleSubMesh describes a mesh drawn as one index range.
func SingleSubMesh(m *geometry.Mesh) []SubMesh {
	return []SubMesh{{IndexCount: uint32(m.IndexCount())}}
}
