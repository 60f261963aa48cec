package renderer

import (
	"fmt"
	"slices"

	"github.com/Faultbox/meadow/internal/engine/geometry"
)

// OpKind names a recorded Renderer call.
type OpKind string

const (
	OpAllocate    OpKind = "allocate"
	OpUpload      OpKind = "upload"
	OpRelease     OpKind = "release"
	OpUploadMesh  OpKind = "upload-mesh"
	OpReleaseMesh OpKind = "release-mesh"
	OpBind        OpKind = "bind"
	OpDraw        OpKind = "draw"
)

// Op is one recorded call and the resource it touched.
type Op struct {
	Kind OpKind
	ID   uint32
}

// Draw is a recorded draw with the argument block it read.
type Draw struct {
	Call DrawCall
	Args IndirectArgs
}

// Recorder is a Renderer that keeps everything in memory. It validates
// calls the way a GPU backend would and records them for inspection.
type Recorder struct {
	nextID    uint32
	buffers   map[uint32][]byte
	meshes    map[uint32]*geometry.Mesh
	materials map[*Material]bool

	Ops   []Op
	Draws []Draw
}

var _ Renderer = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		buffers:   make(map[uint32][]byte),
		meshes:    make(map[uint32]*geometry.Mesh),
		materials: make(map[*Material]bool),
	}
}

func (r *Recorder) id() uint32 {
	r.nextID++
	return r.nextID
}

func (r *Recorder) record(kind OpKind, id uint32) {
	r.Ops = append(r.Ops, Op{Kind: kind, ID: id})
}

// AllocateStructuredBuffer implements Renderer.
func (r *Recorder) AllocateStructuredBuffer(count, stride int) (Buffer, error) {
	if count < 1 || stride < 1 {
		return Buffer{}, ErrSize
	}
	b := Buffer{ID: r.id(), Count: count, Stride: stride}
	r.buffers[b.ID] = make([]byte, b.Size())
	r.record(OpAllocate, b.ID)
	return b, nil
}

// Upload implements Renderer.
func (r *Recorder) Upload(b Buffer, data []byte) error {
	store, ok := r.buffers[b.ID]
	if !ok {
		return ErrReleased
	}
	if len(data) > len(store) {
		return fmt.Errorf("upload %d bytes into %d: %w", len(data), len(store), ErrSize)
	}
	copy(store, data)
	r.record(OpUpload, b.ID)
	return nil
}

// Release implements Renderer.
func (r *Recorder) Release(b Buffer) {
	if _, ok := r.buffers[b.ID]; !ok {
		return
	}
	delete(r.buffers, b.ID)
	r.record(OpRelease, b.ID)
}

// UploadMesh implements Renderer.
func (r *Recorder) UploadMesh(m *geometry.Mesh) (MeshHandle, error) {
	if m == nil {
		return MeshHandle{}, fmt.Errorf("upload mesh: nil mesh")
	}
	h := MeshHandle{ID: r.id(), Vertices: m.VertexCount(), SubMeshes: SingleSubMesh(m)}
	r.meshes[h.ID] = &geometry.Mesh{
		Vertices: slices.Clone(m.Vertices),
		Indices:  slices.Clone(m.Indices),
		Bounds:   m.Bounds,
	}
	r.record(OpUploadMesh, h.ID)
	return h, nil
}

// ReleaseMesh implements Renderer.
func (r *Recorder) ReleaseMesh(h MeshHandle) {
	if _, ok := r.meshes[h.ID]; !ok {
		return
	}
	delete(r.meshes, h.ID)
	r.record(OpReleaseMesh, h.ID)
}

// NewMaterial implements Renderer. Sources are not compiled.
func (r *Recorder) NewMaterial(name, vertexSrc, fragmentSrc string) (*Material, error) {
	if vertexSrc == "" || fragmentSrc == "" {
		return nil, fmt.Errorf("material %s: empty shader source", name)
	}
	m := NewMaterialState(name)
	r.materials[m] = true
	return m, nil
}

// ReleaseMaterial implements Renderer.
func (r *Recorder) ReleaseMaterial(m *Material) {
	delete(r.materials, m)
}

// BindBuffer implements Renderer.
func (r *Recorder) BindBuffer(m *Material, name string, b Buffer) error {
	if !r.materials[m] {
		return fmt.Errorf("bind %s: material: %w", name, ErrReleased)
	}
	if _, ok := r.buffers[b.ID]; !ok {
		return fmt.Errorf("bind %s: buffer: %w", name, ErrReleased)
	}
	if err := m.SetBinding(name, b); err != nil {
		return fmt.Errorf("bind %s on %s: %w", name, m.Name, err)
	}
	r.record(OpBind, b.ID)
	return nil
}

// DrawIndexedInstancedIndirect implements Renderer.
func (r *Recorder) DrawIndexedInstancedIndirect(call DrawCall) error {
	if _, ok := r.meshes[call.Mesh.ID]; !ok {
		return fmt.Errorf("draw: mesh: %w", ErrReleased)
	}
	if !r.materials[call.Material] {
		return fmt.Errorf("draw: material: %w", ErrReleased)
	}
	store, ok := r.buffers[call.Args.ID]
	if !ok {
		return fmt.Errorf("draw: args: %w", ErrReleased)
	}
	if call.ArgsOffset < 0 || call.ArgsOffset+ArgsSize > len(store) {
		return fmt.Errorf("draw: args offset %d: %w", call.ArgsOffset, ErrSize)
	}
	if inst, ok := call.Material.Binding(InstanceBinding); ok {
		if _, live := r.buffers[inst.ID]; !live {
			return fmt.Errorf("draw: instances: %w", ErrReleased)
		}
	}

	args, _ := DecodeArgs(store[call.ArgsOffset:])
	r.Draws = append(r.Draws, Draw{Call: call, Args: args})
	r.record(OpDraw, call.Mesh.ID)
	return nil
}

// BufferData returns a copy of the contents of a live buffer.
func (r *Recorder) BufferData(b Buffer) ([]byte, bool) {
	store, ok := r.buffers[b.ID]
	if !ok {
		return nil, false
	}
	return slices.Clone(store), true
}

// Mesh returns the mesh uploaded under h.
func (r *Recorder) Mesh(h MeshHandle) (*geometry.Mesh, bool) {
	m, ok := r.meshes[h.ID]
	return m, ok
}

// LiveBuffers returns the number of allocated, unreleased buffers.
func (r *Recorder) LiveBuffers() int { return len(r.buffers) }

// LiveMeshes returns the number of uploaded, unreleased meshes.
func (r *Recorder) LiveMeshes() int { return len(r.meshes) }

// Count returns how many ops of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset clears recorded ops and draws but keeps live resources.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.Draws = r.Draws[:0]
}
