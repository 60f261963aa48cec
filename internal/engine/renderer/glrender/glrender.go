// Package glrender implements renderer.Renderer on OpenGL 4.1 core.
//
// Structured buffers are plain buffer objects. The instance buffer bound to
// a material is fed to the vertex stage as per-instance attributes
// (locations 3-10, divisor 1), and the argument buffer is bound to
// GL_DRAW_INDIRECT_BUFFER for glDrawElementsIndirect.
package glrender

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/geometry"
	"github.com/Faultbox/meadow/internal/engine/instance"
	"github.com/Faultbox/meadow/internal/engine/renderer"
	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/internal/logger"
	"github.com/Faultbox/meadow/pkg/math"
)

// Vertex attribute locations shared with the shaders.
const (
	attribPosition = 0
	attribNormal   = 1
	attribTexCoord = 2
	attribMatrix   = 3 // 3..6
	attribInverse  = 7 // 7..10
)

type glMesh struct {
	vao, vbo, ebo uint32
	// instance buffer currently wired into the VAO
	instances uint32
}

// GL is the OpenGL backend. Must be created and used on the thread that
// owns the GL context.
type GL struct {
	buffers   map[uint32]renderer.Buffer
	meshes    map[uint32]*glMesh
	materials map[*renderer.Material]*shader.Program

	width, height int
}

var _ renderer.Renderer = (*GL)(nil)

// New loads GL entry points and sets default state.
// The GL context must already be current.
func New(width, height int) (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// blades are single-sided ribbons
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0.53, 0.70, 0.86, 1.0)

	r := &GL{
		buffers:   make(map[uint32]renderer.Buffer),
		meshes:    make(map[uint32]*glMesh),
		materials: make(map[*renderer.Material]*shader.Program),
	}
	r.Resize(width, height)
	return r, nil
}

// Resize updates the viewport.
func (r *GL) Resize(width, height int) {
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
}

// Size returns the viewport size.
func (r *GL) Size() (int, int) {
	return r.width, r.height
}

// SetClearColor sets the background color.
func (r *GL) SetClearColor(c [3]float32) {
	gl.ClearColor(c[0], c[1], c[2], 1)
}

// Begin clears the frame.
func (r *GL) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *GL) ReadPixels() ([]byte, int, int) {
	w, h := r.width, r.height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// AllocateStructuredBuffer implements renderer.Renderer.
func (r *GL) AllocateStructuredBuffer(count, stride int) (renderer.Buffer, error) {
	if count < 1 || stride < 1 {
		return renderer.Buffer{}, renderer.ErrSize
	}
	b := renderer.Buffer{Count: count, Stride: stride}
	gl.GenBuffers(1, &b.ID)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.ID)
	gl.BufferData(gl.ARRAY_BUFFER, b.Size(), nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.buffers[b.ID] = b
	return b, nil
}

// Upload implements renderer.Renderer.
func (r *GL) Upload(b renderer.Buffer, data []byte) error {
	live, ok := r.buffers[b.ID]
	if !ok {
		return renderer.ErrReleased
	}
	if len(data) > live.Size() {
		return fmt.Errorf("upload %d bytes into %d: %w", len(data), live.Size(), renderer.ErrSize)
	}
	if len(data) == 0 {
		return nil
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.ID)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data), gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

// Release implements renderer.Renderer.
func (r *GL) Release(b renderer.Buffer) {
	if _, ok := r.buffers[b.ID]; !ok {
		return
	}
	id := b.ID
	gl.DeleteBuffers(1, &id)
	delete(r.buffers, id)

	// deleted names can be reused; force rewiring
	for _, m := range r.meshes {
		if m.instances == id {
			m.instances = 0
		}
	}
}

// UploadMesh implements renderer.Renderer.
func (r *GL) UploadMesh(mesh *geometry.Mesh) (renderer.MeshHandle, error) {
	if mesh == nil || mesh.VertexCount() == 0 || mesh.IndexCount() == 0 {
		return renderer.MeshHandle{}, fmt.Errorf("upload mesh: empty mesh")
	}

	m := &glMesh{}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	vertices := mesh.VertexBytes()
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices), gl.Ptr(vertices), gl.STATIC_DRAW)

	stride := int32(geometry.VertexSize)
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointer(attribPosition, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(attribNormal)
	gl.VertexAttribPointer(attribNormal, 3, gl.FLOAT, false, stride, gl.PtrOffset(12))
	gl.EnableVertexAttribArray(attribTexCoord)
	gl.VertexAttribPointer(attribTexCoord, 2, gl.FLOAT, false, stride, gl.PtrOffset(24))

	indices := mesh.IndexBytes()
	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices), gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.meshes[m.vao] = m
	logger.Debug("mesh uploaded",
		zap.Uint32("vao", m.vao),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("indices", mesh.IndexCount()),
	)
	return renderer.MeshHandle{
		ID:        m.vao,
		Vertices:  mesh.VertexCount(),
		SubMeshes: renderer.SingleSubMesh(mesh),
	}, nil
}

// ReleaseMesh implements renderer.Renderer.
func (r *GL) ReleaseMesh(h renderer.MeshHandle) {
	m, ok := r.meshes[h.ID]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
	delete(r.meshes, h.ID)
}

// NewMaterial implements renderer.Renderer.
func (r *GL) NewMaterial(name, vertexSrc, fragmentSrc string) (*renderer.Material, error) {
	prog, err := shader.Compile(name, vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("material: %w", err)
	}
	m := renderer.NewMaterialState(name)
	r.materials[m] = prog
	return m, nil
}

// ReleaseMaterial implements renderer.Renderer.
func (r *GL) ReleaseMaterial(m *renderer.Material) {
	prog, ok := r.materials[m]
	if !ok {
		return
	}
	prog.Delete()
	delete(r.materials, m)
}

// BindBuffer implements renderer.Renderer.
func (r *GL) BindBuffer(m *renderer.Material, name string, b renderer.Buffer) error {
	if _, ok := r.materials[m]; !ok {
		return fmt.Errorf("bind %s: material: %w", name, renderer.ErrReleased)
	}
	if _, ok := r.buffers[b.ID]; !ok {
		return fmt.Errorf("bind %s: buffer: %w", name, renderer.ErrReleased)
	}
	if b.Stride < instance.Size {
		return fmt.Errorf("bind %s: stride %d: %w", name, b.Stride, renderer.ErrSize)
	}
	if err := m.SetBinding(name, b); err != nil {
		return fmt.Errorf("bind %s on %s: %w", name, m.Name, err)
	}
	return nil
}

// DrawIndexedInstancedIndirect implements renderer.Renderer.
// Bounds are not used for culling.
func (r *GL) DrawIndexedInstancedIndirect(call renderer.DrawCall) error {
	mesh, ok := r.meshes[call.Mesh.ID]
	if !ok {
		return fmt.Errorf("draw: mesh: %w", renderer.ErrReleased)
	}
	prog, ok := r.materials[call.Material]
	if !ok {
		return fmt.Errorf("draw: material: %w", renderer.ErrReleased)
	}
	args, ok := r.buffers[call.Args.ID]
	if !ok {
		return fmt.Errorf("draw: args: %w", renderer.ErrReleased)
	}
	if call.ArgsOffset < 0 || call.ArgsOffset+renderer.ArgsSize > args.Size() {
		return fmt.Errorf("draw: args offset %d: %w", call.ArgsOffset, renderer.ErrSize)
	}
	inst, ok := call.Material.Binding(renderer.InstanceBinding)
	if !ok {
		return fmt.Errorf("draw %s: no instance buffer bound", call.Material.Name)
	}
	if _, live := r.buffers[inst.ID]; !live {
		return fmt.Errorf("draw: instances: %w", renderer.ErrReleased)
	}

	prog.Use()
	call.Properties.Visit(
		prog.SetFloat,
		func(name string, v math.Vec3) { prog.SetVec3(name, v.Array()) },
		func(name string, v math.Mat4) { prog.SetMat4(name, (*[16]float32)(&v)) },
	)

	gl.BindVertexArray(mesh.vao)
	if mesh.instances != inst.ID {
		wireInstances(inst)
		mesh.instances = inst.ID
	}

	gl.BindBuffer(gl.DRAW_INDIRECT_BUFFER, args.ID)
	gl.DrawElementsIndirect(gl.TRIANGLES, gl.UNSIGNED_INT, gl.PtrOffset(call.ArgsOffset))
	gl.BindBuffer(gl.DRAW_INDIRECT_BUFFER, 0)
	gl.BindVertexArray(0)
	return nil
}

// wireInstances points the instance attributes of the bound VAO at b.
func wireInstances(b renderer.Buffer) {
	stride := int32(b.Stride)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.ID)
	for i := uint32(0); i < 4; i++ {
		gl.EnableVertexAttribArray(attribMatrix + i)
		gl.VertexAttribPointer(attribMatrix+i, 4, gl.FLOAT, false, stride, gl.PtrOffset(int(i)*16))
		gl.VertexAttribDivisor(attribMatrix+i, 1)

		gl.EnableVertexAttribArray(attribInverse + i)
		gl.VertexAttribPointer(attribInverse+i, 4, gl.FLOAT, false, stride, gl.PtrOffset(64+int(i)*16))
		gl.VertexAttribDivisor(attribInverse+i, 1)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Close frees anything still allocated and logs the leak count.
func (r *GL) Close() {
	leaked := len(r.buffers) + len(r.meshes) + len(r.materials)
	if leaked > 0 {
		logger.Warn("releasing leaked GPU resources",
			zap.Int("buffers", len(r.buffers)),
			zap.Int("meshes", len(r.meshes)),
			zap.Int("materials", len(r.materials)),
		)
	}
	for _, b := range r.buffers {
		r.Release(b)
	}
	for id := range r.meshes {
		r.ReleaseMesh(renderer.MeshHandle{ID: id})
	}
	for m := range r.materials {
		r.ReleaseMaterial(m)
	}
}
