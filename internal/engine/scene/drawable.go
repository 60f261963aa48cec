package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/geometry"
	"github.com/Faultbox/meadow/internal/engine/instance"
	"github.com/Faultbox/meadow/internal/engine/renderer"
	"github.com/Faultbox/meadow/internal/logger"
)

// drawable owns the GPU resources behind one indirect instanced draw:
// a mesh, a material, an instance buffer and a one-command args buffer.
type drawable struct {
	name string
	r    renderer.Renderer

	mesh      renderer.MeshHandle
	bounds    geometry.Bounds
	material  *renderer.Material
	instances *renderer.OwnedBuffer
	count     uint32
	args      *renderer.OwnedBuffer
	props     *renderer.PropertyBlock
}

func (d *drawable) setup(r renderer.Renderer, name, vertexSrc, fragmentSrc string) error {
	if r == nil {
		return fmt.Errorf("%s: no renderer", name)
	}
	d.name = name
	d.r = r
	d.props = renderer.NewPropertyBlock()

	mat, err := r.NewMaterial(name, vertexSrc, fragmentSrc)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	d.material = mat

	args, err := renderer.Allocate(r, 1, renderer.ArgsSize)
	if err != nil {
		return fmt.Errorf("%s: args: %w", name, err)
	}
	d.args = args
	return nil
}

// setMesh replaces the uploaded mesh. The previous upload is released first.
func (d *drawable) setMesh(m *geometry.Mesh) error {
	d.r.ReleaseMesh(d.mesh)
	d.mesh = renderer.MeshHandle{}

	h, err := d.r.UploadMesh(m)
	if err != nil {
		return fmt.Errorf("%s: upload mesh: %w", d.name, err)
	}
	d.mesh = h
	d.bounds = m.Bounds
	return nil
}

// setInstances replaces the instance buffer. The previous buffer is
// released before the new one is allocated.
func (d *drawable) setInstances(data []instance.Data) error {
	d.instances.Release()
	d.instances = nil
	d.count = 0

	buf, err := renderer.Allocate(d.r, max(len(data), 1), instance.Size)
	if err != nil {
		return fmt.Errorf("%s: instances: %w", d.name, err)
	}
	d.instances = buf

	if err := buf.Upload(instance.Pack(data)); err != nil {
		return fmt.Errorf("%s: upload instances: %w", d.name, err)
	}
	if err := d.r.BindBuffer(d.material, renderer.InstanceBinding, buf.Buffer()); err != nil {
		return fmt.Errorf("%s: %w", d.name, err)
	}
	d.count = uint32(len(data))

	logger.Debug("instances uploaded", zap.String("component", d.name), zap.Int("count", len(data)))
	return nil
}

// updateArgs rewrites the draw command from the current mesh and count.
func (d *drawable) updateArgs() error {
	args := renderer.BuildArgs(d.mesh.SubMesh(0), d.count)
	if err := d.args.Upload(args.Bytes()); err != nil {
		return fmt.Errorf("%s: upload args: %w", d.name, err)
	}
	return nil
}

func (d *drawable) draw(frame FrameContext) error {
	if d.r == nil || !d.mesh.Valid() || d.count == 0 {
		return nil
	}
	d.props.SetMat4("uViewProj", frame.ViewProj)
	d.props.SetFloat("uTime", frame.Time)
	d.props.SetVec3("uLightDir", frame.Sun.Direction())
	d.props.SetFloat("uAmbient", frame.Sun.Ambient)

	return d.r.DrawIndexedInstancedIndirect(renderer.DrawCall{
		Mesh:       d.mesh,
		SubMesh:    0,
		Material:   d.material,
		Bounds:     d.bounds,
		Args:       d.args.Buffer(),
		ArgsOffset: 0,
		Properties: d.props,
	})
}

// close releases everything. Safe to call more than once.
func (d *drawable) close() {
	if d.r == nil {
		return
	}
	d.instances.Release()
	d.instances = nil
	d.args.Release()
	d.args = nil
	d.r.ReleaseMesh(d.mesh)
	d.mesh = renderer.MeshHandle{}
	if d.material != nil {
		d.r.ReleaseMaterial(d.material)
		d.material = nil
	}
	d.count = 0
	d.r = nil
}
