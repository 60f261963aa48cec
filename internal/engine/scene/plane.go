package scene

import (
	"github.com/Faultbox/meadow/internal/engine/instance"
	"github.com/Faultbox/meadow/internal/engine/plane"
	"github.com/Faultbox/meadow/internal/engine/renderer"
	"github.com/Faultbox/meadow/internal/engine/scene/shaders"
	"github.com/Faultbox/meadow/pkg/math"
)

// Plane draws the generated ground grid as a single instance.
type Plane struct {
	params PlaneParams
	gen    *plane.Generator
	d      drawable
}

// NewPlane creates the component. Nothing is allocated until Setup.
func NewPlane(p PlaneParams) *Plane {
	return &Plane{params: p, gen: plane.NewGenerator()}
}

// Setup compiles the material, uploads the identity instance and the first mesh.
func (c *Plane) Setup(r renderer.Renderer) error {
	c.gen = plane.NewGenerator()
	if err := c.d.setup(r, "plane", shaders.InstancedVertexShader, shaders.LitFragmentShader); err != nil {
		return err
	}
	identity := instance.NewData(instance.Placement{Rotation: math.QuatIdentity(), Scale: math.Vec3One})
	if err := c.d.setInstances([]instance.Data{identity}); err != nil {
		return err
	}
	_, err := c.ParametersChanged(c.params)
	return err
}

// ParametersChanged applies p. The mesh is rebuilt only when the resolution
// or dimensions differ from the last build; the result reports whether it was.
func (c *Plane) ParametersChanged(p PlaneParams) (bool, error) {
	c.params = p
	if c.d.r == nil {
		return false, nil
	}
	c.d.props.SetVec3("uColor", math.FromArray(p.Color))

	mesh, changed := c.gen.Update(p.Params)
	if !changed {
		return false, nil
	}
	if err := c.d.setMesh(mesh); err != nil {
		return true, err
	}
	return true, c.d.updateArgs()
}

// Dimensions returns the plane's width and depth, for scattering onto it.
func (c *Plane) Dimensions() math.Vec2 {
	return math.Vec2{X: c.params.Width, Y: c.params.Height}
}

// Render issues the plane's draw.
func (c *Plane) Render(frame FrameContext) error {
	return c.d.draw(frame)
}

// Close releases the plane's GPU resources.
func (c *Plane) Close() {
	c.d.close()
}
