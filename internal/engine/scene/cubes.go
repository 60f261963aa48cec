package scene

import (
	"github.com/Faultbox/meadow/internal/engine/geometry"
	"github.com/Faultbox/meadow/internal/engine/instance"
	"github.com/Faultbox/meadow/internal/engine/renderer"
	"github.com/Faultbox/meadow/internal/engine/scene/shaders"
	"github.com/Faultbox/meadow/pkg/math"
)

// cubeBoundsSize is the draw bounds edge for the cube grid.
const cubeBoundsSize = 1000

// Cubes draws a row x row grid of identical cubes.
type Cubes struct {
	params CubesParams
	d      drawable
}

// NewCubes creates the component.
func NewCubes(p CubesParams) *Cubes {
	return &Cubes{params: p}
}

// Setup compiles the material, uploads the cube mesh and lays out the grid.
func (c *Cubes) Setup(r renderer.Renderer) error {
	if err := c.d.setup(r, "cubes", shaders.InstancedVertexShader, shaders.LitFragmentShader); err != nil {
		return err
	}
	if err := c.d.setMesh(geometry.Cube(1)); err != nil {
		return err
	}
	return c.ParametersChanged(c.params)
}

// Layout returns the per-cube transforms for p, indexed x*row+z.
func Layout(p CubesParams) []instance.Data {
	if p.Row <= 0 {
		return nil
	}
	rot := math.QuatFromEuler(p.Rotation[0], p.Rotation[1], p.Rotation[2])
	placements := instance.Scatter(p.Row*p.Row, instance.Grid(p.Row, p.Spacing), instance.Options{
		Rotation: instance.FixedRotation(rot),
		Scale:    instance.FixedScale(math.Splat(p.Scale)),
	})
	origin := math.FromArray(p.Origin)
	for i := range placements {
		placements[i].Position = placements[i].Position.Add(origin)
	}
	return instance.Transforms(placements)
}

// ParametersChanged rebuilds the instance buffer and draw arguments.
func (c *Cubes) ParametersChanged(p CubesParams) error {
	c.params = p
	if c.d.r == nil {
		return nil
	}
	c.d.props.SetVec3("uColor", math.FromArray(p.Color))

	if err := c.d.setInstances(Layout(p)); err != nil {
		return err
	}
	c.d.bounds = geometry.BoundsFromCenter(math.Vec3{}, math.Splat(cubeBoundsSize))
	return c.d.updateArgs()
}

// Count returns the number of cubes drawn.
func (c *Cubes) Count() int {
	return int(c.d.count)
}

// Render issues the cube draw.
func (c *Cubes) Render(frame FrameContext) error {
	return c.d.draw(frame)
}

// Close releases the cube GPU resources.
func (c *Cubes) Close() {
	c.d.close()
}
