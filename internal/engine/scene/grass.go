package scene

import (
	"cogentcore.org/core/base/randx"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/geometry"
	"github.com/Faultbox/meadow/internal/engine/grass"
	"github.com/Faultbox/meadow/internal/engine/instance"
	"github.com/Faultbox/meadow/internal/engine/renderer"
	"github.com/Faultbox/meadow/internal/engine/scene/shaders"
	"github.com/Faultbox/meadow/internal/logger"
	"github.com/Faultbox/meadow/pkg/math"
)

// Grass draws one blade mesh instanced across the field.
type Grass struct {
	params GrassParams
	field  math.Vec2
	ready  bool
	d      drawable
}

// NewGrass creates the component for a field of the given dimensions.
func NewGrass(p GrassParams, field math.Vec2) *Grass {
	return &Grass{params: p, field: field}
}

// Setup compiles the material and builds the blade and its instances.
func (c *Grass) Setup(r renderer.Renderer) error {
	if err := c.d.setup(r, "grass", shaders.GrassVertexShader, shaders.GrassFragmentShader); err != nil {
		return err
	}
	c.ready = true
	return c.ParametersChanged(c.params)
}

// SetField changes the scatter area and rebuilds the instances if needed.
func (c *Grass) SetField(dims math.Vec2) error {
	if dims == c.field {
		return nil
	}
	c.field = dims
	if !c.ready {
		return nil
	}
	if err := c.rebuildInstances(); err != nil {
		return err
	}
	return c.d.updateArgs()
}

// Field returns the current scatter area.
func (c *Grass) Field() math.Vec2 {
	return c.field
}

// Count returns the number of instances drawn.
func (c *Grass) Count() int {
	return int(c.d.count)
}

// ParametersChanged rebuilds the blade mesh, instances and draw arguments.
func (c *Grass) ParametersChanged(p GrassParams) error {
	c.params = p
	if !c.ready {
		return nil
	}
	c.d.props.SetVec3("uColor", math.FromArray(p.RootColor))
	c.d.props.SetVec3("uTipColor", math.FromArray(p.TipColor))
	c.d.props.SetFloat("uWindStrength", p.WindStrength)
	c.d.props.SetFloat("uWindSpeed", p.WindSpeed)

	blade := grass.BuildBlade(p.Blade)
	if err := c.d.setMesh(blade); err != nil {
		return err
	}
	if err := c.rebuildInstances(); err != nil {
		return err
	}
	return c.d.updateArgs()
}

// GrassPlacements scatters blades over a field of the given dimensions. The
// result depends only on p and field.
func GrassPlacements(p GrassParams, field math.Vec2) []instance.Placement {
	return instance.Scatter(p.Count, field, instance.Options{
		Jitter:   p.Jitter,
		Rotation: instance.RandomYaw(),
		Scale:    instance.RandomYScale(p.MinYScale, p.MaxYScale),
		Rand:     randx.NewSysRand(p.Seed),
	})
}

func (c *Grass) rebuildInstances() error {
	placements := GrassPlacements(c.params, c.field)
	if err := c.d.setInstances(instance.Transforms(placements)); err != nil {
		return err
	}

	extent := c.field.MaxComponent()
	center := math.Vec3{X: c.field.X / 2, Z: c.field.Y / 2}
	c.d.bounds = geometry.BoundsFromCenter(center, math.Splat(extent).Add(math.Splat(c.params.Blade.Height*c.params.MaxYScale)))

	logger.Debug("grass scattered",
		zap.Int("requested", c.params.Count),
		zap.Int("instances", len(placements)),
		zap.Float32("field_x", c.field.X),
		zap.Float32("field_z", c.field.Y),
	)
	return nil
}

// Render issues the grass draw.
func (c *Grass) Render(frame FrameContext) error {
	return c.d.draw(frame)
}

// Close releases the grass GPU resources.
func (c *Grass) Close() {
	c.d.close()
	c.ready = false
}
