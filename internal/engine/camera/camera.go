// Package camera provides the viewer's orbit camera.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/pkg/math"
)

// OrbitCamera orbits a target point. Angles are in radians.
type OrbitCamera struct {
	Target math.Vec3

	Distance float32
	Pitch    float32 // elevation above the XZ plane
	Yaw      float32 // rotation around +Y, 0 looks down -Z

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32

	// Projection
	FOV    float32 // vertical, radians
	Near   float32
	Far    float32
	Aspect float32
}

// Settings is the starting configuration of an OrbitCamera. Angles are in degrees.
type Settings struct {
	FOV      float32
	Near     float32
	Far      float32
	Distance float32
	Pitch    float32
	Yaw      float32

	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a camera looking at the origin.
func NewOrbitCamera(s Settings) *OrbitCamera {
	c := &OrbitCamera{
		Distance:        s.Distance,
		Pitch:           s.Pitch * math.DegToRad,
		Yaw:             s.Yaw * math.DegToRad,
		MinDistance:     1,
		MaxDistance:     max(s.Far/2, s.Distance),
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: s.DragSensitivity,
		ZoomSensitivity: s.ZoomSensitivity,
		FOV:             s.FOV * math.DegToRad,
		Near:            s.Near,
		Far:             s.Far,
		Aspect:          16.0 / 9.0,
	}
	c.clamp()
	return c
}

// Position returns the eye position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.Pitch)
	sy, cy := math32.Sincos(c.Yaw)
	return c.Target.Add(math.Vec3{
		X: c.Distance * cp * sy,
		Y: c.Distance * sp,
		Z: c.Distance * cp * cy,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// ViewProj returns projection * view.
func (c *OrbitCamera) ViewProj() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// SetViewport updates the aspect ratio. Degenerate sizes are ignored.
func (c *OrbitCamera) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

// HandleDrag rotates by a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.Yaw = math32.Mod(c.Yaw, 2*math32.Pi)
	c.clamp()
}

// HandleZoom moves toward the target for positive delta, proportionally to distance.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.clamp()
}

// HandleMovement pans the target on the XZ plane relative to the view
// direction and moves it vertically by up.
func (c *OrbitCamera) HandleMovement(forward, right, up, dt float32) {
	speed := c.Distance * dt

	sy, cy := math32.Sincos(c.Yaw)
	// forward points from the eye toward the target, projected on XZ
	f := math.Vec3{X: -sy, Z: -cy}
	r := math.Vec3{X: cy, Z: -sy}

	move := f.Scale(forward).Add(r.Scale(right)).Add(math.Vec3{Y: up})
	c.Target = c.Target.Add(move.Scale(speed))
}

// FitBounds centers the target on a box and backs off far enough to see it.
func (c *OrbitCamera) FitBounds(min, max math.Vec3) {
	c.Target = min.Add(max).Scale(0.5)
	radius := max.Sub(min).Length() / 2
	if radius > 0 {
		c.Distance = radius / math32.Tan(c.FOV/2)
	}
	c.clamp()
}

func (c *OrbitCamera) clamp() {
	c.Pitch = math32.Max(c.MinPitch, math32.Min(c.MaxPitch, c.Pitch))
	c.Distance = math32.Max(c.MinDistance, math32.Min(c.MaxDistance, c.Distance))
}
