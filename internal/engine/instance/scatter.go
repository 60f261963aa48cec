// Package instance lays out per-instance transforms on a square grid and
// packs them for upload to an instance buffer.
package instance

import (
	"cogentcore.org/core/base/randx"
	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/pkg/math"
)

// Placement is the position, rotation and scale of one instance.
type Placement struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
}

// RotationPolicy chooses an instance rotation.
type RotationPolicy func(r randx.Rand) math.Quat

// ScalePolicy chooses an instance scale.
type ScalePolicy func(r randx.Rand) math.Vec3

// FixedRotation gives every instance rotation q.
func FixedRotation(q math.Quat) RotationPolicy {
	return func(randx.Rand) math.Quat { return q }
}

// RandomYaw rotates each instance around Y by a uniform angle in [0, 360) degrees.
func RandomYaw() RotationPolicy {
	return func(r randx.Rand) math.Quat {
		return math.QuatFromEuler(0, rangef(r, 0, 360), 0)
	}
}

// FixedScale gives every instance scale v.
func FixedScale(v math.Vec3) ScalePolicy {
	return func(randx.Rand) math.Vec3 { return v }
}

// RandomYScale keeps X and Z at 1 and draws Y uniformly from [lo, hi).
func RandomYScale(lo, hi float32) ScalePolicy {
	return func(r randx.Rand) math.Vec3 {
		return math.Vec3{X: 1, Y: rangef(r, lo, hi), Z: 1}
	}
}

// Options controls Scatter.
type Options struct {
	// Jitter is the maximum planar offset applied independently on X and Z.
	Jitter float32
	// Rotation defaults to identity.
	Rotation RotationPolicy
	// Scale defaults to one.
	Scale ScalePolicy
	// Rand defaults to the global source.
	Rand randx.Rand
}

// MaxCount is the largest instance count a layout accepts; a 4096 x 4096 grid.
const MaxCount = 1 << 24

// CellsPerAxis returns the grid side needed to hold count instances:
// ceil(sqrt(count)), with count clamped to [1, MaxCount].
func CellsPerAxis(count int) int {
	count = min(max(count, 1), MaxCount)
	side := int(math32.Ceil(math32.Sqrt(float32(count))))
	// float32 sqrt can land one off for large perfect squares
	for side*side < count {
		side++
	}
	for side > 1 && (side-1)*(side-1) >= count {
		side--
	}
	return side
}

// Grid returns the bounds that place a side x side layout at multiples of spacing.
func Grid(side int, spacing float32) math.Vec2 {
	extent := float32(max(side, 1)) * spacing
	return math.Vec2{X: extent, Y: extent}
}

// Scatter fills a square grid of CellsPerAxis(count)^2 cells spread across
// bounds. The result is indexed x*side+z. Per cell the random source is read
// for X jitter, Z jitter, rotation and scale, in that order.
func Scatter(count int, bounds math.Vec2, opts Options) []Placement {
	side := CellsPerAxis(count)
	fside := float32(side)

	r := opts.Rand
	if r == nil {
		r = randx.NewGlobalRand()
	}
	rotation := opts.Rotation
	if rotation == nil {
		rotation = FixedRotation(math.QuatIdentity())
	}
	scale := opts.Scale
	if scale == nil {
		scale = FixedScale(math.Vec3One)
	}

	out := make([]Placement, side*side)
	for x := 0; x < side; x++ {
		for z := 0; z < side; z++ {
			px := float32(x)/fside*bounds.X + jitter(r, opts.Jitter)
			pz := float32(z)/fside*bounds.Y + jitter(r, opts.Jitter)
			out[x*side+z] = Placement{
				Position: math.Vec3{X: px, Z: pz},
				Rotation: rotation(r),
				Scale:    scale(r),
			}
		}
	}
	return out
}

func jitter(r randx.Rand, amount float32) float32 {
	if amount == 0 {
		return 0
	}
	return rangef(r, -amount, amount)
}

func rangef(r randx.Rand, lo, hi float32) float32 {
	return lo + r.Float32()*(hi-lo)
}
