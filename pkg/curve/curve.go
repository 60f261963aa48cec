// Package curve provides keyframed 1D curves evaluated with cubic Hermite
// segments, used to describe blade silhouettes.
package curve

import (
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meadow/pkg/math"
)

// Keyframe is a single curve key. In and Out are the incoming and outgoing
// slopes (value units per time unit).
type Keyframe struct {
	Time  float32 `yaml:"time"`
	Value float32 `yaml:"value"`
	In    float32 `yaml:"in,omitempty"`
	Out   float32 `yaml:"out,omitempty"`
}

// Curve is an ordered list of keyframes. Outside the key range it clamps to
// the first or last value. A nil or empty curve evaluates to 0.
type Curve struct {
	Keys []Keyframe
}

// New creates a curve from keys, sorted by time.
func New(keys ...Keyframe) *Curve {
	c := &Curve{Keys: slices.Clone(keys)}
	c.sort()
	return c
}

// Linear creates a straight two-key curve from (t0, v0) to (t1, v1).
func Linear(t0, v0, t1, v1 float32) *Curve {
	var slope float32
	if t1 != t0 {
		slope = (v1 - v0) / (t1 - t0)
	}
	return New(
		Keyframe{Time: t0, Value: v0, In: slope, Out: slope},
		Keyframe{Time: t1, Value: v1, In: slope, Out: slope},
	)
}

// Constant creates a single-key curve that always evaluates to v.
func Constant(v float32) *Curve {
	return New(Keyframe{Value: v})
}

func (c *Curve) sort() {
	slices.SortStableFunc(c.Keys, func(a, b Keyframe) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
}

// Len returns the number of keys.
func (c *Curve) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Keys)
}

// Duration returns last key time minus first key time, or 0 without keys.
func (c *Curve) Duration() float32 {
	if c.Len() == 0 {
		return 0
	}
	return c.Keys[len(c.Keys)-1].Time - c.Keys[0].Time
}

// Equal reports whether both curves have the same keys. Nil equals empty.
func (c *Curve) Equal(other *Curve) bool {
	if c.Len() == 0 || other.Len() == 0 {
		return c.Len() == other.Len()
	}
	return slices.Equal(c.Keys, other.Keys)
}

// Evaluate samples the curve at time t.
func (c *Curve) Evaluate(t float32) float32 {
	n := c.Len()
	switch {
	case n == 0:
		return 0
	case n == 1 || t <= c.Keys[0].Time:
		return c.Keys[0].Value
	case t >= c.Keys[n-1].Time:
		return c.Keys[n-1].Value
	}

	// first key strictly after t; t is inside (Keys[0].Time, Keys[n-1].Time)
	i, _ := slices.BinarySearchFunc(c.Keys, t, func(k Keyframe, t float32) int {
		if k.Time <= t {
			return -1
		}
		return 1
	})
	return hermite(c.Keys[i-1], c.Keys[i], t)
}

func hermite(k0, k1 Keyframe, t float32) float32 {
	dt := k1.Time - k0.Time
	if dt == 0 {
		return k1.Value
	}
	s := (t - k0.Time) / dt
	s2 := s * s
	s3 := s2 * s

	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	return h00*k0.Value + h10*dt*k0.Out + h01*k1.Value + h11*dt*k1.In
}

// UnmarshalYAML decodes a plain list of keyframes.
func (c *Curve) UnmarshalYAML(node *yaml.Node) error {
	var keys []Keyframe
	if err := node.Decode(&keys); err != nil {
		return err
	}
	c.Keys = keys
	c.sort()
	return nil
}

// MarshalYAML encodes the curve as a plain list of keyframes.
func (c Curve) MarshalYAML() (any, error) {
	return c.Keys, nil
}

// Shape is a pair of curves mapping a normalized parameter to a
// (forward offset, height offset) point.
type Shape struct {
	Forward *Curve `yaml:"forward"`
	Height  *Curve `yaml:"height"`
}

// Evaluate returns the point at t with X = forward and Y = height.
func (s Shape) Evaluate(t float32) math.Vec2 {
	return math.Vec2{X: s.Forward.Evaluate(t), Y: s.Height.Evaluate(t)}
}
