// Package math provides float32 vector, matrix and quaternion types for mesh
// generation and instancing.
package math

import "github.com/chewxy/math32"

// Vec2 is a 2D vector. For planar extents X is width and Y is depth.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// MaxComponent returns the larger of X and Y.
func (v Vec2) MaxComponent() float32 {
	return math32.Max(v.X, v.Y)
}
