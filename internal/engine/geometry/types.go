// Package geometry holds the CPU-side mesh representation shared by the
// procedural generators, plus normal recalculation and byte packing for upload.
package geometry

import "github.com/Faultbox/meadow/pkg/math"

// Vertex is an interleaved mesh vertex. 32 bytes, tightly packed.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// VertexSize is the byte stride of a packed Vertex.
const VertexSize = 8 * 4

// Mesh holds vertex and triangle-list index data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices)
}

// IndexCount returns the number of indices (3 per triangle).
func (m *Mesh) IndexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return m.IndexCount() / 3
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// BoundsFromCenter builds a box from its center and full size.
func BoundsFromCenter(center, size math.Vec3) Bounds {
	half := size.Scale(0.5)
	return Bounds{
		Min: center.Sub(half).Array(),
		Max: center.Add(half).Array(),
	}
}

// Center returns the box center.
func (b Bounds) Center() math.Vec3 {
	return math.FromArray(b.Min).Add(math.FromArray(b.Max)).Scale(0.5)
}

// Size returns the box extent on each axis.
func (b Bounds) Size() math.Vec3 {
	return math.FromArray(b.Max).Sub(math.FromArray(b.Min))
}

// RecalculateBounds recomputes Bounds from the vertex positions.
func (m *Mesh) RecalculateBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}
	lo := math.FromArray(m.Vertices[0].Position)
	hi := lo
	for _, v := range m.Vertices[1:] {
		p := math.FromArray(v.Position)
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	m.Bounds = Bounds{Min: lo.Array(), Max: hi.Array()}
}
