// Package grass builds the single grass blade mesh that the field instances.
package grass

import (
	"github.com/Faultbox/meadow/internal/engine/geometry"
	"github.com/Faultbox/meadow/pkg/curve"
)

// MinVertexCount is the smallest blade: one rung plus the tip.
const MinVertexCount = 5

// BladeParams describes the blade silhouette.
type BladeParams struct {
	// VertexCount is normalized with NormalizeVertexCount.
	VertexCount int `yaml:"vertex_count"`
	// Height scales the shape's height component.
	Height float32 `yaml:"height"`
	// Shape maps t in [0,1] to (forward, height).
	Shape curve.Shape `yaml:"shape"`
	// Width is sampled over its own duration.
	Width *curve.Curve `yaml:"width"`
}

// NormalizeVertexCount clamps n to at least MinVertexCount and rounds even
// values up to the next odd one.
func NormalizeVertexCount(n int) int {
	n = max(MinVertexCount, n)
	if n%2 == 0 {
		n++
	}
	return n
}

// DefaultShape returns a blade that rises to 1 and leans slightly forward.
func DefaultShape() curve.Shape {
	return curve.Shape{
		Forward: curve.New(
			curve.Keyframe{Time: 0, Value: 0, In: 0, Out: 0},
			curve.Keyframe{Time: 1, Value: 0.3, In: 0.6, Out: 0.6},
		),
		Height: curve.New(
			curve.Keyframe{Time: 0, Value: 0, In: 1.2, Out: 1.2},
			curve.Keyframe{Time: 1, Value: 1, In: 0.6, Out: 0.6},
		),
	}
}

// DefaultWidth returns a width profile tapering from 0.1 at the root to 0.03.
func DefaultWidth() *curve.Curve {
	return curve.New(
		curve.Keyframe{Time: 0, Value: 0.1},
		curve.Keyframe{Time: 1, Value: 0.03, In: -0.1, Out: -0.1},
	)
}

// DefaultParams returns an 11 vertex blade of height 1.
func DefaultParams() BladeParams {
	return BladeParams{
		VertexCount: 11,
		Height:      1,
		Shape:       DefaultShape(),
		Width:       DefaultWidth(),
	}
}

// BuildBlade generates the blade ribbon. Vertices come in left/right pairs
// from the root upward, followed by the tip's left, right and center
// vertices. The index slice always holds (n-1)*6 entries; slots between the
// last rung and the tip triangle stay zero and form degenerate triangles.
func BuildBlade(p BladeParams) *geometry.Mesh {
	n := NormalizeVertexCount(p.VertexCount)
	fn := float32(n)
	widthDuration := p.Width.Duration()

	vertices := make([]geometry.Vertex, n)

	for i := 0; i < n-3; i += 2 {
		t := float32(i) / fn
		point := p.Shape.Evaluate(t)
		half := p.Width.Evaluate(t*widthDuration) / 2
		y := point.Y * p.Height

		vertices[i] = geometry.Vertex{
			Position: [3]float32{-half, y, point.X},
			TexCoord: [2]float32{0, t},
		}
		vertices[i+1] = geometry.Vertex{
			Position: [3]float32{half, y, point.X},
			TexCoord: [2]float32{1, t},
		}
	}

	// tip
	tipT := float32(n-3) / float32(n-1)
	point := p.Shape.Evaluate(tipT)
	half := p.Width.Evaluate(widthDuration*(fn-1)/fn) / 2
	y := point.Y * p.Height

	vertices[n-3] = geometry.Vertex{
		Position: [3]float32{-half, y, point.X},
		TexCoord: [2]float32{0, tipT},
	}
	vertices[n-2] = geometry.Vertex{
		Position: [3]float32{half, y, point.X},
		TexCoord: [2]float32{1, tipT},
	}
	top := p.Shape.Evaluate(1)
	vertices[n-1] = geometry.Vertex{
		Position: [3]float32{0, top.Y * p.Height, top.X},
		TexCoord: [2]float32{0.5, 1},
	}

	indices := make([]uint32, (n-1)*6)
	i := 0
	for row := uint32(0); row < uint32(n-3); row += 2 {
		indices[i+0] = row
		indices[i+1] = row + 2
		indices[i+2] = row + 1
		indices[i+3] = row + 1
		indices[i+4] = row + 2
		indices[i+5] = row + 3
		i += 6
	}
	last := len(indices)
	indices[last-3] = uint32(n - 3)
	indices[last-2] = uint32(n - 1)
	indices[last-1] = uint32(n - 2)

	mesh := &geometry.Mesh{Vertices: vertices, Indices: indices}
	mesh.RecalculateNormals()
	mesh.RecalculateBounds()
	return mesh
}
