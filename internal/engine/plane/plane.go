// Package plane generates subdivided ground-plane grid meshes.
package plane

import (
	"github.com/Faultbox/meadow/internal/engine/geometry"
)

// Params describes a grid plane.
type Params struct {
	Width      float32 `yaml:"width"`
	Height     float32 `yaml:"height"`
	Resolution int     `yaml:"resolution"`
}

// Generate builds a plane spanning [0,width] on X and [0,height] on Z with
// resolution cells per side. Resolution below 1 is treated as 1; zero
// dimensions produce a degenerate zero-area mesh.
//
// Vertex (x, y) sits at index x*(resolution+1)+y. Each cell is split into two
// triangles sharing the (r, c+1)-(r+1, c) diagonal, wound so the face normal is +Y.
func Generate(width, height float32, resolution int) *geometry.Mesh {
	res := max(resolution, 1)
	side := res + 1

	xStep := width / float32(res)
	yStep := height / float32(res)

	vertices := make([]geometry.Vertex, side*side)
	for x := 0; x <= res; x++ {
		for y := 0; y <= res; y++ {
			vertices[x*side+y] = geometry.Vertex{
				Position: [3]float32{float32(x) * xStep, 0, float32(y) * yStep},
				TexCoord: [2]float32{float32(x) / float32(res), float32(y) / float32(res)},
			}
		}
	}

	indices := make([]uint32, 0, res*res*6)
	for row := 0; row < res; row++ {
		for col := 0; col < res; col++ {
			a := uint32(row*side + col)     // (r, c)
			b := uint32(row*side + col + 1) // (r, c+1)
			c := uint32((row+1)*side + col) // (r+1, c)
			d := c + 1                      // (r+1, c+1)
			indices = append(indices,
				a, b, c,
				c, b, d,
			)
		}
	}

	mesh := &geometry.Mesh{Vertices: vertices, Indices: indices}
	mesh.RecalculateNormals()
	mesh.RecalculateBounds()
	return mesh
}

// GenerateParams is Generate driven by Params.
func GenerateParams(p Params) *geometry.Mesh {
	return Generate(p.Width, p.Height, p.Resolution)
}
