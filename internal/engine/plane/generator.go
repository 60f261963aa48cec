package plane

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/geometry"
	"github.com/Faultbox/meadow/internal/logger"
)

// Generator regenerates the plane only when its parameters change.
type Generator struct {
	last Params
	mesh *geometry.Mesh
}

// NewGenerator creates a generator with no mesh yet.
func NewGenerator() *Generator {
	return &Generator{}
}

// Update regenerates the mesh if p differs from the last generated
// parameters in resolution or dimensions. The first call always generates.
// It returns the current mesh and whether it was rebuilt.
func (g *Generator) Update(p Params) (*geometry.Mesh, bool) {
	if g.mesh != nil && p == g.last {
		return g.mesh, false
	}

	g.last = p
	g.mesh = GenerateParams(p)

	logger.Debug("plane generated",
		zap.Float32("width", p.Width),
		zap.Float32("height", p.Height),
		zap.Int("resolution", p.Resolution),
		zap.Int("vertices", g.mesh.VertexCount()),
		zap.Int("triangles", g.mesh.TriangleCount()),
	)
	return g.mesh, true
}

// Mesh returns the last generated mesh, or nil before the first Update.
func (g *Generator) Mesh() *geometry.Mesh {
	return g.mesh
}

// Params returns the parameters of the last generation.
func (g *Generator) Params() Params {
	return g.last
}
