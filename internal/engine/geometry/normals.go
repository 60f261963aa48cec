package geometry

import "github.com/Faultbox/meadow/pkg/math"

// RecalculateNormals replaces every vertex normal with the average of the
// normals of the triangles that reference it. Face normals are not normalized
// before summing, so larger triangles weigh more. Must run after Indices is set.
// Vertices referenced only by degenerate triangles, or by none, get +Y.
func (m *Mesh) RecalculateNormals() {
	sums := make([]math.Vec3, len(m.Vertices))

	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if int(a) >= len(m.Vertices) || int(b) >= len(m.Vertices) || int(c) >= len(m.Vertices) {
			continue
		}
		pa := math.FromArray(m.Vertices[a].Position)
		pb := math.FromArray(m.Vertices[b].Position)
		pc := math.FromArray(m.Vertices[c].Position)

		n := pb.Sub(pa).Cross(pc.Sub(pa))
		sums[a] = sums[a].Add(n)
		sums[b] = sums[b].Add(n)
		sums[c] = sums[c].Add(n)
	}

	up := [3]float32{0, 1, 0}
	for i := range m.Vertices {
		n := sums[i].Normalize()
		if n == (math.Vec3{}) {
			m.Vertices[i].Normal = up
			continue
		}
		m.Vertices[i].Normal = n.Array()
	}
}
