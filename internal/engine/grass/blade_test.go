package grass

import (
	"testing"

	"github.com/Faultbox/meadow/pkg/curve"
)

func TestNormalizeVertexCount(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-3, 5},
		{0, 5},
		{4, 5},
		{5, 5},
		{6, 7},
		{11, 11},
		{24, 25},
	}
	for _, tt := range tests {
		if got := NormalizeVertexCount(tt.in); got != tt.want {
			t.Errorf("NormalizeVertexCount(%d): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBuildBladeCounts(t *testing.T) {
	for _, n := range []int{5, 7, 11, 25} {
		p := DefaultParams()
		p.VertexCount = n
		m := BuildBlade(p)

		if len(m.Vertices) != n {
			t.Errorf("n=%d: vertices got %d, want %d", n, len(m.Vertices), n)
		}
		if len(m.Indices) != (n-1)*6 {
			t.Errorf("n=%d: indices got %d, want %d", n, len(m.Indices), (n-1)*6)
		}
		for i, idx := range m.Indices {
			if int(idx) >= n {
				t.Fatalf("n=%d: index %d = %d out of range", n, i, idx)
			}
		}
	}
}

func TestBuildBladeClampsVertexCount(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{4, 5},
		{6, 7},
		{1, 5},
	}
	for _, tt := range tests {
		p := DefaultParams()
		p.VertexCount = tt.in
		if got := len(BuildBlade(p).Vertices); got != tt.want {
			t.Errorf("vertex count %d: got %d vertices, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBuildBladeTriangles(t *testing.T) {
	p := DefaultParams()
	p.VertexCount = 7
	m := BuildBlade(p)

	want := []uint32{
		0, 2, 1, 1, 2, 3,
		2, 4, 3, 3, 4, 5,
	}
	for i, w := range want {
		if m.Indices[i] != w {
			t.Errorf("index %d: got %d, want %d", i, m.Indices[i], w)
		}
	}

	// degenerate padding
	for i := len(want); i < len(m.Indices)-3; i++ {
		if m.Indices[i] != 0 {
			t.Errorf("padding index %d: got %d, want 0", i, m.Indices[i])
		}
	}

	tip := m.Indices[len(m.Indices)-3:]
	if tip[0] != 4 || tip[1] != 6 || tip[2] != 5 {
		t.Errorf("tip triangle: got %v, want [4 6 5]", tip)
	}
}

func TestBuildBladeGeometry(t *testing.T) {
	p := BladeParams{
		VertexCount: 5,
		Height:      2,
		Shape: curve.Shape{
			Forward: curve.Constant(0),
			Height:  curve.Linear(0, 0, 1, 1),
		},
		Width: curve.Constant(0.5),
	}
	m := BuildBlade(p)

	// root pair
	if m.Vertices[0].Position != [3]float32{-0.25, 0, 0} {
		t.Errorf("root left: got %v", m.Vertices[0].Position)
	}
	if m.Vertices[1].Position != [3]float32{0.25, 0, 0} {
		t.Errorf("root right: got %v", m.Vertices[1].Position)
	}

	// tip pair at t = 2/4
	if m.Vertices[2].Position != [3]float32{-0.25, 1, 0} {
		t.Errorf("tip left: got %v", m.Vertices[2].Position)
	}
	if m.Vertices[3].Position != [3]float32{0.25, 1, 0} {
		t.Errorf("tip right: got %v", m.Vertices[3].Position)
	}
	if m.Vertices[2].TexCoord != [2]float32{0, 0.5} {
		t.Errorf("tip left uv: got %v", m.Vertices[2].TexCoord)
	}

	// center scaled by height
	if m.Vertices[4].Position != [3]float32{0, 2, 0} {
		t.Errorf("tip center: got %v, want (0, 2, 0)", m.Vertices[4].Position)
	}
	if m.Vertices[4].TexCoord != [2]float32{0.5, 1} {
		t.Errorf("tip center uv: got %v", m.Vertices[4].TexCoord)
	}
}

func TestBuildBladeNilCurves(t *testing.T) {
	m := BuildBlade(BladeParams{VertexCount: 9, Height: 1})
	if len(m.Vertices) != 9 {
		t.Fatalf("vertices: got %d, want 9", len(m.Vertices))
	}
	for i, v := range m.Vertices {
		if v.Position != [3]float32{} {
			t.Errorf("vertex %d: got %v, want origin", i, v.Position)
		}
	}
}
