package plane

import (
	"testing"
)

func TestGenerateCounts(t *testing.T) {
	for _, res := range []int{1, 2, 3, 7, 16, 50} {
		m := Generate(10, 5, res)

		wantVerts := (res + 1) * (res + 1)
		if len(m.Vertices) != wantVerts {
			t.Errorf("res %d: vertices got %d, want %d", res, len(m.Vertices), wantVerts)
		}
		wantTris := res * res * 2
		if m.TriangleCount() != wantTris {
			t.Errorf("res %d: triangles got %d, want %d", res, m.TriangleCount(), wantTris)
		}
		for i, idx := range m.Indices {
			if int(idx) >= len(m.Vertices) {
				t.Fatalf("res %d: index %d = %d out of range", res, i, idx)
			}
		}
	}
}

func TestGenerateLayout(t *testing.T) {
	m := Generate(4, 2, 2)

	// vertex (x=2, y=1) at index 2*3+1
	v := m.Vertices[7]
	if v.Position != [3]float32{4, 0, 1} {
		t.Errorf("vertex (2,1) position: got %v, want (4, 0, 1)", v.Position)
	}
	if v.TexCoord != [2]float32{1, 0.5} {
		t.Errorf("vertex (2,1) uv: got %v, want (1, 0.5)", v.TexCoord)
	}

	// first cell
	want := []uint32{0, 1, 3, 3, 1, 4}
	for i, w := range want {
		if m.Indices[i] != w {
			t.Errorf("index %d: got %d, want %d", i, m.Indices[i], w)
		}
	}

	if m.Bounds.Max != [3]float32{4, 0, 2} {
		t.Errorf("bounds max: got %v, want (4, 0, 2)", m.Bounds.Max)
	}
}

func TestGenerateNormalsFaceUp(t *testing.T) {
	m := Generate(3, 3, 4)
	for i, v := range m.Vertices {
		if v.Normal != [3]float32{0, 1, 0} {
			t.Fatalf("vertex %d normal: got %v, want (0, 1, 0)", i, v.Normal)
		}
	}
}

func TestGenerateClampsResolution(t *testing.T) {
	for _, res := range []int{0, -5} {
		m := Generate(1, 1, res)
		if len(m.Vertices) != 4 || m.TriangleCount() != 2 {
			t.Errorf("res %d: got %d vertices, %d triangles; want 4, 2", res, len(m.Vertices), m.TriangleCount())
		}
	}
}

func TestGenerateZeroDimensions(t *testing.T) {
	m := Generate(0, 0, 3)
	if len(m.Vertices) != 16 {
		t.Fatalf("vertices: got %d, want 16", len(m.Vertices))
	}
	for _, v := range m.Vertices {
		if v.Position != [3]float32{} {
			t.Fatalf("zero-size plane vertex: got %v, want origin", v.Position)
		}
	}
}

func TestGeneratorEdgeTriggered(t *testing.T) {
	g := NewGenerator()
	if g.Mesh() != nil {
		t.Fatal("mesh should be nil before first Update")
	}

	p := Params{Width: 10, Height: 10, Resolution: 4}
	first, changed := g.Update(p)
	if !changed || first == nil {
		t.Fatal("first Update should generate")
	}

	same, changed := g.Update(p)
	if changed || same != first {
		t.Error("Update with same params should not regenerate")
	}

	tests := []struct {
		name string
		p    Params
	}{
		{"resolution only", Params{Width: 10, Height: 10, Resolution: 5}},
		{"width only", Params{Width: 12, Height: 10, Resolution: 5}},
		{"height only", Params{Width: 12, Height: 3, Resolution: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, changed := g.Update(tt.p); !changed {
				t.Error("expected regeneration")
			}
			if g.Params() != tt.p {
				t.Errorf("Params(): got %+v, want %+v", g.Params(), tt.p)
			}
		})
	}
}
