package instance

import (
	"encoding/binary"
	stdmath "math"
	"testing"

	"cogentcore.org/core/base/randx"

	"github.com/Faultbox/meadow/pkg/math"
)

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestCellsPerAxis(t *testing.T) {
	tests := []struct {
		count, want int
	}{
		{-4, 1},
		{0, 1},
		{1, 1},
		{2, 2},
		{4, 2},
		{5, 3},
		{99, 10},
		{100, 10},
		{101, 11},
		{10000, 100},
		{1 << 24, 1 << 12},
		{1<<24 + 1, 1 << 12},
		{stdmath.MaxInt, 1 << 12},
	}
	for _, tt := range tests {
		if got := CellsPerAxis(tt.count); got != tt.want {
			t.Errorf("CellsPerAxis(%d): got %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestScatterCount(t *testing.T) {
	bounds := math.Vec2{X: 10, Y: 10}
	for _, tt := range []struct{ count, want int }{{100, 100}, {99, 100}, {0, 1}} {
		got := Scatter(tt.count, bounds, Options{Rand: randx.NewSysRand(1)})
		if len(got) != tt.want {
			t.Errorf("Scatter(%d): got %d placements, want %d", tt.count, len(got), tt.want)
		}
	}
}

func TestScatterDeterministic(t *testing.T) {
	opts := func(seed int64) Options {
		return Options{
			Jitter:   0.1,
			Rotation: RandomYaw(),
			Scale:    RandomYScale(0.8, 1.2),
			Rand:     randx.NewSysRand(seed),
		}
	}
	bounds := math.Vec2{X: 20, Y: 20}

	a := Scatter(50, bounds, opts(42))
	b := Scatter(50, bounds, opts(42))
	c := Scatter(50, bounds, opts(43))

	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("placement %d differs for equal seeds: %+v vs %+v", i, a[i], b[i])
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical layouts")
	}
}

func TestScatterGrassRanges(t *testing.T) {
	const jit = 0.1
	bounds := math.Vec2{X: 8, Y: 4}
	side := CellsPerAxis(64)
	got := Scatter(64, bounds, Options{
		Jitter:   jit,
		Rotation: RandomYaw(),
		Scale:    RandomYScale(0.8, 1.2),
		Rand:     randx.NewSysRand(7),
	})

	for x := 0; x < side; x++ {
		for z := 0; z < side; z++ {
			p := got[x*side+z]
			cx := float32(x) / float32(side) * bounds.X
			cz := float32(z) / float32(side) * bounds.Y
			if absf(p.Position.X-cx) > jit+1e-5 || absf(p.Position.Z-cz) > jit+1e-5 {
				t.Errorf("cell (%d,%d): position %v too far from (%v, %v)", x, z, p.Position, cx, cz)
			}
			if p.Position.Y != 0 {
				t.Errorf("cell (%d,%d): y got %v, want 0", x, z, p.Position.Y)
			}
			if p.Scale.X != 1 || p.Scale.Z != 1 || p.Scale.Y < 0.8 || p.Scale.Y > 1.2 {
				t.Errorf("cell (%d,%d): scale %v out of range", x, z, p.Scale)
			}
			// yaw only: no X or Z rotation component
			if absf(p.Rotation.X) > 1e-6 || absf(p.Rotation.Z) > 1e-6 {
				t.Errorf("cell (%d,%d): rotation %v is not a pure yaw", x, z, p.Rotation)
			}
		}
	}
}

func TestScatterCubeLayout(t *testing.T) {
	const row = 4
	rot := math.QuatFromEuler(0, 90, 0)
	got := Scatter(row*row, Grid(row, 1), Options{
		Rotation: FixedRotation(rot),
		Scale:    FixedScale(math.Splat(0.5)),
	})
	if len(got) != row*row {
		t.Fatalf("placements: got %d, want %d", len(got), row*row)
	}

	p := got[3*row+2]
	if absf(p.Position.X-3) > 1e-5 || absf(p.Position.Z-2) > 1e-5 || p.Position.Y != 0 {
		t.Errorf("cube (3,2): position got %v, want (3, 0, 2)", p.Position)
	}
	if p.Rotation != rot {
		t.Errorf("cube rotation: got %v, want %v", p.Rotation, rot)
	}
	if p.Scale != math.Splat(0.5) {
		t.Errorf("cube scale: got %v, want 0.5", p.Scale)
	}
}

func TestTransformsInverse(t *testing.T) {
	placements := []Placement{
		{Position: math.Vec3{X: 1, Y: 2, Z: 3}, Rotation: math.QuatFromEuler(0, 90, 0), Scale: math.Splat(0.5)},
		{Position: math.Vec3{X: -4, Z: 7}, Rotation: math.QuatFromEuler(0, 33, 0), Scale: math.Vec3{X: 1, Y: 1.2, Z: 1}},
	}
	data := Transforms(placements)
	if len(data) != len(placements) {
		t.Fatalf("len: got %d, want %d", len(data), len(placements))
	}

	for i, d := range data {
		id := d.Matrix.Mul(d.Inverse)
		want := math.Identity()
		for k := range id {
			if absf(id[k]-want[k]) > 1e-4 {
				t.Errorf("instance %d: M*M^-1 [%d] got %v, want %v", i, k, id[k], want[k])
			}
		}

		origin := d.Matrix.TransformPoint(math.Vec3{})
		if origin != placements[i].Position {
			t.Errorf("instance %d: origin maps to %v, want %v", i, origin, placements[i].Position)
		}
	}
}

func TestPack(t *testing.T) {
	d := NewData(Placement{
		Position: math.Vec3{X: 5, Y: 6, Z: 7},
		Rotation: math.QuatIdentity(),
		Scale:    math.Splat(2),
	})
	buf := Pack([]Data{d, d})

	if len(buf) != 2*Size {
		t.Fatalf("packed size: got %d, want %d", len(buf), 2*Size)
	}

	f := func(i int) float32 {
		return stdmath.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	// translation lives in column 3
	if f(12) != 5 || f(13) != 6 || f(14) != 7 {
		t.Errorf("translation: got (%v, %v, %v), want (5, 6, 7)", f(12), f(13), f(14))
	}
	if f(0) != 2 {
		t.Errorf("scale x: got %v, want 2", f(0))
	}
	// inverse follows the matrix
	if f(16) != 0.5 {
		t.Errorf("inverse scale x: got %v, want 0.5", f(16))
	}
	if f(16+12) != -2.5 {
		t.Errorf("inverse translation x: got %v, want -2.5", f(16+12))
	}
}
