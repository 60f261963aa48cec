package math

import "testing"

func TestVec2(t *testing.T) {
	v := Vec2{3, 4}
	if v.Length() != 5 {
		t.Errorf("Vec2.Length(): got %v, want 5", v.Length())
	}
	if v.MaxComponent() != 4 {
		t.Errorf("Vec2.MaxComponent(): got %v, want 4", v.MaxComponent())
	}
	if got := v.Add(Vec2{1, 1}).Scale(2); got != (Vec2{8, 10}) {
		t.Errorf("Vec2.Add().Scale(): got %v, want (8, 10)", got)
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	if got != (Vec3{0, 0, 1}) {
		t.Errorf("Vec3.Cross(): got %v, want (0, 0, 1)", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{0, 3, 4}.Normalize()
	if absf(n.Length()-1) > 1e-6 {
		t.Errorf("Vec3.Normalize().Length(): got %v, want 1", n.Length())
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec3MinMax(t *testing.T) {
	a, b := Vec3{1, 5, -2}, Vec3{3, 0, -1}
	if got := a.Min(b); got != (Vec3{1, 0, -2}) {
		t.Errorf("Min: got %v", got)
	}
	if got := a.Max(b); got != (Vec3{3, 5, -1}) {
		t.Errorf("Max: got %v", got)
	}
}
