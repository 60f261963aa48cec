package math

import "testing"

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q != (Quat{0, 0, 0, 1}) {
		t.Errorf("QuatIdentity: got %v, want (0,0,0,1)", q)
	}
	if q.ToMat4() != Identity() {
		t.Error("identity quaternion should produce identity matrix")
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{1, 2, 3, 4}.Normalize()
	l := n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W
	if absf(l-1) > 1e-4 {
		t.Errorf("normalized length squared: got %f, want 1", l)
	}
	if (Quat{}).Normalize() != QuatIdentity() {
		t.Error("zero quaternion should normalize to identity")
	}
}

func TestQuatFromEuler(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float32
		in      Vec3
		want    Vec3
	}{
		{"yaw 90", 0, 90, 0, Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"pitch 90", 90, 0, 0, Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"roll 90", 0, 0, 90, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"none", 0, 0, 0, Vec3{1, 2, 3}, Vec3{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatFromEuler(tt.x, tt.y, tt.z)
			if got := q.Rotate(tt.in); !near(got, tt.want, 1e-5) {
				t.Errorf("Rotate: got %v, want %v", got, tt.want)
			}
			if got := q.ToMat4().TransformDirection(tt.in); !near(got, tt.want, 1e-5) {
				t.Errorf("ToMat4: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuatMulOrder(t *testing.T) {
	// Z first, then Y: (1,0,0) -> (0,1,0) -> (0,1,0)
	q := QuatFromEuler(0, 90, 0).Mul(QuatFromEuler(0, 0, 90))
	if got := q.Rotate(Vec3{1, 0, 0}); !near(got, Vec3{0, 1, 0}, 1e-5) {
		t.Errorf("Mul order: got %v, want (0, 1, 0)", got)
	}
}
