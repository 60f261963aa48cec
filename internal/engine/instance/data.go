package instance

import (
	"github.com/Faultbox/meadow/internal/engine/geometry"
	"github.com/Faultbox/meadow/pkg/math"
)

// Size is the byte size of one packed Data: two column-major float32 mat4s.
const Size = 2 * 16 * 4

// Data is the per-instance record consumed by the vertex stage.
type Data struct {
	Matrix  math.Mat4
	Inverse math.Mat4
}

// NewData composes the TRS matrix for p and its inverse.
func NewData(p Placement) Data {
	m := math.TRS(p.Position, p.Rotation, p.Scale)
	return Data{Matrix: m, Inverse: m.Inverse()}
}

// Transforms converts placements to instance records, preserving order.
func Transforms(placements []Placement) []Data {
	out := make([]Data, len(placements))
	for i, p := range placements {
		out[i] = NewData(p)
	}
	return out
}

// Pack serializes instances back to back, little-endian.
func Pack(data []Data) []byte {
	buf := make([]byte, 0, len(data)*Size)
	for i := range data {
		buf = geometry.AppendFloats(buf, data[i].Matrix[:]...)
		buf = geometry.AppendFloats(buf, data[i].Inverse[:]...)
	}
	return buf
}
