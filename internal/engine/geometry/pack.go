package geometry

import (
	"encoding/binary"
	"math"
)

// VertexBytes packs the vertices as little-endian float32s in Vertex field order.
func (m *Mesh) VertexBytes() []byte {
	buf := make([]byte, 0, len(m.Vertices)*VertexSize)
	for _, v := range m.Vertices {
		buf = AppendFloats(buf, v.Position[:]...)
		buf = AppendFloats(buf, v.Normal[:]...)
		buf = AppendFloats(buf, v.TexCoord[:]...)
	}
	return buf
}

// IndexBytes packs the indices as little-endian uint32s.
func (m *Mesh) IndexBytes() []byte {
	buf := make([]byte, 0, len(m.Indices)*4)
	for _, idx := range m.Indices {
		buf = binary.LittleEndian.AppendUint32(buf, idx)
	}
	return buf
}

// AppendFloats appends fs to buf as little-endian float32s.
func AppendFloats(buf []byte, fs ...float32) []byte {
	for _, f := range fs {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}
