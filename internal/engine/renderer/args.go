package renderer

import "encoding/binary"

// ArgsSize is the byte size of IndirectArgs.
const ArgsSize = 5 * 4

// IndirectArgs is the indexed indirect draw command: index count, instance
// count, first index, base vertex and first instance.
type IndirectArgs [5]uint32

// BuildArgs fills the draw command for sub-mesh m drawn instanceCount
// times. A nil mesh yields an all-zero command, which draws nothing.
func BuildArgs(m *SubMesh, instanceCount uint32) IndirectArgs {
	if m == nil {
		return IndirectArgs{}
	}
	return IndirectArgs{m.IndexCount, instanceCount, m.IndexStart, m.BaseVertex, 0}
}

// IndexCount returns the per-instance index count.
func (a IndirectArgs) IndexCount() uint32 { return a[0] }

// InstanceCount returns the number of instances drawn.
func (a IndirectArgs) InstanceCount() uint32 { return a[1] }

// Bytes encodes the command little-endian.
func (a IndirectArgs) Bytes() []byte {
	buf := make([]byte, 0, ArgsSize)
	for _, v := range a {
		buf = binary.LittleEndian.AppendUint32(buf, v)
	}
	return buf
}

// DecodeArgs reads a command from the first ArgsSize bytes of b.
func DecodeArgs(b []byte) (IndirectArgs, bool) {
	var a IndirectArgs
	if len(b) < ArgsSize {
		return a, false
	}
	for i := range a {
		a[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return a, true
}
