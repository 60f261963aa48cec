package renderer

import (
	"maps"
	"slices"

	"github.com/Faultbox/meadow/pkg/math"
)

// PropertyBlock carries per-draw uniform values.
type PropertyBlock struct {
	floats map[string]float32
	vec3s  map[string]math.Vec3
	mat4s  map[string]math.Mat4
}

// NewPropertyBlock returns an empty block.
func NewPropertyBlock() *PropertyBlock {
	return &PropertyBlock{
		floats: make(map[string]float32),
		vec3s:  make(map[string]math.Vec3),
		mat4s:  make(map[string]math.Mat4),
	}
}

// SetFloat sets a float uniform.
func (p *PropertyBlock) SetFloat(name string, v float32) { p.floats[name] = v }

// SetVec3 sets a vec3 uniform.
func (p *PropertyBlock) SetVec3(name string, v math.Vec3) { p.vec3s[name] = v }

// SetMat4 sets a mat4 uniform.
func (p *PropertyBlock) SetMat4(name string, v math.Mat4) { p.mat4s[name] = v }

// Float returns the float property name.
func (p *PropertyBlock) Float(name string) (float32, bool) {
	if p == nil {
		return 0, false
	}
	v, ok := p.floats[name]
	return v, ok
}

// Vec3 returns the vec3 property name.
func (p *PropertyBlock) Vec3(name string) (math.Vec3, bool) {
	if p == nil {
		return math.Vec3{}, false
	}
	v, ok := p.vec3s[name]
	return v, ok
}

// Mat4 returns the mat4 property name.
func (p *PropertyBlock) Mat4(name string) (math.Mat4, bool) {
	if p == nil {
		return math.Mat4{}, false
	}
	v, ok := p.mat4s[name]
	return v, ok
}

// Visit calls the matching callback for every property in name order.
// Nil callbacks skip that kind.
func (p *PropertyBlock) Visit(
	onFloat func(string, float32),
	onVec3 func(string, math.Vec3),
	onMat4 func(string, math.Mat4),
) {
	if p == nil {
		return
	}
	if onFloat != nil {
		for _, k := range slices.Sorted(maps.Keys(p.floats)) {
			onFloat(k, p.floats[k])
		}
	}
	if onVec3 != nil {
		for _, k := range slices.Sorted(maps.Keys(p.vec3s)) {
			onVec3(k, p.vec3s[k])
		}
	}
	if onMat4 != nil {
		for _, k := range slices.Sorted(maps.Keys(p.mat4s)) {
			onMat4(k, p.mat4s[k])
		}
	}
}
