// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// InstancedVertexShader transforms meshes by per-instance matrices.
//
//go:embed instanced.vert
var InstancedVertexShader string

// LitFragmentShader shades with a single directional light.
//
//go:embed lit.frag
var LitFragmentShader string

// GrassVertexShader is the instanced vertex shader with wind sway.
//
//go:embed grass.vert
var GrassVertexShader string

// GrassFragmentShader blends root and tip colors along the blade.
//
//go:embed grass.frag
var GrassFragmentShader string
