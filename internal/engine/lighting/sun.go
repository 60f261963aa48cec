// Package lighting describes the directional light shared by the demo shaders.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/pkg/math"
)

// Sun is a directional light given by angles in degrees.
type Sun struct {
	// Azimuth is rotation around Y, 0 pointing along +Z.
	Azimuth float32 `yaml:"azimuth"`
	// Elevation is the angle above the horizon (0-90).
	Elevation float32 `yaml:"elevation"`
	// Ambient is the unlit fraction of the surface color, 0-1.
	Ambient float32 `yaml:"ambient"`
}

// DefaultSun returns a late-morning sun.
func DefaultSun() Sun {
	return Sun{Azimuth: 45, Elevation: 50, Ambient: 0.35}
}

// ToSun returns the unit vector pointing from the scene towards the sun.
func (s Sun) ToSun() math.Vec3 {
	az := s.Azimuth * math.DegToRad
	el := s.Elevation * math.DegToRad
	return math.Vec3{
		X: math32.Cos(el) * math32.Sin(az),
		Y: math32.Sin(el),
		Z: math32.Cos(el) * math32.Cos(az),
	}
}

// Direction returns the direction the light travels, as used by shaders.
func (s Sun) Direction() math.Vec3 {
	return s.ToSun().Scale(-1)
}

// Clamped returns s with elevation in [0,90] and ambient in [0,1].
func (s Sun) Clamped() Sun {
	s.Elevation = min(max(s.Elevation, 0), 90)
	s.Ambient = min(max(s.Ambient, 0), 1)
	return s
}
