package scene

import (
	"github.com/Faultbox/meadow/internal/engine/grass"
	"github.com/Faultbox/meadow/internal/engine/instance"
	"github.com/Faultbox/meadow/internal/engine/lighting"
	"github.com/Faultbox/meadow/internal/engine/plane"
)

// PlaneParams configures the ground plane.
type PlaneParams struct {
	Enabled      bool `yaml:"enabled"`
	plane.Params `yaml:",inline"`
	Color        [3]float32 `yaml:"color,flow"`
}

// GrassParams configures the blade mesh and its scatter over the plane.
type GrassParams struct {
	Enabled bool `yaml:"enabled"`
	// Count is rounded up to the next square.
	Count     int     `yaml:"count"`
	Jitter    float32 `yaml:"jitter"`
	MinYScale float32 `yaml:"min_y_scale"`
	MaxYScale float32 `yaml:"max_y_scale"`
	Seed      int64   `yaml:"seed"`

	Blade grass.BladeParams `yaml:"blade"`

	RootColor    [3]float32 `yaml:"root_color,flow"`
	TipColor     [3]float32 `yaml:"tip_color,flow"`
	WindStrength float32    `yaml:"wind_strength"`
	WindSpeed    float32    `yaml:"wind_speed"`
}

// CubesParams configures the row x row cube grid.
type CubesParams struct {
	Enabled bool    `yaml:"enabled"`
	Row     int     `yaml:"row"`
	Spacing float32 `yaml:"spacing"`
	// Rotation is Euler angles in degrees applied to every cube.
	Rotation [3]float32 `yaml:"rotation,flow"`
	Scale    float32    `yaml:"scale"`
	// Origin offsets the whole grid.
	Origin [3]float32 `yaml:"origin,flow"`
	Color  [3]float32 `yaml:"color,flow"`
}

// Params is the full scene description.
type Params struct {
	Plane PlaneParams  `yaml:"plane"`
	Grass GrassParams  `yaml:"grass"`
	Cubes CubesParams  `yaml:"cubes"`
	Sun   lighting.Sun `yaml:"sun"`
}

// maxCubeRow keeps Row*Row within instance.MaxCount.
const maxCubeRow = 1 << 12

// DefaultParams returns a 20x20 meadow with 10000 blades and a 10x10 cube grid beside it.
func DefaultParams() Params {
	return Params{
		Plane: PlaneParams{
			Enabled: true,
			Params:  plane.Params{Width: 20, Height: 20, Resolution: 20},
			Color:   [3]float32{0.32, 0.24, 0.16},
		},
		Grass: GrassParams{
			Enabled:      true,
			Count:        10000,
			Jitter:       0.1,
			MinYScale:    0.8,
			MaxYScale:    1.2,
			Seed:         1,
			Blade:        grass.DefaultParams(),
			RootColor:    [3]float32{0.10, 0.32, 0.07},
			TipColor:     [3]float32{0.56, 0.80, 0.30},
			WindStrength: 0.15,
			WindSpeed:    1.5,
		},
		Cubes: CubesParams{
			Enabled:  true,
			Row:      10,
			Spacing:  1,
			Rotation: [3]float32{0, 90, 0},
			Scale:    0.5,
			Origin:   [3]float32{-12, 0.25, 5},
			Color:    [3]float32{0.75, 0.45, 0.30},
		},
		Sun: lighting.DefaultSun(),
	}
}

// Normalize clamps values that the generators cannot use.
func (p *Params) Normalize() {
	p.Plane.Resolution = max(p.Plane.Resolution, 1)
	p.Plane.Width = max(p.Plane.Width, 0)
	p.Plane.Height = max(p.Plane.Height, 0)

	g := &p.Grass
	g.Count = min(max(g.Count, 0), instance.MaxCount)
	g.Jitter = max(g.Jitter, 0)
	if g.MinYScale > g.MaxYScale {
		g.MinYScale, g.MaxYScale = g.MaxYScale, g.MinYScale
	}
	g.Blade.VertexCount = grass.NormalizeVertexCount(g.Blade.VertexCount)

	c := &p.Cubes
	c.Row = min(max(c.Row, 0), maxCubeRow)
	if c.Spacing <= 0 {
		c.Spacing = 1
	}

	p.Sun = p.Sun.Clamped()
}
