// Package scene wires the plane, grass and cube demos into one scene that
// renders through a renderer.Renderer.
package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/grass"
	"github.com/Faultbox/meadow/internal/engine/lighting"
	"github.com/Faultbox/meadow/internal/engine/renderer"
	"github.com/Faultbox/meadow/internal/logger"
	"github.com/Faultbox/meadow/pkg/math"
)

// FrameContext is the per-frame state handed to every component.
type FrameContext struct {
	ViewProj math.Mat4
	// Time is seconds since start; Delta is seconds since the last frame.
	Time  float32
	Delta float32
	Sun   lighting.Sun
}

// Scene owns the enabled components. Disabled components are nil.
type Scene struct {
	r      renderer.Renderer
	params Params

	Plane *Plane
	Grass *Grass
	Cubes *Cubes

	lastErr string
}

// New creates a scene for p. Nothing touches the renderer until Setup.
func New(p Params) *Scene {
	p.Normalize()
	return &Scene{params: p}
}

// Params returns the parameters currently applied.
func (s *Scene) Params() Params {
	return s.params
}

// Setup creates and sets up every enabled component.
func (s *Scene) Setup(r renderer.Renderer) error {
	if r == nil {
		return errors.New("scene: no renderer")
	}
	s.r = r
	if err := s.apply(s.params, true); err != nil {
		s.Close()
		return err
	}
	logger.Info("scene ready",
		zap.Bool("plane", s.Plane != nil),
		zap.Bool("grass", s.Grass != nil),
		zap.Bool("cubes", s.Cubes != nil),
	)
	return nil
}

// ParametersChanged applies new parameters, enabling, disabling or
// rebuilding components as needed.
func (s *Scene) ParametersChanged(p Params) error {
	p.Normalize()
	if s.r == nil {
		s.params = p
		return nil
	}
	return s.apply(p, false)
}

func (s *Scene) apply(p Params, initial bool) error {
	prev := s.params
	s.params = p

	// plane first: grass scatters over its dimensions
	planeResized := false
	switch {
	case !p.Plane.Enabled:
		if s.Plane != nil {
			s.Plane.Close()
			s.Plane = nil
		}
	case s.Plane == nil:
		s.Plane = NewPlane(p.Plane)
		if err := s.Plane.Setup(s.r); err != nil {
			return fmt.Errorf("plane: %w", err)
		}
		planeResized = true
	default:
		changed, err := s.Plane.ParametersChanged(p.Plane)
		if err != nil {
			return fmt.Errorf("plane: %w", err)
		}
		planeResized = changed
	}
	field := math.Vec2{X: p.Plane.Width, Y: p.Plane.Height}

	switch {
	case !p.Grass.Enabled:
		if s.Grass != nil {
			s.Grass.Close()
			s.Grass = nil
		}
	case s.Grass == nil:
		s.Grass = NewGrass(p.Grass, field)
		if err := s.Grass.Setup(s.r); err != nil {
			return fmt.Errorf("grass: %w", err)
		}
	case initial || !grassEqual(prev.Grass, p.Grass):
		if err := s.Grass.SetField(field); err != nil {
			return fmt.Errorf("grass: %w", err)
		}
		if err := s.Grass.ParametersChanged(p.Grass); err != nil {
			return fmt.Errorf("grass: %w", err)
		}
	case planeResized:
		if err := s.Grass.SetField(field); err != nil {
			return fmt.Errorf("grass: %w", err)
		}
	}

	switch {
	case !p.Cubes.Enabled:
		if s.Cubes != nil {
			s.Cubes.Close()
			s.Cubes = nil
		}
	case s.Cubes == nil:
		s.Cubes = NewCubes(p.Cubes)
		if err := s.Cubes.Setup(s.r); err != nil {
			return fmt.Errorf("cubes: %w", err)
		}
	case initial || prev.Cubes != p.Cubes:
		if err := s.Cubes.ParametersChanged(p.Cubes); err != nil {
			return fmt.Errorf("cubes: %w", err)
		}
	}
	return nil
}

// grassEqual compares parameters, including curve keys.
func grassEqual(a, b GrassParams) bool {
	ab, bb := a.Blade, b.Blade
	a.Blade, b.Blade = grass.BladeParams{}, grass.BladeParams{}
	if a != b {
		return false
	}
	return ab.VertexCount == bb.VertexCount &&
		ab.Height == bb.Height &&
		ab.Width.Equal(bb.Width) &&
		ab.Shape.Forward.Equal(bb.Shape.Forward) &&
		ab.Shape.Height.Equal(bb.Shape.Height)
}

// Render draws every enabled component. A failing draw is logged once per
// distinct error and does not stop the others.
func (s *Scene) Render(frame FrameContext) error {
	frame.Sun = s.params.Sun
	var errs []error
	if s.Plane != nil {
		errs = append(errs, s.Plane.Render(frame))
	}
	if s.Grass != nil {
		errs = append(errs, s.Grass.Render(frame))
	}
	if s.Cubes != nil {
		errs = append(errs, s.Cubes.Render(frame))
	}

	err := errors.Join(errs...)
	if err != nil && err.Error() != s.lastErr {
		logger.Warn("draw failed", zap.Error(err))
	}
	if err == nil {
		s.lastErr = ""
	} else {
		s.lastErr = err.Error()
	}
	return err
}

// Close releases every component. Safe to call more than once.
func (s *Scene) Close() {
	if s.Plane != nil {
		s.Plane.Close()
		s.Plane = nil
	}
	if s.Grass != nil {
		s.Grass.Close()
		s.Grass = nil
	}
	if s.Cubes != nil {
		s.Cubes.Close()
		s.Cubes = nil
	}
}
