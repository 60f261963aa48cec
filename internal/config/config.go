// Package config handles viewer configuration loading and management.
package config

import (
	"github.com/Faultbox/meadow/internal/engine/scene"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    scene.Params   `yaml:",inline"`
	Logging  LoggingConfig  `yaml:"logging"`

	// HotReload re-reads the config file when it changes on disk.
	HotReload bool `yaml:"hot_reload"`

	// Path is the file the config was loaded from, if any.
	Path string `yaml:"-"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`

	ClearColor [3]float32 `yaml:"clear_color,flow"`

	ScreenshotDir string `yaml:"screenshot_dir"`
	// ScreenshotFormat is "png" or "bmp".
	ScreenshotFormat string `yaml:"screenshot_format"`
}

// CameraConfig holds the starting orbit camera.
type CameraConfig struct {
	FOV      float32 `yaml:"fov"` // degrees
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
	Distance float32 `yaml:"distance"`
	Pitch    float32 `yaml:"pitch"` // degrees
	Yaw      float32 `yaml:"yaw"`   // degrees

	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:            1280,
			Height:           720,
			Fullscreen:       false,
			VSync:            true,
			FPSLimit:         0,
			ClearColor:       [3]float32{0.53, 0.70, 0.86},
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Camera: CameraConfig{
			FOV:             60,
			Near:            0.1,
			Far:             500,
			Distance:        30,
			Pitch:           35,
			Yaw:             30,
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.1,
		},
		Scene: scene.DefaultParams(),
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		HotReload: true,
	}
}

// Normalize clamps values the viewer cannot use.
func (c *Config) Normalize() {
	if c.Graphics.Width <= 0 {
		c.Graphics.Width = 1280
	}
	if c.Graphics.Height <= 0 {
		c.Graphics.Height = 720
	}
	c.Graphics.FPSLimit = max(c.Graphics.FPSLimit, 0)
	switch c.Graphics.ScreenshotFormat {
	case "png", "bmp":
	default:
		c.Graphics.ScreenshotFormat = "png"
	}

	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		c.Camera.FOV = 60
	}
	if c.Camera.Near <= 0 {
		c.Camera.Near = 0.1
	}
	if c.Camera.Far <= c.Camera.Near {
		c.Camera.Far = c.Camera.Near * 1000
	}

	c.Scene.Normalize()
}
