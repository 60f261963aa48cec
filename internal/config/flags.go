package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagResolution = flag.Int("resolution", 0, "Ground plane subdivisions per side")
	flagBlades     = flag.Int("blades", -1, "Number of grass blades")
	flagCubes      = flag.Int("cubes", -1, "Cubes per row of the cube grid")
	flagSeed       = flag.Int64("seed", 0, "Grass scatter seed (0 keeps the configured seed)")
	flagNoWatch    = flag.Bool("no-watch", false, "Do not reload the config file on change")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagResolution > 0 {
		cfg.Scene.Plane.Resolution = *flagResolution
	}
	if *flagBlades >= 0 {
		cfg.Scene.Grass.Count = *flagBlades
	}
	if *flagCubes >= 0 {
		cfg.Scene.Cubes.Row = *flagCubes
	}
	if *flagSeed != 0 {
		cfg.Scene.Grass.Seed = *flagSeed
	}
	if *flagNoWatch {
		cfg.HotReload = false
	}
}
