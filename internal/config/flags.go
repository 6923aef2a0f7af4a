package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagLegacyWrap = flag.Bool("legacy-wrap", false, "Wrap both map axes against the map height")
	flagSnapshot   = flag.String("snapshot", "", "Render one frame to this PNG file and exit")
	flagCommands   = flag.String("commands", "", "Comma-separated view commands applied before a snapshot (rotl,rotr,left,right,fwd,back,up,down)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SnapshotPath returns the --snapshot output path, empty for interactive mode.
func SnapshotPath() string {
	return *flagSnapshot
}

// Commands returns the raw --commands list.
func Commands() string {
	return *flagCommands
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
	if *flagLegacyWrap {
		cfg.Terrain.LegacyWrap = true
	}
	applyArgs(cfg, flag.Args())
}

// applyArgs takes the color and height map paths from positional arguments.
func applyArgs(cfg *Config, args []string) {
	if len(args) >= 1 {
		cfg.Terrain.ColorMap = args[0]
	}
	if len(args) >= 2 {
		cfg.Terrain.HeightMap = args[1]
	}
}
