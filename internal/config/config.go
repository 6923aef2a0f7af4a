// Package config handles renderer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/Faultbox/voxelspace/internal/engine/camera"
	"github.com/Faultbox/voxelspace/internal/engine/raycast"
	"github.com/Faultbox/voxelspace/internal/engine/terrain"
	"github.com/Faultbox/voxelspace/pkg/math"
)

// Config holds all renderer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Render   RenderConfig   `yaml:"render"`
	Camera   CameraConfig   `yaml:"camera"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width          int           `yaml:"width"`
	Height         int           `yaml:"height"`
	Fullscreen     bool          `yaml:"fullscreen"`
	VSync          bool          `yaml:"vsync"`
	PresentTimeout time.Duration `yaml:"present_timeout"`
}

// TerrainConfig holds the map pair to load.
type TerrainConfig struct {
	ColorMap   string `yaml:"color_map"`
	HeightMap  string `yaml:"height_map"`
	LegacyWrap bool   `yaml:"legacy_wrap"`
}

// RenderConfig holds projection constants.
type RenderConfig struct {
	FarDistance     float32 `yaml:"far_distance"`
	ProjectionScale float32 `yaml:"projection_scale"`
	StepIncrement   float32 `yaml:"step_increment"`
	MinY            float32 `yaml:"min_y"`
	Horizon         float32 `yaml:"horizon"`
	SkyColor        string  `yaml:"sky_color"` // hex, "#rrggbb"
}

// CameraConfig holds the starting view and command step sizes.
type CameraConfig struct {
	Heading    float64 `yaml:"heading"`
	OriginX    float32 `yaml:"origin_x"`
	OriginY    float32 `yaml:"origin_y"`
	EyeHeight  int     `yaml:"eye_height"`
	RotateStep float64 `yaml:"rotate_step"`
	PanStep    float32 `yaml:"pan_step"`
	EyeStep    int     `yaml:"eye_step"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	params := raycast.DefaultParams()
	steps := camera.DefaultSteps()
	return &Config{
		Graphics: GraphicsConfig{
			Width:          700,
			Height:         512,
			Fullscreen:     false,
			VSync:          true,
			PresentTimeout: 250 * time.Millisecond,
		},
		Terrain: TerrainConfig{
			LegacyWrap: false,
		},
		Render: RenderConfig{
			FarDistance:     params.FarDistance,
			ProjectionScale: params.ProjectionScale,
			StepIncrement:   params.StepIncrement,
			MinY:            params.MinY,
			Horizon:         params.Horizon,
			SkyColor:        "#00ffff",
		},
		Camera: CameraConfig{
			EyeHeight:  100,
			RotateStep: steps.Rotate,
			PanStep:    steps.Pan,
			EyeStep:    steps.Eye,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every setting that would prevent the renderer from
// starting.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size must be positive, got %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Terrain.ColorMap == "" {
		errs = append(errs, errors.New("terrain: color_map is required"))
	}
	if c.Terrain.HeightMap == "" {
		errs = append(errs, errors.New("terrain: height_map is required"))
	}
	if err := c.RaycastParams().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("render: %w", err))
	}
	if _, err := ParseColor(c.Render.SkyColor); err != nil {
		errs = append(errs, fmt.Errorf("render: sky_color: %w", err))
	}
	return errors.Join(errs...)
}

// RaycastParams returns the projection constants.
func (c *Config) RaycastParams() raycast.Params {
	return raycast.Params{
		FarDistance:     c.Render.FarDistance,
		ProjectionScale: c.Render.ProjectionScale,
		StepIncrement:   c.Render.StepIncrement,
		MinY:            c.Render.MinY,
		Horizon:         c.Render.Horizon,
	}
}

// View returns the starting camera view.
func (c *Config) View() *camera.View {
	v := camera.New(math.Vec2{X: c.Camera.OriginX, Y: c.Camera.OriginY}, c.Camera.Heading, c.Camera.EyeHeight)
	v.Steps = camera.Steps{
		Rotate: c.Camera.RotateStep,
		Pan:    c.Camera.PanStep,
		Eye:    c.Camera.EyeStep,
	}
	return v
}

// TerrainOptions returns the store options for the configured wrap mode.
func (c *Config) TerrainOptions() []terrain.Option {
	if c.Terrain.LegacyWrap {
		return []terrain.Option{terrain.WithLegacyWrap()}
	}
	return nil
}

// SkyRGBA returns the clear color, falling back to cyan when the setting
// does not parse.
func (c *Config) SkyRGBA() color.RGBA {
	sky, err := ParseColor(c.Render.SkyColor)
	if err != nil {
		return color.RGBA{G: 255, B: 255, A: 255}
	}
	return sky
}

// ParseColor parses "#rrggbb" or "rrggbb" into an opaque color.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("want #rrggbb, got %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("want #rrggbb, got %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
