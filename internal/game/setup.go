package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/voxelspace/internal/config"
	"github.com/Faultbox/voxelspace/internal/engine/camera"
	"github.com/Faultbox/voxelspace/internal/engine/event"
	"github.com/Faultbox/voxelspace/internal/engine/frame"
	"github.com/Faultbox/voxelspace/internal/engine/terrain"
	"github.com/Faultbox/voxelspace/internal/logger"
)

// ConfigFrom derives the frame loop configuration from user settings.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
		Params: cfg.RaycastParams(),
		View:   *cfg.View(),
	}
}

// LoadTerrain loads the configured color and height maps.
func LoadTerrain(cfg *config.Config) (*terrain.Store, error) {
	store, err := terrain.LoadFiles(cfg.Terrain.ColorMap, cfg.Terrain.HeightMap, cfg.TerrainOptions()...)
	if err != nil {
		return nil, fmt.Errorf("loading terrain: %w", err)
	}
	return store, nil
}

// Snapshot applies a scripted command list and renders a single frame
// without a window.
func Snapshot(cfg Config, s *terrain.Store, commands string) (*frame.Frame, error) {
	cmds, err := camera.ParseCommands(commands)
	if err != nil {
		return nil, err
	}

	g := New(cfg, s, nil, nil)
	g.HandleEvents(event.NewScript(cmds, false).Poll())
	f := g.RenderFrame()

	v := g.View()
	logger.Info("snapshot rendered",
		zap.Int("commands", len(cmds)),
		zap.Float64("heading", v.Heading),
		zap.Float32("x", v.Origin.X),
		zap.Float32("y", v.Origin.Y),
		zap.Int("eye", v.EyeHeight),
		zap.Int("steps", f.Steps),
		zap.Int("segments", len(f.Segments)),
	)
	return f, nil
}
