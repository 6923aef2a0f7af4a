// Package main is the entry point for the voxel-space terrain renderer.
//
// Usage:
//
//	voxelspace [flags] <color-map> <height-map>
//
// With --snapshot the renderer applies --commands, writes one frame to a
// PNG file and exits without opening a window.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/voxelspace/internal/config"
	"github.com/Faultbox/voxelspace/internal/engine/debug"
	"github.com/Faultbox/voxelspace/internal/engine/input"
	"github.com/Faultbox/voxelspace/internal/engine/renderer"
	"github.com/Faultbox/voxelspace/internal/engine/terrain"
	"github.com/Faultbox/voxelspace/internal/engine/window"
	"github.com/Faultbox/voxelspace/internal/game"
	"github.com/Faultbox/voxelspace/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		fmt.Fprintln(os.Stderr, "usage: voxelspace [flags] <color-map> <height-map>")
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== Voxel Space ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	store, err := game.LoadTerrain(cfg)
	if err != nil {
		logger.Error("failed to load terrain", zap.Error(err))
		return 1
	}

	if path := config.SnapshotPath(); path != "" {
		return snapshot(cfg, store, path)
	}

	win, err := window.New(window.Config{
		Title:      "Voxel Space",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		logger.Error("failed to create window", zap.Error(err))
		return 1
	}
	defer win.Close()

	r, err := renderer.New(renderer.Config{
		Sky:            cfg.SkyRGBA(),
		PresentTimeout: cfg.Graphics.PresentTimeout,
	}, win)
	if err != nil {
		logger.Error("failed to create renderer", zap.Error(err))
		return 1
	}
	defer r.Close()

	// The window may open at a different size than requested (fullscreen,
	// tiling window managers), so start from what the surface reports.
	gcfg := game.ConfigFrom(cfg)
	if w, h, err := r.Reconfigure(); err == nil {
		gcfg.Width, gcfg.Height = w, h
	}

	g := game.New(gcfg, store, r, input.New())
	if err := g.Run(); err != nil {
		logger.Error("render loop failed", zap.Error(err))
		return 1
	}

	logger.Info("renderer closed normally", zap.Int("frames", g.Frames()))
	return 0
}

func snapshot(cfg *config.Config, store *terrain.Store, path string) int {
	f, err := game.Snapshot(game.ConfigFrom(cfg), store, config.Commands())
	if err != nil {
		logger.Error("snapshot failed", zap.Error(err))
		return 1
	}
	if err := debug.SaveFrame(path, f, cfg.SkyRGBA()); err != nil {
		logger.Error("failed to write snapshot", zap.String("path", path), zap.Error(err))
		return 1
	}
	logger.Info("snapshot written", zap.String("path", path))
	return 0
}
