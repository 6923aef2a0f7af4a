//go:build ebiten

// Package main runs the voxel-space renderer on ebiten.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/voxelspace/internal/config"
	"github.com/Faultbox/voxelspace/internal/engine/ebitenhost"
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
		fmt.Fprintln(os.Stderr, "usage: voxelspace-ebiten [flags] <color-map> <height-map>")
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	store, err := game.LoadTerrain(cfg)
	if err != nil {
		logger.Error("failed to load terrain", zap.Error(err))
		return 1
	}

	g := game.New(game.ConfigFrom(cfg), store, nil, nil)
	host := ebitenhost.New(g, cfg.SkyRGBA())
	if err := host.Run("Voxel Space", cfg.Graphics.Width, cfg.Graphics.Height); err != nil {
		logger.Error("ebiten host failed", zap.Error(err))
		return 1
	}
	return 0
}
