// Package game implements the frame loop: drain input, update the view,
// raycast a frame and hand it to the presentation surface.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/voxelspace/internal/engine/camera"
	"github.com/Faultbox/voxelspace/internal/engine/event"
	"github.com/Faultbox/voxelspace/internal/engine/frame"
	"github.com/Faultbox/voxelspace/internal/engine/raycast"
	"github.com/Faultbox/voxelspace/internal/engine/surface"
	"github.com/Faultbox/voxelspace/internal/logger"
)

// Config holds frame loop configuration.
type Config struct {
	Width  int
	Height int
	Params raycast.Params
	View   camera.View // starting view, including command steps
}

// Game owns all per-session mutable state.
type Game struct {
	config    Config
	running   bool
	view      camera.View
	queue     event.Queue
	projector *raycast.Projector
	ctx       *raycast.FrameContext

	surface surface.Surface
	events  event.Source

	// set after a lost/outdated surface; handled before the next frame
	needsReconfigure bool

	frames int
	last   *frame.Frame
	log    *zap.Logger
}

// New creates a game. surf and src may be nil when a host drives the loop
// itself through HandleEvents and RenderFrame.
func New(cfg Config, terrain raycast.Sampler, surf surface.Surface, src event.Source) *Game {
	g := &Game{
		config:    cfg,
		view:      cfg.View,
		projector: raycast.NewProjector(terrain, cfg.Params),
		ctx:       raycast.NewFrameContext(cfg.Width, cfg.Height),
		surface:   surf,
		events:    src,
		log:       logger.Named("game"),
	}

	g.log.Info("game initialized",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("terrain_width", terrain.Width()),
		zap.Int("terrain_height", terrain.Height()),
		zap.Float32("far_distance", cfg.Params.FarDistance),
	)
	return g
}

// View returns a copy of the current view.
func (g *Game) View() camera.View {
	return g.view
}

// Size returns the current screen size.
func (g *Game) Size() (int, int) {
	return g.ctx.Width, g.ctx.Height
}

// Frames returns the number of frames rendered so far.
func (g *Game) Frames() int {
	return g.frames
}

// HandleEvents queues commands and applies resizes. A resize also marks
// the surface for reconfiguration before the next draw. It reports whether
// a quit was requested; events after a quit are ignored.
func (g *Game) HandleEvents(events []event.Event) bool {
	for _, e := range events {
		switch e.Type {
		case event.TypeQuit:
			return true
		case event.TypeResize:
			g.Resize(e.Width, e.Height)
			if g.surface != nil {
				g.needsReconfigure = true
			}
		case event.TypeCommand:
			g.queue.Push(e.Command)
		}
	}
	return false
}

// Resize changes the render size. It must not be called mid-frame.
func (g *Game) Resize(width, height int) {
	if width == g.ctx.Width && height == g.ctx.Height {
		return
	}
	g.ctx.Resize(width, height)
	g.log.Debug("render target resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// RenderFrame applies all queued commands, then sweeps one frame. The
// frame is valid until the next call.
func (g *Game) RenderFrame() *frame.Frame {
	if cmds := g.queue.Drain(); len(cmds) > 0 {
		g.view.ApplyAll(cmds)
		g.log.Debug("view updated",
			zap.Int("commands", len(cmds)),
			zap.Float64("heading", g.view.Heading),
			zap.Float32("x", g.view.Origin.X),
			zap.Float32("y", g.view.Origin.Y),
			zap.Int("eye", g.view.EyeHeight),
		)
	}

	g.ctx.View = g.view
	g.last = g.projector.Render(g.ctx)
	g.frames++
	return g.last
}

// Tick runs one iteration of the loop against the configured surface and
// event source. It reports whether the loop should stop.
func (g *Game) Tick() (bool, error) {
	if g.events != nil && g.HandleEvents(g.events.Poll()) {
		return true, nil
	}

	if g.needsReconfigure {
		width, height, err := g.surface.Reconfigure()
		if err != nil {
			return false, g.handleSurfaceError(err)
		}
		g.needsReconfigure = false
		g.Resize(width, height)
	}

	f := g.RenderFrame()

	if err := g.surface.Draw(f); err != nil {
		return false, g.handleSurfaceError(err)
	}
	if err := g.surface.Present(); err != nil {
		return false, g.handleSurfaceError(err)
	}
	return false, nil
}

// handleSurfaceError decides whether a presentation failure is retried,
// ignored or fatal. A nil return keeps the loop running.
func (g *Game) handleSurfaceError(err error) error {
	switch kind := surface.KindOf(err); kind {
	case surface.Lost, surface.Outdated:
		g.log.Warn("surface needs reconfiguration", zap.Stringer("kind", kind), zap.Error(err))
		g.needsReconfigure = true
		return nil
	case surface.Timeout:
		g.log.Warn("surface timed out, dropping frame", zap.Error(err))
		return nil
	default:
		return fmt.Errorf("frame %d: %w", g.frames, err)
	}
}

// Run loops until a quit event or a fatal surface error.
func (g *Game) Run() error {
	if g.surface == nil || g.events == nil {
		return fmt.Errorf("game: Run needs a surface and an event source")
	}
	g.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting frame loop")

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		quit, err := g.Tick()
		if err != nil {
			return err
		}
		if quit {
			g.running = false
			break
		}

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			fields := []zap.Field{
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
			}
			if g.last != nil {
				fields = append(fields, zap.Int("steps", g.last.Steps), zap.Int("segments", len(g.last.Segments)))
			}
			g.log.Debug("fps", fields...)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	g.log.Info("frame loop stopped", zap.Int("frames", g.frames))
	return nil
}
