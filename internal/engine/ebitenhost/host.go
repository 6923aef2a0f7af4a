//go:build ebiten

package ebitenhost

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/Faultbox/voxelspace/internal/engine/camera"
	"github.com/Faultbox/voxelspace/internal/engine/event"
	"github.com/Faultbox/voxelspace/internal/game"
	"github.com/Faultbox/voxelspace/internal/logger"
)

// Held keys repeat after repeatDelay ticks, then every repeatInterval ticks.
const (
	repeatDelay    = 15
	repeatInterval = 3
)

var keymap = []struct {
	key ebiten.Key
	cmd camera.Command
}{
	{ebiten.KeyA, camera.RotateLeft},
	{ebiten.KeyD, camera.RotateRight},
	{ebiten.KeyArrowLeft, camera.PanLeft},
	{ebiten.KeyArrowRight, camera.PanRight},
	{ebiten.KeyArrowUp, camera.PanForward},
	{ebiten.KeyArrowDown, camera.PanBack},
	{ebiten.KeyW, camera.RaiseEye},
	{ebiten.KeyS, camera.LowerEye},
}

// Host adapts a game to the ebiten.Game interface. Frames are rasterized
// on the CPU and uploaded with WritePixels.
type Host struct {
	game *game.Game
	sky  color.RGBA
	img  *image.RGBA

	events []event.Event
	log    *zap.Logger
}

// New wraps g. g must have been created without a surface or event source.
func New(g *game.Game, sky color.RGBA) *Host {
	return &Host{
		game: g,
		sky:  sky,
		log:  logger.Named("ebiten"),
	}
}

// Run opens the window and blocks until it is closed.
func (h *Host) Run(title string, width, height int) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	h.log.Info("starting ebiten host", zap.Int("width", width), zap.Int("height", height))
	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	h.log.Info("ebiten host stopped", zap.Int("frames", h.game.Frames()))
	return nil
}

// Update turns key state into view commands.
func (h *Host) Update() error {
	h.events = h.events[:0]
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.events = append(h.events, event.Quit())
	}
	for _, k := range keymap {
		if repeating(inpututil.KeyPressDuration(k.key)) {
			h.events = append(h.events, event.Command(k.cmd))
		}
	}

	if h.game.HandleEvents(h.events) {
		return ebiten.Termination
	}
	return nil
}

func repeating(d int) bool {
	return d == 1 || (d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0)
}

// Draw renders a frame and copies it to the screen.
func (h *Host) Draw(screen *ebiten.Image) {
	f := h.game.RenderFrame()
	if f.Width <= 0 || f.Height <= 0 {
		return
	}

	if h.img == nil || h.img.Rect.Dx() != f.Width || h.img.Rect.Dy() != f.Height {
		h.img = image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	}
	f.RasterizeInto(h.img, h.sky)

	if b := screen.Bounds(); b.Dx() != f.Width || b.Dy() != f.Height {
		return
	}
	screen.WritePixels(h.img.Pix)
}

// Layout renders at the window's logical size.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.game.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
