// Package renderer draws voxel-space frames with OpenGL as vertical line
// segments and implements surface.Surface.
package renderer

import (
	"errors"
	"fmt"
	"image/color"
	"time"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/voxelspace/internal/engine/frame"
	"github.com/Faultbox/voxelspace/internal/engine/shader"
	"github.com/Faultbox/voxelspace/internal/engine/surface"
	"github.com/Faultbox/voxelspace/internal/logger"
	"github.com/Faultbox/voxelspace/pkg/math"
)

const vertexShaderSource = `
#version 410 core

layout (location = 0) in vec2 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uProjection;

out vec3 vertexColor;

void main() {
	// Pixel centres, so a column at x lands on exactly one pixel.
	gl_Position = uProjection * vec4(aPos.x + 0.5, aPos.y, 0.0, 1.0);
	vertexColor = aColor;
}
`

const fragmentShaderSource = `
#version 410 core

in vec3 vertexColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(vertexColor, 1.0);
}
`

// Window is the part of the host window the renderer needs.
type Window interface {
	SwapBuffers()
	Size() (int, int)
	DrawableSize() (int, int)
	Minimized() bool
}

// Config holds renderer configuration.
type Config struct {
	Sky            color.RGBA
	PresentTimeout time.Duration // 0 disables the check
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	window Window
	log    *zap.Logger

	program *shader.Program
	vao     uint32
	vbo     uint32
	vboSize int // bytes allocated for vbo

	vertices []float32 // reused upload buffer
	projW    int
	projH    int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, win Window) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		window: win,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	// Segments are drawn front to back with occlusion already resolved, so
	// no depth test or blending is needed.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.ClearColor(
		float32(cfg.Sky.R)/255,
		float32(cfg.Sky.G)/255,
		float32(cfg.Sky.B)/255,
		1.0,
	)

	var err error
	r.program, err = shader.New(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.createBuffers()

	width, height := win.DrawableSize()
	gl.Viewport(0, 0, int32(width), int32(height))

	return r, nil
}

// createBuffers sets up the line VAO: vec2 position then vec3 color.
func (r *Renderer) createBuffers() {
	const stride = frame.FloatsPerVertex * 4

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(2*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.log.Debug("line buffers created",
		zap.Uint32("vao", r.vao),
		zap.Uint32("vbo", r.vbo),
	)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Draw clears to the sky color and uploads the frame as one line batch.
func (r *Renderer) Draw(f *frame.Frame) error {
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if f.Width <= 0 || f.Height <= 0 {
		return &surface.Error{Kind: surface.Outdated, Op: "draw"}
	}

	r.program.Use()
	if f.Width != r.projW || f.Height != r.projH {
		proj := math.ScreenOrtho(f.Width, f.Height)
		r.program.SetMat4("uProjection", proj.Ptr())
		r.projW, r.projH = f.Width, f.Height
	}

	r.vertices = f.Vertices(r.vertices[:0])
	if len(r.vertices) > 0 {
		gl.BindVertexArray(r.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

		size := len(r.vertices) * 4
		if size > r.vboSize {
			gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&r.vertices[0]), gl.STREAM_DRAW)
			r.vboSize = size
		} else {
			gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&r.vertices[0]))
		}

		gl.DrawArrays(gl.LINES, 0, int32(f.VertexCount()))

		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
		gl.BindVertexArray(0)
	}

	return checkError("draw")
}

// Present swaps buffers.
func (r *Renderer) Present() error {
	if r.window.Minimized() {
		return &surface.Error{Kind: surface.Outdated, Op: "present", Err: errors.New("window minimized")}
	}
	if w, h := r.window.DrawableSize(); w == 0 || h == 0 {
		return &surface.Error{Kind: surface.Outdated, Op: "present", Err: errors.New("zero-sized drawable")}
	}

	start := time.Now()
	r.window.SwapBuffers()
	if elapsed := time.Since(start); r.config.PresentTimeout > 0 && elapsed > r.config.PresentTimeout {
		return &surface.Error{
			Kind: surface.Timeout,
			Op:   "present",
			Err:  fmt.Errorf("swap took %v, limit %v", elapsed, r.config.PresentTimeout),
		}
	}
	return checkError("present")
}

// Reconfigure matches the viewport to the window and returns the logical
// render size.
func (r *Renderer) Reconfigure() (int, int, error) {
	dw, dh := r.window.DrawableSize()
	if dw == 0 || dh == 0 || r.window.Minimized() {
		return 0, 0, &surface.Error{Kind: surface.Outdated, Op: "reconfigure"}
	}
	gl.Viewport(0, 0, int32(dw), int32(dh))

	width, height := r.window.Size()
	r.log.Debug("surface reconfigured",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("drawable_width", dw),
		zap.Int("drawable_height", dh),
	)
	return width, height, checkError("reconfigure")
}

// checkError drains the GL error queue. GL_OUT_OF_MEMORY wins over other
// codes; any other code is returned as an unclassified error.
func checkError(op string) error {
	var codes []uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		codes = append(codes, code)
	}
	if len(codes) == 0 {
		return nil
	}
	for _, code := range codes {
		if code == gl.OUT_OF_MEMORY {
			return &surface.Error{Kind: surface.OutOfMemory, Op: op}
		}
	}
	return fmt.Errorf("gl %s: error 0x%04x", op, codes[0])
}

var _ surface.Surface = (*Renderer)(nil)
