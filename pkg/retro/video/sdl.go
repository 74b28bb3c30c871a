package video

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/veandco/go-sdl2/sdl"
)

// SDL owns the window and the GL context frames are presented into.
type SDL struct {
	w   *sdl.Window
	ctx sdl.GLContext
}

type WindowConfig struct {
	Title  string
	W, H   int
	Hidden bool
}

// NewSDLContext opens a window, creates a compatibility-profile GL context
// on it, and binds go-gl to that context.
func NewSDLContext(cfg WindowConfig) (*SDL, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	if err := sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_COMPATIBILITY); err != nil {
		return nil, fmt.Errorf("gl attrs: %w", err)
	}

	flags := uint32(sdl.WINDOW_OPENGL)
	if cfg.Hidden {
		flags |= sdl.WINDOW_HIDDEN
	}
	if cfg.Title == "" {
		cfg.Title = "retrofront"
	}
	w, err := sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.W), int32(cfg.H), flags)
	if err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}

	ctx, err := w.GLCreateContext()
	if err != nil {
		err1 := w.Destroy()
		return nil, fmt.Errorf("gl context: %w, destroy err: %v", err, err1)
	}
	if err = w.GLMakeCurrent(ctx); err != nil {
		return nil, fmt.Errorf("gl bind: %w", err)
	}

	if err = gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)

	return &SDL{w: w, ctx: ctx}, nil
}

func (s *SDL) BindContext() error { return s.w.GLMakeCurrent(s.ctx) }
func (s *SDL) Swap()              { s.w.GLSwap() }

func (s *SDL) Deinit() error {
	sdl.GLDeleteContext(s.ctx)
	err := s.w.Destroy()
	sdl.Quit()
	return err
}

// TryInit probes whether a video driver is available at all.
func TryInit() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}
	sdl.Quit()
	return nil
}
