package video

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/cloudretro/retrofront/pkg/logger"
	"github.com/cloudretro/retrofront/pkg/retro/core"
)

// FrameFunc receives an uploaded frame: the GL texture handle, the visible
// frame size inside it, and the full texture size.
type FrameFunc func(texID uint32, frameW, frameH, texW, texH int)

// Renderer is a video-refresh sink that copies core frames into a GL
// texture and hands the handle downstream. It must be used on the thread
// owning the GL context.
type Renderer struct {
	texID      uint32
	texW, texH int
	glFmt      uint32
	glType     uint32
	bpp        int
	buf        []byte
	onFrame    FrameFunc
	log        *logger.Logger
}

// NewRenderer allocates a texture big enough for any frame the core may
// produce (max geometry rounded up to powers of two).
func NewRenderer(maxW, maxH int, pf core.PixFmt, onFrame FrameFunc, log *logger.Logger) (*Renderer, error) {
	r := &Renderer{
		texW:    pow2(maxW),
		texH:    pow2(maxH),
		bpp:     int(pf.BPP),
		onFrame: onFrame,
		log:     log,
	}
	switch pf.C {
	case core.RGBA5551.C:
		r.glFmt, r.glType = gl.BGRA, gl.UNSIGNED_SHORT_5_5_5_1
	case core.RGBA8888Rev.C:
		r.glFmt, r.glType = gl.BGRA, gl.UNSIGNED_INT_8_8_8_8_REV
	case core.RGB565.C:
		r.glFmt, r.glType = gl.RGB, gl.UNSIGNED_SHORT_5_6_5
	default:
		return nil, fmt.Errorf("unsupported pixel format: %v", pf)
	}
	r.buf = make([]byte, r.texW*r.texH*r.bpp)

	gl.GenTextures(1, &r.texID)
	gl.BindTexture(gl.TEXTURE_2D, r.texID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(r.texW), int32(r.texH), 0, r.glFmt, r.glType, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	log.Debug().Msgf("GL texture %vx%v (%v)", r.texW, r.texH, pf)
	return r, nil
}

// Refresh fits the video-refresh callback slot. Pitch is in pixels; rows
// wider than the frame are de-pitched into a tight buffer before upload.
func (r *Renderer) Refresh(data []byte, width, height, pitch uint) {
	if data == nil {
		// duplicate frame, the texture is still current
		r.onFrame(r.texID, int(width), int(height), r.texW, r.texH)
		return
	}

	w, h, p := int(width), int(height), int(pitch)
	src := data
	if p != w {
		row := w * r.bpp
		packed := p * r.bpp
		for y := 0; y < h; y++ {
			copy(r.buf[y*row:(y+1)*row], src[y*packed:])
		}
		src = r.buf
	}

	gl.BindTexture(gl.TEXTURE_2D, r.texID)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), r.glFmt, r.glType, gl.Ptr(src))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	r.onFrame(r.texID, w, h, r.texW, r.texH)
}

func (r *Renderer) Texture() uint32 { return r.texID }

func (r *Renderer) Close() {
	if r.texID != 0 {
		gl.DeleteTextures(1, &r.texID)
		r.texID = 0
	}
}

func pow2(v int) int {
	n := 1
	for n < v {
		n <<= 1
	}
	return n
}
