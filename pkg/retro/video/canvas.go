package video

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/cloudretro/retrofront/pkg/retro/core"
)

const (
	ScaleNot              = iota // skips image interpolation
	ScaleNearestNeighbour        // nearest neighbour interpolation
	ScaleBilinear                // bilinear interpolation
)

// Canvas converts raw core frames into RGBA images, the software path for
// consumers without a GL context (headless capture, thumbnails).
type Canvas struct {
	src, out imageCache
	scale    int
}

type imageCache struct {
	image *image.RGBA
	w, h  int
}

func (i *imageCache) get(w, h int) *image.RGBA {
	if i.w == w && i.h == h {
		return i.image
	}
	i.w, i.h = w, h
	i.image = image.NewRGBA(image.Rect(0, 0, w, h))
	return i.image
}

func NewCanvas(scale int) *Canvas { return &Canvas{scale: scale} }

func Resize(scaleType int, src *image.RGBA, out *image.RGBA) {
	switch scaleType {
	case ScaleBilinear:
		draw.ApproxBiLinear.Scale(out, out.Bounds(), src, src.Bounds(), draw.Src, nil)
	case ScaleNot:
		fallthrough
	case ScaleNearestNeighbour:
		fallthrough
	default:
		draw.NearestNeighbor.Scale(out, out.Bounds(), src, src.Bounds(), draw.Src, nil)
	}
}

// Draw converts one frame. Pitch is in pixels; rows may be right-padded
// beyond w. The returned image is reused between calls.
func (c *Canvas) Draw(pf core.PixFmt, data []byte, w, h, pitch, dw, dh int) *image.RGBA {
	src := c.src.get(w, h)
	bpp := int(pf.BPP)
	for y := 0; y < h; y++ {
		row := y * src.Stride
		line := y * pitch * bpp
		for x := 0; x < w; x++ {
			px := pixel(pf, data[line+x*bpp:])
			k := row + x<<2
			src.Pix[k] = byte(px)
			src.Pix[k+1] = byte(px >> 8)
			src.Pix[k+2] = byte(px >> 16)
			src.Pix[k+3] = 0xff
		}
	}
	if w == dw && h == dh {
		return src
	}
	out := c.out.get(dw, dh)
	Resize(c.scale, src, out)
	return out
}

// pixel unpacks one source pixel into 0xAABBGGRR.
func pixel(pf core.PixFmt, b []byte) uint32 {
	switch pf.C {
	case core.RGB565.C:
		px := uint32(b[0]) | uint32(b[1])<<8
		return i565(px)
	case core.RGBA8888Rev.C:
		px := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
		return ix8888(px)
	default: // 0RGB1555
		px := uint32(b[0]) | uint32(b[1])<<8
		return i1555(px)
	}
}

func i565(px uint32) uint32 {
	return ((px >> 8) & 0xf8) | (((px >> 3) & 0xfc) << 8) | (((px << 3) & 0xfc) << 16)
}

func i1555(px uint32) uint32 {
	return ((px >> 7) & 0xf8) | (((px >> 2) & 0xf8) << 8) | (((px << 3) & 0xf8) << 16)
}

func ix8888(px uint32) uint32 {
	return ((px >> 16) & 0xff) | (px & 0xff00) | ((px << 16) & 0xff0000)
}
