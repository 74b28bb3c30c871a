package video

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cloudretro/retrofront/pkg/retro/core"
)

func TestDraw565(t *testing.T) {
	// one red and one blue pixel in RGB565
	data := []byte{0x00, 0xf8, 0x1f, 0x00}
	c := NewCanvas(ScaleNot)

	img := c.Draw(core.RGB565, data, 2, 1, 2, 2, 1)
	assert.EqualValues(t, 0xf8, img.Pix[0]) // R
	assert.EqualValues(t, 0x00, img.Pix[1])
	assert.EqualValues(t, 0x00, img.Pix[2])
	assert.EqualValues(t, 0xff, img.Pix[3]) // A

	assert.EqualValues(t, 0x00, img.Pix[4])
	assert.EqualValues(t, 0xf8, img.Pix[6]) // B
}

func TestDraw8888RevRespectsPitch(t *testing.T) {
	// 1x2 frame packed into 3-pixel rows (right padding)
	data := []byte{
		0xff, 0x00, 0x00, 0x00, 0, 0, 0, 0, 0, 0, 0, 0, // row 0: blue in XRGB
		0x00, 0x00, 0xff, 0x00, 0, 0, 0, 0, 0, 0, 0, 0, // row 1: red in XRGB
	}
	c := NewCanvas(ScaleNot)

	img := c.Draw(core.RGBA8888Rev, data, 1, 2, 3, 1, 2)
	assert.EqualValues(t, 0x00, img.Pix[0])
	assert.EqualValues(t, 0xff, img.Pix[2]) // B
	assert.EqualValues(t, 0xff, img.Pix[img.Stride])   // R
	assert.EqualValues(t, 0x00, img.Pix[img.Stride+2])
}

func TestDraw1555(t *testing.T) {
	// white in 0RGB1555 is 0x7fff
	data := []byte{0xff, 0x7f}
	c := NewCanvas(ScaleNot)

	img := c.Draw(core.RGBA5551, data, 1, 1, 1, 1, 1)
	assert.EqualValues(t, 0xf8, img.Pix[0])
	assert.EqualValues(t, 0xf8, img.Pix[1])
	assert.EqualValues(t, 0xf8, img.Pix[2])
}

func TestDrawScales(t *testing.T) {
	data := []byte{0x00, 0xf8} // single red 565 pixel
	c := NewCanvas(ScaleNearestNeighbour)

	img := c.Draw(core.RGB565, data, 1, 1, 1, 2, 2)
	b := img.Bounds()
	assert.Equal(t, 2, b.Dx())
	assert.Equal(t, 2, b.Dy())
	assert.EqualValues(t, 0xf8, img.Pix[0])
	assert.EqualValues(t, 0xf8, img.Pix[img.Stride+4])
}

func BenchmarkDraw(b *testing.B) {
	tests := []struct {
		name string
		pf   core.PixFmt
		w, h int
	}{
		{name: "565", pf: core.RGB565, w: 256, h: 240},
		{name: "8888rev", pf: core.RGBA8888Rev, w: 256, h: 240},
	}
	for _, bn := range tests {
		data := make([]byte, bn.w*bn.h*int(bn.pf.BPP))
		c := NewCanvas(ScaleNot)
		b.Run(bn.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				c.Draw(bn.pf, data, bn.w, bn.h, bn.w, bn.w, bn.h)
			}
			b.ReportAllocs()
		})
	}
}
