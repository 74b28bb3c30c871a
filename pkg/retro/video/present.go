package video

import "github.com/go-gl/gl/v2.1/gl"

// Presenter draws an uploaded frame texture onto the current GL context
// as a screen-filling quad, optionally through a compiled shader program.
type Presenter struct {
	winW, winH int
	program    uint32
	rotation   uint
}

func NewPresenter(winW, winH int, program uint32) *Presenter {
	return &Presenter{winW: winW, winH: winH, program: program}
}

func (p *Presenter) SetSize(w, h int)     { p.winW, p.winH = w, h }
func (p *Presenter) SetRotation(deg uint) { p.rotation = deg }

// Present fits the renderer's FrameFunc slot.
func (p *Presenter) Present(texID uint32, frameW, frameH, texW, texH int) {
	gl.Viewport(0, 0, int32(p.winW), int32(p.winH))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(0, 1, 1, 0, -1, 1)
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()
	if p.rotation != 0 {
		gl.Translatef(0.5, 0.5, 0)
		gl.Rotatef(float32(p.rotation), 0, 0, 1)
		gl.Translatef(-0.5, -0.5, 0)
	}

	if p.program != 0 {
		gl.UseProgram(p.program)
	}

	// the visible frame occupies only a corner of the pow2 texture
	u := float32(frameW) / float32(texW)
	v := float32(frameH) / float32(texH)

	gl.Enable(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.Begin(gl.QUADS)
	gl.TexCoord2f(0, 0)
	gl.Vertex2f(0, 0)
	gl.TexCoord2f(u, 0)
	gl.Vertex2f(1, 0)
	gl.TexCoord2f(u, v)
	gl.Vertex2f(1, 1)
	gl.TexCoord2f(0, v)
	gl.Vertex2f(0, 1)
	gl.End()
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.TEXTURE_2D)

	if p.program != 0 {
		gl.UseProgram(0)
	}
}
