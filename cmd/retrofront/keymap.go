package main

import "github.com/veandco/go-sdl2/sdl"

// retropad button bits, ordered per the libretro joypad ids
const (
	padB uint16 = 1 << iota
	padY
	padSelect
	padStart
	padUp
	padDown
	padLeft
	padRight
	padA
	padX
	padL
	padR
)

// keymap is the default keyboard-to-retropad layout.
var keymap = map[sdl.Scancode]uint16{
	sdl.SCANCODE_Z:      padB,
	sdl.SCANCODE_A:      padY,
	sdl.SCANCODE_RSHIFT: padSelect,
	sdl.SCANCODE_RETURN: padStart,
	sdl.SCANCODE_UP:     padUp,
	sdl.SCANCODE_DOWN:   padDown,
	sdl.SCANCODE_LEFT:   padLeft,
	sdl.SCANCODE_RIGHT:  padRight,
	sdl.SCANCODE_X:      padA,
	sdl.SCANCODE_S:      padX,
	sdl.SCANCODE_Q:      padL,
	sdl.SCANCODE_W:      padR,
}
