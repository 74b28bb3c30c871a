package retro

import (
	"encoding/binary"
	"sync/atomic"
)

const (
	maxPort  = 4
	dpadAxes = 4

	// libretro joypad button ids go up to R3
	lastKey = 15

	keyPressed  = 1
	keyReleased = 0
)

// InputState is a retropad state cache for all controller ports.
//
// Writers (a UI thread, a network receiver) push packed state with SetInput;
// the emulation thread reads it through State, which fits the input-state
// callback slot. Fields are atomics so the two sides never lock.
type InputState [maxPort]struct {
	keys uint32 // lower 16 bits are the button bitmask
	axes [dpadAxes]int32
}

// SetInput stores the packed state of one player:
//
//	[BTN:2][LX:2][LY:2][RX:2][RY:2] (little-endian, axes optional)
func (s *InputState) SetInput(port int, data []byte) {
	if port < 0 || port >= maxPort || len(data) < 2 {
		return
	}
	atomic.StoreUint32(&s[port].keys, uint32(binary.LittleEndian.Uint16(data)))
	for i := 0; i < dpadAxes && i<<1+3 < len(data); i++ {
		axis := int32(int16(binary.LittleEndian.Uint16(data[i<<1+2:])))
		atomic.StoreInt32(&s[port].axes[i], axis)
	}
}

// Reset releases every button and centers every axis on all ports.
func (s *InputState) Reset() {
	for p := 0; p < maxPort; p++ {
		atomic.StoreUint32(&s[p].keys, 0)
		for a := 0; a < dpadAxes; a++ {
			atomic.StoreInt32(&s[p].axes[a], 0)
		}
	}
}

func (s *InputState) isKeyPressed(port uint, key int) int16 {
	return int16((atomic.LoadUint32(&s[port].keys) >> uint(key)) & 1)
}

func (s *InputState) axis(port uint, axis uint) int16 {
	return int16(atomic.LoadInt32(&s[port].axes[axis]))
}

// State answers an input-state query from the core. It is side-effect-free
// and returns 0 for anything it doesn't track.
func (s *InputState) State(port, device, index, id uint) int16 {
	if port >= maxPort {
		return keyReleased
	}

	if Device(device) == DeviceAnalog {
		if index > 1 || id > 1 {
			return 0
		}
		if v := s.axis(port, index<<1+id); v != 0 {
			return v
		}
	}

	if int(id) > lastKey || index > 0 || Device(device) != DeviceJoypad {
		return keyReleased
	}
	if s.isKeyPressed(port, int(id)) == keyPressed {
		return keyPressed
	}
	return keyReleased
}
