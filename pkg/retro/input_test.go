package retro

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputButtons(t *testing.T) {
	var in InputState

	// press B (bit 0) and START (bit 3) on port 0
	in.SetInput(0, []byte{0b1001, 0})
	assert.EqualValues(t, 1, in.State(0, uint(DeviceJoypad), 0, 0))
	assert.EqualValues(t, 1, in.State(0, uint(DeviceJoypad), 0, 3))
	assert.EqualValues(t, 0, in.State(0, uint(DeviceJoypad), 0, 1))
	// other port untouched
	assert.EqualValues(t, 0, in.State(1, uint(DeviceJoypad), 0, 0))

	in.Reset()
	assert.EqualValues(t, 0, in.State(0, uint(DeviceJoypad), 0, 0))
}

func TestInputAxes(t *testing.T) {
	var in InputState

	// buttons + LX=-32768, LY=32767
	in.SetInput(1, []byte{0, 0, 0x00, 0x80, 0xff, 0x7f})
	assert.EqualValues(t, -32768, in.State(1, uint(DeviceAnalog), 0, 0))
	assert.EqualValues(t, 32767, in.State(1, uint(DeviceAnalog), 0, 1))
	assert.EqualValues(t, 0, in.State(1, uint(DeviceAnalog), 1, 0))
}

func TestInputIgnoresJunk(t *testing.T) {
	var in InputState

	in.SetInput(-1, []byte{1, 0})
	in.SetInput(maxPort, []byte{1, 0})
	in.SetInput(0, []byte{1})

	assert.EqualValues(t, 0, in.State(0, uint(DeviceJoypad), 0, 0))
	assert.EqualValues(t, 0, in.State(maxPort, uint(DeviceJoypad), 0, 0))
	assert.EqualValues(t, 0, in.State(0, uint(DeviceJoypad), 0, lastKey+1))
	assert.EqualValues(t, 0, in.State(0, uint(DeviceMouse), 0, 0))
}

func TestConcurrentInput(t *testing.T) {
	var in InputState

	events := 1000
	var wg sync.WaitGroup
	wg.Add(events * 2)

	go func() {
		for i := 0; i < events; i++ {
			player := rand.Intn(maxPort)
			go func() {
				in.SetInput(player, []byte{0, 1})
				wg.Done()
			}()
		}
	}()
	go func() {
		for i := 0; i < events; i++ {
			player := rand.Intn(maxPort)
			go func() {
				in.State(uint(player), uint(DeviceJoypad), 0, 8)
				wg.Done()
			}()
		}
	}()
	wg.Wait()
}
