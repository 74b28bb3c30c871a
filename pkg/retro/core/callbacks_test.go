package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallbacksDefaults(t *testing.T) {
	cb := NewCallbacks()

	// none of these should panic and the typed ones return neutral values
	cb.VideoRefresh([]byte{0, 0}, 1, 1, 1)
	cb.AudioSample(1, -1)
	cb.InputPoll()

	assert.Equal(t, 4, cb.AudioSampleBatch(make([]int16, 8), 4))
	assert.EqualValues(t, 0, cb.InputState(0, 1, 0, 0))
	assert.False(t, cb.Environment(0xffff, nil))
}

func TestCallbacksDispatch(t *testing.T) {
	cb := NewCallbacks()

	var gotW, gotH, gotPitch uint
	cb.SetVideoRefresh(func(_ []byte, w, h, pitch uint) { gotW, gotH, gotPitch = w, h, pitch })
	cb.VideoRefresh(nil, 320, 240, 512)
	assert.EqualValues(t, 320, gotW)
	assert.EqualValues(t, 240, gotH)
	assert.EqualValues(t, 512, gotPitch)

	var l, r int16
	cb.SetAudioSample(func(left, right int16) { l, r = left, right })
	cb.AudioSample(-32768, 32767)
	assert.EqualValues(t, -32768, l)
	assert.EqualValues(t, 32767, r)

	cb.SetAudioSampleBatch(func(_ []int16, frames int) int { return frames / 2 })
	assert.Equal(t, 2, cb.AudioSampleBatch(make([]int16, 8), 4))

	polled := 0
	cb.SetInputPoll(func() { polled++ })
	cb.InputPoll()
	cb.InputPoll()
	assert.Equal(t, 2, polled)

	cb.SetInputState(func(port, device, index, id uint) int16 {
		if port == 0 && device == 1 && id == 8 {
			return 1
		}
		return 0
	})
	assert.EqualValues(t, 1, cb.InputState(0, 1, 0, 8))
	assert.EqualValues(t, 0, cb.InputState(1, 1, 0, 8))
}

func TestCallbacksNilRestoresDefault(t *testing.T) {
	cb := NewCallbacks()

	cb.SetInputState(func(uint, uint, uint, uint) int16 { return 7 })
	assert.EqualValues(t, 7, cb.InputState(0, 0, 0, 0))

	cb.SetInputState(nil)
	assert.EqualValues(t, 0, cb.InputState(0, 0, 0, 0))

	cb.SetAudioSampleBatch(nil)
	assert.Equal(t, 3, cb.AudioSampleBatch(make([]int16, 6), 3))

	cb.SetEnvironment(nil)
	assert.False(t, cb.Environment(10, nil))
}
