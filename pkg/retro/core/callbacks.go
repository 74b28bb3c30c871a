package core

import "unsafe"

// Callback signatures of the libretro frontend ABI.
//
// A loaded core pushes video, audio, and input polls back into the frontend
// through these on its own schedule, always synchronously inside a call
// into the core (usually Run). Buffers handed to the callbacks are borrowed
// views into core-owned memory and are valid only for the duration of the
// call; copy them out if they need to outlive it.
type (
	// VideoRefreshFunc receives a frame. Pitch is in pixels. Data is nil
	// when the core signals a duplicate of the previous frame.
	VideoRefreshFunc func(data []byte, width, height, pitch uint)
	// AudioSampleFunc receives a single stereo frame.
	AudioSampleFunc func(left, right int16)
	// AudioSampleBatchFunc receives interleaved L/R int16 pairs and returns
	// the number of frames consumed.
	AudioSampleBatchFunc func(samples []int16, frames int) int
	// InputPollFunc signals "read the input sources now". It must not query
	// state itself; state is read through InputStateFunc.
	InputPollFunc func()
	// InputStateFunc reports a device state. It may be called many times
	// per frame with the same arguments and must be side-effect-free.
	// Analog axes return the signed 16-bit range, digital buttons 0/1,
	// unknown ids 0.
	InputStateFunc func(port, device, index, id uint) int16
	// EnvironmentFunc is the extensibility hook for commands the frontend
	// does not handle itself. Return false for unknown commands.
	EnvironmentFunc func(cmd uint, data unsafe.Pointer) bool
)

// Callbacks routes core-initiated calls to user-supplied functions.
//
// Every slot holds a trivial default from construction on, since a core may
// invoke any of them at any time during Run and an empty slot is undefined
// behavior down the stack. Passing nil to a setter restores the default.
type Callbacks struct {
	videoRefresh     VideoRefreshFunc
	audioSample      AudioSampleFunc
	audioSampleBatch AudioSampleBatchFunc
	inputPoll        InputPollFunc
	inputState       InputStateFunc
	environment      EnvironmentFunc
}

var (
	noVideo       = func([]byte, uint, uint, uint) {}
	noAudio       = func(int16, int16) {}
	noAudioBatch  = func(_ []int16, frames int) int { return frames }
	noInputPoll   = func() {}
	noInputState  = func(uint, uint, uint, uint) int16 { return 0 }
	noEnvironment = func(uint, unsafe.Pointer) bool { return false }
)

func NewCallbacks() *Callbacks {
	return &Callbacks{
		videoRefresh:     noVideo,
		audioSample:      noAudio,
		audioSampleBatch: noAudioBatch,
		inputPoll:        noInputPoll,
		inputState:       noInputState,
		environment:      noEnvironment,
	}
}

func (c *Callbacks) SetVideoRefresh(f VideoRefreshFunc) {
	if f == nil {
		f = noVideo
	}
	c.videoRefresh = f
}

func (c *Callbacks) SetAudioSample(f AudioSampleFunc) {
	if f == nil {
		f = noAudio
	}
	c.audioSample = f
}

func (c *Callbacks) SetAudioSampleBatch(f AudioSampleBatchFunc) {
	if f == nil {
		f = noAudioBatch
	}
	c.audioSampleBatch = f
}

func (c *Callbacks) SetInputPoll(f InputPollFunc) {
	if f == nil {
		f = noInputPoll
	}
	c.inputPoll = f
}

func (c *Callbacks) SetInputState(f InputStateFunc) {
	if f == nil {
		f = noInputState
	}
	c.inputState = f
}

func (c *Callbacks) SetEnvironment(f EnvironmentFunc) {
	if f == nil {
		f = noEnvironment
	}
	c.environment = f
}

// VideoRefresh invokes the video slot.
func (c *Callbacks) VideoRefresh(data []byte, width, height, pitch uint) {
	c.videoRefresh(data, width, height, pitch)
}

// AudioSample invokes the single-sample audio slot.
func (c *Callbacks) AudioSample(left, right int16) { c.audioSample(left, right) }

// AudioSampleBatch invokes the bulk audio slot.
func (c *Callbacks) AudioSampleBatch(samples []int16, frames int) int {
	return c.audioSampleBatch(samples, frames)
}

// InputPoll invokes the input poll slot.
func (c *Callbacks) InputPoll() { c.inputPoll() }

// InputState invokes the input state slot.
func (c *Callbacks) InputState(port, device, index, id uint) int16 {
	return c.inputState(port, device, index, id)
}

// Environment invokes the environment slot.
func (c *Callbacks) Environment(cmd uint, data unsafe.Pointer) bool {
	return c.environment(cmd, data)
}
