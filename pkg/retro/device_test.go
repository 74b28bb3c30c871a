package retro

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceSubclassIds(t *testing.T) {
	// ((id + 1) << 8) | base, per the libretro subclass scheme
	assert.EqualValues(t, 257, DeviceJoypadMultitap)
	assert.EqualValues(t, 260, DeviceLightgunSuperScope)
	assert.EqualValues(t, 516, DeviceLightgunJustifier)
	assert.EqualValues(t, 772, DeviceLightgunJustifiers)
}

func TestValidatePortDevice(t *testing.T) {
	tests := []struct {
		port   uint
		device Device
		ok     bool
	}{
		{0, DeviceJoypad, true},
		{3, DeviceAnalog, true},
		{0, DeviceLightgun, true},
		{1, DeviceLightgunSuperScope, true},
		{1, DeviceLightgunJustifiers, true},
		{0, DeviceLightgunSuperScope, false},
		{0, DeviceLightgunJustifier, false},
		{2, DeviceLightgunJustifiers, false},
	}
	for _, test := range tests {
		err := validatePortDevice(test.port, test.device)
		if test.ok {
			assert.NoError(t, err, "%v on port %v", test.device, test.port)
		} else {
			assert.ErrorIs(t, err, ErrInvalidDevice, "%v on port %v", test.device, test.port)
		}
	}
}
