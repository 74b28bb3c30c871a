package retro

import "fmt"

// Device is a libretro controller type pluggable into a port.
type Device uint

const (
	DeviceNone     Device = 0
	DeviceJoypad   Device = 1
	DeviceMouse    Device = 2
	DeviceKeyboard Device = 3
	DeviceLightgun Device = 4
	DeviceAnalog   Device = 5
	DevicePointer  Device = 6
)

// subclass derives a specialized device id from a base type,
// mirroring the RETRO_DEVICE_SUBCLASS macro.
func subclass(base Device, id uint) Device { return Device(((id + 1) << 8) | uint(base)) }

var (
	DeviceJoypadMultitap     = subclass(DeviceJoypad, 0)
	DeviceLightgunSuperScope = subclass(DeviceLightgun, 0)
	DeviceLightgunJustifier  = subclass(DeviceLightgun, 1)
	DeviceLightgunJustifiers = subclass(DeviceLightgun, 2)
)

func (d Device) String() string {
	switch d {
	case DeviceNone:
		return "none"
	case DeviceJoypad:
		return "joypad"
	case DeviceMouse:
		return "mouse"
	case DeviceKeyboard:
		return "keyboard"
	case DeviceLightgun:
		return "lightgun"
	case DeviceAnalog:
		return "analog"
	case DevicePointer:
		return "pointer"
	case DeviceJoypadMultitap:
		return "multitap"
	case DeviceLightgunSuperScope:
		return "superscope"
	case DeviceLightgunJustifier:
		return "justifier"
	case DeviceLightgunJustifiers:
		return "justifiers"
	default:
		return fmt.Sprintf("device(%d)", uint(d))
	}
}

// validatePortDevice rejects combinations the emulated hardware never had:
// the specialized light guns plug into the second controller port only.
func validatePortDevice(port uint, device Device) error {
	switch device {
	case DeviceLightgunSuperScope, DeviceLightgunJustifier, DeviceLightgunJustifiers:
		if port != 1 {
			return fmt.Errorf("%w: %v on port %v", ErrInvalidDevice, device, port)
		}
	}
	return nil
}
