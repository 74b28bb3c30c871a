package retro

// MemoryType identifies a memory region exposed by a core.
// The numeric values are part of the libretro ABI.
type MemoryType uint

const (
	MemorySaveRAM MemoryType = iota
	MemoryRTC
	MemorySystemRAM
	MemoryVideoRAM
)

// MemoryTypes lists every region type in its canonical order. Snapshot
// collections returned by System.Unload follow this order.
var MemoryTypes = [...]MemoryType{MemorySaveRAM, MemoryRTC, MemorySystemRAM, MemoryVideoRAM}

func (t MemoryType) String() string {
	switch t {
	case MemorySaveRAM:
		return "sram"
	case MemoryRTC:
		return "rtc"
	case MemorySystemRAM:
		return "ram"
	case MemoryVideoRAM:
		return "vram"
	default:
		return "mem?"
	}
}

// Snapshot is a host-owned copy of one memory region taken at unload.
// Data is nil when the core reported no region of that type.
type Snapshot struct {
	Type MemoryType
	Data []byte
}
