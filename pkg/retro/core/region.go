package core

// Region is a borrowed view into core-owned memory.
//
// It stays valid only until the next call into the core (the core may
// remap or free the block on load, unload, or even run). Copy the bytes
// out before that point if they are to be retained.
type Region struct {
	data []byte
}

// RegionOf wraps a byte slice as a borrowed region view.
func RegionOf(b []byte) Region { return Region{data: b} }

func (r Region) Size() int { return len(r.data) }

// Bytes exposes the underlying borrowed memory.
func (r Region) Bytes() []byte { return r.data }

// Copy returns an owned copy of the region contents.
func (r Region) Copy() []byte {
	if len(r.data) == 0 {
		return nil
	}
	out := make([]byte, len(r.data))
	copy(out, r.data)
	return out
}
