package retro

import (
	"fmt"
	"sort"

	"github.com/cloudretro/retrofront/pkg/logger"
	"github.com/cloudretro/retrofront/pkg/retro/core"
)

// Core is the native library surface a System drives.
// *core.Core satisfies it; tests substitute their own.
type Core interface {
	LoadGame(path string, data []byte, meta string) error
	UnloadGame()
	Run()
	Reset()
	Serialize() ([]byte, error)
	Unserialize(st []byte) error
	MemoryRegion(id uint) (core.Region, bool)
	SetControllerPortDevice(port, device uint)
	CheatReset()
	CheatSet(index uint, enabled bool, code string)
	SystemInfo() core.SystemInfo
	AVInfo() core.AVInfo
	Callbacks() *core.Callbacks
	Close() error
}

// Game is the image to feed into a core: raw bytes and/or a file path,
// an optional metadata string, and optional persistent payloads from a
// previous session to seed into the core right after load.
type Game struct {
	Path string
	Data []byte
	Meta string

	SaveRAM []byte
	RTC     []byte
}

type cheat struct {
	code    string
	enabled bool
}

// System runs one game at a time on a core, guarding the
// load - configure - run - unload order.
//
// It is not synchronized: one goroutine owns a System for its lifetime,
// same as the underlying core handle.
type System struct {
	core   Core
	loaded bool
	cheats map[uint]cheat
	ports  map[uint]Device
	log    *logger.Logger
}

func NewSystem(c Core, log *logger.Logger) *System {
	return &System{
		core:   c,
		cheats: map[uint]cheat{},
		ports:  map[uint]Device{},
		log:    log,
	}
}

// Loaded reports whether a game is currently loaded.
func (s *System) Loaded() bool { return s.loaded }

// Core exposes the underlying core, mainly for callback installation.
func (s *System) Core() Core { return s.core }

// LibraryInfo reports the core's self-description. Valid in any state.
func (s *System) LibraryInfo() core.SystemInfo { return s.core.SystemInfo() }

// LoadGame feeds the game into the core and seeds its persistent regions
// with the payloads carried by the image, if any.
//
// Standard joypads are plugged into the first two ports on every load and
// the cheat table starts empty.
func (s *System) LoadGame(game Game) error {
	if s.loaded {
		return fmt.Errorf("%w: %v", ErrGameAlreadyLoaded, game.Path)
	}

	info := s.core.SystemInfo()
	if info.NeedFullpath && game.Path == "" {
		return ErrFullPathRequired
	}
	if game.Path == "" && game.Data == nil {
		return ErrNoDataOrPath
	}

	if err := s.core.LoadGame(game.Path, game.Data, game.Meta); err != nil {
		return err
	}
	s.loaded = true
	s.cheats = map[uint]cheat{}
	s.ports = map[uint]Device{}
	for port := uint(0); port < 2; port++ {
		s.ports[port] = DeviceJoypad
		s.core.SetControllerPortDevice(port, uint(DeviceJoypad))
	}

	if err := s.seed(MemorySaveRAM, game.SaveRAM); err != nil {
		s.rollback()
		return err
	}
	if err := s.seed(MemoryRTC, game.RTC); err != nil {
		s.rollback()
		return err
	}
	return nil
}

func (s *System) seed(t MemoryType, data []byte) error {
	if data == nil {
		return nil
	}
	if err := s.WriteRegion(t, data); err != nil {
		return fmt.Errorf("couldn't restore %v: %w", t, err)
	}
	s.log.Debug().Msgf("Restored %v bytes of %v", len(data), t)
	return nil
}

// rollback reverts a half-done load.
func (s *System) rollback() {
	s.core.UnloadGame()
	s.loaded = false
	s.cheats = map[uint]cheat{}
}

// Run advances the loaded game by exactly one frame, with every callback
// due this frame fired synchronously before it returns.
func (s *System) Run() error {
	if !s.loaded {
		return ErrNoGameLoaded
	}
	s.core.Run()
	return nil
}

// Reset presses the console reset button.
func (s *System) Reset() error {
	if !s.loaded {
		return ErrNoGameLoaded
	}
	s.core.Reset()
	return nil
}

// RefreshRate reports the video refresh rate (fps) of the loaded game.
func (s *System) RefreshRate() (float64, error) {
	if !s.loaded {
		return 0, ErrNoGameLoaded
	}
	return s.core.AVInfo().FPS, nil
}

// Serialize snapshots the full execution state into a host-owned buffer.
func (s *System) Serialize() ([]byte, error) {
	if !s.loaded {
		return nil, ErrNoGameLoaded
	}
	st, err := s.core.Serialize()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return st, nil
}

// Unserialize restores a snapshot produced by Serialize.
//
// The caller must have the same game loaded that was loaded when the
// snapshot was taken; this cannot be verified here and restoring a
// snapshot into a different game is undefined.
func (s *System) Unserialize(st []byte) error {
	if !s.loaded {
		return ErrNoGameLoaded
	}
	if err := s.core.Unserialize(st); err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return nil
}

// ReadRegion copies a memory region out of the core.
// A nil result means the core has no region of that type for this game.
func (s *System) ReadRegion(t MemoryType) ([]byte, error) {
	if !s.loaded {
		return nil, ErrNoGameLoaded
	}
	region, ok := s.core.MemoryRegion(uint(t))
	if !ok {
		return nil, nil
	}
	return region.Copy(), nil
}

// WriteRegion copies data byte-for-byte into a core memory region.
// The length must match the region size exactly; on mismatch nothing
// is written. Absent regions report zero size, so an empty write to
// one is a valid no-op.
func (s *System) WriteRegion(t MemoryType, data []byte) error {
	if !s.loaded {
		return ErrNoGameLoaded
	}
	region, ok := s.core.MemoryRegion(uint(t))
	size := 0
	if ok {
		size = region.Size()
	}
	if size != len(data) {
		return fmt.Errorf("%w: %v is %v, not %v", ErrSizeMismatch, t, size, len(data))
	}
	if size == 0 {
		return nil
	}
	copy(region.Bytes(), data)
	return nil
}

// SaveData is a read-only shortcut to the save RAM contents.
func (s *System) SaveData() ([]byte, error) { return s.ReadRegion(MemorySaveRAM) }

// Unload snapshots every memory region in MemoryTypes order, unloads the
// game, and clears the cheat table. The returned collection is the only
// way to carry persistent storage out of a finished session.
func (s *System) Unload() ([]Snapshot, error) {
	if !s.loaded {
		return nil, ErrNoGameLoaded
	}
	snaps := make([]Snapshot, 0, len(MemoryTypes))
	for _, t := range MemoryTypes {
		data, _ := s.ReadRegion(t)
		snaps = append(snaps, Snapshot{Type: t, Data: data})
	}
	s.core.UnloadGame()
	s.loaded = false
	s.cheats = map[uint]cheat{}
	return snaps, nil
}

// CheatAdd registers (or replaces) a cheat under an index and pushes the
// whole table to the core.
func (s *System) CheatAdd(index uint, code string, enabled bool) error {
	if !s.loaded {
		return ErrNoGameLoaded
	}
	s.cheats[index] = cheat{code: code, enabled: enabled}
	s.syncCheats()
	return nil
}

// CheatRemove drops a cheat and pushes the remaining table to the core.
func (s *System) CheatRemove(index uint) error {
	if _, err := s.findCheat(index); err != nil {
		return err
	}
	delete(s.cheats, index)
	s.syncCheats()
	return nil
}

// CheatSetEnabled flips one cheat and pushes the whole table to the core.
func (s *System) CheatSetEnabled(index uint, enabled bool) error {
	ch, err := s.findCheat(index)
	if err != nil {
		return err
	}
	ch.enabled = enabled
	s.cheats[index] = ch
	s.syncCheats()
	return nil
}

func (s *System) CheatIsEnabled(index uint) (bool, error) {
	ch, err := s.findCheat(index)
	if err != nil {
		return false, err
	}
	return ch.enabled, nil
}

func (s *System) findCheat(index uint) (cheat, error) {
	if !s.loaded {
		return cheat{}, ErrNoGameLoaded
	}
	ch, ok := s.cheats[index]
	if !ok {
		return cheat{}, fmt.Errorf("%w: %v", ErrUnknownCheat, index)
	}
	return ch, nil
}

// syncCheats rebuilds the core cheat table from scratch. The native API
// has no incremental update, so every mutation clears and re-applies the
// full table in index order.
func (s *System) syncCheats() {
	s.core.CheatReset()
	indices := make([]uint, 0, len(s.cheats))
	for idx := range s.cheats {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	for _, idx := range indices {
		ch := s.cheats[idx]
		s.core.CheatSet(idx, ch.enabled, ch.code)
	}
}

// SetControllerPortDevice plugs a device into a port after checking the
// combination is one the emulated hardware supports.
func (s *System) SetControllerPortDevice(port uint, device Device) error {
	if err := validatePortDevice(port, device); err != nil {
		return err
	}
	s.ports[port] = device
	s.core.SetControllerPortDevice(port, uint(device))
	return nil
}

// PortDevice reports the device currently assigned to a port.
func (s *System) PortDevice(port uint) Device {
	if d, ok := s.ports[port]; ok {
		return d
	}
	return DeviceNone
}

// Close unloads any running game and shuts the core down. Idempotent.
func (s *System) Close() error {
	if s.loaded {
		if _, err := s.Unload(); err != nil {
			s.log.Error().Err(err).Msg("unload on close")
		}
	}
	return s.core.Close()
}
