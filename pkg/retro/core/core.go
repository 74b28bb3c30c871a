package core

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/cloudretro/retrofront/pkg/logger"
	"github.com/cloudretro/retrofront/pkg/os"
)

/*
#include "libretro.h"
#include <stdlib.h>

void bridge_call(void *f);
unsigned bridge_retro_api_version(void *f);
void bridge_retro_get_system_info(void *f, struct retro_system_info *si);
void bridge_retro_get_system_av_info(void *f, struct retro_system_av_info *si);
void bridge_retro_set_environment(void *f, void *callback);
void bridge_retro_set_video_refresh(void *f, void *callback);
void bridge_retro_set_input_poll(void *f, void *callback);
void bridge_retro_set_input_state(void *f, void *callback);
void bridge_retro_set_audio_sample(void *f, void *callback);
void bridge_retro_set_audio_sample_batch(void *f, void *callback);
bool bridge_retro_load_game(void *f, struct retro_game_info *gi);
void bridge_retro_set_controller_port_device(void *f, unsigned port, unsigned device);
size_t bridge_retro_get_memory_size(void *f, unsigned id);
void* bridge_retro_get_memory_data(void *f, unsigned id);
size_t bridge_retro_serialize_size(void *f);
bool bridge_retro_serialize(void *f, void *data, size_t size);
bool bridge_retro_unserialize(void *f, void *data, size_t size);
void bridge_retro_cheat_set(void *f, unsigned index, bool enabled, const char *code);

bool coreEnvironment_cgo(unsigned cmd, void *data);
void coreVideoRefresh_cgo(const void *data, unsigned width, unsigned height, size_t pitch);
void coreInputPoll_cgo();
int16_t coreInputState_cgo(unsigned port, unsigned device, unsigned index, unsigned id);
void coreAudioSample_cgo(int16_t left, int16_t right);
size_t coreAudioSampleBatch_cgo(const int16_t *data, size_t frames);
void coreLog_cgo(enum retro_log_level level, const char *fmt);
*/
import "C"

// ErrVersionMismatch is returned when the library reports an API version
// this frontend does not speak.
var ErrVersionMismatch = errors.New("unsupported libretro API version")

// APIVersion is the libretro ABI revision this frontend implements.
const APIVersion = uint(C.RETRO_API_VERSION)

var (
	RGBA5551    = PixFmt{C: 0, BPP: 2} // 5 bits R, 5 bits G, 5 bits B, 1 bit alpha
	RGBA8888Rev = PixFmt{C: 1, BPP: 4} // 8 bits per channel, reversed
	RGB565      = PixFmt{C: 2, BPP: 2} // 5 bits R, 6 bits G, 5 bits B
)

type PixFmt struct {
	C   uint32
	BPP uint
}

func (p PixFmt) String() string {
	switch p.C {
	case 0:
		return "RGBA5551/2"
	case 1:
		return "RGBA8888Rev/4"
	case 2:
		return "RGB565/2"
	default:
		return fmt.Sprintf("Unknown (%v/%v)", p.C, p.BPP)
	}
}

// SystemInfo mirrors retro_get_system_info.
type SystemInfo struct {
	LibraryName     string
	LibraryVersion  string
	ValidExtensions string
	NeedFullpath    bool
	BlockExtract    bool
}

// AVInfo mirrors retro_get_system_av_info, valid after a game is loaded.
type AVInfo struct {
	BaseWidth   int
	BaseHeight  int
	MaxWidth    int
	MaxHeight   int
	AspectRatio float32
	FPS         float64
	SampleRate  float64
}

// Config carries frontend-side values a core may ask for through the
// environment callback.
type Config struct {
	SaveDir   string
	SystemDir string
	Username  string
	CanDupe   bool
	// Options are core variables (RETRO_ENVIRONMENT_GET_VARIABLE).
	Options map[string]string
}

type entryPoints struct {
	init                    unsafe.Pointer
	deinit                  unsafe.Pointer
	apiVersion              unsafe.Pointer
	getSystemInfo           unsafe.Pointer
	getSystemAVInfo         unsafe.Pointer
	setEnvironment          unsafe.Pointer
	setVideoRefresh         unsafe.Pointer
	setInputPoll            unsafe.Pointer
	setInputState           unsafe.Pointer
	setAudioSample          unsafe.Pointer
	setAudioSampleBatch     unsafe.Pointer
	setControllerPortDevice unsafe.Pointer
	reset                   unsafe.Pointer
	run                     unsafe.Pointer
	loadGame                unsafe.Pointer
	unloadGame              unsafe.Pointer
	serializeSize           unsafe.Pointer
	serialize               unsafe.Pointer
	unserialize             unsafe.Pointer
	getMemorySize           unsafe.Pointer
	getMemoryData           unsafe.Pointer
	cheatReset              unsafe.Pointer
	cheatSet                unsafe.Pointer
}

// Core owns a dynamically loaded libretro library instance.
//
// A single frontend thread is assumed to own a Core exclusively for its
// whole lifetime; concurrent use from multiple threads is undefined.
type Core struct {
	name    string
	lib     unsafe.Pointer
	api     entryPoints
	cb      *Callbacks
	active  bool
	version uint
	pixFmt  PixFmt
	rot     uint
	options map[string]*C.char
	canDupe bool
	sys     struct {
		i  C.struct_retro_system_info
		av C.struct_retro_system_av_info
	}
	cSaveDir   *C.char
	cSystemDir *C.char
	cUserName  *C.char
	log        *logger.Logger
}

// current is the core whose call into the native library is in flight.
// Native callbacks carry no user data, so the trampolines route through
// this link; it is safe because all calls are synchronous and
// single-threaded (see enter).
var current *Core

var entryNames = map[string]func(*entryPoints) *unsafe.Pointer{
	"retro_init":                       func(e *entryPoints) *unsafe.Pointer { return &e.init },
	"retro_deinit":                     func(e *entryPoints) *unsafe.Pointer { return &e.deinit },
	"retro_api_version":                func(e *entryPoints) *unsafe.Pointer { return &e.apiVersion },
	"retro_get_system_info":            func(e *entryPoints) *unsafe.Pointer { return &e.getSystemInfo },
	"retro_get_system_av_info":         func(e *entryPoints) *unsafe.Pointer { return &e.getSystemAVInfo },
	"retro_set_environment":            func(e *entryPoints) *unsafe.Pointer { return &e.setEnvironment },
	"retro_set_video_refresh":          func(e *entryPoints) *unsafe.Pointer { return &e.setVideoRefresh },
	"retro_set_input_poll":             func(e *entryPoints) *unsafe.Pointer { return &e.setInputPoll },
	"retro_set_input_state":            func(e *entryPoints) *unsafe.Pointer { return &e.setInputState },
	"retro_set_audio_sample":           func(e *entryPoints) *unsafe.Pointer { return &e.setAudioSample },
	"retro_set_audio_sample_batch":     func(e *entryPoints) *unsafe.Pointer { return &e.setAudioSampleBatch },
	"retro_set_controller_port_device": func(e *entryPoints) *unsafe.Pointer { return &e.setControllerPortDevice },
	"retro_reset":                      func(e *entryPoints) *unsafe.Pointer { return &e.reset },
	"retro_run":                        func(e *entryPoints) *unsafe.Pointer { return &e.run },
	"retro_load_game":                  func(e *entryPoints) *unsafe.Pointer { return &e.loadGame },
	"retro_unload_game":                func(e *entryPoints) *unsafe.Pointer { return &e.unloadGame },
	"retro_serialize_size":             func(e *entryPoints) *unsafe.Pointer { return &e.serializeSize },
	"retro_serialize":                  func(e *entryPoints) *unsafe.Pointer { return &e.serialize },
	"retro_unserialize":                func(e *entryPoints) *unsafe.Pointer { return &e.unserialize },
	"retro_get_memory_size":            func(e *entryPoints) *unsafe.Pointer { return &e.getMemorySize },
	"retro_get_memory_data":            func(e *entryPoints) *unsafe.Pointer { return &e.getMemoryData },
	"retro_cheat_reset":                func(e *entryPoints) *unsafe.Pointer { return &e.cheatReset },
	"retro_cheat_set":                  func(e *entryPoints) *unsafe.Pointer { return &e.cheatSet },
}

// Load opens the named shared library, resolves its entry points, verifies
// the reported API version, and initializes the core.
//
// It fails with ErrLibraryInUse when the same library is already loaded in
// this process and with ErrVersionMismatch on an unsupported API revision.
func Load(path string, conf Config, log *logger.Logger) (*Core, error) {
	if err := register(path); err != nil {
		return nil, fmt.Errorf("%w: %v", err, path)
	}

	lib, err := loadLib(path)
	if err != nil {
		unregister(path)
		return nil, fmt.Errorf("core load: %v, %w", path, err)
	}

	c := &Core{
		name:    path,
		lib:     lib,
		cb:      NewCallbacks(),
		pixFmt:  RGBA5551, // the libretro default until SET_PIXEL_FORMAT
		options: make(map[string]*C.char, len(conf.Options)),
		canDupe: conf.CanDupe,
		log:     log,
	}
	for k, v := range conf.Options {
		c.options[k] = C.CString(v)
	}
	for name, slot := range entryNames {
		ptr, err := loadFunction(lib, name)
		if err != nil {
			c.drop()
			return nil, err
		}
		*slot(&c.api) = ptr
	}

	if conf.SaveDir != "" {
		if err := os.CheckCreateDir(conf.SaveDir); err != nil {
			c.drop()
			return nil, err
		}
		c.cSaveDir = C.CString(conf.SaveDir)
	}
	if conf.SystemDir != "" {
		if err := os.CheckCreateDir(conf.SystemDir); err != nil {
			c.drop()
			return nil, err
		}
		c.cSystemDir = C.CString(conf.SystemDir)
	}
	if conf.Username == "" {
		conf.Username = "retro"
	}
	c.cUserName = C.CString(conf.Username)

	c.enter()
	c.version = uint(C.bridge_retro_api_version(c.api.apiVersion))
	if c.version != APIVersion {
		c.drop()
		return nil, fmt.Errorf("%w: %v", ErrVersionMismatch, c.version)
	}

	C.bridge_retro_set_environment(c.api.setEnvironment, C.coreEnvironment_cgo)
	C.bridge_retro_set_video_refresh(c.api.setVideoRefresh, C.coreVideoRefresh_cgo)
	C.bridge_retro_set_input_poll(c.api.setInputPoll, C.coreInputPoll_cgo)
	C.bridge_retro_set_input_state(c.api.setInputState, C.coreInputState_cgo)
	C.bridge_retro_set_audio_sample(c.api.setAudioSample, C.coreAudioSample_cgo)
	C.bridge_retro_set_audio_sample_batch(c.api.setAudioSampleBatch, C.coreAudioSampleBatch_cgo)

	C.bridge_call(c.api.init)
	c.active = true

	C.bridge_retro_get_system_info(c.api.getSystemInfo, &c.sys.i)
	log.Info().Msgf("System >>> %v (%v) [%v] nfp: %v, api: %v",
		C.GoString(c.sys.i.library_name), C.GoString(c.sys.i.library_version),
		C.GoString(c.sys.i.valid_extensions), bool(c.sys.i.need_fullpath), c.version)

	// deinit still happens when the owner forgets to Close
	runtime.SetFinalizer(c, func(c *Core) { _ = c.Close() })

	return c, nil
}

// enter marks c as the receiver of native callbacks. Called before every
// call into the library; cheap because it is just a pointer store.
func (c *Core) enter() { current = c }

// drop releases everything of a partially constructed core.
func (c *Core) drop() {
	_ = closeLib(c.lib)
	c.freeStrings()
	unregister(c.name)
}

func (c *Core) freeStrings() {
	if c.cSaveDir != nil {
		C.free(unsafe.Pointer(c.cSaveDir))
		c.cSaveDir = nil
	}
	if c.cSystemDir != nil {
		C.free(unsafe.Pointer(c.cSystemDir))
		c.cSystemDir = nil
	}
	if c.cUserName != nil {
		C.free(unsafe.Pointer(c.cUserName))
		c.cUserName = nil
	}
	for k, v := range c.options {
		C.free(unsafe.Pointer(v))
		delete(c.options, k)
	}
}

// Close deinitializes the core exactly once and unloads the library.
// Further calls are no-ops.
func (c *Core) Close() error {
	if !c.active {
		return nil
	}
	c.active = false
	runtime.SetFinalizer(c, nil)

	c.enter()
	C.bridge_call(c.api.deinit)
	if current == c {
		current = nil
	}

	err := closeLib(c.lib)
	c.lib = nil
	c.freeStrings()
	unregister(c.name)
	return err
}

// Active reports whether the library is initialized and callable.
func (c *Core) Active() bool { return c.active }

// Name returns the library identifier the core was loaded from.
func (c *Core) Name() string { return c.name }

// Callbacks returns the callback router of this core.
func (c *Core) Callbacks() *Callbacks { return c.cb }

func (c *Core) APIVersion() uint { return c.version }

func (c *Core) SystemInfo() SystemInfo {
	return SystemInfo{
		LibraryName:     C.GoString(c.sys.i.library_name),
		LibraryVersion:  C.GoString(c.sys.i.library_version),
		ValidExtensions: C.GoString(c.sys.i.valid_extensions),
		NeedFullpath:    bool(c.sys.i.need_fullpath),
		BlockExtract:    bool(c.sys.i.block_extract),
	}
}

func (c *Core) AVInfo() AVInfo {
	av := c.sys.av
	return AVInfo{
		BaseWidth:   int(av.geometry.base_width),
		BaseHeight:  int(av.geometry.base_height),
		MaxWidth:    int(av.geometry.max_width),
		MaxHeight:   int(av.geometry.max_height),
		AspectRatio: float32(av.geometry.aspect_ratio),
		FPS:         float64(av.timing.fps),
		SampleRate:  float64(av.timing.sample_rate),
	}
}

func (c *Core) PixFormat() PixFmt { return c.pixFmt }
func (c *Core) Rotation() uint    { return c.rot }

// LoadGame feeds a game image into the core and refreshes the cached A/V
// info. Cores that report need_fullpath load the file themselves; for the
// rest the image bytes are passed (and read from path when data is nil).
func (c *Core) LoadGame(path string, data []byte, meta string) error {
	game := C.struct_retro_game_info{}

	big := bool(c.sys.i.need_fullpath)
	if big {
		size, err := os.StatSize(path)
		if err != nil {
			return err
		}
		game.size = C.size_t(size)
	} else {
		if data == nil {
			bytes, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			data = bytes
		}
		ptr := unsafe.Pointer(C.CBytes(data))
		defer C.free(ptr)
		game.data = ptr
		game.size = C.size_t(len(data))
	}
	if path != "" {
		fp := C.CString(path)
		defer C.free(unsafe.Pointer(fp))
		game.path = fp
	}
	if meta != "" {
		m := C.CString(meta)
		defer C.free(unsafe.Pointer(m))
		game.meta = m
	}

	c.enter()
	if ok := C.bridge_retro_load_game(c.api.loadGame, &game); !ok {
		return fmt.Errorf("core failed to load the game: %v", path)
	}

	C.bridge_retro_get_system_av_info(c.api.getSystemAVInfo, &c.sys.av)
	av := c.AVInfo()
	c.log.Info().Msgf("System A/V >>> %vx%v (%vx%v), [%vfps], AR [%v], audio [%vHz]",
		av.BaseWidth, av.BaseHeight, av.MaxWidth, av.MaxHeight,
		av.FPS, av.AspectRatio, av.SampleRate)

	return nil
}

// UnloadGame forwards to retro_unload_game and resets the cached A/V info.
func (c *Core) UnloadGame() {
	c.enter()
	C.bridge_call(c.api.unloadGame)
	c.sys.av = C.struct_retro_system_av_info{}
	c.rot = 0
}

// Run advances emulation by a single frame. The call blocks until the core
// has invoked every callback due this frame.
func (c *Core) Run() {
	c.enter()
	C.bridge_call(c.api.run)
}

// Reset presses the reset button of the emulated system.
func (c *Core) Reset() {
	c.enter()
	C.bridge_call(c.api.reset)
}

// SerializeSize reports the savestate buffer size of the loaded game.
func (c *Core) SerializeSize() uint {
	c.enter()
	return uint(C.bridge_retro_serialize_size(c.api.serializeSize))
}

// Serialize snapshots the full execution state of the core.
func (c *Core) Serialize() ([]byte, error) {
	c.enter()
	size := C.bridge_retro_serialize_size(c.api.serializeSize)
	if size == 0 {
		return nil, errors.New("retro_serialize is not supported")
	}
	data := make([]byte, uint(size))
	if ok := C.bridge_retro_serialize(c.api.serialize, unsafe.Pointer(&data[0]), size); !ok {
		return nil, errors.New("retro_serialize failed")
	}
	return data, nil
}

// Unserialize restores a state produced by Serialize.
//
// The same game that was loaded when the buffer was produced must be
// loaded; the frontend cannot verify this and the result is undefined
// otherwise.
func (c *Core) Unserialize(st []byte) error {
	if len(st) == 0 {
		return errors.New("empty state")
	}
	c.enter()
	if ok := C.bridge_retro_unserialize(c.api.unserialize, unsafe.Pointer(&st[0]), C.size_t(len(st))); !ok {
		return errors.New("retro_unserialize failed")
	}
	return nil
}

// MemoryRegion returns a borrowed view into the core memory of the given
// type, or false when the core reports no such region for the loaded game.
func (c *Core) MemoryRegion(id uint) (Region, bool) {
	c.enter()
	size := C.bridge_retro_get_memory_size(c.api.getMemorySize, C.unsigned(id))
	ptr := C.bridge_retro_get_memory_data(c.api.getMemoryData, C.unsigned(id))
	if ptr == nil || size == 0 {
		return Region{}, false
	}
	//noinspection GoRedundantConversion
	return RegionOf(unsafe.Slice((*byte)(ptr), uint(size))), true
}

// SetControllerPortDevice connects a device type to a controller port.
func (c *Core) SetControllerPortDevice(port, device uint) {
	c.enter()
	C.bridge_retro_set_controller_port_device(c.api.setControllerPortDevice, C.uint(port), C.unsigned(device))
}

// CheatReset clears the core cheat table.
func (c *Core) CheatReset() {
	c.enter()
	C.bridge_call(c.api.cheatReset)
}

// CheatSet pushes a single cheat into the core table.
func (c *Core) CheatSet(index uint, enabled bool, code string) {
	cs := C.CString(code)
	defer C.free(unsafe.Pointer(cs))
	c.enter()
	C.bridge_retro_cheat_set(c.api.cheatSet, C.unsigned(index), C.bool(enabled), cs)
}

func (c *Core) setPixelFormat(format uint32) bool {
	switch format {
	case C.RETRO_PIXEL_FORMAT_0RGB1555:
		c.pixFmt = RGBA5551
	case C.RETRO_PIXEL_FORMAT_XRGB8888:
		c.pixFmt = RGBA8888Rev
	case C.RETRO_PIXEL_FORMAT_RGB565:
		c.pixFmt = RGB565
	default:
		c.log.Error().Msgf("unknown pixel type %v", format)
		return false
	}
	c.log.Info().Msgf("Pixel format: %v", c.pixFmt)
	return true
}

func m(msg *C.char) string { return strings.TrimRight(C.GoString(msg), "\n") }

//export coreLog
func coreLog(level C.enum_retro_log_level, msg *C.char) {
	if current == nil {
		return
	}
	switch level {
	case C.RETRO_LOG_DEBUG:
		current.log.Debug().MsgFunc(func() string { return m(msg) })
	case C.RETRO_LOG_INFO:
		current.log.Info().MsgFunc(func() string { return m(msg) })
	case C.RETRO_LOG_WARN:
		current.log.Warn().MsgFunc(func() string { return m(msg) })
	case C.RETRO_LOG_ERROR:
		current.log.Error().MsgFunc(func() string { return m(msg) })
	default:
		current.log.Log().MsgFunc(func() string { return m(msg) })
	}
}

//export coreVideoRefresh
func coreVideoRefresh(data unsafe.Pointer, width, height C.unsigned, pitch C.size_t) {
	c := current
	if c == nil {
		return
	}

	// a duplicate of the previous frame
	if data == nil {
		return
	}

	bpp := c.pixFmt.BPP
	packed := uint(pitch)
	// some cores or games output zero pitch, i.e. N64 Mupen
	if packed == 0 {
		packed = uint(width) * bpp
	}
	bytes := packed * uint(height)

	//noinspection GoRedundantConversion
	frame := unsafe.Slice((*byte)(data), bytes)
	c.cb.VideoRefresh(frame, uint(width), uint(height), packed/bpp)
}

//export coreInputPoll
func coreInputPoll() {
	if c := current; c != nil {
		c.cb.InputPoll()
	}
}

//export coreInputState
func coreInputState(port, device, index, id C.unsigned) C.int16_t {
	c := current
	if c == nil {
		return 0
	}
	return C.int16_t(c.cb.InputState(uint(port), uint(device), uint(index), uint(id)))
}

//export coreAudioSample
func coreAudioSample(left, right C.int16_t) {
	if c := current; c != nil {
		c.cb.AudioSample(int16(left), int16(right))
	}
}

//export coreAudioSampleBatch
func coreAudioSampleBatch(data unsafe.Pointer, frames C.size_t) C.size_t {
	c := current
	if c == nil {
		return frames
	}
	//noinspection GoRedundantConversion
	samples := unsafe.Slice((*int16)(data), int(frames)<<1)
	return C.size_t(c.cb.AudioSampleBatch(samples, int(frames)))
}

//export coreEnvironment
func coreEnvironment(cmd C.unsigned, data unsafe.Pointer) C.bool {
	c := current
	if c == nil {
		return false
	}

	switch cmd {
	case C.RETRO_ENVIRONMENT_GET_CAN_DUPE:
		*(*C.bool)(data) = C.bool(c.canDupe)
		return C.bool(c.canDupe)
	case C.RETRO_ENVIRONMENT_GET_USERNAME:
		*(**C.char)(data) = c.cUserName
		return true
	case C.RETRO_ENVIRONMENT_GET_LOG_INTERFACE:
		cb := (*C.struct_retro_log_callback)(data)
		cb.log = (C.retro_log_printf_t)(C.coreLog_cgo)
		return true
	case C.RETRO_ENVIRONMENT_SET_PIXEL_FORMAT:
		return C.bool(c.setPixelFormat(uint32(*(*C.enum_retro_pixel_format)(data))))
	case C.RETRO_ENVIRONMENT_SET_ROTATION:
		c.rot = (*(*uint)(data) % 4) * 90
		c.log.Debug().Msgf("Image rotated %v°", c.rot)
		return true
	case C.RETRO_ENVIRONMENT_GET_SYSTEM_DIRECTORY:
		if c.cSystemDir == nil {
			return false
		}
		*(**C.char)(data) = c.cSystemDir
		return true
	case C.RETRO_ENVIRONMENT_GET_SAVE_DIRECTORY:
		if c.cSaveDir == nil {
			return false
		}
		*(**C.char)(data) = c.cSaveDir
		return true
	case C.RETRO_ENVIRONMENT_SET_MESSAGE:
		message := (*C.struct_retro_message)(data)
		c.log.Debug().Msgf("message: %v", C.GoString(message.msg))
		return true
	case C.RETRO_ENVIRONMENT_SET_SYSTEM_AV_INFO:
		c.sys.av = *(*C.struct_retro_system_av_info)(data)
		return true
	case C.RETRO_ENVIRONMENT_SET_GEOMETRY:
		c.sys.av.geometry = *(*C.struct_retro_game_geometry)(data)
		return true
	case C.RETRO_ENVIRONMENT_GET_VARIABLE:
		rv := (*C.struct_retro_variable)(data)
		key := C.GoString(rv.key)
		if v, ok := c.options[key]; ok {
			rv.value = v
			c.log.Debug().Msgf("Set %s=%v", key, C.GoString(v))
			return true
		}
		return false
	}
	// everything else is for the user hook
	return C.bool(c.cb.Environment(uint(cmd), data))
}
