package manager

import (
	"errors"
	"runtime"
)

// ArchInfo describes the platform slot of a core library in a repository
// tree. Cores are C-compiled libraries, one binary per os/arch pair.
// See: https://buildbot.libretro.com/nightly.
type ArchInfo struct {
	// bottom: x86_64, x86, ...
	Arch string
	// middle: windows, ios, ...
	Os string
	// top level: apple, nintendo, ...
	Vendor string
	// platform dependent library file extension (dot-prefixed)
	Ext string
}

var libretroOsArchMap = map[string]ArchInfo{
	"linux:amd64":   {Os: "linux", Arch: "x86_64", Ext: ".so"},
	"linux:arm":     {Os: "linux", Arch: "armv7-neon-hf", Ext: ".so"},
	"windows:amd64": {Os: "windows", Arch: "x86_64", Ext: ".dll"},
	"darwin:amd64":  {Os: "osx", Arch: "x86_64", Vendor: "apple", Ext: ".dylib"},
	"darwin:arm64":  {Os: "osx", Arch: "arm64", Vendor: "apple", Ext: ".dylib"},
}

// GuessArch maps the current Go runtime platform onto a repository slot.
func GuessArch() (ArchInfo, error) {
	key := runtime.GOOS + ":" + runtime.GOARCH
	arch, ok := libretroOsArchMap[key]
	if !ok {
		return ArchInfo{}, errors.New("core mapping not found for " + key)
	}
	return arch, nil
}
