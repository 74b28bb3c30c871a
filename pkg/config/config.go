package config

import (
	"path"
	"path/filepath"
	"strings"
)

type Config struct {
	Emulator   Emulator
	Monitoring Monitoring
	Video      Video
}

type Emulator struct {
	// LocalPath is the base dir for core system/save directories.
	LocalPath string
	// Storage is the dir where savestates and SRAM dumps are kept.
	Storage     string
	AutosaveSec int
	Libretro    LibretroConfig
}

type LibretroConfig struct {
	Cores struct {
		Paths struct {
			Libs string
		}
		Repo struct {
			Sync      bool
			ExtLock   string
			Main      LibretroRepoConfig
			Secondary LibretroRepoConfig
		}
		List map[string]CoreConfig
	}
	SaveCompression bool
	LogLevel        int
}

type LibretroRepoConfig struct {
	Type        string
	Url         string
	Compression string
}

type CoreConfig struct {
	AltRepo bool
	Lib     string
	Roms    []string
	Options map[string]string
}

type CoreInfo struct {
	Id      string
	Name    string
	AltRepo bool
}

type Monitoring struct {
	Port             int
	URLPrefix        string
	ProfilingEnabled bool
	MetricEnabled    bool
}

type Video struct {
	// Shader is an optional path to an XML GLSL shader description.
	Shader string
	Scale  float64
	Hidden bool
}

// GetCoreConfig returns a core config with expanded lib path.
func (e Emulator) GetCoreConfig(system string) CoreConfig {
	cores := e.Libretro.Cores
	conf := cores.List[system]
	conf.Lib = path.Join(cores.Paths.Libs, conf.Lib)
	return conf
}

// GetSystem tries to find a system for the given ROM name.
func (e Emulator) GetSystem(rom string) string {
	for system, core := range e.Libretro.Cores.List {
		for _, romName := range core.Roms {
			if rom == romName {
				return system
			}
		}
	}
	return ""
}

func (l *LibretroConfig) GetCores() (cores []CoreInfo) {
	for k, core := range l.Cores.List {
		cores = append(cores, CoreInfo{Id: k, Name: core.Lib, AltRepo: core.AltRepo})
	}
	return
}

const optionsMark = "_OPTIONS__"

// overrideOptions applies environment overrides of the form
// RETROFRONT_EMULATOR_LIBRETRO_CORES_LIST_<SYSTEM>_OPTIONS__<NAME>=<value>
// to map-valued core options. The file loader maps variables onto struct
// fields only, so map entries need this separate pass.
func (c *Config) overrideOptions(env []string) {
	prefix := EnvPrefix + "_EMULATOR_LIBRETRO_CORES_LIST_"
	for _, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, prefix) {
			continue
		}
		system, option, ok := strings.Cut(strings.TrimPrefix(k, prefix), optionsMark)
		if !ok || option == "" {
			continue
		}
		core, ok := c.Emulator.Libretro.Cores.List[strings.ToLower(system)]
		if !ok {
			continue
		}
		if core.Options == nil {
			core.Options = map[string]string{}
		}
		core.Options[strings.ToLower(option)] = v
		c.Emulator.Libretro.Cores.List[strings.ToLower(system)] = core
	}
}

func (l *LibretroConfig) GetCoresStorePath() string {
	pth, err := filepath.Abs(l.Cores.Paths.Libs)
	if err != nil {
		return ""
	}
	return pth
}
