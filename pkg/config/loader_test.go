package config

import (
	"os"
	"testing"
)

func TestConfigEnv(t *testing.T) {
	var out Config

	_ = os.Setenv("RETROFRONT_EMULATOR_AUTOSAVESEC", "22")
	defer func() { _ = os.Unsetenv("RETROFRONT_EMULATOR_AUTOSAVESEC") }()

	_ = os.Setenv("RETROFRONT_EMULATOR_LIBRETRO_CORES_LIST_SNES_OPTIONS__SNES9X_RANDOMIZE_MEMORY", "disabled")
	defer func() {
		_ = os.Unsetenv("RETROFRONT_EMULATOR_LIBRETRO_CORES_LIST_SNES_OPTIONS__SNES9X_RANDOMIZE_MEMORY")
	}()

	if err := LoadConfig(&out, ""); err != nil {
		t.Fatal(err)
	}

	if out.Emulator.AutosaveSec != 22 {
		t.Errorf("%v is not 22", out.Emulator.AutosaveSec)
	}

	v := out.Emulator.Libretro.Cores.List["snes"].Options["snes9x_randomize_memory"]
	if v != "disabled" {
		t.Errorf("%v is not disabled", v)
	}
}

func TestOptionOverrides(t *testing.T) {
	var conf Config
	conf.Emulator.Libretro.Cores.List = map[string]CoreConfig{
		"snes": {Options: map[string]string{"snes9x_randomize_memory": "enabled"}},
		"gba":  {},
	}

	conf.overrideOptions([]string{
		"RETROFRONT_EMULATOR_LIBRETRO_CORES_LIST_SNES_OPTIONS__SNES9X_RANDOMIZE_MEMORY=disabled",
		"RETROFRONT_EMULATOR_LIBRETRO_CORES_LIST_GBA_OPTIONS__MGBA_SKIP_BIOS=ON",
		"RETROFRONT_EMULATOR_LIBRETRO_CORES_LIST_N64_OPTIONS__X=1",
		"RETROFRONT_EMULATOR_LIBRETRO_CORES_LIST_SNES_OPTIONS__=empty",
		"OTHER_EMULATOR_LIBRETRO_CORES_LIST_SNES_OPTIONS__SNES9X_RANDOMIZE_MEMORY=kept",
	})

	tests := []struct {
		system string
		option string
		want   string
	}{
		{system: "snes", option: "snes9x_randomize_memory", want: "disabled"},
		{system: "gba", option: "mgba_skip_bios", want: "ON"},
	}
	for _, test := range tests {
		if got := conf.Emulator.Libretro.Cores.List[test.system].Options[test.option]; got != test.want {
			t.Errorf("%v/%v = %v, want %v", test.system, test.option, got, test.want)
		}
	}
	if _, ok := conf.Emulator.Libretro.Cores.List["n64"]; ok {
		t.Errorf("unknown systems should not be added")
	}
	if len(conf.Emulator.Libretro.Cores.List["snes"].Options) != 1 {
		t.Errorf("empty option names should be ignored: %v", conf.Emulator.Libretro.Cores.List["snes"].Options)
	}
}

func TestCoreConfigPathExpansion(t *testing.T) {
	var out Config
	if err := LoadConfig(&out, ""); err != nil {
		t.Fatal(err)
	}

	conf := out.Emulator.GetCoreConfig("gba")
	if conf.Lib == "mgba_libretro" {
		t.Errorf("lib path was not expanded: %v", conf.Lib)
	}
}

func TestGetSystem(t *testing.T) {
	var out Config
	if err := LoadConfig(&out, ""); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		rom    string
		system string
	}{
		{rom: "gba", system: "gba"},
		{rom: "nes", system: "nes"},
		{rom: "sfc", system: "snes"},
		{rom: "unknown", system: ""},
	}
	for _, test := range tests {
		if sys := out.Emulator.GetSystem(test.rom); sys != test.system {
			t.Errorf("expected %v for %v, got %v", test.system, test.rom, sys)
		}
	}
}
