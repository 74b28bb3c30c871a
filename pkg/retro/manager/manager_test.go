package manager

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cloudretro/retrofront/pkg/config"
	"github.com/cloudretro/retrofront/pkg/logger"
)

func TestDiff(t *testing.T) {
	cores := func(names ...string) (infos []config.CoreInfo) {
		for _, n := range names {
			infos = append(infos, config.CoreInfo{Name: n})
		}
		return
	}
	tests := []struct {
		declared  []config.CoreInfo
		installed []config.CoreInfo
		want      []config.CoreInfo
	}{
		{declared: nil, installed: nil, want: nil},
		{declared: cores("a"), installed: nil, want: cores("a")},
		{declared: cores("a", "b"), installed: cores("a"), want: cores("b")},
		{declared: cores("a", "b"), installed: cores("a", "b"), want: nil},
		{declared: nil, installed: cores("a"), want: nil},
	}
	for _, test := range tests {
		if got := diff(test.declared, test.installed); !reflect.DeepEqual(got, test.want) {
			t.Errorf("diff(%v, %v) = %v, want %v", test.declared, test.installed, got, test.want)
		}
	}
}

func TestGetInstalled(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"gba_libretro.so", "nes_libretro.so", "readme.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte{0}, 0644); err != nil {
			t.Fatal(err)
		}
	}

	var conf config.LibretroConfig
	conf.Cores.Paths.Libs = dir
	m := BasicManager{Conf: conf}

	installed, err := m.GetInstalled(".so")
	if err != nil {
		t.Fatal(err)
	}
	if len(installed) != 2 {
		t.Fatalf("expected 2 cores, got %v", installed)
	}
	if installed[0].Name != "gba_libretro" || installed[1].Name != "nes_libretro" {
		t.Errorf("wrong names: %v", installed)
	}

	if none, err := (BasicManager{Conf: conf}).GetInstalled(""); err != nil || none != nil {
		t.Errorf("empty extension should scan nothing, got %v, %v", none, err)
	}
}

func TestSyncWithoutLock(t *testing.T) {
	var conf config.LibretroConfig
	conf.Cores.Paths.Libs = t.TempDir()

	// a failed file lock leaves fmu nil, sync should still go through
	m := Manager{BasicManager: BasicManager{Conf: conf}, arch: ArchInfo{Ext: ".so"}, log: logger.Default()}
	if err := m.Sync(); err != nil {
		t.Errorf("sync without a lock failed: %v", err)
	}
}
