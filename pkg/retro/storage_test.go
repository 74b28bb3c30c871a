package retro

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestStateStoragePaths(t *testing.T) {
	s := NewStateStorage("/tmp/saves", "abc")
	if s.GetStatePath() != filepath.Join("/tmp/saves", "abc.dat") {
		t.Errorf("wrong state path %v", s.GetStatePath())
	}
	if s.GetSRAMPath() != filepath.Join("/tmp/saves", "abc.srm") {
		t.Errorf("wrong sram path %v", s.GetSRAMPath())
	}

	z := &ZipStorage{Storage: s}
	if !strings.HasSuffix(z.GetStatePath(), ".dat.zip") || !strings.HasSuffix(z.GetSRAMPath(), ".srm.zip") {
		t.Errorf("wrong zip paths %v, %v", z.GetStatePath(), z.GetSRAMPath())
	}
}

func TestStateStorageRandomName(t *testing.T) {
	a := NewStateStorage("/tmp", "")
	b := NewStateStorage("/tmp", "")
	if a.MainSave == "" || a.MainSave == b.MainSave {
		t.Errorf("expected distinct generated save names, got %v and %v", a.MainSave, b.MainSave)
	}
}

func TestZipStorage(t *testing.T) {
	testDir := t.TempDir()
	fileName := "test-state"
	destPath := filepath.Join(testDir, fileName) + ".zip"
	expect := []byte{1, 2, 3, 4}
	z := &ZipStorage{Storage: NewStateStorage(testDir, fileName)}
	if err := z.Save(destPath, expect); err != nil {
		t.Errorf("Zip storage error = %v", err)
	}
	d, err := z.Load(destPath)
	if err != nil {
		t.Errorf("Zip storage error = %v", err)
	}
	if !reflect.DeepEqual(d, expect) {
		t.Errorf("Zip storage got = %v, want %v", d, expect)
	}
}

func TestStateStorageRoundTrip(t *testing.T) {
	s := NewStateStorage(t.TempDir(), "session")
	if err := s.Save(s.GetSRAMPath(), []byte{9, 9}); err != nil {
		t.Fatalf("save error = %v", err)
	}
	d, err := s.Load(s.GetSRAMPath())
	if err != nil {
		t.Fatalf("load error = %v", err)
	}
	if !reflect.DeepEqual(d, []byte{9, 9}) {
		t.Errorf("got = %v, want [9 9]", d)
	}
	if _, err = s.Load(filepath.Join(s.Path, "nothing.srm")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist, got %v", err)
	}
}
