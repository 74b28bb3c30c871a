package retro

import (
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid"

	"github.com/cloudretro/retrofront/pkg/compression/zip"
	"github.com/cloudretro/retrofront/pkg/os"
)

type (
	// Storage persists savestates and SRAM dumps of a session.
	Storage interface {
		GetStatePath() string
		GetSRAMPath() string
		SetMainSaveName(name string)
		Load(path string) ([]byte, error)
		Save(path string, data []byte) error
	}
	StateStorage struct {
		// save path without the dir slash in the end
		Path string
		// the base name of the save files, e.g. abc<...>293.dat
		MainSave string
	}
	// ZipStorage wraps another storage and keeps the files zipped.
	ZipStorage struct {
		Storage
	}
)

// NewStateStorage names saves after the session; without a name a random
// one is generated so parallel sessions don't clobber each other's files.
func NewStateStorage(path string, session string) *StateStorage {
	if session == "" {
		if id, err := uuid.NewV4(); err == nil {
			session = id.String()
		} else {
			session = "default"
		}
	}
	return &StateStorage{Path: path, MainSave: session}
}

func (s *StateStorage) SetMainSaveName(name string) { s.MainSave = name }
func (s *StateStorage) GetStatePath() string        { return filepath.Join(s.Path, s.MainSave+".dat") }
func (s *StateStorage) GetSRAMPath() string         { return filepath.Join(s.Path, s.MainSave+".srm") }

func (s *StateStorage) Load(path string) ([]byte, error)   { return os.ReadFile(path) }
func (s *StateStorage) Save(path string, dat []byte) error { return os.WriteFile(path, dat, 0644) }

func (z *ZipStorage) GetStatePath() string { return z.Storage.GetStatePath() + zip.Ext }
func (z *ZipStorage) GetSRAMPath() string  { return z.Storage.GetSRAMPath() + zip.Ext }

// Load reads and unpacks a zip file with the path specified.
func (z *ZipStorage) Load(path string) ([]byte, error) {
	data, err := z.Storage.Load(path)
	if err != nil {
		return nil, err
	}
	d, _, err := zip.Read(data)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Save packs the data into a single-file zip archive under the path.
func (z *ZipStorage) Save(path string, data []byte) error {
	_, name := filepath.Split(path)
	if name == "" || name == "." {
		return zip.ErrorInvalidName
	}
	name = strings.TrimSuffix(name, zip.Ext)
	compress, err := zip.Compress(data, name)
	if err != nil {
		return err
	}
	return z.Storage.Save(path, compress)
}
