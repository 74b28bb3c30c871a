package os

import (
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
)

var ErrNotExist = os.ErrNotExist

func Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

func CheckCreateDir(path string) error {
	if !Exists(path) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

func MakeDirAll(path string) error { return os.MkdirAll(path, os.ModeDir|0755) }

func StatSize(path string) (int64, error) {
	s, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return s.Size(), nil
}

func ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func RemoveAll(path string) error { return os.RemoveAll(path) }

// ReadDirNames lists the entry names of a directory.
func ReadDirNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// ExpectTermination returns a channel that closes over on SIGINT/SIGTERM.
func ExpectTermination() chan struct{} {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{}, 1)
	go func() {
		<-signals
		done <- struct{}{}
	}()
	return done
}
