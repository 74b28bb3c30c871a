package core

import "errors"

// ErrLibraryInUse is returned when the same shared library is opened twice.
var ErrLibraryInUse = errors.New("library already in use")

// A dynamic library can be mapped and initialized only once per process,
// so we track which libraries have been loaded in order to not load them
// twice. Not synchronized: a single frontend thread drives all cores.
var registry = map[string]struct{}{}

func register(id string) error {
	if _, ok := registry[id]; ok {
		return ErrLibraryInUse
	}
	registry[id] = struct{}{}
	return nil
}

func unregister(id string) { delete(registry, id) }

// Registered reports whether the library id is currently in use.
func Registered(id string) bool {
	_, ok := registry[id]
	return ok
}
