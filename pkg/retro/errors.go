package retro

import "errors"

var (
	ErrNoGameLoaded      = errors.New("no game is loaded")
	ErrGameAlreadyLoaded = errors.New("a game is already loaded")
	ErrFullPathRequired  = errors.New("the core requires a game path")
	ErrNoDataOrPath      = errors.New("neither game data nor path given")
	ErrSizeMismatch      = errors.New("data size doesn't match the region size")
	ErrUnknownCheat      = errors.New("unknown cheat index")
	ErrSerialization     = errors.New("state serialization failed")
	ErrInvalidDevice     = errors.New("device is not valid on this port")
)
