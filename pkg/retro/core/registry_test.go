package core

import (
	"errors"
	"testing"
)

func TestRegistry(t *testing.T) {
	const lib = "cores/gba_libretro.so"

	if Registered(lib) {
		t.Fatalf("%v shouldn't be registered yet", lib)
	}
	if err := register(lib); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if !Registered(lib) {
		t.Fatalf("%v should be registered", lib)
	}
	if err := register(lib); !errors.Is(err, ErrLibraryInUse) {
		t.Fatalf("expected ErrLibraryInUse, got %v", err)
	}

	unregister(lib)
	if Registered(lib) {
		t.Fatalf("%v should be gone after unregister", lib)
	}
	if err := register(lib); err != nil {
		t.Fatalf("re-register after unregister failed: %v", err)
	}
	unregister(lib)
}

func TestRegistryIndependentIds(t *testing.T) {
	a, b := "cores/nes_libretro.so", "cores/snes_libretro.so"
	if err := register(a); err != nil {
		t.Fatal(err)
	}
	if err := register(b); err != nil {
		t.Fatalf("unrelated id shouldn't conflict: %v", err)
	}
	unregister(a)
	if !Registered(b) {
		t.Fatalf("unregister of %v shouldn't touch %v", a, b)
	}
	unregister(b)
}
