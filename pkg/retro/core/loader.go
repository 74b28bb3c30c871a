package core

import (
	"errors"
	"strconv"
	"unsafe"
)

/*
#cgo LDFLAGS: -ldl
#include <stdlib.h>
#include <dlfcn.h>
*/
import "C"

func loadLib(path string) (unsafe.Pointer, error) {
	cs := C.CString(path)
	defer C.free(unsafe.Pointer(cs))
	handle := C.dlopen(cs, C.RTLD_LAZY)
	if handle == nil {
		if e := C.dlerror(); e != nil {
			return nil, errors.New(C.GoString(e))
		}
		return nil, errors.New("couldn't load the lib " + path)
	}
	return handle, nil
}

func loadFunction(handle unsafe.Pointer, name string) (unsafe.Pointer, error) {
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))
	ptr := C.dlsym(handle, cs)
	if ptr == nil {
		return nil, errors.New("lib function not found: " + name)
	}
	return ptr, nil
}

func closeLib(handle unsafe.Pointer) error {
	if handle == nil {
		return nil
	}
	if code := int(C.dlclose(handle)); code != 0 {
		return errors.New("couldn't close the lib (" + strconv.Itoa(code) + ")")
	}
	return nil
}
