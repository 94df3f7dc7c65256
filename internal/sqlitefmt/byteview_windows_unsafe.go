//go:build windows

package sqlitefmt

import (
	"unsafe"
)

// unsafeByteSliceFromPointer builds a []byte view over a mapped region
// without copying. The returned slice is only valid while the mapping is
// held open by the caller.
func unsafeByteSliceFromPointer(addr uintptr, length int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), length)
}

// unsafePointerFromSlice recovers the base address of a slice produced by
// unsafeByteSliceFromPointer, for use with UnmapViewOfFile.
func unsafePointerFromSlice(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}
