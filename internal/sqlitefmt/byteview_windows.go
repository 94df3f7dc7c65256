//go:build windows

package sqlitefmt

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// mmapView is a read-only memory-mapped ByteView for Windows, grounded on
// the tur example's platform split (pkg/pager/mmap_windows.go).
type mmapView struct {
	file    *os.File
	mapping windows.Handle
	data    []byte
}

func openMappedView(path string) (ByteView, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewDecodeError("open_byte_view", fmt.Errorf("%w: %v", ErrIOFailed, err), nil)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, NewDecodeError("stat_byte_view", fmt.Errorf("%w: %v", ErrIOFailed, err), nil)
	}
	size := stat.Size()
	if size == 0 {
		f.Close()
		return nil, NewDecodeError("open_byte_view", fmt.Errorf("%w: empty file", ErrIOFailed), nil)
	}

	mapping, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil, windows.PAGE_READONLY, 0, 0, nil)
	if err != nil {
		f.Close()
		return nil, NewDecodeError("mmap_byte_view", fmt.Errorf("%w: %v", ErrIOFailed, err), nil)
	}

	addr, err := windows.MapViewOfFile(mapping, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(mapping)
		f.Close()
		return nil, NewDecodeError("mmap_byte_view", fmt.Errorf("%w: %v", ErrIOFailed, err), nil)
	}

	data := unsafeByteSliceFromPointer(addr, int(size))

	return &mmapView{file: f, mapping: mapping, data: data}, nil
}

func (v *mmapView) Len() int { return len(v.data) }

func (v *mmapView) Bytes(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(v.data) {
		return nil, NewDecodeError("byte_view_bytes", ErrBoundsViolation, map[string]interface{}{
			"offset": off, "length": n, "view_len": len(v.data),
		})
	}
	return v.data[off : off+n], nil
}

func (v *mmapView) Close() error {
	var firstErr error
	if v.data != nil {
		if err := windows.UnmapViewOfFile(uintptr(unsafePointerFromSlice(v.data))); err != nil {
			firstErr = err
		}
		v.data = nil
	}
	if v.mapping != 0 {
		if err := windows.CloseHandle(v.mapping); err != nil && firstErr == nil {
			firstErr = err
		}
		v.mapping = 0
	}
	if v.file != nil {
		if err := v.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		v.file = nil
	}
	return firstErr
}
