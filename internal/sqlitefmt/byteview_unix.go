//go:build unix

package sqlitefmt

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mmapView is a read-only memory-mapped ByteView, grounded on the mmap
// pager of the tur example (pkg/pager/mmap_unix.go) but mapped PROT_READ
// only: the decoder never writes back to the file.
type mmapView struct {
	file *os.File
	data []byte
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

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, NewDecodeError("mmap_byte_view", fmt.Errorf("%w: %v", ErrIOFailed, err), nil)
	}

	return &mmapView{file: f, data: data}, nil
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
		if err := unix.Munmap(v.data); err != nil {
			firstErr = err
		}
		v.data = nil
	}
	if v.file != nil {
		if err := v.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		v.file = nil
	}
	return firstErr
}
