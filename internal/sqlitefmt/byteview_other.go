//go:build !unix && !windows

package sqlitefmt

import (
	"fmt"
	"os"
)

// bufferView is the portable ByteView fallback: the whole file is read
// into an owned buffer. Used on platforms without an x/sys mmap
// implementation; mapping vs. a full read is treated as an
// implementation choice.
type bufferView struct {
	data []byte
}

func openMappedView(path string) (ByteView, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDecodeError("open_byte_view", fmt.Errorf("%w: %v", ErrIOFailed, err), nil)
	}
	if len(data) == 0 {
		return nil, NewDecodeError("open_byte_view", fmt.Errorf("%w: empty file", ErrIOFailed), nil)
	}
	return &bufferView{data: data}, nil
}

func (v *bufferView) Len() int { return len(v.data) }

func (v *bufferView) Bytes(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(v.data) {
		return nil, NewDecodeError("byte_view_bytes", ErrBoundsViolation, map[string]interface{}{
			"offset": off, "length": n, "view_len": len(v.data),
		})
	}
	return v.data[off : off+n], nil
}

func (v *bufferView) Close() error {
	v.data = nil
	return nil
}
