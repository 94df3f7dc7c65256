package sqlitefmt

// memView is a trivial in-memory ByteView used by tests so they don't
// depend on the platform-specific mmap/fallback implementations or touch
// the filesystem.
type memView struct {
	data []byte
}

func newMemView(data []byte) *memView { return &memView{data: data} }

func (v *memView) Len() int { return len(v.data) }

func (v *memView) Bytes(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(v.data) {
		return nil, NewDecodeError("mem_view_bytes", ErrBoundsViolation, map[string]interface{}{
			"offset": off, "length": n, "view_len": len(v.data),
		})
	}
	return v.data[off : off+n], nil
}

func (v *memView) Close() error { return nil }
