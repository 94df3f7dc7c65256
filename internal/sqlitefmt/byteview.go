package sqlitefmt

// ByteView is a read-only, random-access view over the whole database
// file. It is owned by a Database and must not outlive it: slices handed
// back by Bytes are backed by the view's own memory (a memory map, where
// the platform supports it) and become invalid once Close runs.
type ByteView interface {
	// Len returns the total number of bytes in the view.
	Len() int
	// Bytes returns the byte range [off, off+n). It never copies. Callers
	// that need the data to outlive the view must copy it themselves.
	Bytes(off, n int) ([]byte, error)
	// Close releases the view (unmaps the file, where applicable).
	Close() error
}

// openByteView acquires a read-only byte view of the file at path. On
// platforms with a memory-mapping implementation this is backed by
// golang.org/x/sys; elsewhere it falls back to a full read into an owned
// buffer. Either way the view remains valid for the lifetime of the
// Database that owns it, per the facade's lifetime invariant.
func openByteView(path string) (ByteView, error) {
	return openMappedView(path)
}
