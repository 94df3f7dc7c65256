package sqlitefmt

import (
	"fmt"
	"sync"
)

// Database is the decoder facade: it owns the byte view, the decoded
// DbHeader, and one BtreePageHeader per page. Its lifetime dominates any
// value borrowed from it (text/blob bytes in decoded values); Close
// releases the byte view and all owned page-header data.
type Database struct {
	Header *DbHeader
	Pages  []*BtreePageHeader // Pages[i] is page i+1

	view      ByteView
	resources resourceManager
	cfg       *Config
}

// Open maps (or reads) the file at path, decodes its DbHeader, and
// decodes every page's b-tree header and cell-pointer array.
// Any failure releases everything acquired so far before returning.
func Open(path string, opts ...Option) (*Database, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	db := &Database{cfg: cfg}

	view, err := openByteView(path)
	if err != nil {
		return nil, err
	}
	db.view = view
	db.resources.add(view.Close)

	headerBytes, err := view.Bytes(0, dbHeaderSize)
	if err != nil {
		db.resources.closeAll()
		return nil, NewDecodeError("open", ErrShortInput, map[string]interface{}{"need": dbHeaderSize})
	}

	header, err := parseDbHeader(headerBytes)
	if err != nil {
		db.resources.closeAll()
		return nil, err
	}
	db.Header = header

	if err := db.decodeAllPageHeaders(); err != nil {
		db.resources.closeAll()
		return nil, err
	}

	return db, nil
}

// decodeAllPageHeaders decodes pages 1..HeaderDbSize using a bounded
// worker pool. Each result is written to its own
// slot, so the output is independent of completion order.
func (db *Database) decodeAllPageHeaders() error {
	n := int(db.Header.HeaderDbSize)
	pages := make([]*BtreePageHeader, n)
	errs := make([]error, n)

	pageSize := db.Header.ActualPageSize()
	reserved := int(db.Header.ReservedSpace)

	sem := make(chan struct{}, db.cfg.MaxConcurrency)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			h, err := parsePageHeader(db.view, idx+1, pageSize, reserved)
			if err != nil {
				errs[idx] = err
				return
			}
			pages[idx] = h
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("decode page %d: %w", i+1, err)
		}
	}

	db.Pages = pages
	return nil
}

// Schema returns the decoded sqlite_schema entries from page 1.
func (db *Database) Schema() ([]SchemaEntry, error) {
	return decodeSchema(db)
}

// PageBytes returns the full bytes of page i (1-indexed).
func (db *Database) PageBytes(pageIndex int) ([]byte, error) {
	if pageIndex < 1 || pageIndex > len(db.Pages) {
		return nil, NewDecodeError("page_bytes", ErrBoundsViolation, map[string]interface{}{"page_index": pageIndex})
	}
	pageSize := db.Header.ActualPageSize()
	return db.view.Bytes((pageIndex-1)*pageSize, pageSize)
}

// Cells returns the decoded leaf-table records for page i (1-indexed). It
// fails the whole call if the page is not a leaf-table page; individual
// cells that run past the page bounds are reported as Record.Truncated
// rather than aborting the rest of the page.
func (db *Database) Cells(pageIndex int) ([]*Record, error) {
	if pageIndex < 1 || pageIndex > len(db.Pages) {
		return nil, NewDecodeError("cells", ErrBoundsViolation, map[string]interface{}{"page_index": pageIndex})
	}
	header := db.Pages[pageIndex-1]
	if header.PageType != PageTypeLeafTable {
		return nil, NewDecodeError("cells", ErrBadPageType, map[string]interface{}{
			"page_index": pageIndex, "page_type": header.PageType,
		})
	}

	pageBytes, err := db.PageBytes(pageIndex)
	if err != nil {
		return nil, err
	}
	pageSize := db.Header.ActualPageSize()

	records := make([]*Record, len(header.CellPointers))
	for i, ptr := range header.CellPointers {
		rec, err := decodeLeafTableCell(pageBytes, int(ptr), pageSize)
		if err != nil {
			records[i] = &Record{Truncated: true, TruncatedAt: err}
			continue
		}
		records[i] = rec
	}
	return records, nil
}

// Close releases the byte view and all resources acquired by Open.
func (db *Database) Close() error {
	db.Pages = nil
	return db.resources.closeAll()
}
