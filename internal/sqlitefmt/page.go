package sqlitefmt

// Page type bytes.
const (
	PageTypeInteriorIndex = 0x02
	PageTypeInteriorTable = 0x05
	PageTypeLeafIndex     = 0x0a
	PageTypeLeafTable     = 0x0d
)

func isInteriorPageType(t uint8) bool {
	return t == PageTypeInteriorIndex || t == PageTypeInteriorTable
}

func isKnownPageType(t uint8) bool {
	return t == PageTypeInteriorIndex || t == PageTypeInteriorTable ||
		t == PageTypeLeafIndex || t == PageTypeLeafTable
}

// BtreePageHeader is the decoded per-page b-tree header plus its
// cell-pointer array.
type BtreePageHeader struct {
	PageType           uint8
	FirstFreeblock     uint16
	CellCount          uint16
	CellContentStart   uint16 // raw on-disk value; 0 means 65536 (see ContentStartValue)
	FragmentedFreeByte uint8
	RightmostPointer   uint32 // only meaningful for interior pages
	CellPointers       []uint16
}

// IsInterior reports whether this page is an interior (non-leaf) page.
func (h *BtreePageHeader) IsInterior() bool { return isInteriorPageType(h.PageType) }

// HeaderSize returns the on-disk size of the b-tree page header: 12 bytes
// for interior pages (it carries the rightmost-pointer field), 8 for leaf
// pages.
func (h *BtreePageHeader) HeaderSize() int {
	if h.IsInterior() {
		return 12
	}
	return 8
}

// pageBase returns the file offset of page i's b-tree header: page 1's
// header starts at file offset 100 (after the DbHeader, which is part of
// page 1); every other page is aligned on a pageSize boundary, per the
// "page-1 offset quirk".
func pageBase(pageIndex int, pageSize int) int {
	if pageIndex == 1 {
		return dbHeaderSize
	}
	return (pageIndex - 1) * pageSize
}

// parsePageHeader decodes page pageIndex's b-tree header and cell-pointer
// array out of view.
func parsePageHeader(view ByteView, pageIndex int, pageSize int, reservedSpace int) (*BtreePageHeader, error) {
	pageStart := (pageIndex - 1) * pageSize
	base := pageBase(pageIndex, pageSize)

	typeByte, err := view.Bytes(base, 1)
	if err != nil {
		return nil, NewDecodeError("parse_page_header", ErrShortInput, map[string]interface{}{
			"page_index": pageIndex, "offset": base,
		})
	}
	pageType := typeByte[0]
	if !isKnownPageType(pageType) {
		return nil, NewDecodeError("parse_page_header", ErrBadPageType, map[string]interface{}{
			"page_index": pageIndex, "page_type": pageType,
		})
	}

	var h BtreePageHeader
	h.PageType = pageType

	fixed, err := view.Bytes(base+1, 7)
	if err != nil {
		return nil, NewDecodeError("parse_page_header", ErrShortInput, map[string]interface{}{
			"page_index": pageIndex, "offset": base + 1,
		})
	}
	if h.FirstFreeblock, err = readBE16(fixed[0:2]); err != nil {
		return nil, err
	}
	if h.CellCount, err = readBE16(fixed[2:4]); err != nil {
		return nil, err
	}
	contentStart, err := readBE16(fixed[4:6])
	if err != nil {
		return nil, err
	}
	if contentStart == 0 {
		h.CellContentStart = 0 // represents 65536; callers use ContentStartValue()
	} else {
		h.CellContentStart = contentStart
	}
	h.FragmentedFreeByte = fixed[6]

	headerSize := h.HeaderSize()
	if h.IsInterior() {
		rp, err := view.Bytes(base+8, 4)
		if err != nil {
			return nil, NewDecodeError("parse_page_header", ErrShortInput, map[string]interface{}{
				"page_index": pageIndex, "offset": base + 8,
			})
		}
		if h.RightmostPointer, err = readBE32(rp); err != nil {
			return nil, err
		}
	}

	usableSize := pageSize - reservedSpace
	// headerSize and the pointer array both live at base, which itself sits
	// (base - pageStart) bytes into the page; cell pointer *values* on disk
	// are relative to pageStart, so the lower bound must account for that
	// same offset.
	lowerBound := (base - pageStart) + headerSize + 2*int(h.CellCount)

	if h.CellCount > 0 {
		ptrBytes, err := view.Bytes(base+headerSize, 2*int(h.CellCount))
		if err != nil {
			return nil, NewDecodeError("parse_page_header", ErrBoundsViolation, map[string]interface{}{
				"page_index": pageIndex, "cell_count": h.CellCount,
			})
		}
		h.CellPointers = make([]uint16, h.CellCount)
		for i := 0; i < int(h.CellCount); i++ {
			ptr, err := readBE16(ptrBytes[i*2 : i*2+2])
			if err != nil {
				return nil, err
			}
			rel := int(ptr)
			if rel < lowerBound || rel >= usableSize {
				return nil, NewDecodeError("parse_page_header", ErrBoundsViolation, map[string]interface{}{
					"page_index": pageIndex, "pointer_index": i, "pointer": ptr,
					"lower_bound": lowerBound, "usable_size": usableSize,
				})
			}
			h.CellPointers[i] = ptr
		}
	}

	return &h, nil
}

// ContentStartValue returns the normalized cell-content-start offset: a
// raw on-disk 0 means 65536.
func (h *BtreePageHeader) ContentStartValue() int {
	if h.CellContentStart == 0 {
		return 65536
	}
	return int(h.CellContentStart)
}
