package sqlitefmt

import "bytes"

// magicString is the literal 16-byte SQLite file magic, checked byte for
// byte with no case folding.
var magicString = []byte("SQLite format 3\x00")

const dbHeaderSize = 100

// DbHeader is the decoded 100-byte SQLite database header.
type DbHeader struct {
	Magic                 [16]byte
	PageSize              uint16 // raw on-disk value; 1 means 65536 (see ActualPageSize)
	FileFormatWrite       uint8
	FileFormatRead        uint8
	ReservedSpace         uint8
	MaxEmbedPayloadFrac   uint8
	MinEmbedPayloadFrac   uint8
	LeafPayloadFrac       uint8
	FileChangeCounter     uint32
	HeaderDbSize          uint32
	FirstFreelistTrunk    uint32
	TotalFreelistTrunk    uint32
	SchemaCookie          uint32
	SchemaFormatNumber    uint32
	DefaultPageCacheSize  uint32
	PageNumberLargestRoot uint32
	DbTextEncoding        uint32
	UserVersion           uint32
	IncrementalVacuumMode uint32
	ApplicationID         uint32
	ReservedExpansion     [20]byte
	VersionValidFor       uint32
	SqliteVersionNumber   uint32
}

// ActualPageSize returns the usable page size: the raw on-disk value of 1
// is interpreted as 65536.
func (h *DbHeader) ActualPageSize() int {
	if h.PageSize == 1 {
		return 65536
	}
	return int(h.PageSize)
}

// parseDbHeader decodes the fixed 100-byte database header. It does not
// reject unknown file_format_*, db_text_encoding, or payload-fraction
// values; those are surfaced as-is.
func parseDbHeader(b []byte) (*DbHeader, error) {
	if len(b) < dbHeaderSize {
		return nil, NewDecodeError("parse_db_header", ErrShortInput, map[string]interface{}{
			"have": len(b), "need": dbHeaderSize,
		})
	}

	var h DbHeader
	copy(h.Magic[:], b[0:16])
	if !bytes.Equal(h.Magic[:], magicString) {
		return nil, NewDecodeError("parse_db_header", ErrBadMagic, map[string]interface{}{
			"got": string(h.Magic[:]),
		})
	}

	pageSize, err := readBE16(b[16:18])
	if err != nil {
		return nil, err
	}
	h.PageSize = pageSize
	h.FileFormatWrite = b[18]
	h.FileFormatRead = b[19]
	h.ReservedSpace = b[20]
	h.MaxEmbedPayloadFrac = b[21]
	h.MinEmbedPayloadFrac = b[22]
	h.LeafPayloadFrac = b[23]

	be32 := func(off int) (uint32, error) { return readBE32(b[off : off+4]) }

	if h.FileChangeCounter, err = be32(24); err != nil {
		return nil, err
	}
	if h.HeaderDbSize, err = be32(28); err != nil {
		return nil, err
	}
	if h.FirstFreelistTrunk, err = be32(32); err != nil {
		return nil, err
	}
	if h.TotalFreelistTrunk, err = be32(36); err != nil {
		return nil, err
	}
	if h.SchemaCookie, err = be32(40); err != nil {
		return nil, err
	}
	if h.SchemaFormatNumber, err = be32(44); err != nil {
		return nil, err
	}
	if h.DefaultPageCacheSize, err = be32(48); err != nil {
		return nil, err
	}
	if h.PageNumberLargestRoot, err = be32(52); err != nil {
		return nil, err
	}
	if h.DbTextEncoding, err = be32(56); err != nil {
		return nil, err
	}
	if h.UserVersion, err = be32(60); err != nil {
		return nil, err
	}
	if h.IncrementalVacuumMode, err = be32(64); err != nil {
		return nil, err
	}
	if h.ApplicationID, err = be32(68); err != nil {
		return nil, err
	}
	copy(h.ReservedExpansion[:], b[72:92])
	if h.VersionValidFor, err = be32(92); err != nil {
		return nil, err
	}
	if h.SqliteVersionNumber, err = be32(96); err != nil {
		return nil, err
	}

	return &h, nil
}
