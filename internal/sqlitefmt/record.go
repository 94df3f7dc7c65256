package sqlitefmt

import "math"

// SerialType widths. serialTypeSize returns the number of content
// bytes a serial type occupies; it agrees with the table for every
// n in [0, 2^16).
func serialTypeSize(n uint64) int {
	switch n {
	case 0, 8, 9:
		return 0
	case 1:
		return 1
	case 2:
		return 2
	case 3:
		return 3
	case 4:
		return 4
	case 5:
		return 6
	case 6, 7:
		return 8
	case 10, 11:
		return 0 // reserved
	default:
		if n >= 12 && n%2 == 0 {
			return int((n - 12) / 2) // BLOB
		}
		if n >= 13 && n%2 == 1 {
			return int((n - 13) / 2) // TEXT
		}
		return 0
	}
}

// decodeSerialValue interprets content (exactly serialTypeSize(serialType)
// bytes) according to the SerialType table.
func decodeSerialValue(serialType uint64, content []byte) Value {
	switch serialType {
	case 0:
		return Value{Kind: KindNull}
	case 1, 2, 3, 4, 5, 6:
		return Value{Kind: KindInt, Int: signExtend(content, serialTypeSize(serialType))}
	case 7:
		bits := uint64(0)
		for i := 0; i < 8; i++ {
			bits = (bits << 8) | uint64(content[i])
		}
		return Value{Kind: KindFloat, Float: math.Float64frombits(bits)}
	case 8:
		return Value{Kind: KindZero}
	case 9:
		return Value{Kind: KindOne}
	case 10, 11:
		return Value{Kind: KindNull} // reserved, treated as no content
	default:
		if serialType%2 == 0 {
			return Value{Kind: KindBlob, Bytes: content}
		}
		return Value{Kind: KindText, Bytes: content}
	}
}

// Record is a decoded leaf-table cell: the rowid and its column values, in
// declared order. Truncated is set, and Values holds only the columns
// successfully decoded before the truncation, when the record decoder ran
// out of bounds mid-cell (the Truncated kind).
type Record struct {
	Rowid       uint64
	Values      []Value
	Truncated   bool
	TruncatedAt error // the bounds error that caused truncation, if any
}

// decodeLeafTableCell decodes one leaf-table cell whose bytes begin at
// page[cellOffset:]. pageSize bounds how far the cell's varints
// and payload may extend; page must be the full page slice (page-start
// relative), with cellOffset itself already page-start relative.
func decodeLeafTableCell(page []byte, cellOffset int, pageSize int) (*Record, error) {
	if cellOffset < 0 || cellOffset >= len(page) {
		return nil, NewDecodeError("decode_leaf_table_cell", ErrBoundsViolation, map[string]interface{}{
			"cell_offset": cellOffset, "page_len": len(page),
		})
	}

	remaining := pageSize - cellOffset
	cell := page[cellOffset:]

	offset := 0
	_, n, err := readVarint(cell, remaining-offset)
	if err != nil {
		return nil, NewDecodeError("decode_leaf_table_cell", err, map[string]interface{}{"field": "payload_size"})
	}
	offset += n

	rowid, n, err := readVarint(cell[offset:], remaining-offset)
	if err != nil {
		return nil, NewDecodeError("decode_leaf_table_cell", err, map[string]interface{}{"field": "rowid"})
	}
	offset += n

	headerStart := offset
	headerSize, n, err := readVarint(cell[offset:], remaining-offset)
	if err != nil {
		return nil, NewDecodeError("decode_leaf_table_cell", err, map[string]interface{}{"field": "header_size"})
	}
	if int(headerSize) > remaining-offset {
		return &Record{Rowid: rowid, Truncated: true, TruncatedAt: ErrTruncated}, nil
	}
	offset += n

	headerEnd := headerStart + int(headerSize)

	var serialTypes []uint64
	for offset < headerEnd {
		st, n, err := readVarint(cell[offset:], remaining-offset)
		if err != nil || n == 0 {
			return &Record{Rowid: rowid, Truncated: true, TruncatedAt: ErrTruncated}, nil
		}
		serialTypes = append(serialTypes, st)
		offset += n
	}

	values := make([]Value, 0, len(serialTypes))
	for _, st := range serialTypes {
		size := serialTypeSize(st)
		if size == 0 {
			values = append(values, decodeSerialValue(st, nil))
			continue
		}
		if offset+size > remaining {
			return &Record{Rowid: rowid, Values: values, Truncated: true, TruncatedAt: ErrTruncated}, nil
		}
		content := cell[offset : offset+size]
		values = append(values, decodeSerialValue(st, content))
		offset += size
	}

	return &Record{Rowid: rowid, Values: values}, nil
}
