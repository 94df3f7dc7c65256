package sqlitefmt

import "fmt"

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindInt
	KindFloat
	KindText
	KindBlob
	KindZero
	KindOne
)

// Value is one decoded column value. Exactly one of the typed accessors
// is meaningful, as indicated by Kind; the decoder never returns a
// generic untyped payload.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Bytes []byte // backing storage for Text/Blob; shares memory with the ByteView
}

func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "NULL"
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindText:
		return string(v.Bytes)
	case KindBlob:
		return fmt.Sprintf("BLOB(%d bytes)", len(v.Bytes))
	case KindZero:
		return "0"
	case KindOne:
		return "1"
	default:
		return ""
	}
}

// signExtend reinterprets the first width bytes of b (big-endian,
// two's-complement) as an int64, sign-extended from width bytes to 64
// bits. width must be one of {1,2,3,4,6,8}, per the SerialType table.
func signExtend(b []byte, width int) int64 {
	var u uint64
	for i := 0; i < width; i++ {
		u = (u << 8) | uint64(b[i])
	}
	signBit := uint64(1) << (uint(width)*8 - 1)
	if u&signBit != 0 {
		u |= ^uint64(0) << (uint(width) * 8)
	}
	return int64(u)
}
