package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hgye/sqlitefmt/internal/sqlitefmt"
)

func putBE16(b []byte, v uint16) {
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

func putBE32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func minimalHeaderBytes(pageSize uint16, dbSize uint32) []byte {
	b := make([]byte, 100)
	copy(b[0:16], []byte("SQLite format 3\x00"))
	b[16] = byte(pageSize >> 8)
	b[17] = byte(pageSize)
	b[18] = 1
	b[19] = 1
	b[21] = 64
	b[22] = 32
	b[23] = 32
	putBE32(b[28:32], dbSize)
	putBE32(b[56:60], 1)
	return b
}

// varint encodes v in the canonical SQLite varint format, for test fixture
// construction only.
func varint(v uint64) []byte {
	if v == 0 {
		return []byte{0}
	}
	if v >= 1<<56 {
		// 9-byte form: the last byte carries the low 8 bits, the first
		// eight carry the remaining 56 bits, 7 at a time.
		out := make([]byte, 9)
		out[8] = byte(v)
		rest := v >> 8
		for i := 7; i >= 0; i-- {
			out[i] = byte(rest&0x7f) | 0x80
			rest >>= 7
		}
		return out
	}
	var raw [8]byte
	n := 0
	for i := 0; i < 8 && v > 0; i++ {
		raw[i] = byte(v & 0x7f)
		v >>= 7
		n++
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = raw[n-1-i]
		if i < n-1 {
			out[i] |= 0x80
		}
	}
	return out
}

// buildSchemaRowFile builds a single-page database with one
// sqlite_schema row describing "CREATE TABLE t1(x)" rooted at page 2.
func buildSchemaRowFile(t *testing.T) string {
	t.Helper()
	pageSize := 4096
	buf := make([]byte, pageSize)
	copy(buf[0:100], minimalHeaderBytes(uint16(pageSize), 1))
	buf[100] = sqlitefmt.PageTypeLeafTable

	sql := "CREATE TABLE t1(x)"
	cols := [][]byte{[]byte("table"), []byte("t1"), []byte("t1"), {2}, []byte(sql)}
	serialTypes := []uint64{
		13 + 2*uint64(len("table")),
		13 + 2*uint64(len("t1")),
		13 + 2*uint64(len("t1")),
		1,
		13 + 2*uint64(len(sql)),
	}

	var header bytes.Buffer
	for _, st := range serialTypes {
		header.Write(varint(st))
	}
	headerSizeField := varint(uint64(header.Len() + 1))

	var body bytes.Buffer
	body.Write(headerSizeField)
	body.Write(header.Bytes())
	for _, c := range cols {
		body.Write(c)
	}

	rowid := varint(1)
	payloadSize := varint(uint64(body.Len()))

	var cell bytes.Buffer
	cell.Write(payloadSize)
	cell.Write(rowid)
	cell.Write(body.Bytes())

	cellOffset := pageSize - cell.Len()
	copy(buf[cellOffset:], cell.Bytes())

	putBE16(buf[103:105], 1)
	putBE16(buf[105:107], uint16(cellOffset))
	putBE16(buf[108:110], uint16(cellOffset))

	dir := t.TempDir()
	path := filepath.Join(dir, "schema.db")
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

func TestDbInfo(t *testing.T) {
	db, err := sqlitefmt.Open(buildSchemaRowFile(t))
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	require.NoError(t, DbInfo(&buf, db))
	require.Contains(t, buf.String(), "database page size: 4096")
	require.Contains(t, buf.String(), "number of tables: 1")
}

func TestTables(t *testing.T) {
	db, err := sqlitefmt.Open(buildSchemaRowFile(t))
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	require.NoError(t, Tables(&buf, db))
	require.Contains(t, buf.String(), "sqlite_master")
	require.Contains(t, buf.String(), "t1")
}

func TestSchema(t *testing.T) {
	db, err := sqlitefmt.Open(buildSchemaRowFile(t))
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	require.NoError(t, Schema(&buf, db))
	require.Contains(t, buf.String(), "CREATE TABLE t1(x)")
}

func TestDump_PrintsPageSummaryAndRowid(t *testing.T) {
	db, err := sqlitefmt.Open(buildSchemaRowFile(t))
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, db))
	require.Contains(t, buf.String(), "page 1: type=0x0d cells=1")
	require.Contains(t, buf.String(), "rowid=1")
}

func TestJSON_ValidDocument(t *testing.T) {
	db, err := sqlitefmt.Open(buildSchemaRowFile(t))
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, db))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.EqualValues(t, 4096, doc["page_size"])

	schema, ok := doc["schema"].([]interface{})
	require.True(t, ok)
	require.Len(t, schema, 1)
}

func TestJSONError_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONError(&buf, sqlitefmt.ErrBadMagic))

	var doc map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.NotEmpty(t, doc["error"])
}
