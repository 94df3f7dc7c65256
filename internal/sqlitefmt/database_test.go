package sqlitefmt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempDB(t *testing.T, data []byte) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestOpen_MinimalFile(t *testing.T) {
	path := writeTempDB(t, buildMinimalFile())

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 4096, db.Header.ActualPageSize())
	require.Len(t, db.Pages, 1)
	assert.Equal(t, uint8(PageTypeLeafTable), db.Pages[0].PageType)
	assert.Equal(t, uint16(0), db.Pages[0].CellCount)

	schema, err := db.Schema()
	require.NoError(t, err)
	assert.Empty(t, schema)
}

func TestOpen_FileTooShortFails(t *testing.T) {
	path := writeTempDB(t, make([]byte, 50))

	_, err := Open(path)
	require.Error(t, err)
}

func TestOpen_NonexistentFileFails(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIOFailed)
}

func TestOpen_SchemaRow(t *testing.T) {
	pageSize := 4096
	buf := make([]byte, pageSize)
	copy(buf[0:100], minimalHeaderBytes(uint16(pageSize), 1))
	buf[100] = PageTypeLeafTable

	cell := buildCell(1, []uint64{
		uint64(13 + 2*len("table")),
		uint64(13 + 2*len("t1")),
		uint64(13 + 2*len("t1")),
		1,
		uint64(13 + 2*len("CREATE TABLE t1(x)")),
	}, [][]byte{
		[]byte("table"), []byte("t1"), []byte("t1"), {2}, []byte("CREATE TABLE t1(x)"),
	})

	cellOffset := pageSize - len(cell)
	copy(buf[cellOffset:], cell)

	putBE16(buf[103:105], 1) // cell_count = 1
	putBE16(buf[105:107], uint16(cellOffset))
	putBE16(buf[108:110], uint16(cellOffset)) // cell pointer array entry

	path := writeTempDB(t, buf)
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	schema, err := db.Schema()
	require.NoError(t, err)
	require.Len(t, schema, 1)
	assert.Equal(t, "table", schema[0].Type)
	assert.Equal(t, "t1", schema[0].Name)
	assert.Equal(t, "t1", schema[0].TblName)
	assert.EqualValues(t, 2, schema[0].RootPage)
	assert.Equal(t, "CREATE TABLE t1(x)", schema[0].SQL)
}
