package sqlitefmt

// SchemaEntry is one row of the recovered sqlite_schema table. Any of
// the text fields may be absent (HasX false) if the stored serial type
// was not TEXT — including NULL, which is valid SQLite for an SQL column
// on some object types (e.g. auto-indexes).
type SchemaEntry struct {
	Type        string
	HasType     bool
	Name        string
	HasName     bool
	TblName     string
	HasTblName  bool
	RootPage    int64
	HasRootPage bool
	SQL         string
	HasSQL      bool
}

func textField(v Value) (string, bool) {
	if v.Kind == KindText {
		return string(v.Bytes), true
	}
	return "", false
}

func intField(v Value) (int64, bool) {
	switch v.Kind {
	case KindInt:
		return v.Int, true
	case KindZero:
		return 0, true
	case KindOne:
		return 1, true
	default:
		return 0, false
	}
}

// decodeSchema runs the record decoder over every cell on page 1 and
// interprets the columns positionally as (type, name, tbl_name, rootpage,
// sql). Page 1 must be a leaf-table page; any other page type
// yields an empty schema. Rows with fewer than 5 columns are skipped,
// rather than failing the whole walk.
func decodeSchema(db *Database) ([]SchemaEntry, error) {
	if len(db.Pages) == 0 {
		return nil, nil
	}
	page1Header := db.Pages[0]
	if page1Header.PageType != PageTypeLeafTable {
		return nil, nil
	}

	pageSize := db.Header.ActualPageSize()
	pageBytes, err := db.view.Bytes(0, pageSize)
	if err != nil {
		return nil, NewDecodeError("decode_schema", err, nil)
	}

	var entries []SchemaEntry
	for _, ptr := range page1Header.CellPointers {
		rec, err := decodeLeafTableCell(pageBytes, int(ptr), pageSize)
		if err != nil {
			continue // a single malformed cell does not abort schema recovery
		}
		if rec.Truncated || len(rec.Values) < 5 {
			continue
		}

		var e SchemaEntry
		e.Type, e.HasType = textField(rec.Values[0])
		e.Name, e.HasName = textField(rec.Values[1])
		e.TblName, e.HasTblName = textField(rec.Values[2])
		e.RootPage, e.HasRootPage = intField(rec.Values[3])
		e.SQL, e.HasSQL = textField(rec.Values[4])

		entries = append(entries, e)
	}

	return entries, nil
}
