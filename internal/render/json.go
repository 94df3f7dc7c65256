package render

import (
	"encoding/json"
	"io"

	"github.com/hgye/sqlitefmt/internal/sqlitefmt"
)

// jsonSchemaEntry mirrors sqlitefmt.SchemaEntry for JSON output, using
// pointers so an absent (non-TEXT) field serializes as null rather than
// an empty string.
type jsonSchemaEntry struct {
	Type     *string `json:"type"`
	Name     *string `json:"name"`
	TblName  *string `json:"tbl_name"`
	RootPage *int64  `json:"rootpage"`
	SQL      *string `json:"sql"`
}

type jsonColumn struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

type jsonRecord struct {
	Rowid     uint64       `json:"rowid"`
	Truncated bool         `json:"truncated"`
	Columns   []jsonColumn `json:"columns,omitempty"`
}

type jsonPage struct {
	Index     int          `json:"index"`
	Type      uint8        `json:"type"`
	CellCount uint16       `json:"cell_count"`
	Records   []jsonRecord `json:"records,omitempty"`
}

type jsonDocument struct {
	PageSize int                `json:"page_size"`
	Schema   []jsonSchemaEntry  `json:"schema"`
	Pages    []jsonPage         `json:"pages"`
}

// JSON renders the whole database as a single machine-consumable
// document, per the decoder's JSON-mode external interface.
func JSON(w io.Writer, db *sqlitefmt.Database) error {
	schema, err := db.Schema()
	if err != nil {
		return err
	}
	columnsByRootPage := columnNamesByRootPage(schema)

	doc := jsonDocument{
		PageSize: db.Header.ActualPageSize(),
		Schema:   make([]jsonSchemaEntry, len(schema)),
		Pages:    make([]jsonPage, len(db.Pages)),
	}

	for i, e := range schema {
		doc.Schema[i] = toJSONSchemaEntry(e)
	}

	for i := 1; i <= len(db.Pages); i++ {
		header := db.Pages[i-1]
		page := jsonPage{Index: i, Type: header.PageType, CellCount: header.CellCount}

		if header.PageType == sqlitefmt.PageTypeLeafTable {
			records, err := db.Cells(i)
			if err != nil {
				return err
			}
			names := columnsByRootPage[i]
			page.Records = make([]jsonRecord, len(records))
			for ri, rec := range records {
				page.Records[ri] = toJSONRecord(rec, names)
			}
		}

		doc.Pages[i-1] = page
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// JSONError writes {"error": "<message>"} to w, per the CLI's JSON-mode
// error contract.
func JSONError(w io.Writer, err error) error {
	enc := json.NewEncoder(w)
	return enc.Encode(struct {
		Error string `json:"error"`
	}{Error: err.Error()})
}

func toJSONSchemaEntry(e sqlitefmt.SchemaEntry) jsonSchemaEntry {
	var out jsonSchemaEntry
	if e.HasType {
		out.Type = &e.Type
	}
	if e.HasName {
		out.Name = &e.Name
	}
	if e.HasTblName {
		out.TblName = &e.TblName
	}
	if e.HasRootPage {
		out.RootPage = &e.RootPage
	}
	if e.HasSQL {
		out.SQL = &e.SQL
	}
	return out
}

func toJSONRecord(rec *sqlitefmt.Record, names []string) jsonRecord {
	out := jsonRecord{Rowid: rec.Rowid, Truncated: rec.Truncated}
	if rec.Truncated {
		return out
	}
	out.Columns = make([]jsonColumn, len(rec.Values))
	fallback := fallbackColumnNames(len(rec.Values))
	for i, v := range rec.Values {
		name := fallback[i]
		if i < len(names) {
			name = names[i]
		}
		out.Columns[i] = jsonColumn{Name: name, Value: jsonValue(v)}
	}
	return out
}

func jsonValue(v sqlitefmt.Value) interface{} {
	switch v.Kind {
	case sqlitefmt.KindNull:
		return nil
	case sqlitefmt.KindInt:
		return v.Int
	case sqlitefmt.KindFloat:
		return v.Float
	case sqlitefmt.KindText:
		return string(v.Bytes)
	case sqlitefmt.KindBlob:
		return v.Bytes
	case sqlitefmt.KindZero:
		return int64(0)
	case sqlitefmt.KindOne:
		return int64(1)
	default:
		return nil
	}
}

