package render

import (
	"fmt"
	"io"

	"github.com/hgye/sqlitefmt/internal/sqlitefmt"
)

// DbInfo renders the ".dbinfo" verb: page size and number of root-level
// schema objects.
func DbInfo(w io.Writer, db *sqlitefmt.Database) error {
	schema, err := db.Schema()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "database page size: %d\n", db.Header.ActualPageSize())
	fmt.Fprintf(w, "number of tables: %d\n", len(schema))
	return nil
}

// Tables renders the ".tables" verb: the names of every table-type
// schema entry, sqlite_master included.
func Tables(w io.Writer, db *sqlitefmt.Database) error {
	schema, err := db.Schema()
	if err != nil {
		return err
	}
	fmt.Fprint(w, "sqlite_master")
	for _, e := range schema {
		if e.Type == "table" {
			fmt.Fprintf(w, " %s", e.Name)
		}
	}
	fmt.Fprintln(w)
	return nil
}

// Schema renders the ".schema" verb: every recovered SchemaEntry's SQL
// text, one per line.
func Schema(w io.Writer, db *sqlitefmt.Database) error {
	schema, err := db.Schema()
	if err != nil {
		return err
	}
	for _, e := range schema {
		fmt.Fprintln(w, e.SQL)
	}
	return nil
}

// Dump renders every page of the database: for leaf-table pages, every
// decoded cell's rowid and column values (named via ColumnNames when the
// owning table's CREATE TABLE SQL is known and parses); for other page
// types, just the b-tree header summary.
func Dump(w io.Writer, db *sqlitefmt.Database) error {
	schema, err := db.Schema()
	if err != nil {
		return err
	}
	columnsByRootPage := columnNamesByRootPage(schema)

	for i := 1; i <= len(db.Pages); i++ {
		header := db.Pages[i-1]
		fmt.Fprintf(w, "page %d: type=0x%02x cells=%d\n", i, header.PageType, header.CellCount)

		if header.PageType != sqlitefmt.PageTypeLeafTable {
			continue
		}

		records, err := db.Cells(i)
		if err != nil {
			return err
		}

		names := columnsByRootPage[i]
		for _, rec := range records {
			if rec.Truncated {
				fmt.Fprintln(w, "  <truncated>")
				continue
			}
			fmt.Fprintf(w, "  rowid=%d", rec.Rowid)
			fallback := fallbackColumnNames(len(rec.Values))
			for ci, v := range rec.Values {
				label := fallback[ci]
				if ci < len(names) {
					label = names[ci]
				}
				fmt.Fprintf(w, " %s=%s", label, v.String())
			}
			fmt.Fprintln(w)
		}
	}
	return nil
}

func columnNamesByRootPage(schema []sqlitefmt.SchemaEntry) map[int][]string {
	out := make(map[int][]string, len(schema))
	for _, e := range schema {
		if e.Type != "table" || !e.HasRootPage || !e.HasSQL {
			continue
		}
		names := ColumnNames(e.SQL)
		out[int(e.RootPage)] = names
	}
	return out
}
