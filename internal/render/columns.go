// Package render implements the two rendering back-ends named in the
// decoder's external interface: a plain-text dump and a JSON document.
// Neither renderer feeds decisions back into the core decoder; a
// CREATE TABLE statement that fails to parse degrades to positional
// column names rather than failing the render.
package render

import (
	"fmt"
	"strings"

	"github.com/xwb1989/sqlparser"
)

// ColumnNames recovers column names from a CREATE TABLE statement, for
// display purposes only. On any parse failure it returns nil, and callers
// should fall back to positional names (col0, col1, ...).
func ColumnNames(createTableSQL string) []string {
	normalized := normalizeSQLiteToMySQL(createTableSQL)

	stmt, err := sqlparser.Parse(normalized)
	if err != nil {
		return nil
	}

	ddl, ok := stmt.(*sqlparser.DDL)
	if !ok || ddl.Action != "create" || ddl.TableSpec == nil {
		return nil
	}

	names := make([]string, len(ddl.TableSpec.Columns))
	for i, col := range ddl.TableSpec.Columns {
		names[i] = col.Name.String()
	}
	return names
}

// normalizeSQLiteToMySQL rewrites the handful of SQLite DDL idioms that
// trip up sqlparser's MySQL-flavored grammar, so CREATE TABLE text pulled
// straight from sqlite_schema.sql has a chance of parsing.
func normalizeSQLiteToMySQL(sql string) string {
	normalized := strings.ReplaceAll(sql, `"`, "")
	normalized = strings.ReplaceAll(normalized, "primary key autoincrement", "AUTO_INCREMENT PRIMARY KEY")
	normalized = strings.ReplaceAll(normalized, "PRIMARY KEY AUTOINCREMENT", "AUTO_INCREMENT PRIMARY KEY")
	return strings.TrimSpace(normalized)
}

func fallbackColumnNames(count int) []string {
	names := make([]string, count)
	for i := range names {
		names[i] = fmt.Sprintf("col%d", i)
	}
	return names
}
