// Package table provides the immutable in-memory table filtered by the query engine.
//
// A Table is an ordered list of columns plus an ordered list of rows. Every
// row carries exactly one cell per column, and column names are unique when
// compared case-insensitively. Tables are never modified after construction:
// filtering produces a new Table that shares the source's schema.
//
// # Cells
//
// Source data is loosely typed (spreadsheet exports, parquet columns), but
// the query engine only ever matches text. Each Cell therefore keeps two
// forms of the same value:
//
//   - Text: the matchable text projection
//   - Value: the original typed value, when the loader had one
//
// TextOf produces the text projection for any value:
//
//	cell := table.NewCell(int64(39))
//	fmt.Println(cell.Text) // "39"
//
// # Building Tables
//
//	cols := []table.Column{{Name: "Tuertyp"}, {Name: "Dicke_mm"}}
//	rows := []table.Row{
//	    table.TextRow("VSR", "39"),
//	    table.TextRow("LS", "45"),
//	}
//	t, err := table.New(cols, rows)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Attribute Export
//
// Records returns every row as a map of column name to typed value, which is
// the form consumers use to copy a selected row onto their own objects.
package table
