// Package reader loads catalog files into tables.
//
// CSV, TSV and Apache Parquet files are supported, each optionally
// compressed with lz4 (a trailing .lz4 extension). Delimited text is read
// with encoding/csv; parquet is read with github.com/parquet-go/parquet-go.
//
// # Basic Usage
//
// Loading a single file:
//
//	catalog, err := reader.Load("tueren.csv", reader.Options{TrimSpace: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Semicolon-separated exports from German spreadsheet locales:
//
//	catalog, err := reader.Load("tueren.csv", reader.Options{Delimiter: ';'})
//
// # Multi-file Operations
//
// Loading every file matching a glob pattern:
//
//	catalog, err := reader.LoadMultiple("exports/*.csv", reader.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// All matched files must share their columns. The combined table gets an
// extra "_file" column holding each row's source path.
//
// # Cell Values
//
// CSV cells are plain text. Parquet cells keep their typed value (int64,
// float64, bool, ...) next to the text form the query engine matches.
//
// # Schema Introspection
//
//	columns, err := reader.SchemaOf("catalog.parquet", reader.Options{})
//	for _, col := range columns {
//	    fmt.Printf("%s: %s\n", col.Name, col.Type)
//	}
package reader
