// Package output provides formatters for writing filtered catalog tables.
//
// This package defines the Formatter interface and provides implementations
// for a terminal table, JSON Lines and CSV. All formatters work with
// *table.Table values and keep the table's column order.
//
// # Supported Formats
//
//   - table: aligned text with a header and row count (for terminals)
//   - JSON Lines: one JSON object per row, keyed by column name
//   - CSV: comma-separated values with a header row
//
// # Basic Usage
//
// Picking a formatter by name:
//
//	formatter, err := output.New("csv", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(filtered); err != nil {
//	    log.Fatal(err)
//	}
//
// # Writing to Different Destinations
//
//	formatter := output.NewJSONFormatter(os.Stdout)
//
//	file, err := os.Create("result.jsonl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer file.Close()
//
//	formatter.SetOutput(file)
//
// # Type Handling
//
//   - JSON keeps typed cell values (numbers, booleans) where the loader had them
//   - CSV and table output use each cell's text form
//   - CSV text that a spreadsheet would run as a formula is prefixed with '
//
// # Schemas
//
// SchemaTable turns a column list into a name/type table, so schemas are
// printed with the same formatters as data.
package output
