// Package query filters catalog tables with short, typed-in search strings.
//
// A query string is either free text matched against every column, or a list
// of key:value criteria that must all hold:
//
//	VSR            rows where any column contains "vsr"
//	*39*           rows where any column contains "39"
//	Tuertyp:VSR    rows whose Tuertyp column contains "vsr"
//	Tuertyp:VS*    rows whose Tuertyp column starts with "vs"
//	Tuertyp:VSR Dicke:39
//	               rows matching both criteria
//
// # Basic Usage
//
//	engine := query.NewEngine()
//	filtered := engine.Search(catalog, "Tuertyp:VSR Dicke:39")
//
// Search always filters the table it is given. Running a second query against
// the same catalog does not narrow the first result.
//
// # Query Grammar
//
//   - Tokens are separated by whitespace
//   - A token key:value (split on the first colon, both halves non-empty) is a criterion
//   - If no token is a criterion, the whole string is free text
//   - Tokens that are not criteria are dropped when criteria exist
//   - Multiple criteria are combined with AND
//
// # Patterns
//
// A pattern without * matches any field containing it, ignoring case. A
// pattern with * must match the whole field, where * stands for any run of
// characters:
//
//	VS*   matches "VSR" and "VS30" but not "XVS"
//	*39   matches "1039" but not "390"
//
// # Column Resolution
//
// The key of a criterion is resolved against the table's columns in three
// steps, first hit wins:
//
//   - Exact: the key equals a column name, ignoring case
//   - Alias: the AliasMap maps the key to a column present in the table
//   - Fuzzy: the first column whose name contains the key, ignoring case
//
// A key that resolves to nothing is skipped: the criterion does not filter.
//
// # Error Handling
//
// Nothing in this package returns an error for a query string. Degenerate
// input filters either nothing or everything, and a query with no matches
// returns a table with the source's columns and zero rows.
package query
