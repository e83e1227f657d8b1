package table

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateColumn is returned when two columns share a name (case-insensitive)
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrRowWidth is returned when a row does not have one cell per column
	ErrRowWidth = errors.New("row width does not match column count")
)

// Column describes one column of a table.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"` // descriptive only, e.g. STRING or INT64
}

// Row is an ordered list of cells aligned by position with the table's columns.
type Row []Cell

// Text returns the text of the cell at position i, or "" if there is none.
func (r Row) Text(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i].Text
}

// Table is an immutable set of columns and rows.
type Table struct {
	columns []Column
	rows    []Row
}

// New builds a table after checking column uniqueness and row width.
//
// The column and row slices are copied so later changes by the caller do not
// leak into the table.
func New(columns []Column, rows []Row) (*Table, error) {
	seen := make(map[string]int, len(columns))
	for i, col := range columns {
		key := strings.ToLower(col.Name)
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %q (columns %d and %d)", ErrDuplicateColumn, col.Name, prev, i)
		}
		seen[key] = i
	}

	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRowWidth, i, len(row), len(columns))
		}
	}

	t := &Table{
		columns: append([]Column(nil), columns...),
		rows:    make([]Row, len(rows)),
	}
	for i, row := range rows {
		t.rows[i] = append(Row(nil), row...)
	}
	return t, nil
}

// Empty returns a table with no columns and no rows.
func Empty() *Table {
	return &Table{}
}

// Columns returns a copy of the column definitions.
func (t *Table) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

// ColumnNames returns the column names in schema order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the row at index i. Rows must not be modified.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Rows returns the rows of the table. The slice is shared and must not be modified.
func (t *Table) Rows() []Row {
	return t.rows
}

// ColumnIndex returns the position of the named column, compared
// case-insensitively, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.columns {
		if strings.EqualFold(col.Name, name) {
			return i
		}
	}
	return -1
}

// Select returns a new table with the same columns and the rows at the given
// indices, in the given order. Indices out of range are ignored.
func (t *Table) Select(indices []int) *Table {
	out := &Table{
		columns: t.columns,
		rows:    make([]Row, 0, len(indices)),
	}
	for _, i := range indices {
		if i >= 0 && i < len(t.rows) {
			out.rows = append(out.rows, t.rows[i])
		}
	}
	return out
}

// Slice returns rows [offset, offset+limit) as a new table. A limit of 0 means
// no limit.
func (t *Table) Slice(offset, limit int) *Table {
	if offset < 0 {
		offset = 0
	}
	if offset > len(t.rows) {
		offset = len(t.rows)
	}
	end := len(t.rows)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return &Table{columns: t.columns, rows: t.rows[offset:end]}
}

// Records returns each row as a map from column name to the cell's typed
// value (or its text when the loader kept no typed value).
func (t *Table) Records() []map[string]interface{} {
	records := make([]map[string]interface{}, len(t.rows))
	for i, row := range t.rows {
		record := make(map[string]interface{}, len(t.columns))
		for j, col := range t.columns {
			record[col.Name] = row[j].Interface()
		}
		records[i] = record
	}
	return records
}

// Strings returns the text projection of every row.
func (t *Table) Strings() [][]string {
	out := make([][]string, len(t.rows))
	for i, row := range t.rows {
		texts := make([]string, len(row))
		for j, cell := range row {
			texts[j] = cell.Text
		}
		out[i] = texts
	}
	return out
}

// Append returns a new table holding the rows of t followed by the rows of
// other. Both tables must have the same column names in the same order.
func (t *Table) Append(other *Table) (*Table, error) {
	if len(t.columns) != len(other.columns) {
		return nil, fmt.Errorf("%w: %d columns vs %d", ErrRowWidth, len(t.columns), len(other.columns))
	}
	for i := range t.columns {
		if !strings.EqualFold(t.columns[i].Name, other.columns[i].Name) {
			return nil, fmt.Errorf("column %d differs: %q vs %q", i, t.columns[i].Name, other.columns[i].Name)
		}
	}
	rows := make([]Row, 0, len(t.rows)+len(other.rows))
	rows = append(rows, t.rows...)
	rows = append(rows, other.rows...)
	return &Table{columns: t.columns, rows: rows}, nil
}

// WithColumn returns a new table with an extra column whose cells all hold value.
func (t *Table) WithColumn(col Column, value interface{}) (*Table, error) {
	columns := append(t.Columns(), col)
	cell := NewCell(value)
	rows := make([]Row, len(t.rows))
	for i, row := range t.rows {
		rows[i] = append(append(make(Row, 0, len(row)+1), row...), cell)
	}
	return New(columns, rows)
}
