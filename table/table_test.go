package table

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New(
		[]Column{{Name: "Tuertyp", Type: "STRING"}, {Name: "Dicke_mm", Type: "INT64"}},
		[]Row{
			{TextCell("VSR"), NewCell(int64(39))},
			{TextCell("VSR"), NewCell(int64(45))},
			{TextCell("LS"), NewCell(int64(39))},
		},
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tbl
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		columns []Column
		rows    []Row
		wantErr error
	}{
		{
			name:    "valid",
			columns: []Column{{Name: "a"}, {Name: "b"}},
			rows:    []Row{TextRow("1", "2")},
		},
		{
			name:    "no rows",
			columns: []Column{{Name: "a"}},
		},
		{
			name:    "duplicate column differing in case",
			columns: []Column{{Name: "Name"}, {Name: "NAME"}},
			wantErr: ErrDuplicateColumn,
		},
		{
			name:    "short row",
			columns: []Column{{Name: "a"}, {Name: "b"}},
			rows:    []Row{TextRow("1")},
			wantErr: ErrRowWidth,
		},
		{
			name:    "long row",
			columns: []Column{{Name: "a"}},
			rows:    []Row{TextRow("1", "2")},
			wantErr: ErrRowWidth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.columns, tt.rows)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("New() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	cols := []Column{{Name: "a"}}
	rows := []Row{TextRow("x")}
	tbl, err := New(cols, rows)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	cols[0].Name = "changed"
	rows[0][0] = TextCell("changed")

	if got := tbl.ColumnNames()[0]; got != "a" {
		t.Errorf("column name = %q, want %q", got, "a")
	}
	if got := tbl.Row(0).Text(0); got != "x" {
		t.Errorf("cell = %q, want %q", got, "x")
	}
}

func TestTable_ColumnIndex(t *testing.T) {
	tbl := sampleTable(t)

	if got := tbl.ColumnIndex("dicke_MM"); got != 1 {
		t.Errorf("ColumnIndex(dicke_MM) = %d, want 1", got)
	}
	if got := tbl.ColumnIndex("missing"); got != -1 {
		t.Errorf("ColumnIndex(missing) = %d, want -1", got)
	}
}

func TestTable_Select(t *testing.T) {
	tbl := sampleTable(t)

	sel := tbl.Select([]int{2, 0, 7})
	if sel.Len() != 2 {
		t.Fatalf("Select() len = %d, want 2", sel.Len())
	}
	if got := sel.Row(0).Text(0); got != "LS" {
		t.Errorf("first row = %q, want LS", got)
	}
	if !reflect.DeepEqual(sel.ColumnNames(), tbl.ColumnNames()) {
		t.Errorf("Select() changed schema: %v", sel.ColumnNames())
	}
	if tbl.Len() != 3 {
		t.Errorf("source table modified, len = %d", tbl.Len())
	}

	empty := tbl.Select(nil)
	if empty.Len() != 0 || empty.NumColumns() != 2 {
		t.Errorf("Select(nil) = %d rows / %d columns, want 0 / 2", empty.Len(), empty.NumColumns())
	}
}

func TestTable_Slice(t *testing.T) {
	tbl := sampleTable(t)

	tests := []struct {
		name          string
		offset, limit int
		want          int
	}{
		{"no limit", 0, 0, 3},
		{"limit", 0, 2, 2},
		{"offset", 1, 0, 2},
		{"offset and limit", 1, 1, 1},
		{"offset past end", 10, 0, 0},
		{"negative offset", -1, 0, 3},
		{"huge limit", 1, math.MaxInt, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tbl.Slice(tt.offset, tt.limit).Len(); got != tt.want {
				t.Errorf("Slice(%d, %d) len = %d, want %d", tt.offset, tt.limit, got, tt.want)
			}
		})
	}
}

func TestTable_Records(t *testing.T) {
	tbl := sampleTable(t)

	records := tbl.Records()
	want := map[string]interface{}{"Tuertyp": "VSR", "Dicke_mm": int64(39)}
	if !reflect.DeepEqual(records[0], want) {
		t.Errorf("Records()[0] = %v, want %v", records[0], want)
	}
}

func TestTable_AppendAndWithColumn(t *testing.T) {
	tbl := sampleTable(t)

	both, err := tbl.Append(tbl)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if both.Len() != 6 {
		t.Errorf("Append() len = %d, want 6", both.Len())
	}

	other, _ := New([]Column{{Name: "x"}, {Name: "y"}}, nil)
	if _, err := tbl.Append(other); err == nil {
		t.Error("Append() with different schema should fail")
	}

	tagged, err := tbl.WithColumn(Column{Name: "_file", Type: "STRING"}, "a.csv")
	if err != nil {
		t.Fatalf("WithColumn() error = %v", err)
	}
	if got := tagged.Row(2).Text(2); got != "a.csv" {
		t.Errorf("tagged cell = %q, want a.csv", got)
	}
	if tbl.NumColumns() != 2 {
		t.Errorf("WithColumn() modified source")
	}
	if _, err := tbl.WithColumn(Column{Name: "TUERTYP"}, ""); !errors.Is(err, ErrDuplicateColumn) {
		t.Errorf("WithColumn() duplicate error = %v", err)
	}
}

func TestTextOf(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, ""},
		{"string", "VSR", "VSR"},
		{"bytes", []byte("abc"), "abc"},
		{"int", 39, "39"},
		{"int64", int64(-5), "-5"},
		{"uint8", uint8(7), "7"},
		{"float64", 95.5, "95.5"},
		{"float64 whole", float64(39), "39"},
		{"float32", float32(1.5), "1.5"},
		{"bool", true, "true"},
		{"time", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02T03:04:05Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TextOf(tt.in); got != tt.want {
				t.Errorf("TextOf(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRow_TextOutOfRange(t *testing.T) {
	row := TextRow("a")
	if got := row.Text(5); got != "" {
		t.Errorf("Text(5) = %q, want empty", got)
	}
	if got := row.Text(-1); got != "" {
		t.Errorf("Text(-1) = %q, want empty", got)
	}
}
