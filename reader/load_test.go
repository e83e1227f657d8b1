package reader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"doors.csv", FormatCSV, false},
		{"DOORS.CSV", FormatCSV, false},
		{"doors.txt", FormatCSV, false},
		{"doors.tsv", FormatTSV, false},
		{"doors.parquet", FormatParquet, false},
		{"doors.csv.lz4", FormatCSV, false},
		{"doors.parquet.LZ4", FormatParquet, false},
		{"doors.xlsx", 0, true},
		{"doors", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				assert.Assert(t, errors.Is(err, ErrUnsupportedFormat))
				return
			}
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestLoad_CSVAndTSV(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeFile(t, dir, "doors.csv", "Artikel,Tuertyp\nA-100,VSR\n")
	tsvPath := writeFile(t, dir, "doors.tsv", "Artikel\tTuertyp\nA-100\tVSR\n")

	for _, path := range []string{csvPath, tsvPath} {
		got, err := Load(path, Options{})
		assert.NilError(t, err)
		assert.DeepEqual(t, got.ColumnNames(), []string{"Artikel", "Tuertyp"})
		assert.DeepEqual(t, got.Strings(), [][]string{{"A-100", "VSR"}})
	}
}

func TestLoad_CSVLZ4(t *testing.T) {
	dir := t.TempDir()
	plain := writeFile(t, dir, "doors.csv", "Artikel,Tuertyp\nA-100,VSR\nB-300,LS\n")
	compressed := filepath.Join(dir, "doors.csv.lz4")
	compressLZ4(t, plain, compressed)

	got, err := Load(compressed, Options{})
	assert.NilError(t, err)
	assert.Equal(t, got.Len(), 2)
	assert.Equal(t, got.Row(1).Text(1), "LS")
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "doors.xlsx"), Options{})
	assert.Assert(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = Load(filepath.Join(dir, "missing.csv"), Options{})
	assert.Assert(t, errors.Is(err, os.ErrNotExist), "got %v", err)

	empty := writeFile(t, dir, "empty.csv", "")
	_, err = Load(empty, Options{})
	assert.Assert(t, errors.Is(err, ErrNoHeader))
}

func TestLoadMultiple(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "Artikel,Tuertyp\nA-100,VSR\n")
	writeFile(t, dir, "b.csv", "artikel,TUERTYP\nB-300,LS\n")

	got, err := LoadMultiple(filepath.Join(dir, "*.csv"), Options{})
	assert.NilError(t, err)

	assert.DeepEqual(t, got.ColumnNames(), []string{"Artikel", "Tuertyp", FileColumn})
	assert.Equal(t, got.Len(), 2)
	assert.Equal(t, got.Row(0).Text(2), filepath.Join(dir, "a.csv"))
	assert.Equal(t, got.Row(1).Text(2), filepath.Join(dir, "b.csv"))
}

func TestLoadMultiple_SingleFileUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.csv", "Artikel\nA-100\n")

	got, err := LoadMultiple(path, Options{})
	assert.NilError(t, err)
	assert.DeepEqual(t, got.ColumnNames(), []string{"Artikel"})
}

func TestLoadMultiple_Parquet(t *testing.T) {
	dir := t.TempDir()
	writeParquet(t, dir, "a.parquet", fixtureDoors[:1])
	writeParquet(t, dir, "b.parquet", fixtureDoors[1:])

	got, err := LoadMultiple(filepath.Join(dir, "*.parquet"), Options{})
	assert.NilError(t, err)
	assert.Equal(t, got.Len(), 3)
	assert.Equal(t, got.NumColumns(), 6)
}

func TestLoadMultiple_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadMultiple(filepath.Join(dir, "*.csv"), Options{})
	assert.Assert(t, errors.Is(err, ErrNoFiles))

	writeFile(t, dir, "a.csv", "Artikel\nA-100\n")
	writeFile(t, dir, "b.csv", "Tuertyp\nVSR\n")
	_, err = LoadMultiple(filepath.Join(dir, "*.csv"), Options{})
	assert.Assert(t, errors.Is(err, ErrSchemaMismatch), "got %v", err)
}

func TestSchemaOf(t *testing.T) {
	dir := t.TempDir()
	pq := writeParquet(t, dir, "doors.parquet", fixtureDoors)
	csvPath := writeFile(t, dir, "doors.csv", "Artikel,Tuertyp\n")

	cols, err := SchemaOf(pq, Options{})
	assert.NilError(t, err)
	assert.Equal(t, len(cols), 5)
	assert.Equal(t, cols[2].Name, "Dicke_mm")

	cols, err = SchemaOf(csvPath, Options{})
	assert.NilError(t, err)
	assert.Equal(t, cols[1].Name, "Tuertyp")
	assert.Equal(t, cols[1].Type, "STRING")
}
