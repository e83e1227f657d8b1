package reader

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/pierrec/lz4/v4"
	"gotest.tools/v3/assert"
)

// door is the parquet fixture row type
type door struct {
	Artikel string  `parquet:"Artikel"`
	Tuertyp string  `parquet:"Tuertyp"`
	Dicke   int64   `parquet:"Dicke_mm"`
	Preis   float64 `parquet:"Preis"`
	Lager   bool    `parquet:"Lager"`
}

var fixtureDoors = []door{
	{Artikel: "A-100", Tuertyp: "VSR", Dicke: 39, Preis: 129.5, Lager: true},
	{Artikel: "A-200", Tuertyp: "VSR", Dicke: 45, Preis: 149, Lager: false},
	{Artikel: "B-300", Tuertyp: "LS", Dicke: 39, Preis: 99.9, Lager: true},
}

// writeParquet writes rows to dir/name and returns the path
func writeParquet(t *testing.T, dir, name string, rows []door) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	assert.NilError(t, err)

	writer := parquet.NewGenericWriter[door](f)
	_, err = writer.Write(rows)
	assert.NilError(t, err)
	assert.NilError(t, writer.Close())
	assert.NilError(t, f.Close())

	return path
}

// compressLZ4 writes an lz4-compressed copy of src to dst
func compressLZ4(t *testing.T, src, dst string) {
	t.Helper()
	in, err := os.Open(src)
	assert.NilError(t, err)
	defer in.Close()

	out, err := os.Create(dst)
	assert.NilError(t, err)

	zw := lz4.NewWriter(out)
	_, err = io.Copy(zw, in)
	assert.NilError(t, err)
	assert.NilError(t, zw.Close())
	assert.NilError(t, out.Close())
}

func TestReadParquet(t *testing.T) {
	path := writeParquet(t, t.TempDir(), "doors.parquet", fixtureDoors)

	got, err := ReadParquet(path)
	assert.NilError(t, err)

	assert.DeepEqual(t, got.ColumnNames(), []string{"Artikel", "Tuertyp", "Dicke_mm", "Preis", "Lager"})
	assert.Equal(t, got.Len(), 3)
	assert.DeepEqual(t, got.Strings()[0], []string{"A-100", "VSR", "39", "129.5", "true"})

	first := got.Row(0)
	assert.Equal(t, first[2].Value, int64(39))
	assert.Equal(t, first[4].Value, true)
}

func TestParquetReader_Columns(t *testing.T) {
	path := writeParquet(t, t.TempDir(), "doors.parquet", fixtureDoors)

	r, err := NewParquetReader(path)
	assert.NilError(t, err)
	defer r.Close()

	types := map[string]string{}
	for _, col := range r.Columns() {
		types[col.Name] = col.Type
	}
	assert.Equal(t, types["Artikel"], "STRING")
	assert.Equal(t, types["Dicke_mm"], "INT64")
	assert.Equal(t, types["Preis"], "FLOAT64")
	assert.Equal(t, types["Lager"], "BOOLEAN")

	assert.NilError(t, r.Close())
	assert.NilError(t, r.Close())
}

func TestReadParquet_LZ4(t *testing.T) {
	dir := t.TempDir()
	plain := writeParquet(t, dir, "doors.parquet", fixtureDoors)
	compressed := filepath.Join(dir, "doors.parquet.lz4")
	compressLZ4(t, plain, compressed)

	got, err := ReadParquet(compressed)
	assert.NilError(t, err)
	assert.Equal(t, got.Len(), 3)
	assert.Equal(t, got.Row(2).Text(0), "B-300")
}

func TestReadParquet_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadParquet(filepath.Join(dir, "missing.parquet"))
	assert.Assert(t, errors.Is(err, os.ErrNotExist), "got %v", err)

	notParquet := filepath.Join(dir, "bad.parquet")
	assert.NilError(t, os.WriteFile(notParquet, []byte("not a parquet file"), 0o644))
	_, err = ReadParquet(notParquet)
	assert.ErrorContains(t, err, "failed to open parquet file")
}
