package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/pierrec/lz4/v4"

	"github.com/vegasq/catfilter/table"
)

// ParquetReader reads a parquet file into a table.
//
// It keeps the OS file handle open for the lifetime of the reader so the
// parquet file can be read lazily.
type ParquetReader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewParquetReader opens a parquet file. Paths ending in .lz4 are decompressed
// into memory first, since parquet needs random access.
//
// Example:
//
//	r, err := NewParquetReader("catalog.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
func NewParquetReader(path string) (*ParquetReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	if isLZ4(path) {
		data, err := io.ReadAll(lz4.NewReader(file))
		_ = file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
		}
		pqFile, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("failed to open parquet file: %w", err)
		}
		return &ParquetReader{pqFile: pqFile}, nil
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &ParquetReader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// Columns returns the top-level columns in schema order
func (r *ParquetReader) Columns() []table.Column {
	fields := r.pqFile.Schema().Fields()
	columns := make([]table.Column, len(fields))
	for i, field := range fields {
		columns[i] = table.Column{Name: field.Name(), Type: columnType(field)}
	}
	return columns
}

// ReadTable reads every row into memory. Cells keep the parquet value as
// their typed value.
func (r *ParquetReader) ReadTable() (*table.Table, error) {
	columns := r.Columns()
	rows := make([]table.Row, 0, r.pqFile.NumRows())

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	for {
		record := make(map[string]interface{})
		err := reader.Read(&record)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		row := make(table.Row, len(columns))
		for i, col := range columns {
			row[i] = table.NewCell(record[col.Name])
		}
		rows = append(rows, row)
	}

	return table.New(columns, rows)
}

// Schema returns the parquet file schema
func (r *ParquetReader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Close releases the file handle. It is safe to call Close multiple times.
func (r *ParquetReader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ReadParquet reads a whole parquet file into a table
func ReadParquet(path string) (*table.Table, error) {
	r, err := NewParquetReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return r.ReadTable()
}
