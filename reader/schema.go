package reader

import (
	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/catfilter/table"
)

// SchemaOf returns the columns of a source without keeping its rows.
//
// For parquet files only the footer is read; other formats are loaded in full.
func SchemaOf(path string, opts Options) ([]table.Column, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	if format == FormatParquet {
		r, err := NewParquetReader(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = r.Close() }()
		return r.Columns(), nil
	}

	t, err := Load(path, opts)
	if err != nil {
		return nil, err
	}
	return t.Columns(), nil
}

// columnType returns a user-friendly type name for a parquet field.
//
// Logical types are preferred over physical ones; groups (nested structs,
// lists, maps) are reported as GROUP.
func columnType(field parquet.Field) string {
	if len(field.Fields()) > 0 || field.Type() == nil {
		return "GROUP"
	}

	if logicalType := field.Type().LogicalType(); logicalType != nil {
		switch name := logicalType.String(); name {
		case "STRING", "UTF8":
			return "STRING"
		case "ENUM", "UUID", "DATE", "TIME", "TIMESTAMP", "DECIMAL", "JSON", "BSON":
			return name
		}
	}

	switch field.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT32"
	case parquet.Double:
		return "FLOAT64"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}
