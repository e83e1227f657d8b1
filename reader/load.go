package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4/v4"

	"github.com/vegasq/catfilter/table"
)

// maxFiles limits how many files a glob pattern may expand to
const maxFiles = 1000

// FileColumn is added to tables loaded from more than one file
const FileColumn = "_file"

var (
	// ErrUnsupportedFormat is returned for file extensions no reader handles
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrNoFiles is returned when a glob pattern matches nothing
	ErrNoFiles = errors.New("no files match pattern")

	// ErrSchemaMismatch is returned when files loaded together have different columns
	ErrSchemaMismatch = errors.New("files have different columns")

	// ErrNoHeader is returned when a CSV source with a header row is empty
	ErrNoHeader = errors.New("missing header row")
)

// Format identifies a source file type
type Format int

const (
	FormatCSV Format = iota
	FormatTSV
	FormatParquet
)

// String returns the format name
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	case FormatParquet:
		return "parquet"
	default:
		return "unknown"
	}
}

// DetectFormat picks a format from the file extension, ignoring a trailing .lz4
func DetectFormat(path string) (Format, error) {
	name := strings.ToLower(path)
	name = strings.TrimSuffix(name, ".lz4")

	switch filepath.Ext(name) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func isLZ4(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".lz4")
}

// Load reads a single file into a table.
//
// Supported extensions are .csv, .txt, .tsv, .tab and .parquet, each
// optionally followed by .lz4 for lz4-compressed files.
func Load(path string, opts Options) (*table.Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	if format == FormatParquet {
		return ReadParquet(path)
	}

	if format == FormatTSV && opts.Delimiter == 0 {
		opts.Delimiter = '\t'
	}

	src, err := openText(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	t, err := ReadCSV(src, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t, nil
}

// lz4ReadCloser closes the underlying file of a decompressing reader
type lz4ReadCloser struct {
	io.Reader
	file *os.File
}

func (r lz4ReadCloser) Close() error {
	return r.file.Close()
}

func openText(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	if isLZ4(path) {
		return lz4ReadCloser{Reader: lz4.NewReader(file), file: file}, nil
	}
	return file, nil
}

// LoadMultiple reads every file matching a glob pattern into one table.
//
// The pattern can include wildcards:
//   - * matches any sequence of non-separator characters
//   - ? matches any single non-separator character
//   - [range] matches any character in range
//
// A pattern without wildcards loads that single file unchanged. When a
// pattern is expanded, all files must have the same columns (compared
// case-insensitively) and the result gains a _file column naming the source
// of each row, even if only one file matched.
func LoadMultiple(pattern string, opts Options) (*table.Table, error) {
	if !strings.ContainsAny(pattern, "*?[") {
		return Load(pattern, opts)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, pattern)
	}

	if len(matches) > maxFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}

	var combined *table.Table
	for _, path := range matches {
		t, err := Load(path, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		t, err = t.WithColumn(table.Column{Name: FileColumn, Type: "STRING"}, path)
		if err != nil {
			return nil, fmt.Errorf("failed to tag rows from %s: %w", path, err)
		}

		if combined == nil {
			combined = t
			continue
		}

		combined, err = combined.Append(t)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSchemaMismatch, path, err)
		}
	}

	return combined, nil
}
