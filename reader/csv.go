package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/catfilter/table"
)

// utf8BOM is written by spreadsheet applications at the start of CSV exports
const utf8BOM = "\uFEFF"

// Options configures how delimited text sources are read
type Options struct {
	// Delimiter separates fields. Zero means ',' (or '\t' for .tsv files).
	Delimiter rune

	// NoHeader treats the first record as data and names columns Column1..N.
	NoHeader bool

	// TrimSpace trims leading and trailing whitespace from every cell.
	TrimSpace bool
}

// ReadCSV reads a delimited text table.
//
// Every column is typed STRING. Rows shorter than the header are padded with
// empty cells; rows longer than the header are accepted only if the extra
// cells are empty.
func ReadCSV(r io.Reader, opts Options) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}

	var columns []table.Column
	var rows []table.Row

	first := true
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		if first {
			first = false
			if len(record) > 0 {
				record[0] = strings.TrimPrefix(record[0], utf8BOM)
			}
			if opts.NoHeader {
				columns = generatedColumns(len(record))
			} else {
				columns = headerColumns(record)
				continue
			}
		}

		line, _ := cr.FieldPos(0)
		row, err := csvRow(record, len(columns), opts.TrimSpace)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}

	if first && !opts.NoHeader {
		return nil, ErrNoHeader
	}

	return table.New(columns, rows)
}

// headerColumns names columns from a header record; blank names become ColumnN
func headerColumns(record []string) []table.Column {
	columns := make([]table.Column, len(record))
	for i, name := range record {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Column%d", i+1)
		}
		columns[i] = table.Column{Name: name, Type: "STRING"}
	}
	return columns
}

func generatedColumns(n int) []table.Column {
	columns := make([]table.Column, n)
	for i := range columns {
		columns[i] = table.Column{Name: fmt.Sprintf("Column%d", i+1), Type: "STRING"}
	}
	return columns
}

// csvRow fits a record to width cells
func csvRow(record []string, width int, trim bool) (table.Row, error) {
	if len(record) > width {
		for _, extra := range record[width:] {
			if strings.TrimSpace(extra) != "" {
				return nil, fmt.Errorf("%w: %d fields, header has %d", table.ErrRowWidth, len(record), width)
			}
		}
		record = record[:width]
	}

	row := make(table.Row, width)
	for i := range row {
		if i < len(record) {
			v := record[i]
			if trim {
				v = strings.TrimSpace(v)
			}
			row[i] = table.TextCell(v)
		} else {
			row[i] = table.TextCell("")
		}
	}
	return row, nil
}
