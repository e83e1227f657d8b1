package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vegasq/catfilter/table"
)

// CSVFormatter outputs tables as CSV with a header row
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the table as CSV. Columns keep schema order and the header
// is written even when there are no rows.
func (c *CSVFormatter) Format(t *table.Table) error {
	csvWriter := csv.NewWriter(c.writer)

	if err := csvWriter.Write(t.ColumnNames()); err != nil {
		return err
	}

	record := make([]string, t.NumColumns())
	for _, row := range t.Rows() {
		for i, cell := range row {
			record[i] = formatCell(cell)
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	// Flush and check for errors
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

// formatCell converts a cell to its CSV field
func formatCell(cell table.Cell) string {
	switch cell.Value.(type) {
	case nil, string:
		return sanitize(cell.Text)
	default:
		return cell.Text
	}
}

// sanitize guards against CSV injection by prefixing text that spreadsheet
// applications would evaluate as a formula. Plain numbers such as "-5" are
// left alone.
func sanitize(val string) string {
	if len(val) == 0 {
		return val
	}
	switch val[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		if _, err := strconv.ParseFloat(val, 64); err == nil {
			return val
		}
		// Escape existing single quotes and prefix with quote to prevent formula injection
		return "'" + strings.ReplaceAll(val, "'", "''")
	}
	return val
}
