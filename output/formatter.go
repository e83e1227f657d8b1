package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/catfilter/table"
)

// ErrUnknownFormat is returned by New for unsupported format names
var ErrUnknownFormat = errors.New("unsupported output format")

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to write a table in the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes the table in the formatter's specific format
	Format(t *table.Table) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Names lists the accepted format names
var Names = []string{"table", "csv", "json", "jsonl"}

// New returns the formatter for a format name
func New(name string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(name) {
	case "table":
		return NewTableFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "json", "jsonl":
		return NewJSONFormatter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownFormat, name, strings.Join(Names, ", "))
	}
}

// SchemaTable describes columns as a two-column table of name and type,
// so a schema can be printed with any Formatter.
func SchemaTable(columns []table.Column) *table.Table {
	rows := make([]table.Row, len(columns))
	for i, col := range columns {
		rows[i] = table.TextRow(col.Name, col.Type)
	}
	t, _ := table.New([]table.Column{{Name: "name", Type: "STRING"}, {Name: "type", Type: "STRING"}}, rows)
	return t
}
