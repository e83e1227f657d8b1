package table

import (
	"fmt"
	"strconv"
	"time"
)

// Cell holds one field value. Text is what the query engine matches; Value
// keeps the loader's typed value and may be nil.
type Cell struct {
	Text  string
	Value interface{}
}

// NewCell builds a cell from a typed value.
func NewCell(v interface{}) Cell {
	return Cell{Text: TextOf(v), Value: v}
}

// TextCell builds a cell that only has a text form.
func TextCell(s string) Cell {
	return Cell{Text: s}
}

// TextRow builds a row of text cells.
func TextRow(values ...string) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = TextCell(v)
	}
	return row
}

// Interface returns the typed value, falling back to the text.
func (c Cell) Interface() interface{} {
	if c.Value != nil {
		return c.Value
	}
	return c.Text
}

// TextOf converts a value to its matchable text form
func TextOf(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case int:
		return strconv.Itoa(val)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
