// Package render implements the two built-in output shapes: a
// CSV-like table for listings and failure summaries, and a label=value
// record for single-object rendering. Both write to a plain io.Writer
// so they compose with the pager-aware output writer.
package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table writes (columns, rows) as CSV-like output. The header is
// written at most once, on the first call that supplies one.
type Table struct {
	writer      *csv.Writer
	wroteHeader bool
}

// NewTable returns a Table writing to w.
func NewTable(w io.Writer) *Table {
	return &Table{writer: csv.NewWriter(w)}
}

// Header writes the column names. Subsequent calls are no-ops, so
// callers fanning out over several producers can offer the header
// every time and still emit it once.
func (t *Table) Header(columns []string) error {
	if t.wroteHeader || len(columns) == 0 {
		return nil
	}
	t.wroteHeader = true
	return t.writer.Write(columns)
}

// WroteHeader reports whether a header has been emitted.
func (t *Table) WroteHeader() bool {
	return t.wroteHeader
}

// Row writes one data row.
func (t *Table) Row(values []any) error {
	record := make([]string, len(values))
	for i, value := range values {
		record[i] = FormatValue(value)
	}
	return t.writer.Write(record)
}

// Flush writes any buffered rows to the underlying writer.
func (t *Table) Flush() error {
	t.writer.Flush()
	return t.writer.Error()
}

// FormatValue renders a cell value. Strings pass through, lists join
// with a space, nil becomes empty, everything else goes through the
// default verb.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, " ")
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = FormatValue(item)
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
