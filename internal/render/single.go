package render

import (
	"fmt"
	"io"
)

// Field is one label/value pair of a rendered object.
type Field struct {
	Label string
	Value any
}

// WriteFields writes an ordered list of label/value pairs, one
// name=value line per field.
func WriteFields(w io.Writer, fields []Field) error {
	for _, field := range fields {
		if _, err := fmt.Fprintf(w, "%s=%s\n", field.Label, FormatValue(field.Value)); err != nil {
			return err
		}
	}
	return nil
}
