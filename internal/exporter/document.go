package exporter

import (
	"strings"
)

// Column pairs a header label with the extractor that reads the cell value
// from a record. Extractors may return nil for an explicitly empty cell.
type Column[T any] struct {
	Header string
	Value  func(record T) any
}

// Document is a finished CSV export, ready for delivery.
type Document struct {
	Filename string
	Text     string
}

// NewDocument wraps built CSV text with its target filename.
func NewDocument(filename, text string) Document {
	return Document{Filename: filename, Text: text}
}

// Rows returns the number of lines in the document (header included).
func (d Document) Rows() int {
	if d.Text == "" {
		return 0
	}
	return strings.Count(d.Text, "\n") + 1
}

// BuildDocument renders records into CSV text: a header line of column
// labels, then one line per record in input order, cells escaped with Escape
// and joined by commas, lines joined by `\n` with no trailing newline.
//
// Precondition: records and columns are non-empty. Callers are expected to
// short-circuit an empty record set before building (see services.ErrNoBooks)
// so no zero-row document is ever produced. A failing extractor propagates;
// that is a caller bug, not a runtime condition to mask.
func BuildDocument[T any](records []T, columns []Column[T]) string {
	var b strings.Builder

	for i, col := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(col.Header)
	}

	for _, record := range records {
		b.WriteByte('\n')
		for i, col := range columns {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(Escape(col.Value(record)))
		}
	}

	return b.String()
}

// Headers returns just the labels of a column set, in order.
func Headers[T any](columns []Column[T]) []string {
	labels := make([]string, len(columns))
	for i, col := range columns {
		labels[i] = col.Header
	}
	return labels
}
