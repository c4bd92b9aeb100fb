// Package exporter turns in-memory record collections into CSV documents and
// delivers them as named files.
//
// The package has three parts:
//
// Escape: the per-cell quoting transformation. Nil values render as the
// two-character literal `""`, quotes are doubled, and any cell containing a
// comma, quote, newline or whitespace is wrapped in quotes.
//
// BuildDocument: joins a header row and one row per record with `\n`. Columns
// are (label, extractor) pairs, so callers decide which fields to export and
// in what order.
//
// Delivery: hands a finished document to the host environment. FileSink
// writes into the exports directory, HTTPSink streams an attachment response.
// Both prepend a UTF-8 BOM so spreadsheet tools pick the right encoding.
//
// Example usage:
//
//	cols := []exporter.Column[Book]{
//		{Header: "Name", Value: func(b Book) any { return b.Title }},
//		{Header: "Genre", Value: func(b Book) any { return b.Genre }},
//	}
//	doc := exporter.NewDocument("catalog.csv", exporter.BuildDocument(books, cols))
//	err := sink.Deliver(ctx, doc)
package exporter
