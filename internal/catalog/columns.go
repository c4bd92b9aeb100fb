package catalog

import (
	"shelfcsv/internal/exporter"
)

// ExportColumns is the column specification for the full catalog export.
// Order here is the order in the file.
func ExportColumns() []exporter.Column[Book] {
	return []exporter.Column[Book]{
		{Header: "Name", Value: func(b Book) any { return b.Title }},
		{Header: "Genre", Value: func(b Book) any { return b.Genre }},
		{Header: "Author", Value: func(b Book) any { return b.AuthorName() }},
		{Header: "ISBN", Value: func(b Book) any { return b.ISBN }},
		{Header: "Price", Value: func(b Book) any { return b.Price }},
		{Header: "Pages", Value: func(b Book) any { return b.Pages }},
		{Header: "Available", Value: func(b Book) any { return b.Available }},
	}
}

// GenreSummary aggregates one genre for the summary export.
type GenreSummary struct {
	Genre        string
	Titles       int64
	Available    int64
	AveragePrice float64
}

// SummaryColumns is the column specification for the per-genre summary.
func SummaryColumns() []exporter.Column[GenreSummary] {
	return []exporter.Column[GenreSummary]{
		{Header: "Genre", Value: func(s GenreSummary) any { return s.Genre }},
		{Header: "Titles", Value: func(s GenreSummary) any { return s.Titles }},
		{Header: "Available", Value: func(s GenreSummary) any { return s.Available }},
		{Header: "AveragePrice", Value: func(s GenreSummary) any { return s.AveragePrice }},
	}
}

// Summarize groups books by genre and computes the summary rows, sorted by
// the caller if order matters.
func Summarize(books []Book) []GenreSummary {
	byGenre := make(map[string]*GenreSummary)
	order := make([]string, 0)

	for _, book := range books {
		s, ok := byGenre[book.Genre]
		if !ok {
			s = &GenreSummary{Genre: book.Genre}
			byGenre[book.Genre] = s
			order = append(order, book.Genre)
		}
		s.Titles++
		if book.Available {
			s.Available++
		}
		s.AveragePrice += book.Price
	}

	summaries := make([]GenreSummary, 0, len(order))
	for _, genre := range order {
		s := byGenre[genre]
		if s.Titles > 0 {
			s.AveragePrice /= float64(s.Titles)
		}
		summaries = append(summaries, *s)
	}
	return summaries
}
