package catalog

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportFile reads a catalog workbook and extracts its books.
//
// The sheet is located by its header row rather than by name: the first sheet
// whose header contains both a title and a genre column wins. Column
// positions are mapped from the header labels, so column order in the
// workbook does not matter. Blank rows are skipped.
func ImportFile(path string) ([]Book, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	rows, sheetName, err := findCatalogSheet(f)
	if err != nil {
		return nil, err
	}

	slog.Info("Found catalog sheet",
		slog.String("sheet_name", sheetName),
		slog.Int("total_rows", len(rows)))

	headerRow, columnMap := mapColumns(rows)
	if headerRow < 0 {
		return nil, fmt.Errorf("could not find catalog header row in sheet %s", sheetName)
	}

	var books []Book
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}

		book := Book{
			Title: cellAt(row, columnMap, "title"),
			Genre: cellAt(row, columnMap, "genre"),
			ISBN:  cellAt(row, columnMap, "isbn"),
		}

		if v := cellAt(row, columnMap, "price"); v != "" {
			price, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid price %q: %w", i+1, v, err)
			}
			book.Price = price
		}

		if v := cellAt(row, columnMap, "pages"); v != "" {
			pages, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid page count %q: %w", i+1, v, err)
			}
			book.Pages = pages
		}

		if v := cellAt(row, columnMap, "available"); v != "" {
			book.Available = parseAvailability(v)
		}

		if name := cellAt(row, columnMap, "author"); name != "" {
			book.Author = &Author{
				Name:    name,
				Country: cellAt(row, columnMap, "country"),
			}
		}

		books = append(books, book)
	}

	slog.Info("Catalog import complete",
		slog.String("file", path),
		slog.Int("book_count", len(books)))

	return books, nil
}

// findCatalogSheet returns the rows of the first sheet that looks like a
// catalog, detected by its header content.
func findCatalogSheet(f *excelize.File) ([][]string, string, error) {
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) < 2 {
			continue
		}
		for _, row := range rows[:min(4, len(rows))] {
			rowText := strings.ToLower(strings.Join(row, " "))
			if strings.Contains(rowText, "title") && strings.Contains(rowText, "genre") {
				return rows, name, nil
			}
		}
	}
	return nil, "", fmt.Errorf("could not find catalog sheet in workbook")
}

// mapColumns locates the header row and maps logical field names to column
// positions based on the header labels.
func mapColumns(rows [][]string) (int, map[string]int) {
	for i, row := range rows {
		rowText := strings.ToLower(strings.Join(row, " "))
		if !strings.Contains(rowText, "title") || !strings.Contains(rowText, "genre") {
			continue
		}

		columnMap := make(map[string]int)
		for j, header := range row {
			switch h := strings.ToLower(strings.TrimSpace(header)); {
			case strings.Contains(h, "title") || h == "name":
				columnMap["title"] = j
			case h == "genre":
				columnMap["genre"] = j
			case strings.Contains(h, "author"):
				columnMap["author"] = j
			case strings.Contains(h, "country"):
				columnMap["country"] = j
			case strings.Contains(h, "isbn"):
				columnMap["isbn"] = j
			case strings.Contains(h, "price"):
				columnMap["price"] = j
			case strings.Contains(h, "page"):
				columnMap["pages"] = j
			case strings.Contains(h, "avail") || strings.Contains(h, "stock"):
				columnMap["available"] = j
			}
		}
		return i, columnMap
	}
	return -1, nil
}

func cellAt(row []string, columnMap map[string]int, field string) string {
	idx, ok := columnMap[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseAvailability(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "y", "1", "available", "in stock":
		return true
	}
	return false
}
