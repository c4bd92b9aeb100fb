package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeCatalogFixture builds a small workbook the way library systems export
// them: a decorative first sheet, then the data sheet with a title row above
// the header.
func writeCatalogFixture(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	_, err := f.NewSheet("Catalog")
	require.NoError(t, err)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Catalog", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestImportFile(t *testing.T) {
	path := writeCatalogFixture(t, [][]any{
		{"Library catalog export"},
		{"Title", "Genre", "Author", "Country", "ISBN", "Price", "Pages", "Available"},
		{"Dune", "Sci-Fi", "Herbert", "US", "978-1", "13.40", "412", "yes"},
		{"Beowulf", "Epic", "", "", "978-2", "9.99", "120", "no"},
		{},
		{"It", "Horror", "King", "US", "978-3", "20.00", "1138", "true"},
	})

	books, err := ImportFile(path)
	require.NoError(t, err)
	require.Len(t, books, 3)

	assert.Equal(t, Book{
		Title: "Dune", Genre: "Sci-Fi", ISBN: "978-1",
		Price: 13.4, Pages: 412, Available: true,
		Author: &Author{Name: "Herbert", Country: "US"},
	}, books[0])

	// No author cell means no author reference at all.
	assert.Nil(t, books[1].Author)
	assert.False(t, books[1].Available)

	assert.Equal(t, "It", books[2].Title)
	assert.True(t, books[2].Available)
}

func TestImportFile_HeaderOrderDoesNotMatter(t *testing.T) {
	path := writeCatalogFixture(t, [][]any{
		{"Genre", "Title", "Price"},
		{"Sci-Fi", "Dune", "13.40"},
	})

	books, err := ImportFile(path)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Sci-Fi", books[0].Genre)
	assert.Equal(t, 13.4, books[0].Price)
}

func TestImportFile_InvalidPrice(t *testing.T) {
	path := writeCatalogFixture(t, [][]any{
		{"Title", "Genre", "Price"},
		{"Dune", "Sci-Fi", "not-a-number"},
	})

	_, err := ImportFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid price")
}

func TestImportFile_NoCatalogSheet(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"nothing", "useful"}))
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := ImportFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not find catalog sheet")
}

func TestImportFile_MissingFile(t *testing.T) {
	_, err := ImportFile(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}
