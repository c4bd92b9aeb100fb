package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfcsv/internal/catalog"
	apierrors "shelfcsv/internal/errors"
	"shelfcsv/internal/services"
)

type stubSource struct {
	books []catalog.Book
	err   error
}

func (s *stubSource) Books(ctx context.Context) ([]catalog.Book, error) {
	return s.books, s.err
}

func testBooks() []catalog.Book {
	return []catalog.Book{
		{
			Title:     "A Wrinkle, in Time",
			Genre:     "Sci-Fi",
			ISBN:      "978-0312367541",
			Price:     8.99,
			Pages:     256,
			Available: true,
			Author:    &catalog.Author{Name: "L'Engle, M."},
		},
		{
			Title:     "Dracula",
			Genre:     "Horror",
			ISBN:      "978-0486411095",
			Price:     6.50,
			Pages:     418,
			Available: false,
		},
	}
}

func newTestHandler(t *testing.T, source BookSource) *ExportHandler {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	service := services.NewExportService(logger, nil)
	return NewExportHandler(source, service, logger, apierrors.NewErrorHandler(logger))
}

func TestExportHandler_ExportCatalog(t *testing.T) {
	handler := newTestHandler(t, &stubSource{books: testBooks()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog.csv", nil)
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv;charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="catalog.csv"`, rec.Header().Get("Content-Disposition"))

	body := rec.Body.Bytes()
	require.True(t, len(body) > 3, "body must carry the BOM")
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, body[:3])

	text := string(body[3:])
	assert.Contains(t, text, "Name,Genre,Author,ISBN,Price,Pages,Available")
	assert.Contains(t, text, `"A Wrinkle, in Time",Sci-Fi`)
	assert.Contains(t, text, `Dracula,Horror,"",978-0486411095,6.50,418,false`)
}

func TestExportHandler_ExportCatalog_Empty(t *testing.T) {
	handler := newTestHandler(t, &stubSource{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog.csv", nil)
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NO_BOOKS", resp.Error.ErrorCode)
}

func TestExportHandler_ExportCatalog_Limit(t *testing.T) {
	handler := newTestHandler(t, &stubSource{books: testBooks()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog.csv?limit=1", nil)
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	text := string(rec.Body.Bytes()[3:])
	assert.Contains(t, text, "Wrinkle")
	assert.NotContains(t, text, "Dracula")
}

func TestExportHandler_ExportCatalog_InvalidLimit(t *testing.T) {
	handler := newTestHandler(t, &stubSource{books: testBooks()})

	for _, limit := range []string{"0", "-3", "abc"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/catalog.csv?limit="+limit, nil)
		handler.Routes().ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", limit)

		var resp apierrors.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "VALIDATION_FAILED", resp.Error.ErrorCode)
	}
}

func TestExportHandler_ExportGenre(t *testing.T) {
	handler := newTestHandler(t, &stubSource{books: testBooks()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/genres/Horror.csv", nil)
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="horror_books.csv"`, rec.Header().Get("Content-Disposition"))

	text := string(rec.Body.Bytes()[3:])
	assert.Contains(t, text, "Dracula")
	assert.NotContains(t, text, "Wrinkle")
}

func TestExportHandler_ExportGenre_Unknown(t *testing.T) {
	handler := newTestHandler(t, &stubSource{books: testBooks()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/genres/Romance.csv", nil)
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "GENRE_NOT_FOUND", resp.Error.ErrorCode)
}

func TestExportHandler_ExportSummary(t *testing.T) {
	handler := newTestHandler(t, &stubSource{books: testBooks()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/summary.csv", nil)
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	text := string(rec.Body.Bytes()[3:])
	assert.Contains(t, text, "Genre,Titles,Available,AveragePrice")
	assert.Contains(t, text, "Horror,1,0,6.50")
	assert.Contains(t, text, "Sci-Fi,1,1,8.99")
}

func TestExportHandler_ListGenres(t *testing.T) {
	handler := newTestHandler(t, &stubSource{books: testBooks()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/genres", nil)
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Genres []string `json:"genres"`
		Count  int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Horror", "Sci-Fi"}, resp.Genres)
	assert.Equal(t, 2, resp.Count)
}

func TestExportHandler_SourceFailure(t *testing.T) {
	handler := newTestHandler(t, &stubSource{err: errors.New("catalog file corrupted")})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog.csv", nil)
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
