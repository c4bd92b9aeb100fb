package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"shelfcsv/internal/catalog"
	apierrors "shelfcsv/internal/errors"
	"shelfcsv/internal/exporter"
	"shelfcsv/internal/services"
)

// BookSource supplies the current catalog snapshot for export requests.
type BookSource interface {
	Books(ctx context.Context) ([]catalog.Book, error)
}

// ExportHandler handles CSV export HTTP requests
type ExportHandler struct {
	source       BookSource
	service      *services.ExportService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewExportHandler creates a new export handler
func NewExportHandler(source BookSource, service *services.ExportService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		source:       source,
		service:      service,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the export routes
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/catalog.csv", h.ExportCatalog)
	r.Get("/summary.csv", h.ExportSummary)
	r.Get("/genres", h.ListGenres)

	r.Route("/genres/{genre}.csv", func(r chi.Router) {
		r.Use(h.GenreCtx)
		r.Get("/", h.ExportGenre)
	})

	return r
}

// GenreCtx middleware validates the genre parameter
func (h *ExportHandler) GenreCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		genre := chi.URLParam(r, "genre")
		if err := h.validate.Var(genre, "required,max=64"); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("genre", "Genre must be between 1 and 64 characters"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ExportCatalog handles GET /api/export/catalog.csv.
// An optional limit query parameter caps the number of exported rows.
func (h *ExportHandler) ExportCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	books, err := h.source.Books(ctx)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || h.validate.Var(limit, "gte=1") != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("limit", "Limit must be a positive integer"))
			return
		}
		if limit < len(books) {
			books = books[:limit]
		}
	}

	if err := h.service.ExportCatalog(ctx, books, exporter.NewHTTPSink(w)); err != nil {
		h.handleExportError(w, r, err)
		return
	}
}

// ExportGenre handles GET /api/export/genres/{genre}.csv
func (h *ExportHandler) ExportGenre(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	genre := chi.URLParam(r, "genre")

	books, err := h.source.Books(ctx)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	doc, err := h.service.BuildGenreDocument(books, genre)
	if err != nil {
		h.handleExportError(w, r, err)
		return
	}

	if err := exporter.NewHTTPSink(w).Deliver(ctx, doc); err != nil {
		h.logger.ErrorContext(ctx, "failed to stream genre export",
			slog.String("genre", genre),
			slog.String("error", err.Error()))
	}
}

// ExportSummary handles GET /api/export/summary.csv
func (h *ExportHandler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	books, err := h.source.Books(ctx)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if err := h.service.ExportSummary(ctx, books, exporter.NewHTTPSink(w)); err != nil {
		h.handleExportError(w, r, err)
		return
	}
}

// ListGenres handles GET /api/export/genres
func (h *ExportHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	books, err := h.source.Books(ctx)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{
		"genres": h.service.Genres(books),
		"count":  len(books),
	})
}

// handleExportError maps service sentinels onto the API error taxonomy
func (h *ExportHandler) handleExportError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNoBooks):
		h.errorHandler.HandleError(w, r, apierrors.ErrNoBooks)
	case errors.Is(err, services.ErrGenreNotFound):
		h.errorHandler.HandleError(w, r, apierrors.ErrGenreNotFound)
	default:
		h.errorHandler.HandleError(w, r, apierrors.ExportError(err))
	}
}
