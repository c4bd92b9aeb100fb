package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	source  BookSource
	version string
	started time.Time
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(source BookSource, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		source:  source,
		version: version,
		started: time.Now(),
		logger:  logger.With(slog.String("handler", "health")),
	}
}

// HealthCheck handles GET /healthz
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	bookCount := 0

	books, err := h.source.Books(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "health check catalog probe failed",
			slog.String("error", err.Error()))
		status = "degraded"
	} else {
		bookCount = len(books)
	}

	render.JSON(w, r, map[string]any{
		"status":     status,
		"version":    h.version,
		"uptime":     time.Since(h.started).String(),
		"book_count": bookCount,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
