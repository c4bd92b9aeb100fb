package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"shelfcsv/internal/catalog"
	"shelfcsv/internal/exporter"
	"shelfcsv/internal/infrastructure"
)

// ExportService builds CSV documents from catalog records and hands them to
// a delivery sink. It owns no state beyond its collaborators: every export
// call is a single synchronous pass over its own record slice.
type ExportService struct {
	logger  *slog.Logger
	metrics *infrastructure.ExportMetrics
	tracer  trace.Tracer
}

// NewExportService creates an export service. metrics may be nil when
// observability is disabled (CLI usage).
func NewExportService(logger *slog.Logger, metrics *infrastructure.ExportMetrics) *ExportService {
	return &ExportService{
		logger:  logger.With(slog.String("component", "export_service")),
		metrics: metrics,
		tracer:  otel.Tracer("shelfcsv/services"),
	}
}

// BuildCatalogDocument renders the full catalog into a document. An empty
// catalog returns ErrNoBooks so callers can notify the user without writing
// a file.
func (s *ExportService) BuildCatalogDocument(books []catalog.Book) (exporter.Document, error) {
	if len(books) == 0 {
		return exporter.Document{}, ErrNoBooks
	}

	text := exporter.BuildDocument(books, catalog.ExportColumns())
	return exporter.NewDocument("catalog.csv", text), nil
}

// BuildGenreDocument renders the books of a single genre. Genre matching is
// exact; an unknown genre returns ErrGenreNotFound, an empty catalog
// ErrNoBooks.
func (s *ExportService) BuildGenreDocument(books []catalog.Book, genre string) (exporter.Document, error) {
	if len(books) == 0 {
		return exporter.Document{}, ErrNoBooks
	}

	var matched []catalog.Book
	for _, book := range books {
		if book.Genre == genre {
			matched = append(matched, book)
		}
	}
	if len(matched) == 0 {
		return exporter.Document{}, fmt.Errorf("%w: %s", ErrGenreNotFound, genre)
	}

	text := exporter.BuildDocument(matched, catalog.ExportColumns())
	return exporter.NewDocument(genreFilename(genre), text), nil
}

// ExportCatalog builds the full-catalog document and delivers it.
func (s *ExportService) ExportCatalog(ctx context.Context, books []catalog.Book, sink exporter.Delivery) error {
	ctx, span := s.tracer.Start(ctx, "export.catalog",
		trace.WithAttributes(attribute.Int("export.book_count", len(books))))
	defer span.End()

	start := time.Now()

	doc, err := s.BuildCatalogDocument(books)
	if err != nil {
		return err
	}

	if err := sink.Deliver(ctx, doc); err != nil {
		s.metrics.RecordExport(ctx, "catalog", 0, 0, 0, err)
		return fmt.Errorf("failed to deliver catalog export: %w", err)
	}

	s.metrics.RecordExport(ctx, "catalog", len(books), len(doc.Text), time.Since(start), nil)
	s.logger.InfoContext(ctx, "catalog exported",
		slog.Int("book_count", len(books)),
		slog.Int("bytes", len(doc.Text)),
		slog.Duration("duration", time.Since(start)))

	return nil
}

// ExportByGenre builds one document per genre and delivers them through the
// sink, fanning the deliveries out concurrently. Filenames are deterministic
// (genre slug + "_books.csv") and genres are processed in sorted order so
// repeated runs produce identical file sets.
func (s *ExportService) ExportByGenre(ctx context.Context, books []catalog.Book, sink exporter.Delivery) error {
	if len(books) == 0 {
		return ErrNoBooks
	}

	ctx, span := s.tracer.Start(ctx, "export.by_genre",
		trace.WithAttributes(attribute.Int("export.book_count", len(books))))
	defer span.End()

	byGenre := make(map[string][]catalog.Book)
	for _, book := range books {
		byGenre[book.Genre] = append(byGenre[book.Genre], book)
	}

	genres := make([]string, 0, len(byGenre))
	for genre := range byGenre {
		genres = append(genres, genre)
	}
	sort.Strings(genres)

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for _, genre := range genres {
		g.Go(func() error {
			text := exporter.BuildDocument(byGenre[genre], catalog.ExportColumns())
			doc := exporter.NewDocument(genreFilename(genre), text)
			if err := sink.Deliver(ctx, doc); err != nil {
				return fmt.Errorf("failed to deliver genre export for %s: %w", genre, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.metrics.RecordExport(ctx, "by_genre", 0, 0, 0, err)
		return err
	}

	s.metrics.RecordExport(ctx, "by_genre", len(books), 0, time.Since(start), nil)
	s.logger.InfoContext(ctx, "genre exports complete",
		slog.Int("genre_count", len(genres)),
		slog.Int("book_count", len(books)),
		slog.Duration("duration", time.Since(start)))

	return nil
}

// ExportSummary builds the per-genre summary document and delivers it.
func (s *ExportService) ExportSummary(ctx context.Context, books []catalog.Book, sink exporter.Delivery) error {
	if len(books) == 0 {
		return ErrNoBooks
	}

	summaries := catalog.Summarize(books)
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Genre < summaries[j].Genre
	})

	text := exporter.BuildDocument(summaries, catalog.SummaryColumns())
	doc := exporter.NewDocument("genre_summary.csv", text)

	if err := sink.Deliver(ctx, doc); err != nil {
		return fmt.Errorf("failed to deliver summary export: %w", err)
	}

	s.logger.InfoContext(ctx, "summary exported",
		slog.Int("genre_count", len(summaries)))

	return nil
}

// Genres returns the distinct genres present in the catalog, sorted.
func (s *ExportService) Genres(books []catalog.Book) []string {
	seen := make(map[string]bool)
	var genres []string
	for _, book := range books {
		if !seen[book.Genre] {
			seen[book.Genre] = true
			genres = append(genres, book.Genre)
		}
	}
	sort.Strings(genres)
	return genres
}

// genreFilename turns a genre label into a stable export filename.
func genreFilename(genre string) string {
	slug := strings.ToLower(genre)
	slug = strings.NewReplacer(" ", "-", "/", "-", "\\", "-").Replace(slug)
	return fmt.Sprintf("%s_books.csv", slug)
}
