package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Store serves catalog snapshots backed by a spreadsheet file. Reads are
// cached; the file is re-imported when its modification time changes, so a
// librarian can drop in an updated workbook without restarting the server.
type Store struct {
	path   string
	logger *slog.Logger

	mu       sync.RWMutex
	books    []Book
	loadedAt time.Time
	modTime  time.Time
}

// NewStore creates a store reading from the given workbook path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger.With(slog.String("component", "catalog_store")),
	}
}

// Books returns the current catalog, importing the workbook on first use and
// whenever the file changes on disk.
func (s *Store) Books(ctx context.Context) ([]Book, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat catalog file: %w", err)
	}

	s.mu.RLock()
	if !s.loadedAt.IsZero() && info.ModTime().Equal(s.modTime) {
		books := s.books
		s.mu.RUnlock()
		return books, nil
	}
	s.mu.RUnlock()

	return s.reload(ctx, info.ModTime())
}

func (s *Store) reload(ctx context.Context, modTime time.Time) ([]Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have reloaded while we waited for the lock
	if !s.loadedAt.IsZero() && modTime.Equal(s.modTime) {
		return s.books, nil
	}

	books, err := ImportFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to import catalog: %w", err)
	}

	s.books = books
	s.loadedAt = time.Now()
	s.modTime = modTime

	s.logger.InfoContext(ctx, "catalog loaded",
		slog.String("path", s.path),
		slog.Int("book_count", len(books)))

	return books, nil
}

// StaticStore serves a fixed in-memory catalog. Used by the CLI after a
// one-shot import and by tests.
type StaticStore struct {
	books []Book
}

// NewStaticStore wraps a book slice as a source.
func NewStaticStore(books []Book) *StaticStore {
	return &StaticStore{books: books}
}

// Books returns the wrapped slice.
func (s *StaticStore) Books(ctx context.Context) ([]Book, error) {
	return s.books, nil
}
