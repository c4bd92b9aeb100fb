package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// utf8BOM forces UTF-8 interpretation by consuming spreadsheet applications.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Delivery hands a finished document to the host environment under its
// filename. Implementations prepend the UTF-8 BOM and surface failures
// unchanged; no retries happen at this layer.
type Delivery interface {
	Deliver(ctx context.Context, doc Document) error
}

// WithBOM returns the document text as bytes with the BOM prepended. The wire
// format past this point is the bit-exact contract: BOM, comma-separated
// quote-escaped cells, `\n`-joined lines.
func WithBOM(text string) []byte {
	out := make([]byte, 0, len(utf8BOM)+len(text))
	out = append(out, utf8BOM...)
	out = append(out, text...)
	return out
}

// FileSink delivers documents as files under a base directory.
type FileSink struct {
	dir    string
	logger *slog.Logger
}

// NewFileSink creates a file delivery sink rooted at dir.
func NewFileSink(dir string, logger *slog.Logger) *FileSink {
	return &FileSink{dir: dir, logger: logger}
}

// Deliver writes the BOM-prefixed document into the sink directory.
func (s *FileSink) Deliver(ctx context.Context, doc Document) error {
	fullPath := filepath.Join(s.dir, doc.Filename)

	s.logger.InfoContext(ctx, "writing export file",
		slog.String("filename", doc.Filename),
		slog.String("full_path", fullPath),
		slog.Int("rows", doc.Rows()))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	if _, err := file.Write(WithBOM(doc.Text)); err != nil {
		file.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}

	return file.Close()
}

// HTTPSink delivers a document as a download response: text/csv with a
// Content-Disposition attachment header, the way browser-facing exports
// trigger a file save.
type HTTPSink struct {
	w http.ResponseWriter
}

// NewHTTPSink wraps a response writer as a delivery target.
func NewHTTPSink(w http.ResponseWriter) *HTTPSink {
	return &HTTPSink{w: w}
}

// Deliver streams the BOM-prefixed document as an attachment.
func (s *HTTPSink) Deliver(ctx context.Context, doc Document) error {
	payload := WithBOM(doc.Text)

	s.w.Header().Set("Content-Type", "text/csv;charset=utf-8")
	s.w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	s.w.Header().Set("Content-Length", fmt.Sprintf("%d", len(payload)))

	if _, err := s.w.Write(payload); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}
