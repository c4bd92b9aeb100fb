package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations: catalog workbooks
// come in under CatalogDir, finished CSV exports land under ExportsDir.
type Paths struct {
	ExecutableDir string
	DataDir       string
	CatalogDir    string
	ExportsDir    string
	GenresDir     string
	LogsDir       string

	// Well-known export files
	CatalogCSV      string
	GenreSummaryCSV string
}

// GetPaths returns the application paths relative to the executable location.
// Paths are always resolved against the executable directory, never the
// current working directory, so the layout is stable no matter where the
// binary is launched from.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return PathsFrom(filepath.Dir(exe)), nil
}

// PathsFrom builds the path set under an explicit base directory.
//
// Layout:
//
//	base/
//	  ├── data/
//	  │   ├── catalog/   (XLSX catalog workbooks)
//	  │   └── exports/   (generated CSV exports)
//	  │       └── genres/
//	  └── logs/
func PathsFrom(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	exportsDir := filepath.Join(dataDir, "exports")
	genresDir := filepath.Join(exportsDir, "genres")

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		CatalogDir:    filepath.Join(dataDir, "catalog"),
		ExportsDir:    exportsDir,
		GenresDir:     genresDir,
		LogsDir:       filepath.Join(baseDir, "logs"),

		CatalogCSV:      filepath.Join(exportsDir, "catalog.csv"),
		GenreSummaryCSV: filepath.Join(exportsDir, "genre_summary.csv"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.CatalogDir,
		p.ExportsDir,
		p.GenresDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetExportPath returns the full path for an export file
func (p *Paths) GetExportPath(filename string) string {
	return filepath.Join(p.ExportsDir, filename)
}

// GetCatalogPath returns the full path for a catalog workbook
func (p *Paths) GetCatalogPath(filename string) string {
	return filepath.Join(p.CatalogDir, filename)
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// LogPathResolution logs all resolved paths at startup for debugging
func (p *Paths) LogPathResolution() {
	slog.Default().Info("Resolved application paths",
		slog.String("executable_dir", p.ExecutableDir),
		slog.String("data_dir", p.DataDir),
		slog.String("catalog_dir", p.CatalogDir),
		slog.String("exports_dir", p.ExportsDir),
		slog.String("logs_dir", p.LogsDir))
}

// FileExists reports whether the path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
