package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"shelfcsv/internal/catalog"
	"shelfcsv/internal/config"
	"shelfcsv/internal/exporter"
	"shelfcsv/internal/infrastructure"
	"shelfcsv/internal/services"
)

func main() {
	catalogPath := flag.String("catalog", "", "catalog workbook (.xlsx) to export (defaults to data/catalog/catalog.xlsx)")
	out := flag.String("out", "", "output directory for CSV files (defaults to data/exports)")
	byGenre := flag.Bool("by-genre", false, "also write one CSV per genre")
	summary := flag.Bool("summary", false, "also write the per-genre summary CSV")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	if *catalogPath == "" {
		*catalogPath = paths.GetCatalogPath("catalog.xlsx")
	}
	if *out == "" {
		*out = paths.ExportsDir
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("catalogcsv.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting catalog export",
		slog.String("catalog", *catalogPath),
		slog.String("output_dir", *out),
		slog.Bool("by_genre", *byGenre),
		slog.Bool("summary", *summary))

	if err := run(*catalogPath, *out, *byGenre, *summary, paths, logger); err != nil {
		logger.Error("Export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(catalogPath, outDir string, byGenre, summary bool, paths *config.Paths, logger *slog.Logger) error {
	ctx := context.Background()

	books, err := catalog.ImportFile(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}

	service := services.NewExportService(logger, nil)
	sink := exporter.NewFileSink(outDir, logger)

	if err := service.ExportCatalog(ctx, books, sink); err != nil {
		if errors.Is(err, services.ErrNoBooks) {
			fmt.Fprintln(os.Stderr, "The catalog is empty; nothing to export.")
			return err
		}
		return err
	}

	if byGenre {
		genreSink := exporter.NewFileSink(paths.GenresDir, logger)
		if outDir != paths.ExportsDir {
			// Honor a custom output directory for the per-genre files too
			genreSink = exporter.NewFileSink(outDir, logger)
		}
		if err := service.ExportByGenre(ctx, books, genreSink); err != nil {
			return err
		}
	}

	if summary {
		if err := service.ExportSummary(ctx, books, sink); err != nil {
			return err
		}
	}

	fmt.Printf("Exported %d books to %s\n", len(books), outDir)
	return nil
}
