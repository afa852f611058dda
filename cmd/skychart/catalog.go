package main

import (
	"log/slog"

	"github.com/couchcryptid/messier-skychart/internal/adapter/remote"
	"github.com/couchcryptid/messier-skychart/internal/catalog"
	"github.com/couchcryptid/messier-skychart/internal/config"
	"github.com/couchcryptid/messier-skychart/internal/domain"
	"github.com/couchcryptid/messier-skychart/internal/observability"
	"github.com/couchcryptid/messier-skychart/internal/styles"
)

// newLoader builds the source chain file → remote → sample from cfg. The
// file source is returned separately so serve can watch it.
func newLoader(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*catalog.Loader, *catalog.FileSource) {
	var sources []catalog.Source
	var file *catalog.FileSource

	if cfg.CSVPath != "" {
		file = catalog.NewFileSource(cfg.CSVPath, logger)
		sources = append(sources, file)
	}
	if cfg.RemoteURL != "" {
		client := remote.NewClient(cfg.RemoteURL, cfg.RemoteTimeout, logger)
		sources = append(sources, catalog.NewRemoteSource(client, logger))
		logger.Info("remote catalog enabled", "url", cfg.RemoteURL, "timeout", cfg.RemoteTimeout)
	}
	if cfg.UseSample {
		sources = append(sources, catalog.NewSampleSource(logger))
	}
	return catalog.NewLoader(logger, metrics, sources...), file
}

// loadStyles reads the style file, or returns the built-in table when path
// is empty.
func loadStyles(path string, logger *slog.Logger) (*domain.StyleTable, error) {
	if path == "" {
		return domain.DefaultStyleTable(), nil
	}
	table, err := styles.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logger.Info("style table loaded", "path", path, "categories", len(table.Categories()))
	return table, nil
}
