package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/messier-skychart/internal/catalog"
	"github.com/couchcryptid/messier-skychart/internal/domain"
	"github.com/couchcryptid/messier-skychart/internal/observability"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the normalised catalog with decimal coordinates to stdout",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	addCatalogFlags(cmd)
	cmd.Flags().String("format", "json", "output format: json or csv")
	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "json" && format != "csv" {
		return fmt.Errorf("unsupported format %q: must be json or csv", format)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// Progress goes to stderr so stdout stays machine-readable.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	metrics := observability.NewUnregisteredMetrics()

	styles, err := loadStyles(cfg.StylesPath, logger)
	if err != nil {
		return err
	}

	loader, _ := newLoader(cfg, logger, metrics)
	ds, err := loader.Load(cmd.Context())
	if err != nil {
		return err
	}
	return writeExport(cmd.OutOrStdout(), format, ds, styles)
}

// exportRecord is one JSON export row: the catalog fields plus the
// style category.
type exportRecord struct {
	domain.CelestialObject
	Category domain.Category `json:"category"`
}

func writeExport(w io.Writer, format string, ds *catalog.Dataset, styles *domain.StyleTable) error {
	if format == "csv" {
		return catalog.WriteCSV(w, ds.Objects, styles)
	}

	records := make([]exportRecord, len(ds.Objects))
	for i, o := range ds.Objects {
		records[i] = exportRecord{CelestialObject: o, Category: styles.Classify(o.ObjectType)}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}
