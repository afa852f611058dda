package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/messier-skychart/internal/domain"
)

// Source names used in logs, metrics and Dataset.Source.
const (
	SourceFile   = "file"
	SourceRemote = "remote"
	SourceSample = "sample"
)

// Source produces raw catalog rows.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]domain.CelestialObject, error)
}

// FileSource reads a CSV export from disk.
type FileSource struct {
	Path   string
	logger *slog.Logger
}

// NewFileSource creates a source for the CSV at path.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	return &FileSource{Path: path, logger: logger}
}

func (s *FileSource) Name() string { return SourceFile }

func (s *FileSource) Load(_ context.Context) ([]domain.CelestialObject, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	objects, err := ReadCSV(f, s.logger.With("path", s.Path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	return objects, nil
}

// Fetcher downloads a document. Implemented by the remote adapter client.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// RemoteSource downloads a CSV export over HTTP.
type RemoteSource struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewRemoteSource wraps a fetcher.
func NewRemoteSource(f Fetcher, logger *slog.Logger) *RemoteSource {
	return &RemoteSource{fetcher: f, logger: logger}
}

func (s *RemoteSource) Name() string { return SourceRemote }

func (s *RemoteSource) Load(ctx context.Context) ([]domain.CelestialObject, error) {
	data, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return ReadCSV(bytes.NewReader(data), s.logger)
}

//go:embed sample_messier.csv
var sampleCSV []byte

// SampleSource serves the ten-object sample embedded in the binary.
type SampleSource struct {
	logger *slog.Logger
}

// NewSampleSource creates the embedded sample source.
func NewSampleSource(logger *slog.Logger) *SampleSource {
	return &SampleSource{logger: logger}
}

func (s *SampleSource) Name() string { return SourceSample }

func (s *SampleSource) Load(_ context.Context) ([]domain.CelestialObject, error) {
	return ReadCSV(bytes.NewReader(sampleCSV), s.logger)
}
