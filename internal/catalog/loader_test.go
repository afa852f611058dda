package catalog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/messier-skychart/internal/domain"
	"github.com/couchcryptid/messier-skychart/internal/observability"
)

type stubSource struct {
	name    string
	objects []domain.CelestialObject
	err     error
	calls   int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Load(_ context.Context) ([]domain.CelestialObject, error) {
	s.calls++
	return s.objects, s.err
}

type stubFetcher struct {
	data []byte
	err  error
}

func (f stubFetcher) Fetch(_ context.Context) ([]byte, error) { return f.data, f.err }

func counterValue(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c))
	families, err := reg.Gather()
	require.NoError(t, err)
	total := 0.0
	for _, f := range families {
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func validObject(id string) domain.CelestialObject {
	return domain.CelestialObject{MessierID: id, ObjectType: "Open cluster", RAText: "05h 34m 31.9s", DecText: "+22° 00′ 52″"}
}

func TestLoader_FirstSourceWins(t *testing.T) {
	fake := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	SetClock(fake)
	defer SetClock(nil)

	file := &stubSource{name: SourceFile, objects: []domain.CelestialObject{validObject("M1")}}
	sample := &stubSource{name: SourceSample, objects: []domain.CelestialObject{validObject("M2")}}

	l := NewLoader(discardLogger(), observability.NewMetricsForTesting(), file, sample)
	ds, err := l.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SourceFile, ds.Source)
	assert.Equal(t, fake.Now(), ds.LoadedAt)
	require.Len(t, ds.Objects, 1)
	assert.True(t, ds.Objects[0].Coords.Valid)
	assert.Equal(t, 0, sample.calls)
}

func TestLoader_FallbackOrder(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	file := &stubSource{name: SourceFile, err: os.ErrNotExist}
	remote := &stubSource{name: SourceRemote}
	sample := &stubSource{name: SourceSample, objects: []domain.CelestialObject{validObject("M1")}}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	ds, err := NewLoader(logger, metrics, file, remote, sample).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SourceSample, ds.Source)
	assert.Equal(t, 1, file.calls)
	assert.Equal(t, 1, remote.calls)
	assert.Contains(t, logs.String(), "source=file")
	assert.Contains(t, logs.String(), "source=remote")

	assert.Equal(t, 1.0, counterValue(t, metrics.CatalogLoads.WithLabelValues(SourceFile, "error")))
	assert.Equal(t, 1.0, counterValue(t, metrics.CatalogLoads.WithLabelValues(SourceRemote, "empty")))
	assert.Equal(t, 1.0, counterValue(t, metrics.CatalogLoads.WithLabelValues(SourceSample, "success")))
}

func TestLoader_AllSourcesFail(t *testing.T) {
	boom := errors.New("boom")
	l := NewLoader(discardLogger(), observability.NewMetricsForTesting(),
		&stubSource{name: SourceFile, err: boom},
		&stubSource{name: SourceRemote},
	)

	_, err := l.Load(context.Background())
	require.ErrorIs(t, err, ErrNoData)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestLoader_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sample := &stubSource{name: SourceSample, objects: []domain.CelestialObject{validObject("M1")}}
	l := NewLoader(discardLogger(), observability.NewMetricsForTesting(),
		&stubSource{name: SourceFile, err: context.Canceled}, sample)

	_, err := l.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, sample.calls)
}

func TestLoader_RealSources(t *testing.T) {
	logger := discardLogger()
	metrics := observability.NewMetricsForTesting()

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "messier.csv")
		require.NoError(t, os.WriteFile(path, sampleCSV, 0o600))

		ds, err := NewLoader(logger, metrics, NewFileSource(path, logger)).Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 10, ds.Len())
		assert.Equal(t, 0, ds.InvalidCoordinates)
	})

	t.Run("missing file falls back to sample", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "absent.csv")
		ds, err := NewLoader(logger, metrics, NewFileSource(path, logger), NewSampleSource(logger)).Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, SourceSample, ds.Source)
		assert.Equal(t, 10, ds.Len())
	})

	t.Run("remote", func(t *testing.T) {
		src := NewRemoteSource(stubFetcher{data: sampleCSV}, logger)
		ds, err := NewLoader(logger, metrics, src).Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, SourceRemote, ds.Source)

		m42, ok := ds.Find("M42")
		require.True(t, ok)
		assert.InDelta(t, 83.822, m42.Coords.RA, 1e-3)
		assert.InDelta(t, -5.387, m42.Coords.Dec, 1e-3)
	})

	t.Run("remote failure", func(t *testing.T) {
		src := NewRemoteSource(stubFetcher{err: errors.New("timeout")}, logger)
		_, err := NewLoader(logger, metrics, src).Load(context.Background())
		require.ErrorIs(t, err, ErrNoData)
	})
}

func TestProcessCoordinates(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	objects := []domain.CelestialObject{
		validObject("M1"),
		{MessierID: "M2", RAText: "garbage", DecText: "+10° 00′"},
		{MessierID: "M3", RAText: "", DecText: ""},
	}

	out, invalid := ProcessCoordinates(objects, logger, metrics)
	require.Len(t, out, 3)
	assert.Equal(t, 2, invalid)
	assert.True(t, out[0].Coords.Valid)
	assert.False(t, out[1].Coords.Valid)
	assert.False(t, out[2].Coords.Valid)
	assert.False(t, objects[0].Coords.Valid, "input is not modified")

	assert.Equal(t, 2.0, counterValue(t, metrics.CoordinateErrors.WithLabelValues("ra")))
	assert.Equal(t, 1.0, counterValue(t, metrics.CoordinateErrors.WithLabelValues("dec")))
	assert.Contains(t, logs.String(), "messier_id=M2")
	assert.Contains(t, logs.String(), "count=2")
}
