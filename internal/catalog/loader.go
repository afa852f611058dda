package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/couchcryptid/messier-skychart/internal/domain"
	"github.com/couchcryptid/messier-skychart/internal/observability"
)

var (
	// ErrNoData is returned when no source produced a non-empty catalog.
	ErrNoData = errors.New("no catalog source produced data")
	// ErrEmptyCatalog marks a source that succeeded with zero rows.
	ErrEmptyCatalog = errors.New("catalog is empty")
)

// Loader tries its sources in priority order and returns the first non-empty
// catalog with coordinates derived.
type Loader struct {
	sources []Source
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewLoader creates a loader over sources, highest priority first.
func NewLoader(logger *slog.Logger, metrics *observability.Metrics, sources ...Source) *Loader {
	return &Loader{
		sources: sources,
		logger:  logger.With("component", "catalog"),
		metrics: metrics,
	}
}

// Load falls through the sources until one succeeds. Each failure is logged
// and counted; ErrNoData is returned only if every source fails.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	var errs []error
	for _, src := range l.sources {
		ds, err := l.LoadFrom(ctx, src)
		if err == nil {
			return ds, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		l.logger.Warn("catalog source failed, trying next", "source", src.Name(), "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
	}
	return nil, fmt.Errorf("%w: %w", ErrNoData, errors.Join(errs...))
}

// LoadFrom loads a single source.
func (l *Loader) LoadFrom(ctx context.Context, src Source) (*Dataset, error) {
	ctx, span := observability.Tracer().Start(ctx, "catalog.load")
	defer span.End()
	span.SetAttributes(attribute.String("catalog.source", src.Name()))

	objects, err := src.Load(ctx)
	if err == nil && len(objects) == 0 {
		err = ErrEmptyCatalog
	}
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrEmptyCatalog) {
			outcome = "empty"
		}
		l.metrics.CatalogLoads.WithLabelValues(src.Name(), outcome).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	l.metrics.CatalogLoads.WithLabelValues(src.Name(), "success").Inc()

	processed, invalid := ProcessCoordinates(objects, l.logger, l.metrics)
	span.SetAttributes(
		attribute.Int("catalog.objects", len(processed)),
		attribute.Int("catalog.invalid_coordinates", invalid),
	)

	l.logger.Info("catalog loaded",
		"source", src.Name(),
		"objects", len(processed),
		"invalid_coordinates", invalid,
	)
	return &Dataset{
		Objects:            processed,
		Source:             src.Name(),
		LoadedAt:           clock.Now().UTC(),
		InvalidCoordinates: invalid,
	}, nil
}

// ProcessCoordinates returns a copy of objects with decimal coordinates
// attached, and the number of rows whose coordinates are unusable. Those rows
// are kept with Coords.Valid false.
func ProcessCoordinates(objects []domain.CelestialObject, logger *slog.Logger, metrics *observability.Metrics) ([]domain.CelestialObject, int) {
	out := make([]domain.CelestialObject, len(objects))
	invalid := 0
	for i, o := range objects {
		withCoords, err := o.WithCoordinates()
		if err == nil && !withCoords.Coords.InRange() {
			err = domain.ErrCoordinateRange
			withCoords.Coords.Valid = false
		}
		if err != nil {
			invalid++
			for _, axis := range failedAxes(err) {
				metrics.CoordinateErrors.WithLabelValues(string(axis)).Inc()
			}
			logger.Warn("invalid coordinates",
				"messier_id", o.MessierID,
				"ra", o.RAText,
				"dec", o.DecText,
				"error", err,
			)
		}
		out[i] = withCoords
	}
	if invalid > 0 {
		logger.Warn("objects have invalid coordinates", "count", invalid, "total", len(objects))
	}
	return out, invalid
}

// failedAxes lists the axes named by the ParseErrors inside err.
func failedAxes(err error) []domain.Axis {
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}

	var axes []domain.Axis
	for _, e := range errs {
		var pe *domain.ParseError
		if errors.As(e, &pe) {
			axes = append(axes, pe.Axis)
		}
	}
	return axes
}
