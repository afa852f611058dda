package catalog

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/couchcryptid/messier-skychart/internal/observability"
)

var errNotLoaded = errors.New("catalog has not been loaded yet")

// Store holds the current Dataset. Readers get an immutable snapshot; a
// reload swaps the pointer without affecting requests already in flight.
type Store struct {
	current    atomic.Pointer[Dataset]
	generation atomic.Uint64
	metrics    *observability.Metrics
}

// NewStore creates an empty store.
func NewStore(metrics *observability.Metrics) *Store {
	return &Store{metrics: metrics}
}

// Get returns the current dataset, or nil before the first Set.
func (s *Store) Get() *Dataset {
	return s.current.Load()
}

// Set publishes ds under the next generation number.
func (s *Store) Set(ds *Dataset) {
	ds.Generation = s.generation.Add(1)
	s.current.Store(ds)
	s.metrics.CatalogObjects.Set(float64(ds.Len()))
}

// CheckReadiness returns nil once a dataset has been published.
func (s *Store) CheckReadiness(_ context.Context) error {
	if s.current.Load() == nil {
		return errNotLoaded
	}
	return nil
}
