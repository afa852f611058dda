package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/messier-skychart/internal/observability"
)

func TestStore_Readiness(t *testing.T) {
	s := NewStore(observability.NewMetricsForTesting())
	assert.Nil(t, s.Get())
	assert.Error(t, s.CheckReadiness(context.Background()))

	s.Set(&Dataset{Source: SourceSample})
	assert.NoError(t, s.CheckReadiness(context.Background()))
}

func TestStore_GenerationIncreases(t *testing.T) {
	s := NewStore(observability.NewMetricsForTesting())

	first := &Dataset{Source: SourceFile}
	s.Set(first)
	assert.Equal(t, uint64(1), first.Generation)

	second := &Dataset{Source: SourceFile}
	s.Set(second)
	assert.Equal(t, uint64(2), second.Generation)
	assert.Same(t, second, s.Get())
	assert.Equal(t, uint64(1), first.Generation, "old snapshot is untouched")
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore(observability.NewMetricsForTesting())
	s.Set(&Dataset{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Set(&Dataset{})
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, s.Get())
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(9), s.Get().Generation)
}
