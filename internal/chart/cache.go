package chart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/couchcryptid/messier-skychart/internal/catalog"
	"github.com/couchcryptid/messier-skychart/internal/domain"
	"github.com/couchcryptid/messier-skychart/internal/observability"
)

// Renderer filters a dataset and assembles the figure for it, remembering
// recent figures in an LRU cache. Entries are keyed by dataset generation, so
// a reload never serves a stale figure.
type Renderer struct {
	assembler *Assembler
	cache     *lruCache
	metrics   *observability.Metrics
}

// NewRenderer creates a renderer. A maxEntries of zero disables caching.
func NewRenderer(assembler *Assembler, maxEntries int, metrics *observability.Metrics) *Renderer {
	r := &Renderer{assembler: assembler, metrics: metrics}
	if maxEntries > 0 {
		r.cache = newLRUCache(maxEntries)
	}
	return r
}

// Render returns the figure for the objects of ds matching sel.
func (r *Renderer) Render(ctx context.Context, ds *catalog.Dataset, sel domain.Selection, opts Options) Figure {
	key := fmt.Sprintf("%d|%s|%s", ds.Generation, sel.Key(), opts.key())
	if r.cache != nil {
		if fig, ok := r.cache.get(key); ok {
			r.metrics.ChartCache.WithLabelValues("hit").Inc()
			return fig
		}
		r.metrics.ChartCache.WithLabelValues("miss").Inc()
	}

	_, span := observability.Tracer().Start(ctx, "chart.build")
	defer span.End()

	start := time.Now()
	objects := domain.Filter(ds.Objects, sel)
	fig := r.assembler.Build(objects, opts).Figure()
	r.metrics.ChartBuilds.Inc()
	r.metrics.ChartBuildDuration.Observe(time.Since(start).Seconds())

	span.SetAttributes(
		attribute.Int64("catalog.generation", int64(ds.Generation)),
		attribute.Int("chart.objects", len(objects)),
		attribute.Int("chart.traces", len(fig.Data)),
	)

	if r.cache != nil {
		r.cache.put(key, fig)
	}
	return fig
}

// lruCache is a simple thread-safe LRU cache of figures.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value Figure
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) get(key string) (Figure, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Figure{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value Figure) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.unlink(c.tail)
}
