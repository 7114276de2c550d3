package geodetic

import (
	"context"
	"sync"

	"github.com/hktools/hk-grid-service/internal/domain"
	"github.com/hktools/hk-grid-service/internal/observability"
)

// CachedTransformer wraps a Transformer with bounded in-memory LRU caches,
// one per direction. Keys are the sorted query-parameter encoding of the
// request, so equivalent requests hit the same entry regardless of how they
// were produced. Errors are never cached, so transient failures can be
// retried.
type CachedTransformer struct {
	inner   domain.Transformer
	forward *lruCache[domain.GridResult]
	reverse *lruCache[domain.GeoPoint]
	metrics *observability.Metrics
}

// NewCachedTransformer creates a cache decorator around a transformer.
func NewCachedTransformer(inner domain.Transformer, maxEntries int, metrics *observability.Metrics) *CachedTransformer {
	return &CachedTransformer{
		inner:   inner,
		forward: newLRUCache[domain.GridResult](maxEntries),
		reverse: newLRUCache[domain.GeoPoint](maxEntries),
		metrics: metrics,
	}
}

func (c *CachedTransformer) Forward(ctx context.Context, point domain.GeoPoint) (domain.GridResult, error) {
	key := forwardParams(point).Encode()
	if result, ok := c.forward.get(key); ok {
		c.metrics.TransformCache.WithLabelValues("forward", "hit").Inc()
		return result, nil
	}
	c.metrics.TransformCache.WithLabelValues("forward", "miss").Inc()

	result, err := c.inner.Forward(ctx, point)
	if err != nil {
		return result, err
	}
	c.forward.put(key, result)
	return result, nil
}

func (c *CachedTransformer) Reverse(ctx context.Context, ref domain.GridReference) (domain.GeoPoint, error) {
	key := reverseParams(ref).Encode()
	if result, ok := c.reverse.get(key); ok {
		c.metrics.TransformCache.WithLabelValues("reverse", "hit").Inc()
		return result, nil
	}
	c.metrics.TransformCache.WithLabelValues("reverse", "miss").Inc()

	result, err := c.inner.Reverse(ctx, ref)
	if err != nil {
		return result, err
	}
	c.reverse.put(key, result)
	return result, nil
}

// lruCache is a simple thread-safe LRU cache.
type lruCache[V any] struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry[V]
	head       *entry[V] // most recently used
	tail       *entry[V] // least recently used
}

type entry[V any] struct {
	key   string
	value V
	prev  *entry[V]
	next  *entry[V]
}

func newLRUCache[V any](maxEntries int) *lruCache[V] {
	return &lruCache[V]{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry[V]),
	}
}

func (c *lruCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache[V]) put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache[V]) addToFront(e *entry[V]) {
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

func (c *lruCache[V]) remove(e *entry[V]) {
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

func (c *lruCache[V]) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
