// Package cache provides a small in-process LRU cache with TTL expiry,
// used to memoize analytics snapshots between collection changes.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type entry[T any] struct {
	key       string
	value     T
	expiresAt time.Time
}

// LRU is a fixed-capacity cache. Entries expire after the configured TTL
// and the least recently used entry is evicted when capacity is exceeded.
type LRU[T any] struct {
	mu      sync.Mutex
	cap     int
	ttl     time.Duration
	index   map[string]*list.Element
	order   *list.List
	janitor chan struct{}
	once    sync.Once
}

// NewLRU creates a cache holding at most cap entries, each valid for ttl.
func NewLRU[T any](cap int, ttl time.Duration) *LRU[T] {
	return &LRU[T]{
		cap:     cap,
		ttl:     ttl,
		index:   make(map[string]*list.Element),
		order:   list.New(),
		janitor: make(chan struct{}),
	}
}

// Get returns the cached value for key if present and not expired.
func (c *LRU[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, ok := c.index[key]
	if !ok {
		return zero, false
	}
	ent := elem.Value.(*entry[T])
	if time.Now().After(ent.expiresAt) {
		c.evict(elem)
		return zero, false
	}
	c.order.MoveToFront(elem)
	return ent.value, true
}

// Set stores value under key, replacing any existing entry.
func (c *LRU[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent := &entry[T]{key: key, value: value, expiresAt: time.Now().Add(c.ttl)}
	if elem, ok := c.index[key]; ok {
		elem.Value = ent
		c.order.MoveToFront(elem)
		return
	}
	c.index[key] = c.order.PushFront(ent)
	if c.order.Len() > c.cap {
		if oldest := c.order.Back(); oldest != nil {
			c.evict(oldest)
		}
	}
}

// Flush drops every entry. Called when the underlying collection changes.
func (c *LRU[T]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = make(map[string]*list.Element)
	c.order.Init()
}

// CleanExpired removes expired entries and reports how many were dropped.
func (c *LRU[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		if now.After(elem.Value.(*entry[T]).expiresAt) {
			c.evict(elem)
			removed++
		}
		elem = prev
	}
	return removed
}

// Len returns the number of live entries, expired or not.
func (c *LRU[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// StartJanitor launches a background sweep of expired entries every
// interval. Stop terminates it.
func (c *LRU[T]) StartJanitor(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.CleanExpired()
			case <-c.janitor:
				return
			}
		}
	}()
}

// Stop halts the janitor goroutine. Safe to call more than once.
func (c *LRU[T]) Stop() {
	c.once.Do(func() { close(c.janitor) })
}

func (c *LRU[T]) evict(elem *list.Element) {
	delete(c.index, elem.Value.(*entry[T]).key)
	c.order.Remove(elem)
}
