// Package ratelimit provides a per-client fixed-window request limiter.
package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

type clientWindow struct {
	windowStart time.Time
	requests    int
}

// Config holds rate limiter configuration
type Config struct {
	Requests        int
	Window          time.Duration
	CleanupInterval time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Requests:        100,
		Window:          time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// Limiter tracks request counts per client key within a rolling window.
type Limiter struct {
	mu       sync.Mutex
	clients  map[string]*clientWindow
	requests int
	window   time.Duration

	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

// NewLimiter creates a limiter and starts its cleanup goroutine.
func NewLimiter(config Config) *Limiter {
	if config.Requests <= 0 {
		config.Requests = DefaultConfig().Requests
	}
	if config.Window <= 0 {
		config.Window = DefaultConfig().Window
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = DefaultConfig().CleanupInterval
	}

	l := &Limiter{
		clients:     make(map[string]*clientWindow),
		requests:    config.Requests,
		window:      config.Window,
		stopCleanup: make(chan struct{}),
	}
	go l.cleanupLoop(config.CleanupInterval)
	return l
}

// Allow reports whether another request from key fits in the current window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	client, ok := l.clients[key]
	if !ok || now.Sub(client.windowStart) >= l.window {
		l.clients[key] = &clientWindow{windowStart: now, requests: 1}
		return true
	}

	client.requests++
	return client.requests <= l.requests
}

// ActiveClients returns the number of currently tracked clients
func (l *Limiter) ActiveClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Stop terminates the cleanup goroutine. Safe to call more than once.
func (l *Limiter) Stop() {
	l.shutdownOnce.Do(func() { close(l.stopCleanup) })
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.dropStale()
		case <-l.stopCleanup:
			return
		}
	}
}

// dropStale removes clients whose window expired at least two windows ago.
func (l *Limiter) dropStale() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-2 * l.window)
	for key, client := range l.clients {
		if client.windowStart.Before(cutoff) {
			delete(l.clients, key)
		}
	}
}

// Middleware wraps a handler, answering 429 once a client exhausts its window.
func (l *Limiter) Middleware(extractKey func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(extractKey(r)) {
				w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
				http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
