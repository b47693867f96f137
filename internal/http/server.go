// Package http exposes the expense tracker as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"gastos/internal/budget"
	"gastos/internal/cache"
	"gastos/internal/middleware/ratelimit"
	"gastos/internal/middleware/trace"
	"gastos/internal/services"
	"gastos/internal/store"
)

// Options tune server behavior beyond its dependencies.
type Options struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	AnalyticsCacheTTL time.Duration
}

type Server struct {
	http.Server

	expenses *services.ExpenseService
	budget   *budget.Manager
	store    store.Store

	limiter *ratelimit.Limiter
	tracer  *trace.Middleware

	// Analytics responses are cached per filter until the collection
	// changes; the store subscription below flushes on every mutation.
	analyticsCache *cache.LRU[analyticsResponse]
	unsubscribe    func()

	shutdownOnce sync.Once
}

// NewServer wires routes, middleware and the analytics cache. The store is
// also passed directly so the server can subscribe to change notifications
// and probe for optional profile support.
func NewServer(addr string, expenses *services.ExpenseService, budgetMgr *budget.Manager, st store.Store, opts Options) *Server {
	if opts.AnalyticsCacheTTL <= 0 {
		opts.AnalyticsCacheTTL = 30 * time.Second
	}

	s := &Server{
		expenses: expenses,
		budget:   budgetMgr,
		store:    st,
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			Requests: opts.RateLimitRequests,
			Window:   opts.RateLimitWindow,
		}),
		tracer:         trace.NewMiddleware(),
		analyticsCache: cache.NewLRU[analyticsResponse](64, opts.AnalyticsCacheTTL),
	}
	s.analyticsCache.StartJanitor(10 * time.Minute)

	changes, cancel := st.Subscribe()
	s.unsubscribe = cancel
	go func() {
		for range changes {
			s.analyticsCache.Flush()
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses/{id}", s.handleGetExpense)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("GET /api/analytics", s.handleAnalytics)
	mux.HandleFunc("GET /api/budget", s.handleGetBudget)
	mux.HandleFunc("PUT /api/budget", s.handleUpdateBudget)
	mux.HandleFunc("GET /api/budget/status", s.handleBudgetStatus)
	mux.HandleFunc("GET /api/profile", s.handleGetProfile)
	mux.HandleFunc("PUT /api/profile", s.handleUpdateProfile)

	handler := withSecurityHeaders(s.limiter.Middleware(trace.ClientIP)(mux))
	s.Server.Addr = addr
	s.Server.Handler = s.tracer.Handler(handler)
	s.Server.ReadHeaderTimeout = 5 * time.Second
	s.Server.ReadTimeout = 15 * time.Second
	s.Server.WriteTimeout = 30 * time.Second
	s.Server.IdleTimeout = 60 * time.Second

	return s
}

// Shutdown stops background goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
		s.analyticsCache.Stop()
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
