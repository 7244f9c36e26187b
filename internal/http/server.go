// Package http exposes the JSON API: family CRUD, bill calculation and
// persistence, batch generation, period summaries and document exports.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"warikan/internal/cache"
	"warikan/internal/core"
	"warikan/internal/middleware/ratelimit"
	"warikan/internal/middleware/trace"
	"warikan/internal/services"
)

type Server struct {
	http.Server

	families  *services.FamilyService
	bills     *services.BillService
	summaries *services.SummaryService
	exports   *services.ExportService

	validate *validator.Validate

	// Summary responses cached by range; any bill write invalidates the
	// whole cache since every range may be affected.
	summaryCache *cache.LRUCache[[]core.SummaryEntry]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

type Options struct {
	Addr             string
	SummaryCacheSize int
	SummaryCacheTTL  time.Duration
}

// NewServer wires routes, middleware and the summary cache.
func NewServer(opts Options, families *services.FamilyService, bills *services.BillService, summaries *services.SummaryService, exports *services.ExportService) *Server {
	mux := http.NewServeMux()

	if opts.SummaryCacheSize < 1 {
		opts.SummaryCacheSize = 64
	}
	if opts.SummaryCacheTTL <= 0 {
		opts.SummaryCacheTTL = 5 * time.Minute
	}

	s := &Server{
		families:     families,
		bills:        bills,
		summaries:    summaries,
		exports:      exports,
		validate:     newValidator(),
		summaryCache: cache.NewLRUCache[[]core.SummaryEntry](opts.SummaryCacheSize, opts.SummaryCacheTTL),
		cacheManager: cache.NewManager(),
	}
	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/families", s.handleListFamilies)
	mux.HandleFunc("POST /api/families", s.handleCreateFamily)
	mux.HandleFunc("PUT /api/families/{id}", s.handleUpdateFamily)
	mux.HandleFunc("DELETE /api/families/{id}", s.handleDeleteFamily)

	mux.HandleFunc("POST /api/bills/calculate", s.handleCalculateBill)
	mux.HandleFunc("GET /api/bills", s.handleListBills)
	mux.HandleFunc("POST /api/bills", s.handleSaveBill)
	mux.HandleFunc("GET /api/bills/{id}", s.handleGetBill)
	mux.HandleFunc("DELETE /api/bills/{id}", s.handleDeleteBill)
	mux.HandleFunc("POST /api/bills/batch", s.handleGenerateBatch)

	mux.HandleFunc("GET /api/summary", s.handleSummary)

	mux.HandleFunc("POST /api/exports/bill/{id}", s.handleExportBill)
	mux.HandleFunc("POST /api/exports/summary", s.handleExportSummary)

	limiter := ratelimit.New(60, time.Minute)
	tracer := trace.NewMiddleware(clientIP)
	s.Server = http.Server{
		Addr:    opts.Addr,
		Handler: tracer.Middleware(limiter.Middleware(mux)),
	}
	return s
}

// Shutdown stops the cache cleanup goroutine and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
