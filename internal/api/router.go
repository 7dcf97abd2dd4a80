package api

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/Harshitk-cp/bayes/internal/api/handlers"
	mw "github.com/Harshitk-cp/bayes/internal/api/middleware"
	"github.com/Harshitk-cp/bayes/internal/buildconfig"
	"github.com/Harshitk-cp/bayes/internal/config"
	"github.com/Harshitk-cp/bayes/internal/domain"
	"github.com/Harshitk-cp/bayes/internal/service"
	"github.com/Harshitk-cp/bayes/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Pinger reports database reachability for /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options tunes the query service and rate limiter.
type Options struct {
	RateLimitRPS          float64
	RateLimitBurst        int
	MaxFreeVariables      int
	IndependenceTolerance float64
}

// OptionsFromConfig reads Options from the environment.
func OptionsFromConfig() Options {
	return Options{
		RateLimitRPS:          config.RateLimitRPS(),
		RateLimitBurst:        config.RateLimitBurst(),
		MaxFreeVariables:      config.MaxFreeVariables(),
		IndependenceTolerance: config.IndependenceTolerance(),
	}
}

// App holds the router and request counters.
type App struct {
	Router       *chi.Mux
	Limiter      *mw.RateLimiter
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
	metrics      *mw.MetricsCollector
}

func NewApp(db *pgxpool.Pool, logger *zap.Logger) *App {
	return newApp(db, store.NewTenantStore(db), store.NewNetworkStore(db), logger, OptionsFromConfig())
}

func newApp(db Pinger, tenantStore domain.TenantStore, networkStore domain.NetworkStore, logger *zap.Logger, opts Options) *App {
	// Services
	networkSvc := service.NewNetworkService(networkStore, logger)
	querySvc := service.NewQueryService(networkSvc, logger)
	querySvc.MaxFreeVariables = opts.MaxFreeVariables
	if opts.IndependenceTolerance > 0 {
		querySvc.Tolerance = opts.IndependenceTolerance
	}

	// Handlers
	tenantHandler := handlers.NewTenantHandler(tenantStore)
	networkHandler := handlers.NewNetworkHandler(networkSvc)
	queryHandler := handlers.NewQueryHandler(querySvc)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Limiter:   mw.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
		startTime: time.Now(),
	}
	app.metrics = mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.metrics.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(app.Limiter.Middleware)

	r.Get("/health", healthHandler(db))
	r.Get("/metrics", app.metricsHandler())

	// Tenant creation (no auth, bootstrap endpoint)
	r.Post("/v1/tenants", tenantHandler.Create)

	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(tenantStore))

		r.Route("/networks", func(r chi.Router) {
			r.Post("/", networkHandler.Create)
			r.Get("/", networkHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", networkHandler.GetByID)
				r.Delete("/", networkHandler.Delete)
				r.Post("/probability", queryHandler.Probability)
				r.Get("/parameters", queryHandler.Parameters)
				r.Post("/independence", queryHandler.Independence)
				r.Route("/variables/{name}", func(r chi.Router) {
					r.Get("/relations", queryHandler.Relations)
					r.Post("/simplify", queryHandler.SimplifyGivens)
				})
			})
		})
	})

	return app
}

// StartJanitor evicts idle rate limiter entries until ctx is done.
func (app *App) StartJanitor(ctx context.Context, every, maxAge time.Duration, logger *zap.Logger) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := app.Limiter.Cleanup(maxAge); n > 0 {
					logger.Debug("rate limiter cleanup", zap.Int("evicted", n))
				}
			}
		}
	}()
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"server_errors":  app.metrics.ServerErrors(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb": float64(memStats.Alloc) / 1024 / 1024,
				"sys_mb":   float64(memStats.Sys) / 1024 / 1024,
				"num_gc":   memStats.NumGC,
			},
			"go_version": runtime.Version(),
			"build":      buildconfig.VersionInfo(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores satisfy interfaces at compile time.
var (
	_ domain.TenantStore  = (*store.TenantStore)(nil)
	_ domain.NetworkStore = (*store.NetworkStore)(nil)
	_ Pinger              = (*pgxpool.Pool)(nil)
)
