package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpmiddleware "github.com/wolfman30/client-search/internal/http/middleware"
	"github.com/wolfman30/client-search/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger *logging.Logger

	// SearchHandler dispatches on method itself, so it is mounted for every method.
	SearchHandler http.Handler
	SearchPath    string

	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// RateLimitRPS of zero leaves the search route unlimited.
	RateLimitRPS   float64
	RateLimitBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Operational endpoints
	r.Group(func(ops chi.Router) {
		if len(cfg.CORSAllowedOrigins) > 0 {
			ops.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
		}
		ops.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			ops.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	if cfg.SearchHandler != nil {
		path := cfg.SearchPath
		if path == "" {
			path = "/client-search"
		}
		search := httpmiddleware.RecoverJSON(cfg.Logger)(cfg.SearchHandler)
		if cfg.RateLimitRPS > 0 {
			search = httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Logger)(search)
		}
		r.Handle(path, search)

		// chi answers methods outside its method table itself; send those
		// to the search handler so its 405 envelope and CORS header apply.
		r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
			if req.URL.Path == path {
				search.ServeHTTP(w, req)
				return
			}
			w.WriteHeader(http.StatusMethodNotAllowed)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
