// Package api exposes the roster, dashboard and target operations over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	domainerrors "github.com/qlpapp/qlp-server/internal/errors"
	"github.com/qlpapp/qlp-server/internal/metrics"
	"github.com/qlpapp/qlp-server/internal/ratelimit"
	"github.com/qlpapp/qlp-server/internal/store"
)

// Options configures the HTTP surface.
type Options struct {
	Version        string
	CORSOrigins    []string
	LoginPerMinute int
	LoginBurst     int
	PhotoMaxBytes  int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store         store.Store
	services      *Services
	router        *chi.Mux
	api           huma.API
	loginLimiter  *ratelimit.KeyedRateLimiter
	photoMaxBytes int
	logger        *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(metrics.Middleware)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(authMiddleware(services.Auth))

	humaConfig := huma.DefaultConfig("QLP API", opts.Version)
	humaConfig.Info.Description = "Workforce roster, diversity quota dashboard and area targets"
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:         st,
		services:      services,
		router:        router,
		api:           api,
		loginLimiter:  ratelimit.New(ratelimit.PerMinute(opts.LoginPerMinute), opts.LoginBurst),
		photoMaxBytes: opts.PhotoMaxBytes,
		logger:        logger,
	}

	s.registerRoutes()
	router.Handle("/metrics", metrics.Handler())

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	if s.loginLimiter != nil {
		s.loginLimiter.Stop()
	}
}

func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerRosterRoutes()
	s.registerDashboardRoutes()
	s.registerTargetRoutes()
	s.registerPhotoRoutes()
}

// requestLogger logs one line per request at debug level, warn for 5xx.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			}
			level := slog.LevelDebug
			if status >= http.StatusBadRequest {
				attrs = append(attrs, "code", domainerrors.CodeForStatus(status))
			}
			if status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			logger.Log(r.Context(), level, "request", attrs...)
		})
	}
}
