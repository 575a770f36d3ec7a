package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spetersoncode/dreamfuse"
	"github.com/spetersoncode/dreamfuse/handler"
	"golang.org/x/time/rate"
)

// maxBodyBytes bounds a handler request body. Confs carry paths and text.
const maxBodyBytes = 1 << 20

// ServerConfig configures the HTTP layer.
type ServerConfig struct {
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
	Logger    *slog.Logger
}

// Server exposes a handler registry over HTTP.
type Server struct {
	registry *handler.Registry
	gatherer prometheus.Gatherer
	limiter  *rate.Limiter
	config   ServerConfig
}

// NewServer creates a server for registry. gatherer backs /metrics.
func NewServer(registry *handler.Registry, gatherer prometheus.Gatherer, cfg ServerConfig) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 1
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	return &Server{
		registry: registry,
		gatherer: gatherer,
		limiter:  rate.NewLimiter(limit, cfg.RateBurst),
		config:   cfg,
	}
}

// Routes returns the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1/handlers", func(r chi.Router) {
		r.Get("/", s.listHandlers)
		r.With(s.rateLimit, s.requestLogger).Post("/{name}", s.runHandler)
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listHandlers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"handlers": s.registry.Names()})
}

func (s *Server) runHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	log := loggerFrom(r.Context(), s.config.Logger)

	if _, ok := s.registry.Get(name); !ok {
		writeError(w, http.StatusNotFound, "unknown handler: "+name)
		return
	}

	var conf handler.Conf
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&conf); err != nil {
		log.Warn("invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ctx := r.Context()
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := s.registry.Handle(ctx, name, conf)
	if err != nil {
		log.Error("handler failed", "handler", name, "error", err, "duration", time.Since(start))
		if d := dreamfuse.RetryAfterOf(err); d > 0 {
			w.Header().Set("Retry-After", retryAfterSeconds(d))
		}
		writeError(w, statusFor(err), err.Error())
		return
	}

	log.Info("handler completed", "handler", name, "duration", time.Since(start))
	writeJSON(w, http.StatusOK, result)
}

// statusFor maps a handler error to an HTTP status.
func statusFor(err error) int {
	var notFound *handler.ErrHandlerNotFound
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, dreamfuse.ErrMissingParam):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case dreamfuse.RetryAfterOf(err) > 0:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// retryAfterSeconds renders d as a Retry-After value, rounded up to whole
// seconds.
func retryAfterSeconds(d time.Duration) string {
	return strconv.FormatInt(int64((d+time.Second-1)/time.Second), 10)
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type loggerKey struct{}

// requestLogger attaches a logger carrying a fresh request id.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		log := s.config.Logger.With("request_id", id, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), loggerKey{}, log)))
	})
}

func loggerFrom(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return log
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
