// Package server implements the generation endpoint that the action client
// talks to: POST /api/write/{slug}.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/trueinfluence/writeit/internal/action"
	werrors "github.com/trueinfluence/writeit/internal/errors"
	"github.com/trueinfluence/writeit/internal/generate"
	"github.com/trueinfluence/writeit/internal/logger"
	"github.com/trueinfluence/writeit/internal/metrics"
)

// maxBodyBytes bounds the request body.
const maxBodyBytes = 64 << 10

// Generator produces content for one request.
type Generator interface {
	Generate(ctx context.Context, slug string, req action.Request) (string, error)
}

// Options configures rate limiting.
type Options struct {
	RatePerMinute int
	Burst         int
}

// Server serves the generation API.
type Server struct {
	gen  Generator
	opts Options
	log  *slog.Logger
	mux  *http.ServeMux

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates a server backed by gen.
func New(gen Generator, opts Options) *Server {
	if opts.RatePerMinute <= 0 {
		opts.RatePerMinute = 10
	}
	if opts.Burst <= 0 {
		opts.Burst = 3
	}
	s := &Server{
		gen:      gen,
		opts:     opts,
		log:      logger.ComponentLogger("Server"),
		mux:      http.NewServeMux(),
		limiters: make(map[string]*rate.Limiter),
	}
	s.mux.HandleFunc("POST "+action.EndpointPrefix+"{slug}", s.handleWrite)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.Handler())
	return s
}

// Handler returns the root handler with request ID handling applied.
func (s *Server) Handler() http.Handler {
	return withRequestID(s.mux)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// limiter returns the token bucket for slug.
func (s *Server) limiter(slug string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.limiters[slug]
	if !ok {
		every := time.Minute / time.Duration(s.opts.RatePerMinute)
		l = rate.NewLimiter(rate.Every(every), s.opts.Burst)
		s.limiters[slug] = l
	}
	return l
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleWrite(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	log := logger.WithRequest(requestIDFrom(r.Context())).With("component", "Server", "slug", slug)

	if !generate.ValidSlug(slug) {
		s.reject(w, "", http.StatusBadRequest, "invalid slug")
		return
	}

	var req action.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		log.Info("bad request body", "error", err)
		s.reject(w, "", http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Type == "" {
		req.Type = action.KindWrite
	}
	if !req.Type.Valid() {
		// the kind label only ever carries known kinds
		s.reject(w, "", http.StatusBadRequest, "unknown type "+string(req.Type))
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		s.reject(w, string(req.Type), http.StatusBadRequest, "topic is required")
		return
	}

	if !s.limiter(slug).Allow() {
		log.Warn("request refused", "kind", string(req.Type), "error", werrors.RateLimited(slug))
		metrics.RateLimited.WithLabelValues(slug).Inc()
		s.reject(w, string(req.Type), http.StatusTooManyRequests, werrors.KindRateLimited.String())
		return
	}

	metrics.InFlight.Inc()
	start := time.Now()
	content, err := s.gen.Generate(r.Context(), slug, req)
	metrics.InFlight.Dec()
	metrics.GenerationLatency.WithLabelValues(string(req.Type)).Observe(time.Since(start).Seconds())

	if err != nil {
		log.Error("generation failed", "kind", string(req.Type), "topic", req.Topic, "error", err)
		metrics.RequestCount.WithLabelValues(string(req.Type), "error").Inc()
		writeJSON(w, http.StatusBadGateway, action.Response{
			Content: generate.FailureContent,
			Error:   werrors.Detail(err),
		})
		return
	}

	log.Info("generated", "kind", string(req.Type), "topic", req.Topic, "bytes", len(content))
	metrics.RequestCount.WithLabelValues(string(req.Type), "ok").Inc()
	writeJSON(w, http.StatusOK, action.Response{Content: content})
}

// reject writes an error body and counts the request.
func (s *Server) reject(w http.ResponseWriter, kind string, status int, message string) {
	if kind == "" {
		kind = "unknown"
	}
	metrics.RequestCount.WithLabelValues(kind, http.StatusText(status)).Inc()
	writeJSON(w, status, action.Response{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
