package waitlist

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	pruneInterval          = time.Minute
	requestIDHeader        = "X-Request-ID"
)

// Options configure the server runtime.
type Options struct {
	Listen          string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// StylesheetPath is served at /tokens.css when set.
	StylesheetPath string
}

// Server hosts the waitlist endpoint alongside health, metrics, and the
// generated token stylesheet.
type Server struct {
	opts    Options
	logger  zerolog.Logger
	handler *Handler
	limiter *RateLimiter
	http    *http.Server
}

// NewServer constructs a server. limiter may be nil to disable rate limiting.
func NewServer(opts Options, handler *Handler, limiter *RateLimiter, logger zerolog.Logger) (*Server, error) {
	if handler == nil {
		return nil, errors.New("waitlist handler is required")
	}
	if opts.Listen == "" {
		return nil, errors.New("listen address is required")
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}

	s := &Server{
		opts:    opts,
		logger:  logger,
		handler: handler,
		limiter: limiter,
	}
	s.http = &http.Server{
		Addr:         opts.Listen,
		Handler:      s.Routes(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s, nil
}

// Routes returns the server's request multiplexer.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/waitlist", s.handler)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	registry := prometheus.NewRegistry()
	registry.MustRegister(newLimiterCollector(s.limiter))
	gatherers := prometheus.Gatherers{prometheus.DefaultGatherer, registry}
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{}))
	if s.opts.StylesheetPath != "" {
		mux.Handle("GET /tokens.css", gzhttp.GzipHandler(http.HandlerFunc(s.serveStylesheet)))
	}
	return s.logRequests(mux)
}

func (s *Server) serveStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, s.opts.StylesheetPath)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(started)).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Run starts the HTTP server and blocks until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	listener, err := net.Listen("tcp", s.opts.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Listen, err)
	}
	return s.Serve(ctx, listener)
}

// Serve runs the server on an existing listener until ctx is canceled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.logger.Info().
		Str("bind", listener.Addr().String()).
		Msg("waitlist server starting")

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("waitlist server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
			defer cancel()
			if err := s.http.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			s.logger.Info().Msg("waitlist server shutdown complete")
			return nil
		case err, ok := <-errCh:
			if ok && err != nil {
				return fmt.Errorf("http server error: %w", err)
			}
			return nil
		case <-ticker.C:
			if removed := s.limiter.Prune(pruneInterval); removed > 0 {
				s.logger.Debug().Int("removed", removed).Msg("pruned idle rate limit buckets")
			}
		}
	}
}
