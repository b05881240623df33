// Package server exposes the cipher over HTTP.
package server

import (
	"caesar/internal/ctxlog"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

type Server struct {
	addr            string
	handler         http.Handler
	limit           *rateLimit
	shutdownTimeout time.Duration
}

func New(config Config) *Server {
	if config.Port <= 0 {
		panic("server: port is required")
	}
	if config.RateBuckets <= 0 {
		panic("server: rateBuckets is required")
	}
	if config.RatePeriod <= 0 {
		panic("server: ratePeriod is required")
	}
	if config.RateMaxConcurrent <= 0 {
		panic("server: rateMaxConcurrent is required")
	}
	if config.ShutdownTimeout <= 0 {
		panic("server: shutdownTimeout is required")
	}

	limit := newRateLimit(config.RateBuckets, config.RatePeriod, config.RateMaxConcurrent,
		statusHandler(http.StatusTooManyRequests), statusHandler(http.StatusServiceUnavailable))

	mux := http.NewServeMux()

	slog.Info("registering handler", "path", "/")
	mux.Handle("/", statusHandler(http.StatusNotFound))

	slog.Info("registering handler", "path", "/healthz")
	mux.Handle("GET /healthz", healthHandler())

	slog.Info("registering handler", "path", "/cipher")
	mux.Handle("GET /cipher", limit.middleware(cipherHandler()))

	handler := http.Handler(mux)
	handler = newRecover(handler, statusHandler(http.StatusInternalServerError))
	handler = logMiddleware(handler)

	return &Server{
		addr:            fmt.Sprintf("0.0.0.0:%d", config.Port),
		handler:         handler,
		limit:           limit,
		shutdownTimeout: config.ShutdownTimeout,
	}
}

// Run serves until ctx is done or the listener fails, then shuts down within
// the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	logger := ctxlog.Get(ctx)
	defer s.limit.stop()

	srv := &http.Server{
		Addr:        s.addr,
		Handler:     s.handler,
		// Requests keep the logger but outlive ctx, Shutdown drains them.
		BaseContext: func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server is running", "addr", s.addr)
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen: %w", err)
	})

	g.Go(func() error {
		<-gctx.Done()

		logger.Info("server is shutting down")

		stopCtx, stopCancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer stopCancel()

		err := srv.Shutdown(stopCtx)
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Error("server shutdown timeout exceeded")
		} else if err == nil {
			logger.Info("all clients closed successfully")
		}
		return err
	})

	return g.Wait()
}
