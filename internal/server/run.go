package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// RunConfig controls the listener lifecycle.
type RunConfig struct {
	Addr              string
	ShutdownGrace     time.Duration
	ReadHeaderTimeout time.Duration
}

// Run serves handler until ctx is cancelled, then shuts down within the grace
// period. When ready is non-nil it receives the bound address once listening.
func Run(ctx context.Context, cfg RunConfig, handler http.Handler, logger *zap.Logger, ready chan<- string) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", cfg.Addr, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", listener.Addr().String()))
		serverErrors <- srv.Serve(listener)
	}()
	if ready != nil {
		ready <- listener.Addr().String()
	}

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: serve: %w", err)

	case <-ctx.Done():
		logger.Info("server shutting down", zap.Duration("grace", cfg.ShutdownGrace))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", zap.Error(err))
			if closeErr := srv.Close(); closeErr != nil {
				return fmt.Errorf("server: close: %w", closeErr)
			}
			return fmt.Errorf("server: shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	}
}
