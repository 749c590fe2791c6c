package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StartHTTPServer serves handler until SIGINT or SIGTERM.
func StartHTTPServer(handler http.Handler, cfg ServerConfig, audit AuditLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return Serve(ctx, handler, cfg, audit)
}

// Serve runs the HTTP server until ctx is done, then drains in-flight
// requests for at most shutdownTimeout. A listen failure is returned
// immediately.
func Serve(ctx context.Context, handler http.Handler, cfg ServerConfig, audit AuditLogger) error {
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	log := zap.L().Named("http")

	listenErr := make(chan error, 1)
	go func() {
		log.Info("attendance api listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	audit.Log(ctx, AuditLog{
		Action:  "SERVER_START",
		Message: "Server started",
		Meta:    map[string]any{"port": cfg.Port},
	})

	select {
	case err, failed := <-listenErr:
		if failed {
			return fmt.Errorf("listen on :%s: %w", cfg.Port, err)
		}
		return nil
	case <-ctx.Done():
	}

	audit.Log(context.Background(), AuditLog{
		Action:  "SERVER_SHUTDOWN",
		Message: "Server is shutting down",
		Meta:    map[string]any{"cause": context.Cause(ctx).Error()},
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("attendance api stopped")
	return nil
}
