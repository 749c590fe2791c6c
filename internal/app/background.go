package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/config"

	"go.uber.org/zap"
)

var errKafkaNotConfigured = errors.New("KAFKA_BROKER is required")

// runUntilSignal runs loop in the background and cancels it on SIGINT or
// SIGTERM, waiting for it to return.
func runUntilSignal(logger *zap.Logger, loop func(ctx context.Context)) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	runUntilDone(ctx, logger, loop)
}

func runUntilDone(ctx context.Context, logger *zap.Logger, loop func(ctx context.Context)) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		loop(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		<-done
	case <-done:
		logger.Warn("loop exited before shutdown")
	}
}

// requireKafka rejects background processes started without a broker.
func requireKafka(cfg *config.Config) error {
	if cfg.Kafka.Broker == "" {
		return errKafkaNotConfigured
	}
	return nil
}
