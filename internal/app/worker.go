package app

import (
	"context"
	"time"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/config"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/messaging/kafka"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/messaging/kafka/producer"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/connection"

	"go.uber.org/zap"
)

const (
	kafkaMaxRetries    = 5
	outboxPollInterval = 3 * time.Second
)

// RunWorker relays pending notification events from the outbox table to
// Kafka until SIGINT or SIGTERM.
func RunWorker(cfg *config.Config) error {
	if err := requireKafka(cfg); err != nil {
		return err
	}
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	writer, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, kafkaMaxRetries)
	if err != nil {
		return err
	}
	defer writer.Close()

	outbox := kafka.NewOutboxRepository(sqlDB)
	runUntilSignal(logger, func(ctx context.Context) {
		producer.ProcessOutboxEvents(ctx, outbox, writer, logger, outboxPollInterval)
	})
	return nil
}
