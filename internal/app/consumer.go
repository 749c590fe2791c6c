package app

import (
	"context"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/config"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/employee"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/messaging/kafka/consumer"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/notification"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func notificationReader(cfg *config.Config) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{cfg.Kafka.Broker},
		Topic:       cfg.Kafka.NotificationTopic,
		GroupID:     cfg.Kafka.ConsumerGroup,
		StartOffset: kafkago.FirstOffset,
	})
}

// RunConsumer persists notification_requested events until SIGINT or SIGTERM.
func RunConsumer(cfg *config.Config) error {
	if err := requireKafka(cfg); err != nil {
		return err
	}
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	svc := notification.NewService(
		notification.NewRepository(gormDB),
		employee.NewRepository(gormDB),
	)

	reader := notificationReader(cfg)
	defer reader.Close()

	runUntilSignal(logger, func(ctx context.Context) {
		consumer.ConsumeNotificationRequests(ctx, reader, svc, logger)
	})
	return nil
}
