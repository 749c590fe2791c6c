package producer

import (
	"context"
	"time"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	batchSize           = 50
	defaultPollInterval = 3 * time.Second
)

// BatchResult counts what happened to one polled batch.
type BatchResult struct {
	Sent     int
	Retrying int
	Dead     int
}

func (b BatchResult) Total() int { return b.Sent + b.Retrying + b.Dead }

// ProcessOutboxEvents relays due outbox rows to kafka until ctx is cancelled.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	log := logger.Named("kafka.producer.worker")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("notification relay started", zap.Duration("poll_interval", pollInterval))
	for {
		select {
		case <-ctx.Done():
			log.Info("notification relay stopped")
			return
		case <-ticker.C:
		}

		res, err := ProcessPendingEvents(ctx, repo, writer, log)
		if err != nil {
			log.Error("poll outbox failed", zap.Error(err))
			continue
		}
		if res.Total() > 0 {
			log.Info("outbox batch relayed",
				zap.Int("sent", res.Sent),
				zap.Int("retrying", res.Retrying),
				zap.Int("dead", res.Dead),
			)
		}
	}
}

// ProcessPendingEvents publishes one batch of due outbox events. Only a
// failure to read the outbox is returned; per-event failures are recorded
// on the row.
func ProcessPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (BatchResult, error) {
	var res BatchResult

	due, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return res, err
	}

	for _, event := range due {
		log := logger.With(
			zap.String("outbox_id", event.ID),
			zap.String("aggregate_id", event.AggregateID),
			zap.String("request_id", event.RequestID),
		)

		pubErr := publishEvent(ctx, writer, event)
		if pubErr == nil {
			if err := repo.MarkSent(ctx, event.ID); err != nil {
				// Row stays due and is published again next poll.
				log.Error("mark outbox sent failed", zap.Error(err))
			}
			res.Sent++
			continue
		}

		if err := repo.MarkFailed(ctx, event.ID, pubErr.Error()); err != nil {
			log.Error("mark outbox failed failed", zap.Error(err))
		}
		if event.LastAttempt() {
			res.Dead++
			log.Warn("notification event parked as dead",
				zap.Int("attempts", event.RetryCount+1),
				zap.Error(pubErr),
			)
			continue
		}
		res.Retrying++
		log.Warn("notification publish failed, will retry",
			zap.Int("attempts", event.RetryCount+1),
			zap.Error(pubErr),
		)
	}

	return res, nil
}
