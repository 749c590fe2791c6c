package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/events"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/notification"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Retry tuning, overridden in tests.
var (
	persistAttempts = 5
	retryBaseDelay  = 200 * time.Millisecond
	retryMaxDelay   = 10 * time.Second
)

// ConsumeNotificationRequests persists every notification_requested event.
// Undecodable or foreign messages are committed and skipped. A failed write
// is retried on the same message with backoff; once persistAttempts is spent
// the event is logged as dropped and committed, since committing any later
// offset would skip it anyway.
func ConsumeNotificationRequests(
	ctx context.Context,
	reader MessageReader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notifications")
	log.Info("notification consumer started")

	fetchFailures := 0
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			fetchFailures++
			delay := backoff(fetchFailures)
			log.Error("fetch notification message failed",
				zap.Int("failures", fetchFailures),
				zap.Duration("retry_in", delay),
				zap.Error(err),
			)
			if !sleepCtx(ctx, delay) {
				log.Info("notification consumer stopped")
				return
			}
			continue
		}
		fetchFailures = 0

		handleMessage(ctx, reader, notificationService, msg, log)
	}
}

// backoff doubles from retryBaseDelay for each consecutive failure, capped
// at retryMaxDelay.
func backoff(failures int) time.Duration {
	d := retryBaseDelay
	for i := 1; i < failures && d < retryMaxDelay; i++ {
		d *= 2
	}
	return min(d, retryMaxDelay)
}

// sleepCtx waits d and reports false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func handleMessage(
	ctx context.Context,
	reader MessageReader,
	notificationService notification.Service,
	msg kafkago.Message,
	log *zap.Logger,
) {
	var event events.NotificationRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode notification event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	if event.EventType != events.NotificationRequestedType {
		log.Warn("skipping unexpected event type", zap.String("event_type", event.EventType))
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	msgCtx := ctx
	if event.RequestID != "" {
		msgCtx = contextutil.WithRequestID(ctx, event.RequestID)
	}

	for attempt := 1; ; attempt++ {
		err := notification.Dispatch(msgCtx, notificationService, event)
		if err == nil {
			break
		}
		fields := []zap.Field{
			zap.String("kind", event.Kind),
			zap.String("aggregate_id", event.AggregateID()),
			zap.String("request_id", event.RequestID),
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Error(err),
		}
		if attempt >= persistAttempts {
			log.Error("persist notification failed, dropping event", fields...)
			_ = reader.CommitMessages(ctx, msg)
			return
		}
		log.Warn("persist notification failed, retrying", fields...)
		if !sleepCtx(ctx, backoff(attempt)) {
			// Left uncommitted; the group resumes from here on restart.
			return
		}
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit notification message failed", zap.Error(err))
		return
	}

	log.Debug("notification persisted",
		zap.String("kind", event.Kind),
		zap.String("aggregate_id", event.AggregateID()),
	)
}
