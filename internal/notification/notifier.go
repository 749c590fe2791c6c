package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/events"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/messaging/kafka"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/contextutil"

	"go.uber.org/zap"
)

// Notifier is the fire-and-forget side channel used by the attendance and
// payroll engines. Publish never fails the caller.
type Notifier interface {
	Publish(ctx context.Context, evt events.NotificationRequestedEvent)
}

func UserEvent(userID int64, title, message, typ string, metadata map[string]any) events.NotificationRequestedEvent {
	return events.NotificationRequestedEvent{
		Kind:     events.NotificationKindUser,
		UserID:   strconv.FormatInt(userID, 10),
		Title:    title,
		Message:  message,
		Type:     typ,
		Metadata: metadata,
	}
}

func SystemEvent(title, message, typ string, metadata map[string]any) events.NotificationRequestedEvent {
	return events.NotificationRequestedEvent{
		Kind:     events.NotificationKindSystem,
		Title:    title,
		Message:  message,
		Type:     typ,
		Metadata: metadata,
	}
}

func AttendanceEvent(identifier, checkType string, at time.Time) events.NotificationRequestedEvent {
	return events.NotificationRequestedEvent{
		Kind:               events.NotificationKindAttendance,
		EmployeeIdentifier: identifier,
		CheckType:          checkType,
		At:                 at,
	}
}

// Dispatch persists one requested notification through the service.
func Dispatch(ctx context.Context, svc Service, evt events.NotificationRequestedEvent) error {
	var err error
	switch evt.Kind {
	case events.NotificationKindUser:
		_, err = svc.CreateNotification(ctx, evt.UserID, evt.Title, evt.Message, evt.Type, evt.Metadata)
	case events.NotificationKindSystem:
		_, err = svc.CreateSystemNotification(ctx, evt.Title, evt.Message, evt.Type, evt.Metadata)
	case events.NotificationKindAttendance:
		at := evt.At
		if at.IsZero() {
			at = evt.OccurredAt
		}
		_, err = svc.AttendanceCreated(ctx, evt.EmployeeIdentifier, evt.CheckType, at)
	default:
		err = fmt.Errorf("unknown notification kind %q", evt.Kind)
	}
	return err
}

// DirectNotifier writes notifications in-process.
type DirectNotifier struct {
	svc    Service
	logger *zap.Logger
}

func NewDirectNotifier(svc Service, logger ...*zap.Logger) *DirectNotifier {
	l := zap.L().Named("notification.direct")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.direct")
	}
	return &DirectNotifier{svc: svc, logger: l}
}

func (n *DirectNotifier) Publish(ctx context.Context, evt events.NotificationRequestedEvent) {
	if err := Dispatch(ctx, n.svc, evt); err != nil {
		contextutil.GetLogger(ctx, n.logger).Warn("notification dropped",
			zap.String("kind", evt.Kind),
			zap.String("type", evt.Type),
			zap.Error(err),
		)
	}
}

// OutboxNotifier enqueues notifications in the outbox table for the kafka
// worker to publish. Call it after the business transaction has committed.
type OutboxNotifier struct {
	outbox kafka.OutboxRepository
	topic  string
	logger *zap.Logger
}

func NewOutboxNotifier(outbox kafka.OutboxRepository, topic string, logger ...*zap.Logger) *OutboxNotifier {
	if topic == "" {
		topic = events.NotificationRequestedTopic
	}
	l := zap.L().Named("notification.outbox")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.outbox")
	}
	return &OutboxNotifier{outbox: outbox, topic: topic, logger: l}
}

func (n *OutboxNotifier) Publish(ctx context.Context, evt events.NotificationRequestedEvent) {
	log := contextutil.GetLogger(ctx, n.logger)

	evt.EventType = events.NotificationRequestedType
	evt.RequestID = contextutil.GetRequestID(ctx)
	evt.OccurredAt = time.Now().UTC()

	payload, err := json.Marshal(evt)
	if err != nil {
		log.Warn("notification event not encodable", zap.Error(err))
		return
	}

	err = n.outbox.Create(ctx, kafka.NewOutboxEvent(
		n.topic, "notification", evt.AggregateID(), evt.EventType, evt.RequestID, payload,
	))
	if err != nil {
		log.Warn("notification event not enqueued",
			zap.String("kind", evt.Kind),
			zap.Error(err),
		)
	}
}
