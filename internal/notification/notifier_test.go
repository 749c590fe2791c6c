package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/events"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/messaging/kafka"
	kafkaMock "github.com/elec-connect/smart-attendance-system-sub001/internal/messaging/kafka/mock"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/notification"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingService struct {
	notification.Service
	calls []string
	err   error
}

func (s *recordingService) CreateNotification(_ context.Context, userID, _, _, _ string, _ map[string]any) (notification.NotificationResponse, error) {
	s.calls = append(s.calls, "user:"+userID)
	return notification.NotificationResponse{}, s.err
}

func (s *recordingService) CreateSystemNotification(_ context.Context, title, _, _ string, _ map[string]any) (notification.NotificationResponse, error) {
	s.calls = append(s.calls, "system:"+title)
	return notification.NotificationResponse{}, s.err
}

func (s *recordingService) AttendanceCreated(_ context.Context, identifier, checkType string, _ time.Time) (notification.NotificationResponse, error) {
	s.calls = append(s.calls, "attendance:"+identifier+":"+checkType)
	return notification.NotificationResponse{}, s.err
}

func TestDispatch_RoutesByKind(t *testing.T) {
	svc := &recordingService{}
	ctx := context.Background()

	require.NoError(t, notification.Dispatch(ctx, svc, notification.UserEvent(4, "t", "m", "x", nil)))
	require.NoError(t, notification.Dispatch(ctx, svc, notification.SystemEvent("Reset", "m", "x", nil)))
	require.NoError(t, notification.Dispatch(ctx, svc, notification.AttendanceEvent("EMP001", "check_in", time.Now())))

	assert.Equal(t, []string{"user:4", "system:Reset", "attendance:EMP001:check_in"}, svc.calls)

	err := notification.Dispatch(ctx, svc, events.NotificationRequestedEvent{Kind: "bogus"})
	assert.Error(t, err)
}

func TestDirectNotifier_SwallowsErrors(t *testing.T) {
	svc := &recordingService{err: errors.New("db down")}
	n := notification.NewDirectNotifier(svc)

	assert.NotPanics(t, func() {
		n.Publish(context.Background(), notification.UserEvent(1, "t", "m", "x", nil))
	})
	assert.Len(t, svc.calls, 1)
}

func TestOutboxNotifier_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	n := notification.NewOutboxNotifier(outbox, "")
	ctx := contextutil.WithRequestID(context.Background(), "req-1")

	outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
		assert.NotEmpty(t, e.ID)
		assert.Equal(t, "req-1", e.RequestID)
		assert.Equal(t, "notification", e.AggregateType)
		assert.Equal(t, "employee:EMP001", e.AggregateID)
		assert.Equal(t, events.NotificationRequestedTopic, e.Topic)
		assert.Equal(t, kafka.OutboxStatusPending, e.Status)

		var evt events.NotificationRequestedEvent
		require.NoError(t, json.Unmarshal(e.Payload, &evt))
		assert.Equal(t, events.NotificationRequestedType, evt.EventType)
		assert.Equal(t, "check_out", evt.CheckType)
		return nil
	})

	n.Publish(ctx, notification.AttendanceEvent("EMP001", "check_out", time.Now()))
}

func TestOutboxNotifier_CreateFailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	n := notification.NewOutboxNotifier(outbox, "custom.topic")

	outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))

	assert.NotPanics(t, func() {
		n.Publish(context.Background(), notification.SystemEvent("t", "m", "x", nil))
	})
}
