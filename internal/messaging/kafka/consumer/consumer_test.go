package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/events"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReader struct {
	msgs      []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
	fetchErrs int
	fetches   int
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.fetches++
	if r.fetchErrs > 0 {
		r.fetchErrs--
		return kafkago.Message{}, errors.New("broker unavailable")
	}
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

type fakeNotificationService struct {
	notification.Service
	attendance   []string
	userCalls    int
	userFailures int
	onFail       func()
}

func (f *fakeNotificationService) AttendanceCreated(_ context.Context, identifier, _ string, _ time.Time) (notification.NotificationResponse, error) {
	f.attendance = append(f.attendance, identifier)
	return notification.NotificationResponse{}, nil
}

func (f *fakeNotificationService) CreateNotification(context.Context, string, string, string, string, map[string]any) (notification.NotificationResponse, error) {
	f.userCalls++
	if f.userCalls <= f.userFailures {
		if f.onFail != nil {
			f.onFail()
		}
		return notification.NotificationResponse{}, errors.New("db down")
	}
	return notification.NotificationResponse{}, nil
}

func encode(t *testing.T, evt events.NotificationRequestedEvent) []byte {
	t.Helper()
	evt.EventType = events.NotificationRequestedType
	b, err := json.Marshal(evt)
	require.NoError(t, err)
	return b
}

func fastRetries(t *testing.T) {
	t.Helper()
	attempts, base, maxDelay := persistAttempts, retryBaseDelay, retryMaxDelay
	persistAttempts, retryBaseDelay, retryMaxDelay = 3, time.Millisecond, 4*time.Millisecond
	t.Cleanup(func() {
		persistAttempts, retryBaseDelay, retryMaxDelay = attempts, base, maxDelay
	})
}

func TestConsumeNotificationRequests(t *testing.T) {
	fastRetries(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		msgs: []kafkago.Message{
			{Offset: 1, Value: encode(t, notification.AttendanceEvent("EMP001", "check_in", time.Now()))},
			{Offset: 2, Value: []byte("{not json")},
			{Offset: 3, Value: encode(t, notification.UserEvent(9, "t", "m", "x", nil))},
			{Offset: 4, Value: []byte(`{"event_type":"something_else"}`)},
		},
	}
	svc := &fakeNotificationService{userFailures: 2}

	ConsumeNotificationRequests(ctx, reader, svc, zap.NewNop())

	assert.Equal(t, []string{"EMP001"}, svc.attendance)
	// offset 3 is retried in place and committed once it persists
	assert.Equal(t, 3, svc.userCalls)
	assert.Equal(t, []int64{1, 2, 3, 4}, reader.committed)
}

func TestConsumeNotificationRequests_DropsAfterLastAttempt(t *testing.T) {
	fastRetries(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		msgs: []kafkago.Message{
			{Offset: 7, Value: encode(t, notification.UserEvent(9, "t", "m", "x", nil))},
			{Offset: 8, Value: encode(t, notification.AttendanceEvent("EMP001", "check_out", time.Now()))},
		},
	}
	svc := &fakeNotificationService{userFailures: 100}

	ConsumeNotificationRequests(ctx, reader, svc, zap.NewNop())

	assert.Equal(t, 3, svc.userCalls)
	assert.Equal(t, []string{"EMP001"}, svc.attendance)
	assert.Equal(t, []int64{7, 8}, reader.committed)
}

func TestConsumeNotificationRequests_ShutdownDuringRetryLeavesOffset(t *testing.T) {
	fastRetries(t)
	retryBaseDelay = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		msgs: []kafkago.Message{
			{Offset: 5, Value: encode(t, notification.UserEvent(9, "t", "m", "x", nil))},
		},
	}
	svc := &fakeNotificationService{userFailures: 100, onFail: cancel}

	done := make(chan struct{})
	go func() {
		ConsumeNotificationRequests(ctx, reader, svc, zap.NewNop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}
	assert.Equal(t, 1, svc.userCalls)
	assert.Empty(t, reader.committed)
}

func TestConsumeNotificationRequests_BacksOffOnFetchError(t *testing.T) {
	fastRetries(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel:    cancel,
		fetchErrs: 2,
		msgs: []kafkago.Message{
			{Offset: 1, Value: encode(t, notification.AttendanceEvent("EMP001", "check_in", time.Now()))},
		},
	}
	svc := &fakeNotificationService{}

	start := time.Now()
	ConsumeNotificationRequests(ctx, reader, svc, zap.NewNop())

	// 1ms then 2ms between the failed fetches
	assert.GreaterOrEqual(t, time.Since(start), 3*time.Millisecond)
	assert.Equal(t, 4, reader.fetches)
	assert.Equal(t, []int64{1}, reader.committed)
}

func TestConsumeNotificationRequests_StopsDuringFetchBackoff(t *testing.T) {
	fastRetries(t)
	retryBaseDelay = time.Hour
	ctx, cancel := context.WithCancel(context.Background())

	reader := &fakeReader{cancel: cancel, fetchErrs: 1}
	time.AfterFunc(10*time.Millisecond, cancel)

	done := make(chan struct{})
	go func() {
		ConsumeNotificationRequests(ctx, reader, &fakeNotificationService{}, zap.NewNop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}
	assert.Equal(t, 1, reader.fetches)
}

func TestBackoff(t *testing.T) {
	fastRetries(t)
	tests := []struct {
		failures int
		want     time.Duration
	}{
		{1, time.Millisecond},
		{2, 2 * time.Millisecond},
		{3, 4 * time.Millisecond},
		{10, 4 * time.Millisecond},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, backoff(tt.failures), "failures=%d", tt.failures)
	}
}
