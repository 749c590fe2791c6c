package bootstrap

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingAudit struct {
	mu      sync.Mutex
	actions []string
}

func (r *recordingAudit) Log(_ context.Context, entry AuditLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, entry.Action)
}

func TestServe_ShutsDownOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	audit := &recordingAudit{}

	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, http.NotFoundHandler(), ServerConfig{Port: "0"}, audit)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, []string{"SERVER_START", "SERVER_SHUTDOWN"}, audit.actions)
}

func TestServe_ReturnsListenError(t *testing.T) {
	err := Serve(context.Background(), http.NotFoundHandler(), ServerConfig{Port: "-1"}, &recordingAudit{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on :-1")
}

func TestStdoutAuditLogger_IncludesRequestMetadata(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	audit := NewStdoutAuditLogger(zap.New(core))

	ctx := contextutil.WithUserID(contextutil.WithRequestID(context.Background(), "req-9"), "7")
	audit.Log(ctx, AuditLog{Action: "SERVER_START", Message: "Server started"})

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "SERVER_START", fields["action"])
	assert.Equal(t, "req-9", fields["request_id"])
	assert.Equal(t, "7", fields["user_id"])
}
