package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, time.UTC.String(), cfg.App.Location.String())
	assert.Equal(t, time.Hour, cfg.JWT.AccessTTL)
	assert.Equal(t, "attendance.notifications.v1", cfg.Kafka.NotificationTopic)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_ACCESS_TTL", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_ACCESS_TTL")
}
