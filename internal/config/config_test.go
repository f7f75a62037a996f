package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"ARCADE_WS_ADDR", "ARCADE_SERVICE_NAME", "ARCADE_TICK_HZ", "ARCADE_BROADCAST_HZ",
		"ARCADE_LOG_LEVEL", "ARCADE_LOG_PRETTY", "NATS_URL", "NATS_SUBJECT_PREFIX", "CONSUL_HTTP_ADDR",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, defaultWSAddr, cfg.WSAddr)
	assert.Equal(t, defaultServiceName, cfg.ServiceName)
	assert.Equal(t, 30, cfg.TickHz)
	assert.Equal(t, "arcade", cfg.SubjectPrefix)
	assert.Empty(t, cfg.NatsURL)
	assert.Empty(t, cfg.ConsulAddr)
	assert.False(t, cfg.PrettyLogs)

	port, err := cfg.Port()
	require.NoError(t, err)
	assert.Equal(t, 8080, port)
	assert.Equal(t, time.Second/30, cfg.TickInterval())
}

func TestOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ARCADE_WS_ADDR", "127.0.0.1:9000")
	t.Setenv("ARCADE_TICK_HZ", "60")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("ARCADE_LOG_PRETTY", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.WSAddr)
	assert.Equal(t, 60, cfg.TickHz)
	assert.Equal(t, "nats://localhost:4222", cfg.NatsURL)
	assert.True(t, cfg.PrettyLogs)
}

func TestInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("ARCADE_TICK_HZ", "fast")
	_, err := FromEnv()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("ARCADE_TICK_HZ", "0")
	_, err = FromEnv()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("ARCADE_WS_ADDR", "localhost")
	_, err = FromEnv()
	assert.ErrorIs(t, err, ErrInvalidPort)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("ARCADE_SERVICE_NAME")
	t.Cleanup(func() { os.Unsetenv("ARCADE_SERVICE_NAME") })
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ARCADE_SERVICE_NAME=arena-7\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "arena-7", cfg.ServiceName)

	cfg, err = Load(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}
