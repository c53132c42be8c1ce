package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/javelin/internal/config"
	"github.com/aretw0/javelin/internal/testutils"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load(config.NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "POST", cfg.Request.Method)
	assert.Zero(t, cfg.Request.Timeout)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "javelin:metadata:", cfg.Redis.Prefix)
}

func TestLoad_File(t *testing.T) {
	path := testutils.WriteFile(t, "javelin.yaml", `
log_level: debug
request:
  method: GET
  timeout: 3s
redis:
  addr: localhost:6379
  ttl: 1h
server:
  port: 9000
  metrics: true
`)

	cfg, err := config.Load(config.NewViper(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "GET", cfg.Request.Method)
	assert.Equal(t, 3*time.Second, cfg.Request.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.Server.Metrics)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := testutils.WriteFile(t, "javelin.yaml", "server:\n  port: 9000\n")
	t.Setenv("JAVELIN_SERVER_PORT", "9100")
	t.Setenv("JAVELIN_REQUEST_TIMEOUT", "250ms")

	cfg, err := config.Load(config.NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Request.Timeout)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := config.Load(config.NewViper(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_DiscoversWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "javelin.yaml"), []byte("debug: true\n"), 0o644))
	t.Chdir(dir)

	cfg, err := config.Load(config.NewViper(), "")
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
}
