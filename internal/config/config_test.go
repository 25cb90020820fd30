package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/farmkonnect-notifier/internal/backoff"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600))

	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := writeConfig(t, "storage:\n  driver: memory\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, backoff.DefaultPolicy(), cfg.Backoff.Policy())
	assert.Equal(t, "@every 1m", cfg.Sweep.Schedule)
	assert.Equal(t, 3, cfg.Retry.Attempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Retry.Delay)
	assert.Equal(t, 4, cfg.Workers.Count)
}

func TestLoad_FileOverrides(t *testing.T) {
	dir := writeConfig(t, `
storage:
  driver: memory
backoff:
  max_retries: 5
  initial_delay: 1m
  max_delay: 1h
sweep:
  schedule: "*/5 * * * *"
sms:
  enabled: true
  url: http://gateway.local/send
  timeout: 3s
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Backoff.MaxRetries)
	assert.Equal(t, time.Minute, cfg.Backoff.InitialDelay)
	assert.Equal(t, "*/5 * * * *", cfg.Sweep.Schedule)
	assert.True(t, cfg.SMS.Enabled)
	assert.Equal(t, 3*time.Second, cfg.SMS.Timeout)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"driver":  "storage:\n  driver: mongo\n",
		"backoff": "storage:\n  driver: memory\nbackoff:\n  multiplier: 0.5\n",
		"sms":     "storage:\n  driver: memory\nsms:\n  enabled: true\n",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	n := DatabaseNode{Host: "db", Port: "5432", User: "u", Pass: "p", Name: "farmkonnect", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/farmkonnect?sslmode=disable", n.DSN())
}
