package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Load default config when no config file is present", func(t *testing.T) {
		os.Setenv("SERVER_PORT", "8080")
		defer os.Unsetenv("SERVER_PORT")

		cfg, err := LoadConfig(t.TempDir())
		assert.NoError(t, err)
		assert.NotNil(t, cfg)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)

		assert.True(t, cfg.Server.RateLimit.Enabled)
		assert.Equal(t, float64(10), cfg.Server.RateLimit.RPS)
		assert.Equal(t, 20, cfg.Server.RateLimit.Burst)

		assert.Equal(t, "info", cfg.Logger.Level)
		assert.Equal(t, "json", cfg.Logger.Encoding)

		assert.Equal(t, "/metrics", cfg.Metrics.Path)

		assert.Equal(t, "data", cfg.Snapshot.Dir)
		assert.Equal(t, "0 2 * * *", cfg.Snapshot.Schedule)
		assert.Equal(t, 1*time.Minute, cfg.Snapshot.Timeout)

		assert.False(t, cfg.RabbitMQ.Enabled)
		assert.Equal(t, "bank-ledger", cfg.RabbitMQ.ExchangeName)
	})

	t.Run("Environment variables override defaults", func(t *testing.T) {
		os.Setenv("SNAPSHOT_DIR", "/var/lib/bank")
		defer os.Unsetenv("SNAPSHOT_DIR")

		cfg, err := LoadConfig(t.TempDir())
		assert.NoError(t, err)
		assert.Equal(t, "/var/lib/bank", cfg.Snapshot.Dir)
	})
}
