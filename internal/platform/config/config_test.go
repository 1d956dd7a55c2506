package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, StoreMemory, cfg.Store.Kind)
	assert.Equal(t, 10*time.Minute, cfg.Redis.CacheTTL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.Audit.KafkaBrokers)
	assert.Equal(t, "roster.audit", cfg.Audit.Topic)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.SeedCountries)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ROSTER_ADDR", ":9090")
	t.Setenv("ROSTER_STORE", "Postgres")
	t.Setenv("ROSTER_DATABASE_URL", "postgres://roster@localhost/roster")
	t.Setenv("ROSTER_COUNTRY_CACHE_TTL", "90s")
	t.Setenv("ROSTER_KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("ROSTER_SEED_COUNTRIES", "USA, United Kingdom,,India")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, StorePostgres, cfg.Store.Kind)
	assert.Equal(t, 90*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Audit.KafkaBrokers)
	assert.Equal(t, []string{"USA", "United Kingdom", "India"}, cfg.SeedCountries)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("ROSTER_STORE", "postgres")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ROSTER_DATABASE_URL")
	})

	t.Run("negative audit queue size", func(t *testing.T) {
		t.Setenv("ROSTER_AUDIT_QUEUE_SIZE", "-1")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ROSTER_AUDIT_QUEUE_SIZE")
	})

	t.Run("zero audit queue size", func(t *testing.T) {
		t.Setenv("ROSTER_AUDIT_QUEUE_SIZE", "0")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("unknown store", func(t *testing.T) {
		t.Setenv("ROSTER_STORE", "mongo")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown store")
	})
}
