package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "ENV", "STORE_DRIVER", "DATABASE_URL", "SQLITE_PATH", "REDIS_URL",
		"HOSTEL_CACHE_TTL", "SEED_DEMO", "RATE_LIMIT_WHITELIST", "AUTO_BLOCK_ENABLED",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "./data/hostels.db", cfg.SQLitePath)
	assert.Equal(t, 5*time.Minute, cfg.HostelCacheTTL)
	assert.False(t, cfg.SeedDemo)
	assert.Empty(t, cfg.RateLimitWhitelist)
}

func TestDriverFollowsDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/hostels")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)

	t.Setenv("STORE_DRIVER", "memory")
	cfg, err = fromEnv()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
}

func TestOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOSTEL_CACHE_TTL", "30s")
	t.Setenv("SEED_DEMO", "true")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 192.168.0.0/16,")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.HostelCacheTTL)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.RateLimitWhitelist)
}

func TestInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := fromEnv()
	assert.ErrorContains(t, err, "STORE_DRIVER")

	clearEnv(t)
	t.Setenv("HOSTEL_CACHE_TTL", "soon")
	_, err = fromEnv()
	assert.ErrorContains(t, err, "HOSTEL_CACHE_TTL")

	clearEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")
	_, err = fromEnv()
	assert.ErrorContains(t, err, "DATABASE_URL")

	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://db/hostels")
	_, err = fromEnv()
	assert.ErrorContains(t, err, "REDIS_URL")

	assert.Panics(t, func() { Load() })
}
