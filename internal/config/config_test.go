package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Database.MaxConns)
	assert.Equal(t, 5, cfg.Database.MinConns)
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Reconciliation.Timezone)
	assert.Equal(t, 18, cfg.Reconciliation.DefaultCheckoutHour)
	assert.Equal(t, 23, cfg.Reconciliation.CloseOutHour)
	assert.Equal(t, 8, cfg.Reconciliation.BackstopHour)
	assert.Equal(t, 7, cfg.Reconciliation.CatchUpWindowDays)
	assert.Equal(t, "EMPLOYEE", cfg.Reconciliation.RosterRole)
}

func TestLoad_PoolSizingFromEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_MAX_CONNS", "40")
	t.Setenv("DB_MIN_CONNS", "10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Database.MaxConns)
	assert.Equal(t, 10, cfg.Database.MinConns)
}

func TestLoad_RejectsInvertedPoolBounds(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "8")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_MIN_CONNS")
}

func TestLoad_RejectsOutOfRangeHours(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CLOSE_OUT_HOUR", "24")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLOSE_OUT_HOUR")
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "db.internal",
			Port:     5433,
			User:     "app",
			Password: "pw",
			Name:     "attendly",
			SSLMode:  "require",
		},
	}
	assert.Equal(t, "postgres://app:pw@db.internal:5433/attendly?sslmode=require", cfg.DatabaseURL())
}
