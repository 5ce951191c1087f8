package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, time.Minute, cfg.Controller.ClickInterval)
	assert.Equal(t, 150*time.Second, cfg.Controller.SpendInterval)
	assert.Equal(t, 10*time.Minute, cfg.Controller.DebounceWindow)
	assert.True(t, cfg.Controller.DailySpendCap.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, int64(10000), cfg.Controller.MinVolumeFloor)
	assert.Equal(t, "localhost:9090", cfg.Gateway.BaseURL.Host)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("CONTROLLER_DAILY_SPEND_CAP", "12.5")
	t.Setenv("CONTROLLER_CONCURRENCY", "0")
	t.Setenv("GATEWAY_BASE_URL", "https://ads.example.com/api")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.True(t, cfg.Controller.DailySpendCap.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, 1, cfg.Controller.Concurrency)
	assert.Equal(t, "/api", cfg.Gateway.BaseURL.Path)
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	t.Setenv("STORAGE", "redis")

	_, err := Load()
	assert.Error(t, err)
}
