package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9130", cfg.Service.URL)
	assert.Equal(t, "diku", cfg.Service.Tenant)
	assert.Equal(t, 10, cfg.Import.PageSize)
	assert.Equal(t, 4, cfg.Import.Workers)
	assert.Equal(t, float64(0), cfg.Import.RateLimitRPS)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVICE_TENANT", "campuslib")
	t.Setenv("IMPORT_PAGE_SIZE", "25")
	t.Setenv("DATABASE_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "campuslib", cfg.Service.Tenant)
	assert.Equal(t, 25, cfg.Import.PageSize)
	assert.True(t, cfg.Database.Enabled)
}
