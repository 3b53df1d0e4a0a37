package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "pc-builder.db", cfg.Store.DatabaseURL)
	assert.True(t, cfg.Catalog.ScrapeSim)
	assert.Empty(t, cfg.Catalog.Path)
	assert.InDelta(t, 1.5, cfg.Selector.EnvelopeStretch, 1e-9)
	assert.Equal(t, []string{"US", "EU", "UK", "CA", "IN"}, cfg.Regions)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PCBUILDER_STORE_DRIVER", "postgres")
	t.Setenv("PCBUILDER_SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestSupportedRegion(t *testing.T) {
	cfg := &Config{Regions: []string{"US", "EU"}}
	assert.True(t, cfg.SupportedRegion("US"))
	assert.True(t, cfg.SupportedRegion("us"))
	assert.False(t, cfg.SupportedRegion("JP"))
}

func TestInitLogger_InvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "shouting", Format: "json"})
	require.Error(t, err)
}

func TestInitLogger_Console(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
}
