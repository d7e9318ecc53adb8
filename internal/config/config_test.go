package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Research.ProbeTimeoutSecs)
	assert.Equal(t, 10, cfg.Research.AnalyzeTimeoutSecs)
	assert.Equal(t, 8, cfg.Research.ContactTimeoutSecs)
	assert.InDelta(t, 10.0, cfg.Research.MaxRequestsPerSec, 0.001)
	assert.NotEmpty(t, cfg.Research.UserAgent)

	assert.Equal(t, 3, cfg.Batch.MaxConcurrent)
	assert.Equal(t, 2000, cfg.Batch.DelayMillis)

	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, "us-east-1", cfg.Mail.Region)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60, cfg.Cache.TTLMinutes)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PROSPECT_SERVER_PORT", "9090")
	t.Setenv("PROSPECT_BATCH_MAX_CONCURRENT", "7")
	t.Setenv("PROSPECT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 7, cfg.Batch.MaxConcurrent)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "shouty", Format: "json"})
	assert.Error(t, err)
}
