package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "dark", cfg.Theme)
	assert.True(t, cfg.ConfirmDelete)
	assert.True(t, cfg.ShowDescriptions)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
}

func TestMergeConfigKeepsDefaultsForMissingFields(t *testing.T) {
	var stored fileConfig
	require.NoError(t, json.Unmarshal([]byte(`{"theme":"light"}`), &stored))

	merged := mergeConfig(DefaultConfig(), stored)
	assert.Equal(t, "light", merged.Theme)
	assert.True(t, merged.ConfirmDelete)
	assert.Equal(t, "warn", merged.LogLevel)
}

func TestMergeConfigOverridesBool(t *testing.T) {
	var stored fileConfig
	require.NoError(t, json.Unmarshal([]byte(`{"confirmDelete":false,"lastBackupDir":"/tmp/backups"}`), &stored))

	merged := mergeConfig(DefaultConfig(), stored)
	assert.False(t, merged.ConfirmDelete)
	assert.Equal(t, "/tmp/backups", merged.LastBackupDir)
	assert.Equal(t, "dark", merged.Theme)
}

func TestMergeConfigEmptyStringStillOverrides(t *testing.T) {
	var stored fileConfig
	require.NoError(t, json.Unmarshal([]byte(`{"theme":""}`), &stored))

	merged := mergeConfig(DefaultConfig(), stored)
	assert.Empty(t, merged.Theme, "an explicit empty value is distinct from an absent one")
}
