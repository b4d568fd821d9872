package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
	assert.Equal(t, AppName, filepath.Base(cfg.Log.Dir))

	assert.Equal(t, "Choose a document", cfg.Picker.Prompt)
	assert.Equal(t, "zenity", cfg.Picker.ZenityPath)
	assert.Equal(t, uint32(1024*1024), cfg.MaxMessageSize)
}

func TestLoad_MatchesDefault(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	dir := t.TempDir()
	envVars := map[string]string{
		"DOCPICKER_LOG_LEVEL":          "debug",
		"DOCPICKER_LOG_DIR":            dir,
		"DOCPICKER_LOG_MAX_SIZE_MB":    "1",
		"DOCPICKER_LOG_MAX_BACKUPS":    "7",
		"DOCPICKER_PICKER_PROMPT":      "Attach a file",
		"DOCPICKER_PICKER_ZENITY_PATH": "/opt/bin/zenity",
		"DOCPICKER_MAX_MESSAGE_SIZE":   "4096",
	}
	for k, v := range envVars {
		t.Setenv(k, v)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, dir, cfg.Log.Dir)
	assert.Equal(t, 1, cfg.Log.MaxSizeMB)
	assert.Equal(t, 7, cfg.Log.MaxBackups)
	assert.Equal(t, "Attach a file", cfg.Picker.Prompt)
	assert.Equal(t, "/opt/bin/zenity", cfg.Picker.ZenityPath)
	assert.Equal(t, uint32(4096), cfg.MaxMessageSize)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("not a number", func(t *testing.T) {
		t.Setenv("DOCPICKER_LOG_MAX_SIZE_MB", "lots")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("zero message size", func(t *testing.T) {
		t.Setenv("DOCPICKER_MAX_MESSAGE_SIZE", "0")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("DOCPICKER_LOG_MAX_BACKUPS", "many")
	assert.Equal(t, Default(), LoadOrDefault())
}
