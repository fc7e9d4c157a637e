package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
log:
  level: info
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, 64, cfg.Engine.InitialHistoryCapacity)
	assert.Equal(t, 16, cfg.Engine.InitialNodeCapacity)
	assert.Equal(t, 4, cfg.Ingest.WorkerCount)
	assert.Equal(t, 60, cfg.Window.DefaultSize)
}

func TestLoad_CustomValues(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
engine:
  initial_history_capacity: 128
  initial_node_capacity: 32
ingest:
  poll_interval: 50
  worker_count: 8
window:
  default_size: 10
  cusum_threshold: 3.5
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, 128, cfg.Engine.InitialHistoryCapacity)
	assert.Equal(t, 32, cfg.Engine.InitialNodeCapacity)
	assert.Equal(t, 50, cfg.Ingest.PollInterval)
	assert.Equal(t, 8, cfg.Ingest.WorkerCount)
	assert.Equal(t, 10, cfg.Window.DefaultSize)
	assert.Equal(t, 3.5, cfg.Window.CUSUMThreshold)
}

func TestLoad_InvalidWorkerCount(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
ingest:
  worker_count: 0
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	_, err = Load(configFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "worker count must be at least 1")
}

func TestValidate_InvalidHistoryCapacity(t *testing.T) {
	cfg := &Config{
		Engine: EngineConfig{InitialHistoryCapacity: 0},
		Ingest: IngestConfig{WorkerCount: 1},
		Window: WindowConfig{DefaultSize: 1},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "history capacity")
}

func TestValidate_InvalidWindowSize(t *testing.T) {
	cfg := &Config{
		Engine: EngineConfig{InitialHistoryCapacity: 1},
		Ingest: IngestConfig{WorkerCount: 1},
		Window: WindowConfig{DefaultSize: 0},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "window default size")
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoadFromReader(t *testing.T) {
	content := []byte(`
ingest:
  worker_count: 6
`)
	cfg, err := LoadFromReader("yaml", content)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Ingest.WorkerCount)
}
