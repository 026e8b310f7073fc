package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "prospects.db", cfg.Store.SQLitePath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Batch.MaxConcurrent)
	assert.Equal(t, "https://api.perplexity.ai", cfg.Perplexity.BaseURL)
	assert.Equal(t, "sonar-pro", cfg.Perplexity.Model)
	assert.Equal(t, "https://api.cerebras.ai/v1", cfg.Cerebras.BaseURL)
	assert.Equal(t, "cerebras", cfg.Pipeline.Structurer)
	assert.Equal(t, 4096, cfg.Pipeline.MaxOutputTokens)
	assert.Equal(t, 60, cfg.Report.CacheTTLMinutes)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/prospects
pipeline:
  structurer: anthropic
batch:
  max_concurrent: 3
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/prospects", cfg.Store.DatabaseURL)
	assert.Equal(t, "anthropic", cfg.Pipeline.Structurer)
	assert.Equal(t, 3, cfg.Batch.MaxConcurrent)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Store:      StoreConfig{Driver: "sqlite", SQLitePath: "x.db"},
			Perplexity: PerplexityConfig{Key: "pk"},
			Cerebras:   CerebrasConfig{Key: "ck"},
			Pipeline:   PipelineConfig{Structurer: "cerebras"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing_perplexity_key", func(c *Config) { c.Perplexity.Key = "" }, "perplexity.key"},
		{"missing_cerebras_key", func(c *Config) { c.Cerebras.Key = "" }, "cerebras.key"},
		{"anthropic_without_key", func(c *Config) { c.Pipeline.Structurer = "anthropic" }, "anthropic.key"},
		{"anthropic_with_key", func(c *Config) {
			c.Pipeline.Structurer = "anthropic"
			c.Anthropic.Key = "ak"
		}, ""},
		{"unknown_structurer", func(c *Config) { c.Pipeline.Structurer = "gemini" }, "unknown structurer"},
		{"unknown_driver", func(c *Config) { c.Store.Driver = "mysql" }, "unknown store driver"},
		{"postgres_without_url", func(c *Config) { c.Store.Driver = "postgres" }, "database_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.Error(t, InitLogger(LogConfig{Level: "nope", Format: "json"}))
}
