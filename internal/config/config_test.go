package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "workout_planner", cfg.Database.Name)
	assert.Equal(t, 720*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 15*time.Minute, cfg.S3.MediaURLExpiry)
	assert.Equal(t, 10, cfg.Planner.MinPoolSize)
	assert.Zero(t, cfg.Planner.VarietySeed)
	assert.Equal(t, 5*time.Minute, cfg.Planner.CatalogCacheTTL)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":9090"
  cors_origins: ["https://app.example.com"]
jwt:
  secret: from-file
  expiration: 2h
planner:
  min_pool_size: 20
  variety_seed: 7
log:
  level: debug
  json: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 20, cfg.Planner.MinPoolSize)
	assert.Equal(t, int64(7), cfg.Planner.VarietySeed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadConfig_BrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o600))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
