package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 100, cfg.Forest.Trees)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
forest:
  trees: 25
  alpha: 4
  beta: 0.1
  candidates: 6
  oob_window: 200
server:
  port: "9000"
log:
  level: debug
`), 0o644))

	t.Setenv("ORF_TREES", "40")
	t.Setenv("API_KEY", "secret")
	t.Setenv("ORF_SEED", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Forest.Trees, "env wins over file")
	assert.Equal(t, 4, cfg.Forest.Alpha)
	assert.Equal(t, 0.1, cfg.Forest.Beta)
	assert.Equal(t, 6, cfg.Forest.Candidates)
	assert.Equal(t, 200, cfg.Forest.OOBWindow)
	require.NotNil(t, cfg.Forest.Seed)
	assert.Equal(t, int64(7), *cfg.Forest.Seed)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Server.APIKey)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_SeedZeroIsPinned(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Nil(t, cfg.Forest.Seed)

	path := filepath.Join(t.TempDir(), "orf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
forest:
  trees: 10
  alpha: 2
  beta: 0.05
  candidates: 5
  oob_window: 100
  seed: 0
`), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Forest.Seed)
	assert.Equal(t, int64(0), *cfg.Forest.Seed)

	t.Setenv("ORF_SEED", "0")
	cfg, err = Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg.Forest.Seed)
	assert.Equal(t, int64(0), *cfg.Forest.Seed)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("ORF_ALPHA", "two")
	t.Setenv("ORF_BETA", "small")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ORF_ALPHA")
	assert.Contains(t, err.Error(), "ORF_BETA")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Forest.Beta = 1
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Log.Level = "loud"
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Forest.Trees = 0
	assert.Error(t, Validate(cfg))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
