package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Contains(t, cfg.DBPath, filepath.Join(".menta", "menta.db"))
	assert.False(t, cfg.Debug)
	assert.Equal(t, "planned", cfg.Review.RejectedState)
	assert.Equal(t, 1, cfg.Review.RequiredApprovals)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path: /tmp/menta-test.db
debug: true
review:
  rejected_state: in_progress
  required_approvals: 2
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/menta-test.db", cfg.DBPath)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "in_progress", cfg.Review.RejectedState)
	assert.Equal(t, 2, cfg.Review.RequiredApprovals)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /tmp/from-file.db\n"), 0644))

	t.Setenv("MENTA_DB_PATH", "/tmp/from-env.db")
	t.Setenv("MENTA_REVIEW_REQUIRED_APPROVALS", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.DBPath)
	assert.Equal(t, 3, cfg.Review.RequiredApprovals)
}

func TestLoadMissingFileIsFine(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Review.RequiredApprovals)
}
