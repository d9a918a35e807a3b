package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/specgate/specgate/internal/adapters/outbound/config"
	"github.com/specgate/specgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoad_OverridesMergeOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".specgate.yaml"), []byte(`
fetch_retries: 5
exclude_paths:
  - generated
`), 0o644))

	cfg, err := config.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.FetchRetries)
	assert.Equal(t, []string{"generated"}, cfg.ExcludePaths)
	// Untouched fields keep their defaults.
	assert.Equal(t, domain.DefaultConfig().FileTimeout, cfg.FileTimeout)
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".specgate.yaml"), []byte(`
regression_patterns:
  - name: bad
    pattern: "TODO"
    severity: fatal
`), 0o644))

	_, err := config.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".specgate.yaml")
}

func TestLoad_MalformedYAMLRejected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".specgate.yaml"), []byte("file_timeout: [\n"), 0o644))

	_, err := config.New().Load(dir)
	assert.Error(t, err)
}
