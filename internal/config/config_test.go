package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geovalidate/geovalidate/pkg/geovalidate"
)

func TestLoadWithoutConfigFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, geovalidate.DefaultGeometryCriteria(), cfg.Criteria)
	assert.True(t, cfg.Checks.Duplicate)
	assert.True(t, cfg.Checks.Overshoot)
}

func TestLoadOverridesDefaultsFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geovalidate.yaml")
	contents := `
sliver:
  max_area: 12.5
checks:
  overlap: false
  spikes: false
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 12.5, cfg.Criteria.SliverArea)
	assert.False(t, cfg.Checks.Overlap)
	assert.False(t, cfg.Checks.Spikes)
	assert.True(t, cfg.Checks.Duplicate, "keys absent from the file keep their default")
}

func TestLoadMissingConfigFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}
