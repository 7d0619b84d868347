package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ParsesOverridesAndFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extentix.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[store]
page_size = 8192

[lexicon]
stemming_level = 3
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8192, cfg.Store.PageSize)
	assert.Equal(t, 3, cfg.Lexicon.StemmingLevel)
	assert.Equal(t, Default().Store.CacheMode, cfg.Store.CacheMode)
	assert.Equal(t, Default().Query.MaxANDOperands, cfg.Query.MaxANDOperands)
}

func TestValidateAndSetDefaults_RejectsBadPageSize(t *testing.T) {
	cfg := Default()
	cfg.Store.PageSize = 100
	err := (&Validator{}).ValidateAndSetDefaults(cfg)
	assert.Error(t, err)
}

func TestValidateAndSetDefaults_RejectsInvertedSegmentSizes(t *testing.T) {
	cfg := Default()
	cfg.Codec.TargetSegmentSize = cfg.Codec.MaxSegmentSize + 1
	err := (&Validator{}).ValidateAndSetDefaults(cfg)
	assert.Error(t, err)
}

func TestValidateAndSetDefaults_RejectsBadCacheMode(t *testing.T) {
	cfg := Default()
	cfg.Store.CacheMode = "mru"
	err := (&Validator{}).ValidateAndSetDefaults(cfg)
	assert.Error(t, err)
}
