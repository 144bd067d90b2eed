package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTuningFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "extractor.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("TESSDATA_PREFIX", "")
	t.Setenv("EXTRACTOR_CONFIG", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "/usr/share/tesseract-ocr/5/tessdata", cfg.TesseractDataPath)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, 20, cfg.Tuning.RowTolerance)
	assert.NotEmpty(t, cfg.Tuning.Brands)
	assert.NotEmpty(t, cfg.Tuning.Gazetteer)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TESSDATA_PREFIX", "/opt/tessdata")
	t.Setenv("EXTRACTOR_CONFIG", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "/opt/tessdata", cfg.TesseractDataPath)
}

func TestLoadConfigTOMLOverlay(t *testing.T) {
	path := writeTuningFile(t, `
row_tolerance = 30
rate_max = 250000
brands = ["redmi", "samsung"]
`)
	t.Setenv("EXTRACTOR_CONFIG", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Tuning.RowTolerance)
	assert.Equal(t, 250000, cfg.Tuning.RateMax)
	assert.Equal(t, []string{"redmi", "samsung"}, cfg.Tuning.Brands)
	// Untouched keys keep their defaults
	assert.Equal(t, 500, cfg.Tuning.AmountMin)
	assert.NotEmpty(t, cfg.Tuning.Gazetteer)
}

func TestLoadConfigRejectsInvalidTuning(t *testing.T) {
	path := writeTuningFile(t, "row_tolerance = 0\n")
	t.Setenv("EXTRACTOR_CONFIG", path)

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid extractor tuning")
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("EXTRACTOR_CONFIG", filepath.Join(t.TempDir(), "absent.toml"))

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigRejectsMalformedTOML(t *testing.T) {
	path := writeTuningFile(t, "row_tolerance = [not toml")
	t.Setenv("EXTRACTOR_CONFIG", path)

	_, err := LoadConfig()
	require.Error(t, err)
}
