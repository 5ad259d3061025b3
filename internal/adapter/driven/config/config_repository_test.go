package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTOMLConfig(t *testing.T) {
	path := writeTempConfig(t, "config.toml", `
base_url = "https://api.example.com"
report_name = "faturamento"
report_type = ["csv", "pdf"]
billing_days = 15
`)

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, "faturamento", cfg.ReportName)
	assert.Equal(t, []string{"csv", "pdf"}, cfg.ReportType)
	assert.Equal(t, 15, cfg.BillingDays)
}

func TestLoadYAMLConfig(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", `
base_url: https://api.example.com
report_type:
  - xlsx
dir: /tmp/reports
`)

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, []string{"xlsx"}, cfg.ReportType)
	assert.Equal(t, "/tmp/reports", cfg.Dir)
}

func TestLoadJSONConfig(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{"base_url": "https://api.example.com", "billing_days": 7}`)

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, 7, cfg.BillingDays)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeTempConfig(t, "config.ini", "base_url = x")

	repo := NewConfigRepository()
	_, err := repo.LoadConfigFile(path)
	assert.ErrorContains(t, err, "unsupported config file format")
}

func TestLoadMissingFile(t *testing.T) {
	repo := NewConfigRepository()
	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "error accessing config file")
}

func TestLoadDirectoryInsteadOfFile(t *testing.T) {
	repo := NewConfigRepository()
	_, err := repo.LoadConfigFile(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")
}
